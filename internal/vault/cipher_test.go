package vault

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, keySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEncryptContentRoundTrip(t *testing.T) {
	plaintext := []byte("dear future reader, this letter is for you")

	encrypted, err := EncryptContent(plaintext)
	require.NoError(t, err)

	assert.Len(t, encrypted.Ciphertext, len(plaintext))
	assert.Len(t, encrypted.DataKey, keySize)
	assert.Len(t, encrypted.IV, nonceSize)
	assert.Len(t, encrypted.Tag, tagSize)
	assert.False(t, bytes.Equal(encrypted.Ciphertext, plaintext))

	decrypted, err := DecryptContent(encrypted.Ciphertext, encrypted.DataKey, encrypted.IV, encrypted.Tag)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptContentEmptyPlaintext(t *testing.T) {
	encrypted, err := EncryptContent(nil)
	require.NoError(t, err)
	assert.Empty(t, encrypted.Ciphertext)

	decrypted, err := DecryptContent(encrypted.Ciphertext, encrypted.DataKey, encrypted.IV, encrypted.Tag)
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestEncryptContentFreshKeyAndIVPerCall(t *testing.T) {
	plaintext := []byte("same plaintext twice")

	first, err := EncryptContent(plaintext)
	require.NoError(t, err)
	second, err := EncryptContent(plaintext)
	require.NoError(t, err)

	assert.NotEqual(t, first.DataKey, second.DataKey)
	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
}

func TestDecryptContentRejectsTampering(t *testing.T) {
	plaintext := []byte("integrity matters")
	encrypted, err := EncryptContent(plaintext)
	require.NoError(t, err)

	tamperedCiphertext := append([]byte(nil), encrypted.Ciphertext...)
	tamperedCiphertext[0] ^= 0xff
	_, err = DecryptContent(tamperedCiphertext, encrypted.DataKey, encrypted.IV, encrypted.Tag)
	assert.ErrorIs(t, err, ErrEncryption)

	tamperedTag := append([]byte(nil), encrypted.Tag...)
	tamperedTag[0] ^= 0xff
	_, err = DecryptContent(encrypted.Ciphertext, encrypted.DataKey, encrypted.IV, tamperedTag)
	assert.ErrorIs(t, err, ErrEncryption)
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	masterKey := randomKey(t)
	dataKey := randomKey(t)

	blob, err := WrapKey(dataKey, masterKey)
	require.NoError(t, err)
	assert.Len(t, blob, nonceSize+tagSize+keySize)

	unwrapped, err := UnwrapKey(blob, masterKey)
	require.NoError(t, err)
	assert.Equal(t, dataKey, unwrapped)
}

func TestWrapKeyFreshIVPerCall(t *testing.T) {
	masterKey := randomKey(t)
	dataKey := randomKey(t)

	first, err := WrapKey(dataKey, masterKey)
	require.NoError(t, err)
	second, err := WrapKey(dataKey, masterKey)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUnwrapKeyRejectsWrongMasterKey(t *testing.T) {
	masterKey := randomKey(t)
	dataKey := randomKey(t)

	blob, err := WrapKey(dataKey, masterKey)
	require.NoError(t, err)

	_, err = UnwrapKey(blob, randomKey(t))
	assert.ErrorIs(t, err, ErrKeyUnwrap)
}

func TestUnwrapKeyRejectsTamperedBlob(t *testing.T) {
	masterKey := randomKey(t)
	dataKey := randomKey(t)

	blob, err := WrapKey(dataKey, masterKey)
	require.NoError(t, err)

	for _, offset := range []int{0, nonceSize, nonceSize + tagSize} {
		tampered := append([]byte(nil), blob...)
		tampered[offset] ^= 0x01
		_, err := UnwrapKey(tampered, masterKey)
		assert.ErrorIs(t, err, ErrKeyUnwrap, "offset %d", offset)
	}
}

func TestUnwrapKeyRejectsShortBlob(t *testing.T) {
	_, err := UnwrapKey(make([]byte, nonceSize+tagSize), randomKey(t))
	assert.ErrorIs(t, err, ErrKeyUnwrap)
}
