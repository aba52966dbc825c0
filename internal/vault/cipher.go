package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
)

// Algorithm identifies the AEAD construction stored alongside each file so
// future schemes can coexist with already-encrypted data.
const Algorithm = "aes-256-gcm"

const (
	keySize   = 32 // AES-256
	nonceSize = 12 // GCM standard nonce
	tagSize   = 16 // GCM auth tag
)

// EncryptedContent is the result of encrypting file bytes under a fresh data key.
type EncryptedContent struct {
	Ciphertext []byte
	DataKey    []byte
	IV         []byte
	Tag        []byte
}

// EncryptContent encrypts plaintext with AES-256-GCM under a newly generated
// random data key and IV. The returned ciphertext has the same length as the
// plaintext; the auth tag is carried separately. Keys and IVs are never
// reused: both are drawn fresh from crypto/rand on every call.
func EncryptContent(plaintext []byte) (EncryptedContent, error) {
	dataKey := make([]byte, keySize)
	if _, err := rand.Read(dataKey); err != nil {
		return EncryptedContent{}, fmt.Errorf("%w: generate data key: %v", ErrEncryption, err)
	}

	iv := make([]byte, nonceSize)
	if _, err := rand.Read(iv); err != nil {
		return EncryptedContent{}, fmt.Errorf("%w: generate iv: %v", ErrEncryption, err)
	}

	aead, err := newGCM(dataKey)
	if err != nil {
		return EncryptedContent{}, err
	}

	sealed := aead.Seal(nil, iv, plaintext, nil)

	// Seal appends the tag to the ciphertext; split so the stored blob is
	// exactly plaintext-sized and the tag lives in the metadata record.
	split := len(sealed) - tagSize
	return EncryptedContent{
		Ciphertext: sealed[:split],
		DataKey:    dataKey,
		IV:         iv,
		Tag:        sealed[split:],
	}, nil
}

// DecryptContent reverses EncryptContent given the data key, IV and tag. The
// retrieval flow never calls this for file bodies (decryption happens on the
// caller's side); it exists for tooling and tests.
func DecryptContent(ciphertext, dataKey, iv, tag []byte) ([]byte, error) {
	aead, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: content authentication failed", ErrEncryption)
	}
	return plaintext, nil
}

// WrapKey encrypts a data key under the master key with a fresh IV and packs
// the result into a single blob laid out wrapIV || wrapTag || wrappedKey. All
// three parts have fixed sizes, so UnwrapKey splits without a length prefix.
func WrapKey(dataKey, masterKey []byte) ([]byte, error) {
	iv := make([]byte, nonceSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("%w: generate wrap iv: %v", ErrEncryption, err)
	}

	aead, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, iv, dataKey, nil)
	split := len(sealed) - tagSize

	blob := make([]byte, 0, nonceSize+tagSize+split)
	blob = append(blob, iv...)
	blob = append(blob, sealed[split:]...)
	blob = append(blob, sealed[:split]...)
	return blob, nil
}

// UnwrapKey splits a wrapped blob at its fixed offsets and decrypts the data
// key under the master key. A tag mismatch means tampering or the wrong
// master key and surfaces as ErrKeyUnwrap, never as garbage bytes.
func UnwrapKey(blob, masterKey []byte) ([]byte, error) {
	if len(blob) <= nonceSize+tagSize {
		return nil, fmt.Errorf("%w: blob too short", ErrKeyUnwrap)
	}

	iv := blob[:nonceSize]
	tag := blob[nonceSize : nonceSize+tagSize]
	wrapped := blob[nonceSize+tagSize:]

	aead, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(wrapped)+len(tag))
	sealed = append(sealed, wrapped...)
	sealed = append(sealed, tag...)

	dataKey, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrKeyUnwrap
	}
	return dataKey, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return aead, nil
}
