package vault

import (
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Derivation salt is fixed at the application level: two deployments sharing
// an operator secret derive the same master key, and changing it invalidates
// every wrapped key already in the directory. Kept for compatibility.
var masterKeySalt = []byte("beyond-vault-master-key-v1")

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Custodian holds the process-lifetime master key and exposes wrap/unwrap.
// The key never leaves the struct: it is not logged, serialized or returned.
type Custodian struct {
	masterKey []byte
}

// NewCustodian derives the master key from the operator secret with Argon2id.
// An empty secret is a configuration error and aborts startup.
func NewCustodian(secret string) (*Custodian, error) {
	if secret == "" {
		return nil, errors.New("vault master secret is required")
	}
	key := argon2.IDKey([]byte(secret), masterKeySalt, argonTime, argonMemory, argonThreads, keySize)
	return &Custodian{masterKey: key}, nil
}

// Wrap encrypts a data key under the master key and returns the blob base64
// encoded for storage in a text column.
func (c *Custodian) Wrap(dataKey []byte) (string, error) {
	blob, err := WrapKey(dataKey, c.masterKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Unwrap decodes a stored blob and recovers the data key. Authentication
// failure surfaces as ErrKeyUnwrap.
func (c *Custodian) Unwrap(encoded string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrKeyUnwrap
	}
	return UnwrapKey(blob, c.masterKey)
}
