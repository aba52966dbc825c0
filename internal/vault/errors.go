package vault

import "errors"

var (
	// ErrInvalidKeyMaterial indicates wrapped key material with a missing field.
	ErrInvalidKeyMaterial = errors.New("invalid wrapped key material")
	// ErrFileNotFound signals that the secure file could not be located.
	ErrFileNotFound = errors.New("secure file not found")
	// ErrForbidden is returned when the requester does not own the file.
	ErrForbidden = errors.New("forbidden")
	// ErrEncryption indicates a failure while encrypting content or wrapping a key.
	ErrEncryption = errors.New("encryption failure")
	// ErrKeyUnwrap indicates the wrapped data key failed authentication on unwrap.
	// Distinct from transient I/O errors: it means tampering or a wrong master key.
	ErrKeyUnwrap = errors.New("key unwrap failure")
	// ErrStorage indicates the object store rejected or could not complete an operation.
	ErrStorage = errors.New("object storage failure")
)
