package vault

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SecureFile is the metadata record for one encrypted blob. SizeBytes is the
// plaintext length, which equals the blob length since the auth tag is kept
// here rather than in object storage.
type SecureFile struct {
	ID          uuid.UUID          `json:"id"`
	OwnerID     uuid.UUID          `json:"owner_id"`
	Filename    string             `json:"filename"`
	MimeType    string             `json:"mime_type"`
	SizeBytes   int64              `json:"size_bytes"`
	StorageKey  string             `json:"-"`
	KeyMaterial WrappedKeyMaterial `json:"-"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// WrappedKeyMaterial bundles everything needed to recover a file's data key:
// the wrapped-key blob (wrap IV + wrap tag + wrapped key, base64), the content
// IV and auth tag used on the file bytes, and the algorithm identifier. It is
// created together with its SecureFile and never persisted on its own.
type WrappedKeyMaterial struct {
	WrappedKey string
	ContentIV  string
	ContentTag string
	Algorithm  string
}

// NewWrappedKeyMaterial validates all four fields at construction time so a
// half-empty record can never reach the directory.
func NewWrappedKeyMaterial(wrappedKey, contentIV, contentTag, algorithm string) (WrappedKeyMaterial, error) {
	if wrappedKey == "" || contentIV == "" || contentTag == "" || algorithm == "" {
		return WrappedKeyMaterial{}, fmt.Errorf("%w: all fields are required", ErrInvalidKeyMaterial)
	}
	return WrappedKeyMaterial{
		WrappedKey: wrappedKey,
		ContentIV:  contentIV,
		ContentTag: contentTag,
		Algorithm:  algorithm,
	}, nil
}

// FileSummary is the response payload for store and list operations.
type FileSummary struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// RetrievalBundle carries everything an authorized caller needs to download
// and decrypt a file locally: a time-limited URL for the ciphertext plus the
// unwrapped data key and content IV/tag. The server never decrypts file
// bodies; the bundle is built fresh per request and never stored.
type RetrievalBundle struct {
	URL        string      `json:"url"`
	ExpiresAt  time.Time   `json:"expires_at"`
	DataKey    string      `json:"data_key"`
	ContentIV  string      `json:"content_iv"`
	ContentTag string      `json:"content_tag"`
	Algorithm  string      `json:"algorithm"`
	File       FileSummary `json:"file"`
}
