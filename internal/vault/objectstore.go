package vault

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// DefaultSignedURLTTL applies when the caller does not request an expiry.
const DefaultSignedURLTTL = 600 * time.Second

// MinIOStore adapts minio.Client to the object store contract used by the
// secure file service. Ciphertext blobs are addressed by storage key; put and
// delete on the same key are idempotent, so callers may retry transient
// failures with the key as the idempotency token.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore constructs an adapter bound to one bucket.
func NewMinIOStore(client *minio.Client, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket}
}

// Put uploads a blob under the given key.
func (s *MinIOStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", ErrStorage, key, err)
	}
	return nil
}

// SignedGetURL issues a time-limited download URL for the blob. A ttl of zero
// or less falls back to DefaultSignedURLTTL; no maximum is enforced here, TTL
// policy belongs to the caller.
func (s *MinIOStore) SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = DefaultSignedURLTTL
	}

	expiresAt := time.Now().Add(ttl)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: sign %s: %v", ErrStorage, key, err)
	}
	return u.String(), expiresAt, nil
}

// Delete removes a blob. Removing an absent key succeeds, which keeps racing
// deletes safe.
func (s *MinIOStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorage, key, err)
	}
	return nil
}

// DeleteMany removes a batch of blobs, stopping at the first failure. An
// empty key list is a no-op.
func (s *MinIOStore) DeleteMany(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
