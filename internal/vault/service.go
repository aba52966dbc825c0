package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/JejeDurden2/beyond/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type directory interface {
	Save(ctx context.Context, file SecureFile) (SecureFile, error)
	FindByID(ctx context.Context, id uuid.UUID) (SecureFile, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]SecureFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}

type objectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error)
	Delete(ctx context.Context, key string) error
	DeleteMany(ctx context.Context, keys []string) error
}

type keyCustodian interface {
	Wrap(dataKey []byte) (string, error)
	Unwrap(blob string) ([]byte, error)
}

// Service orchestrates envelope encryption, object storage and the secure
// file directory. Orderings are fixed: a metadata record is written only
// after its blob is stored, and deleted only after its blob is removed, so a
// record existing implies its ciphertext exists.
type Service struct {
	directory directory
	store     objectStore
	custodian keyCustodian
	logger    *zap.Logger
}

// NewService constructs a secure file service.
func NewService(directory directory, store objectStore, custodian keyCustodian, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		directory: directory,
		store:     store,
		custodian: custodian,
		logger:    logger,
	}
}

// Store encrypts plaintext under a fresh data key, uploads the ciphertext,
// wraps the key and persists the metadata record last. Any failure aborts the
// sequence; a failed upload leaves no record, so no metadata ever points at a
// missing blob.
func (s *Service) Store(ctx context.Context, ownerID uuid.UUID, filename, mimeType string, plaintext []byte) (FileSummary, error) {
	encrypted, err := EncryptContent(plaintext)
	if err != nil {
		return FileSummary{}, err
	}

	storageKey := buildStorageKey(ownerID, filename)

	// Ciphertext is opaque bytes; the original mime type only applies to the
	// plaintext and is kept in metadata instead.
	if err := s.store.Put(ctx, storageKey, encrypted.Ciphertext, "application/octet-stream"); err != nil {
		return FileSummary{}, err
	}

	wrappedKey, err := s.custodian.Wrap(encrypted.DataKey)
	if err != nil {
		return FileSummary{}, err
	}

	material, err := NewWrappedKeyMaterial(
		wrappedKey,
		base64.StdEncoding.EncodeToString(encrypted.IV),
		base64.StdEncoding.EncodeToString(encrypted.Tag),
		Algorithm,
	)
	if err != nil {
		return FileSummary{}, err
	}

	stored, err := s.directory.Save(ctx, SecureFile{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Filename:    sanitizeFilename(filename),
		MimeType:    mimeType,
		SizeBytes:   int64(len(plaintext)),
		StorageKey:  storageKey,
		KeyMaterial: material,
	})
	if err != nil {
		return FileSummary{}, fmt.Errorf("persist secure file: %w", err)
	}

	metrics.VaultUploads.Inc()
	return summaryOf(stored), nil
}

// RetrieveURL returns a retrieval bundle: a signed download URL plus the
// unwrapped data key and content IV/tag so the caller decrypts locally. The
// server never decrypts file bodies.
func (s *Service) RetrieveURL(ctx context.Context, fileID, requesterID uuid.UUID) (RetrievalBundle, error) {
	file, err := s.directory.FindByID(ctx, fileID)
	if err != nil {
		return RetrievalBundle{}, err
	}
	if file.OwnerID != requesterID {
		return RetrievalBundle{}, ErrForbidden
	}

	url, expiresAt, err := s.store.SignedGetURL(ctx, file.StorageKey, DefaultSignedURLTTL)
	if err != nil {
		return RetrievalBundle{}, err
	}

	dataKey, err := s.custodian.Unwrap(file.KeyMaterial.WrappedKey)
	if err != nil {
		if errors.Is(err, ErrKeyUnwrap) {
			metrics.KeyUnwrapFailures.Inc()
			s.logger.Warn("data key failed authentication on unwrap",
				zap.String("file_id", file.ID.String()),
				zap.String("owner_id", file.OwnerID.String()))
		}
		return RetrievalBundle{}, err
	}

	metrics.VaultRetrievals.Inc()
	return RetrievalBundle{
		URL:        url,
		ExpiresAt:  expiresAt,
		DataKey:    base64.StdEncoding.EncodeToString(dataKey),
		ContentIV:  file.KeyMaterial.ContentIV,
		ContentTag: file.KeyMaterial.ContentTag,
		Algorithm:  file.KeyMaterial.Algorithm,
		File:       summaryOf(file),
	}, nil
}

// Delete removes the blob first and the metadata record only afterwards. A
// failed blob delete leaves the record intact so the operation can be
// retried; the reverse order would orphan an undiscoverable blob.
func (s *Service) Delete(ctx context.Context, fileID, requesterID uuid.UUID) error {
	file, err := s.directory.FindByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file.OwnerID != requesterID {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, file.StorageKey); err != nil {
		return err
	}

	if err := s.directory.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("delete secure file record: %w", err)
	}

	metrics.VaultDeletes.Inc()
	return nil
}

// List returns summaries of the owner's files, newest first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]FileSummary, error) {
	files, err := s.directory.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]FileSummary, 0, len(files))
	for _, file := range files {
		summaries = append(summaries, summaryOf(file))
	}
	return summaries, nil
}

// DeleteAllForOwner removes every blob and record belonging to an owner,
// blobs first. Used when an account is closed.
func (s *Service) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	files, err := s.directory.FindByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(files))
	for _, file := range files {
		keys = append(keys, file.StorageKey)
	}

	if err := s.store.DeleteMany(ctx, keys); err != nil {
		return err
	}
	return s.directory.DeleteByOwner(ctx, ownerID)
}

// buildStorageKey derives the blob key from the owner and a fresh random id,
// keeping the original extension when one exists. The format
// secure-files/{owner}/{id}{.ext} is a storage-layout contract; existing
// buckets depend on it.
func buildStorageKey(ownerID uuid.UUID, filename string) string {
	key := fmt.Sprintf("secure-files/%s/%s", ownerID, uuid.New())
	if ext := path.Ext(filename); ext != "" && ext != "." {
		key += ext
	}
	return key
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "document"
	}
	return name
}

func summaryOf(file SecureFile) FileSummary {
	return FileSummary{
		ID:        file.ID,
		Filename:  file.Filename,
		MimeType:  file.MimeType,
		SizeBytes: file.SizeBytes,
		CreatedAt: file.CreatedAt,
	}
}
