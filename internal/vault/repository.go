package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository is the secure file directory: persistence of SecureFile records
// with the wrapped key material flattened into the same row. No business
// logic lives here.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a secure file repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const secureFileColumns = `id, owner_id, filename, mime_type, size_bytes, storage_key,
       wrapped_key, content_iv, content_tag, algorithm, created_at, updated_at`

// Save upserts a record by id. Storage key, ownership and key material are
// immutable once written; a conflicting insert only refreshes filename and
// mime type.
func (r *Repository) Save(ctx context.Context, file SecureFile) (SecureFile, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO secure_files (id, owner_id, filename, mime_type, size_bytes, storage_key,
                          wrapped_key, content_iv, content_tag, algorithm)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id)
DO UPDATE SET filename = EXCLUDED.filename, mime_type = EXCLUDED.mime_type, updated_at = NOW()
RETURNING ` + secureFileColumns + `;`

	row := r.pool.QueryRow(ctx, query,
		file.ID,
		file.OwnerID,
		file.Filename,
		file.MimeType,
		file.SizeBytes,
		file.StorageKey,
		file.KeyMaterial.WrappedKey,
		file.KeyMaterial.ContentIV,
		file.KeyMaterial.ContentTag,
		file.KeyMaterial.Algorithm,
	)

	stored, err := scanSecureFile(row)
	if err != nil {
		return SecureFile{}, fmt.Errorf("save secure file: %w", err)
	}
	return stored, nil
}

// FindByID fetches a single record.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (SecureFile, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + secureFileColumns + ` FROM secure_files WHERE id = $1;`

	file, err := scanSecureFile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SecureFile{}, ErrFileNotFound
		}
		return SecureFile{}, fmt.Errorf("find secure file: %w", err)
	}
	return file, nil
}

// FindByOwner returns the owner's files, newest first.
func (r *Repository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]SecureFile, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `SELECT ` + secureFileColumns + ` FROM secure_files
WHERE owner_id = $1
ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list secure files: %w", err)
	}
	defer rows.Close()

	var files []SecureFile
	for rows.Next() {
		file, err := scanSecureFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan secure file: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate secure files: %w", err)
	}
	return files, nil
}

// Delete removes a record. Deleting an absent id is a no-op so racing deletes
// stay safe.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM secure_files WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete secure file: %w", err)
	}
	return nil
}

// DeleteByOwner removes all records for an owner.
func (r *Repository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	if _, err := r.pool.Exec(ctx, `DELETE FROM secure_files WHERE owner_id = $1;`, ownerID); err != nil {
		return fmt.Errorf("delete secure files by owner: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecureFile(row rowScanner) (SecureFile, error) {
	var file SecureFile
	err := row.Scan(
		&file.ID,
		&file.OwnerID,
		&file.Filename,
		&file.MimeType,
		&file.SizeBytes,
		&file.StorageKey,
		&file.KeyMaterial.WrappedKey,
		&file.KeyMaterial.ContentIV,
		&file.KeyMaterial.ContentTag,
		&file.KeyMaterial.Algorithm,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	return file, err
}
