package keepsake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

// Repository provides access to keepsake persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new keepsake repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const keepsakeColumns = "id, owner_id, beneficiary_id, kind, title, message, file_id, release_at, created_at, updated_at"

// Create inserts a new keepsake.
func (r *Repository) Create(ctx context.Context, k Keepsake) (Keepsake, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO keepsakes (id, owner_id, beneficiary_id, kind, title, message, file_id, release_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + keepsakeColumns + `;`

	row := r.pool.QueryRow(ctx, query,
		k.ID,
		k.OwnerID,
		k.BeneficiaryID,
		k.Kind,
		k.Title,
		k.Message,
		k.FileID,
		k.ReleaseAt,
	)

	stored, err := scanKeepsake(row)
	if err != nil {
		return Keepsake{}, fmt.Errorf("create keepsake: %w", err)
	}
	return stored, nil
}

// List returns all keepsakes owned by the user, newest first.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]Keepsake, error) {
	query := `
SELECT ` + keepsakeColumns + `
FROM keepsakes
WHERE owner_id = $1
ORDER BY created_at DESC;`

	return r.queryMany(ctx, query, ownerID)
}

// ListByBeneficiary returns the owner's keepsakes addressed to one beneficiary.
func (r *Repository) ListByBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) ([]Keepsake, error) {
	query := `
SELECT ` + keepsakeColumns + `
FROM keepsakes
WHERE owner_id = $1 AND beneficiary_id = $2
ORDER BY created_at DESC;`

	return r.queryMany(ctx, query, ownerID, beneficiaryID)
}

// Get fetches a single keepsake ensuring ownership.
func (r *Repository) Get(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
SELECT ` + keepsakeColumns + `
FROM keepsakes
WHERE id = $1 AND owner_id = $2;`

	k, err := scanKeepsake(r.pool.QueryRow(ctx, query, keepsakeID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Keepsake{}, ErrKeepsakeNotFound
		}
		return Keepsake{}, fmt.Errorf("get keepsake: %w", err)
	}
	return k, nil
}

// Update rewrites the mutable fields of a keepsake.
func (r *Repository) Update(ctx context.Context, k Keepsake) (Keepsake, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE keepsakes
SET title = $3, message = $4, release_at = $5, updated_at = now()
WHERE id = $1 AND owner_id = $2
RETURNING ` + keepsakeColumns + `;`

	stored, err := scanKeepsake(r.pool.QueryRow(ctx, query, k.ID, k.OwnerID, k.Title, k.Message, k.ReleaseAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Keepsake{}, ErrKeepsakeNotFound
		}
		return Keepsake{}, fmt.Errorf("update keepsake: %w", err)
	}
	return stored, nil
}

// Delete removes a keepsake owned by the user and returns the deleted record.
func (r *Repository) Delete(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
DELETE FROM keepsakes
WHERE id = $1 AND owner_id = $2
RETURNING ` + keepsakeColumns + `;`

	k, err := scanKeepsake(r.pool.QueryRow(ctx, query, keepsakeID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Keepsake{}, ErrKeepsakeNotFound
		}
		return Keepsake{}, fmt.Errorf("delete keepsake: %w", err)
	}
	return k, nil
}

// DeleteByBeneficiary removes every keepsake addressed to a beneficiary.
// Removing zero rows is not an error.
func (r *Repository) DeleteByBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `DELETE FROM keepsakes WHERE owner_id = $1 AND beneficiary_id = $2;`
	if _, err := r.pool.Exec(ctx, query, ownerID, beneficiaryID); err != nil {
		return fmt.Errorf("delete keepsakes for beneficiary: %w", err)
	}
	return nil
}

func (r *Repository) queryMany(ctx context.Context, query string, args ...any) ([]Keepsake, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list keepsakes: %w", err)
	}
	defer rows.Close()

	var keepsakes []Keepsake
	for rows.Next() {
		k, err := scanKeepsake(rows)
		if err != nil {
			return nil, fmt.Errorf("scan keepsake: %w", err)
		}
		keepsakes = append(keepsakes, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keepsakes: %w", err)
	}
	return keepsakes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKeepsake(row rowScanner) (Keepsake, error) {
	var k Keepsake
	err := row.Scan(
		&k.ID,
		&k.OwnerID,
		&k.BeneficiaryID,
		&k.Kind,
		&k.Title,
		&k.Message,
		&k.FileID,
		&k.ReleaseAt,
		&k.CreatedAt,
		&k.UpdatedAt,
	)
	return k, err
}
