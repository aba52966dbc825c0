package beneficiary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

// Repository allows access to beneficiary persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a beneficiary repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new beneficiary for the owner.
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, fullName, email string, relationship *string) (Beneficiary, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO beneficiaries (id, owner_id, full_name, email, relationship)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, owner_id, full_name, email, relationship, created_at, updated_at;`

	row := r.pool.QueryRow(ctx, query, uuid.New(), ownerID, strings.TrimSpace(fullName), strings.ToLower(email), relationship)

	var b Beneficiary
	if err := row.Scan(&b.ID, &b.OwnerID, &b.FullName, &b.Email, &b.Relationship, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Beneficiary{}, ErrBeneficiaryEmailExists
		}
		return Beneficiary{}, fmt.Errorf("create beneficiary: %w", err)
	}

	return b, nil
}

// List returns all beneficiaries owned by the user, newest first.
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID) ([]Beneficiary, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT id, owner_id, full_name, email, relationship, created_at, updated_at
FROM beneficiaries
WHERE owner_id = $1
ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	var beneficiaries []Beneficiary
	for rows.Next() {
		var b Beneficiary
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.FullName, &b.Email, &b.Relationship, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		beneficiaries = append(beneficiaries, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate beneficiaries: %w", err)
	}
	return beneficiaries, nil
}

// Get fetches a single beneficiary ensuring ownership.
func (r *Repository) Get(ctx context.Context, ownerID, beneficiaryID uuid.UUID) (Beneficiary, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT id, owner_id, full_name, email, relationship, created_at, updated_at
FROM beneficiaries
WHERE id = $1 AND owner_id = $2;`

	var b Beneficiary
	err := r.pool.QueryRow(ctx, query, beneficiaryID, ownerID).Scan(
		&b.ID,
		&b.OwnerID,
		&b.FullName,
		&b.Email,
		&b.Relationship,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Beneficiary{}, ErrBeneficiaryNotFound
		}
		return Beneficiary{}, fmt.Errorf("get beneficiary: %w", err)
	}

	return b, nil
}

// Delete removes a beneficiary owned by the user.
func (r *Repository) Delete(ctx context.Context, ownerID, beneficiaryID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	commandTag, err := r.pool.Exec(ctx, `DELETE FROM beneficiaries WHERE id = $1 AND owner_id = $2;`, beneficiaryID, ownerID)
	if err != nil {
		return fmt.Errorf("delete beneficiary: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return ErrBeneficiaryNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
