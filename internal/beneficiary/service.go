package beneficiary

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// KeepsakeIndex defines the contract used to clean up keepsakes addressed to
// a beneficiary being removed.
type KeepsakeIndex interface {
	DeleteByBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, ownerID uuid.UUID, fullName, email string, relationship *string) (Beneficiary, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Beneficiary, error)
	Get(ctx context.Context, ownerID, beneficiaryID uuid.UUID) (Beneficiary, error)
	Delete(ctx context.Context, ownerID, beneficiaryID uuid.UUID) error
}

// Service orchestrates beneficiary operations.
type Service struct {
	repo      repository
	keepsakes KeepsakeIndex
}

// NewService constructs a beneficiary service.
func NewService(repo repository, keepsakes KeepsakeIndex) *Service {
	return &Service{
		repo:      repo,
		keepsakes: keepsakes,
	}
}

// CreateBeneficiary registers a new beneficiary for the owner.
func (s *Service) CreateBeneficiary(ctx context.Context, ownerID uuid.UUID, fullName, email string, relationship *string) (Beneficiary, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Beneficiary{}, fmt.Errorf("beneficiary name required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Beneficiary{}, fmt.Errorf("invalid beneficiary email")
	}
	return s.repo.Create(ctx, ownerID, fullName, email, relationship)
}

// ListBeneficiaries returns the user's beneficiaries.
func (s *Service) ListBeneficiaries(ctx context.Context, ownerID uuid.UUID) ([]Beneficiary, error) {
	return s.repo.List(ctx, ownerID)
}

// GetBeneficiary returns a beneficiary ensuring ownership.
func (s *Service) GetBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) (Beneficiary, error) {
	return s.repo.Get(ctx, ownerID, beneficiaryID)
}

// DeleteBeneficiary removes a beneficiary and every keepsake addressed to them.
func (s *Service) DeleteBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) error {
	if _, err := s.repo.Get(ctx, ownerID, beneficiaryID); err != nil {
		return err
	}

	if s.keepsakes != nil {
		if err := s.keepsakes.DeleteByBeneficiary(ctx, ownerID, beneficiaryID); err != nil {
			return fmt.Errorf("delete keepsakes for beneficiary: %w", err)
		}
	}

	return s.repo.Delete(ctx, ownerID, beneficiaryID)
}
