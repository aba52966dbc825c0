package keepsake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JejeDurden2/beyond/internal/beneficiary"
	"github.com/JejeDurden2/beyond/internal/vault"
	"github.com/google/uuid"
)

type keepsakeStore interface {
	Create(ctx context.Context, k Keepsake) (Keepsake, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]Keepsake, error)
	ListByBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) ([]Keepsake, error)
	Get(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error)
	Update(ctx context.Context, k Keepsake) (Keepsake, error)
	Delete(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error)
}

type beneficiaryStore interface {
	Get(ctx context.Context, ownerID, beneficiaryID uuid.UUID) (beneficiary.Beneficiary, error)
}

type fileDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (vault.SecureFile, error)
}

// Service manages keepsake lifecycle operations.
type Service struct {
	repo          keepsakeStore
	beneficiaries beneficiaryStore
	files         fileDirectory
}

// NewService constructs a keepsake service.
func NewService(repo keepsakeStore, beneficiaries beneficiaryStore, files fileDirectory) *Service {
	return &Service{
		repo:          repo,
		beneficiaries: beneficiaries,
		files:         files,
	}
}

// CreateInput carries the fields needed to record a keepsake.
type CreateInput struct {
	BeneficiaryID uuid.UUID
	Kind          Kind
	Title         string
	Message       string
	FileID        *uuid.UUID
	ReleaseAt     *time.Time
}

// Create records a keepsake for a beneficiary owned by the user.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (Keepsake, error) {
	if !validKind(input.Kind) {
		return Keepsake{}, ErrInvalidKind
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Keepsake{}, fmt.Errorf("keepsake title required")
	}

	if _, err := s.beneficiaries.Get(ctx, ownerID, input.BeneficiaryID); err != nil {
		return Keepsake{}, translateBeneficiaryError(err)
	}

	if input.FileID != nil {
		if err := s.checkFile(ctx, ownerID, *input.FileID); err != nil {
			return Keepsake{}, err
		}
	}

	k := Keepsake{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		BeneficiaryID: input.BeneficiaryID,
		Kind:          input.Kind,
		Title:         title,
		Message:       input.Message,
		FileID:        input.FileID,
		ReleaseAt:     input.ReleaseAt,
	}

	return s.repo.Create(ctx, k)
}

// List returns all of the user's keepsakes.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Keepsake, error) {
	return s.repo.List(ctx, ownerID)
}

// ListForBeneficiary returns keepsakes addressed to a single beneficiary.
func (s *Service) ListForBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) ([]Keepsake, error) {
	if _, err := s.beneficiaries.Get(ctx, ownerID, beneficiaryID); err != nil {
		return nil, translateBeneficiaryError(err)
	}
	return s.repo.ListByBeneficiary(ctx, ownerID, beneficiaryID)
}

// Get returns a keepsake ensuring ownership.
func (s *Service) Get(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error) {
	return s.repo.Get(ctx, ownerID, keepsakeID)
}

// UpdateInput carries the mutable fields of a keepsake.
type UpdateInput struct {
	Title     string
	Message   string
	ReleaseAt *time.Time
}

// Update rewrites the title, message and release date of a keepsake.
func (s *Service) Update(ctx context.Context, ownerID, keepsakeID uuid.UUID, input UpdateInput) (Keepsake, error) {
	existing, err := s.repo.Get(ctx, ownerID, keepsakeID)
	if err != nil {
		return Keepsake{}, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return Keepsake{}, fmt.Errorf("keepsake title required")
	}

	existing.Title = title
	existing.Message = input.Message
	existing.ReleaseAt = input.ReleaseAt

	return s.repo.Update(ctx, existing)
}

// Delete removes a keepsake owned by the user.
func (s *Service) Delete(ctx context.Context, ownerID, keepsakeID uuid.UUID) error {
	_, err := s.repo.Delete(ctx, ownerID, keepsakeID)
	return err
}

func (s *Service) checkFile(ctx context.Context, ownerID, fileID uuid.UUID) error {
	if s.files == nil {
		return nil
	}
	file, err := s.files.FindByID(ctx, fileID)
	if err != nil {
		return ErrFileMismatch
	}
	if file.OwnerID != ownerID {
		return ErrFileMismatch
	}
	return nil
}

func translateBeneficiaryError(err error) error {
	switch err {
	case beneficiary.ErrBeneficiaryNotFound:
		return ErrBeneficiaryMismatch
	default:
		return err
	}
}
