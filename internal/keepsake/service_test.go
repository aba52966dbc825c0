package keepsake

import (
	"context"
	"testing"
	"time"

	"github.com/JejeDurden2/beyond/internal/beneficiary"
	"github.com/JejeDurden2/beyond/internal/vault"
	"github.com/google/uuid"
)

func TestCreateKeepsake(t *testing.T) {
	repo := newFakeKeepsakeRepo()
	beneficiaries := newFakeBeneficiaryStore()
	service := NewService(repo, beneficiaries, &fakeFileDirectory{files: map[uuid.UUID]vault.SecureFile{}})

	ownerID := uuid.New()
	beneficiaryID := beneficiaries.add(ownerID)

	created, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindLetter,
		Title:         "  For your wedding day  ",
		Message:       "I am so proud of you.",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.Title != "For your wedding day" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
	if created.Kind != KindLetter {
		t.Fatalf("unexpected kind: %s", created.Kind)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected keepsake stored, got %d", len(repo.records))
	}
}

func TestCreateKeepsakeValidation(t *testing.T) {
	repo := newFakeKeepsakeRepo()
	beneficiaries := newFakeBeneficiaryStore()
	service := NewService(repo, beneficiaries, nil)

	ownerID := uuid.New()
	beneficiaryID := beneficiaries.add(ownerID)

	if _, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          Kind("poem"),
		Title:         "Untitled",
	}); err != ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}

	if _, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindWish,
		Title:         "   ",
	}); err == nil {
		t.Fatalf("expected error for blank title")
	}

	if _, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: uuid.New(),
		Kind:          KindWish,
		Title:         "Untitled",
	}); err != ErrBeneficiaryMismatch {
		t.Fatalf("expected ErrBeneficiaryMismatch, got %v", err)
	}
}

func TestCreateKeepsakeChecksAttachedFile(t *testing.T) {
	repo := newFakeKeepsakeRepo()
	beneficiaries := newFakeBeneficiaryStore()
	files := &fakeFileDirectory{files: map[uuid.UUID]vault.SecureFile{}}
	service := NewService(repo, beneficiaries, files)

	ownerID := uuid.New()
	beneficiaryID := beneficiaries.add(ownerID)

	fileID := uuid.New()
	files.files[fileID] = vault.SecureFile{ID: fileID, OwnerID: ownerID}

	if _, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindPhoto,
		Title:         "Summer 2019",
		FileID:        &fileID,
	}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	strangerFileID := uuid.New()
	files.files[strangerFileID] = vault.SecureFile{ID: strangerFileID, OwnerID: uuid.New()}

	if _, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindPhoto,
		Title:         "Summer 2020",
		FileID:        &strangerFileID,
	}); err != ErrFileMismatch {
		t.Fatalf("expected ErrFileMismatch, got %v", err)
	}

	missingFileID := uuid.New()
	if _, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindPhoto,
		Title:         "Summer 2021",
		FileID:        &missingFileID,
	}); err != ErrFileMismatch {
		t.Fatalf("expected ErrFileMismatch for unknown file, got %v", err)
	}
}

func TestUpdateKeepsake(t *testing.T) {
	repo := newFakeKeepsakeRepo()
	beneficiaries := newFakeBeneficiaryStore()
	service := NewService(repo, beneficiaries, nil)

	ownerID := uuid.New()
	beneficiaryID := beneficiaries.add(ownerID)

	created, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindLetter,
		Title:         "Draft",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	releaseAt := time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)
	updated, err := service.Update(context.Background(), ownerID, created.ID, UpdateInput{
		Title:     "Final letter",
		Message:   "With all my love.",
		ReleaseAt: &releaseAt,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	if updated.Title != "Final letter" {
		t.Fatalf("unexpected title: %q", updated.Title)
	}
	if updated.ReleaseAt == nil || !updated.ReleaseAt.Equal(releaseAt) {
		t.Fatalf("unexpected release date: %v", updated.ReleaseAt)
	}

	if _, err := service.Update(context.Background(), uuid.New(), created.ID, UpdateInput{Title: "Hijack"}); err != ErrKeepsakeNotFound {
		t.Fatalf("expected ErrKeepsakeNotFound for stranger, got %v", err)
	}
}

func TestListForBeneficiary(t *testing.T) {
	repo := newFakeKeepsakeRepo()
	beneficiaries := newFakeBeneficiaryStore()
	service := NewService(repo, beneficiaries, nil)

	ownerID := uuid.New()
	firstID := beneficiaries.add(ownerID)
	secondID := beneficiaries.add(ownerID)

	for _, target := range []uuid.UUID{firstID, firstID, secondID} {
		if _, err := service.Create(context.Background(), ownerID, CreateInput{
			BeneficiaryID: target,
			Kind:          KindWish,
			Title:         "A wish",
		}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	list, err := service.ListForBeneficiary(context.Background(), ownerID, firstID)
	if err != nil {
		t.Fatalf("ListForBeneficiary returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 keepsakes, got %d", len(list))
	}

	if _, err := service.ListForBeneficiary(context.Background(), ownerID, uuid.New()); err != ErrBeneficiaryMismatch {
		t.Fatalf("expected ErrBeneficiaryMismatch, got %v", err)
	}
}

func TestDeleteKeepsake(t *testing.T) {
	repo := newFakeKeepsakeRepo()
	beneficiaries := newFakeBeneficiaryStore()
	service := NewService(repo, beneficiaries, nil)

	ownerID := uuid.New()
	beneficiaryID := beneficiaries.add(ownerID)

	created, err := service.Create(context.Background(), ownerID, CreateInput{
		BeneficiaryID: beneficiaryID,
		Kind:          KindLetter,
		Title:         "Goodbye",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := service.Delete(context.Background(), ownerID, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected keepsake removed, remaining %d", len(repo.records))
	}

	if err := service.Delete(context.Background(), ownerID, created.ID); err != ErrKeepsakeNotFound {
		t.Fatalf("expected ErrKeepsakeNotFound, got %v", err)
	}
}

// --- fakes ---

type fakeKeepsakeRepo struct {
	records map[uuid.UUID]Keepsake
}

func newFakeKeepsakeRepo() *fakeKeepsakeRepo {
	return &fakeKeepsakeRepo{records: make(map[uuid.UUID]Keepsake)}
}

func (f *fakeKeepsakeRepo) Create(ctx context.Context, k Keepsake) (Keepsake, error) {
	k.CreatedAt = time.Now()
	k.UpdatedAt = k.CreatedAt
	f.records[k.ID] = k
	return k, nil
}

func (f *fakeKeepsakeRepo) List(ctx context.Context, ownerID uuid.UUID) ([]Keepsake, error) {
	var list []Keepsake
	for _, k := range f.records {
		if k.OwnerID == ownerID {
			list = append(list, k)
		}
	}
	return list, nil
}

func (f *fakeKeepsakeRepo) ListByBeneficiary(ctx context.Context, ownerID, beneficiaryID uuid.UUID) ([]Keepsake, error) {
	var list []Keepsake
	for _, k := range f.records {
		if k.OwnerID == ownerID && k.BeneficiaryID == beneficiaryID {
			list = append(list, k)
		}
	}
	return list, nil
}

func (f *fakeKeepsakeRepo) Get(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error) {
	k, ok := f.records[keepsakeID]
	if !ok || k.OwnerID != ownerID {
		return Keepsake{}, ErrKeepsakeNotFound
	}
	return k, nil
}

func (f *fakeKeepsakeRepo) Update(ctx context.Context, k Keepsake) (Keepsake, error) {
	existing, ok := f.records[k.ID]
	if !ok || existing.OwnerID != k.OwnerID {
		return Keepsake{}, ErrKeepsakeNotFound
	}
	k.UpdatedAt = time.Now()
	f.records[k.ID] = k
	return k, nil
}

func (f *fakeKeepsakeRepo) Delete(ctx context.Context, ownerID, keepsakeID uuid.UUID) (Keepsake, error) {
	k, ok := f.records[keepsakeID]
	if !ok || k.OwnerID != ownerID {
		return Keepsake{}, ErrKeepsakeNotFound
	}
	delete(f.records, keepsakeID)
	return k, nil
}

type fakeBeneficiaryStore struct {
	records map[uuid.UUID]beneficiary.Beneficiary
}

func newFakeBeneficiaryStore() *fakeBeneficiaryStore {
	return &fakeBeneficiaryStore{records: make(map[uuid.UUID]beneficiary.Beneficiary)}
}

func (f *fakeBeneficiaryStore) add(ownerID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.records[id] = beneficiary.Beneficiary{ID: id, OwnerID: ownerID}
	return id
}

func (f *fakeBeneficiaryStore) Get(ctx context.Context, ownerID, beneficiaryID uuid.UUID) (beneficiary.Beneficiary, error) {
	b, ok := f.records[beneficiaryID]
	if !ok || b.OwnerID != ownerID {
		return beneficiary.Beneficiary{}, beneficiary.ErrBeneficiaryNotFound
	}
	return b, nil
}

type fakeFileDirectory struct {
	files map[uuid.UUID]vault.SecureFile
}

func (f *fakeFileDirectory) FindByID(ctx context.Context, id uuid.UUID) (vault.SecureFile, error) {
	file, ok := f.files[id]
	if !ok {
		return vault.SecureFile{}, vault.ErrFileNotFound
	}
	return file, nil
}
