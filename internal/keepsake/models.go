package keepsake

import (
	"time"

	"github.com/google/uuid"
)

// Kind classifies the keepsake content.
type Kind string

const (
	KindLetter Kind = "letter"
	KindPhoto  Kind = "photo"
	KindWish   Kind = "wish"
)

// Keepsake is a message or memento addressed to a beneficiary. A nil
// ReleaseAt means the keepsake is only released on account settlement.
type Keepsake struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	BeneficiaryID uuid.UUID  `json:"beneficiary_id"`
	Kind          Kind       `json:"kind"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	FileID        *uuid.UUID `json:"file_id,omitempty"`
	ReleaseAt     *time.Time `json:"release_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func validKind(k Kind) bool {
	switch k {
	case KindLetter, KindPhoto, KindWish:
		return true
	}
	return false
}
