package beneficiary

import (
	"time"

	"github.com/google/uuid"
)

// Beneficiary is a person a user leaves keepsakes to.
type Beneficiary struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Relationship *string   `json:"relationship,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
