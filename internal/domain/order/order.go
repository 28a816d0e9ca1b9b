package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// Status values for an order. Orders share the charge lifecycle but carry no
// amount and have no ledger effect.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
)

// Order represents a user-initiated request with a confirm lifecycle.
type Order struct {
	ID                 string    `json:"id" bson:"_id"`
	PersonalIdentifier string    `json:"personal_identifier" bson:"personal_identifier"`
	Details            string    `json:"details,omitempty" bson:"details,omitempty"`
	Status             Status    `json:"status" bson:"status"`
	Replied            bool      `json:"replied" bson:"replied"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// NewOrder files a pending order. The id may be caller-supplied; when empty
// one is generated.
func NewOrder(id, personalIdentifier, details string) (*Order, error) {
	if personalIdentifier == "" {
		return nil, shared.ErrMissingIdentifier
	}
	if id == "" {
		id = uuid.NewString()
	}

	return &Order{
		ID:                 id,
		PersonalIdentifier: personalIdentifier,
		Details:            details,
		Status:             StatusPending,
		Replied:            false,
		CreatedAt:          time.Now(),
	}, nil
}
