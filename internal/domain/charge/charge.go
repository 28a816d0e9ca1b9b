package charge

import (
	"time"

	"github.com/google/uuid"

	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// Status values for a charge. A charge starts pending and is confirmed at
// most once; the Replied flag is the idempotency guard for that transition.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
)

// Charge represents a user-submitted top-up request awaiting confirmation.
type Charge struct {
	ID                 string    `json:"id" bson:"_id"`
	PersonalIdentifier string    `json:"personal_identifier" bson:"personal_identifier"`
	Amount             float64   `json:"amount" bson:"amount"`
	Status             Status    `json:"status" bson:"status"`
	Replied            bool      `json:"replied" bson:"replied"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

// NewCharge files a pending top-up request. The id may be caller-supplied;
// when empty one is generated.
func NewCharge(id, personalIdentifier string, amount float64) (*Charge, error) {
	if personalIdentifier == "" {
		return nil, shared.ErrMissingIdentifier
	}
	if err := profile.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	return &Charge{
		ID:                 id,
		PersonalIdentifier: personalIdentifier,
		Amount:             amount,
		Status:             StatusPending,
		Replied:            false,
		CreatedAt:          time.Now(),
	}, nil
}
