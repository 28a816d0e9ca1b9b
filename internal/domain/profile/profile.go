package profile

import (
	"math"
	"time"

	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// DefaultDisplayName is assigned to profiles auto-provisioned by a ledger or
// charge operation before the user ever registered.
const DefaultDisplayName = "User"

// Profile represents a user wallet profile. The personal identifier is the
// unique key and is immutable once assigned; the balance is mutated only
// through the ledger service's credit path.
type Profile struct {
	PersonalIdentifier string     `json:"personal_identifier" bson:"personal_identifier"`
	DisplayName        string     `json:"display_name" bson:"display_name"`
	Phone              string     `json:"phone" bson:"phone"`
	PasswordHash       string     `json:"-" bson:"password_hash"`
	Balance            float64    `json:"balance" bson:"balance"`
	CanEdit            bool       `json:"can_edit" bson:"can_edit"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewProfile creates a fresh profile with a zero balance.
func NewProfile(personalIdentifier string) (*Profile, error) {
	if personalIdentifier == "" {
		return nil, shared.ErrMissingIdentifier
	}

	now := time.Now()
	return &Profile{
		PersonalIdentifier: personalIdentifier,
		DisplayName:        DefaultDisplayName,
		Balance:            0,
		CanEdit:            false,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// ValidateAmount checks that a credit amount is a usable number: finite,
// not NaN and strictly positive.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return shared.ErrInvalidAmount
	}
	if amount <= 0 {
		return shared.ErrInvalidAmount
	}
	return nil
}
