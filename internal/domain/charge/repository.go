package charge

import (
	"context"

	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// Repository manages charge persistence. ConfirmIfPending is the compare-and-
// set primitive the whole confirmation workflow hangs on.
type Repository interface {
	Create(ctx context.Context, c *Charge) error

	// GetByID returns ErrChargeNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*Charge, error)

	// ListPending returns up to limit pending (replied=false) charges for the
	// identifier, most recent first.
	ListPending(ctx context.Context, personalIdentifier string, limit int) ([]*Charge, error)

	// ConfirmIfPending flips replied false->true and status to CONFIRMED as a
	// single conditional write keyed on the current replied value. Returns
	// false (and no error) when the charge was already replied, so two
	// concurrent confirms resolve to exactly one success.
	ConfirmIfPending(ctx context.Context, id string) (bool, error)
}

// ErrChargeNotFound indicates a missing charge
type ErrChargeNotFound struct {
	ID string
}

func (e ErrChargeNotFound) Error() string {
	return "charge not found: " + e.ID
}

// Code implements shared.Coder
func (e ErrChargeNotFound) Code() shared.ErrorCode {
	return shared.CodeChargeNotFound
}

// Is matches any ErrChargeNotFound when the target carries no id
func (e ErrChargeNotFound) Is(target error) bool {
	t, ok := target.(ErrChargeNotFound)
	if !ok {
		return false
	}
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}

// ErrAlreadyConfirmed indicates the charge was confirmed before this attempt.
// It is an expected outcome of idempotent at-least-once processing, not a
// failure to retry.
type ErrAlreadyConfirmed struct {
	ID string
}

func (e ErrAlreadyConfirmed) Error() string {
	return "charge already confirmed: " + e.ID
}

// Code implements shared.Coder
func (e ErrAlreadyConfirmed) Code() shared.ErrorCode {
	return shared.CodeAlreadyConfirmed
}

// Is matches any ErrAlreadyConfirmed when the target carries no id
func (e ErrAlreadyConfirmed) Is(target error) bool {
	t, ok := target.(ErrAlreadyConfirmed)
	if !ok {
		return false
	}
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}
