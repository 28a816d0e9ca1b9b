package order

import (
	"context"

	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// Repository manages order persistence with the same conditional confirm
// primitive as charges.
type Repository interface {
	Create(ctx context.Context, o *Order) error

	// GetByID returns ErrOrderNotFound when the id is unknown.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ConfirmIfPending flips replied false->true and status to CONFIRMED as a
	// single conditional write. Returns false when already replied.
	ConfirmIfPending(ctx context.Context, id string) (bool, error)
}

// ErrOrderNotFound indicates a missing order
type ErrOrderNotFound struct {
	ID string
}

func (e ErrOrderNotFound) Error() string {
	return "order not found: " + e.ID
}

// Code implements shared.Coder
func (e ErrOrderNotFound) Code() shared.ErrorCode {
	return shared.CodeOrderNotFound
}

// Is matches any ErrOrderNotFound when the target carries no id
func (e ErrOrderNotFound) Is(target error) bool {
	t, ok := target.(ErrOrderNotFound)
	if !ok {
		return false
	}
	if t.ID == "" {
		return true
	}
	return e.ID == t.ID
}

// ErrAlreadyConfirmed indicates the order was confirmed before this attempt.
type ErrAlreadyConfirmed struct {
	ID string
}

func (e ErrAlreadyConfirmed) Error() string {
	return "order already confirmed: " + e.ID
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
