// Package engine holds the business logic of the top-up ledger. Every service
// is written once against the store.Gateway port, so it runs unchanged on
// either storage backend.
package engine

import (
	"context"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// RegistryService defines the interface for profile registry operations
type RegistryService interface {
	// EnsureProfile returns the existing profile or atomically creates one
	// with a zero balance. It never resets an existing balance.
	EnsureProfile(ctx context.Context, personalIdentifier string) (*profile.Profile, error)

	// FindProfile is a read-only lookup. Returns (nil, nil) when absent.
	FindProfile(ctx context.Context, personalIdentifier string) (*profile.Profile, error)

	// UpdateProfile persists name/contact attribute changes. The balance is
	// never touched through this path.
	UpdateProfile(ctx context.Context, p *profile.Profile) error
}

// LedgerService defines the interface for balance mutations. Credit is the
// only path in the system permitted to change a balance.
type LedgerService interface {
	// Credit applies amount to the identifier's balance and returns the new
	// balance. Rejects invalid amounts, missing identifiers and banned
	// identifiers before any mutation. A missing profile is created with the
	// credited amount as its opening balance.
	Credit(ctx context.Context, personalIdentifier string, amount float64) (float64, error)
}

// ReconcilerService defines the interface for charge lifecycle operations.
type ReconcilerService interface {
	// FileCharge records a pending top-up request. An empty id is generated.
	FileCharge(ctx context.Context, id, personalIdentifier string, amount float64) (*charge.Charge, error)

	// GetCharge returns ErrChargeNotFound when the id is unknown.
	GetCharge(ctx context.Context, id string) (*charge.Charge, error)

	// MatchAndConfirm reconciles an applied credit against the identifier's
	// pending charges. A pending charge with the exact amount is preferred;
	// otherwise the most recent pending charge is taken. A lost confirm race
	// is reported as AlreadyConfirmed without retrying another candidate.
	MatchAndConfirm(ctx context.Context, personalIdentifier string, amount float64) (*shared.MatchResult, error)

	// ConfirmByID credits the charge amount to the owning profile and
	// confirms the charge as one atomic unit, then emits a notification.
	// Returns ErrChargeNotFound or ErrAlreadyConfirmed; on a lost confirm
	// race the credit is rolled back, never double-applied.
	ConfirmByID(ctx context.Context, id string) (float64, error)
}

// OrderService defines the interface for order lifecycle operations. Orders
// share the confirm idempotency shape of charges but have no ledger effect.
type OrderService interface {
	// FileOrder records a pending order. An empty id is generated.
	FileOrder(ctx context.Context, id, personalIdentifier, details string) (*order.Order, error)

	// GetOrder returns ErrOrderNotFound when the id is unknown.
	GetOrder(ctx context.Context, id string) (*order.Order, error)

	// ConfirmByID confirms the order and emits a notification. Returns
	// ErrOrderNotFound or ErrAlreadyConfirmed.
	ConfirmByID(ctx context.Context, id string) error
}

// BanService defines the interface for the ban list.
type BanService interface {
	// Ban blocks the identifier, retaining the reason for audit.
	Ban(ctx context.Context, personalIdentifier, reason string) error

	// Unban lifts a ban. Unbanning an identifier that is not banned is a no-op.
	Unban(ctx context.Context, personalIdentifier string) error

	// IsBanned reports ban-set membership.
	IsBanned(ctx context.Context, personalIdentifier string) (bool, error)

	// Get returns the ban entry, or (nil, nil) when not banned.
	Get(ctx context.Context, personalIdentifier string) (*ban.BannedIdentifier, error)
}

// NotifierService defines the interface for the notification feed.
type NotifierService interface {
	// Emit appends an unread notification. Best-effort: a persistence
	// failure is logged and never propagated to the caller.
	Emit(ctx context.Context, personalIdentifier, text string)

	// List returns the identifier's notifications, newest first.
	List(ctx context.Context, personalIdentifier string) ([]*notification.Notification, error)

	// MarkAllRead marks the identifier's notifications read and returns the
	// number updated.
	MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error)

	// Clear deletes the identifier's notifications and returns the number removed.
	Clear(ctx context.Context, personalIdentifier string) (int64, error)
}

// Outcome is the result of interpreting one inbound message. Ack, when
// non-empty, is the plain-text acknowledgment to send back to the channel
// the message came from.
type Outcome struct {
	Kind               shared.CommandKind  `json:"kind"`
	PersonalIdentifier string              `json:"personal_identifier,omitempty"`
	NewBalance         float64             `json:"new_balance,omitempty"`
	Match              *shared.MatchResult `json:"match,omitempty"`
	Ack                string              `json:"ack,omitempty"`
}

// InterpreterService defines the interface for the free-text command
// interpreter driving the messaging channel.
type InterpreterService interface {
	// Interpret classifies the message into at most one recognized command
	// and executes it. Unrecognized text yields a CommandNone outcome with
	// no error, no side effect and no acknowledgment.
	Interpret(ctx context.Context, msg *shared.InboundMessage) (*Outcome, error)
}
