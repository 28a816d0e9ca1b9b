package notification

import (
	"context"
	"time"
)

// Repository manages the notification feed. Notifications are append-only
// except for the two bulk operations scoped to one identifier and the
// retention sweep.
type Repository interface {
	Insert(ctx context.Context, n *Notification) error

	// ListByPersonalID returns the identifier's notifications, newest first.
	ListByPersonalID(ctx context.Context, personalIdentifier string) ([]*Notification, error)

	// MarkAllRead marks every notification of the identifier as read and
	// returns how many were updated.
	MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error)

	// Clear deletes every notification of the identifier and returns how many
	// were removed.
	Clear(ctx context.Context, personalIdentifier string) (int64, error)

	// DeleteReadBefore removes up to limit read notifications created before
	// the cutoff. Used by the retention sweeper.
	DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
