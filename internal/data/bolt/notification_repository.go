package bolt

import (
	"context"
	"log/slog"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// NotificationRepository implements the notification.Repository interface on bbolt
type NotificationRepository struct {
	view   view
	logger *slog.Logger
}

// NewNotificationRepository creates a new bolt notification repository
func NewNotificationRepository(logger *slog.Logger, db *persistence.BoltDB) *NotificationRepository {
	return &NotificationRepository{
		view:   view{db: db.DB()},
		logger: logger,
	}
}

// WithTx binds the repository to an open update transaction.
func (r *NotificationRepository) WithTx(tx *bolt.Tx) *NotificationRepository {
	return &NotificationRepository{
		view:   view{tx: tx},
		logger: r.logger,
	}
}

// Insert appends a notification to the feed.
func (r *NotificationRepository) Insert(ctx context.Context, n *notification.Notification) error {
	err := r.view.update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket(persistence.BucketNotifications), n.ID, n)
	})
	if err != nil {
		r.logger.Error("Failed to insert notification", "id", n.ID, "error", err)
		return err
	}
	return nil
}

// ListByPersonalID retrieves an identifier's notifications, newest first.
func (r *NotificationRepository) ListByPersonalID(ctx context.Context, personalIdentifier string) ([]*notification.Notification, error) {
	var notifications []*notification.Notification
	err := r.view.read(func(tx *bolt.Tx) error {
		return tx.Bucket(persistence.BucketNotifications).ForEach(func(k, v []byte) error {
			var n notification.Notification
			if err := decodeValue(v, &n); err != nil {
				return err
			}
			if n.PersonalIdentifier == personalIdentifier {
				notifications = append(notifications, &n)
			}
			return nil
		})
	})
	if err != nil {
		r.logger.Error("Failed to list notifications", "personal_identifier", personalIdentifier, "error", err)
		return nil, err
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications, nil
}

// MarkAllRead marks every notification of the identifier as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error) {
	var updated int64
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketNotifications)
		return bucket.ForEach(func(k, v []byte) error {
			var n notification.Notification
			if err := decodeValue(v, &n); err != nil {
				return err
			}
			if n.PersonalIdentifier != personalIdentifier || n.Read {
				return nil
			}
			n.Read = true
			updated++
			return putJSON(bucket, n.ID, &n)
		})
	})
	if err != nil {
		r.logger.Error("Failed to mark notifications read", "personal_identifier", personalIdentifier, "error", err)
		return 0, err
	}
	return updated, nil
}

// Clear deletes every notification of the identifier.
func (r *NotificationRepository) Clear(ctx context.Context, personalIdentifier string) (int64, error) {
	var deleted int64
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketNotifications)

		// Keys are collected first: deleting from inside ForEach invalidates
		// the cursor.
		var keys [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var n notification.Notification
			if err := decodeValue(v, &n); err != nil {
				return err
			}
			if n.PersonalIdentifier == personalIdentifier {
				key := make([]byte, len(k))
				copy(key, k)
				keys = append(keys, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range keys {
			if err := bucket.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to clear notifications", "personal_identifier", personalIdentifier, "error", err)
		return 0, err
	}
	return deleted, nil
}

// DeleteReadBefore removes up to limit read notifications older than the cutoff.
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	var deleted int64
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketNotifications)

		var keys [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			if len(keys) >= limit {
				return nil
			}
			var n notification.Notification
			if err := decodeValue(v, &n); err != nil {
				return err
			}
			if n.Read && n.CreatedAt.Before(cutoff) {
				key := make([]byte, len(k))
				copy(key, k)
				keys = append(keys, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range keys {
			if err := bucket.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to delete expired notifications", "error", err)
		return 0, err
	}
	return deleted, nil
}
