package bolt

import (
	"context"
	"log/slog"

	bolt "go.etcd.io/bbolt"

	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// OrderRepository implements the order.Repository interface on bbolt
type OrderRepository struct {
	view   view
	logger *slog.Logger
}

// NewOrderRepository creates a new bolt order repository
func NewOrderRepository(logger *slog.Logger, db *persistence.BoltDB) *OrderRepository {
	return &OrderRepository{
		view:   view{db: db.DB()},
		logger: logger,
	}
}

// WithTx binds the repository to an open update transaction.
func (r *OrderRepository) WithTx(tx *bolt.Tx) *OrderRepository {
	return &OrderRepository{
		view:   view{tx: tx},
		logger: r.logger,
	}
}

// Create stores a new pending order
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	err := r.view.update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket(persistence.BucketOrders), o.ID, o)
	})
	if err != nil {
		r.logger.Error("Failed to create order", "id", o.ID, "error", err)
		return err
	}
	return nil
}

// GetByID retrieves an order by its id
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var result order.Order
	var found bool
	err := r.view.read(func(tx *bolt.Tx) error {
		var err error
		found, err = getJSON(tx.Bucket(persistence.BucketOrders), id, &result)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to get order", "id", id, "error", err)
		return nil, err
	}
	if !found {
		return nil, order.ErrOrderNotFound{ID: id}
	}
	return &result, nil
}

// ConfirmIfPending flips replied false->true inside one update transaction.
func (r *OrderRepository) ConfirmIfPending(ctx context.Context, id string) (bool, error) {
	var confirmed bool
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketOrders)

		var o order.Order
		found, err := getJSON(bucket, id, &o)
		if err != nil {
			return err
		}
		if !found || o.Replied {
			return nil
		}

		o.Replied = true
		o.Status = order.StatusConfirmed
		confirmed = true
		return putJSON(bucket, id, &o)
	})
	if err != nil {
		r.logger.Error("Failed to confirm order", "id", id, "error", err)
		return false, err
	}
	return confirmed, nil
}
