package bolt

import (
	"context"
	"log/slog"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// ChargeRepository implements the charge.Repository interface on bbolt
type ChargeRepository struct {
	view   view
	logger *slog.Logger
}

// NewChargeRepository creates a new bolt charge repository
func NewChargeRepository(logger *slog.Logger, db *persistence.BoltDB) *ChargeRepository {
	return &ChargeRepository{
		view:   view{db: db.DB()},
		logger: logger,
	}
}

// WithTx binds the repository to an open update transaction.
func (r *ChargeRepository) WithTx(tx *bolt.Tx) *ChargeRepository {
	return &ChargeRepository{
		view:   view{tx: tx},
		logger: r.logger,
	}
}

// Create stores a new pending charge
func (r *ChargeRepository) Create(ctx context.Context, c *charge.Charge) error {
	err := r.view.update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket(persistence.BucketCharges), c.ID, c)
	})
	if err != nil {
		r.logger.Error("Failed to create charge", "id", c.ID, "error", err)
		return err
	}
	return nil
}

// GetByID retrieves a charge by its id
func (r *ChargeRepository) GetByID(ctx context.Context, id string) (*charge.Charge, error) {
	var result charge.Charge
	var found bool
	err := r.view.read(func(tx *bolt.Tx) error {
		var err error
		found, err = getJSON(tx.Bucket(persistence.BucketCharges), id, &result)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to get charge", "id", id, "error", err)
		return nil, err
	}
	if !found {
		return nil, charge.ErrChargeNotFound{ID: id}
	}
	return &result, nil
}

// ListPending scans the charge bucket for the identifier's pending charges
// and returns the most recent ones first, bounded by limit. A full scan is
// acceptable here: the local store targets single-node deployments.
func (r *ChargeRepository) ListPending(ctx context.Context, personalIdentifier string, limit int) ([]*charge.Charge, error) {
	var charges []*charge.Charge
	err := r.view.read(func(tx *bolt.Tx) error {
		return tx.Bucket(persistence.BucketCharges).ForEach(func(k, v []byte) error {
			var c charge.Charge
			if err := decodeValue(v, &c); err != nil {
				return err
			}
			if c.PersonalIdentifier == personalIdentifier && !c.Replied {
				charges = append(charges, &c)
			}
			return nil
		})
	})
	if err != nil {
		r.logger.Error("Failed to list pending charges", "personal_identifier", personalIdentifier, "error", err)
		return nil, err
	}

	sort.Slice(charges, func(i, j int) bool {
		return charges[i].CreatedAt.After(charges[j].CreatedAt)
	})
	if len(charges) > limit {
		charges = charges[:limit]
	}

	return charges, nil
}

// ConfirmIfPending flips replied false->true inside one update transaction.
// The read and the conditional write cannot interleave with another writer,
// so exactly one of any number of concurrent confirms succeeds.
func (r *ChargeRepository) ConfirmIfPending(ctx context.Context, id string) (bool, error) {
	var confirmed bool
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketCharges)

		var c charge.Charge
		found, err := getJSON(bucket, id, &c)
		if err != nil {
			return err
		}
		if !found || c.Replied {
			return nil
		}

		c.Replied = true
		c.Status = charge.StatusConfirmed
		confirmed = true
		return putJSON(bucket, id, &c)
	})
	if err != nil {
		r.logger.Error("Failed to confirm charge", "id", id, "error", err)
		return false, err
	}
	return confirmed, nil
}
