package bolt

import (
	"context"
	"log/slog"

	bolt "go.etcd.io/bbolt"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// BanRepository implements the ban.Repository interface on bbolt
type BanRepository struct {
	view   view
	logger *slog.Logger
}

// NewBanRepository creates a new bolt ban repository
func NewBanRepository(logger *slog.Logger, db *persistence.BoltDB) *BanRepository {
	return &BanRepository{
		view:   view{db: db.DB()},
		logger: logger,
	}
}

// WithTx binds the repository to an open update transaction.
func (r *BanRepository) WithTx(tx *bolt.Tx) *BanRepository {
	return &BanRepository{
		view:   view{tx: tx},
		logger: r.logger,
	}
}

// Add records a ban, replacing the stored reason when already banned.
func (r *BanRepository) Add(ctx context.Context, b *ban.BannedIdentifier) error {
	err := r.view.update(func(tx *bolt.Tx) error {
		return putJSON(tx.Bucket(persistence.BucketBans), b.PersonalIdentifier, b)
	})
	if err != nil {
		r.logger.Error("Failed to add ban", "personal_identifier", b.PersonalIdentifier, "error", err)
		return err
	}
	return nil
}

// Remove lifts a ban; removing an absent entry is a no-op.
func (r *BanRepository) Remove(ctx context.Context, personalIdentifier string) error {
	err := r.view.update(func(tx *bolt.Tx) error {
		return tx.Bucket(persistence.BucketBans).Delete([]byte(personalIdentifier))
	})
	if err != nil {
		r.logger.Error("Failed to remove ban", "personal_identifier", personalIdentifier, "error", err)
		return err
	}
	return nil
}

// Get returns (nil, nil) when the identifier is not banned.
func (r *BanRepository) Get(ctx context.Context, personalIdentifier string) (*ban.BannedIdentifier, error) {
	var result ban.BannedIdentifier
	var found bool
	err := r.view.read(func(tx *bolt.Tx) error {
		var err error
		found, err = getJSON(tx.Bucket(persistence.BucketBans), personalIdentifier, &result)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to get ban", "personal_identifier", personalIdentifier, "error", err)
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}
