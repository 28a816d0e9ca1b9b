package persistence

import (
	"fmt"
	"log/slog"

	bolt "go.etcd.io/bbolt"

	"github.com/wallet-topup-ledger/internal/config"
)

// Bucket names for the local file store. One bucket per collection.
var (
	BucketProfiles      = []byte("profiles")
	BucketCharges       = []byte("charges")
	BucketOrders        = []byte("orders")
	BucketNotifications = []byte("notifications")
	BucketBans          = []byte("bans")
)

// BoltDB wraps the local durable file store. bbolt serializes update
// transactions, which is what makes conditional confirms and balance
// increments safe without any extra locking above it.
type BoltDB struct {
	db     *bolt.DB
	logger *slog.Logger
}

func NewBoltDB(logger *slog.Logger, cfg *config.BoltConfig) (*BoltDB, error) {
	db, err := bolt.Open(cfg.Path, 0600, &bolt.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", cfg.Path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{BucketProfiles, BucketCharges, BucketOrders, BucketNotifications, BucketBans} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Opened bolt database", "path", cfg.Path)

	return &BoltDB{db: db, logger: logger}, nil
}

func (b *BoltDB) DB() *bolt.DB {
	return b.db
}

func (b *BoltDB) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close bolt database: %w", err)
	}
	b.logger.Info("Closed bolt database")
	return nil
}
