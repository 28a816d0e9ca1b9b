package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// New opens the storage backend selected by the configuration and returns
// the gateway over it.
func New(ctx context.Context, logger *slog.Logger, cfg *config.Config) (Gateway, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendRemote:
		pg, err := persistence.NewPostgresDB(ctx, logger, &cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres backend: %w", err)
		}

		mongoDB, err := persistence.NewMongoDB(ctx, logger, &cfg.MongoDB)
		if err != nil {
			pg.Close()
			return nil, fmt.Errorf("failed to open mongo backend: %w", err)
		}

		return newRemoteGateway(logger, pg, mongoDB), nil

	case config.StorageBackendBolt:
		db, err := persistence.NewBoltDB(logger, &cfg.Bolt)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt backend: %w", err)
		}

		return newBoltGateway(logger, db), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}
