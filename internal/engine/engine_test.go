package engine

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/store"
)

// newTestGateway opens a gateway over a throwaway bolt file. The engine is
// backend-agnostic, so exercising it against the local store covers the
// same code paths the remote backend serves.
func newTestGateway(t *testing.T) store.Gateway {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.Backend = config.StorageBackendBolt
	cfg.Bolt.Path = filepath.Join(t.TempDir(), "engine_test.db")
	cfg.Bolt.Timeout = time.Second

	gateway, err := store.New(context.Background(), testLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = gateway.Close(context.Background()) })

	return gateway
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
