package bolt

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

func newTestDB(t *testing.T) *persistence.BoltDB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := persistence.NewBoltDB(logger, &config.BoltConfig{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		Timeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
