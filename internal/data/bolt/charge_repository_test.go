package bolt

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallet-topup-ledger/internal/domain/charge"
)

func TestChargeRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewChargeRepository(testLogger(), db)
	ctx := context.Background()

	c, err := charge.NewCharge("C1", "1000001", 100)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	stored, err := repo.GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "1000001", stored.PersonalIdentifier)
	assert.Equal(t, 100.0, stored.Amount)
	assert.Equal(t, charge.StatusPending, stored.Status)
	assert.False(t, stored.Replied)
}

func TestChargeRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewChargeRepository(testLogger(), db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, charge.ErrChargeNotFound{}))
}

func TestChargeRepository_ListPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewChargeRepository(testLogger(), db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"C1", "C2", "C3", "C4"} {
		c, err := charge.NewCharge(id, "1000001", float64(10*(i+1)))
		require.NoError(t, err)
		c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, c))
	}

	// Charges of another identifier and replied charges must be excluded.
	other, err := charge.NewCharge("X1", "1000002", 99)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	confirmed, err := repo.ConfirmIfPending(ctx, "C4")
	require.NoError(t, err)
	require.True(t, confirmed)

	pending, err := repo.ListPending(ctx, "1000001", 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "C3", pending[0].ID)
	assert.Equal(t, "C2", pending[1].ID)
}

func TestChargeRepository_ConfirmIfPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewChargeRepository(testLogger(), db)
	ctx := context.Background()

	c, err := charge.NewCharge("C1", "1000001", 100)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	confirmed, err := repo.ConfirmIfPending(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, confirmed)

	stored, err := repo.GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, stored.Replied)
	assert.Equal(t, charge.StatusConfirmed, stored.Status)

	confirmed, err = repo.ConfirmIfPending(ctx, "C1")
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestChargeRepository_ConfirmIfPending_UnknownID(t *testing.T) {
	db := newTestDB(t)
	repo := NewChargeRepository(testLogger(), db)

	confirmed, err := repo.ConfirmIfPending(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestChargeRepository_ConfirmIfPending_ConcurrentExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewChargeRepository(testLogger(), db)
	ctx := context.Background()

	c, err := charge.NewCharge("C1", "1000001", 100)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	const attempts = 20
	results := make(chan bool, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			ok, err := repo.ConfirmIfPending(ctx, "C1")
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}
