package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/store"
)

func newReconciler(t *testing.T, gateway store.Gateway) (ReconcilerService, NotifierService) {
	t.Helper()
	notifier := NewNotifierService(testLogger(), gateway)
	return NewReconcilerService(testLogger(), gateway, notifier, 5), notifier
}

func fileCharge(t *testing.T, gateway store.Gateway, id, pid string, amount float64, createdAt time.Time) {
	t.Helper()
	c, err := charge.NewCharge(id, pid, amount)
	require.NoError(t, err)
	c.CreatedAt = createdAt
	require.NoError(t, gateway.Charges().Create(context.Background(), c))
}

func TestReconcilerService_MatchAndConfirm_PrefersExactAmount(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	ctx := context.Background()

	// The 50 charge is more recent, but the credit of 80 must match the 80
	// charge.
	now := time.Now()
	fileCharge(t, gateway, "C-80", "1000001", 80, now.Add(-time.Hour))
	fileCharge(t, gateway, "C-50", "1000001", 50, now)

	result, err := reconciler.MatchAndConfirm(ctx, "1000001", 80)
	require.NoError(t, err)
	assert.Equal(t, shared.MatchConfirmed, result.Outcome)
	assert.Equal(t, "C-80", result.ChargeID)

	confirmed, err := gateway.Charges().GetByID(ctx, "C-80")
	require.NoError(t, err)
	assert.True(t, confirmed.Replied)
	assert.Equal(t, charge.StatusConfirmed, confirmed.Status)

	untouched, err := gateway.Charges().GetByID(ctx, "C-50")
	require.NoError(t, err)
	assert.False(t, untouched.Replied)
}

func TestReconcilerService_MatchAndConfirm_FallsBackToMostRecent(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	ctx := context.Background()

	now := time.Now()
	fileCharge(t, gateway, "C-old", "1000001", 30, now.Add(-time.Hour))
	fileCharge(t, gateway, "C-new", "1000001", 45, now)

	result, err := reconciler.MatchAndConfirm(ctx, "1000001", 70)
	require.NoError(t, err)
	assert.Equal(t, shared.MatchConfirmed, result.Outcome)
	assert.Equal(t, "C-new", result.ChargeID)
}

func TestReconcilerService_MatchAndConfirm_NoPendingCharge(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)

	result, err := reconciler.MatchAndConfirm(context.Background(), "1000001", 100)
	require.NoError(t, err)
	assert.Equal(t, shared.MatchNoPendingCharge, result.Outcome)
	assert.Empty(t, result.ChargeID)
}

func TestReconcilerService_MatchAndConfirm_LostRaceReportsAlreadyConfirmed(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	ctx := context.Background()

	fileCharge(t, gateway, "C1", "1000001", 100, time.Now())

	first, err := reconciler.MatchAndConfirm(ctx, "1000001", 100)
	require.NoError(t, err)
	require.Equal(t, shared.MatchConfirmed, first.Outcome)

	// The only candidate in the window is already replied, so the window is
	// empty on the second attempt.
	second, err := reconciler.MatchAndConfirm(ctx, "1000001", 100)
	require.NoError(t, err)
	assert.Equal(t, shared.MatchNoPendingCharge, second.Outcome)
}

func TestReconcilerService_ConfirmByID(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, notifier := newReconciler(t, gateway)
	ctx := context.Background()

	fileCharge(t, gateway, "C1", "1000001", 100, time.Now())

	balance, err := reconciler.ConfirmByID(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, balance)

	c, err := gateway.Charges().GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, c.Replied)
	assert.Equal(t, charge.StatusConfirmed, c.Status)

	p, err := gateway.Profiles().GetByPersonalID(ctx, "1000001")
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Balance)

	notifications, err := notifier.List(ctx, "1000001")
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestReconcilerService_ConfirmByID_SecondCallAlreadyConfirmed(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	ctx := context.Background()

	fileCharge(t, gateway, "C1", "1000001", 100, time.Now())

	_, err := reconciler.ConfirmByID(ctx, "C1")
	require.NoError(t, err)

	_, err = reconciler.ConfirmByID(ctx, "C1")
	assert.ErrorIs(t, err, charge.ErrAlreadyConfirmed{})
	assert.Equal(t, shared.CodeAlreadyConfirmed, shared.CodeOf(err))

	// The balance must be unchanged from after the first confirm.
	p, err := gateway.Profiles().GetByPersonalID(ctx, "1000001")
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Balance)
}

func TestReconcilerService_ConfirmByID_ConcurrentExactlyOneWins(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	ctx := context.Background()

	fileCharge(t, gateway, "C1", "1000001", 100, time.Now())

	const attempts = 10
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := reconciler.ConfirmByID(ctx, "C1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins int
	for err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, charge.ErrAlreadyConfirmed{})
		}
	}
	assert.Equal(t, 1, wins)

	// The lost attempts rolled their credit back.
	p, err := gateway.Profiles().GetByPersonalID(ctx, "1000001")
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Balance)
}

func TestReconcilerService_ConfirmByID_UnknownCharge(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, notifier := newReconciler(t, gateway)
	ctx := context.Background()

	_, err := reconciler.ConfirmByID(ctx, "missing")
	assert.ErrorIs(t, err, charge.ErrChargeNotFound{})
	assert.Equal(t, shared.CodeChargeNotFound, shared.CodeOf(err))

	notifications, err := notifier.List(ctx, "1000001")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestReconcilerService_ConfirmByID_BannedOwner(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	bans := NewBanService(testLogger(), gateway)
	ctx := context.Background()

	fileCharge(t, gateway, "C1", "1000001", 100, time.Now())
	require.NoError(t, bans.Ban(ctx, "1000001", "fraud"))

	_, err := reconciler.ConfirmByID(ctx, "C1")
	assert.ErrorIs(t, err, shared.ErrIdentifierBanned)

	c, err := gateway.Charges().GetByID(ctx, "C1")
	require.NoError(t, err)
	assert.False(t, c.Replied)
}

func TestReconcilerService_FileCharge(t *testing.T) {
	gateway := newTestGateway(t)
	reconciler, _ := newReconciler(t, gateway)
	ctx := context.Background()

	c, err := reconciler.FileCharge(ctx, "", "1000001", 60)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, charge.StatusPending, c.Status)

	stored, err := reconciler.GetCharge(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, stored.Amount)
}
