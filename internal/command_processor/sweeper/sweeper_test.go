package sweeper

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/domain/notification"
)

// MockNotificationRepository mocks notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Insert(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByPersonalID(ctx context.Context, personalIdentifier string) ([]*notification.Notification, error) {
	args := m.Called(ctx, personalIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error) {
	args := m.Called(ctx, personalIdentifier)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Clear(ctx context.Context, personalIdentifier string) (int64, error) {
	args := m.Called(ctx, personalIdentifier)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	args := m.Called(ctx, cutoff, limit)
	return args.Get(0).(int64), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSweeper(repo notification.Repository) *Sweeper {
	return NewSweeper(&config.SweeperConfig{
		Interval:  time.Hour,
		BatchSize: 100,
		Retention: 30 * 24 * time.Hour,
	}, repo, testLogger())
}

func TestSweeper_SweepDrainsFullBatches(t *testing.T) {
	repo := new(MockNotificationRepository)
	s := newSweeper(repo)

	// Two full batches, then a short one ends the loop.
	repo.On("DeleteReadBefore", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return(int64(100), nil).Twice()
	repo.On("DeleteReadBefore", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return(int64(17), nil).Once()

	err := s.sweep(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSweeper_SweepNothingToDelete(t *testing.T) {
	repo := new(MockNotificationRepository)
	s := newSweeper(repo)

	repo.On("DeleteReadBefore", mock.Anything, mock.AnythingOfType("time.Time"), 100).
		Return(int64(0), nil).Once()

	err := s.sweep(context.Background())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSweeper_SweepUsesRetentionCutoff(t *testing.T) {
	repo := new(MockNotificationRepository)
	s := newSweeper(repo)

	var captured time.Time
	repo.On("DeleteReadBefore", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		captured = cutoff
		return true
	}), 100).Return(int64(0), nil).Once()

	require.NoError(t, s.sweep(context.Background()))

	expected := time.Now().Add(-30 * 24 * time.Hour)
	assert.WithinDuration(t, expected, captured, time.Minute)
}

func TestSweeper_StartStopsOnContextCancel(t *testing.T) {
	repo := new(MockNotificationRepository)
	s := NewSweeper(&config.SweeperConfig{
		Interval:  5 * time.Millisecond,
		BatchSize: 10,
		Retention: time.Hour,
	}, repo, testLogger())

	ticked := make(chan struct{}, 1)
	repo.On("DeleteReadBefore", mock.Anything, mock.AnythingOfType("time.Time"), 10).
		Run(func(mock.Arguments) {
			select {
			case ticked <- struct{}{}:
			default:
			}
		}).
		Return(int64(0), nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Start(ctx)
	}()

	select {
	case <-ticked:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ticked")
	}

	cancel()
	wg.Wait()
}
