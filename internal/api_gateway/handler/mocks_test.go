package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/engine"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) EnsureProfile(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	args := m.Called(ctx, personalIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockRegistryService) FindProfile(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	args := m.Called(ctx, personalIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockRegistryService) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Credit(ctx context.Context, personalIdentifier string, amount float64) (float64, error) {
	args := m.Called(ctx, personalIdentifier, amount)
	return args.Get(0).(float64), args.Error(1)
}

type MockReconcilerService struct {
	mock.Mock
}

func (m *MockReconcilerService) FileCharge(ctx context.Context, id, personalIdentifier string, amount float64) (*charge.Charge, error) {
	args := m.Called(ctx, id, personalIdentifier, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*charge.Charge), args.Error(1)
}

func (m *MockReconcilerService) GetCharge(ctx context.Context, id string) (*charge.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*charge.Charge), args.Error(1)
}

func (m *MockReconcilerService) MatchAndConfirm(ctx context.Context, personalIdentifier string, amount float64) (*shared.MatchResult, error) {
	args := m.Called(ctx, personalIdentifier, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.MatchResult), args.Error(1)
}

func (m *MockReconcilerService) ConfirmByID(ctx context.Context, id string) (float64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(float64), args.Error(1)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) FileOrder(ctx context.Context, id, personalIdentifier, details string) (*order.Order, error) {
	args := m.Called(ctx, id, personalIdentifier, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ConfirmByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBanService struct {
	mock.Mock
}

func (m *MockBanService) Ban(ctx context.Context, personalIdentifier, reason string) error {
	args := m.Called(ctx, personalIdentifier, reason)
	return args.Error(0)
}

func (m *MockBanService) Unban(ctx context.Context, personalIdentifier string) error {
	args := m.Called(ctx, personalIdentifier)
	return args.Error(0)
}

func (m *MockBanService) IsBanned(ctx context.Context, personalIdentifier string) (bool, error) {
	args := m.Called(ctx, personalIdentifier)
	return args.Bool(0), args.Error(1)
}

func (m *MockBanService) Get(ctx context.Context, personalIdentifier string) (*ban.BannedIdentifier, error) {
	args := m.Called(ctx, personalIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ban.BannedIdentifier), args.Error(1)
}

type MockNotifierService struct {
	mock.Mock
}

func (m *MockNotifierService) Emit(ctx context.Context, personalIdentifier, text string) {
	m.Called(ctx, personalIdentifier, text)
}

func (m *MockNotifierService) List(ctx context.Context, personalIdentifier string) ([]*notification.Notification, error) {
	args := m.Called(ctx, personalIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotifierService) MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error) {
	args := m.Called(ctx, personalIdentifier)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotifierService) Clear(ctx context.Context, personalIdentifier string) (int64, error) {
	args := m.Called(ctx, personalIdentifier)
	return args.Get(0).(int64), args.Error(1)
}

type MockInterpreterService struct {
	mock.Mock
}

func (m *MockInterpreterService) Interpret(ctx context.Context, msg *shared.InboundMessage) (*engine.Outcome, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Outcome), args.Error(1)
}
