package engine

import (
	"context"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/store"
)

// NotifierServiceImpl implements the NotifierService interface
type NotifierServiceImpl struct {
	gateway store.Gateway
	logger  *slog.Logger
}

// NewNotifierService creates a new notifier service
func NewNotifierService(logger *slog.Logger, gateway store.Gateway) NotifierService {
	return &NotifierServiceImpl{
		gateway: gateway,
		logger:  logger,
	}
}

// Emit is fire-and-forget: an insert failure is logged and never fails the
// operation that triggered the notification.
func (s *NotifierServiceImpl) Emit(ctx context.Context, personalIdentifier, text string) {
	n := notification.NewNotification(personalIdentifier, text)
	if err := s.gateway.Notifications().Insert(ctx, n); err != nil {
		s.logger.Error("Failed to emit notification",
			"personal_identifier", personalIdentifier,
			"error", err)
	}
}

func (s *NotifierServiceImpl) List(ctx context.Context, personalIdentifier string) ([]*notification.Notification, error) {
	return s.gateway.Notifications().ListByPersonalID(ctx, personalIdentifier)
}

func (s *NotifierServiceImpl) MarkAllRead(ctx context.Context, personalIdentifier string) (int64, error) {
	return s.gateway.Notifications().MarkAllRead(ctx, personalIdentifier)
}

func (s *NotifierServiceImpl) Clear(ctx context.Context, personalIdentifier string) (int64, error) {
	return s.gateway.Notifications().Clear(ctx, personalIdentifier)
}
