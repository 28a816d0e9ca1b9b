package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/store"
)

// OrderServiceImpl implements the OrderService interface
type OrderServiceImpl struct {
	gateway  store.Gateway
	notifier NotifierService
	logger   *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(logger *slog.Logger, gateway store.Gateway, notifier NotifierService) OrderService {
	return &OrderServiceImpl{
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *OrderServiceImpl) FileOrder(ctx context.Context, id, personalIdentifier, details string) (*order.Order, error) {
	o, err := order.NewOrder(id, personalIdentifier, details)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Orders().Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	return s.gateway.Orders().GetByID(ctx, id)
}

// ConfirmByID confirms the order via the conditional update. Orders have no
// ledger effect, so no transaction is needed around the single write.
func (s *OrderServiceImpl) ConfirmByID(ctx context.Context, id string) error {
	o, err := s.gateway.Orders().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Replied {
		return order.ErrAlreadyConfirmed{ID: id}
	}

	banned, err := s.gateway.Bans().Get(ctx, o.PersonalIdentifier)
	if err != nil {
		return err
	}
	if banned != nil {
		return shared.ErrIdentifierBanned
	}

	confirmed, err := s.gateway.Orders().ConfirmIfPending(ctx, id)
	if err != nil {
		return err
	}
	if !confirmed {
		return order.ErrAlreadyConfirmed{ID: id}
	}

	s.logger.Info("Order confirmed",
		"order_id", id,
		"personal_identifier", o.PersonalIdentifier)

	s.notifier.Emit(ctx, o.PersonalIdentifier, fmt.Sprintf("تم تأكيد الطلب %s", id))

	return nil
}
