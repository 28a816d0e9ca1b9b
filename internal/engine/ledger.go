package engine

import (
	"context"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/store"
)

// LedgerServiceImpl implements the LedgerService interface
type LedgerServiceImpl struct {
	gateway store.Gateway
	logger  *slog.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(logger *slog.Logger, gateway store.Gateway) LedgerService {
	return &LedgerServiceImpl{
		gateway: gateway,
		logger:  logger,
	}
}

// Credit validates, checks the ban list and applies the balance increment.
// The increment itself is the gateway's conditional update, so concurrent
// credits to the same identifier never lose updates.
func (s *LedgerServiceImpl) Credit(ctx context.Context, personalIdentifier string, amount float64) (float64, error) {
	if personalIdentifier == "" {
		return 0, shared.ErrMissingIdentifier
	}
	if err := profile.ValidateAmount(amount); err != nil {
		return 0, err
	}

	banned, err := s.gateway.Bans().Get(ctx, personalIdentifier)
	if err != nil {
		return 0, err
	}
	if banned != nil {
		return 0, shared.ErrIdentifierBanned
	}

	newBalance, err := s.gateway.Profiles().CreditBalance(ctx, personalIdentifier, amount)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Balance credited",
		"personal_identifier", personalIdentifier,
		"amount", amount,
		"new_balance", newBalance)

	return newBalance, nil
}
