package engine

import (
	"context"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/store"
)

// BanServiceImpl implements the BanService interface
type BanServiceImpl struct {
	gateway store.Gateway
	logger  *slog.Logger
}

// NewBanService creates a new ban list service
func NewBanService(logger *slog.Logger, gateway store.Gateway) BanService {
	return &BanServiceImpl{
		gateway: gateway,
		logger:  logger,
	}
}

func (s *BanServiceImpl) Ban(ctx context.Context, personalIdentifier, reason string) error {
	if personalIdentifier == "" {
		return shared.ErrMissingIdentifier
	}

	if err := s.gateway.Bans().Add(ctx, ban.NewBannedIdentifier(personalIdentifier, reason)); err != nil {
		return err
	}

	s.logger.Info("Identifier banned", "personal_identifier", personalIdentifier, "reason", reason)
	return nil
}

func (s *BanServiceImpl) Unban(ctx context.Context, personalIdentifier string) error {
	if personalIdentifier == "" {
		return shared.ErrMissingIdentifier
	}

	if err := s.gateway.Bans().Remove(ctx, personalIdentifier); err != nil {
		return err
	}

	s.logger.Info("Identifier unbanned", "personal_identifier", personalIdentifier)
	return nil
}

func (s *BanServiceImpl) IsBanned(ctx context.Context, personalIdentifier string) (bool, error) {
	b, err := s.gateway.Bans().Get(ctx, personalIdentifier)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

func (s *BanServiceImpl) Get(ctx context.Context, personalIdentifier string) (*ban.BannedIdentifier, error) {
	return s.gateway.Bans().Get(ctx, personalIdentifier)
}
