package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/store"
)

// ReconcilerServiceImpl implements the ReconcilerService interface
type ReconcilerServiceImpl struct {
	gateway        store.Gateway
	notifier       NotifierService
	logger         *slog.Logger
	lookbackWindow int
}

// NewReconcilerService creates a new charge reconciler service
func NewReconcilerService(logger *slog.Logger, gateway store.Gateway, notifier NotifierService, lookbackWindow int) ReconcilerService {
	return &ReconcilerServiceImpl{
		gateway:        gateway,
		notifier:       notifier,
		logger:         logger,
		lookbackWindow: lookbackWindow,
	}
}

func (s *ReconcilerServiceImpl) FileCharge(ctx context.Context, id, personalIdentifier string, amount float64) (*charge.Charge, error) {
	c, err := charge.NewCharge(id, personalIdentifier, amount)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.Charges().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ReconcilerServiceImpl) GetCharge(ctx context.Context, id string) (*charge.Charge, error) {
	return s.gateway.Charges().GetByID(ctx, id)
}

// MatchAndConfirm picks a candidate from the lookback window of pending
// charges and attempts the conditional confirm on it. A lost race reports
// AlreadyConfirmed and does not retry against the next candidate: a
// duplicate credit command is surfaced as a no-op match, never re-matched.
func (s *ReconcilerServiceImpl) MatchAndConfirm(ctx context.Context, personalIdentifier string, amount float64) (*shared.MatchResult, error) {
	if personalIdentifier == "" {
		return nil, shared.ErrMissingIdentifier
	}
	if err := profile.ValidateAmount(amount); err != nil {
		return nil, err
	}

	pending, err := s.gateway.Charges().ListPending(ctx, personalIdentifier, s.lookbackWindow)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return &shared.MatchResult{Outcome: shared.MatchNoPendingCharge}, nil
	}

	// Exact amount wins over recency; without an exact match the most
	// recent pending charge is taken regardless of amount.
	candidate := pending[0]
	for _, c := range pending {
		if c.Amount == amount {
			candidate = c
			break
		}
	}

	confirmed, err := s.gateway.Charges().ConfirmIfPending(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		s.logger.Info("Match lost confirm race",
			"personal_identifier", personalIdentifier,
			"charge_id", candidate.ID)
		return &shared.MatchResult{Outcome: shared.MatchAlreadyConfirmed, ChargeID: candidate.ID}, nil
	}

	s.logger.Info("Charge matched and confirmed",
		"personal_identifier", personalIdentifier,
		"charge_id", candidate.ID,
		"amount", amount)

	return &shared.MatchResult{Outcome: shared.MatchConfirmed, ChargeID: candidate.ID}, nil
}

// ConfirmByID applies the charge amount to the owner's balance and confirms
// the charge inside one gateway transaction. When the conditional confirm
// loses a race the whole transaction rolls back, so the credit is never
// double-applied.
func (s *ReconcilerServiceImpl) ConfirmByID(ctx context.Context, id string) (float64, error) {
	c, err := s.gateway.Charges().GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if c.Replied {
		return 0, charge.ErrAlreadyConfirmed{ID: id}
	}

	banned, err := s.gateway.Bans().Get(ctx, c.PersonalIdentifier)
	if err != nil {
		return 0, err
	}
	if banned != nil {
		return 0, shared.ErrIdentifierBanned
	}

	var newBalance float64
	err = s.gateway.Atomically(ctx, func(g store.Gateway) error {
		balance, err := g.Profiles().CreditBalance(ctx, c.PersonalIdentifier, c.Amount)
		if err != nil {
			return err
		}

		confirmed, err := g.Charges().ConfirmIfPending(ctx, id)
		if err != nil {
			return err
		}
		if !confirmed {
			return charge.ErrAlreadyConfirmed{ID: id}
		}

		newBalance = balance
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Charge confirmed",
		"charge_id", id,
		"personal_identifier", c.PersonalIdentifier,
		"new_balance", newBalance)

	s.notifier.Emit(ctx, c.PersonalIdentifier,
		fmt.Sprintf("تم تأكيد الشحنة %s. الرصيد الجديد: %s", id, formatAmount(newBalance)))

	return newBalance, nil
}
