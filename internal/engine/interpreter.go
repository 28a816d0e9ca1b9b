package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/shared"
)

// Command grammar. Fields are label + value; values are matched after digit
// normalization, so Arabic-Indic numerals work everywhere.
var (
	amountLabelRe = regexp.MustCompile(`الرصيد\s*[:：]?`)
	amountRe      = regexp.MustCompile(`الرصيد\s*[:：]?\s*(-?[0-9][0-9,]*(?:\.[0-9]+)?)`)
	identifierRe  = regexp.MustCompile(`الرقم الشخصي\s*[:：]?\s*([0-9]+)`)
	referenceRe   = regexp.MustCompile(`رقم العملية\s*[:：]?\s*([0-9A-Za-z_-]+)`)
)

// InterpreterServiceImpl implements the InterpreterService interface
type InterpreterServiceImpl struct {
	ledger     LedgerService
	reconciler ReconcilerService
	orders     OrderService
	bans       BanService
	notifier   NotifierService
	logger     *slog.Logger
}

// NewInterpreterService creates a new command interpreter service
func NewInterpreterService(
	logger *slog.Logger,
	ledger LedgerService,
	reconciler ReconcilerService,
	orders OrderService,
	bans BanService,
	notifier NotifierService,
) InterpreterService {
	return &InterpreterServiceImpl{
		ledger:     ledger,
		reconciler: reconciler,
		orders:     orders,
		bans:       bans,
		notifier:   notifier,
		logger:     logger,
	}
}

// Interpret classifies the message and executes the single recognized
// command. A reference in the replied-to message takes precedence over
// credit fields in the body; text matching neither grammar is dropped
// silently with a CommandNone outcome.
func (s *InterpreterServiceImpl) Interpret(ctx context.Context, msg *shared.InboundMessage) (*Outcome, error) {
	text := normalizeDigits(msg.Text)
	quoted := normalizeDigits(msg.QuotedText)

	if m := referenceRe.FindStringSubmatch(quoted); m != nil {
		return s.confirmReference(ctx, m[1])
	}

	identifierMatch := identifierRe.FindStringSubmatch(text)
	if !amountLabelRe.MatchString(text) || identifierMatch == nil {
		// An amount without an identifier, or vice versa, is not a command.
		return &Outcome{Kind: shared.CommandNone}, nil
	}

	amountMatch := amountRe.FindStringSubmatch(text)
	if amountMatch == nil {
		return nil, shared.ErrInvalidAmount
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(amountMatch[1], ",", ""), 64)
	if err != nil {
		return nil, shared.ErrInvalidAmount
	}

	return s.credit(ctx, identifierMatch[1], amount)
}

func (s *InterpreterServiceImpl) credit(ctx context.Context, personalIdentifier string, amount float64) (*Outcome, error) {
	banned, err := s.bans.IsBanned(ctx, personalIdentifier)
	if err != nil {
		return nil, err
	}
	if banned {
		s.logger.Warn("Credit command for banned identifier rejected",
			"personal_identifier", personalIdentifier)
		return nil, shared.ErrIdentifierBanned
	}

	newBalance, err := s.ledger.Credit(ctx, personalIdentifier, amount)
	if err != nil {
		return nil, err
	}

	match, err := s.reconciler.MatchAndConfirm(ctx, personalIdentifier, amount)
	if err != nil {
		return nil, err
	}

	var notice, ack string
	switch match.Outcome {
	case shared.MatchConfirmed:
		notice = fmt.Sprintf("تمت إضافة %s إلى رصيدك وتم تأكيد الشحنة %s. الرصيد الجديد: %s",
			formatAmount(amount), match.ChargeID, formatAmount(newBalance))
		ack = fmt.Sprintf("تم شحن رصيد %s. الرصيد الجديد: %s. الشحنة %s مؤكدة",
			personalIdentifier, formatAmount(newBalance), match.ChargeID)
	default:
		notice = fmt.Sprintf("تمت إضافة %s إلى رصيدك. الرصيد الجديد: %s",
			formatAmount(amount), formatAmount(newBalance))
		ack = fmt.Sprintf("تم شحن رصيد %s. الرصيد الجديد: %s. لا توجد شحنة معلقة مطابقة",
			personalIdentifier, formatAmount(newBalance))
	}

	s.notifier.Emit(ctx, personalIdentifier, notice)

	return &Outcome{
		Kind:               shared.CommandCredit,
		PersonalIdentifier: personalIdentifier,
		NewBalance:         newBalance,
		Match:              match,
		Ack:                ack,
	}, nil
}

// confirmReference resolves the reference as a charge first and falls
// through to orders when no charge has that id.
func (s *InterpreterServiceImpl) confirmReference(ctx context.Context, reference string) (*Outcome, error) {
	newBalance, err := s.reconciler.ConfirmByID(ctx, reference)
	if err == nil {
		return &Outcome{
			Kind:       shared.CommandConfirmReference,
			NewBalance: newBalance,
			Ack:        fmt.Sprintf("تم تأكيد الشحنة %s. الرصيد الجديد: %s", reference, formatAmount(newBalance)),
		}, nil
	}
	if !errors.Is(err, charge.ErrChargeNotFound{}) {
		return nil, err
	}

	if err := s.orders.ConfirmByID(ctx, reference); err != nil {
		return nil, err
	}

	return &Outcome{
		Kind: shared.CommandConfirmReference,
		Ack:  fmt.Sprintf("تم تأكيد الطلب %s", reference),
	}, nil
}

// normalizeDigits maps Arabic-Indic and Extended Arabic-Indic numerals to
// ASCII and the Arabic decimal/grouping separators to their ASCII forms.
func normalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r == '٫':
			return '.'
		case r == '٬':
			return ','
		}
		return r
	}, s)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
