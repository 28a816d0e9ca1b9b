package service

import (
	"context"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/engine"
)

// InterpreterProcessingService is the base processing service delegating to
// the command interpreter.
type InterpreterProcessingService struct {
	interpreter engine.InterpreterService
	logger      *slog.Logger
}

// NewInterpreterProcessingService creates the base processing service
func NewInterpreterProcessingService(logger *slog.Logger, interpreter engine.InterpreterService) *InterpreterProcessingService {
	return &InterpreterProcessingService{
		interpreter: interpreter,
		logger:      logger,
	}
}

func (s *InterpreterProcessingService) Process(ctx context.Context, msg *shared.InboundMessage) (*engine.Outcome, error) {
	outcome, err := s.interpreter.Interpret(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Interpreted inbound message",
		"message_id", msg.MessageID,
		"channel_id", msg.ChannelID,
		"kind", outcome.Kind,
	)

	return outcome, nil
}
