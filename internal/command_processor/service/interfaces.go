package service

import (
	"context"

	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/engine"
)

// ProcessingService defines the interface for processing one inbound
// operator message.
type ProcessingService interface {
	// Process interprets and executes the message's command. The returned
	// outcome carries the acknowledgment text when one should be sent.
	Process(ctx context.Context, msg *shared.InboundMessage) (*engine.Outcome, error)
}
