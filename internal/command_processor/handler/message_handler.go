// Package handler wires the Kafka consumer to the command interpreter: it
// decodes inbound envelopes, routes undecodable payloads to the DLQ and
// decides which processing outcomes commit the offset.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/wallet-topup-ledger/internal/command_processor/service"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/platform/messaging/producers"
)

// CommandMessageHandler handles inbound operator command messages from Kafka
type CommandMessageHandler struct {
	processingService service.ProcessingService
	acks              producers.AckPublisher
	dlq               producers.DeadLetterPublisher
	logger            *slog.Logger
}

// NewCommandMessageHandler creates a new handler
func NewCommandMessageHandler(
	logger *slog.Logger,
	processingService service.ProcessingService,
	acks producers.AckPublisher,
	dlq producers.DeadLetterPublisher,
) *CommandMessageHandler {
	return &CommandMessageHandler{
		processingService: processingService,
		acks:              acks,
		dlq:               dlq,
		logger:            logger,
	}
}

// HandleMessage processes one Kafka message. Returning nil commits the
// offset; returning an error leaves it uncommitted for redelivery. Terminal
// interpreter outcomes (unrecognized text, validation failures, not-found,
// already-confirmed) are final answers and commit; only infrastructure
// failures warrant a redelivery.
func (h *CommandMessageHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var msg shared.InboundMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal inbound message from Kafka"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		if h.dlq != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.dlq.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				// Message parked, commit offset
				return nil
			}
		}
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger.With("message_id", msg.MessageID, "channel_id", msg.ChannelID)

	outcome, err := h.processingService.Process(ctx, &msg)
	if err != nil {
		if !shared.IsTerminal(err) {
			logger.Error("Infrastructure failure processing command, will retry", "error", err)
			return fmt.Errorf("processing message %s failed: %w", msg.MessageID, err)
		}

		logger.Info("Command rejected with terminal outcome",
			"code", shared.CodeOf(err),
			"error", err,
		)
		return nil
	}

	if outcome.Kind == shared.CommandNone {
		logger.Debug("No command recognized, message dropped")
		return nil
	}

	if outcome.Ack != "" && h.acks != nil {
		if ackErr := h.acks.Publish(ctx, msg.ChannelID, outcome.Ack); ackErr != nil {
			// Acknowledgments are fire-and-forget
			logger.Error("Failed to publish acknowledgment", "error", ackErr)
		}
	}

	logger.Info("Successfully processed command", "kind", outcome.Kind)
	return nil
}
