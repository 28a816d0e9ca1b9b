package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/engine"
)

// CommandHandler accepts free-text operator commands over HTTP, bypassing
// the messaging channel. Useful for testing the interpreter and for
// channels without a Kafka bridge.
type CommandHandler struct {
	interpreter engine.InterpreterService
	logger      *slog.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(logger *slog.Logger, interpreter engine.InterpreterService) *CommandHandler {
	return &CommandHandler{
		interpreter: interpreter,
		logger:      logger,
	}
}

// Interpret runs the message through the command interpreter and returns the
// outcome. Unrecognized text is a 200 with a NONE outcome, not an error.
func (h *CommandHandler) Interpret(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	msg := &shared.InboundMessage{
		MessageID:  req.MessageID,
		ChannelID:  req.ChannelID,
		SenderID:   req.SenderID,
		Text:       req.Text,
		QuotedText: req.QuotedText,
		Timestamp:  time.Now(),
	}
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}

	outcome, err := h.interpreter.Interpret(c.Request.Context(), msg)
	if err != nil {
		h.logger.Warn("Command rejected",
			"message_id", msg.MessageID,
			"code", shared.CodeOf(err),
			"error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, outcome)
}
