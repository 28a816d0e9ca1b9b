package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/engine"
)

// ChargeHandler handles HTTP requests for charge lifecycle operations
type ChargeHandler struct {
	reconciler engine.ReconcilerService
	logger     *slog.Logger
}

// NewChargeHandler creates a new charge handler
func NewChargeHandler(logger *slog.Logger, reconciler engine.ReconcilerService) *ChargeHandler {
	return &ChargeHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// Create files a pending top-up charge
func (h *ChargeHandler) Create(c *gin.Context) {
	var req CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ch, err := h.reconciler.FileCharge(c.Request.Context(), req.ID, req.PersonalIdentifier, req.Amount)
	if err != nil {
		h.logger.Error("Failed to file charge",
			"personal_identifier", req.PersonalIdentifier, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondCreated(c, mapChargeToResponse(ch))
}

// GetByID retrieves a charge by its ID, returning 404 if not found
func (h *ChargeHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	ch, err := h.reconciler.GetCharge(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapChargeToResponse(ch))
}

// Confirm credits the charge amount to the owner and confirms the charge.
// A repeated confirm returns 409 and leaves the balance untouched.
func (h *ChargeHandler) Confirm(c *gin.Context) {
	id := c.Param("id")

	newBalance, err := h.reconciler.ConfirmByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn("Charge confirm rejected", "charge_id", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, ConfirmChargeResponse{
		ID:         id,
		NewBalance: newBalance,
	})
}
