package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/engine"
)

// BanHandler handles HTTP requests for the ban list
type BanHandler struct {
	bans   engine.BanService
	logger *slog.Logger
}

// NewBanHandler creates a new ban handler
func NewBanHandler(logger *slog.Logger, bans engine.BanService) *BanHandler {
	return &BanHandler{
		bans:   bans,
		logger: logger,
	}
}

// Put bans an identifier. Re-banning replaces the recorded reason.
func (h *BanHandler) Put(c *gin.Context) {
	id := c.Param("id")

	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.bans.Ban(c.Request.Context(), id, req.Reason); err != nil {
		h.logger.Error("Failed to ban identifier", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	entry, err := h.bans.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapBanToResponse(entry))
}

// Delete lifts a ban. Unbanning an identifier that is not banned is a no-op.
func (h *BanHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.bans.Unban(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to unban identifier", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondNoContent(c)
}

// Get retrieves a ban entry, returning 404 when the identifier is not banned
func (h *BanHandler) Get(c *gin.Context) {
	id := c.Param("id")

	entry, err := h.bans.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if entry == nil {
		RespondNotFound(c, "Identifier is not banned")
		return
	}

	RespondOK(c, mapBanToResponse(entry))
}
