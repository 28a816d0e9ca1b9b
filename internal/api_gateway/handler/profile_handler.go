package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/engine"
)

// ProfileHandler handles HTTP requests for profile registry and ledger operations
type ProfileHandler struct {
	registry engine.RegistryService
	ledger   engine.LedgerService
	matcher  engine.ReconcilerService
	bans     engine.BanService
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(
	logger *slog.Logger,
	registry engine.RegistryService,
	ledger engine.LedgerService,
	matcher engine.ReconcilerService,
	bans engine.BanService,
) *ProfileHandler {
	return &ProfileHandler{
		registry: registry,
		ledger:   ledger,
		matcher:  matcher,
		bans:     bans,
		logger:   logger,
	}
}

// Ensure handles registration of a profile. Registering an existing
// identifier returns the profile unchanged; the balance is never reset.
func (h *ProfileHandler) Ensure(c *gin.Context) {
	var req EnsureProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.registry.EnsureProfile(c.Request.Context(), req.PersonalIdentifier)
	if err != nil {
		h.logger.Error("Failed to ensure profile", "personal_identifier", req.PersonalIdentifier, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondCreated(c, mapProfileToResponse(p))
}

// GetByID retrieves a profile by its personal identifier, returning 404 if not found
func (h *ProfileHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	p, err := h.registry.FindProfile(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get profile", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}
	if p == nil {
		RespondNotFound(c, "Profile not found")
		return
	}

	RespondOK(c, mapProfileToResponse(p))
}

// Update handles attribute edits on a profile. Only the fields present in the
// request are touched; the balance cannot be changed through this path.
func (h *ProfileHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.registry.FindProfile(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get profile", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}
	if p == nil {
		RespondNotFound(c, "Profile not found")
		return
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.CanEdit != nil {
		p.CanEdit = *req.CanEdit
	}

	if err := h.registry.UpdateProfile(c.Request.Context(), p); err != nil {
		h.logger.Error("Failed to update profile", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapProfileToResponse(p))
}

// Credit applies an amount to the profile's balance and returns the new
// balance. Banned identifiers are rejected before any mutation.
func (h *ProfileHandler) Credit(c *gin.Context) {
	id := c.Param("id")

	var req CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	newBalance, err := h.ledger.Credit(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.logger.Warn("Credit rejected", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, CreditResponse{
		PersonalIdentifier: id,
		NewBalance:         newBalance,
	})
}

// Match reconciles an applied credit against the profile's pending charges
// and reports which charge, if any, the amount was matched with.
func (h *ProfileHandler) Match(c *gin.Context) {
	id := c.Param("id")

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	banned, err := h.bans.IsBanned(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to check ban list", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}
	if banned {
		h.logger.Warn("Match rejected for banned identifier", "personal_identifier", id)
		RespondDomainError(c, shared.ErrIdentifierBanned)
		return
	}

	result, err := h.matcher.MatchAndConfirm(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.logger.Error("Failed to match credit", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, result)
}
