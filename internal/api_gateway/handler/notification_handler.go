package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/engine"
)

// NotificationHandler handles HTTP requests for the notification feed
type NotificationHandler struct {
	notifier engine.NotifierService
	logger   *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(logger *slog.Logger, notifier engine.NotifierService) *NotificationHandler {
	return &NotificationHandler{
		notifier: notifier,
		logger:   logger,
	}
}

// List returns the profile's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	id := c.Param("id")

	items, err := h.notifier.List(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to list notifications", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapNotificationsToResponse(items))
}

// MarkAllRead marks the profile's notifications read and reports the count
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	id := c.Param("id")

	count, err := h.notifier.MarkAllRead(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to mark notifications read", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: count})
}

// Clear deletes the profile's notifications and reports the count
func (h *NotificationHandler) Clear(c *gin.Context) {
	id := c.Param("id")

	count, err := h.notifier.Clear(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to clear notifications", "personal_identifier", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, CountResponse{Count: count})
}
