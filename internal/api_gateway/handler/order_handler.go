package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/engine"
)

// OrderHandler handles HTTP requests for order lifecycle operations
type OrderHandler struct {
	orders engine.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(logger *slog.Logger, orders engine.OrderService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// Create files a pending order
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	o, err := h.orders.FileOrder(c.Request.Context(), req.ID, req.PersonalIdentifier, req.Details)
	if err != nil {
		h.logger.Error("Failed to file order",
			"personal_identifier", req.PersonalIdentifier, "error", err)
		RespondDomainError(c, err)
		return
	}

	RespondCreated(c, mapOrderToResponse(o))
}

// GetByID retrieves an order by its ID, returning 404 if not found
func (h *OrderHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapOrderToResponse(o))
}

// Confirm marks the order confirmed. A repeated confirm returns 409.
func (h *OrderHandler) Confirm(c *gin.Context) {
	id := c.Param("id")

	if err := h.orders.ConfirmByID(c.Request.Context(), id); err != nil {
		h.logger.Warn("Order confirm rejected", "order_id", id, "error", err)
		RespondDomainError(c, err)
		return
	}

	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondOK(c, mapOrderToResponse(o))
}
