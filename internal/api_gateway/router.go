package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/api_gateway/handler"
	"github.com/wallet-topup-ledger/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	profileHandler *handler.ProfileHandler,
	chargeHandler *handler.ChargeHandler,
	orderHandler *handler.OrderHandler,
	banHandler *handler.BanHandler,
	notificationHandler *handler.NotificationHandler,
	commandHandler *handler.CommandHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Profile registry, ledger and notification feed
		profiles := v1.Group("/profiles")
		{
			profiles.POST("", profileHandler.Ensure)
			profiles.GET("/:id", profileHandler.GetByID)
			profiles.PATCH("/:id", profileHandler.Update)
			profiles.POST("/:id/credit", profileHandler.Credit)
			profiles.POST("/:id/match", profileHandler.Match)
			profiles.GET("/:id/notifications", notificationHandler.List)
			profiles.POST("/:id/notifications/read", notificationHandler.MarkAllRead)
			profiles.DELETE("/:id/notifications", notificationHandler.Clear)
		}

		// Charge lifecycle
		charges := v1.Group("/charges")
		{
			charges.POST("", chargeHandler.Create)
			charges.GET("/:id", chargeHandler.GetByID)
			charges.POST("/:id/confirm", chargeHandler.Confirm)
		}

		// Order lifecycle
		orders := v1.Group("/orders")
		{
			orders.POST("", orderHandler.Create)
			orders.GET("/:id", orderHandler.GetByID)
			orders.POST("/:id/confirm", orderHandler.Confirm)
		}

		// Ban list
		bans := v1.Group("/bans")
		{
			bans.PUT("/:id", banHandler.Put)
			bans.DELETE("/:id", banHandler.Delete)
			bans.GET("/:id", banHandler.Get)
		}

		// Free-text command interpreter
		v1.POST("/commands", commandHandler.Interpret)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
