package api_gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallet-topup-ledger/internal/api_gateway/handler"
	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/engine"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger // For structured logging
	httpServer *http.Server // Underlying HTTP server
	httpRouter *gin.Engine  // Gin router instance
}

// NewServer creates and configures a new HTTP server exposing the engine services
func NewServer(
	log *slog.Logger,
	cfg *config.Config,
	registry engine.RegistryService,
	ledger engine.LedgerService,
	reconciler engine.ReconcilerService,
	orders engine.OrderService,
	bans engine.BanService,
	notifier engine.NotifierService,
	interpreter engine.InterpreterService,
) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	profileHandler := handler.NewProfileHandler(log, registry, ledger, reconciler, bans)
	chargeHandler := handler.NewChargeHandler(log, reconciler)
	orderHandler := handler.NewOrderHandler(log, orders)
	banHandler := handler.NewBanHandler(log, bans)
	notificationHandler := handler.NewNotificationHandler(log, notifier)
	commandHandler := handler.NewCommandHandler(log, interpreter)

	setupRouter(log, httpRouter,
		profileHandler, chargeHandler, orderHandler,
		banHandler, notificationHandler, commandHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}

	return nil
}
