package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wallet-topup-ledger/internal/api_gateway"
	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/engine"
	"github.com/wallet-topup-ledger/internal/logger"
	"github.com/wallet-topup-ledger/internal/store"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the storage gateway for the configured backend
	gateway, err := store.New(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize storage gateway", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}

	// Initialize engine services
	notifier := engine.NewNotifierService(log, gateway)
	registry := engine.NewRegistryService(gateway)
	ledger := engine.NewLedgerService(log, gateway)
	reconciler := engine.NewReconcilerService(log, gateway, notifier, cfg.Matching.LookbackWindow)
	orders := engine.NewOrderService(log, gateway, notifier)
	bans := engine.NewBanService(log, gateway)
	interpreter := engine.NewInterpreterService(log, ledger, reconciler, orders, bans, notifier)

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, registry, ledger, reconciler, orders, bans, notifier, interpreter)
	log.Info("REST server initialized", "backend", cfg.Storage.Backend)

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Close the storage gateway
	if err = gateway.Close(shutdownCtx); err != nil {
		log.Error("Error closing storage gateway", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
