package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wallet-topup-ledger/internal/command_processor/handler"
	"github.com/wallet-topup-ledger/internal/command_processor/service"
	"github.com/wallet-topup-ledger/internal/command_processor/sweeper"
	"github.com/wallet-topup-ledger/internal/config"
	"github.com/wallet-topup-ledger/internal/engine"
	"github.com/wallet-topup-ledger/internal/logger"
	"github.com/wallet-topup-ledger/internal/platform/messaging/consumers"
	"github.com/wallet-topup-ledger/internal/platform/messaging/producers"
	"github.com/wallet-topup-ledger/internal/store"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("command_processor")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Command Processor",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
		"backend", cfg.Storage.Backend,
	)

	// Initialize the storage gateway for the configured backend
	gateway, err := store.New(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize storage gateway", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}

	// Initialize engine services
	notifier := engine.NewNotifierService(log, gateway)
	ledger := engine.NewLedgerService(log, gateway)
	reconciler := engine.NewReconcilerService(log, gateway, notifier, cfg.Matching.LookbackWindow)
	orders := engine.NewOrderService(log, gateway, notifier)
	bans := engine.NewBanService(log, gateway)
	interpreter := engine.NewInterpreterService(log, ledger, reconciler, orders, bans, notifier)

	// Initialize Kafka consumer
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	// Initialize Kafka acknowledgment producer
	ackProducer, err := producers.NewAckProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize acknowledgment Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka DLQ producer
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// dlqProducer might be nil if DLQTopic is not configured. Handler is nil-safe.

	// Initialize the processing service, wrapped in a worker pool when sized
	var processingService service.ProcessingService = service.NewInterpreterProcessingService(log, interpreter)
	if cfg.WorkerPool.Size > 0 {
		processingService, err = service.NewWorkerPoolProcessingService(
			processingService,
			service.WorkerPoolConfig{Size: cfg.WorkerPool.Size},
			log,
		)
		if err != nil {
			log.Error("Failed to initialize worker pool", "error", err)
			os.Exit(1)
		}
	}

	// Keep the handler's nil check meaningful when the DLQ is disabled
	var dlqPublisher producers.DeadLetterPublisher
	if dlqProducer != nil {
		dlqPublisher = dlqProducer
	}

	// Initialize command message handler
	commandHandler := handler.NewCommandMessageHandler(log, processingService, ackProducer, dlqPublisher)

	// Initialize notification retention sweeper
	retentionSweeper := sweeper.NewSweeper(&cfg.Sweeper, gateway.Notifications(), log)

	// Create error channel for service errors
	errChan := make(chan error, 2)

	// Create wait group for graceful shutdown
	var wg sync.WaitGroup

	// Start Kafka consumer in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting Kafka consumer",
			"topic", cfg.Kafka.CommandsTopic,
			"group", cfg.Kafka.ConsumerGroup,
		)
		if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.CommandsTopic, cfg.Kafka.ConsumerGroup, commandHandler.HandleMessage); err != nil {
			errChan <- fmt.Errorf("kafka consumer error: %w", err)
		}
	}()

	// Start notification sweeper in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		retentionSweeper.Start(appCtx)
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Shutdown the worker pool if one is in use
	if wpService, ok := processingService.(*service.WorkerPoolProcessingService); ok {
		log.Info("Shutting down worker pool", "running_workers", wpService.Running())
		wpService.Shutdown()
	}

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Wait for all goroutines to finish
	log.Info("Waiting for services to stop...")
	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()

	select {
	case <-wgChan:
		log.Info("All services stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// Close Kafka producers
	if err = ackProducer.Close(); err != nil {
		log.Error("Error closing acknowledgment Kafka producer", "error", err)
	}
	if dlqProducer != nil { // dlqProducer can be nil if DLQTopic was not configured
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	// Close Kafka consumer
	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	// Close the storage gateway
	if err = gateway.Close(shutdownCtx); err != nil {
		log.Error("Error closing storage gateway", "error", err)
	}

	// Final status
	if serviceErr != nil {
		log.Error("Command Processor shutdown with errors", "error", serviceErr)
	}
	if err != nil {
		log.Error("Command Processor shutdown completed with errors")
	} else {
		log.Info("Command Processor shutdown completed successfully")
	}
}
