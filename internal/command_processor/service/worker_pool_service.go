package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/engine"
)

type poolResult struct {
	outcome *engine.Outcome
	err     error
}

// WorkerPoolProcessingService implements the ProcessingService interface on
// top of a bounded worker pool. The caller still blocks for the result, so
// the per-sender ordering given by partition keying is preserved; the pool
// bounds how many interpretations run at once across consumers.
type WorkerPoolProcessingService struct {
	baseService ProcessingService
	pool        *ants.Pool
	logger      *slog.Logger
	// Use a mutex to protect access to the results map
	mu      sync.Mutex
	results map[string]chan poolResult
}

type WorkerPoolConfig struct {
	Size int
}

func NewWorkerPoolProcessingService(
	baseService ProcessingService,
	config WorkerPoolConfig,
	logger *slog.Logger,
) (*WorkerPoolProcessingService, error) {
	pool, err := ants.NewPool(config.Size)
	if err != nil {
		return nil, err
	}

	return &WorkerPoolProcessingService{
		baseService: baseService,
		pool:        pool,
		logger:      logger,
		results:     make(map[string]chan poolResult),
	}, nil
}

// Process submits the message to the worker pool and waits for its outcome.
func (s *WorkerPoolProcessingService) Process(ctx context.Context, msg *shared.InboundMessage) (*engine.Outcome, error) {
	s.logger.Debug("Submitting message to worker pool",
		"message_id", msg.MessageID,
		"channel_id", msg.ChannelID,
	)

	resultChan := make(chan poolResult, 1)

	messageID := msg.MessageID
	s.mu.Lock()
	s.results[messageID] = resultChan
	s.mu.Unlock()

	// Copy to avoid data races with the submitting goroutine
	msgCopy := *msg

	err := s.pool.Submit(func() {
		outcome, err := s.baseService.Process(ctx, &msgCopy)

		resultChan <- poolResult{outcome: outcome, err: err}

		s.mu.Lock()
		delete(s.results, messageID)
		close(resultChan)
		s.mu.Unlock()
	})

	if err != nil {
		s.mu.Lock()
		delete(s.results, messageID)
		close(resultChan)
		s.mu.Unlock()

		s.logger.Error("Failed to submit message to worker pool",
			"message_id", msg.MessageID,
			"error", err,
		)
		return nil, err
	}

	result := <-resultChan
	return result.outcome, result.err
}

// Shutdown gracefully shuts down the worker pool.
func (s *WorkerPoolProcessingService) Shutdown() {
	s.logger.Info("Shutting down worker pool", "running_workers", s.pool.Running())
	s.pool.Release()
}

// Running returns the number of running workers in the pool.
func (s *WorkerPoolProcessingService) Running() int {
	return s.pool.Running()
}

// Capacity returns the capacity of the worker pool.
func (s *WorkerPoolProcessingService) Capacity() int {
	return s.pool.Cap()
}
