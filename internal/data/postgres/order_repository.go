package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// OrderRepository implements the order.Repository interface for PostgreSQL
type OrderRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewOrderRepository creates a new PostgreSQL order repository
func NewOrderRepository(logger *slog.Logger, db *persistence.PostgresDB) *OrderRepository {
	return &OrderRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations.
func (r *OrderRepository) WithTx(tx pgx.Tx) *OrderRepository {
	return &OrderRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new pending order
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (id, personal_identifier, details, status, replied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		o.ID,
		o.PersonalIdentifier,
		o.Details,
		o.Status,
		o.Replied,
		o.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", "id", o.ID, "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its id
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	query := `
		SELECT id, personal_identifier, details, status, replied, created_at
		FROM orders
		WHERE id = $1
	`

	var o order.Order
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.PersonalIdentifier,
		&o.Details,
		&o.Status,
		&o.Replied,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound{ID: id}
		}
		r.logger.Error("Failed to get order", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &o, nil
}

// ConfirmIfPending performs the conditional confirm keyed on replied = FALSE.
func (r *OrderRepository) ConfirmIfPending(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE orders
		SET replied = TRUE, status = $1
		WHERE id = $2 AND replied = FALSE
	`

	result, err := r.querier.Exec(ctx, query, order.StatusConfirmed, id)
	if err != nil {
		r.logger.Error("Failed to confirm order", "id", id, "error", err)
		return false, fmt.Errorf("failed to confirm order: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
