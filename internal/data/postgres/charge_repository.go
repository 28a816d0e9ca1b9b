package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// ChargeRepository implements the charge.Repository interface for PostgreSQL
type ChargeRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewChargeRepository creates a new PostgreSQL charge repository
func NewChargeRepository(logger *slog.Logger, db *persistence.PostgresDB) *ChargeRepository {
	return &ChargeRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations.
func (r *ChargeRepository) WithTx(tx pgx.Tx) *ChargeRepository {
	return &ChargeRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new pending charge
func (r *ChargeRepository) Create(ctx context.Context, c *charge.Charge) error {
	query := `
		INSERT INTO charges (id, personal_identifier, amount, status, replied, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.querier.Exec(ctx, query,
		c.ID,
		c.PersonalIdentifier,
		c.Amount,
		c.Status,
		c.Replied,
		c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create charge", "id", c.ID, "error", err)
		return fmt.Errorf("failed to create charge: %w", err)
	}

	return nil
}

// GetByID retrieves a charge by its id
func (r *ChargeRepository) GetByID(ctx context.Context, id string) (*charge.Charge, error) {
	query := `
		SELECT id, personal_identifier, amount, status, replied, created_at
		FROM charges
		WHERE id = $1
	`

	var c charge.Charge
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.PersonalIdentifier,
		&c.Amount,
		&c.Status,
		&c.Replied,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, charge.ErrChargeNotFound{ID: id}
		}
		r.logger.Error("Failed to get charge", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get charge: %w", err)
	}

	return &c, nil
}

// ListPending retrieves the most recent pending charges for an identifier,
// newest first, bounded by limit.
func (r *ChargeRepository) ListPending(ctx context.Context, personalIdentifier string, limit int) ([]*charge.Charge, error) {
	query := `
		SELECT id, personal_identifier, amount, status, replied, created_at
		FROM charges
		WHERE personal_identifier = $1 AND replied = FALSE
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.querier.Query(ctx, query, personalIdentifier, limit)
	if err != nil {
		r.logger.Error("Failed to list pending charges", "personal_identifier", personalIdentifier, "error", err)
		return nil, fmt.Errorf("failed to list pending charges: %w", err)
	}
	defer rows.Close()

	var charges []*charge.Charge
	for rows.Next() {
		var c charge.Charge
		err := rows.Scan(
			&c.ID,
			&c.PersonalIdentifier,
			&c.Amount,
			&c.Status,
			&c.Replied,
			&c.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan charge row", "error", err)
			return nil, fmt.Errorf("failed to scan charge row: %w", err)
		}
		charges = append(charges, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charge rows: %w", err)
	}

	return charges, nil
}

// ConfirmIfPending performs the conditional confirm: the update is keyed on
// replied = FALSE, so of any number of concurrent confirm attempts exactly
// one sees a row affected.
func (r *ChargeRepository) ConfirmIfPending(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE charges
		SET replied = TRUE, status = $1
		WHERE id = $2 AND replied = FALSE
	`

	result, err := r.querier.Exec(ctx, query, charge.StatusConfirmed, id)
	if err != nil {
		r.logger.Error("Failed to confirm charge", "id", id, "error", err)
		return false, fmt.Errorf("failed to confirm charge: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
