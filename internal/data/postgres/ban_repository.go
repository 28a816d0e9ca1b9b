package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// BanRepository implements the ban.Repository interface for PostgreSQL
type BanRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewBanRepository creates a new PostgreSQL ban repository
func NewBanRepository(logger *slog.Logger, db *persistence.PostgresDB) *BanRepository {
	return &BanRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction for atomic operations.
func (r *BanRepository) WithTx(tx pgx.Tx) *BanRepository {
	return &BanRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Add records a ban, replacing the stored reason when the identifier is
// already banned.
func (r *BanRepository) Add(ctx context.Context, b *ban.BannedIdentifier) error {
	query := `
		INSERT INTO banned_identifiers (personal_identifier, reason, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (personal_identifier)
		DO UPDATE SET reason = EXCLUDED.reason, created_at = EXCLUDED.created_at
	`

	_, err := r.querier.Exec(ctx, query, b.PersonalIdentifier, b.Reason, b.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to add ban", "personal_identifier", b.PersonalIdentifier, "error", err)
		return fmt.Errorf("failed to add ban: %w", err)
	}

	return nil
}

// Remove lifts a ban; removing an absent entry is a no-op.
func (r *BanRepository) Remove(ctx context.Context, personalIdentifier string) error {
	query := `DELETE FROM banned_identifiers WHERE personal_identifier = $1`

	_, err := r.querier.Exec(ctx, query, personalIdentifier)
	if err != nil {
		r.logger.Error("Failed to remove ban", "personal_identifier", personalIdentifier, "error", err)
		return fmt.Errorf("failed to remove ban: %w", err)
	}

	return nil
}

// Get returns (nil, nil) when the identifier is not banned.
func (r *BanRepository) Get(ctx context.Context, personalIdentifier string) (*ban.BannedIdentifier, error) {
	query := `
		SELECT personal_identifier, reason, created_at
		FROM banned_identifiers
		WHERE personal_identifier = $1
	`

	var b ban.BannedIdentifier
	err := r.querier.QueryRow(ctx, query, personalIdentifier).Scan(
		&b.PersonalIdentifier,
		&b.Reason,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get ban", "personal_identifier", personalIdentifier, "error", err)
		return nil, fmt.Errorf("failed to get ban: %w", err)
	}

	return &b, nil
}
