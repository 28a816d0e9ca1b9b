// Package postgres provides PostgreSQL implementations of the domain
// repositories for the remote storage backend. It owns the conditional
// primitives the reconciliation engine relies on: the upsert-increment for
// balances and the replied-flag compare-and-set for charges and orders.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// ProfileRepository implements the profile.Repository interface for PostgreSQL
type ProfileRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewProfileRepository creates a new PostgreSQL profile repository.
func NewProfileRepository(logger *slog.Logger, db *persistence.PostgresDB) *ProfileRepository {
	return &ProfileRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *ProfileRepository) WithTx(tx pgx.Tx) *ProfileRepository {
	return &ProfileRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Ensure returns the existing profile or creates one with a zero balance.
// The insert is conditional on the key, so concurrent callers race safely:
// exactly one row is ever created and an existing balance is never touched.
func (r *ProfileRepository) Ensure(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	fresh, err := profile.NewProfile(personalIdentifier)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO profiles (personal_identifier, display_name, phone, password_hash, balance, can_edit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (personal_identifier) DO NOTHING
	`

	_, err = r.querier.Exec(ctx, query,
		fresh.PersonalIdentifier,
		fresh.DisplayName,
		fresh.Phone,
		fresh.PasswordHash,
		fresh.Balance,
		fresh.CanEdit,
		fresh.CreatedAt,
		fresh.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to ensure profile", "personal_identifier", personalIdentifier, "error", err)
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	p, err := r.GetByPersonalID(ctx, personalIdentifier)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("profile %s missing after ensure", personalIdentifier)
	}
	return p, nil
}

// GetByPersonalID retrieves a profile by its personal identifier.
// Returns (nil, nil) when no profile exists.
func (r *ProfileRepository) GetByPersonalID(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	query := `
		SELECT personal_identifier, display_name, phone, password_hash, balance, can_edit, last_login_at, created_at, updated_at
		FROM profiles
		WHERE personal_identifier = $1
	`

	var p profile.Profile
	err := r.querier.QueryRow(ctx, query, personalIdentifier).Scan(
		&p.PersonalIdentifier,
		&p.DisplayName,
		&p.Phone,
		&p.PasswordHash,
		&p.Balance,
		&p.CanEdit,
		&p.LastLoginAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get profile", "personal_identifier", personalIdentifier, "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// Upsert persists name/contact attribute changes. The balance column is
// deliberately absent from the update list; balance moves only through
// CreditBalance.
func (r *ProfileRepository) Upsert(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (personal_identifier, display_name, phone, password_hash, balance, can_edit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, NOW(), NOW())
		ON CONFLICT (personal_identifier)
		DO UPDATE SET display_name = $2, phone = $3, password_hash = $4, can_edit = $5, updated_at = NOW()
	`

	_, err := r.querier.Exec(ctx, query,
		p.PersonalIdentifier,
		p.DisplayName,
		p.Phone,
		p.PasswordHash,
		p.CanEdit,
	)
	if err != nil {
		r.logger.Error("Failed to upsert profile", "personal_identifier", p.PersonalIdentifier, "error", err)
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// CreditBalance atomically applies balance = balance + amount, creating the
// profile with the credited amount as its opening balance when absent. The
// increment happens inside the database, so concurrent credits to the same
// identifier never lose updates.
func (r *ProfileRepository) CreditBalance(ctx context.Context, personalIdentifier string, amount float64) (float64, error) {
	query := `
		INSERT INTO profiles (personal_identifier, display_name, phone, password_hash, balance, can_edit, created_at, updated_at)
		VALUES ($1, $2, '', '', $3, FALSE, NOW(), NOW())
		ON CONFLICT (personal_identifier)
		DO UPDATE SET balance = profiles.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	var newBalance float64
	err := r.querier.QueryRow(ctx, query, personalIdentifier, profile.DefaultDisplayName, amount).Scan(&newBalance)
	if err != nil {
		r.logger.Error("Failed to credit balance", "personal_identifier", personalIdentifier, "amount", amount, "error", err)
		return 0, fmt.Errorf("failed to credit balance: %w", err)
	}

	return newBalance, nil
}
