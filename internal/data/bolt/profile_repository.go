package bolt

import (
	"context"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// ProfileRepository implements the profile.Repository interface on bbolt
type ProfileRepository struct {
	view   view
	logger *slog.Logger
}

// NewProfileRepository creates a new bolt profile repository
func NewProfileRepository(logger *slog.Logger, db *persistence.BoltDB) *ProfileRepository {
	return &ProfileRepository{
		view:   view{db: db.DB()},
		logger: logger,
	}
}

// WithTx binds the repository to an open update transaction.
func (r *ProfileRepository) WithTx(tx *bolt.Tx) *ProfileRepository {
	return &ProfileRepository{
		view:   view{tx: tx},
		logger: r.logger,
	}
}

// Ensure returns the existing profile or creates one with a zero balance.
// The lookup and the conditional insert share one update transaction.
func (r *ProfileRepository) Ensure(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	fresh, err := profile.NewProfile(personalIdentifier)
	if err != nil {
		return nil, err
	}

	var result profile.Profile
	err = r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketProfiles)
		found, err := getJSON(bucket, personalIdentifier, &result)
		if err != nil {
			return err
		}
		if found {
			return nil
		}
		result = *fresh
		return putJSON(bucket, personalIdentifier, fresh)
	})
	if err != nil {
		r.logger.Error("Failed to ensure profile", "personal_identifier", personalIdentifier, "error", err)
		return nil, err
	}

	return &result, nil
}

// GetByPersonalID retrieves a profile. Returns (nil, nil) when absent.
func (r *ProfileRepository) GetByPersonalID(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	var result profile.Profile
	var found bool
	err := r.view.read(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketProfiles)
		var err error
		found, err = getJSON(bucket, personalIdentifier, &result)
		return err
	})
	if err != nil {
		r.logger.Error("Failed to get profile", "personal_identifier", personalIdentifier, "error", err)
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &result, nil
}

// Upsert persists name/contact attribute changes, preserving any stored
// balance. Balance moves only through CreditBalance.
func (r *ProfileRepository) Upsert(ctx context.Context, p *profile.Profile) error {
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketProfiles)

		stored := *p
		var existing profile.Profile
		found, err := getJSON(bucket, p.PersonalIdentifier, &existing)
		if err != nil {
			return err
		}
		if found {
			stored.Balance = existing.Balance
			stored.CreatedAt = existing.CreatedAt
		} else {
			stored.Balance = 0
			stored.CreatedAt = time.Now()
		}
		stored.UpdatedAt = time.Now()

		return putJSON(bucket, p.PersonalIdentifier, &stored)
	})
	if err != nil {
		r.logger.Error("Failed to upsert profile", "personal_identifier", p.PersonalIdentifier, "error", err)
		return err
	}
	return nil
}

// CreditBalance applies balance = balance + amount inside one update
// transaction. bbolt serializes writers, so concurrent credits to the same
// identifier cannot lose updates. A missing profile is created with the
// credited amount as its opening balance.
func (r *ProfileRepository) CreditBalance(ctx context.Context, personalIdentifier string, amount float64) (float64, error) {
	var newBalance float64
	err := r.view.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(persistence.BucketProfiles)

		var p profile.Profile
		found, err := getJSON(bucket, personalIdentifier, &p)
		if err != nil {
			return err
		}
		if !found {
			fresh, err := profile.NewProfile(personalIdentifier)
			if err != nil {
				return err
			}
			p = *fresh
		}

		p.Balance += amount
		p.UpdatedAt = time.Now()
		newBalance = p.Balance

		return putJSON(bucket, personalIdentifier, &p)
	})
	if err != nil {
		r.logger.Error("Failed to credit balance", "personal_identifier", personalIdentifier, "amount", amount, "error", err)
		return 0, err
	}

	return newBalance, nil
}
