package profile

import (
	"context"
)

// Repository defines profile persistence operations
type Repository interface {
	// Ensure returns the profile for the identifier, creating it with a zero
	// balance when absent. Creation must be atomic under concurrent callers.
	Ensure(ctx context.Context, personalIdentifier string) (*Profile, error)

	// GetByPersonalID retrieves a profile. Returns (nil, nil) when absent;
	// absence is not an error at this level.
	GetByPersonalID(ctx context.Context, personalIdentifier string) (*Profile, error)

	// Upsert persists profile attribute changes (name/contact). It never
	// touches the balance column; balance moves only through CreditBalance.
	Upsert(ctx context.Context, p *Profile) error

	// CreditBalance atomically applies balance = balance + amount and returns
	// the new balance. When no profile exists one is created with the credited
	// amount as its opening balance. Implementations must not read-then-write
	// the balance outside of a storage-level atomic operation.
	CreditBalance(ctx context.Context, personalIdentifier string, amount float64) (float64, error)
}

// ErrProfileNotFound indicates a missing profile where one was required
type ErrProfileNotFound struct {
	PersonalIdentifier string
}

func (e ErrProfileNotFound) Error() string {
	return "profile not found: " + e.PersonalIdentifier
}

// Is matches any ErrProfileNotFound when the target carries no identifier
func (e ErrProfileNotFound) Is(target error) bool {
	t, ok := target.(ErrProfileNotFound)
	if !ok {
		return false
	}
	if t.PersonalIdentifier == "" {
		return true
	}
	return e.PersonalIdentifier == t.PersonalIdentifier
}
