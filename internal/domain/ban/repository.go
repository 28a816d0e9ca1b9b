package ban

import "context"

// Repository is simple set membership over banned identifiers.
type Repository interface {
	// Add records a ban. Re-banning an already banned identifier replaces the
	// stored reason.
	Add(ctx context.Context, b *BannedIdentifier) error

	// Remove lifts a ban. Removing an identifier that is not banned is a no-op.
	Remove(ctx context.Context, personalIdentifier string) error

	// Get returns (nil, nil) when the identifier is not banned.
	Get(ctx context.Context, personalIdentifier string) (*BannedIdentifier, error)
}
