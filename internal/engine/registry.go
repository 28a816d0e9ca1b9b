package engine

import (
	"context"

	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/domain/shared"
	"github.com/wallet-topup-ledger/internal/store"
)

// RegistryServiceImpl implements the RegistryService interface
type RegistryServiceImpl struct {
	gateway store.Gateway
}

// NewRegistryService creates a new registry service
func NewRegistryService(gateway store.Gateway) RegistryService {
	return &RegistryServiceImpl{gateway: gateway}
}

func (s *RegistryServiceImpl) EnsureProfile(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	if personalIdentifier == "" {
		return nil, shared.ErrMissingIdentifier
	}
	return s.gateway.Profiles().Ensure(ctx, personalIdentifier)
}

func (s *RegistryServiceImpl) FindProfile(ctx context.Context, personalIdentifier string) (*profile.Profile, error) {
	if personalIdentifier == "" {
		return nil, shared.ErrMissingIdentifier
	}
	return s.gateway.Profiles().GetByPersonalID(ctx, personalIdentifier)
}

func (s *RegistryServiceImpl) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	if p.PersonalIdentifier == "" {
		return shared.ErrMissingIdentifier
	}
	return s.gateway.Profiles().Upsert(ctx, p)
}
