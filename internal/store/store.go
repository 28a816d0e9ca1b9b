// Package store assembles the domain repositories into a single persistence
// gateway. The engine depends only on the Gateway interface, so either
// storage backend can serve it without the engine knowing which one is wired.
package store

import (
	"context"

	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/profile"
)

// Gateway bundles all domain repositories behind one port.
//
// Atomically runs fn against a gateway view whose record repositories share
// one transaction: every write commits or none do. The notification feed
// lives outside the transactional scope on the remote backend, so callers
// must not rely on notification writes rolling back with the rest.
type Gateway interface {
	Profiles() profile.Repository
	Charges() charge.Repository
	Orders() order.Repository
	Notifications() notification.Repository
	Bans() ban.Repository

	Atomically(ctx context.Context, fn func(g Gateway) error) error

	Close(ctx context.Context) error
}
