package store

import (
	"context"
	"log/slog"

	bolt "go.etcd.io/bbolt"

	boltdata "github.com/wallet-topup-ledger/internal/data/bolt"
	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// boltGateway backs the gateway with a single local bbolt file. All five
// collections live in one database, so Atomically can span every repository
// including notifications.
type boltGateway struct {
	db *persistence.BoltDB

	profiles      *boltdata.ProfileRepository
	charges       *boltdata.ChargeRepository
	orders        *boltdata.OrderRepository
	bans          *boltdata.BanRepository
	notifications *boltdata.NotificationRepository

	inTx bool
}

func newBoltGateway(logger *slog.Logger, db *persistence.BoltDB) *boltGateway {
	return &boltGateway{
		db:            db,
		profiles:      boltdata.NewProfileRepository(logger, db),
		charges:       boltdata.NewChargeRepository(logger, db),
		orders:        boltdata.NewOrderRepository(logger, db),
		bans:          boltdata.NewBanRepository(logger, db),
		notifications: boltdata.NewNotificationRepository(logger, db),
	}
}

func (g *boltGateway) Profiles() profile.Repository           { return g.profiles }
func (g *boltGateway) Charges() charge.Repository             { return g.charges }
func (g *boltGateway) Orders() order.Repository               { return g.orders }
func (g *boltGateway) Notifications() notification.Repository { return g.notifications }
func (g *boltGateway) Bans() ban.Repository                   { return g.bans }

// Atomically runs fn inside one bbolt update transaction.
func (g *boltGateway) Atomically(ctx context.Context, fn func(Gateway) error) error {
	if g.inTx {
		return fn(g)
	}
	return g.db.DB().Update(func(tx *bolt.Tx) error {
		view := &boltGateway{
			db:            g.db,
			profiles:      g.profiles.WithTx(tx),
			charges:       g.charges.WithTx(tx),
			orders:        g.orders.WithTx(tx),
			bans:          g.bans.WithTx(tx),
			notifications: g.notifications.WithTx(tx),
			inTx:          true,
		}
		return fn(view)
	})
}

func (g *boltGateway) Close(ctx context.Context) error {
	return g.db.Close()
}
