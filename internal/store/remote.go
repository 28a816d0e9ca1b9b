package store

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	mongodata "github.com/wallet-topup-ledger/internal/data/mongo"
	pgdata "github.com/wallet-topup-ledger/internal/data/postgres"
	"github.com/wallet-topup-ledger/internal/domain/ban"
	"github.com/wallet-topup-ledger/internal/domain/charge"
	"github.com/wallet-topup-ledger/internal/domain/notification"
	"github.com/wallet-topup-ledger/internal/domain/order"
	"github.com/wallet-topup-ledger/internal/domain/profile"
	"github.com/wallet-topup-ledger/internal/platform/persistence"
)

// remoteGateway backs the gateway with PostgreSQL for ledger records and
// MongoDB for the notification feed.
type remoteGateway struct {
	pg    *persistence.PostgresDB
	mongo *persistence.MongoDB

	profiles      *pgdata.ProfileRepository
	charges       *pgdata.ChargeRepository
	orders        *pgdata.OrderRepository
	bans          *pgdata.BanRepository
	notifications *mongodata.NotificationRepository

	// inTx marks a gateway view already bound to a transaction. Atomically on
	// such a view runs fn directly instead of opening a nested transaction.
	inTx bool
}

func newRemoteGateway(logger *slog.Logger, pg *persistence.PostgresDB, mongo *persistence.MongoDB) *remoteGateway {
	return &remoteGateway{
		pg:            pg,
		mongo:         mongo,
		profiles:      pgdata.NewProfileRepository(logger, pg),
		charges:       pgdata.NewChargeRepository(logger, pg),
		orders:        pgdata.NewOrderRepository(logger, pg),
		bans:          pgdata.NewBanRepository(logger, pg),
		notifications: mongodata.NewNotificationRepository(logger, mongo.Database()),
	}
}

func (g *remoteGateway) Profiles() profile.Repository           { return g.profiles }
func (g *remoteGateway) Charges() charge.Repository             { return g.charges }
func (g *remoteGateway) Orders() order.Repository               { return g.orders }
func (g *remoteGateway) Notifications() notification.Repository { return g.notifications }
func (g *remoteGateway) Bans() ban.Repository                   { return g.bans }

// Atomically runs fn with the relational repositories bound to one
// PostgreSQL transaction. The notification repository stays as-is; the feed
// is outside the transactional contract.
func (g *remoteGateway) Atomically(ctx context.Context, fn func(Gateway) error) error {
	if g.inTx {
		return fn(g)
	}
	return g.pg.ExecuteTx(ctx, func(tx pgx.Tx) error {
		view := &remoteGateway{
			pg:            g.pg,
			mongo:         g.mongo,
			profiles:      g.profiles.WithTx(tx),
			charges:       g.charges.WithTx(tx),
			orders:        g.orders.WithTx(tx),
			bans:          g.bans.WithTx(tx),
			notifications: g.notifications,
			inTx:          true,
		}
		return fn(view)
	})
}

func (g *remoteGateway) Close(ctx context.Context) error {
	g.pg.Close()
	return g.mongo.Close(ctx)
}
