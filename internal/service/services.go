package service

import (
	"log/slog"

	postgres "github.com/tessera-live/tessera/internal/repository/postgres"
	redis "github.com/tessera-live/tessera/internal/repository/redis"
	"github.com/tessera-live/tessera/internal/service/catalog"
	"github.com/tessera-live/tessera/internal/service/inventory"
	"github.com/tessera-live/tessera/internal/service/query"
	"github.com/tessera-live/tessera/internal/service/wishlist"
)

type Services struct {
	Inventory *inventory.Service
	Catalog   *catalog.Service
	Query     *query.Service
	Wishlist  *wishlist.Service
}

type Config struct {
	Inventory inventory.Config
	Query     query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.EventsPubSub,
	limiter *redis.SlidingWindowLimiter,
	qr inventory.QRGenerator,
	notifier inventory.Notifier,
	logger *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Inventory: inventory.New(
			postgres.NewInventoryStore(store),
			qr,
			notifier,
			cache,
			pubsub,
			limiter,
			logger,
			cfg.Inventory,
		),
		Catalog:  catalog.New(store, cache, pubsub),
		Query:    query.New(store, cache, cfg.Query),
		Wishlist: wishlist.New(store),
	}
}
