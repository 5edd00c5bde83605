package components

import (
	"log/slog"
	"time"

	"storefront-checkout/internal/domain/pricing"
	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra/notify"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/keylock"
	"storefront-checkout/internal/pkg/metrics"
	"storefront-checkout/internal/pkg/ttlcache"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewDefaultPriceCalculator,
		fx.As(new(pricing.PriceCalculator)),
	),
	promotion.NewResolver,
	keylock.New,
	NewCache,
	NewCatalog,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewOrderCommands,
		commands.NewIdempotencyCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPromotionQueries,
		queries.NewSpotQueries,
		queries.NewAccountQueries,
		queries.NewOrderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCache(clk clock.Clock, reg *metrics.Registry) *ttlcache.Cache {
	return ttlcache.New(clk, reg)
}

func NewCatalog(client *pos.Client, cache *ttlcache.Cache, cfg config.Config) shared.Catalog {
	return shared.NewCachedCatalog(client, cache, cfg.Cache)
}

type OrderCommandsParams struct {
	fx.In

	UoW        shared.UnitOfWork
	Promotions queries.PromotionQueries
	Catalog    shared.Catalog
	Gateway    *pos.Client
	Notifier   *notify.Telegram
	Metrics    *metrics.Registry
	Calculator pricing.PriceCalculator
	Locks      *keylock.KeyLock
	Clock      clock.Clock
	Location   *time.Location
	Config     config.Config
	Logger     *slog.Logger
}

func NewOrderCommands(p OrderCommandsParams) commands.OrderCommands {
	return commands.NewOrderCommands(commands.OrderCommandsDeps{
		UoW:        p.UoW,
		Discounts:  p.Promotions,
		Profiles:   p.Catalog,
		Gateway:    p.Gateway,
		Notifier:   p.Notifier,
		Recorder:   p.Metrics,
		Calculator: p.Calculator,
		Locks:      p.Locks,
		Clock:      p.Clock,
		Location:   p.Location,
		Shop:       p.Config.Shop,
		Idem:       p.Config.Idempotency,
		Logger:     p.Logger,
	})
}
