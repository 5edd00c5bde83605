package components

import (
	"storefront-checkout/internal/handler"
	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/metrics"
	"storefront-checkout/internal/pkg/ratelimit"
	"storefront-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewCatalogHandler,
		NewAuthMiddleware,
		NewOrderLimiter,
	),
	fx.Invoke(NewRouter),
)

func NewAuthMiddleware(validator usecase.TokenValidator, cfg config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(validator, cfg.JWT)
}

func NewOrderLimiter(cfg config.Config, clk clock.Clock) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.OrderMax, cfg.RateLimit.OrderWindow, clk)
}

type RouterParams struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Orders      *api.OrderHandler
	Catalog     *api.CatalogHandler
	Auth        *middleware.AuthMiddleware
	Logger      *middleware.Logger
	OrderLimits *ratelimit.Limiter
	Metrics     *metrics.Registry
}

func NewRouter(p RouterParams) {
	handler.NewRouter(p.Engine, p.Config,
		handler.Handlers{Order: p.Orders, Catalog: p.Catalog},
		handler.Middlewares{
			Auth:        p.Auth,
			Logger:      p.Logger,
			OrderLimits: p.OrderLimits,
			Metrics:     p.Metrics,
		},
	)
}
