package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-checkout/internal/handler/api"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/metrics"
	"storefront-checkout/internal/pkg/ratelimit"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Order   *api.OrderHandler
	Catalog *api.CatalogHandler
}

type Middlewares struct {
	Auth        *middleware.AuthMiddleware
	Logger      *middleware.Logger
	OrderLimits *ratelimit.Limiter
	Metrics     *metrics.Registry
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, cfg, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled && mw.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(mw.Metrics.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var limitObserver middleware.RateLimitObserver
	if mw.Metrics != nil {
		limitObserver = mw.Metrics
	}

	// the limiter runs ahead of the session check so anonymous floods are counted
	requireSession := mw.Auth.RequireClientSession()
	orderLimit := middleware.RateLimit(mw.OrderLimits, "orders", limitObserver)

	addRoutes(engine.Group("/api"), []route{
		{Method: http.MethodGet, Path: "/promotions", Handler: h.Catalog.Promotions},
		{Method: http.MethodGet, Path: "/spots", Handler: h.Catalog.Spots},
		{
			Method:  http.MethodPost,
			Path:    "/orders",
			Handler: h.Order.Create,
			Mw:      []gin.HandlerFunc{orderLimit, requireSession},
		},
		{Method: http.MethodGet, Path: "/orders/:id", Handler: h.Order.Get, Mw: []gin.HandlerFunc{requireSession}},
		{Method: http.MethodGet, Path: "/account", Handler: h.Catalog.Account, Mw: []gin.HandlerFunc{requireSession}},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		chain := make([]gin.HandlerFunc, 0, len(r.Mw)+1)
		chain = append(chain, r.Mw...)
		chain = append(chain, r.Handler)
		g.Handle(r.Method, r.Path, chain...)
	}
}
