package shared

import (
	"context"
	"time"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/ttlcache"
)

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/shared/catalog_mock.go -package=shared

// Cache keys for POS reads.
const (
	CacheKeyPromotions = "pos:promotions"
	CacheKeyProducts   = "pos:products:all"
	CacheKeySpots      = "pos:spots"
)

// POSReader is the read side of the POS API.
type POSReader interface {
	Promotions(ctx context.Context) ([]promotion.Promotion, error)
	Products(ctx context.Context) ([]promotion.Product, error)
	Spots(ctx context.Context) ([]pos.Spot, error)
	Client(ctx context.Context, clientID string) (*customer.Profile, error)
}

// Catalog serves promotions, products and spots through the process cache.
// Client profiles are never cached since they carry the bonus balance.
type Catalog interface {
	Promotions(ctx context.Context) ([]promotion.Promotion, error)
	Products(ctx context.Context) ([]promotion.Product, error)
	Spots(ctx context.Context) ([]pos.Spot, error)
	Client(ctx context.Context, clientID string) (*customer.Profile, error)
}

type cachedCatalog struct {
	pos   POSReader
	cache *ttlcache.Cache
	ttl   config.CacheConfig
}

func NewCachedCatalog(reader POSReader, cache *ttlcache.Cache, cfg config.CacheConfig) Catalog {
	return &cachedCatalog{
		pos:   reader,
		cache: cache,
		ttl:   cfg,
	}
}

func (c *cachedCatalog) Promotions(ctx context.Context) ([]promotion.Promotion, error) {
	return ttlcache.Fetch(ctx, c.cache, CacheKeyPromotions, ttlOr(c.ttl.PromotionTTL), c.pos.Promotions)
}

func (c *cachedCatalog) Products(ctx context.Context) ([]promotion.Product, error) {
	return ttlcache.Fetch(ctx, c.cache, CacheKeyProducts, ttlOr(c.ttl.CatalogTTL), c.pos.Products)
}

func (c *cachedCatalog) Spots(ctx context.Context) ([]pos.Spot, error) {
	return ttlcache.Fetch(ctx, c.cache, CacheKeySpots, ttlOr(c.ttl.SpotTTL), c.pos.Spots)
}

func (c *cachedCatalog) Client(ctx context.Context, clientID string) (*customer.Profile, error) {
	return c.pos.Client(ctx, clientID)
}

func ttlOr(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Minute
	}
	return d
}
