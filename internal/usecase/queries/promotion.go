package queries

import (
	"context"
	"log/slog"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"
)

//go:generate mockgen -source=promotion.go -destination=../../../tests/mock/queries/promotion_mock.go -package=queries

// CartResolution is the discount table for one cart plus the promotion the
// promo code resolved to, if any.
type CartResolution struct {
	Discounts promotion.Table
	Code      *promotion.Promotion
}

type PromotionQueries interface {
	// Discounts builds the storefront-wide table. It fails when the POS
	// promotions cannot be read.
	Discounts(ctx context.Context) (*DiscountsView, error)
	// ResolveCart never fails on POS errors; it degrades to no discount.
	// An unresolvable code is errs.ErrInvalidPromo.
	ResolveCart(ctx context.Context, code string, cartPrices map[string]int64) (*CartResolution, error)
}

type promotionQueriesImpl struct {
	catalog  shared.Catalog
	resolver *promotion.Resolver
	clock    clock.Clock
	logger   *slog.Logger
}

func NewPromotionQueries(
	catalog shared.Catalog,
	resolver *promotion.Resolver,
	clk clock.Clock,
	logger *slog.Logger,
) PromotionQueries {
	return &promotionQueriesImpl{
		catalog:  catalog,
		resolver: resolver,
		clock:    clk,
		logger:   logger,
	}
}

func (q *promotionQueriesImpl) Discounts(ctx context.Context) (*DiscountsView, error) {
	promos, err := q.catalog.Promotions(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "load promotions")
	}
	now := q.clock.Now()
	return &DiscountsView{
		Discounts: q.resolver.Expand(promos, q.products(ctx), now),
		UpdatedAt: now,
	}, nil
}

func (q *promotionQueriesImpl) ResolveCart(ctx context.Context, code string, cartPrices map[string]int64) (*CartResolution, error) {
	code = promotion.NormalizeCode(code)
	now := q.clock.Now()

	promos, err := q.catalog.Promotions(ctx)
	if err != nil {
		q.logger.WarnContext(ctx, "promotions unavailable, pricing at full price",
			slog.String("error", err.Error()))
		if code != "" {
			return nil, errs.ErrInvalidPromo
		}
		return &CartResolution{Discounts: promotion.Table{}}, nil
	}

	res := &CartResolution{Discounts: q.resolver.Expand(promos, q.products(ctx), now)}
	if code == "" {
		return res, nil
	}

	p, ok := q.resolver.FindByCode(promos, code, now)
	if !ok {
		return nil, errs.ErrInvalidPromo
	}
	q.resolver.ApplyCode(res.Discounts, p, cartPrices)
	res.Code = &p
	return res, nil
}

// products is only needed to expand category conditions, so a failed read
// still lets product-scoped promotions apply.
func (q *promotionQueriesImpl) products(ctx context.Context) []promotion.Product {
	products, err := q.catalog.Products(ctx)
	if err != nil {
		q.logger.WarnContext(ctx, "catalog unavailable, category promotions skipped",
			slog.String("error", err.Error()))
		return nil
	}
	return products
}
