package pos

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/domain/workwindow"

	"github.com/shopspring/decimal"
)

const posDateLayout = "2006-01-02 15:04:05"

// Promotions fetches clients.getPromotions. Entries without an id are kept;
// they can still expand to discounts but have no promo code.
func (c *Client) Promotions(ctx context.Context) ([]promotion.Promotion, error) {
	root, err := c.get(ctx, "clients.getPromotions", nil)
	if err != nil {
		return nil, err
	}
	resp := response(root)

	var list []*node
	if resp.isArray() {
		list = resp.arr
	} else if resp.isObject() {
		list = []*node{resp}
	}

	out := make([]promotion.Promotion, 0, len(list))
	for _, n := range list {
		if !n.isObject() {
			continue
		}
		out = append(out, c.decodePromotion(ctx, n))
	}
	return out, nil
}

func (c *Client) decodePromotion(ctx context.Context, n *node) promotion.Promotion {
	p := promotion.Promotion{
		Name:      n.field("name").str(),
		AutoApply: n.field("auto_apply").truthy(),
		Start:     parsePOSTime(n.field("date_start").str()),
		End:       parsePOSTime(n.field("date_end").str()),
	}
	if id, ok := n.field("promotion_id", "id").int64(); ok {
		p.ID = &id
	}

	params := n.field("params")
	if v, ok := params.field("discount_value").number(); ok {
		p.DiscountValue = v
	}
	if rt, ok := params.field("result_type").int64(); ok {
		p.ResultType = promotion.ResultType(rt)
	}

	for _, period := range params.field("periods").items() {
		w, err := workwindow.Parse(period.field("start").str(), period.field("end").str())
		if err != nil {
			c.logger.DebugContext(ctx, "skipping promotion period",
				slog.String("promotion", p.Name),
				slog.String("error", err.Error()))
			continue
		}
		p.Periods = append(p.Periods, w)
	}

	for _, cond := range params.field("conditions").items() {
		scope, ok := cond.field("type").int64()
		id := cond.field("id").str()
		if !ok || id == "" {
			continue
		}
		switch promotion.ConditionScope(scope) {
		case promotion.ScopeCategory, promotion.ScopeProduct:
			p.Conditions = append(p.Conditions, promotion.Condition{Scope: promotion.ConditionScope(scope), ID: id})
		}
	}

	p.Overrides = decodeOverrides(params.field("discount_prices"))

	for _, b := range params.field("bonus_products").items() {
		id := b.field("id", "product_id").str()
		if id == "" {
			id = b.str()
		}
		if id != "" {
			p.BonusProductIDs = append(p.BonusProductIDs, id)
		}
	}
	return p
}

var overrideValueKeys = []string{"price_value", "price", "value", "sum", "amount", "price_1", "price1", "1"}

// decodeOverrides accepts an array of entries or an object keyed by product id.
func decodeOverrides(n *node) []promotion.PriceOverride {
	if n == nil {
		return nil
	}
	var out []promotion.PriceOverride
	add := func(keyProductID string, entry *node) {
		o := promotion.PriceOverride{ProductID: keyProductID}
		var (
			value decimal.Decimal
			ok    bool
		)
		if entry.isObject() {
			if id := entry.field("product_id", "productId").str(); id != "" {
				o.ProductID = id
			}
			o.PriceID = entry.field("price_id", "priceId").str()
			value, ok = entry.field(overrideValueKeys...).number()
		} else {
			value, ok = entry.number()
		}
		if !ok {
			return
		}
		o.Price = value.Round(0).IntPart()
		out = append(out, o)
	}

	switch {
	case n.isArray():
		for _, entry := range n.arr {
			add("", entry)
		}
	case n.isObject():
		for _, k := range n.keys {
			add(k, n.obj[k])
		}
	}
	return out
}

// parsePOSTime reads UTC "YYYY-MM-DD HH:MM:SS". The zero date means unbounded.
func parsePOSTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return nil
	}
	t, err := time.ParseInLocation(posDateLayout, s, time.UTC)
	if err != nil {
		t, err = time.ParseInLocation(time.DateOnly, s, time.UTC)
		if err != nil {
			return nil
		}
	}
	return &t
}
