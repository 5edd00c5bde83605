package promotion

import (
	"time"

	"storefront-checkout/internal/pkg/clock"

	"github.com/shopspring/decimal"
)

// Table maps product id to the discount that applies to it.
type Table map[string]DiscountEntry

// Resolver expands POS promotions into per-product discounts.
type Resolver struct {
	loc *time.Location
}

// NewResolver evaluates daily periods in loc, the business timezone.
func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

func (r *Resolver) IsActive(p Promotion, now time.Time) bool {
	if !p.AutoApply {
		return false
	}
	if p.Start != nil && now.Before(*p.Start) {
		return false
	}
	if p.End != nil && now.After(*p.End) {
		return false
	}
	if len(p.Periods) == 0 {
		return true
	}
	minute := clock.MinuteOfDay(now, r.loc)
	for _, w := range p.Periods {
		if w.ContainsMinute(minute) {
			return true
		}
	}
	return false
}

func (r *Resolver) Active(promos []Promotion, now time.Time) []Promotion {
	out := make([]Promotion, 0, len(promos))
	for _, p := range promos {
		if r.IsActive(p, now) {
			out = append(out, p)
		}
	}
	return out
}

// Expand builds the discount table for the catalog. When several promotions
// target one product the entry giving the lowest price for that product wins;
// ties keep the promotion listed first. Bonus gifts always win.
func (r *Resolver) Expand(promos []Promotion, products []Product, now time.Time) Table {
	byCategory := make(map[string][]string)
	prices := make(map[string]int64, len(products))
	for _, pr := range products {
		prices[pr.ID] = pr.Price
		if pr.CategoryID != "" {
			byCategory[pr.CategoryID] = append(byCategory[pr.CategoryID], pr.ID)
		}
	}

	table := make(Table)
	for _, p := range r.Active(promos, now) {
		for _, cond := range p.Conditions {
			var targets []string
			switch cond.Scope {
			case ScopeCategory:
				targets = byCategory[cond.ID]
			case ScopeProduct:
				targets = []string{cond.ID}
			}
			for _, productID := range targets {
				if entry, ok := entryFor(p, productID); ok {
					table.offer(productID, entry, prices[productID])
				}
			}
		}
		for _, productID := range p.BonusProductIDs {
			table.offer(productID, bonusEntry(p), prices[productID])
		}
	}
	return table
}

// FindByCode looks up an active promotion by its code.
func (r *Resolver) FindByCode(promos []Promotion, code string, now time.Time) (Promotion, bool) {
	code = NormalizeCode(code)
	if code == "" {
		return Promotion{}, false
	}
	for _, p := range promos {
		if p.Code() == code && r.IsActive(p, now) {
			return p, true
		}
	}
	return Promotion{}, false
}

// ApplyCode folds a promo-code promotion into the table for the given cart
// products. A code promotion without conditions covers the whole cart.
func (r *Resolver) ApplyCode(table Table, p Promotion, cartPrices map[string]int64) {
	if len(p.Conditions) > 0 {
		return
	}
	for productID, price := range cartPrices {
		if entry, ok := entryFor(p, productID); ok {
			table.offer(productID, entry, price)
		}
	}
}

func (t Table) offer(productID string, entry DiscountEntry, price int64) {
	current, ok := t[productID]
	if !ok {
		t[productID] = entry
		return
	}
	if current.IsBonus {
		return
	}
	if entry.IsBonus || entry.PriceFor(price) < current.PriceFor(price) {
		t[productID] = entry
	}
}

func entryFor(p Promotion, productID string) (DiscountEntry, bool) {
	overrides := OverridesFor(p.Overrides, productID)
	if !p.DiscountValue.IsPositive() && len(overrides) == 0 {
		return DiscountEntry{}, false
	}
	return DiscountEntry{
		DiscountValue:  p.DiscountValue,
		ResultType:     p.ResultType,
		PromotionID:    p.ID,
		DiscountPrices: overrides,
	}, true
}

// bonusEntry is encoded the way storefronts expect gifts: fixed kind, value 100.
func bonusEntry(p Promotion) DiscountEntry {
	return DiscountEntry{
		DiscountValue: decimal.NewFromInt(100),
		ResultType:    ResultFixed,
		PromotionID:   p.ID,
		IsBonus:       true,
	}
}
