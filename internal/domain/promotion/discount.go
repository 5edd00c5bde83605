package promotion

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// DiscountEntry is the discount attached to one product after expansion.
type DiscountEntry struct {
	DiscountValue  decimal.Decimal
	ResultType     ResultType
	PromotionID    *int64
	DiscountPrices []PriceOverride
	IsBonus        bool
}

// PriceFor returns the discounted unit price for an original price in minor
// units. Bonus gifts cost nothing. When both a value-based price and an
// override are computable the lower one wins; with neither the original
// price is kept.
func (e DiscountEntry) PriceFor(original int64) int64 {
	if e.IsBonus {
		return 0
	}
	if original < 0 {
		original = 0
	}

	best := original
	found := false

	if byValue, ok := e.valuePrice(original); ok {
		best, found = byValue, true
	}
	if byList, ok := OverridePrice(e.DiscountPrices); ok {
		if !found || byList < best {
			best, found = byList, true
		}
	}
	if !found {
		return original
	}
	// a promotion never raises a price
	return min(best, original)
}

// valuePrice applies percent or fixed discounts. Fixed values arrive from the
// POS in major units.
func (e DiscountEntry) valuePrice(original int64) (int64, bool) {
	if !e.DiscountValue.IsPositive() {
		return 0, false
	}
	price := decimal.NewFromInt(original)

	var discounted decimal.Decimal
	switch e.ResultType {
	case ResultPercent:
		discounted = price.Mul(hundred.Sub(e.DiscountValue)).Div(hundred).Round(0)
	case ResultFixed:
		discounted = price.Sub(e.DiscountValue.Mul(hundred)).Round(0)
	default:
		return 0, false
	}
	if discounted.IsNegative() {
		return 0, true
	}
	return discounted.IntPart(), true
}

// OverridePrice picks the minimum positive override, preferring the primary
// price list (price id "1") when it has one.
func OverridePrice(overrides []PriceOverride) (int64, bool) {
	primary, primaryOK := minPositive(overrides, func(o PriceOverride) bool { return o.PriceID == "1" })
	if primaryOK {
		return primary, true
	}
	return minPositive(overrides, func(PriceOverride) bool { return true })
}

func minPositive(overrides []PriceOverride, keep func(PriceOverride) bool) (int64, bool) {
	var (
		best int64
		ok   bool
	)
	for _, o := range overrides {
		if o.Price <= 0 || !keep(o) {
			continue
		}
		if !ok || o.Price < best {
			best, ok = o.Price, true
		}
	}
	return best, ok
}

// OverridesFor keeps entries scoped to productID. Entries without a product id
// apply to every product of the promotion.
func OverridesFor(overrides []PriceOverride, productID string) []PriceOverride {
	var out []PriceOverride
	for _, o := range overrides {
		if o.ProductID == "" || o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out
}
