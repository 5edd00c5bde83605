package pricing

import (
	"errors"
	"fmt"

	"storefront-checkout/internal/domain/promotion"
)

var ErrInvalidLine = errors.New("invalid cart line")

// BonusExceededError reports a redemption request above the customer's balance.
type BonusExceededError struct {
	Requested int64
	Available int64
}

func (e *BonusExceededError) Error() string {
	return fmt.Sprintf("bonus exceeded: requested %d, available %d", e.Requested, e.Available)
}

// Line is one cart position. Prices are minor currency units.
type Line struct {
	ProductID string
	UnitPrice int64
	Quantity  int64
}

type Input struct {
	Lines          []Line
	Discounts      promotion.Table
	PackageFee     int64
	DeliveryFee    int64
	Delivery       bool
	BonusRequested int64
	BonusAvailable int64
}

type QuotedLine struct {
	Line
	DiscountedUnitPrice int64
	Discount            *promotion.DiscountEntry
}

type Quote struct {
	Lines            []QuotedLine
	Subtotal         int64
	PromoDiscount    int64
	PackageFee       int64
	DeliveryFee      int64
	TotalBeforeBonus int64
	BonusUsed        int64
	Total            int64
}

func (q Quote) Fees() int64 {
	return q.PackageFee + q.DeliveryFee
}

// Discount is what the order record stores: promotional discount plus redeemed bonus.
func (q Quote) Discount() int64 {
	return q.PromoDiscount + q.BonusUsed
}

type PriceCalculator interface {
	Calculate(in Input) (Quote, error)
}

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

func (pc *DefaultPriceCalculator) Calculate(in Input) (Quote, error) {
	q := Quote{Lines: make([]QuotedLine, 0, len(in.Lines))}

	for _, l := range in.Lines {
		if l.Quantity <= 0 || l.UnitPrice < 0 {
			return Quote{}, fmt.Errorf("%w: product %s", ErrInvalidLine, l.ProductID)
		}
		ql := QuotedLine{Line: l, DiscountedUnitPrice: l.UnitPrice}
		if entry, ok := in.Discounts[l.ProductID]; ok {
			ql.DiscountedUnitPrice = entry.PriceFor(l.UnitPrice)
			if ql.DiscountedUnitPrice < l.UnitPrice {
				e := entry
				ql.Discount = &e
			}
		}
		q.Subtotal += l.UnitPrice * l.Quantity
		q.PromoDiscount += (l.UnitPrice - ql.DiscountedUnitPrice) * l.Quantity
		q.Lines = append(q.Lines, ql)
	}

	q.PackageFee = max(in.PackageFee, 0)
	if in.Delivery {
		q.DeliveryFee = max(in.DeliveryFee, 0)
	}
	q.TotalBeforeBonus = max(0, q.Subtotal-q.PromoDiscount+q.Fees())

	requested := max(in.BonusRequested, 0)
	available := max(in.BonusAvailable, 0)
	if requested > available {
		return Quote{}, &BonusExceededError{Requested: requested, Available: available}
	}
	q.BonusUsed = min(requested, available, q.TotalBeforeBonus)
	q.Total = max(0, q.TotalBeforeBonus-q.BonusUsed)

	return q, nil
}
