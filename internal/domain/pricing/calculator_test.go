package pricing_test

import (
	"testing"

	"storefront-checkout/internal/domain/pricing"
	"storefront-checkout/internal/domain/promotion"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percent(v int64) promotion.DiscountEntry {
	id := int64(5)
	return promotion.DiscountEntry{DiscountValue: decimal.NewFromInt(v), ResultType: promotion.ResultPercent, PromotionID: &id}
}

func TestCalculate(t *testing.T) {
	calc := pricing.NewDefaultPriceCalculator()

	t.Run("delivery fee added to subtotal", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines: []pricing.Line{
				{ProductID: "1", UnitPrice: 2900, Quantity: 2},
				{ProductID: "2", UnitPrice: 5500, Quantity: 1},
			},
			DeliveryFee: 1000,
			Delivery:    true,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(11300), q.Subtotal)
		assert.Equal(t, int64(0), q.PromoDiscount)
		assert.Equal(t, int64(1000), q.Fees())
		assert.Equal(t, int64(12300), q.Total)
	})

	t.Run("pickup ignores delivery fee but keeps package fee", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines:       []pricing.Line{{ProductID: "1", UnitPrice: 2900, Quantity: 1}},
			PackageFee:  200,
			DeliveryFee: 1000,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(200), q.Fees())
		assert.Equal(t, int64(0), q.DeliveryFee)
		assert.Equal(t, int64(3100), q.Total)
	})

	t.Run("promotional discount per line", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines: []pricing.Line{
				{ProductID: "1", UnitPrice: 10000, Quantity: 2},
				{ProductID: "2", UnitPrice: 3000, Quantity: 1},
			},
			Discounts: promotion.Table{"1": percent(20)},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(23000), q.Subtotal)
		assert.Equal(t, int64(4000), q.PromoDiscount)
		assert.Equal(t, int64(19000), q.Total)
		require.NotNil(t, q.Lines[0].Discount)
		assert.Equal(t, int64(8000), q.Lines[0].DiscountedUnitPrice)
		assert.Nil(t, q.Lines[1].Discount)
		assert.Equal(t, int64(3000), q.Lines[1].DiscountedUnitPrice)
	})

	t.Run("bonus gift line is free", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines:     []pricing.Line{{ProductID: "9", UnitPrice: 4000, Quantity: 1}},
			Discounts: promotion.Table{"9": {IsBonus: true}},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(0), q.Total)
		assert.Equal(t, int64(4000), q.PromoDiscount)
	})

	t.Run("bonus redemption within balance", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines:          []pricing.Line{{ProductID: "1", UnitPrice: 5000, Quantity: 1}},
			BonusRequested: 1500,
			BonusAvailable: 2000,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1500), q.BonusUsed)
		assert.Equal(t, int64(3500), q.Total)
		assert.Equal(t, int64(1500), q.Discount())
	})

	t.Run("bonus capped by order total", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines:          []pricing.Line{{ProductID: "1", UnitPrice: 1000, Quantity: 1}},
			BonusRequested: 5000,
			BonusAvailable: 9000,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1000), q.BonusUsed)
		assert.Equal(t, int64(0), q.Total)
	})

	t.Run("bonus above balance is rejected", func(t *testing.T) {
		_, err := calc.Calculate(pricing.Input{
			Lines:          []pricing.Line{{ProductID: "1", UnitPrice: 10000, Quantity: 1}},
			BonusRequested: 3000,
			BonusAvailable: 2999,
		})

		var exceeded *pricing.BonusExceededError
		require.ErrorAs(t, err, &exceeded)
		assert.Equal(t, int64(2999), exceeded.Available)
	})

	t.Run("negative bonus request is treated as none", func(t *testing.T) {
		q, err := calc.Calculate(pricing.Input{
			Lines:          []pricing.Line{{ProductID: "1", UnitPrice: 1000, Quantity: 1}},
			BonusRequested: -50,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), q.BonusUsed)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		_, err := calc.Calculate(pricing.Input{
			Lines: []pricing.Line{{ProductID: "1", UnitPrice: 1000, Quantity: 0}},
		})
		assert.ErrorIs(t, err, pricing.ErrInvalidLine)
	})
}

func TestCalculateInvariants(t *testing.T) {
	calc := pricing.NewDefaultPriceCalculator()
	discounts := promotion.Table{
		"a": percent(35),
		"b": {DiscountValue: decimal.NewFromInt(50), ResultType: promotion.ResultFixed},
		"c": {IsBonus: true},
		"d": {DiscountPrices: []promotion.PriceOverride{{Price: 100}}},
	}

	inputs := []pricing.Input{
		{Lines: []pricing.Line{{ProductID: "a", UnitPrice: 999, Quantity: 3}, {ProductID: "b", UnitPrice: 4000, Quantity: 2}}},
		{Lines: []pricing.Line{{ProductID: "c", UnitPrice: 7000, Quantity: 1}}, PackageFee: 300, DeliveryFee: 1500, Delivery: true, BonusRequested: 1000, BonusAvailable: 1000},
		{Lines: []pricing.Line{{ProductID: "d", UnitPrice: 2500, Quantity: 4}, {ProductID: "x", UnitPrice: 1, Quantity: 1}}, BonusRequested: 500, BonusAvailable: 800},
	}

	for i, in := range inputs {
		in.Discounts = discounts
		q, err := calc.Calculate(in)
		require.NoError(t, err, "input %d", i)

		var original, discounted int64
		for _, l := range q.Lines {
			original += l.UnitPrice * l.Quantity
			discounted += l.DiscountedUnitPrice * l.Quantity
		}
		assert.LessOrEqual(t, discounted, original, "input %d", i)
		assert.LessOrEqual(t, q.BonusUsed, in.BonusAvailable, "input %d", i)
		assert.LessOrEqual(t, q.BonusUsed, q.TotalBeforeBonus, "input %d", i)
		assert.GreaterOrEqual(t, q.Total, int64(0), "input %d", i)
		assert.LessOrEqual(t, q.Discount(), q.Subtotal+q.Fees(), "input %d", i)
		assert.Equal(t, q.Subtotal-q.Discount()+q.Fees(), q.Total, "input %d", i)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	calc := pricing.NewDefaultPriceCalculator()
	in := pricing.Input{
		Lines:     []pricing.Line{{ProductID: "a", UnitPrice: 1234, Quantity: 3}},
		Discounts: promotion.Table{"a": percent(17)},
	}
	first, err := calc.Calculate(in)
	require.NoError(t, err)
	second, err := calc.Calculate(in)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("quote mismatch (-first +second):\n%s", diff)
	}
}
