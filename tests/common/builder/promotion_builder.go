package builder

import (
	"time"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/domain/workwindow"

	"github.com/shopspring/decimal"
)

type PromotionBuilder struct {
	p promotion.Promotion
}

func NewPromotionBuilder() *PromotionBuilder {
	id := int64(7)
	return &PromotionBuilder{p: promotion.Promotion{
		ID:            &id,
		Name:          "Weekday lunch",
		AutoApply:     true,
		DiscountValue: decimal.NewFromInt(20),
		ResultType:    promotion.ResultPercent,
		Conditions: []promotion.Condition{
			{Scope: promotion.ScopeProduct, ID: "101"},
		},
	}}
}

func (b *PromotionBuilder) WithID(id int64) *PromotionBuilder {
	b.p.ID = &id
	return b
}

func (b *PromotionBuilder) WithName(name string) *PromotionBuilder {
	b.p.Name = name
	return b
}

func (b *PromotionBuilder) WithAutoApply(v bool) *PromotionBuilder {
	b.p.AutoApply = v
	return b
}

func (b *PromotionBuilder) WithPercent(v int64) *PromotionBuilder {
	b.p.DiscountValue = decimal.NewFromInt(v)
	b.p.ResultType = promotion.ResultPercent
	return b
}

func (b *PromotionBuilder) WithFixed(major int64) *PromotionBuilder {
	b.p.DiscountValue = decimal.NewFromInt(major)
	b.p.ResultType = promotion.ResultFixed
	return b
}

func (b *PromotionBuilder) WithValue(v decimal.Decimal, rt promotion.ResultType) *PromotionBuilder {
	b.p.DiscountValue = v
	b.p.ResultType = rt
	return b
}

func (b *PromotionBuilder) WithConditions(conds ...promotion.Condition) *PromotionBuilder {
	b.p.Conditions = conds
	return b
}

func (b *PromotionBuilder) ForProducts(ids ...string) *PromotionBuilder {
	b.p.Conditions = nil
	for _, id := range ids {
		b.p.Conditions = append(b.p.Conditions, promotion.Condition{Scope: promotion.ScopeProduct, ID: id})
	}
	return b
}

func (b *PromotionBuilder) ForCategories(ids ...string) *PromotionBuilder {
	b.p.Conditions = nil
	for _, id := range ids {
		b.p.Conditions = append(b.p.Conditions, promotion.Condition{Scope: promotion.ScopeCategory, ID: id})
	}
	return b
}

func (b *PromotionBuilder) WithOverrides(o ...promotion.PriceOverride) *PromotionBuilder {
	b.p.Overrides = o
	return b
}

func (b *PromotionBuilder) WithBonusProducts(ids ...string) *PromotionBuilder {
	b.p.BonusProductIDs = ids
	return b
}

func (b *PromotionBuilder) WithValidity(start, end *time.Time) *PromotionBuilder {
	b.p.Start = start
	b.p.End = end
	return b
}

func (b *PromotionBuilder) WithPeriod(start, end string) *PromotionBuilder {
	w, err := workwindow.Parse(start, end)
	if err != nil {
		panic(err)
	}
	b.p.Periods = append(b.p.Periods, w)
	return b
}

func (b *PromotionBuilder) Build() promotion.Promotion {
	return b.p
}
