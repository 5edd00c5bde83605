package promotion

import (
	"time"

	"storefront-checkout/internal/domain/workwindow"

	"github.com/shopspring/decimal"
)

// ResultType is the POS discount kind code.
type ResultType int

const (
	ResultFixed   ResultType = 1
	ResultOther   ResultType = 2
	ResultPercent ResultType = 3
)

func (r ResultType) Valid() bool {
	return r == ResultFixed || r == ResultOther || r == ResultPercent
}

// ConditionScope is the POS condition type code.
type ConditionScope int

const (
	ScopeCategory ConditionScope = 1
	ScopeProduct  ConditionScope = 2
)

type Condition struct {
	Scope ConditionScope
	ID    string
}

// PriceOverride is an explicit promotional price in minor units. An empty
// ProductID means the entry is not scoped to a product.
type PriceOverride struct {
	ProductID string
	PriceID   string
	Price     int64
}

type Promotion struct {
	ID        *int64
	Name      string
	AutoApply bool
	// Validity bounds in UTC; nil means unbounded.
	Start *time.Time
	End   *time.Time
	// Daily periods in business time; empty means all day.
	Periods         []workwindow.Window
	Conditions      []Condition
	DiscountValue   decimal.Decimal
	ResultType      ResultType
	Overrides       []PriceOverride
	BonusProductIDs []string
}

// Product is the part of the POS catalog needed to expand category conditions.
type Product struct {
	ID         string
	Name       string
	CategoryID string
	Price      int64
}
