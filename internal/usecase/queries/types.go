package queries

import (
	"time"

	"storefront-checkout/internal/domain/promotion"

	"github.com/google/uuid"
)

// OrderView is the status read model of a local order record.
type OrderView struct {
	ID         uuid.UUID `json:"id"`
	ExternalID *string   `json:"external_id,omitempty"`
	ClientID   string    `json:"client_id"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

// DiscountsView is the per-product discount table at UpdatedAt.
type DiscountsView struct {
	Discounts promotion.Table
	UpdatedAt time.Time
}

type SpotView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// AccountView is the caller's POS profile. Bonus is minor units.
type AccountView struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Bonus    int64  `json:"bonus"`
}
