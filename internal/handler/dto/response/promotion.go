package response

import (
	"encoding/json"
	"time"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/usecase/queries"
)

type DiscountPriceResponse struct {
	ProductID string `json:"product_id,omitempty"`
	PriceID   string `json:"price_id,omitempty"`
	Price     int64  `json:"price"`
}

// DiscountEntryResponse keeps the POS vocabulary: result_type 1 fixed,
// 2 other, 3 percent. Fixed values are major units.
type DiscountEntryResponse struct {
	DiscountValue  json.Number             `json:"discount_value" swaggertype:"number"`
	ResultType     int                     `json:"result_type"`
	PromotionID    *int64                  `json:"promotion_id"`
	DiscountPrices []DiscountPriceResponse `json:"discount_prices,omitempty"`
	IsBonus        bool                    `json:"is_bonus,omitempty"`
}

type PromotionsResponse struct {
	Discounts map[string]DiscountEntryResponse `json:"discounts"`
	UpdatedAt time.Time                        `json:"updatedAt"`
}

func FromDiscountsView(v *queries.DiscountsView) *PromotionsResponse {
	res := &PromotionsResponse{
		Discounts: make(map[string]DiscountEntryResponse, len(v.Discounts)),
		UpdatedAt: v.UpdatedAt,
	}
	for productID, e := range v.Discounts {
		res.Discounts[productID] = fromDiscountEntry(e)
	}
	return res
}

func fromDiscountEntry(e promotion.DiscountEntry) DiscountEntryResponse {
	out := DiscountEntryResponse{
		DiscountValue: json.Number(e.DiscountValue.String()),
		ResultType:    int(e.ResultType),
		PromotionID:   e.PromotionID,
		IsBonus:       e.IsBonus,
	}
	for _, p := range e.DiscountPrices {
		out.DiscountPrices = append(out.DiscountPrices, DiscountPriceResponse{
			ProductID: p.ProductID,
			PriceID:   p.PriceID,
			Price:     p.Price,
		})
	}
	return out
}
