package response

import (
	"time"

	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreateOrderResponse struct {
	OK              bool      `json:"ok"`
	OrderID         uuid.UUID `json:"orderId"`
	ExternalOrderID *string   `json:"externalOrderId,omitempty"`
	Replayed        bool      `json:"replayed,omitempty"`
}

func FromSubmitResult(r *commands.SubmitOrderResult) *CreateOrderResponse {
	return &CreateOrderResponse{
		OK:              true,
		OrderID:         r.OrderID,
		ExternalOrderID: r.ExternalID,
		Replayed:        r.IsReplayed,
	}
}

type OrderStatusResponse struct {
	ID         uuid.UUID `json:"id"`
	ExternalID *string   `json:"externalId,omitempty"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) (*OrderStatusResponse, error) {
	var res OrderStatusResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}
