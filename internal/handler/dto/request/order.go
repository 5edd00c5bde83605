package request

import (
	"encoding/json"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"max=200"`
	Price     int64   `json:"price" binding:"min=0"`
	Qty       int64   `json:"qty" binding:"required,min=1,max=999"`
	Photo     *string `json:"photo,omitempty"`
	// Storefronts send the category id as either a string or a number.
	MenuCategory json.Number `json:"menu_category_id,omitempty"`
}

// CreateOrderRequest is the checkout body. Prices and bonus are minor units.
type CreateOrderRequest struct {
	CustomerPhone *string            `json:"customerPhone,omitempty" binding:"omitempty,max=32"`
	CustomerName  *string            `json:"customerName,omitempty" binding:"omitempty,max=100"`
	DeliveryType  string             `json:"deliveryType" binding:"required,oneof=delivery pickup"`
	Address       *string            `json:"address,omitempty" binding:"omitempty,max=500"`
	Lat           *float64           `json:"lat,omitempty"`
	Lng           *float64           `json:"lng,omitempty"`
	SpotID        *string            `json:"spotId,omitempty"`
	Persons       *int               `json:"persons,omitempty" binding:"omitempty,min=1,max=50"`
	PaymentMethod string             `json:"paymentMethod" binding:"required,oneof=cash card"`
	BonusAmount   *int64             `json:"bonusAmount,omitempty" binding:"omitempty,min=0"`
	PromoCode     *string            `json:"promoCode,omitempty" binding:"omitempty,max=64"`
	Comment       *string            `json:"comment,omitempty" binding:"omitempty,max=1000"`
	Items         []OrderItemRequest `json:"items" binding:"dive"`
}

func (r *CreateOrderRequest) ToInput(session customer.Session, idempotencyKey *uuid.UUID) (commands.SubmitOrderInput, error) {
	var in commands.SubmitOrderInput
	if err := copier.CopyWithOption(&in, r, copier.Option{DeepCopy: true}); err != nil {
		return commands.SubmitOrderInput{}, err
	}
	for i, item := range r.Items {
		if item.MenuCategory != "" {
			id := item.MenuCategory.String()
			in.Items[i].MenuCategoryID = &id
		}
	}
	in.Session = session
	in.IdempotencyKey = idempotencyKey
	return in, nil
}
