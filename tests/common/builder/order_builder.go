package builder

import (
	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/handler/dto/request"
	"storefront-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

// OrderBuilder produces checkout inputs. The default is a delivery order of
// two lines: 2 x 2900 and 1 x 5500.
type OrderBuilder struct {
	in commands.SubmitOrderInput
}

func NewOrderBuilder() *OrderBuilder {
	address := "Amir Temur 15"
	lat, lng := 41.3111, 69.2797
	return &OrderBuilder{in: commands.SubmitOrderInput{
		Session: customer.Session{
			ClientID: "42",
			Phone:    "+998901234567",
			Name:     "Aziza",
		},
		DeliveryType:  "delivery",
		Address:       &address,
		Lat:           &lat,
		Lng:           &lng,
		PaymentMethod: "cash",
		Items: []commands.OrderItemInput{
			{ProductID: "101", Name: "Philadelphia", Price: 2900, Qty: 2},
			{ProductID: "102", Name: "Green tea", Price: 5500, Qty: 1},
		},
	}}
}

func (b *OrderBuilder) WithSession(s customer.Session) *OrderBuilder {
	b.in.Session = s
	return b
}

func (b *OrderBuilder) WithIdempotencyKey(key uuid.UUID) *OrderBuilder {
	b.in.IdempotencyKey = &key
	return b
}

func (b *OrderBuilder) Pickup(spotID string) *OrderBuilder {
	b.in.DeliveryType = "pickup"
	b.in.Address, b.in.Lat, b.in.Lng = nil, nil, nil
	if spotID != "" {
		b.in.SpotID = &spotID
	} else {
		b.in.SpotID = nil
	}
	return b
}

func (b *OrderBuilder) WithoutLocation() *OrderBuilder {
	b.in.Lat, b.in.Lng = nil, nil
	return b
}

func (b *OrderBuilder) WithoutAddress() *OrderBuilder {
	b.in.Address = nil
	return b
}

func (b *OrderBuilder) WithPromoCode(code string) *OrderBuilder {
	b.in.PromoCode = &code
	return b
}

func (b *OrderBuilder) WithBonus(amount int64) *OrderBuilder {
	b.in.BonusAmount = &amount
	return b
}

func (b *OrderBuilder) WithComment(comment string) *OrderBuilder {
	b.in.Comment = &comment
	return b
}

func (b *OrderBuilder) WithItems(items ...commands.OrderItemInput) *OrderBuilder {
	b.in.Items = items
	return b
}

func (b *OrderBuilder) Build() commands.SubmitOrderInput {
	return b.in
}

// BuildCreateRequestDTO is the HTTP body for the same order.
func (b *OrderBuilder) BuildCreateRequestDTO() request.CreateOrderRequest {
	items := make([]request.OrderItemRequest, 0, len(b.in.Items))
	for _, it := range b.in.Items {
		items = append(items, request.OrderItemRequest{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
			Photo:     it.Photo,
		})
	}
	return request.CreateOrderRequest{
		CustomerPhone: b.in.CustomerPhone,
		CustomerName:  b.in.CustomerName,
		DeliveryType:  b.in.DeliveryType,
		Address:       b.in.Address,
		Lat:           b.in.Lat,
		Lng:           b.in.Lng,
		SpotID:        b.in.SpotID,
		Persons:       b.in.Persons,
		PaymentMethod: b.in.PaymentMethod,
		BonusAmount:   b.in.BonusAmount,
		PromoCode:     b.in.PromoCode,
		Comment:       b.in.Comment,
		Items:         items,
	}
}
