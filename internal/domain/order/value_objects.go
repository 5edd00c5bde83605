package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDeliveryType  = errors.New("invalid delivery type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidLocation      = errors.New("invalid location")
)

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

func NewDeliveryType(s string) (DeliveryType, error) {
	switch DeliveryType(strings.ToLower(strings.TrimSpace(s))) {
	case DeliveryTypeDelivery:
		return DeliveryTypeDelivery, nil
	case DeliveryTypePickup:
		return DeliveryTypePickup, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDeliveryType, s)
	}
}

func (d DeliveryType) String() string { return string(d) }

// ServiceMode is the POS code for the fulfilment kind.
func (d DeliveryType) ServiceMode() int {
	if d == DeliveryTypeDelivery {
		return 3
	}
	return 2
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func NewPaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, s)
	}
}

func (p PaymentMethod) String() string { return string(p) }

type Status string

const (
	StatusNew Status = "new"
)

func (s Status) String() string { return string(s) }

type Location struct {
	Lat float64
	Lng float64
}

func NewLocation(lat, lng float64) (Location, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Location{}, ErrInvalidLocation
	}
	return Location{Lat: lat, Lng: lng}, nil
}

// Item is the persisted snapshot of one cart line. Prices are minor units.
type Item struct {
	ProductID       string  `json:"product_id"`
	Name            string  `json:"name"`
	Price           int64   `json:"price"`
	DiscountedPrice int64   `json:"discounted_price"`
	Qty             int64   `json:"qty"`
	MenuCategoryID  *string `json:"menu_category_id,omitempty"`
	Photo           *string `json:"photo,omitempty"`
	PromotionID     *int64  `json:"promotion_id,omitempty"`
}
