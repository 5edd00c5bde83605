package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyItems         = errors.New("order must contain at least one item")
	ErrAddressRequired    = errors.New("delivery order requires an address")
	ErrLocationRequired   = errors.New("delivery order requires a location")
	ErrSpotRequired       = errors.New("pickup order requires a spot")
	ErrInconsistentTotals = errors.New("order totals are inconsistent")
	ErrNegativeAmount     = errors.New("order amounts cannot be negative")
)

type Contact struct {
	ClientID string
	Phone    string
	Name     *string
}

type Fulfilment struct {
	Type     DeliveryType
	Address  *string
	Location *Location
	SpotID   *string
	Persons  int
}

type Totals struct {
	Subtotal    int64
	PackageFee  int64
	DeliveryFee int64
	Discount    int64
	BonusUsed   int64
	Total       int64
}

func (t Totals) Fees() int64 {
	return t.PackageFee + t.DeliveryFee
}

type Order struct {
	id             uuid.UUID
	externalID     *string
	contact        Contact
	fulfilment     Fulfilment
	paymentMethod  PaymentMethod
	promoCode      *string
	comment        *string
	items          []Item
	totals         Totals
	status         Status
	idempotencyKey *uuid.UUID
	createdAt      time.Time
}

type NewOrderParams struct {
	ExternalID     *string
	Contact        Contact
	Fulfilment     Fulfilment
	PaymentMethod  PaymentMethod
	PromoCode      *string
	Comment        *string
	Items          []Item
	Totals         Totals
	IdempotencyKey *uuid.UUID
	CreatedAt      time.Time
}

// NewOrder builds a record for a submission the POS has accepted.
func NewOrder(p NewOrderParams) (*Order, error) {
	if len(p.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if err := p.Fulfilment.Validate(); err != nil {
		return nil, err
	}
	if err := p.Totals.validate(); err != nil {
		return nil, err
	}
	if p.Fulfilment.Persons < 1 {
		p.Fulfilment.Persons = 1
	}

	return &Order{
		id:             uuid.New(),
		externalID:     p.ExternalID,
		contact:        p.Contact,
		fulfilment:     p.Fulfilment,
		paymentMethod:  p.PaymentMethod,
		promoCode:      p.PromoCode,
		comment:        p.Comment,
		items:          p.Items,
		totals:         p.Totals,
		status:         StatusNew,
		idempotencyKey: p.IdempotencyKey,
		createdAt:      p.CreatedAt,
	}, nil
}

// Validate checks the fields the delivery type requires.
func (f Fulfilment) Validate() error {
	switch f.Type {
	case DeliveryTypeDelivery:
		if f.Address == nil || *f.Address == "" {
			return ErrAddressRequired
		}
		if f.Location == nil {
			return ErrLocationRequired
		}
	case DeliveryTypePickup:
		if f.SpotID == nil || *f.SpotID == "" {
			return ErrSpotRequired
		}
	default:
		return ErrInvalidDeliveryType
	}
	return nil
}

func (t Totals) validate() error {
	if t.Subtotal < 0 || t.PackageFee < 0 || t.DeliveryFee < 0 || t.Discount < 0 || t.BonusUsed < 0 || t.Total < 0 {
		return ErrNegativeAmount
	}
	if t.Discount > t.Subtotal+t.Fees() || t.BonusUsed > t.Discount {
		return ErrInconsistentTotals
	}
	if t.Total != t.Subtotal-t.Discount+t.Fees() {
		return ErrInconsistentTotals
	}
	return nil
}

func ReconstructOrder(
	id uuid.UUID,
	externalID *string,
	contact Contact,
	fulfilment Fulfilment,
	paymentMethod PaymentMethod,
	promoCode, comment *string,
	items []Item,
	totals Totals,
	status Status,
	idempotencyKey *uuid.UUID,
	createdAt time.Time,
) *Order {
	return &Order{
		id:             id,
		externalID:     externalID,
		contact:        contact,
		fulfilment:     fulfilment,
		paymentMethod:  paymentMethod,
		promoCode:      promoCode,
		comment:        comment,
		items:          items,
		totals:         totals,
		status:         status,
		idempotencyKey: idempotencyKey,
		createdAt:      createdAt,
	}
}

// WithExternalID returns a copy carrying the POS order id.
func (o *Order) WithExternalID(id *string) *Order {
	cp := *o
	cp.externalID = id
	return &cp
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) ExternalID() *string          { return o.externalID }
func (o *Order) Contact() Contact             { return o.contact }
func (o *Order) Fulfilment() Fulfilment       { return o.fulfilment }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) PromoCode() *string           { return o.promoCode }
func (o *Order) Comment() *string             { return o.comment }
func (o *Order) Items() []Item                { return o.items }
func (o *Order) Totals() Totals               { return o.totals }
func (o *Order) Status() Status               { return o.status }
func (o *Order) IdempotencyKey() *uuid.UUID   { return o.idempotencyKey }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
