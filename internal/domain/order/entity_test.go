package order_test

import (
	"testing"
	"time"

	"storefront-checkout/internal/domain/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*order.NewOrderParams)
	errIs  error
}

func strPtr(s string) *string { return &s }

func validParams() order.NewOrderParams {
	loc := order.Location{Lat: 41.31, Lng: 69.28}
	return order.NewOrderParams{
		Contact: order.Contact{ClientID: "42", Phone: "+998901234567"},
		Fulfilment: order.Fulfilment{
			Type:     order.DeliveryTypeDelivery,
			Address:  strPtr("Amir Temur 1"),
			Location: &loc,
			Persons:  2,
		},
		PaymentMethod: order.PaymentCash,
		Items: []order.Item{
			{ProductID: "1", Name: "Roll", Price: 2900, DiscountedPrice: 2900, Qty: 2},
			{ProductID: "2", Name: "Soup", Price: 5500, DiscountedPrice: 5500, Qty: 1},
		},
		Totals: order.Totals{
			Subtotal:    11300,
			DeliveryFee: 1000,
			Total:       12300,
		},
		CreatedAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		o, err := order.NewOrder(validParams())
		require.NoError(t, err)

		assert.Equal(t, order.StatusNew, o.Status())
		assert.Equal(t, int64(12300), o.Totals().Total)
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, 2, o.Fulfilment().Persons)
	})

	runCases(t, []testCase{
		{
			name:   "empty items",
			mutate: func(p *order.NewOrderParams) { p.Items = nil },
			errIs:  order.ErrEmptyItems,
		},
		{
			name:   "delivery without address",
			mutate: func(p *order.NewOrderParams) { p.Fulfilment.Address = nil },
			errIs:  order.ErrAddressRequired,
		},
		{
			name:   "delivery without location",
			mutate: func(p *order.NewOrderParams) { p.Fulfilment.Location = nil },
			errIs:  order.ErrLocationRequired,
		},
		{
			name: "pickup without spot",
			mutate: func(p *order.NewOrderParams) {
				p.Fulfilment = order.Fulfilment{Type: order.DeliveryTypePickup}
				p.Totals = order.Totals{Subtotal: 11300, Total: 11300}
			},
			errIs: order.ErrSpotRequired,
		},
		{
			name: "pickup with spot",
			mutate: func(p *order.NewOrderParams) {
				p.Fulfilment = order.Fulfilment{Type: order.DeliveryTypePickup, SpotID: strPtr("1")}
				p.Totals = order.Totals{Subtotal: 11300, Total: 11300}
			},
		},
		{
			name:   "total does not add up",
			mutate: func(p *order.NewOrderParams) { p.Totals.Total = 12000 },
			errIs:  order.ErrInconsistentTotals,
		},
		{
			name: "discount above subtotal plus fees",
			mutate: func(p *order.NewOrderParams) {
				p.Totals.Discount = 13000
				p.Totals.Total = -700
			},
			errIs: order.ErrNegativeAmount,
		},
		{
			name: "discount including bonus",
			mutate: func(p *order.NewOrderParams) {
				p.Totals.Discount = 2300
				p.Totals.BonusUsed = 1000
				p.Totals.Total = 10000
			},
		},
		{
			name: "bonus larger than discount",
			mutate: func(p *order.NewOrderParams) {
				p.Totals.BonusUsed = 500
			},
			errIs: order.ErrInconsistentTotals,
		},
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			o, err := order.NewOrder(p)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, o)
		})
	}
}

func TestValueObjects(t *testing.T) {
	dt, err := order.NewDeliveryType(" Delivery ")
	require.NoError(t, err)
	assert.Equal(t, 3, dt.ServiceMode())
	assert.Equal(t, 2, order.DeliveryTypePickup.ServiceMode())

	_, err = order.NewDeliveryType("drone")
	assert.ErrorIs(t, err, order.ErrInvalidDeliveryType)

	pm, err := order.NewPaymentMethod("CARD")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentCard, pm)

	_, err = order.NewPaymentMethod("crypto")
	assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)

	_, err = order.NewLocation(91, 0)
	assert.ErrorIs(t, err, order.ErrInvalidLocation)
}
