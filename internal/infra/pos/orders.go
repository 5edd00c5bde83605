package pos

import (
	"bytes"
	"context"
	"net/http"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/pkg/errs"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

const orderMethod = "order.create"

// OrderLine is one product of an order submission. Prices are minor units.
type OrderLine struct {
	ProductID       string
	Name            string
	Count           int64
	Price           int64
	DiscountedPrice int64
	PromotionID     *int64
	DiscountValue   decimal.Decimal
	ResultType      int
	MenuCategoryID  *string
	Photo           *string
}

// OrderRequest is the order API payload. Amounts are minor units and are
// sent to the POS in major units.
type OrderRequest struct {
	ServiceMode    int
	SpotID         string
	PaymentMethod  string
	Bonus          int64
	Lines          []OrderLine
	Total          int64
	Phone          string
	Latitude       float64
	Longitude      float64
	ClientID       string
	Persons        int
	Comment        string
	Address        string
	PromoCode      string
	PromoCodeID    *int64
	IdempotencyKey string
}

type OrderResult struct {
	// ExternalID is the POS order id when the response carried one.
	ExternalID *string
}

// CreateOrder posts the order. Any non-2xx answer is a *StatusError carrying
// the upstream body.
func (c *Client) CreateOrder(ctx context.Context, r OrderRequest) (OrderResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.orderURL, bytes.NewReader(r.Encode()))
	if err != nil {
		return OrderResult{}, errs.Wrap(err, "build order request")
	}
	req.Header.Set("Content-Type", "application/json")
	if r.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", r.IdempotencyKey)
	}

	status, raw, err := c.do(req, orderMethod)
	if err != nil {
		return OrderResult{}, err
	}
	if status < 200 || status > 299 {
		return OrderResult{}, errs.Mark(&StatusError{Method: orderMethod, Status: status, Body: raw}, errs.ErrUpstreamUnavailable)
	}

	var res OrderResult
	// an unparseable success body still means the order was accepted
	if root, err := parse([]byte(raw)); err == nil {
		if id := root.field("order_id").str(); id != "" {
			res.ExternalID = &id
		}
	}
	return res, nil
}

// Encode renders the payload the order API expects.
func (r OrderRequest) Encode() []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("service_mode")
	e.Int(r.ServiceMode)
	e.FieldStart("spot_id")
	writeDigits(&e, r.SpotID)
	e.FieldStart("payment_method")
	e.Str(r.PaymentMethod)
	e.FieldStart("bonus")
	writeMajor(&e, r.Bonus)

	e.FieldStart("products")
	e.ArrStart()
	for _, l := range r.Lines {
		l.encode(&e)
	}
	e.ArrEnd()

	e.FieldStart("total")
	writeMajor(&e, r.Total)
	e.FieldStart("chat_id")
	e.Int(0)
	e.FieldStart("phone")
	e.Str(r.Phone)
	e.FieldStart("location")
	e.ObjStart()
	e.FieldStart("latitude")
	e.Float64(r.Latitude)
	e.FieldStart("longitude")
	e.Float64(r.Longitude)
	e.ObjEnd()
	e.FieldStart("status")
	e.Str("bot")
	e.FieldStart("client_id")
	writeDigits(&e, r.ClientID)
	e.FieldStart("pers_num")
	e.Int(max(r.Persons, 1))
	e.FieldStart("comment")
	e.Str(r.Comment)
	e.FieldStart("address")
	e.Str(r.Address)
	e.FieldStart("promocode")
	e.Str(r.PromoCode)
	e.FieldStart("promocode_id")
	if r.PromoCodeID != nil {
		e.Int64(*r.PromoCodeID)
	} else {
		e.Int(0)
	}
	e.FieldStart("idempotency_key")
	e.Str(r.IdempotencyKey)
	e.ObjEnd()
	return e.Bytes()
}

func (l OrderLine) encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("product_id")
	writeDigits(e, l.ProductID)
	e.FieldStart("product_name")
	e.Str(l.Name)
	e.FieldStart("count")
	e.Int64(l.Count)
	e.FieldStart("price")
	writeMajor(e, l.Price)
	e.FieldStart("discounted_price")
	writeMajor(e, l.DiscountedPrice)
	e.FieldStart("promotion_id")
	if l.PromotionID != nil {
		e.Int64(*l.PromotionID)
	} else {
		e.Null()
	}
	e.FieldStart("discount_value")
	e.Num(jx.Num(l.DiscountValue.String()))
	e.FieldStart("result_type")
	e.Int(l.ResultType)
	if l.MenuCategoryID != nil {
		e.FieldStart("menu_category_id")
		e.Str(*l.MenuCategoryID)
	}
	if l.Photo != nil {
		e.FieldStart("photo_origin")
		e.Str(*l.Photo)
	}
	e.ObjEnd()
}

// writeMajor converts minor units to a major-unit number literal.
func writeMajor(e *jx.Encoder, minor int64) {
	e.Num(jx.Num(decimal.New(minor, -2).String()))
}

// writeDigits writes the digits of an id as a number, 0 when it has none.
func writeDigits(e *jx.Encoder, id string) {
	digits := customer.DigitsOnly(id)
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	if digits == "" {
		digits = "0"
	}
	e.Num(jx.Num(digits))
}
