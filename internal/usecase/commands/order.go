package commands

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/domain/pricing"
	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/domain/workwindow"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/notify"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/keylock"
	"storefront-checkout/internal/pkg/patch"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order_mock.go -package=commands

const orderEndpoint = "POST /api/orders"

var (
	ErrUnauthorized    = errs.New("client session required")
	ErrInvalidBody     = errs.New("invalid order body")
	ErrEmptyCart       = errs.New("cart is empty")
	ErrPhoneRequired   = errs.New("customer phone required")
	ErrClientIDInvalid = errs.New("client id has no digits")
)

// ClosedError rejects orders outside business hours. Start and End are the
// configured bounds as stored.
type ClosedError struct {
	Start string
	End   string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("shop is closed, working hours %s-%s", e.Start, e.End)
}

type OrderItemInput struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Price          int64   `json:"price"`
	Qty            int64   `json:"qty"`
	MenuCategoryID *string `json:"menu_category_id,omitempty"`
	Photo          *string `json:"photo,omitempty"`
}

// SubmitOrderInput is one checkout request. Amounts are minor units.
type SubmitOrderInput struct {
	Session        customer.Session `json:"-"`
	IdempotencyKey *uuid.UUID       `json:"-"`

	CustomerPhone *string          `json:"customer_phone,omitempty"`
	CustomerName  *string          `json:"customer_name,omitempty"`
	DeliveryType  string           `json:"delivery_type"`
	Address       *string          `json:"address,omitempty"`
	Lat           *float64         `json:"lat,omitempty"`
	Lng           *float64         `json:"lng,omitempty"`
	SpotID        *string          `json:"spot_id,omitempty"`
	Persons       *int             `json:"persons,omitempty"`
	PaymentMethod string           `json:"payment_method"`
	BonusAmount   *int64           `json:"bonus_amount,omitempty"`
	PromoCode     *string          `json:"promo_code,omitempty"`
	Comment       *string          `json:"comment,omitempty"`
	Items         []OrderItemInput `json:"items"`
}

type SubmitOrderResult struct {
	OrderID    uuid.UUID
	ExternalID *string
	IsReplayed bool
}

type OrderCommands interface {
	Submit(ctx context.Context, in SubmitOrderInput) (*SubmitOrderResult, error)
}

type OrderCommandsDeps struct {
	UoW        shared.UnitOfWork
	Discounts  DiscountResolver
	Profiles   ProfileSource
	Gateway    OrderGateway
	Notifier   Notifier
	Recorder   Recorder
	Calculator pricing.PriceCalculator
	Locks      *keylock.KeyLock
	Clock      clock.Clock
	Location   *time.Location
	Shop       config.ShopConfig
	Idem       config.IdempotencyConfig
	Logger     *slog.Logger
}

type orderCommandsImpl struct {
	uow        shared.UnitOfWork
	discounts  DiscountResolver
	profiles   ProfileSource
	gateway    OrderGateway
	notifier   Notifier
	recorder   Recorder
	calculator pricing.PriceCalculator
	locks      *keylock.KeyLock
	clock      clock.Clock
	loc        *time.Location
	shop       config.ShopConfig
	idemTTL    time.Duration
	logger     *slog.Logger
}

func NewOrderCommands(d OrderCommandsDeps) OrderCommands {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	locks := d.Locks
	if locks == nil {
		locks = keylock.New()
	}
	ttl := d.Idem.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &orderCommandsImpl{
		uow:        d.UoW,
		discounts:  d.Discounts,
		profiles:   d.Profiles,
		gateway:    d.Gateway,
		notifier:   d.Notifier,
		recorder:   d.Recorder,
		calculator: d.Calculator,
		locks:      locks,
		clock:      d.Clock,
		loc:        loc,
		shop:       d.Shop,
		idemTTL:    ttl,
		logger:     d.Logger,
	}
}

// Submit runs the checkout pipeline. Every rejection happens before the POS
// call; once the POS accepts the order the result always carries an order id.
func (c *orderCommandsImpl) Submit(ctx context.Context, in SubmitOrderInput) (res *SubmitOrderResult, err error) {
	defer func() {
		c.record(Outcome(res, err))
	}()

	clientID := strings.TrimSpace(in.Session.ClientID)
	if clientID == "" {
		return nil, ErrUnauthorized
	}

	// bonus balance read and POS submission must not interleave for one customer
	unlock, err := c.locks.Lock(ctx, clientID)
	if err != nil {
		return nil, errs.Wrap(err, "wait for client lock")
	}
	defer unlock()

	if in.IdempotencyKey == nil {
		res, _, err = c.submit(ctx, in, clientID)
		return res, err
	}

	key := *in.IdempotencyKey
	replay, err := c.claim(ctx, key, clientID, requestHash(in))
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return replay, nil
	}

	res, accepted, err := c.submit(ctx, in, clientID)
	if err != nil && !accepted {
		c.release(ctx, key, clientID)
	}
	return res, err
}

// submit reports accepted once the POS has taken the order.
func (c *orderCommandsImpl) submit(ctx context.Context, in SubmitOrderInput, clientID string) (*SubmitOrderResult, bool, error) {
	settings := c.settings(ctx)
	if err := c.checkOpen(settings); err != nil {
		return nil, false, err
	}

	lines, items, err := cartLines(in.Items)
	if err != nil {
		return nil, false, err
	}

	// the POS profile is read early only when no phone came with the request
	var profile *customer.Profile
	rawPhone := patch.FirstNonBlank(patch.Coalesce(in.CustomerPhone, ""), in.Session.Phone)
	if rawPhone == "" {
		p := c.profile(ctx, clientID)
		profile = &p
		rawPhone = p.Phone
	}
	phone := customer.FormatPhone(rawPhone)
	if phone == "" {
		return nil, false, ErrPhoneRequired
	}
	posClientID := customer.DigitsOnly(clientID)
	if posClientID == "" {
		return nil, false, ErrClientIDInvalid
	}

	fulfilment, err := buildFulfilment(in)
	if err != nil {
		return nil, false, err
	}
	payment, err := order.NewPaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, false, errs.Mark(err, ErrInvalidBody)
	}

	promoCode := patch.TrimmedPtr(in.PromoCode)
	resolution, err := c.discounts.ResolveCart(ctx, patch.Coalesce(promoCode, ""), cartPrices(lines))
	if err != nil {
		return nil, false, err
	}

	if profile == nil {
		p := c.profile(ctx, clientID)
		profile = &p
	}

	quote, err := c.calculator.Calculate(pricing.Input{
		Lines:          lines,
		Discounts:      resolution.Discounts,
		PackageFee:     settings.packageFee,
		DeliveryFee:    settings.deliveryFee,
		Delivery:       fulfilment.Type == order.DeliveryTypeDelivery,
		BonusRequested: patch.Coalesce(in.BonusAmount, 0),
		BonusAvailable: profile.Bonus,
	})
	if err != nil {
		if errs.Is(err, pricing.ErrInvalidLine) {
			return nil, false, errs.Mark(err, ErrInvalidBody)
		}
		return nil, false, err
	}

	name := patch.FirstNonBlank(patch.Coalesce(in.CustomerName, ""), in.Session.Name, profile.Name)
	o, err := order.NewOrder(order.NewOrderParams{
		Contact: order.Contact{
			ClientID: clientID,
			Phone:    phone,
			Name:     optional(name),
		},
		Fulfilment:     fulfilment,
		PaymentMethod:  payment,
		PromoCode:      normalizedCode(promoCode),
		Comment:        patch.TrimmedPtr(in.Comment),
		Items:          snapshotItems(items, quote),
		Totals:         totalsFrom(quote),
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      c.clock.Now(),
	})
	if err != nil {
		return nil, false, errs.Mark(err, ErrInvalidBody)
	}

	req := buildOrderRequest(o, quote, items, resolution, posClientID)
	if in.IdempotencyKey != nil {
		req.IdempotencyKey = in.IdempotencyKey.String()
	} else {
		req.IdempotencyKey = uuid.NewString()
	}

	// client disconnects must not abandon an order the POS may already hold
	detached := context.WithoutCancel(ctx)
	result, err := c.gateway.CreateOrder(detached, req)
	if err != nil {
		return nil, false, err
	}

	o = o.WithExternalID(result.ExternalID)
	c.persist(detached, o)
	c.notify(detached, o, quote)

	return &SubmitOrderResult{
		OrderID:    o.ID(),
		ExternalID: result.ExternalID,
	}, true, nil
}

// claim registers the idempotency key. A completed key replays its result;
// a key still in flight is rejected.
func (c *orderCommandsImpl) claim(ctx context.Context, key uuid.UUID, clientID, hash string) (*SubmitOrderResult, error) {
	var existing *shared.IdempotencyRecord
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, clientID, orderEndpoint, hash, c.clock.Now().Add(c.idemTTL))
		if err != nil || inserted {
			return err
		}
		existing, err = tx.Reads().IdempotencyByKey(ctx, key, clientID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// the row expired between insert and read; the client may retry
			return nil, errs.Mark(err, errs.ErrIdempotencyInProgress)
		}
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if existing == nil {
		return nil, nil
	}

	if existing.RequestHash != hash {
		return nil, errs.ErrIdempotencyKeyReused
	}
	if existing.Completed() {
		return &SubmitOrderResult{
			OrderID:    *existing.ResultOrderID,
			IsReplayed: true,
		}, nil
	}
	return nil, errs.ErrIdempotencyInProgress
}

func (c *orderCommandsImpl) release(ctx context.Context, key uuid.UUID, clientID string) {
	err := c.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, clientID)
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to release idempotency key",
			slog.String("idempotency_key", key.String()),
			slog.String("error", err.Error()))
	}
}

// persist stores the accepted order. A failure is logged only: the POS
// already holds the order, and an idempotency key stays in processing so a
// retry cannot submit it twice.
func (c *orderCommandsImpl) persist(ctx context.Context, o *order.Order) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, tx.DB(), o); err != nil {
			return err
		}
		if key := o.IdempotencyKey(); key != nil {
			return tx.Idempotency().Complete(ctx, tx.DB(), *key, o.Contact().ClientID, o.ID())
		}
		return nil
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "order accepted by POS but not stored",
			slog.String("order_id", o.ID().String()),
			slog.String("external_id", patch.Coalesce(o.ExternalID(), "")),
			slog.String("error", err.Error()))
	}
}

func (c *orderCommandsImpl) notify(ctx context.Context, o *order.Order, quote pricing.Quote) {
	if c.notifier == nil {
		return
	}
	f := o.Fulfilment()
	lines := make([]notify.Line, 0, len(o.Items()))
	for _, it := range o.Items() {
		lines = append(lines, notify.Line{Name: it.Name, Count: it.Qty})
	}
	summary := notify.OrderSummary{
		Number:        patch.Coalesce(o.ExternalID(), o.ID().String()),
		Delivery:      f.Type == order.DeliveryTypeDelivery,
		Phone:         o.Contact().Phone,
		Address:       patch.Coalesce(f.Address, ""),
		SpotID:        patch.Coalesce(f.SpotID, ""),
		PaymentMethod: o.PaymentMethod().String(),
		Total:         quote.Total,
		BonusUsed:     quote.BonusUsed,
		PromoCode:     patch.Coalesce(o.PromoCode(), ""),
		Lines:         lines,
		Comment:       patch.Coalesce(o.Comment(), ""),
	}
	// delivery failures are logged by the notifier
	_ = c.notifier.OrderPlaced(ctx, summary)
}

type shopSettings struct {
	workStart   string
	workEnd     string
	packageFee  int64
	deliveryFee int64
}

// settings reads bot_settings fresh on every call. Missing or unreadable
// values fall back to the configured defaults.
func (c *orderCommandsImpl) settings(ctx context.Context) shopSettings {
	s := shopSettings{
		workStart: c.shop.DefaultWorkStart,
		workEnd:   c.shop.DefaultWorkEnd,
	}
	values, err := c.uow.CommandReads().Settings(ctx,
		shared.SettingWorkStart, shared.SettingWorkEnd, shared.SettingPackageFee, shared.SettingDeliveryFee)
	if err != nil {
		c.logger.WarnContext(ctx, "settings unavailable, using defaults", slog.String("error", err.Error()))
		return s
	}
	s.workStart = patch.FirstNonBlank(values[shared.SettingWorkStart], s.workStart)
	s.workEnd = patch.FirstNonBlank(values[shared.SettingWorkEnd], s.workEnd)
	s.packageFee = parseFee(values[shared.SettingPackageFee])
	s.deliveryFee = parseFee(values[shared.SettingDeliveryFee])
	return s
}

func (c *orderCommandsImpl) checkOpen(s shopSettings) error {
	w, err := workwindow.Parse(s.workStart, s.workEnd)
	if err != nil {
		c.logger.Warn("invalid working hours setting, using defaults",
			slog.String("work_start", s.workStart),
			slog.String("work_end", s.workEnd))
		s.workStart, s.workEnd = c.shop.DefaultWorkStart, c.shop.DefaultWorkEnd
		if w, err = workwindow.Parse(s.workStart, s.workEnd); err != nil {
			return errs.Wrap(err, "parse default working hours")
		}
	}
	if !w.Contains(c.clock.Now().In(c.loc)) {
		return &ClosedError{Start: s.workStart, End: s.workEnd}
	}
	return nil
}

// profile is best effort: without it the customer has no bonus balance and
// no stored phone or name.
func (c *orderCommandsImpl) profile(ctx context.Context, clientID string) customer.Profile {
	p, err := c.profiles.Client(ctx, clientID)
	if err != nil || p == nil {
		if err != nil && !errs.Is(err, pos.ErrClientNotFound) {
			c.logger.WarnContext(ctx, "client profile unavailable",
				slog.String("client_id", clientID),
				slog.String("error", err.Error()))
		}
		return customer.Profile{ClientID: clientID}
	}
	return *p
}

func (c *orderCommandsImpl) record(outcome string) {
	if c.recorder != nil {
		c.recorder.OrderSubmitted(outcome)
	}
}

func cartLines(items []OrderItemInput) ([]pricing.Line, []OrderItemInput, error) {
	if len(items) == 0 {
		return nil, nil, ErrEmptyCart
	}
	lines := make([]pricing.Line, 0, len(items))
	out := make([]OrderItemInput, 0, len(items))
	for _, it := range items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		if it.ProductID == "" || it.Qty <= 0 || it.Price < 0 {
			return nil, nil, ErrInvalidBody
		}
		lines = append(lines, pricing.Line{ProductID: it.ProductID, UnitPrice: it.Price, Quantity: it.Qty})
		out = append(out, it)
	}
	return lines, out, nil
}

func cartPrices(lines []pricing.Line) map[string]int64 {
	out := make(map[string]int64, len(lines))
	for _, l := range lines {
		out[l.ProductID] = l.UnitPrice
	}
	return out
}

func buildFulfilment(in SubmitOrderInput) (order.Fulfilment, error) {
	kind, err := order.NewDeliveryType(in.DeliveryType)
	if err != nil {
		return order.Fulfilment{}, errs.Mark(err, ErrInvalidBody)
	}
	f := order.Fulfilment{
		Type:    kind,
		Persons: max(patch.Coalesce(in.Persons, 1), 1),
	}
	switch kind {
	case order.DeliveryTypeDelivery:
		f.Address = patch.TrimmedPtr(in.Address)
		if in.Lat != nil && in.Lng != nil {
			// out-of-range coordinates count as missing
			if loc, err := order.NewLocation(*in.Lat, *in.Lng); err == nil {
				f.Location = &loc
			}
		}
	case order.DeliveryTypePickup:
		f.SpotID = patch.TrimmedPtr(in.SpotID)
	}
	return f, f.Validate()
}

func snapshotItems(items []OrderItemInput, quote pricing.Quote) []order.Item {
	out := make([]order.Item, 0, len(items))
	for i, it := range items {
		ql := quote.Lines[i]
		item := order.Item{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Price:           it.Price,
			DiscountedPrice: ql.DiscountedUnitPrice,
			Qty:             it.Qty,
			MenuCategoryID:  it.MenuCategoryID,
			Photo:           it.Photo,
		}
		if ql.Discount != nil {
			item.PromotionID = ql.Discount.PromotionID
		}
		out = append(out, item)
	}
	return out
}

func totalsFrom(q pricing.Quote) order.Totals {
	return order.Totals{
		Subtotal:    q.Subtotal,
		PackageFee:  q.PackageFee,
		DeliveryFee: q.DeliveryFee,
		Discount:    q.Discount(),
		BonusUsed:   q.BonusUsed,
		Total:       q.Total,
	}
}

func buildOrderRequest(o *order.Order, quote pricing.Quote, items []OrderItemInput, resolution *queries.CartResolution, posClientID string) pos.OrderRequest {
	f := o.Fulfilment()
	req := pos.OrderRequest{
		ServiceMode:   f.Type.ServiceMode(),
		SpotID:        customer.DigitsOnly(patch.Coalesce(f.SpotID, "")),
		PaymentMethod: o.PaymentMethod().String(),
		Bonus:         quote.BonusUsed,
		Total:         quote.Total,
		Phone:         o.Contact().Phone,
		ClientID:      posClientID,
		Persons:       f.Persons,
		Comment:       patch.Coalesce(o.Comment(), ""),
		PromoCode:     patch.Coalesce(o.PromoCode(), ""),
		Lines:         make([]pos.OrderLine, 0, len(items)),
	}
	if f.Type == order.DeliveryTypeDelivery {
		req.Address = patch.Coalesce(f.Address, "")
		if f.Location != nil {
			req.Latitude, req.Longitude = f.Location.Lat, f.Location.Lng
		}
	}
	if resolution.Code != nil {
		req.PromoCodeID = resolution.Code.ID
	}

	for i, it := range items {
		ql := quote.Lines[i]
		line := pos.OrderLine{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Count:           it.Qty,
			Price:           it.Price,
			DiscountedPrice: ql.DiscountedUnitPrice,
			MenuCategoryID:  it.MenuCategoryID,
			Photo:           it.Photo,
		}
		if d := ql.Discount; d != nil {
			line.PromotionID = d.PromotionID
			line.DiscountValue = d.DiscountValue
			line.ResultType = int(d.ResultType)
		}
		req.Lines = append(req.Lines, line)
	}
	return req
}

// requestHash fingerprints the request body so a reused key with a
// different body is detected.
func requestHash(in SubmitOrderInput) string {
	data, _ := json.Marshal(in)
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func parseFee(raw string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizedCode(code *string) *string {
	if code == nil {
		return nil
	}
	v := promotion.NormalizeCode(*code)
	return &v
}

// Outcome labels a submission result for metrics and logs.
func Outcome(res *SubmitOrderResult, err error) string {
	var (
		closed   *ClosedError
		exceeded *pricing.BonusExceededError
	)
	switch {
	case err == nil && res != nil && res.IsReplayed:
		return "REPLAYED"
	case err == nil:
		return "OK"
	case errs.As(err, &closed):
		return "CLOSED"
	case errs.As(err, &exceeded):
		return "BONUS_EXCEEDED"
	case errs.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errs.Is(err, ErrEmptyCart):
		return "EMPTY_CART"
	case errs.Is(err, ErrPhoneRequired):
		return "PHONE_REQUIRED"
	case errs.Is(err, ErrClientIDInvalid):
		return "CLIENT_ID_INVALID"
	case errs.Is(err, order.ErrAddressRequired):
		return "ADDRESS_REQUIRED"
	case errs.Is(err, order.ErrLocationRequired):
		return "LOCATION_REQUIRED"
	case errs.Is(err, order.ErrSpotRequired):
		return "SPOT_REQUIRED"
	case errs.Is(err, errs.ErrInvalidPromo):
		return "INVALID_PROMO"
	case errs.Is(err, ErrInvalidBody):
		return "INVALID_BODY"
	case errs.Is(err, errs.ErrIdempotencyInProgress), errs.Is(err, errs.ErrIdempotencyKeyReused):
		return "IDEMPOTENCY_CONFLICT"
	case errs.Is(err, errs.ErrUpstreamUnavailable):
		return "ORDER_API_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
