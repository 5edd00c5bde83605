package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/domain/order"
	"storefront-checkout/internal/domain/pricing"
	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/infra/db"
	"storefront-checkout/internal/infra/notify"
	"storefront-checkout/internal/infra/pos"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/shared"
	"storefront-checkout/tests/common/builder"
	commandsmock "storefront-checkout/tests/mock/commands"
	sharedmock "storefront-checkout/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var tashkent = time.FixedZone("UZT", 5*60*60)

type OrderCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	reads     *sharedmock.MockCommandReads
	orders    *sharedmock.MockOrderRepository
	idem      *sharedmock.MockIdempotencyRepository
	discounts *commandsmock.MockDiscountResolver
	profiles  *commandsmock.MockProfileSource
	gateway   *commandsmock.MockOrderGateway
	notifier  *commandsmock.MockNotifier
	recorder  *commandsmock.MockRecorder
	clock     *clock.MockClock
	cmd       commands.OrderCommands
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsTestSuite))
}

func (s *OrderCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.orders = sharedmock.NewMockOrderRepository(s.ctrl)
	s.idem = sharedmock.NewMockIdempotencyRepository(s.ctrl)
	s.discounts = commandsmock.NewMockDiscountResolver(s.ctrl)
	s.profiles = commandsmock.NewMockProfileSource(s.ctrl)
	s.gateway = commandsmock.NewMockOrderGateway(s.ctrl)
	s.notifier = commandsmock.NewMockNotifier(s.ctrl)
	s.recorder = commandsmock.NewMockRecorder(s.ctrl)
	// 12:00 business time
	s.clock = clock.NewMockClock(time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC))

	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()
	s.tx.EXPECT().Orders().Return(s.orders).AnyTimes()
	s.tx.EXPECT().Idempotency().Return(s.idem).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()

	s.cmd = commands.NewOrderCommands(commands.OrderCommandsDeps{
		UoW:        s.uow,
		Discounts:  s.discounts,
		Profiles:   s.profiles,
		Gateway:    s.gateway,
		Notifier:   s.notifier,
		Recorder:   s.recorder,
		Calculator: pricing.NewDefaultPriceCalculator(),
		Clock:      s.clock,
		Location:   tashkent,
		Shop:       config.ShopConfig{DefaultWorkStart: "10:00", DefaultWorkEnd: "23:00"},
		Idem:       config.IdempotencyConfig{TTL: time.Hour},
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *OrderCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrderCommandsTestSuite) expectSettings(values map[string]string) {
	s.reads.EXPECT().Settings(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(values, nil)
}

func (s *OrderCommandsTestSuite) expectProfile(p *customer.Profile) {
	s.profiles.EXPECT().Client(gomock.Any(), gomock.Any()).Return(p, nil)
}

func (s *OrderCommandsTestSuite) expectNoDiscounts() {
	s.discounts.EXPECT().ResolveCart(gomock.Any(), "", gomock.Any()).
		Return(&queries.CartResolution{Discounts: promotion.Table{}}, nil)
}

func (s *OrderCommandsTestSuite) expectOutcome(outcome string) {
	s.recorder.EXPECT().OrderSubmitted(outcome)
}

func (s *OrderCommandsTestSuite) TestSubmitDelivery() {
	externalID := "5521"
	s.expectSettings(map[string]string{"delivery_fee": "1000", "package_fee": "0"})
	s.expectProfile(&customer.Profile{ClientID: "42", Phone: "+998901234567", Bonus: 0})
	s.expectNoDiscounts()

	var sent pos.OrderRequest
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r pos.OrderRequest) (pos.OrderResult, error) {
			sent = r
			return pos.OrderResult{ExternalID: &externalID}, nil
		})

	var stored *order.Order
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.DBTX, o *order.Order) error {
			stored = o
			return nil
		})

	var summary notify.OrderSummary
	s.notifier.EXPECT().OrderPlaced(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sm notify.OrderSummary) error {
			summary = sm
			return nil
		})
	s.expectOutcome("OK")

	res, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().Build())
	s.Require().NoError(err)
	s.Equal(externalID, *res.ExternalID)
	s.False(res.IsReplayed)

	s.Equal(3, sent.ServiceMode)
	s.Equal(int64(12300), sent.Total)
	s.Equal("42", sent.ClientID)
	s.Equal(1, sent.Persons)
	s.NotEmpty(sent.IdempotencyKey)
	s.Len(sent.Lines, 2)

	s.Require().NotNil(stored)
	s.Equal(res.OrderID, stored.ID())
	s.Equal(externalID, *stored.ExternalID())
	want := order.Totals{Subtotal: 11300, DeliveryFee: 1000, Total: 12300}
	if diff := cmp.Diff(want, stored.Totals()); diff != "" {
		s.Failf("totals mismatch", "(-want +got):\n%s", diff)
	}

	s.Equal(externalID, summary.Number)
	s.True(summary.Delivery)
	s.Equal(int64(12300), summary.Total)
}

func (s *OrderCommandsTestSuite) TestSubmitAppliesDiscountsAndBonus() {
	promoID := int64(9)
	s.expectSettings(map[string]string{})
	s.expectProfile(&customer.Profile{ClientID: "42", Bonus: 5000})
	s.discounts.EXPECT().ResolveCart(gomock.Any(), "SUSHI20", map[string]int64{"101": 2900, "102": 5500}).
		Return(&queries.CartResolution{
			Discounts: promotion.Table{
				"102": {DiscountValue: decimal.NewFromInt(20), ResultType: promotion.ResultPercent, PromotionID: &promoID},
			},
			Code: &promotion.Promotion{ID: &promoID, Name: "Spring$SUSHI20"},
		}, nil)

	var sent pos.OrderRequest
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r pos.OrderRequest) (pos.OrderResult, error) {
			sent = r
			return pos.OrderResult{}, nil
		})
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().OrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOutcome("OK")

	in := builder.NewOrderBuilder().Pickup("3").WithPromoCode(" sushi20 ").WithBonus(3000).Build()
	res, err := s.cmd.Submit(context.Background(), in)
	s.Require().NoError(err)
	s.Nil(res.ExternalID)

	// 5800 + 4400 = 10200, minus 3000 bonus
	s.Equal(int64(7200), sent.Total)
	s.Equal(int64(3000), sent.Bonus)
	s.Equal(2, sent.ServiceMode)
	s.Equal("3", sent.SpotID)
	s.Equal("SUSHI20", sent.PromoCode)
	s.Equal(&promoID, sent.PromoCodeID)
	s.Equal(int64(4400), sent.Lines[1].DiscountedPrice)
	s.Equal(&promoID, sent.Lines[1].PromotionID)
	s.Nil(sent.Lines[0].PromotionID)
}

func (s *OrderCommandsTestSuite) TestSubmitTakesPhoneFromProfile() {
	s.expectSettings(nil)
	// one read serves both the phone and the bonus balance
	s.profiles.EXPECT().Client(gomock.Any(), "42").
		Return(&customer.Profile{ClientID: "42", Phone: "901234567", Name: "Aziza", Bonus: 1000}, nil).
		Times(1)
	s.expectNoDiscounts()

	var sent pos.OrderRequest
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r pos.OrderRequest) (pos.OrderResult, error) {
			sent = r
			return pos.OrderResult{}, nil
		})
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().OrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOutcome("OK")

	in := builder.NewOrderBuilder().WithSession(customer.Session{ClientID: "42"}).WithBonus(1000).Build()
	_, err := s.cmd.Submit(context.Background(), in)
	s.Require().NoError(err)
	s.Equal("+998901234567", sent.Phone)
	s.Equal(int64(1000), sent.Bonus)
}

func (s *OrderCommandsTestSuite) TestSubmitRejections() {
	cases := []struct {
		name    string
		in      commands.SubmitOrderInput
		setup   func()
		outcome string
		check   func(err error)
	}{
		{
			name:    "missing session",
			in:      builder.NewOrderBuilder().WithSession(customer.Session{}).Build(),
			outcome: "UNAUTHORIZED",
			check:   func(err error) { s.ErrorIs(err, commands.ErrUnauthorized) },
		},
		{
			name: "closed outside a wrapping window",
			in:   builder.NewOrderBuilder().Build(),
			setup: func() {
				s.expectSettings(map[string]string{"work_start": "22:00", "work_end": "02:00"})
			},
			outcome: "CLOSED",
			check: func(err error) {
				var closed *commands.ClosedError
				s.Require().ErrorAs(err, &closed)
				s.Equal("22:00", closed.Start)
				s.Equal("02:00", closed.End)
			},
		},
		{
			name: "empty cart",
			in:   builder.NewOrderBuilder().WithItems().Build(),
			setup: func() {
				s.expectSettings(nil)
			},
			outcome: "EMPTY_CART",
			check:   func(err error) { s.ErrorIs(err, commands.ErrEmptyCart) },
		},
		{
			name: "no phone anywhere",
			in:   builder.NewOrderBuilder().WithSession(customer.Session{ClientID: "42"}).Build(),
			setup: func() {
				s.expectSettings(nil)
				s.expectProfile(&customer.Profile{ClientID: "42"})
			},
			outcome: "PHONE_REQUIRED",
			check:   func(err error) { s.ErrorIs(err, commands.ErrPhoneRequired) },
		},
		{
			name: "client id without digits",
			in:   builder.NewOrderBuilder().WithSession(customer.Session{ClientID: "guest", Phone: "901234567"}).Build(),
			setup: func() {
				s.expectSettings(nil)
				s.profiles.EXPECT().Client(gomock.Any(), gomock.Any()).Times(0)
			},
			outcome: "CLIENT_ID_INVALID",
			check:   func(err error) { s.ErrorIs(err, commands.ErrClientIDInvalid) },
		},
		{
			name: "delivery without address",
			in:   builder.NewOrderBuilder().WithoutAddress().Build(),
			setup: func() {
				s.expectSettings(nil)
				s.profiles.EXPECT().Client(gomock.Any(), gomock.Any()).Times(0)
			},
			outcome: "ADDRESS_REQUIRED",
			check:   func(err error) { s.ErrorIs(err, order.ErrAddressRequired) },
		},
		{
			name: "delivery without location",
			in:   builder.NewOrderBuilder().WithoutLocation().Build(),
			setup: func() {
				s.expectSettings(nil)
				s.profiles.EXPECT().Client(gomock.Any(), gomock.Any()).Times(0)
			},
			outcome: "LOCATION_REQUIRED",
			check:   func(err error) { s.ErrorIs(err, order.ErrLocationRequired) },
		},
		{
			name: "pickup without spot",
			in:   builder.NewOrderBuilder().Pickup("").Build(),
			setup: func() {
				s.expectSettings(nil)
				s.profiles.EXPECT().Client(gomock.Any(), gomock.Any()).Times(0)
			},
			outcome: "SPOT_REQUIRED",
			check:   func(err error) { s.ErrorIs(err, order.ErrSpotRequired) },
		},
		{
			name: "unknown promo code",
			in:   builder.NewOrderBuilder().WithPromoCode("NOPE").Build(),
			setup: func() {
				s.expectSettings(nil)
				s.discounts.EXPECT().ResolveCart(gomock.Any(), "NOPE", gomock.Any()).Return(nil, errs.ErrInvalidPromo)
			},
			outcome: "INVALID_PROMO",
			check:   func(err error) { s.ErrorIs(err, errs.ErrInvalidPromo) },
		},
		{
			name: "bonus above balance",
			in:   builder.NewOrderBuilder().WithBonus(2000).Build(),
			setup: func() {
				s.expectSettings(nil)
				s.expectProfile(&customer.Profile{Bonus: 1500})
				s.expectNoDiscounts()
			},
			outcome: "BONUS_EXCEEDED",
			check: func(err error) {
				var exceeded *pricing.BonusExceededError
				s.Require().ErrorAs(err, &exceeded)
				s.Equal(int64(1500), exceeded.Available)
			},
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			if tc.setup != nil {
				tc.setup()
			}
			// the POS must never be called for a rejected order
			s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
			s.expectOutcome(tc.outcome)

			res, err := s.cmd.Submit(context.Background(), tc.in)
			s.Nil(res)
			s.Require().Error(err)
			tc.check(err)
		})
	}
}

func (s *OrderCommandsTestSuite) TestSubmitUpstreamFailureReleasesKey() {
	key := uuid.New()
	s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", "POST /api/orders", gomock.Any(), gomock.Any()).
		Return(true, nil)
	s.expectSettings(nil)
	s.expectProfile(&customer.Profile{})
	s.expectNoDiscounts()
	upstream := errs.Mark(&pos.StatusError{Method: "order.create", Status: 500, Body: "boom"}, errs.ErrUpstreamUnavailable)
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r pos.OrderRequest) (pos.OrderResult, error) {
			s.Equal(key.String(), r.IdempotencyKey)
			return pos.OrderResult{}, upstream
		})
	s.idem.EXPECT().Release(gomock.Any(), gomock.Any(), key, "42").Return(nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.expectOutcome("ORDER_API_ERROR")

	_, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().WithIdempotencyKey(key).Build())
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrUpstreamUnavailable))

	var statusErr *pos.StatusError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal("boom", statusErr.Body)
}

func (s *OrderCommandsTestSuite) TestSubmitValidationFailureReleasesKey() {
	key := uuid.New()
	s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil)
	s.expectSettings(nil)
	s.idem.EXPECT().Release(gomock.Any(), gomock.Any(), key, "42").Return(nil)
	s.expectOutcome("SPOT_REQUIRED")

	_, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().Pickup("").WithIdempotencyKey(key).Build())
	s.ErrorIs(err, order.ErrSpotRequired)
}

func (s *OrderCommandsTestSuite) TestSubmitCompletesKey() {
	key := uuid.New()
	s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", gomock.Any(), gomock.Any(), s.clock.Now().Add(time.Hour)).
		Return(true, nil)
	s.expectSettings(nil)
	s.expectProfile(&customer.Profile{})
	s.expectNoDiscounts()
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(pos.OrderResult{}, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	var completed uuid.UUID
	s.idem.EXPECT().Complete(gomock.Any(), gomock.Any(), key, "42", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.DBTX, _ uuid.UUID, _ string, orderID uuid.UUID) error {
			completed = orderID
			return nil
		})
	s.notifier.EXPECT().OrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOutcome("OK")

	res, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().WithIdempotencyKey(key).Build())
	s.Require().NoError(err)
	s.Equal(res.OrderID, completed)
}

func (s *OrderCommandsTestSuite) TestSubmitReplaysCompletedKey() {
	key := uuid.New()
	orderID := uuid.New()
	in := builder.NewOrderBuilder().WithIdempotencyKey(key).Build()

	var hash string
	s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ db.DBTX, _ uuid.UUID, _, _, h string, _ time.Time) (bool, error) {
			hash = h
			return false, nil
		})
	s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, "42").
		DoAndReturn(func(context.Context, uuid.UUID, string) (*shared.IdempotencyRecord, error) {
			return &shared.IdempotencyRecord{
				Key:           key,
				ClientID:      "42",
				Status:        shared.IdempotencyStatusCompleted,
				RequestHash:   hash,
				ResultOrderID: &orderID,
			}, nil
		})
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Times(0)
	s.expectOutcome("REPLAYED")

	res, err := s.cmd.Submit(context.Background(), in)
	s.Require().NoError(err)
	s.True(res.IsReplayed)
	s.Equal(orderID, res.OrderID)
}

func (s *OrderCommandsTestSuite) TestSubmitIdempotencyConflicts() {
	key := uuid.New()

	s.Run("in flight", func() {
		s.SetupTest()
		var hash string
		s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.DBTX, _ uuid.UUID, _, _, h string, _ time.Time) (bool, error) {
				hash = h
				return false, nil
			})
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, "42").
			DoAndReturn(func(context.Context, uuid.UUID, string) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{Status: shared.IdempotencyStatusProcessing, RequestHash: hash}, nil
			})
		s.expectOutcome("IDEMPOTENCY_CONFLICT")

		_, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().WithIdempotencyKey(key).Build())
		s.ErrorIs(err, errs.ErrIdempotencyInProgress)
	})

	s.Run("reused with another body", func() {
		s.SetupTest()
		s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, "42").
			Return(&shared.IdempotencyRecord{Status: shared.IdempotencyStatusCompleted, RequestHash: "other"}, nil)
		s.expectOutcome("IDEMPOTENCY_CONFLICT")

		_, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().WithIdempotencyKey(key).Build())
		s.ErrorIs(err, errs.ErrIdempotencyKeyReused)
	})

	s.Run("storage failure", func() {
		s.SetupTest()
		s.idem.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, "42", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, infra.WrapRepoErr("failed to try insert idempotency key", errs.New("conn reset")))
		s.expectOutcome("INTERNAL_ERROR")

		_, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().WithIdempotencyKey(key).Build())
		s.True(errs.Is(err, errs.ErrIdempotencyCheckFailed))
	})
}

func (s *OrderCommandsTestSuite) TestSubmitSurvivesLocalFailures() {
	s.expectSettings(nil)
	s.expectProfile(&customer.Profile{})
	s.expectNoDiscounts()
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(pos.OrderResult{}, nil)
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(infra.WrapRepoErr("failed to create order", errs.New("disk full")))
	s.notifier.EXPECT().OrderPlaced(gomock.Any(), gomock.Any()).Return(errs.New("telegram down"))
	s.expectOutcome("OK")

	res, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().Build())
	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, res.OrderID)
}

func (s *OrderCommandsTestSuite) TestSubmitFallsBackWhenSettingsUnavailable() {
	// defaults are 10:00-23:00 and the clock reads 12:00
	s.reads.EXPECT().Settings(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errs.New("db down"))
	s.expectProfile(&customer.Profile{})
	s.expectNoDiscounts()

	var sent pos.OrderRequest
	s.gateway.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r pos.OrderRequest) (pos.OrderResult, error) {
			sent = r
			return pos.OrderResult{}, nil
		})
	s.orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.notifier.EXPECT().OrderPlaced(gomock.Any(), gomock.Any()).Return(nil)
	s.expectOutcome("OK")

	_, err := s.cmd.Submit(context.Background(), builder.NewOrderBuilder().Build())
	s.Require().NoError(err)
	s.Equal(int64(11300), sent.Total)
}
