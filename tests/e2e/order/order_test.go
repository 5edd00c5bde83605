//go:build e2e

package order_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/tests/common/authtest"
	"storefront-checkout/tests/common/builder"
	"storefront-checkout/tests/common/dbtest"
	"storefront-checkout/tests/common/httptest"
	"storefront-checkout/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const ordersURL = "/api/orders"

type OrderSuite struct {
	e2e.SharedSuite
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OrderSuite))
}

func (s *OrderSuite) session() *http.Cookie {
	token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), "42", "+998901234567", "Aziza")
	return authtest.SessionCookie(s.Config.JWT, token)
}

func (s *OrderSuite) submit(body any, key *uuid.UUID) *nethttptest.ResponseRecorder {
	headers := map[string]string{}
	if key != nil {
		headers["Idempotency-Key"] = key.String()
	}
	return httptest.PerformRequestFull(s.T(), s.Router, http.MethodPost, ordersURL, body, headers, []*http.Cookie{s.session()})
}

func (s *OrderSuite) TestSubmitOrder() {
	body := builder.NewOrderBuilder().BuildCreateRequestDTO()

	s.Run("Normal case: delivery order reaches the POS and is stored", func() {
		t := s.T()
		key := uuid.New()

		rec := s.submit(body, &key)

		var res resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &res)
		require.True(t, res.OK)
		require.NotEqual(t, uuid.Nil, res.OrderID)
		require.NotNil(t, res.ExternalOrderID)
		s.Equal("5521", *res.ExternalOrderID)

		s.Equal(1, dbtest.CountOrders(t, s.DB, "42"))
		s.Equal("completed", dbtest.IdempotencyStatus(t, s.DB, key, "42"))

		orders := s.POS.Orders()
		require.Len(t, orders, 1)
		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(orders[0]), &payload))
		// 2 x 2900 + 5500 + 1000 delivery fee, in major units
		s.EqualValues(123, payload["total"])
		s.EqualValues(3, payload["service_mode"])
		s.EqualValues(42, payload["client_id"])

		status := httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet,
			fmt.Sprintf("%s/%s", ordersURL, res.OrderID), nil, []*http.Cookie{s.session()}, "")
		var view resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(t, status, http.StatusOK, &view)
		s.Equal(res.OrderID, view.ID)
		s.Equal("new", view.Status)
		s.Equal(int64(12300), view.Total)
	})

	s.Run("Normal case: retry with the same key replays without a second POS call", func() {
		t := s.T()
		key := uuid.New()

		first := s.submit(body, &key)
		require.Equal(t, http.StatusOK, first.Code)
		second := s.submit(body, &key)

		var a, b resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(t, first, http.StatusOK, &a)
		httptest.AssertSuccessResponse(t, second, http.StatusOK, &b)
		s.Equal(a.OrderID, b.OrderID)
		s.True(b.Replayed)
		httptest.AssertHeaders(t, second, map[string]string{"Idempotent-Replayed": "true"})
		s.Len(s.POS.Orders(), 1)
		s.Equal(1, dbtest.CountOrders(t, s.DB, "42"))
	})

	s.Run("Error case: same key with a different cart is rejected", func() {
		t := s.T()
		key := uuid.New()

		require.Equal(t, http.StatusOK, s.submit(body, &key).Code)
		other := builder.NewOrderBuilder().WithComment("no wasabi").BuildCreateRequestDTO()
		rec := s.submit(other, &key)

		httptest.AssertErrorCode(t, rec, http.StatusUnprocessableEntity, "IDEMPOTENCY_CONFLICT")
		s.Len(s.POS.Orders(), 1)
	})

	s.Run("Error case: POS failure is surfaced and the key is released", func() {
		t := s.T()
		key := uuid.New()
		s.POS.FailOrders(http.StatusServiceUnavailable, `{"message":"maintenance"}`)

		rec := s.submit(body, &key)

		res := httptest.AssertErrorCode(t, rec, http.StatusBadGateway, "ORDER_API_ERROR")
		s.JSONEq(`{"status":503,"body":"{\"message\":\"maintenance\"}"}`, string(res.Detail))
		s.Equal(0, dbtest.CountOrders(t, s.DB, "42"))
		s.Empty(dbtest.IdempotencyStatus(t, s.DB, key, "42"))

		s.POS.Reset()
		retry := s.submit(body, &key)
		s.Equal(http.StatusOK, retry.Code)
	})

	s.Run("Error case: outside working hours", func() {
		t := s.T()
		loc, err := time.LoadLocation("Asia/Tashkent")
		require.NoError(t, err)
		now := time.Now().In(loc)
		start := now.Add(time.Hour).Format("15:04")
		end := now.Add(2 * time.Hour).Format("15:04")
		dbtest.SetSetting(t, s.DB, "work_start", start)
		dbtest.SetSetting(t, s.DB, "work_end", end)

		rec := s.submit(body, nil)

		res := httptest.AssertErrorCode(t, rec, http.StatusBadRequest, "CLOSED")
		s.JSONEq(fmt.Sprintf(`{"workStart":%q,"workEnd":%q}`, start, end), string(res.Detail))
		s.Empty(s.POS.Orders())
	})

	s.Run("Error case: unknown promo code", func() {
		t := s.T()
		withPromo := builder.NewOrderBuilder().WithPromoCode("NOPE").BuildCreateRequestDTO()

		rec := s.submit(withPromo, nil)

		httptest.AssertErrorCode(t, rec, http.StatusBadRequest, "INVALID_PROMO")
		s.Empty(s.POS.Orders())
	})

	s.Run("Error case: bonus above balance", func() {
		t := s.T()
		greedy := builder.NewOrderBuilder().WithBonus(600000).BuildCreateRequestDTO()

		rec := s.submit(greedy, nil)

		res := httptest.AssertErrorCode(t, rec, http.StatusBadRequest, "BONUS_EXCEEDED")
		s.JSONEq(`{"bonusAvailable":500000}`, string(res.Detail))
	})

	s.Run("Error case: no session", func() {
		t := s.T()

		rec := httptest.PerformRequestFull(t, s.Router, http.MethodPost, ordersURL, body, nil, nil)

		httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
		s.Empty(s.POS.Orders())
	})
}

func (s *OrderSuite) TestCatalog() {
	s.Run("Normal case: promotions are public", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/promotions", nil, "")

		var res resdto.PromotionsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.NotNil(res.Discounts)
	})

	s.Run("Normal case: spots are listed", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/spots", nil, "")

		var res []resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.Equal("Chilonzor", res[0].Name)
	})

	s.Run("Normal case: account shows the POS bonus", func() {
		rec := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodGet, "/api/account", nil,
			[]*http.Cookie{s.session()}, "")

		var res resdto.AccountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("42", res.ClientID)
		s.Equal(int64(500000), res.Bonus)
	})
}
