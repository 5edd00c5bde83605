package api_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-checkout/internal/domain/promotion"
	"storefront-checkout/internal/handler/api"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/tests/common/httptest"
	queriesmock "storefront-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockCtrl       *gomock.Controller
	mockPromotions *queriesmock.MockPromotionQueries
	mockSpots      *queriesmock.MockSpotQueries
	mockAccounts   *queriesmock.MockAccountQueries
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPromotions = queriesmock.NewMockPromotionQueries(s.mockCtrl)
	s.mockSpots = queriesmock.NewMockSpotQueries(s.mockCtrl)
	s.mockAccounts = queriesmock.NewMockAccountQueries(s.mockCtrl)
	h := api.NewCatalogHandler(s.mockPromotions, s.mockSpots, s.mockAccounts)

	s.router.GET("/api/promotions", h.Promotions)
	s.router.GET("/api/spots", h.Spots)
	s.router.GET("/api/account", fakeSession, h.Account)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestPromotions() {
	updatedAt := time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC)
	promoID := int64(12)

	s.Run("success: keeps POS field names and major-unit values", func() {
		s.mockPromotions.EXPECT().Discounts(gomock.Any()).Return(&queries.DiscountsView{
			Discounts: promotion.Table{
				"101": {DiscountValue: decimal.NewFromInt(20), ResultType: promotion.ResultPercent, PromotionID: &promoID},
				"102": {DiscountValue: decimal.RequireFromString("12.5"), ResultType: promotion.ResultFixed, PromotionID: &promoID},
			},
			UpdatedAt: updatedAt,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/promotions", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{
			"discounts": {
				"101": {"discount_value": 20, "result_type": 3, "promotion_id": 12},
				"102": {"discount_value": 12.5, "result_type": 1, "promotion_id": 12}
			},
			"updatedAt": "2025-03-14T07:00:00Z"
		}`, rec.Body.String())
	})

	s.Run("error: 502 when POS promotions are unavailable", func() {
		s.mockPromotions.EXPECT().Discounts(gomock.Any()).Return(nil, errs.New("poster down"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/promotions", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadGateway, "ORDER_API_ERROR")
	})
}

func (s *CatalogHandlerTestSuite) TestSpots() {
	lat, lng := 41.31, 69.28

	s.Run("success: lists spots", func() {
		s.mockSpots.EXPECT().List(gomock.Any()).Return([]queries.SpotView{
			{ID: "1", Name: "Chilonzor", Address: "Bunyodkor 7", Lat: &lat, Lng: &lng},
			{ID: "2", Name: "Yunusobod", Address: "Amir Temur 100"},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/spots", nil, "")

		var body []resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		want := []resdto.SpotResponse{
			{ID: "1", Name: "Chilonzor", Address: "Bunyodkor 7", Lat: &lat, Lng: &lng},
			{ID: "2", Name: "Yunusobod", Address: "Amir Temur 100"},
		}
		if diff := cmp.Diff(want, body); diff != "" {
			s.T().Errorf("spots mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("success: empty list is an empty array", func() {
		s.mockSpots.EXPECT().List(gomock.Any()).Return(nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/spots", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 502 when POS spots are unavailable", func() {
		s.mockSpots.EXPECT().List(gomock.Any()).Return(nil, errs.New("timeout"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/spots", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadGateway, "ORDER_API_ERROR")
	})
}

func (s *CatalogHandlerTestSuite) TestAccount() {
	s.Run("success: returns the caller's profile", func() {
		s.mockAccounts.EXPECT().GetAccount(gomock.Any(), testSession).Return(&queries.AccountView{
			ClientID: "42", Name: "Aziza", Phone: "+998901234567", Bonus: 150000,
		}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/account", nil, signedIn(nil))

		var body resdto.AccountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.AccountResponse{ClientID: "42", Name: "Aziza", Phone: "+998901234567", Bonus: 150000}, body)
	})

	s.Run("error: 401 without a session", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/account", nil, nil)
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	s.Run("error: 404 when POS has no such client", func() {
		s.mockAccounts.EXPECT().GetAccount(gomock.Any(), testSession).Return(nil, queries.ErrAccountNotFound)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/account", nil, signedIn(nil))
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("error: 502 when POS fails", func() {
		s.mockAccounts.EXPECT().GetAccount(gomock.Any(), testSession).Return(nil, errs.New("poster down"))

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/account", nil, signedIn(nil))
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadGateway, "ORDER_API_ERROR")
	})
}
