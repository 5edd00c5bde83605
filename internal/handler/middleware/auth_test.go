package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/jwt"
	"storefront-checkout/internal/usecase"
	"storefront-checkout/tests/common/authtest"
	"storefront-checkout/tests/common/httptest"
	usecasemock "storefront-checkout/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	cfg    config.JWTConfig
	jwt    *authtest.JWTHelper
	router *gin.Engine
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = config.NewTestConfig().JWT
	s.jwt = authtest.NewJWTHelper(s.cfg)

	validator := usecase.NewTokenValidator(jwt.NewService(s.cfg.Secret, time.Hour))
	s.router = newSessionRouter(middleware.NewAuthMiddleware(validator, s.cfg))
}

func newSessionRouter(m *middleware.AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/api/account", m.RequireClientSession(), func(c *gin.Context) {
		session, ok := middleware.GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"clientId": session.ClientID, "phone": session.Phone, "name": session.Name})
	})
	return r
}

func (s *AuthMiddlewareTestSuite) TestAcceptsSessionCookie() {
	token := s.jwt.GenerateToken(s.T(), "42", "+998901234567", "Aziza")

	rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/api/account", nil,
		[]*http.Cookie{authtest.SessionCookie(s.cfg, token)}, "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"clientId":"42","phone":"+998901234567","name":"Aziza"}`, rec.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestAcceptsBearerToken() {
	token := s.jwt.GenerateToken(s.T(), "77", "", "")

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/account", nil, token)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"clientId":"77","phone":"","name":""}`, rec.Body.String())
}

func (s *AuthMiddlewareTestSuite) TestRejects() {
	cases := []struct {
		name    string
		cookies []*http.Cookie
		bearer  string
	}{
		{name: "no credentials"},
		{name: "garbage bearer", bearer: "not-a-jwt"},
		{name: "expired cookie", cookies: []*http.Cookie{authtest.SessionCookie(s.cfg, s.jwt.CreateExpiredToken(s.T(), "42"))}},
		{name: "foreign signature", bearer: authtest.NewJWTHelper(config.JWTConfig{Secret: "other", Duration: "1h"}).GenerateToken(s.T(), "42", "", "")},
		{name: "token without client id", bearer: s.jwt.GenerateToken(s.T(), "", "+998901234567", "")},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/api/account", nil, tc.cookies, tc.bearer)
			httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
		})
	}
}

func TestCookieTakesPrecedenceOverBearer(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := usecasemock.NewMockTokenValidator(ctrl)
	cfg := config.NewTestConfig().JWT

	validator.EXPECT().ValidateToken("cookie-token").
		Return(customer.Session{ClientID: "1"}, nil)

	router := newSessionRouter(middleware.NewAuthMiddleware(validator, cfg))
	rec := httptest.PerformRequestWithCookies(t, router, http.MethodGet, "/api/account", nil,
		[]*http.Cookie{authtest.SessionCookie(cfg, "cookie-token")}, "bearer-token")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clientId":"1"`)
}

func TestValidatorErrorIsUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := usecasemock.NewMockTokenValidator(ctrl)

	validator.EXPECT().ValidateToken("t").Return(customer.Session{}, errs.New("signature invalid"))

	router := newSessionRouter(middleware.NewAuthMiddleware(validator, config.NewTestConfig().JWT))
	rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/account", nil, "t")

	httptest.AssertErrorCode(t, rec, http.StatusUnauthorized, "UNAUTHORIZED")
}
