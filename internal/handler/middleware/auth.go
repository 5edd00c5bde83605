package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"storefront-checkout/internal/domain/customer"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/cookie"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase"

	"github.com/gin-gonic/gin"
)

var errSessionRequired = errs.New("client session required")

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	cookieName     string
}

const ctxSessionKey = "client_session"

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		cookieName:     cfg.CookieName,
	}
}

// RequireClientSession accepts the session cookie or a bearer token and
// stores the caller's session in the context.
func (m *AuthMiddleware) RequireClientSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errSessionRequired,
				httperr.CodeUnauthorized, "Client session required", nil)
			return
		}

		session, err := m.tokenValidator.ValidateToken(token)
		if err != nil || session.ClientID == "" {
			if err == nil {
				err = errSessionRequired
			}
			slog.WarnContext(c.Request.Context(), "Session validation failed", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err,
				httperr.CodeUnauthorized, "Invalid or expired session", nil)
			return
		}

		c.Set(ctxSessionKey, session)
		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c, m.cookieName); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetSession(c *gin.Context) (customer.Session, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return customer.Session{}, false
	}
	session, ok := v.(customer.Session)
	return session, ok
}

// SetSession is used by tests that bypass token validation.
func SetSession(c *gin.Context, session customer.Session) {
	c.Set(ctxSessionKey, session)
}
