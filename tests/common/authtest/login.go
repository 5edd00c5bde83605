package authtest

import (
	"net/http"

	"storefront-checkout/internal/pkg/cookie"
	"storefront-checkout/internal/pkg/config"
)

// SessionCookie carries a client session the way the storefront sets it.
func SessionCookie(cfg config.JWTConfig, token string) *http.Cookie {
	name := cfg.CookieName
	if name == "" {
		name = cookie.DefaultSessionCookieName
	}
	return &http.Cookie{Name: name, Value: token, Path: "/", HttpOnly: true}
}
