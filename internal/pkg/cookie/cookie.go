package cookie

import (
	"github.com/gin-gonic/gin"
)

const DefaultSessionCookieName = "client_session"

func GetSessionToken(c *gin.Context, name string) string {
	if name == "" {
		name = DefaultSessionCookieName
	}
	token, _ := c.Cookie(name)
	return token
}
