package auth

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kmorozova/inventory-api/internal/token"
)

// extractToken reads the Authorization header. The Bearer prefix is
// optional: a bare token is accepted too.
func extractToken(c echo.Context) string {
	h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if h == "" {
		return ""
	}
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}

func setUserContext(c echo.Context, claims *token.Claims) {
	c.Set("userID", claims.UserID())
	c.Set("email", claims.Email)
	c.Set("role", claims.Role)
	c.Set("claims", claims)
}
