package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kmorozova/inventory-api/internal/models"
	"github.com/kmorozova/inventory-api/internal/token"
)

// RequireAdmin is RequireAuth plus a role check: only tokens carrying the
// admin role pass.
func RequireAdmin(ts *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided. Please log in.")
			}

			claims, err := ts.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token.")
			}

			if claims.Role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Unauthorized: Admins only")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}
