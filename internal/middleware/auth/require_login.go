package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kmorozova/inventory-api/internal/token"
)

// RequireAuth rejects requests without a verifiable bearer token and puts
// the decoded identity into the echo context for downstream handlers.
// Missing token and bad token are distinguished: 401 vs 403.
func RequireAuth(ts *token.Service) echo.MiddlewareFunc {
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

			setUserContext(c, claims)
			return next(c)
		}
	}
}
