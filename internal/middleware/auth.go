package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/powerbill/internal/auth"
)

const (
	// UserIDKey is the echo context key for the authenticated user ID.
	UserIDKey = "user_id"
	// EmailKey is the echo context key for the authenticated user's email.
	EmailKey = "email"
)

// UserID extracts the authenticated user ID from the echo context.
// Returns empty string if not set.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}

// RequireAuth returns a middleware that validates a Bearer token and injects
// the token's user ID and email into the request context.
func RequireAuth(jwtManager *auth.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrMissingToken.Error()})
			}

			parts := strings.Split(header, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrInvalidToken.Error()})
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.ErrInvalidToken.Error()})
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(EmailKey, claims.Email)
			return next(c)
		}
	}
}
