package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger returns a middleware that logs every request with its
// method, path, status, user (when authenticated), and duration.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start).Milliseconds()
			status := c.Response().Status
			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"user_id", UserID(c),
				"duration_ms", duration,
			}

			switch {
			case err != nil:
				slog.Error("Request failed", append(attrs, "error", err)...)
			case status >= 400:
				slog.Warn("Request rejected", attrs...)
			default:
				slog.Info("Request completed", attrs...)
			}
			return nil
		}
	}
}
