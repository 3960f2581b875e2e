package logging

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	applog "github.com/sharmaketan/shopkart/internal/logging"
)

// RequestLogger injects a request-scoped logger into the request context
// and emits one completion line per request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			l := base.With(
				"request_id", reqID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
			)

			req := c.Request()
			c.SetRequest(req.WithContext(applog.IntoContext(req.Context(), l)))

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			l.Info("request_complete",
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}

// RequestID re-exports echo's middleware so callers wire one package.
func RequestID() echo.MiddlewareFunc {
	return middleware.RequestID()
}
