package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"shopSense/business/recommend"
)

const traceHeader = "X-Trace-Id"

// TraceMiddleware assigns every request a trace id, reusing the caller's
// when one is supplied, and propagates it on the request context and the
// response header.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(traceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := recommend.WithTraceID(c.Request().Context(), traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("trace_id", traceID)
			c.Response().Header().Set(traceHeader, traceID)

			return next(c)
		}
	}
}
