package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landbank-backend/pkg/id"
)

// RequestLogger emits one http_request line per request and makes sure every
// response carries an X-Request-Id.
func RequestLogger(l *zap.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(echo.HeaderXRequestID)
			if reqID == "" {
				reqID = id.NewID32()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, reqID)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", routeOf(c)),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
				zap.String("request_id", reqID),
			}
			if a, ok := ActorFrom(c); ok {
				fields = append(fields, zap.Uint64("actor_id", a.UserID))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			l.Info("http_request", fields...)
			return nil
		}
	}
}

func routeOf(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return c.Request().URL.Path
}
