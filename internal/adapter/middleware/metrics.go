package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// HTTPObserver is satisfied by the metrics service.
type HTTPObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// UnmatchedRoute is the path label for requests no route matched.
const UnmatchedRoute = "unmatched"

func metricRoute(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return UnmatchedRoute
}

// Metrics records latency and count per route template.
func Metrics(o HTTPObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			if o != nil {
				o.ObserveHTTPRequest(c.Request().Method, metricRoute(c), c.Response().Status, time.Since(start))
			}
			return nil
		}
	}
}
