package middleware

import (
	"strconv"
	"time"

	"myFoodMarket/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records request counts and latency per route. The route pattern is
// used instead of the raw path to keep label cardinality bounded.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unknown"
			}
			method := c.Request().Method

			metrics.HTTPRequestLatency.WithLabelValues(method, path).
				Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(method, path,
				strconv.Itoa(c.Response().Status)).Inc()

			return err
		}
	}
}
