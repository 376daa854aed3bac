// Package middleware provides the Echo middleware in front of the healthwatch
// API: metrics, panic recovery, request logging and admin identity.
package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/healthwatch/internal/metrics"
)

// probePaths are scraped or polled constantly and only drive the up gauges.
var probePaths = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
	"/metrics": nil,
}

// Metrics returns Echo middleware that records request duration and count
// per route template. Probe paths update their up gauge instead.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "" {
				route = c.Request().URL.Path
			}

			if gauge, probe := probePaths[route]; probe {
				err := next(c)
				if gauge != nil {
					gauge.Set(upValue(c.Response().Status))
				}
				return err
			}

			start := time.Now()
			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			metrics.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()

			return err
		}
	}
}

func upValue(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}
