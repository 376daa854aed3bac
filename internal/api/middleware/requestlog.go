package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the ID RequestLog assigned to the request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestLog returns Echo middleware that logs every request with its status,
// duration and request ID. Probe paths are logged on their first success and
// on every failure so that kubelet polling does not flood the log.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var probesSeen sync.Map

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			reqID := req.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)
			c.SetRequest(req.WithContext(context.WithValue(req.Context(), requestIDKey{}, reqID)))

			err := next(c)

			status := c.Response().Status
			path := req.URL.Path

			if isProbe(path) && status < http.StatusBadRequest {
				if _, seen := probesSeen.LoadOrStore(path, struct{}{}); seen {
					return err
				}
			}

			attrs := []any{
				"method", req.Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}
			if actor, ok := ActorFromContext(c.Request().Context()); ok {
				attrs = append(attrs, "actor", actor.Display())
			}

			switch {
			case status >= http.StatusInternalServerError && !isProbe(path):
				log.Error("request", attrs...)
			case status >= http.StatusBadRequest:
				log.Warn("request", attrs...)
			default:
				log.Info("request", attrs...)
			}

			return err
		}
	}
}

func isProbe(path string) bool {
	return path == "/healthz" || path == "/readyz"
}
