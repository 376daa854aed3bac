package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
)

const stackSize = 4096

// Recovery returns Echo middleware that turns a handler panic into a 500
// response and logs the panic value with a truncated stack.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				buf := make([]byte, stackSize)
				buf = buf[:runtime.Stack(buf, false)]

				reqID := RequestIDFromContext(c.Request().Context())
				log.Error("panic recovered",
					"error", fmt.Sprint(r),
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
					"request_id", reqID,
					"stack", string(buf),
				)

				body := map[string]string{"error": "internal server error"}
				if reqID != "" {
					body["request_id"] = reqID
				}
				err = c.JSON(http.StatusInternalServerError, body)
			}()
			return next(c)
		}
	}
}
