package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

func TestRequestLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		status        int
		providedReqID string
		wantLogFields []string
	}{
		{
			name:   "list events with generated ID",
			method: http.MethodGet,
			path:   "/api/v1/events",
			status: http.StatusOK,
			wantLogFields: []string{
				"level=INFO",
				"method=GET",
				"path=/api/v1/events",
				"status=200",
				"duration_ms=",
				"request_id=",
			},
		},
		{
			name:          "keeps provided request ID",
			method:        http.MethodPost,
			path:          "/api/v1/monitoring/check",
			status:        http.StatusOK,
			providedReqID: "req-abc-123",
			wantLogFields: []string{"request_id=req-abc-123"},
		},
		{
			name:          "client errors log at warn",
			method:        http.MethodGet,
			path:          "/api/v1/events",
			status:        http.StatusBadRequest,
			wantLogFields: []string{"level=WARN", "status=400"},
		},
		{
			name:          "server errors log at error",
			method:        http.MethodDelete,
			path:          "/api/v1/events",
			status:        http.StatusInternalServerError,
			wantLogFields: []string{"level=ERROR", "status=500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.providedReqID != "" {
				req.Header.Set(requestIDHeader, tt.providedReqID)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			var ctxID string
			handler := RequestLog(log)(func(c echo.Context) error {
				ctxID = RequestIDFromContext(c.Request().Context())
				return c.NoContent(tt.status)
			})
			require.NoError(t, handler(c))

			for _, field := range tt.wantLogFields {
				assert.Contains(t, buf.String(), field)
			}

			respID := rec.Header().Get(requestIDHeader)
			require.NotEmpty(t, respID)
			assert.Equal(t, respID, ctxID)
			assert.Equal(t, respID, c.Get("request_id"))
			if tt.providedReqID != "" {
				assert.Equal(t, tt.providedReqID, respID)
			}
		})
	}
}

func TestRequestLog_IncludesActor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/monitoring/cleanup", http.NoBody)
	req = req.WithContext(WithActor(context.Background(), domain.Actor{Email: "ops@example.com"}))
	c := echo.New().NewContext(req, httptest.NewRecorder())

	handler := RequestLog(log)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	assert.Contains(t, buf.String(), "actor=ops@example.com")
}

func TestRequestLog_ProbeSuppression(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	e := echo.New()

	status := http.StatusOK
	handler := RequestLog(log)(func(c echo.Context) error {
		return c.NoContent(status)
	})
	call := func(path string) {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
	}

	call("/readyz")
	assert.Contains(t, buf.String(), "path=/readyz")
	first := buf.Len()

	call("/readyz")
	assert.Equal(t, first, buf.Len(), "repeat probe successes are suppressed")

	call("/healthz")
	assert.Greater(t, buf.Len(), first, "each probe path logs its first success")
	second := buf.Len()

	status = http.StatusServiceUnavailable
	call("/readyz")
	call("/readyz")
	assert.Greater(t, buf.Len(), second, "probe failures are always logged")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestRequestLog_APIPathsAlwaysLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	e := echo.New()

	handler := RequestLog(log)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for range 3 {
		before := buf.Len()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/events/stats", http.NoBody)
		require.NoError(t, handler(e.NewContext(req, httptest.NewRecorder())))
		assert.Greater(t, buf.Len(), before)
	}
}
