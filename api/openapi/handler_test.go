package openapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/healthwatch/api/openapi"
	"github.com/donaldgifford/healthwatch/internal/api/handlers"
)

func newAPI(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	openapi.RegisterRoutes(e)
	api := humaecho.New(e, openapi.Config("1.2.3"))
	handlers.RegisterEventRoutes(api, handlers.NewEventsHandler(nil, nil))
	handlers.RegisterMonitoringRoutes(api, handlers.NewMonitoringHandler(nil))
	handlers.RegisterRuleRoutes(api, handlers.NewRulesHandler(nil))
	return e
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
		wantContains string
	}{
		{name: "ui", path: "/swagger/index.html", wantStatus: http.StatusOK, wantContains: `url: "/openapi.json"`},
		{name: "bare redirect", path: "/swagger", wantStatus: http.StatusMovedPermanently, wantLocation: "/swagger/index.html"},
		{name: "slash redirect", path: "/swagger/", wantStatus: http.StatusMovedPermanently, wantLocation: "/swagger/index.html"},
		{name: "generated spec", path: "/openapi.json", wantStatus: http.StatusOK, wantContains: `"Healthwatch API"`},
	}

	e := newAPI(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			if tt.wantContains != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContains)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	e := echo.New()
	api := humaecho.New(e, openapi.Config("1.2.3"))
	handlers.RegisterEventRoutes(api, handlers.NewEventsHandler(nil, nil))
	handlers.RegisterMonitoringRoutes(api, handlers.NewMonitoringHandler(nil))
	handlers.RegisterRuleRoutes(api, handlers.NewRulesHandler(nil))

	var buf bytes.Buffer
	require.NoError(t, openapi.Write(&buf, api))

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths      map[string]map[string]any `json:"paths"`
		Components struct {
			SecuritySchemes map[string]any `json:"securitySchemes"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "Healthwatch API", doc.Info.Title)
	assert.Equal(t, "1.2.3", doc.Info.Version)
	assert.Contains(t, doc.Components.SecuritySchemes, "adminToken")

	for path, methods := range map[string][]string{
		"/api/v1/events":              {"get", "post", "delete"},
		"/api/v1/events/stats":        {"get"},
		"/api/v1/events/{id}":         {"delete"},
		"/api/v1/events/non-critical": {"delete"},
		"/api/v1/monitoring/status":   {"get"},
		"/api/v1/monitoring/check":    {"post"},
		"/api/v1/monitoring/cleanup":  {"post"},
		"/api/v1/alert-rules":         {"get"},
	} {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, "%s %s", m, path)
		}
	}
}
