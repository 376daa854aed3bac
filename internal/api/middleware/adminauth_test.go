package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/donaldgifford/healthwatch/internal/api/middleware"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

const testSecret = "s3cret-for-tests"

// newAuthServer echoes back the actor the middleware attached.
func newAuthServer(secret string) *echo.Echo {
	e := echo.New()
	e.Use(mw.AdminAuth(secret))

	whoami := func(c echo.Context) error {
		a, ok := mw.ActorFromContext(c.Request().Context())
		if !ok {
			return c.String(http.StatusOK, "none")
		}
		return c.String(http.StatusOK, a.ID+"|"+a.Email)
	}
	e.POST("/api/v1/monitoring/check", whoami)
	e.GET("/healthz", whoami)
	return e
}

func TestAdminAuth_WithSecret(t *testing.T) {
	t.Parallel()

	valid, err := mw.IssueAdminToken(testSecret, domain.Actor{ID: "a-1", Email: "ops@example.com"}, time.Hour)
	require.NoError(t, err)

	expired, err := mw.IssueAdminToken(testSecret, domain.Actor{Email: "ops@example.com"}, -time.Minute)
	require.NoError(t, err)

	wrongKey, err := mw.IssueAdminToken("other-secret", domain.Actor{Email: "ops@example.com"}, time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, mw.AdminClaims{Email: "x@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "a-1|ops@example.com"},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantBody: "a-1|ops@example.com"},
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantBody: "missing bearer token"},
		{name: "basic scheme", header: "Basic b3BzOnB3", wantStatus: http.StatusUnauthorized, wantBody: "missing bearer token"},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized, wantBody: "invalid admin token"},
		{name: "wrong key", header: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized, wantBody: "invalid admin token"},
		{name: "none algorithm", header: "Bearer " + noneAlg, wantStatus: http.StatusUnauthorized, wantBody: "invalid admin token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/monitoring/check", http.NoBody)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			newAuthServer(testSecret).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestAdminAuth_ProbesBypass(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newAuthServer(testSecret).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", rec.Body.String())
}

func TestAdminAuth_TrustedHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/monitoring/check", http.NoBody)
	req.Header.Set("X-Admin-Email", "ops@example.com")
	req.Header.Set("X-Admin-ID", "a-9")
	rec := httptest.NewRecorder()
	newAuthServer("").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a-9|ops@example.com", rec.Body.String())
}

func TestIssueAdminToken_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := mw.IssueAdminToken("", domain.Actor{Email: "ops@example.com"}, time.Hour)
	require.Error(t, err)
}

func TestParseAdminToken_RoundTrip(t *testing.T) {
	t.Parallel()

	tok, err := mw.IssueAdminToken(testSecret, domain.Actor{ID: "a-1", Email: "ops@example.com"}, time.Minute)
	require.NoError(t, err)

	actor, err := mw.ParseAdminToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{ID: "a-1", Email: "ops@example.com"}, actor)
}
