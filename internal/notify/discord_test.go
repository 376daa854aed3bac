package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/healthwatch/internal/metrics"
	"github.com/donaldgifford/healthwatch/pkg/logger"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func testPayload() *EventPayload {
	return &EventPayload{
		Type:        domain.EventUserStorageCritical,
		Severity:    domain.SeverityCritical,
		Title:       "Storage Critical",
		Message:     "User alice@example.com is using 99.0% of their storage quota",
		Metadata:    domain.Metadata{"usagePercent": 99.0, "storageUsed": 9_900_000_000},
		UserEmail:   "alice@example.com",
		CPUUsage:    ptr(12.5),
		MemoryUsage: ptr(40.0),
		Timestamp:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

type capture struct {
	mu       sync.Mutex
	payloads []discordWebhookPayload
}

func (c *capture) all() []discordWebhookPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]discordWebhookPayload(nil), c.payloads...)
}

// captureServer records the decoded payloads it receives and answers with status.
func captureServer(t *testing.T, status int) (*httptest.Server, *capture, *atomic.Int32) {
	t.Helper()

	var (
		received capture
		calls    atomic.Int32
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, http.MethodPost, r.Method)

		var p discordWebhookPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))

		received.mu.Lock()
		received.payloads = append(received.payloads, p)
		received.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, &received, &calls
}

func fieldNames(fields []discordEmbedField) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestDiscordNotifier_DeliverEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{name: "204 is delivered", statusCode: http.StatusNoContent, want: true},
		{name: "200 is delivered", statusCode: http.StatusOK, want: true},
		{name: "429 is not delivered", statusCode: http.StatusTooManyRequests, want: false},
		{name: "400 is not delivered", statusCode: http.StatusBadRequest, want: false},
		{name: "500 is not delivered", statusCode: http.StatusInternalServerError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _, calls := captureServer(t, tt.statusCode)
			d := NewDiscordNotifier(srv.URL, WithLogger(logger.Discard()), WithRateLimit(0, 0))

			got := d.DeliverEvent(context.Background(), testPayload())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestDiscordNotifier_EventEmbed(t *testing.T) {
	t.Parallel()

	srv, received, _ := captureServer(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL,
		WithLogger(logger.Discard()),
		WithIdentity("Ops Bot", "https://example.com/bot.png"),
		WithFooter("Ops Monitor"),
		WithEnvironment("production"),
	)

	require.True(t, d.DeliverEvent(context.Background(), testPayload()))
	got := received.all()
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, "Ops Bot", p.Username)
	assert.Equal(t, "https://example.com/bot.png", p.AvatarURL)
	require.Len(t, p.Embeds, 1)

	embed := p.Embeds[0]
	assert.Equal(t, "🚨 📦 User Storage Critical", embed.Title)
	assert.Equal(t, "**Storage Critical**\nUser alice@example.com is using 99.0% of their storage quota", embed.Description)
	assert.Equal(t, colorCritical, embed.Color)
	assert.Equal(t, "2026-03-01T12:00:00Z", embed.Timestamp)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Ops Monitor", embed.Footer.Text)
	require.NotNil(t, embed.Author)
	assert.Equal(t, "Ops Bot", embed.Author.Name)
	assert.Equal(t, "https://example.com/bot.png", embed.Author.IconURL)

	assert.Equal(t,
		[]string{"Event Type", "Severity", "User", "System Metrics", "Metadata", "Environment"},
		fieldNames(embed.Fields),
	)
	assert.Equal(t, "USER_STORAGE_CRITICAL", embed.Fields[0].Value)
	assert.Equal(t, "CRITICAL", embed.Fields[1].Value)
	assert.Equal(t, "alice@example.com", embed.Fields[2].Value)
	assert.Equal(t, "CPU: 12.5%\nMemory: 40.0%", embed.Fields[3].Value)
	assert.True(t, strings.HasPrefix(embed.Fields[4].Value, "```json\n"))
	assert.Contains(t, embed.Fields[4].Value, `"usagePercent": 99`)
	assert.Equal(t, "🟢 Production", embed.Fields[5].Value)
}

func TestDiscordNotifier_OptionalFieldsOmitted(t *testing.T) {
	t.Parallel()

	srv, received, _ := captureServer(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL, WithLogger(logger.Discard()))

	require.True(t, d.DeliverEvent(context.Background(), &EventPayload{
		Type:     domain.EventSystemError,
		Severity: domain.SeverityError,
		Title:    "Monitoring Error",
		Message:  "scheduled check failed",
	}))

	embed := received.all()[0].Embeds[0]
	assert.Equal(t, []string{"Event Type", "Severity", "Environment"}, fieldNames(embed.Fields))
	assert.Equal(t, "🧪 Development", embed.Fields[2].Value)
	assert.NotEmpty(t, embed.Timestamp)
}

func TestDiscordNotifier_OversizedMetadataOmitted(t *testing.T) {
	t.Parallel()

	srv, received, _ := captureServer(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL, WithLogger(logger.Discard()))

	p := testPayload()
	p.Metadata = domain.Metadata{"blob": strings.Repeat("x", 2000)}

	require.True(t, d.DeliverEvent(context.Background(), p))

	embed := received.all()[0].Embeds[0]
	assert.NotContains(t, fieldNames(embed.Fields), "Metadata")
	assert.Contains(t, fieldNames(embed.Fields), "Environment")
}

func TestDiscordNotifier_Unconfigured(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, assert.AnError
	})}

	d := NewDiscordNotifier("", WithHTTPClient(client), WithLogger(logger.Discard()))

	assert.False(t, d.DeliverEvent(context.Background(), testPayload()))
	assert.False(t, d.DeliverAdminAction(context.Background(), &AdminActionPayload{
		Actor:  domain.Actor{Email: "admin@example.com"},
		Action: domain.ActionTriggerChecks,
	}))
	assert.Equal(t, int32(0), calls.Load())
}

func TestDiscordNotifier_TransportError(t *testing.T) {
	t.Parallel()

	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, assert.AnError
	})}
	d := NewDiscordNotifier("http://discord.invalid/webhook",
		WithHTTPClient(client), WithLogger(logger.Discard()))

	assert.False(t, d.DeliverEvent(context.Background(), testPayload()))
}

func TestDiscordNotifier_CanceledContext(t *testing.T) {
	t.Parallel()

	srv, _, calls := captureServer(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL, WithLogger(logger.Discard()), WithRateLimit(0, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, d.DeliverEvent(ctx, testPayload()))
	assert.Equal(t, int32(0), calls.Load())
}

func TestDiscordNotifier_RateLimitDropsWithoutWaiting(t *testing.T) {
	t.Parallel()

	srv, _, calls := captureServer(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL, WithLogger(logger.Discard()), WithRateLimit(1, 5))

	before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("event", "rate_limited"))

	start := time.Now()
	delivered := 0
	for range 10 {
		if d.DeliverEvent(context.Background(), testPayload()) {
			delivered++
		}
	}
	elapsed := time.Since(start)

	assert.Equal(t, 5, delivered)
	assert.Equal(t, int32(5), calls.Load())
	assert.Less(t, elapsed, time.Second, "delivery over the budget must not block")
	assert.GreaterOrEqual(t,
		testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("event", "rate_limited"))-before, 5.0)

	// Admin actions share the budget and are dropped too.
	assert.False(t, d.DeliverAdminAction(context.Background(), &AdminActionPayload{
		Actor:  domain.Actor{Email: "admin@example.com"},
		Action: domain.ActionTriggerChecks,
	}))
}

func TestDiscordNotifier_DeliverAdminAction(t *testing.T) {
	t.Parallel()

	srv, received, _ := captureServer(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL, WithLogger(logger.Discard()))

	ok := d.DeliverAdminAction(context.Background(), &AdminActionPayload{
		Actor:    domain.Actor{ID: "u1", Email: "admin@example.com"},
		Action:   domain.ActionClearNonCritical,
		Metadata: domain.Metadata{"deletedCount": 12},
	})
	require.True(t, ok)

	embed := received.all()[0].Embeds[0]
	assert.Equal(t, colorAdmin, embed.Color)
	assert.Equal(t, "🛡️ Admin Action: Clear Non Critical Events", embed.Title)
	assert.Equal(t, []string{"Admin", "Action", "Environment", "Details"}, fieldNames(embed.Fields))
	assert.Equal(t, "admin@example.com", embed.Fields[0].Value)
	assert.Contains(t, embed.Fields[3].Value, `"deletedCount": 12`)
}

func TestSeverityColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity domain.Severity
		want     int
	}{
		{domain.SeverityCritical, 0xFF0000},
		{domain.SeverityError, 0xFF4500},
		{domain.SeverityWarning, 0xFFA500},
		{domain.SeverityInfo, 0x3498DB},
		{domain.Severity("BOGUS"), 0x95A5A6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityColor(tt.severity), string(tt.severity))
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "System Cpu High", TitleCase("SYSTEM_CPU_HIGH"))
	assert.Equal(t, "User Registration", TitleCase("USER_REGISTRATION"))
	assert.Equal(t, "Single", TitleCase("SINGLE"))
	assert.Empty(t, TitleCase(""))
}

func TestEmojiFallbacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🔔", emojiForType(domain.EventType("UNKNOWN")))
	assert.Equal(t, "📢", emojiForSeverity(domain.Severity("UNKNOWN")))
	for _, et := range domain.EventTypes {
		assert.NotEqual(t, "🔔", emojiForType(et), string(et))
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
