package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/healthwatch/internal/metrics"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// Embed colors (0xRRGGBB).
const (
	colorCritical = 0xFF0000
	colorError    = 0xFF4500
	colorWarning  = 0xFFA500
	colorInfo     = 0x3498DB
	colorUnknown  = 0x95A5A6
	colorAdmin    = 0x9B59B6
)

// maxFieldValue is Discord's limit on a single embed field value.
const maxFieldValue = 1024

const (
	defaultTimeout       = 10 * time.Second
	defaultRatePerMinute = 30
	defaultBurst         = 5
)

var severityEmoji = map[domain.Severity]string{
	domain.SeverityCritical: "🚨",
	domain.SeverityError:    "❌",
	domain.SeverityWarning:  "⚠️",
	domain.SeverityInfo:     "ℹ️",
}

var typeEmoji = map[domain.EventType]string{
	domain.EventSystemCPUHigh:         "🔥",
	domain.EventSystemMemoryHigh:      "🧠",
	domain.EventSystemDiskWarning:     "💾",
	domain.EventSystemDiskCritical:    "💽",
	domain.EventUserStorageWarning:    "📦",
	domain.EventUserStorageCritical:   "📦",
	domain.EventUserFileLimitWarning:  "📁",
	domain.EventUserFileLimitCritical: "📁",
	domain.EventSystemError:           "💥",
	domain.EventBulkStorageCleanup:    "🧹",
	domain.EventUserRegistration:      "👤",
	domain.EventUserApproved:          "✅",
	domain.EventFileUploadFailed:      "📤",
	domain.EventSecurityAlert:         "🔒",
}

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL  string
	client      *http.Client
	log         *slog.Logger
	limiter     *rate.Limiter
	username    string
	avatarURL   string
	footer      string
	environment string
	now         func() time.Time
}

// NewDiscordNotifier creates a new DiscordNotifier. An empty webhookURL is
// valid: every delivery then returns false without touching the network.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL:  webhookURL,
		client:      &http.Client{Timeout: defaultTimeout},
		log:         slog.Default(),
		limiter:     newLimiter(defaultRatePerMinute, defaultBurst),
		username:    "Healthwatch",
		footer:      "Healthwatch System Monitor",
		environment: "development",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithLogger sets the logger used for delivery failures.
func WithLogger(log *slog.Logger) DiscordOption {
	return func(d *DiscordNotifier) {
		d.log = log
	}
}

// WithIdentity overrides the webhook sender name and avatar.
func WithIdentity(username, avatarURL string) DiscordOption {
	return func(d *DiscordNotifier) {
		if username != "" {
			d.username = username
		}
		d.avatarURL = avatarURL
	}
}

// WithFooter sets the embed footer text.
func WithFooter(footer string) DiscordOption {
	return func(d *DiscordNotifier) {
		d.footer = footer
	}
}

// WithEnvironment sets the environment shown on every embed. Only
// "production" is rendered as production.
func WithEnvironment(env string) DiscordOption {
	return func(d *DiscordNotifier) {
		d.environment = env
	}
}

// WithRateLimit caps outgoing webhook calls. Calls over the budget are dropped.
// perMinute <= 0 disables the cap.
func WithRateLimit(perMinute, burst int) DiscordOption {
	return func(d *DiscordNotifier) {
		d.limiter = newLimiter(perMinute, burst)
	}
}

func newLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// errRateLimited means the local pacing budget was spent. The notification is
// dropped instead of waiting, so a burst of events never holds up its caller.
var errRateLimited = errors.New("webhook rate limit exhausted")

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Username  string         `json:"username,omitempty"`
	AvatarURL string         `json:"avatar_url,omitempty"`
	Embeds    []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	Timestamp   string              `json:"timestamp"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
	Author      *discordAuthor      `json:"author,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

type discordAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// DeliverEvent sends one event as a Discord embed.
func (d *DiscordNotifier) DeliverEvent(ctx context.Context, p *EventPayload) bool {
	if d.webhookURL == "" {
		metrics.NotificationsTotal.WithLabelValues("event", "skipped").Inc()
		return false
	}

	embed := d.buildEventEmbed(p)
	if err := d.post(ctx, d.wrap(embed)); err != nil {
		metrics.NotificationsTotal.WithLabelValues("event", result(err)).Inc()
		d.log.Warn("discord event notification failed",
			"type", p.Type,
			"severity", p.Severity,
			"error", err,
		)
		return false
	}

	metrics.NotificationsTotal.WithLabelValues("event", "sent").Inc()
	return true
}

// DeliverAdminAction sends an admin-action embed.
func (d *DiscordNotifier) DeliverAdminAction(ctx context.Context, p *AdminActionPayload) bool {
	if d.webhookURL == "" {
		metrics.NotificationsTotal.WithLabelValues("admin", "skipped").Inc()
		return false
	}

	embed := d.buildAdminEmbed(p)
	if err := d.post(ctx, d.wrap(embed)); err != nil {
		metrics.NotificationsTotal.WithLabelValues("admin", result(err)).Inc()
		d.log.Warn("discord admin notification failed",
			"action", p.Action,
			"admin", p.Actor.Display(),
			"error", err,
		)
		return false
	}

	metrics.NotificationsTotal.WithLabelValues("admin", "sent").Inc()
	return true
}

func (d *DiscordNotifier) wrap(embed discordEmbed) discordWebhookPayload {
	embed.Footer = &discordFooter{Text: d.footer}
	embed.Author = &discordAuthor{Name: d.username, IconURL: d.avatarURL}
	return discordWebhookPayload{
		Username:  d.username,
		AvatarURL: d.avatarURL,
		Embeds:    []discordEmbed{embed},
	}
}

func (d *DiscordNotifier) buildEventEmbed(p *EventPayload) discordEmbed {
	fields := []discordEmbedField{
		{Name: "Event Type", Value: string(p.Type), Inline: true},
		{Name: "Severity", Value: string(p.Severity), Inline: true},
	}

	if p.UserEmail != "" {
		fields = append(fields, discordEmbedField{Name: "User", Value: p.UserEmail, Inline: true})
	}

	if block := metricsBlock(p); block != "" {
		fields = append(fields, discordEmbedField{Name: "System Metrics", Value: block})
	}

	if block, ok := metadataBlock(p.Metadata); ok {
		fields = append(fields, discordEmbedField{Name: "Metadata", Value: block})
	}

	fields = append(fields, discordEmbedField{
		Name:   "Environment",
		Value:  environmentLabel(d.environment),
		Inline: true,
	})

	return discordEmbed{
		Title: fmt.Sprintf("%s %s %s",
			emojiForSeverity(p.Severity), emojiForType(p.Type), TitleCase(string(p.Type))),
		Description: fmt.Sprintf("**%s**\n%s", p.Title, p.Message),
		Color:       SeverityColor(p.Severity),
		Timestamp:   d.timestamp(p.Timestamp),
		Fields:      fields,
	}
}

func (d *DiscordNotifier) buildAdminEmbed(p *AdminActionPayload) discordEmbed {
	action := TitleCase(string(p.Action))
	fields := []discordEmbedField{
		{Name: "Admin", Value: p.Actor.Display(), Inline: true},
		{Name: "Action", Value: action, Inline: true},
		{Name: "Environment", Value: environmentLabel(d.environment), Inline: true},
	}

	if block, ok := metadataBlock(p.Metadata); ok {
		fields = append(fields, discordEmbedField{Name: "Details", Value: block})
	}

	return discordEmbed{
		Title:       "🛡️ Admin Action: " + action,
		Description: fmt.Sprintf("**%s** performed **%s**", p.Actor.Display(), action),
		Color:       colorAdmin,
		Timestamp:   d.timestamp(p.Timestamp),
		Fields:      fields,
	}
}

func (d *DiscordNotifier) timestamp(t time.Time) string {
	if t.IsZero() {
		t = d.now()
	}
	return t.UTC().Format(time.RFC3339)
}

// SeverityColor maps a severity to its embed color.
func SeverityColor(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return colorCritical
	case domain.SeverityError:
		return colorError
	case domain.SeverityWarning:
		return colorWarning
	case domain.SeverityInfo:
		return colorInfo
	default:
		return colorUnknown
	}
}

func emojiForSeverity(s domain.Severity) string {
	if e, ok := severityEmoji[s]; ok {
		return e
	}
	return "📢"
}

func emojiForType(t domain.EventType) string {
	if e, ok := typeEmoji[t]; ok {
		return e
	}
	return "🔔"
}

// TitleCase turns SNAKE_CASE into "Snake Case".
func TitleCase(s string) string {
	words := strings.Split(strings.ToLower(s), "_")
	out := words[:0]
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(out, " ")
}

func environmentLabel(env string) string {
	if strings.EqualFold(env, "production") {
		return "🟢 Production"
	}
	return "🧪 Development"
}

func metricsBlock(p *EventPayload) string {
	var lines []string
	if p.CPUUsage != nil {
		lines = append(lines, fmt.Sprintf("CPU: %.1f%%", *p.CPUUsage))
	}
	if p.MemoryUsage != nil {
		lines = append(lines, fmt.Sprintf("Memory: %.1f%%", *p.MemoryUsage))
	}
	if p.DiskUsage != nil {
		lines = append(lines, fmt.Sprintf("Disk: %.1f%%", *p.DiskUsage))
	}
	return strings.Join(lines, "\n")
}

// metadataBlock renders metadata as a JSON code block. It reports false when
// there is nothing to show or the block would exceed the field limit.
func metadataBlock(m domain.Metadata) (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", false
	}
	block := "```json\n" + string(raw) + "\n```"
	if len(block) > maxFieldValue {
		return "", false
	}
	return block, true
}

func result(err error) string {
	if errors.Is(err, errRateLimited) {
		return "rate_limited"
	}
	return "failed"
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	if !d.limiter.Allow() {
		return errRateLimited
	}

	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return errors.New("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
