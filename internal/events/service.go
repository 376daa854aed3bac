// Package events owns the event lifecycle: persisting events, routing them
// to notification sinks, querying them and deleting them.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/healthwatch/internal/metrics"
	"github.com/donaldgifford/healthwatch/internal/notify"
	"github.com/donaldgifford/healthwatch/internal/store"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// ErrInvalidEvent is returned by Create for events with an unknown type or
// severity, or without a title.
var ErrInvalidEvent = errors.New("invalid event")

const defaultStatsHours = 24

// MaxStatsHours bounds the stats window to ten years.
const MaxStatsHours = 10 * 365 * 24

// Publisher receives every created event in addition to the notifier.
type Publisher interface {
	Publish(ctx context.Context, e *domain.Event) error
}

// Filter narrows Recent results.
type Filter struct {
	Severity *domain.Severity
	UserID   *string
}

// Service persists events and dispatches them.
type Service struct {
	store     store.Store
	notifier  notify.Notifier
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher fans created events out to p.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service.
func NewService(st store.Store, n notify.Notifier, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    st,
		notifier: n,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShouldNotify reports whether an event is forwarded to the notifier:
// CRITICAL and ERROR events always are, as are user registrations of any
// severity.
func ShouldNotify(e *domain.Event) bool {
	switch {
	case e.Severity == domain.SeverityCritical, e.Severity == domain.SeverityError:
		return true
	case e.Type == domain.EventUserRegistration:
		return true
	default:
		return false
	}
}

// Create persists e and then dispatches it. A dispatch failure is logged and
// never fails the call.
func (s *Service) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if err := validate(e); err != nil {
		return nil, err
	}

	if err := s.store.CreateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("persisting %s event: %w", e.Type, err)
	}
	metrics.EventsCreatedTotal.WithLabelValues(string(e.Type), string(e.Severity)).Inc()

	s.dispatch(ctx, e)

	return e, nil
}

func validate(e *domain.Event) error {
	var errs []error
	if !e.Type.Valid() {
		errs = append(errs, fmt.Errorf("unknown event type %q", e.Type))
	}
	if !e.Severity.Valid() {
		errs = append(errs, fmt.Errorf("unknown severity %q", e.Severity))
	}
	if e.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, errors.Join(errs...))
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, e *domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic dispatching event", "event_id", e.ID, "panic", r)
		}
	}()

	if ShouldNotify(e) {
		s.notifier.DeliverEvent(ctx, notify.PayloadFromEvent(e, s.userEmail(ctx, e.UserID)))
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, e); err != nil {
			metrics.BusPublishFailuresTotal.Inc()
			s.log.Warn("publishing event to bus failed", "event_id", e.ID, "error", err)
		}
	}
}

func (s *Service) userEmail(ctx context.Context, userID *string) string {
	if userID == nil || *userID == "" {
		return ""
	}
	email, err := s.store.GetUserEmail(ctx, *userID)
	if err != nil {
		s.log.Debug("user email lookup failed", "user_id", *userID, "error", err)
		return ""
	}
	return email
}

// Recent returns events newest first. limit defaults to 50 and is capped at 500.
func (s *Service) Recent(ctx context.Context, limit int, f Filter) ([]domain.Event, error) {
	events, err := s.store.ListRecentEvents(ctx, &store.EventQuery{
		Severity: f.Severity,
		UserID:   f.UserID,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing recent events: %w", err)
	}
	return events, nil
}

// StatsSince counts events created within the last hours, by severity.
// Windows longer than MaxStatsHours are clamped. Every severity is present in
// the result.
func (s *Service) StatsSince(ctx context.Context, hours int) (map[domain.Severity]int, error) {
	if hours <= 0 {
		hours = defaultStatsHours
	}
	hours = min(hours, MaxStatsHours)
	since := s.now().Add(-time.Duration(hours) * time.Hour)

	counts, err := s.store.CountEventsBySeverity(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("counting events since %s: %w", since.Format(time.RFC3339), err)
	}

	stats := make(map[domain.Severity]int, len(domain.Severities))
	for _, sev := range domain.Severities {
		stats[sev] = counts[sev]
	}
	return stats, nil
}

// DeleteOlderThan deletes every event created more than days ago.
func (s *Service) DeleteOlderThan(ctx context.Context, days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("retention days must not be negative (got %d)", days)
	}
	cutoff := s.now().AddDate(0, 0, -days)

	n, err := s.store.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting events older than %d days: %w", days, err)
	}

	s.reportCleanup(ctx, n, "retention",
		fmt.Sprintf("Deleted %d events older than %d days", n, days),
		domain.Metadata{"cutoff": cutoff.UTC().Format(time.RFC3339)},
	)
	return n, nil
}

// DeleteByID deletes one event and reports whether it existed.
func (s *Service) DeleteByID(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.DeleteEvent(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting event %s: %w", id, err)
	}
	if ok {
		metrics.EventsDeletedTotal.WithLabelValues("delete_one").Inc()
	}
	return ok, nil
}

// DeleteAll deletes every event, or every event of one severity.
func (s *Service) DeleteAll(ctx context.Context, severity *domain.Severity) (int, error) {
	if severity != nil && !severity.Valid() {
		return 0, fmt.Errorf("%w: unknown severity %q", ErrInvalidEvent, *severity)
	}

	n, err := s.store.DeleteAllEvents(ctx, severity)
	if err != nil {
		return 0, fmt.Errorf("clearing events: %w", err)
	}

	msg := fmt.Sprintf("Cleared %d events", n)
	meta := domain.Metadata{}
	if severity != nil {
		msg = fmt.Sprintf("Cleared %d %s events", n, *severity)
		meta["severity"] = string(*severity)
	}
	s.reportCleanup(ctx, n, "clear_all", msg, meta)
	return n, nil
}

// DeleteNonCritical deletes every INFO and WARNING event.
func (s *Service) DeleteNonCritical(ctx context.Context) (int, error) {
	n, err := s.store.DeleteEventsBySeverity(ctx,
		[]domain.Severity{domain.SeverityInfo, domain.SeverityWarning})
	if err != nil {
		return 0, fmt.Errorf("clearing non-critical events: %w", err)
	}

	s.reportCleanup(ctx, n, "clear_non_critical",
		fmt.Sprintf("Cleared %d non-critical events", n), domain.Metadata{})
	return n, nil
}

// reportCleanup records a bulk deletion as an INFO event. Nothing is recorded
// when nothing was deleted.
func (s *Service) reportCleanup(ctx context.Context, n int, operation, message string, meta domain.Metadata) {
	if n <= 0 {
		return
	}
	metrics.EventsDeletedTotal.WithLabelValues(operation).Add(float64(n))

	meta["deletedCount"] = n
	meta["operation"] = operation

	_, err := s.Create(ctx, &domain.Event{
		Type:     domain.EventBulkStorageCleanup,
		Severity: domain.SeverityInfo,
		Title:    "Event Cleanup",
		Message:  message,
		Metadata: meta,
	})
	if err != nil {
		s.log.Warn("recording cleanup event failed", "operation", operation, "deleted", n, "error", err)
	}
}

// SeedAlertRules inserts the default alert rules that do not exist yet.
func (s *Service) SeedAlertRules(ctx context.Context) error {
	var errs []error
	for _, r := range domain.DefaultAlertRules() {
		if err := s.store.UpsertAlertRule(ctx, &r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AlertRules returns the configured alert rules.
func (s *Service) AlertRules(ctx context.Context) ([]domain.AlertRule, error) {
	rules, err := s.store.ListAlertRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing alert rules: %w", err)
	}
	return rules, nil
}
