package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/healthwatch/internal/notify"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// EventAdmin is the deletion side of the event service.
type EventAdmin interface {
	DeleteOlderThan(ctx context.Context, days int) (int, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context, severity *domain.Severity) (int, error)
	DeleteNonCritical(ctx context.Context) (int, error)
}

// StatusReporter reports scheduler state.
type StatusReporter interface {
	Status() Status
}

// Result is the outcome of an admin operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Admin runs operator-initiated maintenance. Callers are trusted; the actor
// is only used for attribution in notifications and logs.
type Admin struct {
	checks        CheckRunner
	events        EventAdmin
	status        StatusReporter
	notifier      notify.Notifier
	log           *slog.Logger
	retentionDays int
	now           func() time.Time
}

// AdminOption configures an Admin.
type AdminOption func(*Admin)

// WithAdminRetentionDays sets the retention used by CleanupOldEvents.
func WithAdminRetentionDays(days int) AdminOption {
	return func(a *Admin) {
		a.retentionDays = days
	}
}

// WithAdminClock replaces time.Now, for tests.
func WithAdminClock(now func() time.Time) AdminOption {
	return func(a *Admin) {
		a.now = now
	}
}

// NewAdmin creates an Admin.
func NewAdmin(
	checks CheckRunner,
	events EventAdmin,
	status StatusReporter,
	n notify.Notifier,
	log *slog.Logger,
	opts ...AdminOption,
) *Admin {
	a := &Admin{
		checks:        checks,
		events:        events,
		status:        status,
		notifier:      n,
		log:           log,
		retentionDays: defaultRetentionDays,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TriggerChecks runs one evaluation pass now.
func (a *Admin) TriggerChecks(ctx context.Context, actor domain.Actor) Result {
	if err := safeRun(ctx, a.checks.RunChecks); err != nil {
		a.log.Error("manual checks failed", "actor", actor.Display(), "error", err)
		return Result{Message: fmt.Sprintf("Failed to run monitoring checks: %v", err)}
	}

	a.notify(ctx, actor, domain.ActionTriggerChecks, nil)
	return Result{Success: true, Message: "Monitoring checks completed"}
}

// CleanupOldEvents deletes events past the retention window.
func (a *Admin) CleanupOldEvents(ctx context.Context, actor domain.Actor) Result {
	n, err := a.events.DeleteOlderThan(ctx, a.retentionDays)
	if err != nil {
		a.log.Error("manual cleanup failed", "actor", actor.Display(), "error", err)
		return Result{Message: fmt.Sprintf("Failed to clean up old events: %v", err)}
	}

	a.notify(ctx, actor, domain.ActionCleanupOldEvents, domain.Metadata{
		"deletedCount":  n,
		"retentionDays": a.retentionDays,
	})
	return Result{
		Success: true,
		Message: fmt.Sprintf("Deleted %d events older than %d days", n, a.retentionDays),
		Count:   n,
	}
}

// DeleteEvent deletes one event by ID.
func (a *Admin) DeleteEvent(ctx context.Context, actor domain.Actor, id string) Result {
	ok, err := a.events.DeleteByID(ctx, id)
	if err != nil {
		a.log.Error("deleting event failed", "actor", actor.Display(), "event_id", id, "error", err)
		return Result{Message: fmt.Sprintf("Failed to delete event: %v", err)}
	}
	if !ok {
		return Result{Message: fmt.Sprintf("Event %s not found", id)}
	}

	a.notify(ctx, actor, domain.ActionDeleteEvent, domain.Metadata{"eventId": id})
	return Result{Success: true, Message: "Event deleted", Count: 1}
}

// ClearAll deletes every event, or every event of one severity.
func (a *Admin) ClearAll(ctx context.Context, actor domain.Actor, severity *domain.Severity) Result {
	n, err := a.events.DeleteAll(ctx, severity)
	if err != nil {
		a.log.Error("clearing events failed", "actor", actor.Display(), "error", err)
		return Result{Message: fmt.Sprintf("Failed to clear events: %v", err)}
	}

	meta := domain.Metadata{"deletedCount": n}
	msg := fmt.Sprintf("Cleared %d events", n)
	if severity != nil {
		meta["severity"] = string(*severity)
		msg = fmt.Sprintf("Cleared %d %s events", n, *severity)
	}

	a.notify(ctx, actor, domain.ActionClearAllEvents, meta)
	return Result{Success: true, Message: msg, Count: n}
}

// ClearNonCritical deletes every INFO and WARNING event.
func (a *Admin) ClearNonCritical(ctx context.Context, actor domain.Actor) Result {
	n, err := a.events.DeleteNonCritical(ctx)
	if err != nil {
		a.log.Error("clearing non-critical events failed", "actor", actor.Display(), "error", err)
		return Result{Message: fmt.Sprintf("Failed to clear non-critical events: %v", err)}
	}

	a.notify(ctx, actor, domain.ActionClearNonCritical, domain.Metadata{"deletedCount": n})
	return Result{
		Success: true,
		Message: fmt.Sprintf("Cleared %d non-critical events", n),
		Count:   n,
	}
}

// MonitoringStatus reports scheduler state.
func (a *Admin) MonitoringStatus() Status {
	return a.status.Status()
}

func (a *Admin) notify(ctx context.Context, actor domain.Actor, action domain.AdminActionType, meta domain.Metadata) {
	a.log.Info("admin action", "actor", actor.Display(), "action", action)
	if !a.notifier.DeliverAdminAction(ctx, &notify.AdminActionPayload{
		Actor:     actor,
		Action:    action,
		Metadata:  meta,
		Timestamp: a.now(),
	}) {
		a.log.Debug("admin action notification not delivered", "action", action)
	}
}
