// Package engine turns host and per-user measurements into events, runs those
// checks on a schedule, and exposes the admin operations around them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/donaldgifford/healthwatch/internal/metrics"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// Fixed thresholds, in percent.
const (
	cpuHighThreshold       = 90.0
	memoryHighThreshold    = 90.0
	diskCriticalThreshold  = 95.0
	diskWarningThreshold   = 80.0
	usageCriticalThreshold = 95.0
	usageWarningThreshold  = 80.0
)

const (
	defaultStorageLimit int64 = 10_000_000_000
	defaultFileLimit          = 1000
)

// EventRecorder persists an event and dispatches it.
type EventRecorder interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
}

// MetricsSampler produces host utilization snapshots.
type MetricsSampler interface {
	Sample(ctx context.Context) domain.SystemMetrics
	DiskSampled() bool
}

// UsageStore reads per-user usage and refreshes the cached storage counter.
type UsageStore interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	GetUserUsage(ctx context.Context, userID string) (*domain.UserUsage, error)
	UpdateUserStorageUsed(ctx context.Context, userID string, used int64) error
}

// Evaluator compares fresh measurements against the thresholds and records
// one event per breached condition.
type Evaluator struct {
	sampler  MetricsSampler
	users    UsageStore
	recorder EventRecorder
	log      *slog.Logger

	defaultStorageLimit int64
	defaultFileLimit    int
}

// EvaluatorOption configures the Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.log = l
	}
}

// WithDefaultLimits sets the limits used for users without their own.
func WithDefaultLimits(storageBytes int64, files int) EvaluatorOption {
	return func(e *Evaluator) {
		e.defaultStorageLimit = storageBytes
		e.defaultFileLimit = files
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(
	s MetricsSampler,
	users UsageStore,
	rec EventRecorder,
	opts ...EvaluatorOption,
) *Evaluator {
	e := &Evaluator{
		sampler:             s,
		users:               users,
		recorder:            rec,
		log:                 slog.Default(),
		defaultStorageLimit: defaultStorageLimit,
		defaultFileLimit:    defaultFileLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateSystem samples the host once and records an event for each
// breached system condition. Conditions are independent: a failure to record
// one does not prevent the others.
func (e *Evaluator) EvaluateSystem(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.EvaluationDuration.WithLabelValues("system").Observe(time.Since(start).Seconds())
	}()

	m := e.sampler.Sample(ctx)
	diskSampled := e.sampler.DiskSampled()

	var pending []*domain.Event

	if m.CPUUsage >= cpuHighThreshold {
		pending = append(pending, &domain.Event{
			Type:     domain.EventSystemCPUHigh,
			Severity: domain.SeverityWarning,
			Title:    "High CPU Usage",
			Message:  fmt.Sprintf("CPU usage is at %.1f%%", m.CPUUsage),
			Metadata: domain.Metadata{"cpuUsage": round2(m.CPUUsage), "threshold": cpuHighThreshold},
		})
	}

	if m.MemoryUsage >= memoryHighThreshold {
		pending = append(pending, &domain.Event{
			Type:     domain.EventSystemMemoryHigh,
			Severity: domain.SeverityWarning,
			Title:    "High Memory Usage",
			Message:  fmt.Sprintf("Memory usage is at %.1f%%", m.MemoryUsage),
			Metadata: domain.Metadata{
				"memoryUsage": round2(m.MemoryUsage),
				"threshold":   memoryHighThreshold,
				"totalMemory": m.TotalMemory,
				"freeMemory":  m.FreeMemory,
			},
		})
	}

	if diskSampled {
		switch {
		case m.DiskUsage >= diskCriticalThreshold:
			pending = append(pending, &domain.Event{
				Type:     domain.EventSystemDiskCritical,
				Severity: domain.SeverityCritical,
				Title:    "Disk Space Critical",
				Message:  fmt.Sprintf("Disk usage is at %.1f%%", m.DiskUsage),
				Metadata: domain.Metadata{"diskUsage": round2(m.DiskUsage), "threshold": diskCriticalThreshold},
			})
		case m.DiskUsage >= diskWarningThreshold:
			pending = append(pending, &domain.Event{
				Type:     domain.EventSystemDiskWarning,
				Severity: domain.SeverityWarning,
				Title:    "Disk Space Warning",
				Message:  fmt.Sprintf("Disk usage is at %.1f%%", m.DiskUsage),
				Metadata: domain.Metadata{"diskUsage": round2(m.DiskUsage), "threshold": diskWarningThreshold},
			})
		}
	}

	var errs []error
	for _, ev := range pending {
		ev.WithMetrics(m, diskSampled)
		if _, err := e.recorder.Create(ctx, ev); err != nil {
			errs = append(errs, fmt.Errorf("recording %s: %w", ev.Type, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		metrics.EvaluationErrorsTotal.WithLabelValues("system").Inc()
		return err
	}
	return nil
}

// EvaluateUser checks one user's storage and file usage. A failed usage
// lookup is recorded as a SYSTEM_ERROR event and is not returned; failures
// to refresh the storage counter or to record an event are.
func (e *Evaluator) EvaluateUser(ctx context.Context, userID string) error {
	start := time.Now()
	defer func() {
		metrics.EvaluationDuration.WithLabelValues("user").Observe(time.Since(start).Seconds())
	}()

	u, err := e.users.GetUserUsage(ctx, userID)
	if err != nil {
		metrics.EvaluationErrorsTotal.WithLabelValues("user").Inc()
		e.log.Error("loading user usage failed", "user_id", userID, "error", err)
		e.recordLookupFailure(ctx, userID, err)
		return nil
	}

	if err := e.users.UpdateUserStorageUsed(ctx, u.ID, u.StorageUsed); err != nil {
		metrics.EvaluationErrorsTotal.WithLabelValues("user").Inc()
		return fmt.Errorf("refreshing storage used for user %s: %w", u.ID, err)
	}

	var pending []*domain.Event

	storageLimit := e.defaultStorageLimit
	if u.StorageLimit != nil {
		storageLimit = *u.StorageLimit
	}
	if storageLimit > 0 {
		pct := percentOf(float64(u.StorageUsed), float64(storageLimit))
		if sev, ok := usageTier(pct); ok {
			typ := domain.EventUserStorageWarning
			title := "Storage Warning"
			if sev == domain.SeverityCritical {
				typ = domain.EventUserStorageCritical
				title = "Storage Critical"
			}
			pending = append(pending, &domain.Event{
				Type:     typ,
				Severity: sev,
				Title:    title,
				Message: fmt.Sprintf("User %s is using %.1f%% of their storage quota (%s of %s)",
					userLabel(u), pct, formatBytes(u.StorageUsed), formatBytes(storageLimit)),
				Metadata: domain.Metadata{
					"storageUsed":  u.StorageUsed,
					"storageLimit": storageLimit,
					"usagePercent": round2(pct),
				},
			})
		}
	}

	fileLimit := e.defaultFileLimit
	if u.FileLimit != nil {
		fileLimit = *u.FileLimit
	}
	if fileLimit > 0 {
		pct := percentOf(float64(u.FileCount), float64(fileLimit))
		if sev, ok := usageTier(pct); ok {
			typ := domain.EventUserFileLimitWarning
			title := "File Limit Warning"
			if sev == domain.SeverityCritical {
				typ = domain.EventUserFileLimitCritical
				title = "File Limit Critical"
			}
			pending = append(pending, &domain.Event{
				Type:     typ,
				Severity: sev,
				Title:    title,
				Message: fmt.Sprintf("User %s has uploaded %d of %d files (%.1f%%)",
					userLabel(u), u.FileCount, fileLimit, pct),
				Metadata: domain.Metadata{
					"fileCount":    u.FileCount,
					"fileLimit":    fileLimit,
					"usagePercent": round2(pct),
				},
			})
		}
	}

	var errs []error
	for _, ev := range pending {
		id := u.ID
		ev.UserID = &id
		if _, err := e.recorder.Create(ctx, ev); err != nil {
			errs = append(errs, fmt.Errorf("recording %s for user %s: %w", ev.Type, u.ID, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		metrics.EvaluationErrorsTotal.WithLabelValues("user").Inc()
		return err
	}
	return nil
}

func (e *Evaluator) recordLookupFailure(ctx context.Context, userID string, cause error) {
	id := userID
	_, err := e.recorder.Create(ctx, &domain.Event{
		Type:     domain.EventSystemError,
		Severity: domain.SeverityError,
		Title:    "User Check Failed",
		Message:  fmt.Sprintf("Failed to check storage usage for user %s: %v", userID, cause),
		Metadata: domain.Metadata{"userId": userID, "error": cause.Error()},
		UserID:   &id,
	})
	if err != nil {
		e.log.Error("recording user check failure failed", "user_id", userID, "error", err)
	}
}

// RunChecks runs one evaluation pass: the system check, then every user in
// turn. A failing user never stops the pass; all failures are returned joined.
func (e *Evaluator) RunChecks(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.EvaluationDuration.WithLabelValues("pass").Observe(time.Since(start).Seconds())
	}()

	var errs []error

	if err := e.EvaluateSystem(ctx); err != nil {
		e.log.Error("system check failed", "error", err)
		errs = append(errs, fmt.Errorf("system check: %w", err))
	}

	ids, err := e.users.ListUserIDs(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("listing users: %w", err))
		return errors.Join(errs...)
	}

	for _, id := range ids {
		if err := e.evaluateUserSafely(ctx, id); err != nil {
			e.log.Error("user check failed", "user_id", id, "error", err)
			errs = append(errs, fmt.Errorf("user %s: %w", id, err))
		}
	}

	e.log.Debug("evaluation pass complete", "users", len(ids), "duration", time.Since(start))
	return errors.Join(errs...)
}

func (e *Evaluator) evaluateUserSafely(ctx context.Context, userID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic evaluating user: %v", r)
		}
	}()
	return e.EvaluateUser(ctx, userID)
}

// usageTier maps a usage percentage to its severity, if any.
func usageTier(pct float64) (domain.Severity, bool) {
	switch {
	case pct >= usageCriticalThreshold:
		return domain.SeverityCritical, true
	case pct >= usageWarningThreshold:
		return domain.SeverityWarning, true
	default:
		return "", false
	}
}

func percentOf(used, limit float64) float64 {
	return used * 100 / limit
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func userLabel(u *domain.UserUsage) string {
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

func formatBytes(n int64) string {
	const unit = 1000
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "kMGTPE"[exp])
}
