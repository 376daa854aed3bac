package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/healthwatch/internal/metrics"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

const (
	jobCheck   = "check"
	jobCleanup = "cleanup"

	defaultCheckInterval   = 5 * time.Minute
	defaultCleanupInterval = 24 * time.Hour
	defaultRetentionDays   = 30
)

// CheckRunner runs one full evaluation pass.
type CheckRunner interface {
	RunChecks(ctx context.Context) error
}

// RetentionCleaner deletes events older than a number of days.
type RetentionCleaner interface {
	DeleteOlderThan(ctx context.Context, days int) (int, error)
}

// Status describes the scheduler for the admin surface.
type Status struct {
	Running         bool          `json:"running"`
	NextCheck       *time.Time    `json:"next_check,omitempty"`
	NextCleanup     *time.Time    `json:"next_cleanup,omitempty"`
	CheckInterval   time.Duration `json:"check_interval"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
	RetentionDays   int           `json:"retention_days"`
}

// Scheduler runs evaluation passes and retention cleanup periodically.
type Scheduler struct {
	checks   CheckRunner
	cleaner  RetentionCleaner
	recorder EventRecorder
	log      *slog.Logger

	checkInterval   time.Duration
	cleanupInterval time.Duration
	retentionDays   int
	runOnStart      bool

	mu           sync.Mutex
	cron         *cron.Cron
	checkEntry   cron.EntryID
	cleanupEntry cron.EntryID
	counted      bool // whether this instance holds a SchedulerRunning increment
}

// SchedulerOption configures the Scheduler.
type SchedulerOption func(*Scheduler)

// WithCheckInterval sets how often evaluation passes run.
func WithCheckInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.checkInterval = d
	}
}

// WithCleanupInterval sets how often retention cleanup runs.
func WithCleanupInterval(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.cleanupInterval = d
	}
}

// WithRetentionDays sets how many days of events cleanup keeps.
func WithRetentionDays(days int) SchedulerOption {
	return func(s *Scheduler) {
		s.retentionDays = days
	}
}

// WithRunOnStart controls whether Start runs a pass before arming the timers.
func WithRunOnStart(enabled bool) SchedulerOption {
	return func(s *Scheduler) {
		s.runOnStart = enabled
	}
}

// NewScheduler creates a stopped Scheduler.
func NewScheduler(
	checks CheckRunner,
	cleaner RetentionCleaner,
	rec EventRecorder,
	log *slog.Logger,
	opts ...SchedulerOption,
) (*Scheduler, error) {
	s := &Scheduler{
		checks:          checks,
		cleaner:         cleaner,
		recorder:        rec,
		log:             log,
		checkInterval:   defaultCheckInterval,
		cleanupInterval: defaultCleanupInterval,
		retentionDays:   defaultRetentionDays,
		runOnStart:      true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.checkInterval < time.Second {
		return nil, fmt.Errorf("check interval must be at least 1s (got %s)", s.checkInterval)
	}
	if s.cleanupInterval < time.Second {
		return nil, fmt.Errorf("cleanup interval must be at least 1s (got %s)", s.cleanupInterval)
	}
	return s, nil
}

// Start runs one evaluation pass immediately and then arms the check and
// cleanup timers. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.cron != nil {
		s.mu.Unlock()
		s.log.Info("scheduler already running")
		return nil
	}

	c := cron.New()
	checkID, err := c.AddFunc("@every "+s.checkInterval.String(), func() {
		s.tick(ctx, jobCheck, s.checks.RunChecks)
	})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("scheduling checks: %w", err)
	}
	cleanupID, err := c.AddFunc("@every "+s.cleanupInterval.String(), func() {
		s.tick(ctx, jobCleanup, s.runCleanup)
	})
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("scheduling cleanup: %w", err)
	}

	s.cron = c
	s.checkEntry = checkID
	s.cleanupEntry = cleanupID
	s.mu.Unlock()

	if s.runOnStart {
		s.tick(ctx, jobCheck, s.checks.RunChecks)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Stop may have run during the initial pass.
	if s.cron != c {
		return nil
	}
	c.Start()
	s.counted = true
	metrics.SchedulerRunning.Inc()
	s.log.Info("scheduler started",
		"check_interval", s.checkInterval,
		"cleanup_interval", s.cleanupInterval,
		"retention_days", s.retentionDays,
	)
	return nil
}

// Stop cancels both timers. The returned context is done once any running
// job has finished. Stopping a stopped scheduler does nothing.
func (s *Scheduler) Stop() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	s.log.Info("scheduler stopping")
	ctx := s.cron.Stop()
	s.cron = nil
	if s.counted {
		s.counted = false
		metrics.SchedulerRunning.Dec()
	}
	return ctx
}

// Running reports whether the timers are armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil
}

// entryCount returns how many timers are armed.
func (s *Scheduler) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

// Status reports whether the scheduler is running and when each job fires next.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		Running:         s.cron != nil,
		CheckInterval:   s.checkInterval,
		CleanupInterval: s.cleanupInterval,
		RetentionDays:   s.retentionDays,
	}
	if s.cron != nil {
		st.NextCheck = nextRun(s.cron.Entry(s.checkEntry))
		st.NextCleanup = nextRun(s.cron.Entry(s.cleanupEntry))
	}
	return st
}

func nextRun(e cron.Entry) *time.Time {
	if e.Next.IsZero() {
		return nil
	}
	next := e.Next
	return &next
}

func (s *Scheduler) runCleanup(ctx context.Context) error {
	n, err := s.cleaner.DeleteOlderThan(ctx, s.retentionDays)
	if err != nil {
		return err
	}
	s.log.Info("retention cleanup complete", "deleted", n, "retention_days", s.retentionDays)
	return nil
}

// tick runs one job. Errors and panics are recorded as a SYSTEM_ERROR event
// and never escape.
func (s *Scheduler) tick(ctx context.Context, job string, fn func(context.Context) error) {
	start := time.Now()
	err := safeRun(ctx, fn)
	if err == nil {
		metrics.SchedulerTicksTotal.WithLabelValues(job, "success").Inc()
		s.log.Debug("scheduled job complete", "job", job, "duration", time.Since(start))
		return
	}

	metrics.SchedulerTicksTotal.WithLabelValues(job, "failure").Inc()
	s.log.Error("scheduled job failed", "job", job, "error", err)

	_, rerr := s.recorder.Create(ctx, &domain.Event{
		Type:     domain.EventSystemError,
		Severity: domain.SeverityError,
		Title:    "Scheduled Monitoring Failed",
		Message:  fmt.Sprintf("Scheduled %s failed: %v", job, err),
		Metadata: domain.Metadata{"job": job, "error": err.Error()},
	})
	if rerr != nil {
		s.log.Error("recording scheduler failure failed", "job", job, "error", rerr)
	}
}

func safeRun(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}
