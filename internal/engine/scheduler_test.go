package engine

import (
	"context"
	"errors"
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

type fakeChecks struct {
	calls atomic.Int32
	err   error
	panic bool
}

func (f *fakeChecks) RunChecks(context.Context) error {
	f.calls.Add(1)
	if f.panic {
		panic("sampler exploded")
	}
	return f.err
}

type fakeCleaner struct {
	days    atomic.Int32
	deleted int
	err     error
}

func (f *fakeCleaner) DeleteOlderThan(_ context.Context, days int) (int, error) {
	f.days.Store(int32(days))
	return f.deleted, f.err
}

func newTestScheduler(
	t *testing.T,
	checks CheckRunner,
	cleaner RetentionCleaner,
	rec EventRecorder,
	opts ...SchedulerOption,
) *Scheduler {
	t.Helper()

	opts = append([]SchedulerOption{
		WithCheckInterval(time.Hour),
		WithCleanupInterval(24 * time.Hour),
	}, opts...)
	s, err := NewScheduler(checks, cleaner, rec, logger.Discard(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { <-s.Stop().Done() })
	return s
}

func TestNewScheduler_RejectsShortIntervals(t *testing.T) {
	t.Parallel()

	_, err := NewScheduler(&fakeChecks{}, &fakeCleaner{}, &fakeRecorder{}, logger.Discard(),
		WithCheckInterval(100*time.Millisecond))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check interval")

	_, err = NewScheduler(&fakeChecks{}, &fakeCleaner{}, &fakeRecorder{}, logger.Discard(),
		WithCleanupInterval(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup interval")
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	t.Parallel()

	checks := &fakeChecks{}
	s := newTestScheduler(t, checks, &fakeCleaner{}, &fakeRecorder{})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))

	assert.Equal(t, 2, s.entryCount())
	assert.Equal(t, int32(1), checks.calls.Load(), "only the first start runs a pass")
	assert.True(t, s.Running())
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{}, &fakeRecorder{})

	ctx := s.Stop()
	select {
	case <-ctx.Done():
	default:
		t.Fatal("stop on a stopped scheduler should return a done context")
	}
	assert.False(t, s.Running())
	assert.Zero(t, s.entryCount())
}

func TestScheduler_StartStopRestart(t *testing.T) {
	t.Parallel()

	s := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{}, &fakeRecorder{},
		WithRetentionDays(7))

	require.NoError(t, s.Start(context.Background()))

	st := s.Status()
	assert.True(t, st.Running)
	require.NotNil(t, st.NextCheck)
	require.NotNil(t, st.NextCleanup)
	assert.True(t, st.NextCheck.Before(*st.NextCleanup))
	assert.Equal(t, time.Hour, st.CheckInterval)
	assert.Equal(t, 24*time.Hour, st.CleanupInterval)
	assert.Equal(t, 7, st.RetentionDays)

	ctx := s.Stop()
	<-ctx.Done()

	st = s.Status()
	assert.False(t, st.Running)
	assert.Nil(t, st.NextCheck)
	assert.Nil(t, st.NextCleanup)

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 2, s.entryCount())
}

// Not parallel: the running gauge is shared by every scheduler in the process.
func TestScheduler_RunningGaugeCountsInstances(t *testing.T) {
	base := testutil.ToFloat64(metrics.SchedulerRunning)

	a := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{}, &fakeRecorder{}, WithRunOnStart(false))
	b := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{}, &fakeRecorder{}, WithRunOnStart(false))

	require.NoError(t, a.Start(context.Background()))
	require.NoError(t, b.Start(context.Background()))
	require.NoError(t, b.Start(context.Background()))
	assert.InDelta(t, base+2, testutil.ToFloat64(metrics.SchedulerRunning), 0.001)

	<-a.Stop().Done()
	<-a.Stop().Done()
	assert.InDelta(t, base+1, testutil.ToFloat64(metrics.SchedulerRunning), 0.001)
	assert.True(t, b.Running())

	<-b.Stop().Done()
	assert.InDelta(t, base, testutil.ToFloat64(metrics.SchedulerRunning), 0.001)
}

func TestScheduler_RunOnStartDisabled(t *testing.T) {
	t.Parallel()

	checks := &fakeChecks{}
	s := newTestScheduler(t, checks, &fakeCleaner{}, &fakeRecorder{}, WithRunOnStart(false))

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, int32(0), checks.calls.Load())
	assert.True(t, s.Running())
}

func TestScheduler_InitialPassFailureKeepsRunning(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newTestScheduler(t, &fakeChecks{err: errors.New("db down")}, &fakeCleaner{}, rec)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Running())
	assert.Equal(t, 2, s.entryCount())

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, domain.EventSystemError, got[0].Type)
	assert.Equal(t, domain.SeverityError, got[0].Severity)
	assert.Equal(t, "check", got[0].Metadata["job"])
	assert.Contains(t, got[0].Message, "db down")
}

func TestScheduler_TickConvertsFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		checks    *fakeChecks
		wantEvent bool
		wantMsg   string
	}{
		{name: "success records nothing", checks: &fakeChecks{}},
		{
			name:      "error becomes system error",
			checks:    &fakeChecks{err: errors.New("query timeout")},
			wantEvent: true,
			wantMsg:   "query timeout",
		},
		{
			name:      "panic becomes system error",
			checks:    &fakeChecks{panic: true},
			wantEvent: true,
			wantMsg:   "panic: sampler exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &fakeRecorder{}
			s := newTestScheduler(t, tt.checks, &fakeCleaner{}, rec)

			assert.NotPanics(t, func() {
				s.tick(context.Background(), jobCheck, tt.checks.RunChecks)
			})

			got := rec.all()
			if !tt.wantEvent {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, domain.EventSystemError, got[0].Type)
			assert.Contains(t, got[0].Message, tt.wantMsg)
		})
	}
}

func TestScheduler_CleanupUsesRetention(t *testing.T) {
	t.Parallel()

	cleaner := &fakeCleaner{deleted: 12}
	rec := &fakeRecorder{}
	s := newTestScheduler(t, &fakeChecks{}, cleaner, rec, WithRetentionDays(14))

	s.tick(context.Background(), jobCleanup, s.runCleanup)

	assert.Equal(t, int32(14), cleaner.days.Load())
	assert.Empty(t, rec.all())
}

func TestScheduler_CleanupFailure(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	s := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{err: errors.New("locked")}, rec)

	s.tick(context.Background(), jobCleanup, s.runCleanup)

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, "cleanup", got[0].Metadata["job"])
}

func TestScheduler_IndependentInstances(t *testing.T) {
	t.Parallel()

	a := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{}, &fakeRecorder{})
	b := newTestScheduler(t, &fakeChecks{}, &fakeCleaner{}, &fakeRecorder{})

	require.NoError(t, a.Start(context.Background()))
	assert.True(t, a.Running())
	assert.False(t, b.Running())

	<-a.Stop().Done()
	assert.False(t, a.Running())
}
