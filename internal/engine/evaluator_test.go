package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/healthwatch/internal/events"
	"github.com/donaldgifford/healthwatch/internal/notify"
	notifymocks "github.com/donaldgifford/healthwatch/internal/notify/mocks"
	"github.com/donaldgifford/healthwatch/internal/store"
	storemocks "github.com/donaldgifford/healthwatch/internal/store/mocks"
	"github.com/donaldgifford/healthwatch/pkg/logger"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

func ptr[T any](v T) *T { return &v }

type fakeSampler struct {
	m    domain.SystemMetrics
	disk bool
}

func (f fakeSampler) Sample(context.Context) domain.SystemMetrics { return f.m }
func (f fakeSampler) DiskSampled() bool                           { return f.disk }

// fakeRecorder captures created events. failOn makes Create fail for one type.
type fakeRecorder struct {
	mu     sync.Mutex
	events []*domain.Event
	failOn domain.EventType
}

func (f *fakeRecorder) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && e.Type == f.failOn {
		return nil, errors.New("db down")
	}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeRecorder) all() []*domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Event(nil), f.events...)
}

func (f *fakeRecorder) types() []domain.EventType {
	var out []domain.EventType
	for _, e := range f.all() {
		out = append(out, e.Type)
	}
	return out
}

func newEvaluator(s MetricsSampler, users UsageStore, rec EventRecorder) *Evaluator {
	return NewEvaluator(s, users, rec, WithLogger(logger.Discard()))
}

func TestEvaluateSystem_Thresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		metrics domain.SystemMetrics
		disk    bool
		want    []domain.EventType
	}{
		{
			name:    "all below thresholds",
			metrics: domain.SystemMetrics{CPUUsage: 89.9, MemoryUsage: 89.9, DiskUsage: 79.9},
			disk:    true,
		},
		{
			name:    "cpu at threshold",
			metrics: domain.SystemMetrics{CPUUsage: 90},
			disk:    true,
			want:    []domain.EventType{domain.EventSystemCPUHigh},
		},
		{
			name:    "memory at threshold",
			metrics: domain.SystemMetrics{MemoryUsage: 90},
			disk:    true,
			want:    []domain.EventType{domain.EventSystemMemoryHigh},
		},
		{
			name:    "disk warning at 80",
			metrics: domain.SystemMetrics{DiskUsage: 80},
			disk:    true,
			want:    []domain.EventType{domain.EventSystemDiskWarning},
		},
		{
			name:    "disk warning just under critical",
			metrics: domain.SystemMetrics{DiskUsage: 94.9},
			disk:    true,
			want:    []domain.EventType{domain.EventSystemDiskWarning},
		},
		{
			name:    "disk critical replaces warning",
			metrics: domain.SystemMetrics{DiskUsage: 95},
			disk:    true,
			want:    []domain.EventType{domain.EventSystemDiskCritical},
		},
		{
			name:    "disk ignored when not sampled",
			metrics: domain.SystemMetrics{DiskUsage: 99},
			disk:    false,
		},
		{
			name:    "every condition breached",
			metrics: domain.SystemMetrics{CPUUsage: 99, MemoryUsage: 95, DiskUsage: 97},
			disk:    true,
			want: []domain.EventType{
				domain.EventSystemCPUHigh,
				domain.EventSystemMemoryHigh,
				domain.EventSystemDiskCritical,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &fakeRecorder{}
			ev := newEvaluator(fakeSampler{m: tt.metrics, disk: tt.disk}, nil, rec)

			require.NoError(t, ev.EvaluateSystem(context.Background()))
			assert.Equal(t, tt.want, rec.types())
		})
	}
}

func TestEvaluateSystem_EventShape(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	m := domain.SystemMetrics{CPUUsage: 93.456, MemoryUsage: 40, DiskUsage: 99}
	ev := newEvaluator(fakeSampler{m: m, disk: false}, nil, rec)

	require.NoError(t, ev.EvaluateSystem(context.Background()))

	got := rec.all()
	require.Len(t, got, 1)
	e := got[0]
	assert.Equal(t, domain.SeverityWarning, e.Severity)
	assert.Equal(t, "High CPU Usage", e.Title)
	assert.Equal(t, "CPU usage is at 93.5%", e.Message)
	assert.InDelta(t, 93.46, e.Metadata["cpuUsage"], 0.001)
	require.NotNil(t, e.CPUUsage)
	assert.InDelta(t, 93.456, *e.CPUUsage, 0.0001)
	require.NotNil(t, e.MemoryUsage)
	assert.Nil(t, e.DiskUsage, "disk is not attached when it was not sampled")
	assert.Nil(t, e.UserID)
}

func TestEvaluateSystem_RecordFailureDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{failOn: domain.EventSystemCPUHigh}
	ev := newEvaluator(fakeSampler{
		m:    domain.SystemMetrics{CPUUsage: 95, MemoryUsage: 95},
		disk: true,
	}, nil, rec)

	err := ev.EvaluateSystem(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYSTEM_CPU_HIGH")
	assert.Equal(t, []domain.EventType{domain.EventSystemMemoryHigh}, rec.types())
}

func TestEvaluateUser_Tiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		usage       domain.UserUsage
		want        []domain.EventType
		wantPercent float64
	}{
		{
			name:  "storage just under warning",
			usage: domain.UserUsage{StorageUsed: 799, StorageLimit: ptr(int64(1000))},
		},
		{
			name:        "storage warning at 80",
			usage:       domain.UserUsage{StorageUsed: 800, StorageLimit: ptr(int64(1000))},
			want:        []domain.EventType{domain.EventUserStorageWarning},
			wantPercent: 80,
		},
		{
			name:        "storage warning just under critical",
			usage:       domain.UserUsage{StorageUsed: 949, StorageLimit: ptr(int64(1000))},
			want:        []domain.EventType{domain.EventUserStorageWarning},
			wantPercent: 94.9,
		},
		{
			name:        "storage critical at 95",
			usage:       domain.UserUsage{StorageUsed: 950, StorageLimit: ptr(int64(1000))},
			want:        []domain.EventType{domain.EventUserStorageCritical},
			wantPercent: 95,
		},
		{
			name:        "default storage limit applies",
			usage:       domain.UserUsage{StorageUsed: 9_900_000_000},
			want:        []domain.EventType{domain.EventUserStorageCritical},
			wantPercent: 99,
		},
		{
			name:  "zero storage limit is skipped",
			usage: domain.UserUsage{StorageUsed: 5000, StorageLimit: ptr(int64(0))},
		},
		{
			name:        "file warning at 80",
			usage:       domain.UserUsage{FileCount: 8, FileLimit: ptr(10)},
			want:        []domain.EventType{domain.EventUserFileLimitWarning},
			wantPercent: 80,
		},
		{
			name:        "file critical with default limit",
			usage:       domain.UserUsage{FileCount: 1000},
			want:        []domain.EventType{domain.EventUserFileLimitCritical},
			wantPercent: 100,
		},
		{
			name: "storage and files both breached",
			usage: domain.UserUsage{
				StorageUsed:  960,
				StorageLimit: ptr(int64(1000)),
				FileCount:    85,
				FileLimit:    ptr(100),
			},
			want: []domain.EventType{
				domain.EventUserStorageCritical,
				domain.EventUserFileLimitWarning,
			},
			wantPercent: 96,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u := tt.usage
			u.ID = "u1"

			ms := storemocks.NewMockStore(t)
			ms.EXPECT().GetUserUsage(mock.Anything, "u1").Return(&u, nil).Once()
			ms.EXPECT().UpdateUserStorageUsed(mock.Anything, "u1", u.StorageUsed).Return(nil).Once()

			rec := &fakeRecorder{}
			ev := newEvaluator(fakeSampler{}, ms, rec)

			require.NoError(t, ev.EvaluateUser(context.Background(), "u1"))
			assert.Equal(t, tt.want, rec.types())

			got := rec.all()
			if len(got) == 0 {
				return
			}
			assert.InDelta(t, tt.wantPercent, got[0].Metadata["usagePercent"], 0.001)
			for _, e := range got {
				require.NotNil(t, e.UserID)
				assert.Equal(t, "u1", *e.UserID)
			}
		})
	}
}

func TestEvaluateUser_StorageMetadata(t *testing.T) {
	t.Parallel()

	ms := storemocks.NewMockStore(t)
	ms.EXPECT().GetUserUsage(mock.Anything, "u1").Return(&domain.UserUsage{
		ID:           "u1",
		Email:        "alice@example.com",
		StorageUsed:  850,
		StorageLimit: ptr(int64(1000)),
	}, nil).Once()
	ms.EXPECT().UpdateUserStorageUsed(mock.Anything, "u1", int64(850)).Return(nil).Once()

	rec := &fakeRecorder{}
	ev := newEvaluator(fakeSampler{}, ms, rec)
	require.NoError(t, ev.EvaluateUser(context.Background(), "u1"))

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, domain.Metadata{
		"storageUsed":  int64(850),
		"storageLimit": int64(1000),
		"usagePercent": 85.0,
	}, got[0].Metadata)
	assert.Contains(t, got[0].Message, "alice@example.com")
}

func TestEvaluateUser_LookupFailureRecordsSystemError(t *testing.T) {
	t.Parallel()

	ms := storemocks.NewMockStore(t)
	ms.EXPECT().GetUserUsage(mock.Anything, "u1").Return(nil, store.ErrNotFound).Once()

	rec := &fakeRecorder{}
	ev := newEvaluator(fakeSampler{}, ms, rec)

	require.NoError(t, ev.EvaluateUser(context.Background(), "u1"))

	got := rec.all()
	require.Len(t, got, 1)
	assert.Equal(t, domain.EventSystemError, got[0].Type)
	assert.Equal(t, domain.SeverityError, got[0].Severity)
	assert.Equal(t, "u1", got[0].Metadata["userId"])
}

func TestEvaluateUser_RefreshFailurePropagates(t *testing.T) {
	t.Parallel()

	ms := storemocks.NewMockStore(t)
	ms.EXPECT().GetUserUsage(mock.Anything, "u1").
		Return(&domain.UserUsage{ID: "u1", StorageUsed: 990, StorageLimit: ptr(int64(1000))}, nil).Once()
	ms.EXPECT().UpdateUserStorageUsed(mock.Anything, "u1", int64(990)).Return(errors.New("db down")).Once()

	rec := &fakeRecorder{}
	ev := newEvaluator(fakeSampler{}, ms, rec)

	err := ev.EvaluateUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refreshing storage used")
	assert.Empty(t, rec.all())
}

func TestRunChecks_PerUserIsolation(t *testing.T) {
	t.Parallel()

	critical := func(id string) *domain.UserUsage {
		return &domain.UserUsage{ID: id, StorageUsed: 990, StorageLimit: ptr(int64(1000))}
	}

	ms := storemocks.NewMockStore(t)
	ms.EXPECT().ListUserIDs(mock.Anything).Return([]string{"a", "b", "c"}, nil).Once()
	ms.EXPECT().GetUserUsage(mock.Anything, "a").Return(critical("a"), nil).Once()
	ms.EXPECT().GetUserUsage(mock.Anything, "b").Return(nil, errors.New("query failed")).Once()
	ms.EXPECT().GetUserUsage(mock.Anything, "c").Return(critical("c"), nil).Once()
	ms.EXPECT().UpdateUserStorageUsed(mock.Anything, mock.Anything, int64(990)).Return(nil).Times(2)

	rec := &fakeRecorder{}
	ev := newEvaluator(fakeSampler{}, ms, rec)

	require.NoError(t, ev.RunChecks(context.Background()))

	got := rec.all()
	require.Len(t, got, 3)
	assert.Equal(t, domain.EventUserStorageCritical, got[0].Type)
	assert.Equal(t, "a", *got[0].UserID)
	assert.Equal(t, domain.EventSystemError, got[1].Type)
	assert.Equal(t, "b", *got[1].UserID)
	assert.Equal(t, domain.EventUserStorageCritical, got[2].Type)
	assert.Equal(t, "c", *got[2].UserID)
}

func TestRunChecks_UserErrorsAreJoined(t *testing.T) {
	t.Parallel()

	ms := storemocks.NewMockStore(t)
	ms.EXPECT().ListUserIDs(mock.Anything).Return([]string{"a", "b"}, nil).Once()
	ms.EXPECT().GetUserUsage(mock.Anything, "a").Return(&domain.UserUsage{ID: "a"}, nil).Once()
	ms.EXPECT().GetUserUsage(mock.Anything, "b").Return(&domain.UserUsage{ID: "b"}, nil).Once()
	ms.EXPECT().UpdateUserStorageUsed(mock.Anything, "a", int64(0)).Return(errors.New("locked")).Once()
	ms.EXPECT().UpdateUserStorageUsed(mock.Anything, "b", int64(0)).Return(nil).Once()

	ev := newEvaluator(fakeSampler{}, ms, &fakeRecorder{})

	err := ev.RunChecks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user a")
	assert.NotContains(t, err.Error(), "user b")
}

func TestRunChecks_ListUsersFailure(t *testing.T) {
	t.Parallel()

	ms := storemocks.NewMockStore(t)
	ms.EXPECT().ListUserIDs(mock.Anything).Return(nil, errors.New("conn refused")).Once()

	rec := &fakeRecorder{}
	ev := newEvaluator(fakeSampler{m: domain.SystemMetrics{CPUUsage: 97}}, ms, rec)

	err := ev.RunChecks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing users")
	assert.Equal(t, []domain.EventType{domain.EventSystemCPUHigh}, rec.types(),
		"system check runs before users are listed")
}

func TestRunChecks_CriticalStorageEndToEnd(t *testing.T) {
	t.Parallel()

	ms := storemocks.NewMockStore(t)
	mn := notifymocks.NewMockNotifier(t)
	svc := events.NewService(ms, mn, logger.Discard())

	ms.EXPECT().ListUserIDs(mock.Anything).Return([]string{"u1"}, nil).Once()
	ms.EXPECT().GetUserUsage(mock.Anything, "u1").Return(&domain.UserUsage{
		ID:          "u1",
		Email:       "alice@example.com",
		StorageUsed: 9_900_000_000,
		FileCount:   12,
	}, nil).Once()
	ms.EXPECT().UpdateUserStorageUsed(mock.Anything, "u1", int64(9_900_000_000)).Return(nil).Once()

	var stored []*domain.Event
	ms.EXPECT().CreateEvent(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, e *domain.Event) error {
			e.ID = "evt-1"
			stored = append(stored, e)
			return nil
		}).Once()
	ms.EXPECT().GetUserEmail(mock.Anything, "u1").Return("alice@example.com", nil).Once()
	mn.EXPECT().DeliverEvent(mock.Anything, mock.MatchedBy(func(p *notify.EventPayload) bool {
		return p.Type == domain.EventUserStorageCritical &&
			p.Severity == domain.SeverityCritical &&
			p.UserEmail == "alice@example.com"
	})).Return(true).Once()

	ev := NewEvaluator(fakeSampler{m: domain.SystemMetrics{CPUUsage: 10, MemoryUsage: 20}}, ms, svc,
		WithLogger(logger.Discard()),
		WithDefaultLimits(10_000_000_000, 1000),
	)

	require.NoError(t, ev.RunChecks(context.Background()))

	require.Len(t, stored, 1)
	assert.Equal(t, domain.EventUserStorageCritical, stored[0].Type)
	assert.InDelta(t, 99.0, stored[0].Metadata["usagePercent"], 0.001)
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1500, "1.5 kB"},
		{9_900_000_000, "9.9 GB"},
		{10_000_000_000, "10.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.in))
	}
}
