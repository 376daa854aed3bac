// Package store defines the datastore abstraction for healthwatch.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// EventQuery defines optional filters for recent-event queries.
type EventQuery struct {
	Severity *domain.Severity
	UserID   *string
	Limit    int // default 50, max 500
}

// Store defines all data access operations for healthwatch.
type Store interface {
	// Events
	CreateEvent(ctx context.Context, e *domain.Event) error
	ListRecentEvents(ctx context.Context, q *EventQuery) ([]domain.Event, error)
	CountEventsBySeverity(ctx context.Context, since time.Time) (map[domain.Severity]int, error)
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int, error)
	DeleteEvent(ctx context.Context, id string) (bool, error)
	DeleteAllEvents(ctx context.Context, severity *domain.Severity) (int, error)
	DeleteEventsBySeverity(ctx context.Context, severities []domain.Severity) (int, error)

	// Alert rules
	UpsertAlertRule(ctx context.Context, r *domain.AlertRule) error
	ListAlertRules(ctx context.Context) ([]domain.AlertRule, error)

	// Host application users
	ListUserIDs(ctx context.Context) ([]string, error)
	GetUserUsage(ctx context.Context, userID string) (*domain.UserUsage, error)
	UpdateUserStorageUsed(ctx context.Context, userID string, used int64) error
	GetUserEmail(ctx context.Context, userID string) (string, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
