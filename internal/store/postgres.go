package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Pool size comes from the pool_max_conns parameter of the connection string.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateEvent inserts an event and fills in its database-assigned ID and
// creation time.
func (s *PostgresStore) CreateEvent(ctx context.Context, e *domain.Event) error {
	meta := e.Metadata
	if meta == nil {
		meta = domain.Metadata{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling event metadata: %w", err)
	}

	args := pgx.NamedArgs{
		"type":         string(e.Type),
		"severity":     string(e.Severity),
		"title":        e.Title,
		"message":      e.Message,
		"metadata":     metaJSON,
		"user_id":      e.UserID,
		"cpu_usage":    e.CPUUsage,
		"memory_usage": e.MemoryUsage,
		"disk_usage":   e.DiskUsage,
	}

	if err := s.pool.QueryRow(ctx, queryCreateEvent, args).Scan(&e.ID, &e.CreatedAt); err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// ListRecentEvents returns events newest first, filtered by q.
func (s *PostgresStore) ListRecentEvents(ctx context.Context, q *EventQuery) ([]domain.Event, error) {
	if q == nil {
		q = &EventQuery{}
	}
	sql, args := q.ToSQL()

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0, q.EffectiveLimit())
	for rows.Next() {
		var e domain.Event
		if err := scanEventRow(rows, &e); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return events, nil
}

// CountEventsBySeverity counts events created at or after since, grouped by
// severity. Severities with no events are absent from the map.
func (s *PostgresStore) CountEventsBySeverity(
	ctx context.Context,
	since time.Time,
) (map[domain.Severity]int, error) {
	rows, err := s.pool.Query(ctx, queryCountEventsBySeverity, since)
	if err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Severity]int)
	for rows.Next() {
		var (
			sev   string
			count int
		)
		if err := rows.Scan(&sev, &count); err != nil {
			return nil, fmt.Errorf("scanning event count: %w", err)
		}
		counts[domain.Severity(sev)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event counts: %w", err)
	}

	return counts, nil
}

// DeleteEventsBefore removes every event created strictly before cutoff.
func (s *PostgresStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, queryDeleteEventsBefore, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting events before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteEvent removes one event. It reports false when no event has that ID,
// including IDs that are not valid UUIDs.
func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	tag, err := s.pool.Exec(ctx, queryDeleteEvent, id)
	if err != nil {
		return false, fmt.Errorf("deleting event %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAllEvents removes every event, or only those of one severity.
func (s *PostgresStore) DeleteAllEvents(ctx context.Context, severity *domain.Severity) (int, error) {
	var (
		sql  = queryDeleteAllEvents
		args []any
	)
	if severity != nil {
		sql = queryDeleteEventsWithSeverity
		args = append(args, string(*severity))
	}

	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting events: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteEventsBySeverity removes every event whose severity is in severities.
func (s *PostgresStore) DeleteEventsBySeverity(
	ctx context.Context,
	severities []domain.Severity,
) (int, error) {
	if len(severities) == 0 {
		return 0, nil
	}

	values := make([]string, len(severities))
	for i, sev := range severities {
		values[i] = string(sev)
	}

	tag, err := s.pool.Exec(ctx, queryDeleteEventsBySeverities, values)
	if err != nil {
		return 0, fmt.Errorf("deleting events by severity: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// UpsertAlertRule inserts the rule when neither its ID nor its event type
// exists yet. Existing rows are left untouched.
func (s *PostgresStore) UpsertAlertRule(ctx context.Context, r *domain.AlertRule) error {
	args := pgx.NamedArgs{
		"id":         r.ID,
		"event_type": string(r.EventType),
		"name":       r.Name,
		"threshold":  r.Threshold,
		"enabled":    r.Enabled,
	}

	if _, err := s.pool.Exec(ctx, queryInsertAlertRuleIfMissing, args); err != nil {
		return fmt.Errorf("seeding alert rule %s: %w", r.ID, err)
	}
	return nil
}

// ListAlertRules returns every alert rule ordered by event type.
func (s *PostgresStore) ListAlertRules(ctx context.Context) ([]domain.AlertRule, error) {
	rows, err := s.pool.Query(ctx, queryListAlertRules)
	if err != nil {
		return nil, fmt.Errorf("querying alert rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.AlertRule
	for rows.Next() {
		var r domain.AlertRule
		if err := rows.Scan(
			&r.ID, &r.EventType, &r.Name, &r.Threshold, &r.Enabled, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning alert rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alert rules: %w", err)
	}

	return rules, nil
}

// ListUserIDs returns the ID of every user of the host application.
func (s *PostgresStore) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, queryListUserIDs)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collecting user ids: %w", err)
	}
	return ids, nil
}

// GetUserUsage sums a user's uploads and returns them with the user's limits.
func (s *PostgresStore) GetUserUsage(ctx context.Context, userID string) (*domain.UserUsage, error) {
	u := &domain.UserUsage{}
	err := s.pool.QueryRow(ctx, queryGetUserUsage, userID).Scan(
		&u.ID, &u.Email, &u.StorageUsed, &u.FileCount, &u.StorageLimit, &u.FileLimit,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading usage for user %s: %w", userID, err)
	}
	return u, nil
}

// UpdateUserStorageUsed writes the cached storage-used counter for a user.
func (s *PostgresStore) UpdateUserStorageUsed(ctx context.Context, userID string, used int64) error {
	if _, err := s.pool.Exec(ctx, queryUpsertUserStorageUsed, userID, used); err != nil {
		return fmt.Errorf("updating storage used for user %s: %w", userID, err)
	}
	return nil
}

// GetUserEmail returns the email address of a user.
func (s *PostgresStore) GetUserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := s.pool.QueryRow(ctx, queryGetUserEmail, userID).Scan(&email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("loading email for user %s: %w", userID, err)
	}
	return email, nil
}

func scanEventRow(rows pgx.Rows, e *domain.Event) error {
	var metaJSON []byte
	if err := rows.Scan(
		&e.ID, &e.Type, &e.Severity, &e.Title, &e.Message, &metaJSON,
		&e.UserID, &e.CPUUsage, &e.MemoryUsage, &e.DiskUsage, &e.CreatedAt,
	); err != nil {
		return err
	}

	if len(metaJSON) > 0 {
		if err := json.Unmarshal(metaJSON, &e.Metadata); err != nil {
			return fmt.Errorf("decoding metadata: %w", err)
		}
	}
	return nil
}
