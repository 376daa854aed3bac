package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const baseEventsSelect = `SELECT id, type, severity, title, message, COALESCE(metadata, '{}'),
	user_id, cpu_usage, memory_usage, disk_usage, created_at
FROM events`

// EffectiveLimit returns the row limit applied to the query after defaulting
// and clamping.
func (q *EventQuery) EffectiveLimit() int {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// ToSQL builds the SELECT with its WHERE clause, newest-first ordering and
// LIMIT, and returns it with its positional parameters.
func (q *EventQuery) ToSQL() (query string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Severity != nil {
		conditions = append(conditions, fmt.Sprintf("severity = $%d", paramIdx))
		args = append(args, string(*q.Severity))
		paramIdx++
	}

	if q.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", paramIdx))
		args = append(args, *q.UserID)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query = fmt.Sprintf(
		"%s%s ORDER BY created_at DESC, id DESC LIMIT %d",
		baseEventsSelect, whereClause, q.EffectiveLimit(),
	)

	return query, args
}
