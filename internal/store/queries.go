package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Event queries.
const (
	queryCreateEvent = `
		INSERT INTO events (
			type, severity, title, message, metadata,
			user_id, cpu_usage, memory_usage, disk_usage
		) VALUES (
			@type, @severity, @title, @message, @metadata,
			@user_id, @cpu_usage, @memory_usage, @disk_usage
		)
		RETURNING id, created_at`

	queryCountEventsBySeverity = `
		SELECT severity, COUNT(*)
		FROM events
		WHERE created_at >= $1
		GROUP BY severity`

	queryDeleteEventsBefore = `DELETE FROM events WHERE created_at < $1`

	queryDeleteEvent = `DELETE FROM events WHERE id = $1`

	queryDeleteAllEvents = `DELETE FROM events`

	queryDeleteEventsWithSeverity = `DELETE FROM events WHERE severity = $1`

	queryDeleteEventsBySeverities = `DELETE FROM events WHERE severity = ANY($1)`
)

// Alert rule queries.
const (
	queryInsertAlertRuleIfMissing = `
		INSERT INTO alert_rules (id, event_type, name, threshold, enabled)
		VALUES (@id, @event_type, @name, @threshold, @enabled)
		ON CONFLICT DO NOTHING`

	queryListAlertRules = `
		SELECT id, event_type, name, threshold, enabled, created_at, updated_at
		FROM alert_rules
		ORDER BY event_type`
)

// Host application user queries.
const (
	queryListUserIDs = `SELECT id FROM users ORDER BY id`

	queryGetUserUsage = `
		SELECT u.id, u.email,
			COALESCE(SUM(up.size), 0)::BIGINT,
			COUNT(up.id),
			u.storage_limit, u.max_uploads
		FROM users u
		LEFT JOIN uploads up ON up.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id, u.email, u.storage_limit, u.max_uploads`

	queryUpsertUserStorageUsed = `
		INSERT INTO user_settings (user_id, storage_used, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			storage_used = EXCLUDED.storage_used,
			updated_at = now()`

	queryGetUserEmail = `SELECT email FROM users WHERE id = $1`
)
