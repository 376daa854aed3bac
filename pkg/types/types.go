// Package domain defines the core types for the healthwatch monitoring engine.
package domain

import (
	"strings"
	"time"
)

// Severity is the ordered importance of an event.
type Severity string

// Severity constants, lowest first.
const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityError    Severity = "ERROR"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists every severity in ascending order.
var Severities = []Severity{SeverityInfo, SeverityWarning, SeverityError, SeverityCritical}

// Rank returns the position of s in the severity order (INFO=0 .. CRITICAL=3),
// or -1 for unknown values.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	case SeverityCritical:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// ParseSeverity converts a case-insensitive string to a Severity.
func ParseSeverity(v string) (Severity, bool) {
	s := Severity(strings.ToUpper(strings.TrimSpace(v)))
	return s, s.Valid()
}

// EventType identifies which condition produced an event.
type EventType string

// Event type constants.
const (
	EventSystemCPUHigh         EventType = "SYSTEM_CPU_HIGH"
	EventSystemMemoryHigh      EventType = "SYSTEM_MEMORY_HIGH"
	EventSystemDiskWarning     EventType = "SYSTEM_DISK_WARNING"
	EventSystemDiskCritical    EventType = "SYSTEM_DISK_CRITICAL"
	EventUserStorageWarning    EventType = "USER_STORAGE_WARNING"
	EventUserStorageCritical   EventType = "USER_STORAGE_CRITICAL"
	EventUserFileLimitWarning  EventType = "USER_FILE_LIMIT_WARNING"
	EventUserFileLimitCritical EventType = "USER_FILE_LIMIT_CRITICAL"
	EventSystemError           EventType = "SYSTEM_ERROR"
	EventBulkStorageCleanup    EventType = "BULK_STORAGE_CLEANUP"
	EventUserRegistration      EventType = "USER_REGISTRATION"
	EventUserApproved          EventType = "USER_APPROVED"
	EventFileUploadFailed      EventType = "FILE_UPLOAD_FAILED"
	EventSecurityAlert         EventType = "SECURITY_ALERT"
)

// EventTypes lists every known event type.
var EventTypes = []EventType{
	EventSystemCPUHigh,
	EventSystemMemoryHigh,
	EventSystemDiskWarning,
	EventSystemDiskCritical,
	EventUserStorageWarning,
	EventUserStorageCritical,
	EventUserFileLimitWarning,
	EventUserFileLimitCritical,
	EventSystemError,
	EventBulkStorageCleanup,
	EventUserRegistration,
	EventUserApproved,
	EventFileUploadFailed,
	EventSecurityAlert,
}

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Metadata is the open, condition-specific key/value bag attached to an event.
// Values must be JSON scalars.
type Metadata map[string]any

// Event is an immutable record of a detected condition.
type Event struct {
	ID          string    `json:"id"                     db:"id"`
	Type        EventType `json:"type"                   db:"type"`
	Severity    Severity  `json:"severity"               db:"severity"`
	Title       string    `json:"title"                  db:"title"`
	Message     string    `json:"message"                db:"message"`
	Metadata    Metadata  `json:"metadata,omitempty"     db:"metadata"`
	UserID      *string   `json:"user_id,omitempty"      db:"user_id"`
	CPUUsage    *float64  `json:"cpu_usage,omitempty"    db:"cpu_usage"`
	MemoryUsage *float64  `json:"memory_usage,omitempty" db:"memory_usage"`
	DiskUsage   *float64  `json:"disk_usage,omitempty"   db:"disk_usage"`
	CreatedAt   time.Time `json:"created_at"             db:"created_at"`
}

// WithMetrics attaches a metrics snapshot to the event. DiskUsage is only set
// when the disk was actually sampled.
func (e *Event) WithMetrics(m SystemMetrics, diskSampled bool) *Event {
	cpu, mem := m.CPUUsage, m.MemoryUsage
	e.CPUUsage = &cpu
	e.MemoryUsage = &mem
	if diskSampled {
		disk := m.DiskUsage
		e.DiskUsage = &disk
	}
	return e
}

// AlertRule is a named threshold configuration for one event type.
type AlertRule struct {
	ID        string    `json:"id"         db:"id"`
	EventType EventType `json:"event_type" db:"event_type"`
	Name      string    `json:"name"       db:"name"`
	Threshold float64   `json:"threshold"  db:"threshold"`
	Enabled   bool      `json:"enabled"    db:"enabled"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultAlertRules are seeded at startup when missing.
func DefaultAlertRules() []AlertRule {
	return []AlertRule{
		{ID: "rule_storage_warning", EventType: EventUserStorageWarning, Name: "Storage Warning", Threshold: 80, Enabled: true},
		{ID: "rule_storage_critical", EventType: EventUserStorageCritical, Name: "Storage Critical", Threshold: 95, Enabled: true},
		{ID: "rule_cpu_high", EventType: EventSystemCPUHigh, Name: "High CPU Usage", Threshold: 90, Enabled: true},
		{ID: "rule_memory_high", EventType: EventSystemMemoryHigh, Name: "High Memory Usage", Threshold: 90, Enabled: true},
	}
}

// SystemMetrics is a point-in-time sample of host utilization.
type SystemMetrics struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
	TotalMemory uint64  `json:"total_memory"`
	FreeMemory  uint64  `json:"free_memory"`
	Uptime      uint64  `json:"uptime"`
}

// UserUsage is the storage footprint of one user, read from the host
// application's schema. Nil limits fall back to configured defaults.
type UserUsage struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	StorageUsed  int64  `json:"storage_used"`
	FileCount    int    `json:"file_count"`
	StorageLimit *int64 `json:"storage_limit,omitempty"`
	FileLimit    *int   `json:"file_limit,omitempty"`
}

// Actor identifies who performed an admin action.
type Actor struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

// Display returns the most readable identifier for the actor.
func (a Actor) Display() string {
	switch {
	case a.Email != "":
		return a.Email
	case a.ID != "":
		return a.ID
	default:
		return "unknown"
	}
}

// AdminActionType names an operation performed through the admin surface.
type AdminActionType string

// Admin action constants.
const (
	ActionTriggerChecks    AdminActionType = "TRIGGER_CHECKS"
	ActionCleanupOldEvents AdminActionType = "CLEANUP_OLD_EVENTS"
	ActionDeleteEvent      AdminActionType = "DELETE_EVENT"
	ActionClearAllEvents   AdminActionType = "CLEAR_ALL_EVENTS"
	ActionClearNonCritical AdminActionType = "CLEAR_NON_CRITICAL_EVENTS"
)

// AdminAction records one successful admin operation for notification.
type AdminAction struct {
	Actor    Actor           `json:"actor"`
	Action   AdminActionType `json:"action"`
	Metadata Metadata        `json:"metadata,omitempty"`
}
