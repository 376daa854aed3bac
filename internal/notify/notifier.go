// Package notify defines the notification interface and implementations
// for event and admin-action delivery.
package notify

import (
	"context"
	"time"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// EventPayload contains the data needed to render one event notification.
type EventPayload struct {
	Type        domain.EventType
	Severity    domain.Severity
	Title       string
	Message     string
	Metadata    domain.Metadata
	UserEmail   string
	CPUUsage    *float64
	MemoryUsage *float64
	DiskUsage   *float64
	Timestamp   time.Time
}

// PayloadFromEvent builds an EventPayload from a persisted event. userEmail
// may be empty.
func PayloadFromEvent(e *domain.Event, userEmail string) *EventPayload {
	return &EventPayload{
		Type:        e.Type,
		Severity:    e.Severity,
		Title:       e.Title,
		Message:     e.Message,
		Metadata:    e.Metadata,
		UserEmail:   userEmail,
		CPUUsage:    e.CPUUsage,
		MemoryUsage: e.MemoryUsage,
		DiskUsage:   e.DiskUsage,
		Timestamp:   e.CreatedAt,
	}
}

// AdminActionPayload describes an admin operation that completed.
type AdminActionPayload struct {
	Actor     domain.Actor
	Action    domain.AdminActionType
	Metadata  domain.Metadata
	Timestamp time.Time
}

// Notifier delivers notifications to an external sink. Implementations never
// return errors: they report whether the message was delivered.
type Notifier interface {
	DeliverEvent(ctx context.Context, p *EventPayload) bool
	DeliverAdminAction(ctx context.Context, p *AdminActionPayload) bool
}
