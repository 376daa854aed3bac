package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when Discord is not enabled.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards everything with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// DeliverEvent logs and discards an event notification.
func (n *NoOpNotifier) DeliverEvent(_ context.Context, p *EventPayload) bool {
	n.log.Debug("notification discarded (no backend configured)",
		"type", p.Type,
		"severity", p.Severity,
	)
	return false
}

// DeliverAdminAction logs and discards an admin-action notification.
func (n *NoOpNotifier) DeliverAdminAction(_ context.Context, p *AdminActionPayload) bool {
	n.log.Debug("admin notification discarded (no backend configured)",
		"action", p.Action,
		"admin", p.Actor.Display(),
	)
	return false
}
