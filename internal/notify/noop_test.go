package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/healthwatch/pkg/logger"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

func TestNoOpNotifier_DeliverEvent(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(logger.Discard())
	ok := n.DeliverEvent(context.Background(), &EventPayload{
		Type:     domain.EventSystemError,
		Severity: domain.SeverityError,
		Title:    "boom",
	})
	assert.False(t, ok)
}

func TestNoOpNotifier_DeliverAdminAction(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(logger.Discard())
	ok := n.DeliverAdminAction(context.Background(), &AdminActionPayload{
		Actor:  domain.Actor{Email: "admin@example.com"},
		Action: domain.ActionClearAllEvents,
	})
	assert.False(t, ok)
}

// compile-time interface checks.
var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
)
