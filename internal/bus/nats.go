// Package bus fans created events out to NATS subscribers.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// NATSPublisher publishes events as JSON on <prefix>.<severity>.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
}

// Connect dials url and returns a publisher using subjectPrefix.
func Connect(url, subjectPrefix string, opts ...nats.Option) (*NATSPublisher, error) {
	opts = append([]nats.Option{
		nats.Name("healthwatch"),
		nats.Timeout(5 * time.Second),
	}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats at %s: %w", url, err)
	}
	return NewNATSPublisher(conn, subjectPrefix), nil
}

// NewNATSPublisher wraps an existing connection.
func NewNATSPublisher(conn *nats.Conn, subjectPrefix string) *NATSPublisher {
	return &NATSPublisher{
		conn:   conn,
		prefix: strings.TrimSuffix(subjectPrefix, "."),
	}
}

// Subject returns the subject an event of severity s is published on.
func (p *NATSPublisher) Subject(s domain.Severity) string {
	return p.prefix + "." + strings.ToLower(string(s))
}

// Publish sends e to the bus. Delivery is fire-and-forget.
func (p *NATSPublisher) Publish(ctx context.Context, e *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event %s: %w", e.ID, err)
	}

	if err := p.conn.Publish(p.Subject(e.Severity), data); err != nil {
		return fmt.Errorf("publishing event %s: %w", e.ID, err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
		p.conn.Close()
	}
}
