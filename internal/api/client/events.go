package client

import (
	"context"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// ListEventsParams filters ListEvents. Zero values are omitted.
type ListEventsParams struct {
	Limit    int
	Severity string
	UserID   string
}

// EventStats is the per-severity count for a window.
type EventStats struct {
	Hours  int            `json:"hours"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// Result is the outcome of an admin operation.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// CreateEventRequest is the body accepted by CreateEvent.
type CreateEventRequest struct {
	Type     domain.EventType `json:"type"`
	Severity domain.Severity  `json:"severity"`
	Title    string           `json:"title"`
	Message  string           `json:"message,omitempty"`
	Metadata domain.Metadata  `json:"metadata,omitempty"`
	UserID   *string          `json:"user_id,omitempty"`
}

// ListEvents returns recent events, newest first.
func (c *Client) ListEvents(ctx context.Context, p ListEventsParams) ([]domain.Event, error) {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Severity != "" {
		q.Set("severity", p.Severity)
	}
	if p.UserID != "" {
		q.Set("user_id", p.UserID)
	}

	var events []domain.Event
	if err := c.get(ctx, "/api/v1/events", q, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EventStats counts events per severity over the last hours.
func (c *Client) EventStats(ctx context.Context, hours int) (*EventStats, error) {
	q := url.Values{}
	if hours > 0 {
		q.Set("hours", strconv.Itoa(hours))
	}

	var stats EventStats
	if err := c.get(ctx, "/api/v1/events/stats", q, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// CreateEvent records an event.
func (c *Client) CreateEvent(ctx context.Context, req *CreateEventRequest) (*domain.Event, error) {
	var created domain.Event
	if err := c.post(ctx, "/api/v1/events", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteEvent deletes one event.
func (c *Client) DeleteEvent(ctx context.Context, id string) (*Result, error) {
	var res Result
	if err := c.del(ctx, "/api/v1/events/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ClearEvents deletes every event, or only those of severity when set.
func (c *Client) ClearEvents(ctx context.Context, severity string) (*Result, error) {
	q := url.Values{}
	if severity != "" {
		q.Set("severity", severity)
	}

	var res Result
	if err := c.del(ctx, "/api/v1/events", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ClearNonCritical deletes every INFO and WARNING event.
func (c *Client) ClearNonCritical(ctx context.Context) (*Result, error) {
	var res Result
	if err := c.del(ctx, "/api/v1/events/non-critical", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
