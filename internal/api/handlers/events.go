package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/healthwatch/internal/api/middleware"
	"github.com/donaldgifford/healthwatch/internal/engine"
	"github.com/donaldgifford/healthwatch/internal/events"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// EventService reads and records events.
type EventService interface {
	Recent(ctx context.Context, limit int, f events.Filter) ([]domain.Event, error)
	StatsSince(ctx context.Context, hours int) (map[domain.Severity]int, error)
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
}

// EventAdmin performs the destructive event operations.
type EventAdmin interface {
	DeleteEvent(ctx context.Context, actor domain.Actor, id string) engine.Result
	ClearAll(ctx context.Context, actor domain.Actor, severity *domain.Severity) engine.Result
	ClearNonCritical(ctx context.Context, actor domain.Actor) engine.Result
}

// EventsHandler serves /api/v1/events.
type EventsHandler struct {
	events EventService
	admin  EventAdmin
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(ev EventService, admin EventAdmin) *EventsHandler {
	return &EventsHandler{events: ev, admin: admin}
}

// --- Input/Output types ---

// ListEventsInput filters the recent events list.
type ListEventsInput struct {
	Limit    int    `query:"limit"    doc:"Maximum events to return (default 50, capped at 500)"`
	Severity string `query:"severity" doc:"Only events of this severity"`
	UserID   string `query:"user_id"  doc:"Only events for this user"`
}

// ListEventsOutput is the response for listing events.
type ListEventsOutput struct {
	Body []domain.Event
}

// EventStatsInput selects the stats window.
type EventStatsInput struct {
	Hours int `query:"hours" doc:"Window size in hours (default 24, at most 87600)"`
}

// EventStatsOutput is the response for event stats.
type EventStatsOutput struct {
	Body struct {
		Hours  int            `json:"hours"  doc:"Window size in hours"`
		Counts map[string]int `json:"counts" doc:"Event count per severity"`
		Total  int            `json:"total"  doc:"Events in the window"`
	}
}

// CreateEventInput records an externally produced event.
type CreateEventInput struct {
	Body struct {
		Type     string          `json:"type"               doc:"Event type"         example:"USER_REGISTRATION"`
		Severity string          `json:"severity"           doc:"Event severity"     example:"INFO"`
		Title    string          `json:"title"              doc:"Short summary"      minLength:"1"`
		Message  string          `json:"message,omitempty"  doc:"Details"`
		Metadata domain.Metadata `json:"metadata,omitempty" doc:"Free-form context"`
		UserID   *string         `json:"user_id,omitempty"  doc:"Related user"`
	}
}

// EventOutput wraps a single event.
type EventOutput struct {
	Body domain.Event
}

// DeleteEventInput identifies an event.
type DeleteEventInput struct {
	ID string `path:"id" doc:"Event ID"`
}

// ClearEventsInput optionally limits a clear to one severity.
type ClearEventsInput struct {
	Severity string `query:"severity" doc:"Only clear events of this severity"`
}

// ResultOutput is the response for admin operations.
type ResultOutput struct {
	Body engine.Result
}

// --- Handlers ---

// List returns recent events, newest first.
func (h *EventsHandler) List(ctx context.Context, in *ListEventsInput) (*ListEventsOutput, error) {
	if in.Limit < 0 {
		return nil, huma.Error400BadRequest("limit must not be negative")
	}

	var f events.Filter
	if in.Severity != "" {
		sev, err := parseSeverity(in.Severity)
		if err != nil {
			return nil, err
		}
		f.Severity = &sev
	}
	if in.UserID != "" {
		f.UserID = &in.UserID
	}

	list, err := h.events.Recent(ctx, in.Limit, f)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list events: " + err.Error())
	}
	if list == nil {
		list = []domain.Event{}
	}
	return &ListEventsOutput{Body: list}, nil
}

// Stats counts events per severity within the window.
func (h *EventsHandler) Stats(ctx context.Context, in *EventStatsInput) (*EventStatsOutput, error) {
	hours := in.Hours
	if hours > events.MaxStatsHours {
		return nil, huma.Error400BadRequest(fmt.Sprintf("hours must be at most %d", events.MaxStatsHours))
	}
	if hours <= 0 {
		hours = 24
	}

	counts, err := h.events.StatsSince(ctx, hours)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to count events: " + err.Error())
	}

	resp := &EventStatsOutput{}
	resp.Body.Hours = hours
	resp.Body.Counts = make(map[string]int, len(counts))
	for sev, n := range counts {
		resp.Body.Counts[string(sev)] = n
		resp.Body.Total += n
	}
	return resp, nil
}

// Create records an event produced outside the monitor.
func (h *EventsHandler) Create(ctx context.Context, in *CreateEventInput) (*EventOutput, error) {
	sev, err := parseSeverity(in.Body.Severity)
	if err != nil {
		return nil, err
	}

	e, err := h.events.Create(ctx, &domain.Event{
		Type:     domain.EventType(in.Body.Type),
		Severity: sev,
		Title:    in.Body.Title,
		Message:  in.Body.Message,
		Metadata: in.Body.Metadata,
		UserID:   in.Body.UserID,
	})
	if errors.Is(err, events.ErrInvalidEvent) {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to record event: " + err.Error())
	}
	return &EventOutput{Body: *e}, nil
}

// Delete removes one event.
func (h *EventsHandler) Delete(ctx context.Context, in *DeleteEventInput) (*ResultOutput, error) {
	return &ResultOutput{Body: h.admin.DeleteEvent(ctx, actorFrom(ctx), in.ID)}, nil
}

// Clear removes every event, or every event of one severity.
func (h *EventsHandler) Clear(ctx context.Context, in *ClearEventsInput) (*ResultOutput, error) {
	var sev *domain.Severity
	if in.Severity != "" {
		s, err := parseSeverity(in.Severity)
		if err != nil {
			return nil, err
		}
		sev = &s
	}
	return &ResultOutput{Body: h.admin.ClearAll(ctx, actorFrom(ctx), sev)}, nil
}

// ClearNonCritical removes every INFO and WARNING event.
func (h *EventsHandler) ClearNonCritical(ctx context.Context, _ *struct{}) (*ResultOutput, error) {
	return &ResultOutput{Body: h.admin.ClearNonCritical(ctx, actorFrom(ctx))}, nil
}

func parseSeverity(v string) (domain.Severity, error) {
	sev, ok := domain.ParseSeverity(v)
	if !ok {
		return "", huma.Error400BadRequest("unknown severity " + v + " (want INFO, WARNING, ERROR or CRITICAL)")
	}
	return sev, nil
}

func actorFrom(ctx context.Context) domain.Actor {
	a, _ := middleware.ActorFromContext(ctx)
	return a
}

// RegisterEventRoutes registers event endpoints with the Huma API.
func RegisterEventRoutes(api huma.API, h *EventsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-events",
		Method:      http.MethodGet,
		Path:        "/api/v1/events",
		Summary:     "List recent events",
		Description: "Returns events newest first, optionally filtered by severity or user.",
		Tags:        []string{"events"},
		Errors:      []int{http.StatusBadRequest},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "event-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/events/stats",
		Summary:     "Count events by severity",
		Description: "Counts events created within the last N hours, by severity.",
		Tags:        []string{"events"},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID:   "create-event",
		Method:        http.MethodPost,
		Path:          "/api/v1/events",
		Summary:       "Record an event",
		Description:   "Persists an event and routes it to the notification sinks.",
		Tags:          []string{"events"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadRequest, http.StatusUnprocessableEntity},
	}, h.Create)

	// Registered before the {id} route so the literal segment wins on
	// routers that match in registration order.
	huma.Register(api, huma.Operation{
		OperationID: "clear-non-critical-events",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events/non-critical",
		Summary:     "Clear non-critical events",
		Description: "Deletes every INFO and WARNING event.",
		Tags:        []string{"events", "admin"},
	}, h.ClearNonCritical)

	huma.Register(api, huma.Operation{
		OperationID: "delete-event",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events/{id}",
		Summary:     "Delete an event",
		Tags:        []string{"events", "admin"},
	}, h.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "clear-events",
		Method:      http.MethodDelete,
		Path:        "/api/v1/events",
		Summary:     "Clear events",
		Description: "Deletes every event, or every event of the given severity.",
		Tags:        []string{"events", "admin"},
		Errors:      []int{http.StatusBadRequest},
	}, h.Clear)
}

