package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/healthwatch/internal/engine"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// MonitoringAdmin runs the monitor on demand and reports its schedule.
type MonitoringAdmin interface {
	TriggerChecks(ctx context.Context, actor domain.Actor) engine.Result
	CleanupOldEvents(ctx context.Context, actor domain.Actor) engine.Result
	MonitoringStatus() engine.Status
}

// MonitoringHandler serves /api/v1/monitoring.
type MonitoringHandler struct {
	admin MonitoringAdmin
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(a MonitoringAdmin) *MonitoringHandler {
	return &MonitoringHandler{admin: a}
}

// StatusBody is the JSON form of the scheduler status.
type StatusBody struct {
	Running         bool       `json:"running"                doc:"Whether the periodic jobs are armed"`
	NextCheck       *time.Time `json:"next_check,omitempty"   doc:"Next evaluation pass"`
	NextCleanup     *time.Time `json:"next_cleanup,omitempty" doc:"Next retention cleanup"`
	CheckInterval   string     `json:"check_interval"         example:"5m0s"`
	CleanupInterval string     `json:"cleanup_interval"       example:"24h0m0s"`
	RetentionDays   int        `json:"retention_days"         example:"30"`
}

// StatusOutput is the response for the monitoring status endpoint.
type StatusOutput struct {
	Body StatusBody
}

// Check runs one evaluation pass now.
func (h *MonitoringHandler) Check(ctx context.Context, _ *struct{}) (*ResultOutput, error) {
	return &ResultOutput{Body: h.admin.TriggerChecks(ctx, actorFrom(ctx))}, nil
}

// Cleanup deletes events past the retention window now.
func (h *MonitoringHandler) Cleanup(ctx context.Context, _ *struct{}) (*ResultOutput, error) {
	return &ResultOutput{Body: h.admin.CleanupOldEvents(ctx, actorFrom(ctx))}, nil
}

// Status reports whether the scheduler is running and when it fires next.
func (h *MonitoringHandler) Status(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	st := h.admin.MonitoringStatus()
	return &StatusOutput{Body: StatusBody{
		Running:         st.Running,
		NextCheck:       st.NextCheck,
		NextCleanup:     st.NextCleanup,
		CheckInterval:   st.CheckInterval.String(),
		CleanupInterval: st.CleanupInterval.String(),
		RetentionDays:   st.RetentionDays,
	}}, nil
}

// RegisterMonitoringRoutes registers monitoring endpoints with the Huma API.
func RegisterMonitoringRoutes(api huma.API, h *MonitoringHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-checks",
		Method:      http.MethodPost,
		Path:        "/api/v1/monitoring/check",
		Summary:     "Run checks now",
		Description: "Runs the system check and every user check once.",
		Tags:        []string{"monitoring", "admin"},
	}, h.Check)

	huma.Register(api, huma.Operation{
		OperationID: "cleanup-old-events",
		Method:      http.MethodPost,
		Path:        "/api/v1/monitoring/cleanup",
		Summary:     "Delete expired events",
		Description: "Deletes events older than the configured retention.",
		Tags:        []string{"monitoring", "admin"},
	}, h.Cleanup)

	huma.Register(api, huma.Operation{
		OperationID: "monitoring-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/monitoring/status",
		Summary:     "Scheduler status",
		Tags:        []string{"monitoring"},
	}, h.Status)
}
