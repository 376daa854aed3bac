package client

import (
	"context"
	"time"

	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// MonitoringStatus is the scheduler state reported by the server.
type MonitoringStatus struct {
	Running         bool       `json:"running"`
	NextCheck       *time.Time `json:"next_check,omitempty"`
	NextCleanup     *time.Time `json:"next_cleanup,omitempty"`
	CheckInterval   string     `json:"check_interval"`
	CleanupInterval string     `json:"cleanup_interval"`
	RetentionDays   int        `json:"retention_days"`
}

// TriggerChecks runs one evaluation pass on the server.
func (c *Client) TriggerChecks(ctx context.Context) (*Result, error) {
	var res Result
	if err := c.post(ctx, "/api/v1/monitoring/check", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CleanupOldEvents deletes events past the server's retention window.
func (c *Client) CleanupOldEvents(ctx context.Context) (*Result, error) {
	var res Result
	if err := c.post(ctx, "/api/v1/monitoring/cleanup", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// MonitoringStatus returns the scheduler state.
func (c *Client) MonitoringStatus(ctx context.Context) (*MonitoringStatus, error) {
	var st MonitoringStatus
	if err := c.get(ctx, "/api/v1/monitoring/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ListAlertRules returns the configured alert rules.
func (c *Client) ListAlertRules(ctx context.Context) ([]domain.AlertRule, error) {
	var rules []domain.AlertRule
	if err := c.get(ctx, "/api/v1/alert-rules", nil, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}
