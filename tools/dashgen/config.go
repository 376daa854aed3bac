package main

import "errors"

// KnownMetrics is the set of metric names exported by healthwatch plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"healthwatch_http_request_duration_seconds_bucket": true,
	"healthwatch_http_requests_total":                  true,

	// Probe metrics.
	"healthwatch_healthz_up": true,
	"healthwatch_readyz_up":  true,

	// Host samples.
	"healthwatch_host_cpu_percent":    true,
	"healthwatch_host_memory_percent": true,
	"healthwatch_host_disk_percent":   true,
	"healthwatch_sample_errors_total": true,

	// Events.
	"healthwatch_events_created_total":       true,
	"healthwatch_events_deleted_total":       true,
	"healthwatch_bus_publish_failures_total": true,

	// Notifications.
	"healthwatch_notifications_total":                  true,
	"healthwatch_notification_duration_seconds_bucket": true,

	// Evaluation and scheduling.
	"healthwatch_evaluation_duration_seconds_bucket": true,
	"healthwatch_evaluation_errors_total":            true,
	"healthwatch_scheduler_running":                  true,
	"healthwatch_scheduler_ticks_total":              true,

	// Recording rules.
	"healthwatch:http_requests:rate5m":           true,
	"healthwatch:http_errors:rate5m":             true,
	"healthwatch:events_created:rate5m":          true,
	"healthwatch:notification_failures:rate5m":   true,
	"healthwatch:notification_duration:p95_5m":   true,
	"healthwatch:evaluation_duration:p95_5m":     true,
	"healthwatch:scheduler_tick_failures:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
