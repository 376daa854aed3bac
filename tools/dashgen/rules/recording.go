package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "healthwatch-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "healthwatch-recording",
					Rules: []Rule{
						{
							Record: "healthwatch:http_requests:rate5m",
							Expr:   `sum(rate(healthwatch_http_requests_total[5m]))`,
						},
						{
							Record: "healthwatch:http_errors:rate5m",
							Expr:   `sum(rate(healthwatch_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "healthwatch:events_created:rate5m",
							Expr:   `sum by (severity) (rate(healthwatch_events_created_total[5m]))`,
						},
						{
							Record: "healthwatch:notification_failures:rate5m",
							Expr:   `sum(rate(healthwatch_notifications_total{result="failed"}[5m]))`,
						},
						{
							Record: "healthwatch:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(healthwatch_notification_duration_seconds_bucket[5m])) by (le))`,
						},
						{
							Record: "healthwatch:evaluation_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(healthwatch_evaluation_duration_seconds_bucket[5m])) by (le, scope))`,
						},
						{
							Record: "healthwatch:scheduler_tick_failures:rate5m",
							Expr:   `sum by (task) (rate(healthwatch_scheduler_ticks_total{result="failure"}[5m]))`,
						},
					},
				},
			},
		},
	}
}
