package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// healthwatch operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "healthwatch-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "healthwatch-alerts",
					Rules: []Rule{
						{
							Alert: "HealthwatchDown",
							Expr:  `absent(up{job="healthwatch"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Healthwatch is down",
								"description": "The healthwatch job has been absent for more than 2 minutes. No host or quota checks are running.",
							},
						},
						{
							Alert: "HealthwatchReadinessDown",
							Expr:  `healthwatch_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Healthwatch cannot reach its database",
								"description": "The readiness probe has been failing for more than 2 minutes. Events cannot be recorded.",
							},
						},
						{
							Alert: "HealthwatchSchedulerStopped",
							Expr:  `healthwatch_scheduler_running == 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Healthwatch scheduler is not running",
								"description": "Periodic checks and retention cleanup have been stopped for more than 10 minutes.",
							},
						},
						{
							Alert: "HealthwatchScheduledJobFailures",
							Expr:  `healthwatch:scheduler_tick_failures:rate5m > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Scheduled monitoring runs are failing",
								"description": "Check or cleanup runs have been failing for more than 15 minutes. See SYSTEM_ERROR events for details.",
							},
						},
						{
							Alert: "HealthwatchCriticalEvents",
							Expr:  `increase(healthwatch_events_created_total{severity="CRITICAL"}[15m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Healthwatch recorded a critical event",
								"description": "At least one CRITICAL event was recorded in the last 15 minutes.",
							},
						},
						{
							Alert: "HealthwatchHighErrorRate",
							Expr:  `healthwatch:http_errors:rate5m / healthwatch:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Healthwatch",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "HealthwatchNotificationFailures",
							Expr:  `healthwatch:notification_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "Discord webhook deliveries have been failing for more than 5 minutes.",
							},
						},
						{
							Alert: "HealthwatchBusPublishFailures",
							Expr:  `increase(healthwatch_bus_publish_failures_total[5m]) > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Events are not reaching NATS",
								"description": "Created events could not be published to the bus for more than 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
