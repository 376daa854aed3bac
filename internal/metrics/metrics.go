// Package metrics defines Prometheus metrics for healthwatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "healthwatch"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Host metrics, refreshed on every sample.
var (
	HostCPUPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "host_cpu_percent",
		Help:      "Most recent host CPU utilization sample (0-100).",
	})

	HostMemoryPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "host_memory_percent",
		Help:      "Most recent host memory utilization sample (0-100).",
	})

	HostDiskPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "host_disk_percent",
		Help:      "Most recent local disk utilization sample (0-100).",
	})

	SampleErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sample_errors_total",
		Help:      "Total number of host metric reads that failed, by resource.",
	}, []string{"resource"})
)

// Event metrics.
var (
	EventsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events persisted.",
	}, []string{"type", "severity"})

	EventsDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_deleted_total",
		Help:      "Total number of events deleted, by operation.",
	}, []string{"operation"})

	BusPublishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bus_publish_failures_total",
		Help:      "Total number of events that could not be published to the bus.",
	})
)

// Notification metrics.
var (
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notification attempts, by kind and result.",
	}, []string{"kind", "result"})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of webhook deliveries in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Evaluation metrics.
var (
	EvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of evaluation passes in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"scope"})

	EvaluationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluation_errors_total",
		Help:      "Total number of evaluation failures, by scope.",
	}, []string{"scope"})

	SchedulerRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_running",
		Help:      "Number of monitoring schedulers running in the process.",
	})

	SchedulerTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_ticks_total",
		Help:      "Total number of scheduled job runs, by task and result.",
	}, []string{"task", "result"})
)
