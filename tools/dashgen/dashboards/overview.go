// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/healthwatch/tools/dashgen/panels"
)

// BuildOverview constructs the Healthwatch Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Healthwatch Overview").
		Uid("healthwatch-overview").
		Tags([]string{"healthwatch"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.SchedulerStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: Host.
	b.WithRow(dashboard.NewRowBuilder("Host").
		WithPanel(panels.CPUGauge()).
		WithPanel(panels.MemoryGauge()).
		WithPanel(panels.DiskGauge()).
		WithPanel(panels.HostUtilization()).
		WithPanel(panels.SampleErrors()))

	// Row 3: Events.
	b.WithRow(dashboard.NewRowBuilder("Events").
		WithPanel(panels.EventsBySeverity()).
		WithPanel(panels.CriticalEvents()).
		WithPanel(panels.EventsDeleted()))

	// Row 4: Evaluation.
	b.WithRow(dashboard.NewRowBuilder("Evaluation").
		WithPanel(panels.EvaluationDuration()).
		WithPanel(panels.SchedulerFailures()))

	// Row 5: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsRate()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	// Row 6: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
