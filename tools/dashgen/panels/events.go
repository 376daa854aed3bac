package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// EventsBySeverity returns a timeseries panel with the event creation rate
// split by severity.
func EventsBySeverity() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Events by Severity").
		Description("Events persisted per second, by severity").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`healthwatch:events_created:rate5m`, "{{severity}}", "A")).
		Unit("ops").
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CriticalEvents returns a stat panel counting CRITICAL events in the past
// 24 hours.
func CriticalEvents() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Critical Events (24h)").
		Description("CRITICAL events persisted in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`sum(increase(healthwatch_events_created_total{job="`+Job+`",severity="CRITICAL"}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// EventsDeleted returns a stat panel counting deleted events in the past
// 24 hours, by operation.
func EventsDeleted() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Events Deleted (24h)").
		Description("Events removed by retention cleanup and admin actions").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`sum by (operation) (increase(healthwatch_events_deleted_total{job="`+Job+`"}[24h]))`,
			"{{operation}}", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeNone)
}

// EvaluationDuration returns a timeseries panel with the p95 duration of
// each evaluation scope.
func EvaluationDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Evaluation Duration (p95)").
		Description("95th percentile duration of system, user and full passes").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`healthwatch:evaluation_duration:p95_5m`, "{{scope}}", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SchedulerFailures returns a timeseries panel with failed scheduled runs.
func SchedulerFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Scheduled Job Failures").
		Description("Failed check and cleanup runs per second, by task").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`healthwatch:scheduler_tick_failures:rate5m`, "{{task}}", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
