package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

func hostGauge(title, description, metric string, warning, critical float64) *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(GaugeWidth).
		WithTarget(PromQuery(metric, "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(ThresholdsGreenYellowRed(warning, critical)).
		ColorScheme(ColorSchemeThresholds())
}

// CPUGauge returns a gauge panel with the latest CPU sample.
func CPUGauge() *gauge.PanelBuilder {
	return hostGauge("CPU %", "Latest host CPU utilization sample", `healthwatch_host_cpu_percent`, 80, 90)
}

// MemoryGauge returns a gauge panel with the latest memory sample.
func MemoryGauge() *gauge.PanelBuilder {
	return hostGauge("Memory %", "Latest host memory utilization sample", `healthwatch_host_memory_percent`, 80, 90)
}

// DiskGauge returns a gauge panel with the latest local disk sample. It stays
// empty when storage is remote.
func DiskGauge() *gauge.PanelBuilder {
	return hostGauge("Disk %", "Latest local disk utilization sample", `healthwatch_host_disk_percent`, 80, 95)
}

// HostUtilization returns a timeseries panel with all three host samples.
func HostUtilization() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Host Utilization").
		Description("CPU, memory and disk utilization as sampled by each pass").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`healthwatch_host_cpu_percent`, "cpu", "A")).
		WithTarget(PromQuery(`healthwatch_host_memory_percent`, "memory", "B")).
		WithTarget(PromQuery(`healthwatch_host_disk_percent`, "disk", "C")).
		Unit("percent").
		Min(0).
		Max(100).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SampleErrors returns a stat panel counting failed host reads in the past
// 24 hours.
func SampleErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Sample Errors (24h)").
		Description("Host metric reads that failed and were reported as 0").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(increase(healthwatch_sample_errors_total{job="`+Job+`"}[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
