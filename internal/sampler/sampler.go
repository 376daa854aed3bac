// Package sampler reads point-in-time host utilization.
package sampler

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/donaldgifford/healthwatch/internal/metrics"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

// MemoryStat is the subset of virtual memory figures the sampler needs.
type MemoryStat struct {
	Total     uint64
	Available uint64
}

// Source reads raw host figures. HostSource is the gopsutil implementation;
// tests substitute their own.
type Source interface {
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	Memory(ctx context.Context) (MemoryStat, error)
	DiskPercent(ctx context.Context, path string) (float64, error)
	Uptime(ctx context.Context) (uint64, error)
}

// Sampler produces SystemMetrics snapshots. It holds no state between calls.
type Sampler struct {
	src       Source
	log       *slog.Logger
	window    time.Duration
	localDisk bool
	diskPath  string
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithCPUWindow sets how long CPU utilization is measured for.
func WithCPUWindow(d time.Duration) Option {
	return func(s *Sampler) {
		s.window = d
	}
}

// WithLocalDisk enables disk sampling for the filesystem containing path.
// Without it DiskUsage is always 0, which is the remote object storage case.
func WithLocalDisk(path string) Option {
	return func(s *Sampler) {
		s.localDisk = true
		s.diskPath = path
	}
}

// New creates a Sampler reading from src.
func New(src Source, log *slog.Logger, opts ...Option) *Sampler {
	s := &Sampler{
		src:      src,
		log:      log,
		window:   500 * time.Millisecond,
		diskPath: "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiskSampled reports whether Sample reads the disk.
func (s *Sampler) DiskSampled() bool {
	return s.localDisk
}

// Sample reads every metric once. Unreadable metrics are reported as 0.
func (s *Sampler) Sample(ctx context.Context) domain.SystemMetrics {
	var m domain.SystemMetrics

	if pct, err := s.src.CPUPercent(ctx, s.window); err != nil {
		s.readFailed("cpu", err)
	} else {
		m.CPUUsage = clampPercent(pct)
	}

	if ms, err := s.src.Memory(ctx); err != nil {
		s.readFailed("memory", err)
	} else {
		m.TotalMemory = ms.Total
		m.FreeMemory = ms.Available
		if ms.Total > 0 && ms.Available <= ms.Total {
			m.MemoryUsage = float64(ms.Total-ms.Available) * 100 / float64(ms.Total)
		}
	}

	if up, err := s.src.Uptime(ctx); err != nil {
		s.readFailed("uptime", err)
	} else {
		m.Uptime = up
	}

	if s.localDisk {
		if pct, err := s.src.DiskPercent(ctx, s.diskPath); err != nil {
			s.readFailed("disk", err)
		} else {
			m.DiskUsage = clampPercent(pct)
		}
	}

	metrics.HostCPUPercent.Set(m.CPUUsage)
	metrics.HostMemoryPercent.Set(m.MemoryUsage)
	metrics.HostDiskPercent.Set(m.DiskUsage)

	return m
}

func (s *Sampler) readFailed(resource string, err error) {
	metrics.SampleErrorsTotal.WithLabelValues(resource).Inc()
	s.log.Debug("host metric unavailable", "resource", resource, "error", err)
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// HostSource reads the local host through gopsutil.
type HostSource struct{}

// CPUPercent returns utilization across all cores over window.
func (HostSource) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, nil
	}
	return pcts[0], nil
}

// Memory returns total and available virtual memory.
func (HostSource) Memory(ctx context.Context) (MemoryStat, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStat{}, err
	}
	return MemoryStat{Total: vm.Total, Available: vm.Available}, nil
}

// DiskPercent returns the used percentage of the filesystem holding path.
func (HostSource) DiskPercent(ctx context.Context, path string) (float64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return u.UsedPercent, nil
}

// Uptime returns host uptime in seconds.
func (HostSource) Uptime(ctx context.Context) (uint64, error) {
	return host.UptimeWithContext(ctx)
}
