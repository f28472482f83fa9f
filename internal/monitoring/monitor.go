// Package monitoring tracks host frame timing and game event counts and
// turns them into periodic log lines and alerts.
package monitoring

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"tilechase/internal/game"
)

const (
	// DefaultMinFPS is the frame rate below which CheckAlerts reports low_fps.
	DefaultMinFPS = 30.0
	// DefaultMaxMemoryMB is the heap size above which CheckAlerts reports high_memory.
	DefaultMaxMemoryMB = 500.0
)

// Monitor is safe for concurrent use.
type Monitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	totalTime  atomic.Uint64 // nanoseconds, all frames

	mutex      sync.RWMutex
	events     map[string]uint64
	startTime  time.Time
	lastReport time.Time

	MinFPS         float64
	MaxMemoryMB    float64
	ReportInterval time.Duration
}

func NewMonitor() *Monitor {
	now := time.Now()
	return &Monitor{
		events:         make(map[string]uint64),
		startTime:      now,
		lastReport:     now,
		MinFPS:         DefaultMinFPS,
		MaxMemoryMB:    DefaultMaxMemoryMB,
		ReportInterval: 10 * time.Second,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *Monitor
	startTime time.Time
}

// StartFrame begins frame timing
func (m *Monitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: m, startTime: time.Now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.RecordFrame(time.Since(ft.startTime))
}

// RecordFrame adds one frame of the given duration.
func (m *Monitor) RecordFrame(d time.Duration) {
	ns := uint64(d.Nanoseconds())
	m.frameTime.Store(ns)
	m.totalTime.Add(ns)
	m.frameCount.Add(1)
}

// OnEvent counts session events by kind.
func (m *Monitor) OnEvent(e game.Event) {
	m.mutex.Lock()
	m.events[e.Kind.String()]++
	m.mutex.Unlock()
}

// Metrics is a point-in-time copy of the counters.
type Metrics struct {
	Frames       uint64
	LastFrame    time.Duration
	AvgFrame     time.Duration
	FPS          float64
	MemoryMB     float64
	Uptime       time.Duration
	EventsByKind map[string]uint64
}

func (m *Monitor) GetCurrentMetrics() Metrics {
	frames := m.frameCount.Load()
	last := time.Duration(m.frameTime.Load())
	var avg time.Duration
	if frames > 0 {
		avg = time.Duration(m.totalTime.Load() / frames)
	}
	fps := 0.0
	if last > 0 {
		fps = float64(time.Second) / float64(last)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	events := make(map[string]uint64, len(m.events))
	for k, v := range m.events {
		events[k] = v
	}
	return Metrics{
		Frames:       frames,
		LastFrame:    last,
		AvgFrame:     avg,
		FPS:          fps,
		MemoryMB:     float64(memStats.Alloc) / 1024 / 1024,
		Uptime:       time.Since(m.startTime),
		EventsByKind: events,
	}
}

// Alert represents a performance warning
type Alert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
}

// CheckAlerts compares metrics against the monitor's thresholds.
func (m *Monitor) CheckAlerts(mt Metrics) []Alert {
	var alerts []Alert
	if mt.FPS > 0 && mt.FPS < m.MinFPS {
		alerts = append(alerts, Alert{
			Type:      "low_fps",
			Message:   "frame rate below threshold",
			Value:     mt.FPS,
			Threshold: m.MinFPS,
		})
	}
	if mt.MemoryMB > m.MaxMemoryMB {
		alerts = append(alerts, Alert{
			Type:      "high_memory",
			Message:   "heap above threshold",
			Value:     mt.MemoryMB,
			Threshold: m.MaxMemoryMB,
		})
	}
	return alerts
}

// MaybeReport logs the metrics at debug level and any alerts at warn level
// once per ReportInterval. It reports whether it logged.
func (m *Monitor) MaybeReport(log logrus.FieldLogger, now time.Time) bool {
	m.mutex.Lock()
	if now.Sub(m.lastReport) < m.ReportInterval {
		m.mutex.Unlock()
		return false
	}
	m.lastReport = now
	m.mutex.Unlock()

	mt := m.GetCurrentMetrics()
	fields := logrus.Fields{
		"frames":      mt.Frames,
		"avg_ms":      float64(mt.AvgFrame) / float64(time.Millisecond),
		"fps":         mt.FPS,
		"memory_mb":   mt.MemoryMB,
		"uptime_secs": mt.Uptime.Seconds(),
	}
	kinds := make([]string, 0, len(mt.EventsByKind))
	for k := range mt.EventsByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fields["events_"+k] = mt.EventsByKind[k]
	}
	log.WithFields(fields).Debug("frame metrics")

	for _, a := range m.CheckAlerts(mt) {
		log.WithFields(logrus.Fields{
			"alert":     a.Type,
			"value":     a.Value,
			"threshold": a.Threshold,
		}).Warn(a.Message)
	}
	return true
}

// Reset resets all counters
func (m *Monitor) Reset() {
	m.frameCount.Store(0)
	m.frameTime.Store(0)
	m.totalTime.Store(0)

	m.mutex.Lock()
	m.events = make(map[string]uint64)
	m.startTime = time.Now()
	m.lastReport = m.startTime
	m.mutex.Unlock()
}
