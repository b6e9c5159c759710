package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
)

// Stats is one profiler report.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second since the previous report
	GCCount     uint32
	MaxPauseUs  uint64 // longest GC pause since the previous report
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics and logs them at a fixed interval.
type Profiler struct {
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a Profiler reporting every interval. A non-positive interval means one second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	return newProfiler(interval, time.Now)
}

func newProfiler(interval time.Duration, now func() time.Time) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		now:            now,
		lastTime:       now(),
		updateInterval: interval,
	}
}

// Tick should be called once per frame. When the interval has elapsed it logs a report at info level.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()
	s := Stats{
		FPS:         float64(p.frameCount) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	// PauseNs is a ring of the last 256 pauses.
	start := p.lastGCCount
	if s.GCCount-start > 256 {
		start = s.GCCount - 256
	}
	for i := start; i < s.GCCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
			s.MaxPauseUs = pause
		}
	}

	logger.Info("profiler: fps %.2f | heap %.2f MB | alloc %.2f MB/s | gc %d (max %d µs) | sys %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.MaxPauseUs, s.SysMB)

	p.last = s
	p.frameCount = 0
	p.lastTime = current
	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report, zero before the first one.
func (p *Profiler) Last() Stats {
	return p.last
}
