// Package profiler samples frame timing and Go runtime memory statistics.
package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

const mb = 1 << 20

// Stats summarizes one reporting window.
type Stats struct {
	FPS          float64
	FrameTimeMin time.Duration
	FrameTimeMax time.Duration

	HeapMB       float64 // live heap
	SysMB        float64 // memory obtained from the OS
	AllocRateMBs float64 // heap churn per second over the window

	GCCount    uint32
	GCLastStop time.Duration
	GCMaxStop  time.Duration // longest pause inside the window
}

// LogValue flattens Stats into a slog group.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("fps", s.FPS),
		slog.Duration("frame_min", s.FrameTimeMin),
		slog.Duration("frame_max", s.FrameTimeMax),
		slog.Float64("heap_mb", s.HeapMB),
		slog.Float64("alloc_rate_mb_s", s.AllocRateMBs),
		slog.Float64("sys_mb", s.SysMB),
		slog.Any("gc", s.GCCount),
		slog.Duration("gc_last", s.GCLastStop),
		slog.Duration("gc_max", s.GCMaxStop),
	)
}

// Profiler counts frames and produces a Stats once per interval.
// It is not safe for concurrent use; the engine ticks it from the render loop.
type Profiler struct {
	interval time.Duration

	windowStart time.Time
	lastFrame   time.Time
	frames      int
	minFrame    time.Duration
	maxFrame    time.Duration

	mem            runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler returns a profiler that reports every interval. A non-positive interval means one second.
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{interval: interval}
}

// Tick records a frame finished at now.
//
// Parameters:
//   - now: the frame completion time
//
// Returns:
//   - Stats: the statistics of the window that just closed
//   - bool: true when the interval elapsed and Stats is populated
func (p *Profiler) Tick(now time.Time) (Stats, bool) {
	if p.windowStart.IsZero() {
		p.windowStart, p.lastFrame = now, now
		return Stats{}, false
	}

	dt := now.Sub(p.lastFrame)
	p.lastFrame = now
	if p.frames == 0 || dt < p.minFrame {
		p.minFrame = dt
	}
	p.maxFrame = max(p.maxFrame, dt)
	p.frames++

	elapsed := now.Sub(p.windowStart)
	if elapsed < p.interval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.mem)
	secs := elapsed.Seconds()
	s := Stats{
		FPS:          float64(p.frames) / secs,
		FrameTimeMin: p.minFrame,
		FrameTimeMax: p.maxFrame,
		HeapMB:       float64(p.mem.Alloc) / mb,
		SysMB:        float64(p.mem.Sys) / mb,
		AllocRateMBs: float64(p.mem.TotalAlloc-p.lastTotalAlloc) / mb / secs,
		GCCount:      p.mem.NumGC,
	}
	s.GCLastStop, s.GCMaxStop = gcPauses(&p.mem, p.lastGCCount)

	p.windowStart = now
	p.frames, p.minFrame, p.maxFrame = 0, 0, 0
	p.lastGCCount = p.mem.NumGC
	p.lastTotalAlloc = p.mem.TotalAlloc
	return s, true
}

// gcPauses returns the most recent pause and the longest pause among collections numbered
// since. PauseNs is a ring of the last 256 pauses.
func gcPauses(m *runtime.MemStats, since uint32) (last, longest time.Duration) {
	n := m.NumGC
	if n == 0 {
		return 0, 0
	}
	ring := uint32(len(m.PauseNs))
	last = time.Duration(m.PauseNs[(n-1)%ring])
	if n-since > ring {
		since = n - ring
	}
	for i := since; i < n; i++ {
		longest = max(longest, time.Duration(m.PauseNs[i%ring]))
	}
	return last, longest
}
