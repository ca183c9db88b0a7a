package engine

import (
	"sync/atomic"
	"time"
)

// Stats holds cumulative counters shared by the frame loop and tile jobs.
type Stats struct {
	rays   atomic.Int64
	frames atomic.Int64
	start  time.Time
}

// NewStats starts the clock now.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// AddRays records n traced primary rays. Safe for concurrent use.
func (s *Stats) AddRays(n int) { s.rays.Add(int64(n)) }

// AddFrame records one finished frame and returns the new total.
func (s *Stats) AddFrame() int64 { return s.frames.Add(1) }

func (s *Stats) Rays() int64   { return s.rays.Load() }
func (s *Stats) Frames() int64 { return s.frames.Load() }

// Report is a point-in-time view of the counters.
type Report struct {
	Rays    int64
	Frames  int64
	Elapsed time.Duration
	RPS     float64 // rays per second
	FPS     float64 // frames per second
}

// Snapshot computes throughput since the stats were created.
func (s *Stats) Snapshot() Report {
	return s.snapshotAt(time.Now())
}

func (s *Stats) snapshotAt(now time.Time) Report {
	r := Report{
		Rays:    s.Rays(),
		Frames:  s.Frames(),
		Elapsed: now.Sub(s.start),
	}
	if secs := r.Elapsed.Seconds(); secs > 0 {
		r.RPS = float64(r.Rays) / secs
		r.FPS = float64(r.Frames) / secs
	}
	return r
}
