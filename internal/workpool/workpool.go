// Package workpool carries the per-region telemetry the Parallel Execution
// Layer reports when a logger is configured, trimmed to the counters a
// one-shot fork-join region can actually produce: this design has no
// long-lived background workers, so dynamic scaling, work-stealing,
// queue-depth sampling, and deadlock detection have nothing to measure and
// are dropped (see DESIGN.md).
package workpool

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Stats accumulates submission/completion/failure counts and timing for
// one parallel region (one layer, one rake, one PILOT step).
type Stats struct {
	mu sync.Mutex

	start time.Time
	end   time.Time

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64

	totalDuration time.Duration
}

// NewStats starts a new stats collector, timed from now.
func NewStats() *Stats {
	return &Stats{start: time.Now()}
}

// RecordSubmitted records one unit of work handed to a worker.
func (s *Stats) RecordSubmitted() { s.submitted.Add(1) }

// RecordCompleted records one unit of work finishing successfully after
// duration d.
func (s *Stats) RecordCompleted(d time.Duration) {
	s.completed.Add(1)
	s.mu.Lock()
	s.totalDuration += d
	s.mu.Unlock()
}

// RecordFailed records one unit of work returning an error.
func (s *Stats) RecordFailed() { s.failed.Add(1) }

// Finalize stamps the region's end time. Call once, after every worker has
// joined.
func (s *Stats) Finalize() {
	s.mu.Lock()
	s.end = time.Now()
	s.mu.Unlock()
}

// Snapshot is an immutable copy of Stats suitable for logging.
type Snapshot struct {
	Submitted   int64
	Completed   int64
	Failed      int64
	Duration    time.Duration
	AverageTask time.Duration
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.end
	if end.IsZero() {
		end = time.Now()
	}
	completed := s.completed.Load()
	var avg time.Duration
	if completed > 0 {
		avg = s.totalDuration / time.Duration(completed)
	}
	return Snapshot{
		Submitted:   s.submitted.Load(),
		Completed:   completed,
		Failed:      s.failed.Load(),
		Duration:    end.Sub(s.start),
		AverageTask: avg,
	}
}

// String renders a one-line summary, for logiface field values.
func (s Snapshot) String() string {
	return fmt.Sprintf("submitted=%d completed=%d failed=%d duration=%s avg_task=%s",
		s.Submitted, s.Completed, s.Failed, s.Duration, s.AverageTask)
}
