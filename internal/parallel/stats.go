// Package parallel instruments a Solver's worker pool: running counters for
// how much work has been done, and a timeout-based monitor (deadlock.go)
// that flags a worker stuck compiling the same subproblem for too long.
package parallel

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Stats accumulates running totals for one Solver.Maximize call: how many
// subproblems have been explored and how the idle-worker count evolved over
// the run — a widening idle-worker count means the frontier is starving,
// useful when tuning worker count against problem size.
type Stats struct {
	startTime time.Time

	explored int64 // atomic

	mu                sync.Mutex
	peakIdleWorkers   int
	idleWorkerHistory []idleSample
}

type idleSample struct {
	at   time.Time
	idle int
}

// NewStats starts a fresh Stats collector, its clock running from now.
func NewStats() *Stats {
	return &Stats{
		startTime:         time.Now(),
		idleWorkerHistory: make([]idleSample, 0, 256),
	}
}

// RecordExplored records that one subproblem finished compiling (whether it
// resolved outright or reinserted a cutset).
func (s *Stats) RecordExplored() {
	atomic.AddInt64(&s.explored, 1)
}

// RecordIdleWorkers records the number of workers currently waiting for
// frontier work, for peak/history tracking. Bounded to the last 1000
// samples so a long-running solve doesn't grow this unboundedly.
func (s *Stats) RecordIdleWorkers(idle int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idle > s.peakIdleWorkers {
		s.peakIdleWorkers = idle
	}
	s.idleWorkerHistory = append(s.idleWorkerHistory, idleSample{at: time.Now(), idle: idle})
	if len(s.idleWorkerHistory) > 1000 {
		s.idleWorkerHistory = s.idleWorkerHistory[1:]
	}
}

// Snapshot is an immutable copy of a Stats collector's current totals.
type Snapshot struct {
	Elapsed             time.Duration
	SubproblemsExplored int64
	PeakIdleWorkers     int
}

// Snapshot returns the current totals.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Elapsed:             time.Since(s.startTime),
		SubproblemsExplored: atomic.LoadInt64(&s.explored),
		PeakIdleWorkers:     s.peakIdleWorkers,
	}
}

// String implements fmt.Stringer.
func (s Snapshot) String() string {
	return fmt.Sprintf("parallel.Snapshot{elapsed=%v explored=%d peak_idle=%d}",
		s.Elapsed, s.SubproblemsExplored, s.PeakIdleWorkers)
}
