package ddbb

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gitrdm/ddbb/internal/parallel"
	"github.com/gitrdm/ddbb/pkg/ddbb/ddmetrics"
)

// Result is the outcome of a Maximize call.
type Result[T comparable] struct {
	// RunID correlates this result with the log lines (field "run_id") a
	// Solver emitted while producing it.
	RunID string
	// IsExact reports whether the search proved optimality: every relaxed
	// compile either turned out exact or was pruned against the final
	// incumbent, so no reachable subproblem was left unexplored.
	IsExact bool
	// BestValue is the best objective value found, or MinValue if the
	// problem is infeasible.
	BestValue int64
	// BestSolution is the assignment achieving BestValue. Only meaningful
	// when HasSolution is true.
	BestSolution Solution
	// HasSolution reports whether any feasible solution was found.
	HasSolution bool
	// Explored is the number of subproblems popped off the frontier and
	// compiled.
	Explored int64
}

// Err reports ErrInfeasible when the search proved optimality and found no
// solution, ErrCutoff when the search was cut short before proving
// optimality, or nil otherwise. Callers that only care about success/failure
// can use this instead of inspecting IsExact and HasSolution directly.
func (r Result[T]) Err() error {
	switch {
	case r.IsExact && !r.HasSolution:
		return ErrInfeasible
	case !r.IsExact:
		return ErrCutoff
	default:
		return nil
	}
}

// SolverOption customizes a Solver built by NewSolver.
type SolverOption[T comparable] func(*Solver[T])

// WithWorkers overrides the number of worker goroutines (default
// runtime.GOMAXPROCS(0)).
func WithWorkers[T comparable](n int) SolverOption[T] {
	return func(s *Solver[T]) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithFrontier overrides the default NoDupFrontier with a caller-supplied
// Frontier (e.g. NewNoForgetFrontier for problems whose states rarely
// recur).
func WithFrontier[T comparable](f Frontier[T]) SolverOption[T] {
	return func(s *Solver[T]) { s.frontier = f }
}

// WithLogger overrides the default no-op zap.Logger.
func WithLogger[T comparable](logger *zap.Logger) SolverOption[T] {
	return func(s *Solver[T]) { s.logger = logger }
}

// WithMetrics overrides the default (unregistered) ddmetrics.Collector.
func WithMetrics[T comparable](m *ddmetrics.Collector) SolverOption[T] {
	return func(s *Solver[T]) { s.metrics = m }
}

// WithStuckWorkerTimeout enables a background monitor that logs a warning
// whenever a worker spends longer than timeout compiling a single
// subproblem without finishing. A well-formed Relaxation.Estimate keeps
// compiles bounded by maxWidth, so a firing alert usually means the
// Relaxation is too loose to ever tighten, not that the search is merely
// slow. Disabled by default.
func WithStuckWorkerTimeout[T comparable](timeout time.Duration) SolverOption[T] {
	return func(s *Solver[T]) { s.stuckTimeout = timeout }
}

// Solver drives a pool of workers that pop subproblems from a shared
// Frontier, tighten the incumbent, and reinsert the exact cutset of every
// non-exact relaxed compile, until the frontier empties, the configured
// Cutoff fires, or the caller's context is cancelled (spec §4.5, §5).
type Solver[T comparable] struct {
	cfg     Config[T]
	workers int

	frontier Frontier[T]
	logger   *zap.Logger
	metrics  *ddmetrics.Collector

	stuckTimeout time.Duration
	stats        *parallel.Stats
	monitor      *parallel.StuckWorkerMonitor

	abort *AbortSignal

	mu       sync.Mutex
	cond     *sync.Cond
	idle     int
	explored int64
	bestLB   int64
	bestSol  Solution
	haveSol  bool
	stopping bool
	cutoff   bool
}

// NewSolver builds a Solver for cfg. The Frontier, worker count, logger,
// and metrics collector all default to sensible values and can be
// overridden via options.
func NewSolver[T comparable](cfg Config[T], opts ...SolverOption[T]) *Solver[T] {
	s := &Solver[T]{
		cfg:      cfg,
		workers:  runtime.GOMAXPROCS(0),
		frontier: NewNoDupFrontier[T](DefaultFrontierOrder[T]{}),
		logger:   zap.NewNop(),
		metrics:  ddmetrics.NewNopCollector(),
		abort:    &AbortSignal{},
		bestLB:   MinValue,
		stats:    parallel.NewStats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cond = sync.NewCond(&s.mu)
	s.cfg.Cutoff = WithAbortSignal(s.cfg.Cutoff, s.abort)
	return s
}

// Maximize runs the search to completion (or until ctx is cancelled) and
// returns the best solution found. It is safe to call only once per Solver.
func (s *Solver[T]) Maximize(ctx context.Context) Result[T] {
	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	s.frontier.Push(s.cfg.RootNode(), s.bestLB)
	s.metrics.FrontierSize.Set(float64(s.frontier.Len()))

	logger.Info("maximize started",
		zap.Int("workers", s.workers),
		zap.Int("nb_vars", s.cfg.Problem.NbVars()),
	)

	go func() {
		<-ctx.Done()
		s.raiseAbort(logger, "context cancelled")
	}()

	var monitor *parallel.StuckWorkerMonitor
	if s.stuckTimeout > 0 {
		monitor = parallel.NewStuckWorkerMonitor(s.stuckTimeout, s.stuckTimeout/4)
		go func() {
			for alert := range monitor.Alerts() {
				logger.Warn("worker appears stuck",
					zap.Int("worker", alert.WorkerID),
					zap.String("stage", alert.Stage),
					zap.Duration("since", time.Since(alert.Since)),
				)
			}
		}()
		defer monitor.Shutdown()
	}
	s.monitor = monitor

	var wg sync.WaitGroup
	wg.Add(s.workers)
	for w := 0; w < s.workers; w++ {
		go func(id int) {
			defer wg.Done()
			s.runWorker(id, logger.With(zap.Int("worker", id)))
		}(w)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	result := Result[T]{
		RunID:        runID,
		IsExact:      !s.cutoff && s.frontier.Len() == 0,
		BestValue:    s.bestLB,
		BestSolution: s.bestSol,
		HasSolution:  s.haveSol,
		Explored:     s.explored,
	}
	logger.Info("maximize finished",
		zap.Bool("is_exact", result.IsExact),
		zap.Int64("best_value", result.BestValue),
		zap.Int64("explored", result.Explored),
		zap.Stringer("stats", s.stats.Snapshot()),
	)
	return result
}

// Stats returns a snapshot of the solver's running execution statistics.
// Safe to call concurrently with Maximize.
func (s *Solver[T]) Stats() parallel.Snapshot {
	return s.stats.Snapshot()
}

// raiseAbort flips the shared AbortSignal and wakes every worker blocked
// waiting for frontier work, exactly once.
func (s *Solver[T]) raiseAbort(logger *zap.Logger, reason string) {
	s.mu.Lock()
	already := s.abort.IsRaised()
	if !already {
		s.abort.Raise()
		s.cutoff = true
	}
	s.mu.Unlock()
	if !already {
		logger.Info("search aborted", zap.String("reason", reason))
		s.cond.Broadcast()
	}
}

// runWorker is the per-goroutine loop (spec §4.5 "Worker loop" / §5 "Idle
// counting termination"): pop a subproblem under the shared lock, compile
// it outside the lock, and push back whatever work the compile produced.
// The pool terminates once every worker is simultaneously idle with an
// empty frontier, or the abort signal fires.
func (s *Solver[T]) runWorker(id int, logger *zap.Logger) {
	dd := NewDD[T](s.cfg)
	for {
		node, ok := s.popNode()
		if !ok {
			return // pool-wide termination or abort, observed while idle
		}

		bestLB := s.snapshotBestLB()
		if node.UB <= bestLB {
			continue // pruned: no subproblem reachable from node can beat the incumbent
		}

		if s.abort.IsRaised() {
			s.requeue(node)
			return
		}

		if s.monitor != nil {
			s.monitor.Begin(id, "restricted-compile")
		}
		restricted, err := dd.Restricted(node, bestLB, node.UB)
		if s.monitor != nil {
			s.monitor.End(id)
		}
		if err != nil {
			s.raiseAbort(logger, "restricted compile cutoff")
			s.requeue(node)
			return
		}
		s.countExplored()

		// Publish whatever incumbent the restricted compile found, exact or
		// not: spec §4.5 step 5 drives the incumbent primarily off the
		// restricted compile, not just exact ones. Only an exact restricted
		// compile lets the worker skip the relaxed compile entirely.
		s.tryImprove(logger, restricted.BestValue, dd)
		if restricted.IsExact {
			continue
		}

		bestLB = s.snapshotBestLB()
		if s.monitor != nil {
			s.monitor.Begin(id, "relaxed-compile")
		}
		relaxed, err := dd.Relaxed(node, bestLB, node.UB)
		if s.monitor != nil {
			s.monitor.End(id)
		}
		if err != nil {
			s.raiseAbort(logger, "relaxed compile cutoff")
			s.requeue(node)
			return
		}

		if relaxed.IsExact {
			s.tryImprove(logger, relaxed.BestValue, dd)
			continue
		}

		bestLB = s.snapshotBestLB()
		if relaxed.BestValue <= bestLB {
			continue // relaxed upper bound cannot beat the incumbent: nothing to reinsert
		}

		dd.ForEachCutsetNode(func(cutsetNode FrontierNode[T]) {
			s.pushNode(cutsetNode)
		})
	}
}

// popNode pops the next subproblem, blocking while the frontier is empty
// and other workers might still produce more work. Returns ok=false once
// every worker is simultaneously idle (search exhausted) or the abort
// signal has been raised.
func (s *Solver[T]) popNode() (FrontierNode[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.abort.IsRaised() {
			return FrontierNode[T]{}, false
		}
		if n, ok := s.frontier.Pop(); ok {
			s.metrics.FrontierSize.Set(float64(s.frontier.Len()))
			return n, true
		}
		s.idle++
		s.metrics.WorkersIdle.Set(float64(s.idle))
		s.stats.RecordIdleWorkers(s.idle)
		if s.idle == s.workers {
			s.stopping = true
			s.cond.Broadcast()
			return FrontierNode[T]{}, false
		}
		for s.frontier.Len() == 0 && !s.stopping && !s.abort.IsRaised() {
			s.cond.Wait()
		}
		s.idle--
		s.metrics.WorkersIdle.Set(float64(s.idle))
		if s.stopping || s.abort.IsRaised() {
			return FrontierNode[T]{}, false
		}
	}
}

// pushNode inserts n onto the shared frontier and wakes one waiting worker.
func (s *Solver[T]) pushNode(n FrontierNode[T]) {
	s.mu.Lock()
	s.frontier.Push(n, s.bestLB)
	s.metrics.FrontierSize.Set(float64(s.frontier.Len()))
	s.mu.Unlock()
	s.cond.Signal()
}

// requeue is pushNode's counterpart for a subproblem a worker popped but
// could not finish compiling before observing an abort; it must go back
// onto the frontier unpruned so a resumed search (or a caller inspecting
// IsExact=false) does not silently lose it.
func (s *Solver[T]) requeue(n FrontierNode[T]) {
	s.mu.Lock()
	s.frontier.Push(n, MinValue)
	s.mu.Unlock()
}

func (s *Solver[T]) snapshotBestLB() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestLB
}

func (s *Solver[T]) countExplored() {
	s.mu.Lock()
	s.explored++
	s.mu.Unlock()
	s.metrics.NodesExplored.Add(1)
	s.stats.RecordExplored()
}

// tryImprove updates the incumbent if value beats the current best, taking
// the best solution from dd.
func (s *Solver[T]) tryImprove(logger *zap.Logger, value int64, dd *DD[T]) {
	s.mu.Lock()
	improved := value > s.bestLB
	if improved {
		s.bestLB = value
		if sol, ok := dd.BestSolution(); ok {
			s.bestSol = sol
			s.haveSol = true
		}
	}
	s.mu.Unlock()
	if improved {
		s.metrics.Incumbent.Set(float64(value))
		logger.Debug("incumbent improved", zap.Int64("value", value))
	}
}
