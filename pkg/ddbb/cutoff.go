package ddbb

import (
	"sync/atomic"
	"time"
)

// Cutoff is a stateless predicate evaluated before developing each DD layer
// (spec §4.3 "Failure"): once it returns true, the current compile aborts
// with ErrCutoff.
type Cutoff interface {
	MustStop(bestLB, currentUB int64) bool
}

// NoCutoff never stops a compile early.
type NoCutoff struct{}

// MustStop implements Cutoff.
func (NoCutoff) MustStop(int64, int64) bool { return false }

// TimeBudget stops every compile once wall-clock time elapsed since
// construction exceeds Budget.
type TimeBudget struct {
	start  time.Time
	Budget time.Duration
}

// NewTimeBudget captures the current wall-clock time and returns a Cutoff
// that fires once Budget has elapsed.
func NewTimeBudget(budget time.Duration) *TimeBudget {
	return &TimeBudget{start: time.Now(), Budget: budget}
}

// MustStop implements Cutoff.
func (tb *TimeBudget) MustStop(int64, int64) bool {
	return time.Since(tb.start) >= tb.Budget
}

// AbortSignal is a shared, concurrency-safe flag any worker can raise after
// observing a cutoff, and every worker checks at the start of its next
// compile (spec §5 "Cancellation"). It composes with any Cutoff: wrap a
// configured Cutoff with WithAbortSignal so that one worker's timeout also
// halts its siblings.
type AbortSignal struct {
	aborted atomic.Bool
}

// Raise sets the abort flag. Idempotent.
func (a *AbortSignal) Raise() {
	a.aborted.Store(true)
}

// IsRaised reports whether the flag has been set.
func (a *AbortSignal) IsRaised() bool {
	return a.aborted.Load()
}

// abortAwareCutoff wraps a Cutoff so that it also fires when the shared
// AbortSignal has been raised by any other worker.
type abortAwareCutoff struct {
	inner  Cutoff
	signal *AbortSignal
}

// WithAbortSignal returns a Cutoff that fires whenever inner fires or signal
// has been raised.
func WithAbortSignal(inner Cutoff, signal *AbortSignal) Cutoff {
	return &abortAwareCutoff{inner: inner, signal: signal}
}

// MustStop implements Cutoff.
func (c *abortAwareCutoff) MustStop(bestLB, currentUB int64) bool {
	if c.signal.IsRaised() {
		return true
	}
	return c.inner.MustStop(bestLB, currentUB)
}
