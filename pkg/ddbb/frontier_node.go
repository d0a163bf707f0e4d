package ddbb

// FrontierNode is an open subproblem queued for further exploration: a
// shared problem state, the longest-path length found so far to reach it,
// an admissible upper bound on any completion through it, and the partial
// assignment (path) that reached it.
type FrontierNode[T comparable] struct {
	State T
	LPLen int64
	UB    int64
	Path  *PartialAssignment
}

// RootFrontierNode builds the initial FrontierNode for a Problem: the
// problem's initial state, at lp_len = initial_value(), with ub = +infinity
// (no information yet) and an empty path.
func RootFrontierNode[T comparable](p Problem[T]) FrontierNode[T] {
	return FrontierNode[T]{
		State: p.InitialState(),
		LPLen: p.InitialValue(),
		UB:    MaxValue,
		Path:  EmptyAssignment,
	}
}

// MaxValue / MinValue stand in for +/-infinity over the solver's isize-like
// objective domain (Go has no native signed-infinity for int64). They are
// +/-(2^62 - 1), not the full int64 range.
const (
	MaxValue = int64(1)<<62 - 1
	MinValue = -(int64(1)<<62 - 1)
)
