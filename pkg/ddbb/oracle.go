package ddbb

// Problem is the domain-specific dynamic-programming model the solver
// maximizes over. Implementations are assumed total and pure: infeasibility
// is expressed by returning an empty Domain from DomainOf, never by a panic
// or error. Problem and Relaxation are shared read-only across worker
// goroutines and must be safe for concurrent use.
type Problem[T comparable] interface {
	// NbVars returns the number of decision variables, n. Variables are the
	// integers in [0, n).
	NbVars() int

	// InitialState returns the state of the empty assignment.
	InitialState() T

	// InitialValue returns the objective value of the empty assignment.
	InitialValue() int64

	// DomainOf returns the values variable may take in state. Domains may
	// depend on state; an empty Domain expresses infeasibility from state.
	DomainOf(state T, variable Variable) Domain

	// Transition returns the state reached by applying d from state, with
	// remaining the free-variable set of the layer being built (d.Variable
	// has already been removed from it).
	Transition(state T, remaining VarSet, d Decision) T

	// TransitionCost returns the (possibly negative) edge weight of
	// applying d from state.
	TransitionCost(state T, remaining VarSet, d Decision) int64
}

// Relaxation supplies the over-approximation used to compile relaxed DDs and
// derive valid upper bounds.
type Relaxation[T comparable] interface {
	// MergeStates returns a single state that over-approximates every state
	// yielded by states. Must be associative and commutative.
	//
	// The aggressively-bounded compiler (dd.go) never calls MergeStates or
	// RelaxEdge: it never materializes more than one overdue child per
	// layer (it inserts a single sentinel node instead of merging real
	// states, see spec §4.3). Both methods remain part of the contract
	// because they are the interface a relaxed DD compiler is specified
	// against (§4.1); implementations still provide them for completeness
	// and for any future relaxed-DD flavor built on this oracle.
	MergeStates(states []T) T

	// RelaxEdge returns the cost of the edge (src -> merged) that replaces
	// the edge (src -> dst), given the original edge's decision and cost.
	// The returned cost must be >= cost along any path being replaced.
	RelaxEdge(src, dst, merged T, d Decision, cost int64) int64

	// Estimate returns an admissible upper bound on the best completion
	// reachable from state (must be >= the true optimum from state).
	Estimate(state T) int64

	// DefaultRelaxedState returns the sentinel state used by the sentinel
	// node that absorbs every subset of states the aggressive bound refused
	// to materialize ("I know nothing about this subset of states").
	DefaultRelaxedState() T
}
