package ddbb

// WidthHeuristic returns the target maximum width w >= 1 for a layer given
// the set of variables still free at that point, used to bound restricted
// and relaxed compiles.
type WidthHeuristic interface {
	MaxWidth(free VarSet) int
}

// FixedWidth is a WidthHeuristic that always returns the same width,
// regardless of how many variables remain free.
type FixedWidth int

// MaxWidth implements WidthHeuristic.
func (w FixedWidth) MaxWidth(VarSet) int {
	if w < 1 {
		return 1
	}
	return int(w)
}

// LinearWidth is a WidthHeuristic linear in the number of free variables:
// MaxWidth = max(1, Factor * |free|).
type LinearWidth struct {
	Factor int
}

// MaxWidth implements WidthHeuristic.
func (w LinearWidth) MaxWidth(free VarSet) int {
	factor := w.Factor
	if factor < 1 {
		factor = 1
	}
	width := factor * free.Len()
	if width < 1 {
		return 1
	}
	return width
}

// VariableHeuristic chooses the next variable to branch on, given the set
// of variables still free and the states present in the previous and next
// (partially developed) layers. Must return (0, false) exactly when free is
// empty.
type VariableHeuristic[T comparable] interface {
	SelectVariable(free VarSet, prevLayerStates, nextLayerStates []T) (Variable, bool)
}

// NaturalVariableOrder is the default VariableHeuristic: it always selects
// the lowest-indexed free variable, ignoring layer contents. It is
// deterministic and state-independent.
type NaturalVariableOrder[T comparable] struct{}

// SelectVariable implements VariableHeuristic.
func (NaturalVariableOrder[T]) SelectVariable(free VarSet, _, _ []T) (Variable, bool) {
	if free.Len() == 0 {
		return 0, false
	}
	best := Variable(-1)
	free.ForEach(func(v Variable) {
		if best == -1 || v < best {
			best = v
		}
	})
	return best, true
}

// NodeSelectionHeuristic totally orders nodes of the same layer so the
// compiler can decide which to develop first (and, if the layer must be
// aggressively bounded, which to drop). Less reports whether a sorts
// strictly before b; the compiler sorts a layer snapshot in *descending*
// order (most promising first), per spec §4.3 step 1.
type NodeSelectionHeuristic[T comparable] interface {
	Less(a, b *Node[T]) bool
}

// DefaultNodeOrder orders nodes by UB descending (most promising first, the
// classic DD node-selection order), tie-broken by Value (the longest-path
// length) descending, then by creation order for full determinism.
type DefaultNodeOrder[T comparable] struct{}

// Less implements NodeSelectionHeuristic.
func (DefaultNodeOrder[T]) Less(a, b *Node[T]) bool {
	if a.UB() != b.UB() {
		return a.UB() < b.UB()
	}
	if a.Value != b.Value {
		return a.Value < b.Value
	}
	return a.seq < b.seq
}

// FrontierOrder totally orders FrontierNode values for the frontier's
// priority queue; Less reports whether a must be popped strictly after b
// (i.e. b is "larger"/preferred). The recommended order (spec §4.2) is
// descending ub, refined by domain-specific tie-breaks.
type FrontierOrder[T comparable] interface {
	Less(a, b FrontierNode[T]) bool
}

// DefaultFrontierOrder orders by UB descending, tie-broken by LPLen
// descending — prefer exploring the most promising, then the most advanced,
// subproblem first.
type DefaultFrontierOrder[T comparable] struct{}

// Less implements FrontierOrder.
func (DefaultFrontierOrder[T]) Less(a, b FrontierNode[T]) bool {
	if a.UB != b.UB {
		return a.UB < b.UB
	}
	return a.LPLen < b.LPLen
}

// LoadVars reconstructs the VarSet of variables still free at a given
// FrontierNode, e.g. by replaying the node's path against the full variable
// universe. The default implementation below removes every Variable named
// by a Decision along the node's path from the full [0, n) set.
type LoadVars[T comparable] interface {
	FreeVars(n FrontierNode[T]) VarSet
}

// PathLoadVars is the default LoadVars: it starts from the full [0, n)
// VarSet and removes every variable that already has a Decision on the
// node's path.
type PathLoadVars[T comparable] struct {
	NbVars int
}

// FreeVars implements LoadVars.
func (lv PathLoadVars[T]) FreeVars(n FrontierNode[T]) VarSet {
	vs := NewVarSet(lv.NbVars)
	for _, d := range n.Path.Decisions() {
		vs.Remove(d.Variable)
	}
	return vs
}
