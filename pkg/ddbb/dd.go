package ddbb

import (
	"math"
	"sort"
)

// Kind selects which of the three DD flavors a compile produces.
type Kind int

const (
	// KindExact compiles with unbounded width; yields an optimal solution
	// over the subproblem.
	KindExact Kind = iota
	// KindRestricted compiles with a bounded width by dropping overdue
	// nodes before they are ever generated; yields a feasible solution and
	// therefore a lower bound.
	KindRestricted
	// KindRelaxed compiles with a bounded width by inserting a sentinel
	// node that absorbs every overdue node's upper bound; yields an upper
	// bound and a cutset suitable for branching.
	KindRelaxed
)

// DD is the aggressively-bounded decision-diagram compiler: the algorithmic
// heart of the solver (spec §4.3). Unlike a conventional bounded DD, it
// never materializes an "overdue" child in the first place — before every
// child is emitted it re-checks the squash predicate, and as soon as it
// fires it stops expanding and (for relaxed compiles) inserts exactly one
// sentinel node that absorbs the upper bound of everything it refused to
// generate.
//
// A DD is heavy (three preallocated layer maps) and meant to be reused
// across many subproblems by a single worker; every Exact/Restricted/
// Relaxed call resets it to a fresh state before developing, preserving the
// maps' allocated capacity.
type DD[T comparable] struct {
	cfg Config[T]

	kind     Kind
	layers   [3]map[T]*Node[T]
	cur      int
	next     int
	lel      int
	prev     int
	isExact  bool
	maxWidth int

	rootPath *PartialAssignment
	bestLB   int64
	bestNode *Node[T]

	buffer []*Node[T]
	seq    int64
}

// NewDD builds a DD compiler parameterized by cfg. Build one per worker and
// reuse it across every subproblem that worker compiles.
func NewDD[T comparable](cfg Config[T]) *DD[T] {
	dd := &DD[T]{cfg: cfg}
	dd.clear()
	return dd
}

// clear resets the compiler's layers and flags to develop a fresh
// subproblem, preserving the layer maps' allocated capacity (spec §3
// "DD object" lifecycle).
func (dd *DD[T]) clear() {
	dd.kind = KindExact
	dd.cur, dd.next, dd.lel, dd.prev = 0, 1, 2, 0
	dd.isExact = true
	dd.maxWidth = math.MaxInt
	dd.bestNode = nil
	dd.bestLB = MinValue
	for i := range dd.layers {
		if dd.layers[i] == nil {
			dd.layers[i] = make(map[T]*Node[T])
		} else {
			clear(dd.layers[i])
		}
	}
	dd.buffer = dd.buffer[:0]
	dd.seq = 0
}

// Exact compiles an exact DD from root: width is unbounded, so the result
// is an optimal solution over the subproblem (unless a cutoff fires).
func (dd *DD[T]) Exact(root FrontierNode[T], bestLB, ub int64) (Completion, error) {
	dd.clear()
	free := dd.cfg.LoadVars.FreeVars(root)
	dd.kind = KindExact
	dd.maxWidth = math.MaxInt
	return dd.develop(root, free, bestLB, ub)
}

// Restricted compiles a width-bounded DD from root that drops the least
// promising nodes outright; its best value is a valid lower bound.
func (dd *DD[T]) Restricted(root FrontierNode[T], bestLB, ub int64) (Completion, error) {
	dd.clear()
	free := dd.cfg.LoadVars.FreeVars(root)
	dd.kind = KindRestricted
	dd.maxWidth = dd.cfg.Width.MaxWidth(free)
	return dd.develop(root, free, bestLB, ub)
}

// Relaxed compiles a width-bounded DD from root that merges the overdue
// nodes' bound into one sentinel; its best value is a valid upper bound,
// and ForEachCutsetNode yields the nodes the search should resume from.
func (dd *DD[T]) Relaxed(root FrontierNode[T], bestLB, ub int64) (Completion, error) {
	dd.clear()
	free := dd.cfg.LoadVars.FreeVars(root)
	dd.kind = KindRelaxed
	dd.maxWidth = dd.cfg.Width.MaxWidth(free)
	return dd.develop(root, free, bestLB, ub)
}

// IsExact reports whether the diagram compiled by the last call is exact. A
// relaxed DD can still be exact if its best node's best-edge chain was
// never contaminated by a merge.
func (dd *DD[T]) IsExact() bool {
	if dd.isExact {
		return true
	}
	return dd.kind == KindRelaxed && (dd.bestNode == nil || dd.bestNode.HasExactBest())
}

// BestValue returns the value of the longest root-to-terminal path found,
// or MinValue if the subproblem has no feasible completion.
func (dd *DD[T]) BestValue() int64 {
	if dd.bestNode == nil {
		return MinValue
	}
	return dd.bestNode.Value
}

// BestSolution returns the flattened assignment of the best terminal node,
// or (_, false) if no terminal node survived (infeasible subproblem or
// every node pruned by the incumbent).
func (dd *DD[T]) BestSolution() (Solution, bool) {
	if dd.bestNode == nil {
		return Solution{}, false
	}
	return NewSolution(dd.rootPath.ExtendFragment(dd.bestNode.path())), true
}

// ForEachCutsetNode calls fn once per cutset node: the full last-exact-layer
// for a restricted DD, or the last-exact-layer clamped to best_value for a
// relaxed DD. Calls fn zero times for an exact DD, or for any DD that
// turned out to be exact after all.
func (dd *DD[T]) ForEachCutsetNode(fn func(FrontierNode[T])) {
	if dd.IsExact() {
		return
	}
	switch dd.kind {
	case KindExact:
		// nothing to do
	case KindRestricted:
		for _, n := range dd.layers[dd.lel] {
			fn(n.toFrontierNode(dd.rootPath))
		}
	case KindRelaxed:
		ub := dd.BestValue()
		if ub > dd.bestLB {
			for _, n := range dd.layers[dd.lel] {
				node := n.toFrontierNode(dd.rootPath)
				if ub < node.UB {
					node.UB = ub
				}
				fn(node)
			}
		}
	}
}

// develop unrolls the requested kind of DD starting from root, considering
// only variables in vars and only nodes whose bound exceeds bestLB.
func (dd *DD[T]) develop(root FrontierNode[T], vars VarSet, bestLB, ub int64) (Completion, error) {
	dd.rootPath = root.Path
	dd.bestLB = bestLB

	rootNode := &Node[T]{
		State:    root.State,
		Value:    root.LPLen,
		Estimate: 0,
		Flags:    newRootFlags(),
		seq:      dd.nextSeq(),
	}
	dd.layers[dd.next][root.State] = rootNode

	depth := 0
	for {
		variable, ok := dd.cfg.VarOrder.SelectVariable(vars, dd.statesOf(dd.prev), dd.statesOf(dd.next))
		if !ok {
			break
		}
		if dd.cfg.Cutoff.MustStop(bestLB, ub) {
			return Completion{}, ErrCutoff
		}

		dd.addLayer()
		vars.Remove(variable)
		depth++

		dd.buffer = dd.buffer[:0]
		for _, n := range dd.layers[dd.cur] {
			dd.buffer = append(dd.buffer, n)
		}
		order := dd.cfg.NodeOrder
		sort.Slice(dd.buffer, func(i, j int) bool {
			return order.Less(dd.buffer[j], dd.buffer[i])
		})

		// mustSquash is monotone within a layer (the layer only grows), so
		// once it fires it stays fired; the outer loop is deliberately left
		// to run to its next iteration (no break) after a mid-domain squash
		// so that its top-of-loop check below re-evaluates and advances
		// firstSquashed to the next, fully-skipped node — matching the
		// reference's "first_squashed_node" never pointing at a node that
		// was itself already partially expanded, unless it was the very
		// last node in the layer (in which case there is no next node to
		// advance to, and it is the one the sentinel's bound absorbs).
		squashed := false
		firstSquashed := -1
		for idx, src := range dd.buffer {
			if dd.mustSquash(depth) {
				squashed = true
				firstSquashed = idx
				break
			}
			dom := dd.cfg.Problem.DomainOf(src.State, variable)
			for {
				val, hasNext := dom.next()
				if !hasNext {
					break
				}
				if dd.mustSquash(depth) {
					squashed = true
					firstSquashed = idx
					break
				}
				decision := Decision{Variable: variable, Value: val}
				state := dd.cfg.Problem.Transition(src.State, vars, decision)
				weight := dd.cfg.Problem.TransitionCost(src.State, vars, decision)
				dd.branch(src, state, decision, weight)
			}
		}

		if squashed {
			switch dd.kind {
			case KindExact:
				// unreachable: mustSquash is always false for KindExact
			case KindRestricted:
				dd.rememberLEL()
			case KindRelaxed:
				dd.rememberLEL()
				maxUB := MinValue
				for _, n := range dd.buffer[firstSquashed:] {
					if u := n.UB(); u > maxUB {
						maxUB = u
					}
				}
				dd.addDefaultRelaxedNode(maxUB)
			}
		}
	}

	return dd.finalize(), nil
}

// mustSquash reports whether the next child about to be emitted must
// instead be dropped: the first layer below the root is never squashed
// (depth > 1 guards every case), after which restricted compiles cap at
// maxWidth and relaxed compiles cap at maxWidth-1 (reserving a slot for the
// sentinel).
func (dd *DD[T]) mustSquash(depth int) bool {
	switch dd.kind {
	case KindRestricted:
		return depth > 1 && len(dd.layers[dd.next]) >= dd.maxWidth
	case KindRelaxed:
		return depth > 1 && len(dd.layers[dd.next]) >= dd.maxWidth-1
	default:
		return false
	}
}

// addLayer rotates the three layer slots by index swap (O(1), no
// allocation): the layer just built becomes "current", and "next" is
// cleared to receive the layer about to be built.
func (dd *DD[T]) addLayer() {
	dd.cur, dd.next = dd.next, dd.cur
	dd.prev = dd.cur
	clear(dd.layers[dd.next])
}

// branch records one child of src reached via decision, merging it into an
// existing node for the same state if one already exists in the next layer.
func (dd *DD[T]) branch(src *Node[T], dest T, decision Decision, weight int64) {
	child := Node[T]{
		State: dest,
		Value: src.Value + weight,
		Flags: src.Flags,
		BestEdge: &Edge[T]{
			Parent:   src,
			Weight:   weight,
			Decision: decision,
		},
	}
	dd.addNode(child)
}

// addDefaultRelaxedNode inserts the sentinel node absorbing every node the
// aggressive bound refused to generate this layer: its Value is the
// greatest UB among the nodes it absorbed.
func (dd *DD[T]) addDefaultRelaxedNode(ub int64) {
	n := Node[T]{
		State: dd.cfg.Relax.DefaultRelaxedState(),
		Value: ub,
		Flags: newRelaxedFlags(),
	}
	dd.addNode(n)
}

// addNode inserts n into the next layer, or merges it into the existing
// node for the same state (spec §4.3 "Child insertion"). A brand-new node's
// estimate is computed (and the strict incumbent prune applied) exactly
// once, here — callers never set Estimate themselves.
func (dd *DD[T]) addNode(n Node[T]) {
	if existing, ok := dd.layers[dd.next][n.State]; ok {
		n.Estimate = dd.cfg.Relax.Estimate(n.State)
		mergeInto(existing, n)
		return
	}
	n.Estimate = dd.cfg.Relax.Estimate(n.State)
	if n.Value+n.Estimate > dd.bestLB {
		n.seq = dd.nextSeq()
		nn := n
		dd.layers[dd.next][n.State] = &nn
	}
}

// rememberLEL records the current layer as the last exact layer the first
// time a squash occurs in this compile; subsequent squashes in the same
// compile are no-ops (the LEL is only ever the *first* layer width was
// violated in).
func (dd *DD[T]) rememberLEL() {
	if dd.isExact {
		dd.isExact = false
		dd.cur, dd.lel = dd.lel, dd.cur
	}
}

// finalize picks the best (highest-Value) node of the final layer, breaking
// ties deterministically by creation order since Go map iteration order is
// randomized.
func (dd *DD[T]) finalize() Completion {
	var best *Node[T]
	for _, n := range dd.layers[dd.next] {
		if best == nil || n.Value > best.Value || (n.Value == best.Value && n.seq < best.seq) {
			best = n
		}
	}
	dd.bestNode = best
	return Completion{
		IsExact:   dd.IsExact(),
		BestValue: dd.BestValue(),
	}
}

func (dd *DD[T]) nextSeq() int64 {
	dd.seq++
	return dd.seq
}

// statesOf returns the states present in layer slot idx, for the
// VariableHeuristic.
func (dd *DD[T]) statesOf(idx int) []T {
	layer := dd.layers[idx]
	out := make([]T, 0, len(layer))
	for s := range layer {
		out = append(out, s)
	}
	return out
}
