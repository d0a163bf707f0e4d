package ddbb

// NodeFlags track the provenance of a DD node: whether every path reaching
// it is exact, and whether a relaxed ancestor contaminated it. Loss of
// exactness is sticky — once set, a flag is only ever OR'd with new
// information, never cleared, matching the "flags: node.flags" inheritance
// in the reference aggressively-bounded MDD.
type NodeFlags struct {
	Exact    bool
	ViaRelax bool
	Marked   bool
}

// newRootFlags returns the flags of a freshly rooted DD: exact until proven
// otherwise.
func newRootFlags() NodeFlags {
	return NodeFlags{Exact: true}
}

// newRelaxedFlags returns the flags of a sentinel (default-relaxed) node.
func newRelaxedFlags() NodeFlags {
	return NodeFlags{Exact: false, ViaRelax: true}
}

// or merges two flag sets the way two merged nodes' provenance combines:
// exactness is only preserved if both inputs were exact.
func (f NodeFlags) or(g NodeFlags) NodeFlags {
	return NodeFlags{
		Exact:    f.Exact && g.Exact,
		ViaRelax: f.ViaRelax || g.ViaRelax,
		Marked:   f.Marked || g.Marked,
	}
}

// Edge is the best-known edge reaching a Node: its parent, the edge weight,
// and the Decision that was taken.
type Edge[T comparable] struct {
	Parent   *Node[T]
	Weight   int64
	Decision Decision
}

// Node is a DD node local to one compile. Its zero value is never used
// directly; nodes are built by the compiler (the root in develop, children
// in branch, the sentinel in addDefaultRelaxedNode) and updated by
// mergeInto.
//
// Invariants (see spec §3):
//   - Value is the length of the longest root-to-node path found so far.
//   - Value+Estimate never increases across merges for the same state: a
//     merge keeps the minimum of the two upper bounds.
//   - Exact implies every root-to-node path is exact.
type Node[T comparable] struct {
	State    T
	Value    int64
	Estimate int64
	Flags    NodeFlags
	BestEdge *Edge[T] // nil for the root and for sentinel nodes

	// seq is a per-compile creation counter used only to break ties
	// deterministically when two nodes compare equal under
	// DefaultNodeOrder or in finalize()'s argmax (Go map iteration order is
	// randomized, so neither may depend on it).
	seq int64
}

// UB returns the node's admissible upper bound on any completion through it.
func (n *Node[T]) UB() int64 {
	if n.Estimate >= MaxValue-n.Value {
		return MaxValue
	}
	return n.Value + n.Estimate
}

// HasExactBest reports whether the node's best-edge parent chain is exact,
// i.e. the node itself was never reached through a relaxed or restricted
// ancestor on its best path.
func (n *Node[T]) HasExactBest() bool {
	return n.Flags.Exact
}

// path walks the node's best-edge chain back to the root, returning the
// Decisions in the order encountered (leaf to root; PartialAssignment does
// not care about order since Solution sorts by Variable).
func (n *Node[T]) path() []Decision {
	var out []Decision
	for cur := n; cur != nil && cur.BestEdge != nil; cur = cur.BestEdge.Parent {
		out = append(out, cur.BestEdge.Decision)
	}
	return out
}

// toFrontierNode builds the FrontierNode a cutset extraction emits for this
// node, rooted at rootPath.
func (n *Node[T]) toFrontierNode(rootPath *PartialAssignment) FrontierNode[T] {
	return FrontierNode[T]{
		State: n.State,
		LPLen: n.Value,
		UB:    n.UB(),
		Path:  rootPath.ExtendFragment(n.path()),
	}
}

// mergeInto folds `incoming` into the existing node `dst`, keeping the
// larger Value, the better BestEdge, the OR of flags, and the minimum UB as
// the admissible estimate, per spec §4.3 "Child insertion".
func mergeInto[T comparable](dst *Node[T], incoming Node[T]) {
	ub := dst.UB()
	if iub := incoming.UB(); iub < ub {
		ub = iub
	}
	if incoming.Value > dst.Value {
		dst.Value = incoming.Value
		dst.BestEdge = incoming.BestEdge
	}
	dst.Estimate = ub - dst.Value
	dst.Flags = dst.Flags.or(incoming.Flags)
}
