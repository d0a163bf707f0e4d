package ddbb

import "sort"

// PartialAssignment is a reference-counted, singly-linked chain of decision
// fragments. Frontier nodes share the tail of their path with their
// ancestors instead of copying it, so pushing thousands of subproblems onto
// the frontier costs O(1) per node rather than O(depth).
//
// The chain can never cycle: every extension strictly grows on top of an
// existing (immutable) parent, so a PartialAssignment is always acyclic by
// construction.
type PartialAssignment struct {
	parent   *PartialAssignment
	single   Decision
	fragment []Decision
	kind     paKind
}

type paKind int

const (
	paEmpty paKind = iota
	paSingle
	paFragment
)

// EmptyAssignment is the root partial assignment: no decisions made yet.
var EmptyAssignment = &PartialAssignment{kind: paEmpty}

// Extend returns a new PartialAssignment that adds a single Decision on top
// of pa.
func (pa *PartialAssignment) Extend(d Decision) *PartialAssignment {
	return &PartialAssignment{parent: pa, single: d, kind: paSingle}
}

// ExtendFragment returns a new PartialAssignment that adds a whole list of
// decisions (e.g. the path accumulated while walking a DD layer) on top of
// pa in a single link.
func (pa *PartialAssignment) ExtendFragment(fragment []Decision) *PartialAssignment {
	if len(fragment) == 0 {
		return pa
	}
	return &PartialAssignment{parent: pa, fragment: fragment, kind: paFragment}
}

// Decisions flattens the chain into a slice of Decision, walking from the
// most recently appended link back to the root (a fragment keeps its own
// internal order); callers needing Variable-ascending order should use
// Solution instead.
func (pa *PartialAssignment) Decisions() []Decision {
	var out []Decision
	for node := pa; node != nil && node.kind != paEmpty; node = node.parent {
		switch node.kind {
		case paSingle:
			out = append(out, node.single)
		case paFragment:
			out = append(out, node.fragment...)
		}
	}
	return out
}

// Solution is a flattened assignment: every Decision made along a path from
// the problem root to a terminal DD node, in ascending Variable order.
type Solution struct {
	decisions []Decision
}

// NewSolution flattens a PartialAssignment chain into a Solution, sorting by
// Variable as required by the caller-facing API (§6).
func NewSolution(pa *PartialAssignment) Solution {
	decisions := pa.Decisions()
	sort.Slice(decisions, func(i, j int) bool {
		return decisions[i].Variable < decisions[j].Variable
	})
	return Solution{decisions: decisions}
}

// Decisions returns the solution's decisions in ascending Variable order.
func (s Solution) Decisions() []Decision {
	return s.decisions
}

// Len returns the number of decisions in the solution.
func (s Solution) Len() int {
	return len(s.decisions)
}
