package ddbb

import "testing"

func TestNodeUBSaturatesAtMaxValue(t *testing.T) {
	n := &Node[int]{Value: MaxValue - 1, Estimate: 10}
	if got := n.UB(); got != MaxValue {
		t.Fatalf("UB() = %d, want saturated MaxValue %d", got, MaxValue)
	}
}

func TestNodeUBOrdinary(t *testing.T) {
	n := &Node[int]{Value: 3, Estimate: 4}
	if got := n.UB(); got != 7 {
		t.Fatalf("UB() = %d, want 7", got)
	}
}

func TestMergeIntoKeepsLargerValueAndItsEdge(t *testing.T) {
	parentA := &Node[int]{Value: 0}
	parentB := &Node[int]{Value: 0}
	dst := &Node[int]{Value: 5, Estimate: 10, BestEdge: &Edge[int]{Parent: parentA, Weight: 5}}
	incoming := Node[int]{Value: 8, Estimate: 10, BestEdge: &Edge[int]{Parent: parentB, Weight: 8}}

	mergeInto(dst, incoming)

	if dst.Value != 8 {
		t.Fatalf("Value = %d, want 8 (the larger of the two)", dst.Value)
	}
	if dst.BestEdge.Parent != parentB {
		t.Fatalf("BestEdge should have been replaced by incoming's better edge")
	}
}

func TestMergeIntoKeepsMinimumUB(t *testing.T) {
	// dst: value=5, estimate=10 -> ub=15. incoming: value=8, estimate=3 -> ub=11.
	// Merged value is max(5,8)=8; the admissible bound is min(15,11)=11, so
	// the resulting estimate must be 11-8=3.
	dst := &Node[int]{Value: 5, Estimate: 10}
	incoming := Node[int]{Value: 8, Estimate: 3}

	mergeInto(dst, incoming)

	if dst.Value != 8 {
		t.Fatalf("Value = %d, want 8", dst.Value)
	}
	if dst.Estimate != 3 {
		t.Fatalf("Estimate = %d, want 3 (ub=11 minus the new value 8)", dst.Estimate)
	}
	if dst.UB() != 11 {
		t.Fatalf("UB() = %d, want 11", dst.UB())
	}
}

func TestMergeIntoFlagsAreSticky(t *testing.T) {
	dst := &Node[int]{Flags: NodeFlags{Exact: true}}
	incoming := Node[int]{Flags: NodeFlags{Exact: false, ViaRelax: true}}

	mergeInto(dst, incoming)

	if dst.Flags.Exact {
		t.Fatalf("merging with a non-exact node must clear Exact")
	}
	if !dst.Flags.ViaRelax {
		t.Fatalf("ViaRelax should be sticky once set by either input")
	}
}

func TestNodePathWalksLeafToRoot(t *testing.T) {
	root := &Node[int]{Value: 0}
	mid := &Node[int]{Value: 1, BestEdge: &Edge[int]{Parent: root, Decision: Decision{Variable: 0, Value: 1}}}
	leaf := &Node[int]{Value: 3, BestEdge: &Edge[int]{Parent: mid, Decision: Decision{Variable: 1, Value: 2}}}

	path := leaf.path()
	if len(path) != 2 {
		t.Fatalf("path length = %d, want 2", len(path))
	}
	if path[0].Variable != 1 || path[1].Variable != 0 {
		t.Fatalf("path = %+v, want leaf-to-root order [var1, var0]", path)
	}
}

func TestHasExactBestReflectsFlags(t *testing.T) {
	exact := &Node[int]{Flags: NodeFlags{Exact: true}}
	relaxed := &Node[int]{Flags: NodeFlags{Exact: false}}

	if !exact.HasExactBest() {
		t.Fatalf("expected exact node to report HasExactBest")
	}
	if relaxed.HasExactBest() {
		t.Fatalf("expected relaxed node to report !HasExactBest")
	}
}
