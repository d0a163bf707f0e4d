package ddbb

import "container/heap"

// Frontier is the pool of open subproblems a Solver's workers pop from and
// push onto. Implementations must be safe to wrap in external locking (the
// Solver driver owns a single mutex around every Frontier call; a Frontier
// itself need not be concurrency-safe).
type Frontier[T comparable] interface {
	// Push inserts n, pruning it immediately if its UB cannot possibly beat
	// bestLB. Returns false if the node was pruned (not inserted).
	Push(n FrontierNode[T], bestLB int64) bool
	// Pop removes and returns the most promising node under the Frontier's
	// FrontierOrder. Ok is false iff the frontier is empty.
	Pop() (FrontierNode[T], bool)
	// Len returns the number of subproblems currently queued.
	Len() int
}

// heapItem wraps a FrontierNode with a creation sequence for deterministic
// tie-breaking and an index container/heap keeps current so NoDupFrontier
// can heap.Fix an item after merging into it. Items are always referenced
// through a *heapItem so that reslicing/Swap never invalidates a pointer
// held outside the heap (container/heap swaps slice elements by value, so a
// pointer into the backing array would otherwise go stale).
type heapItem[T comparable] struct {
	node FrontierNode[T]
	seq  int64
	idx  int
}

// frontierHeap adapts a slice of *heapItem to container/heap using a
// FrontierOrder, most-promising-first.
type frontierHeap[T comparable] struct {
	items []*heapItem[T]
	order FrontierOrder[T]
}

func (h *frontierHeap[T]) Len() int { return len(h.items) }

func (h *frontierHeap[T]) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if h.order.Less(a.node, b.node) {
		return false // b preferred over a => a sorts after b
	}
	if h.order.Less(b.node, a.node) {
		return true // a preferred over b => a sorts before b
	}
	return a.seq < b.seq
}

func (h *frontierHeap[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].idx = i
	h.items[j].idx = j
}

func (h *frontierHeap[T]) Push(x any) {
	item := x.(*heapItem[T])
	item.idx = len(h.items)
	h.items = append(h.items, item)
}

func (h *frontierHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return item
}

// NoDupFrontier is a Frontier that keeps at most one FrontierNode per
// distinct state: pushing a state already present merges the two the same
// way a DD layer merges two nodes for the same state (keep the larger
// LPLen/best path, the larger UB). This trades memory for redundant-work
// avoidance when many subproblems converge on the same state (spec §4.2).
type NoDupFrontier[T comparable] struct {
	byState map[T]*heapItem[T]
	h       *frontierHeap[T]
	seq     int64
}

// NewNoDupFrontier builds an empty NoDupFrontier ordered by order.
func NewNoDupFrontier[T comparable](order FrontierOrder[T]) *NoDupFrontier[T] {
	return &NoDupFrontier[T]{
		byState: make(map[T]*heapItem[T]),
		h:       &frontierHeap[T]{order: order},
	}
}

// Push implements Frontier.
func (f *NoDupFrontier[T]) Push(n FrontierNode[T], bestLB int64) bool {
	if n.UB <= bestLB {
		return false
	}
	if existing, ok := f.byState[n.State]; ok {
		existing.node = mergeFrontierNodes(existing.node, n)
		heap.Fix(f.h, existing.idx)
		return true
	}
	f.seq++
	item := &heapItem[T]{node: n, seq: f.seq}
	heap.Push(f.h, item)
	f.byState[n.State] = item
	return true
}

// Pop implements Frontier.
func (f *NoDupFrontier[T]) Pop() (FrontierNode[T], bool) {
	if f.h.Len() == 0 {
		return FrontierNode[T]{}, false
	}
	item := heap.Pop(f.h).(*heapItem[T])
	delete(f.byState, item.node.State)
	return item.node, true
}

// Len implements Frontier.
func (f *NoDupFrontier[T]) Len() int { return f.h.Len() }

// mergeFrontierNodes combines two FrontierNodes known to share a state,
// keeping the longer known path and the maximum upper bound (spec §4.4: the
// surviving entry carries the maxima of both).
func mergeFrontierNodes[T comparable](a, b FrontierNode[T]) FrontierNode[T] {
	out := a
	if b.LPLen > out.LPLen {
		out.LPLen = b.LPLen
		out.Path = b.Path
	}
	if b.UB > out.UB {
		out.UB = b.UB
	}
	return out
}

// NoForgetFrontier is a Frontier that never merges: every pushed subproblem
// is kept distinct even if another queued subproblem shares its state. Use
// this when states are unique enough that dedup overhead outweighs the
// benefit, or to preserve every branch's own path for inspection.
type NoForgetFrontier[T comparable] struct {
	h   *frontierHeap[T]
	seq int64
}

// NewNoForgetFrontier builds an empty NoForgetFrontier ordered by order.
func NewNoForgetFrontier[T comparable](order FrontierOrder[T]) *NoForgetFrontier[T] {
	return &NoForgetFrontier[T]{h: &frontierHeap[T]{order: order}}
}

// Push implements Frontier.
func (f *NoForgetFrontier[T]) Push(n FrontierNode[T], bestLB int64) bool {
	if n.UB <= bestLB {
		return false
	}
	f.seq++
	heap.Push(f.h, &heapItem[T]{node: n, seq: f.seq})
	return true
}

// Pop implements Frontier.
func (f *NoForgetFrontier[T]) Pop() (FrontierNode[T], bool) {
	if f.h.Len() == 0 {
		return FrontierNode[T]{}, false
	}
	item := heap.Pop(f.h).(*heapItem[T])
	return item.node, true
}

// Len implements Frontier.
func (f *NoForgetFrontier[T]) Len() int { return f.h.Len() }
