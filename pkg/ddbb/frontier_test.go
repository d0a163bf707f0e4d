package ddbb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ddbb/pkg/ddbb"
)

func node(state int, lpLen, ub int64) ddbb.FrontierNode[int] {
	return ddbb.FrontierNode[int]{State: state, LPLen: lpLen, UB: ub, Path: ddbb.EmptyAssignment}
}

func TestNoDupFrontierMergesSameState(t *testing.T) {
	f := ddbb.NewNoDupFrontier[int](ddbb.DefaultFrontierOrder[int]{})

	require.True(t, f.Push(node(1, 2, 10), ddbb.MinValue))
	require.True(t, f.Push(node(1, 5, 8), ddbb.MinValue))
	require.Equal(t, 1, f.Len(), "pushing the same state twice must merge, not duplicate")

	popped, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, int64(5), popped.LPLen, "merge should keep the larger LPLen")
	require.Equal(t, int64(10), popped.UB, "merge should keep the larger (maximum) UB")
}

func TestNoDupFrontierPopsMostPromisingFirst(t *testing.T) {
	f := ddbb.NewNoDupFrontier[int](ddbb.DefaultFrontierOrder[int]{})
	f.Push(node(1, 0, 5), ddbb.MinValue)
	f.Push(node(2, 0, 20), ddbb.MinValue)
	f.Push(node(3, 0, 12), ddbb.MinValue)

	first, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 2, first.State)

	second, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 3, second.State)

	third, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 1, third.State)

	_, ok = f.Pop()
	require.False(t, ok)
}

func TestNoDupFrontierPrunesAgainstIncumbent(t *testing.T) {
	f := ddbb.NewNoDupFrontier[int](ddbb.DefaultFrontierOrder[int]{})
	require.False(t, f.Push(node(1, 0, 10), 10), "a node whose UB cannot beat the incumbent must be pruned")
	require.Equal(t, 0, f.Len())
}

func TestNoForgetFrontierKeepsDuplicateStates(t *testing.T) {
	f := ddbb.NewNoForgetFrontier[int](ddbb.DefaultFrontierOrder[int]{})
	f.Push(node(1, 2, 10), ddbb.MinValue)
	f.Push(node(1, 5, 8), ddbb.MinValue)

	require.Equal(t, 2, f.Len(), "NoForgetFrontier never merges same-state nodes")
}
