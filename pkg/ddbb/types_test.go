package ddbb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ddbb/pkg/ddbb"
)

func TestVarSetBasics(t *testing.T) {
	vs := ddbb.NewVarSet(5)
	require.Equal(t, 5, vs.Len())
	require.Equal(t, []ddbb.Variable{0, 1, 2, 3, 4}, vs.Slice())

	vs.Remove(2)
	require.Equal(t, 4, vs.Len())
	require.False(t, vs.Contains(2))
	require.True(t, vs.Contains(3))

	vs.Add(2)
	require.True(t, vs.Contains(2))
	require.Equal(t, 5, vs.Len())
}

func TestVarSetCloneIsIndependent(t *testing.T) {
	vs := ddbb.NewVarSet(3)
	clone := vs.Clone()
	clone.Remove(0)

	require.True(t, vs.Contains(0), "removing from the clone must not affect the original")
	require.False(t, clone.Contains(0))
}

func TestVarSetSpansMultipleWords(t *testing.T) {
	vs := ddbb.NewVarSet(130) // forces 3 uint64 words
	require.Equal(t, 130, vs.Len())
	vs.Remove(129)
	vs.Remove(64)
	require.Equal(t, 128, vs.Len())
	require.False(t, vs.Contains(129))
	require.False(t, vs.Contains(64))
	require.True(t, vs.Contains(63))
	require.True(t, vs.Contains(65))
}

func TestDomainHelpers(t *testing.T) {
	require.Equal(t, []int64{0, 1, 2}, ddbb.RangeDomain(0, 3).Values())
	require.Equal(t, []int64{5, 9}, ddbb.SliceDomain([]int64{5, 9}).Values())
	require.Empty(t, ddbb.EmptyDomain().Values())
}
