package ddbb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ddbb/pkg/ddbb"
)

func TestNoCutoffNeverStops(t *testing.T) {
	require.False(t, ddbb.NoCutoff{}.MustStop(0, 0))
}

func TestTimeBudgetFiresAfterElapsed(t *testing.T) {
	tb := ddbb.NewTimeBudget(0)
	time.Sleep(time.Millisecond)
	require.True(t, tb.MustStop(0, 0))
}

func TestTimeBudgetDoesNotFireBeforeElapsed(t *testing.T) {
	tb := ddbb.NewTimeBudget(time.Hour)
	require.False(t, tb.MustStop(0, 0))
}

func TestAbortSignalComposesWithInnerCutoff(t *testing.T) {
	signal := &ddbb.AbortSignal{}
	co := ddbb.WithAbortSignal(ddbb.NoCutoff{}, signal)

	require.False(t, co.MustStop(0, 0))
	signal.Raise()
	require.True(t, co.MustStop(0, 0))
	require.True(t, signal.IsRaised())
}
