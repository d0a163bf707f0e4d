package ddbb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/ddbb/pkg/ddbb"
)

func TestSolverMaximizeFindsOptimalSum(t *testing.T) {
	cfg := newSumConfig()
	solver := ddbb.NewSolver(cfg, ddbb.WithWorkers[int64](2))

	result := solver.Maximize(context.Background())

	require.True(t, result.IsExact)
	require.True(t, result.HasSolution)
	require.Equal(t, int64(6), result.BestValue)
	require.NoError(t, result.Err())
	require.Equal(t, []ddbb.Decision{
		{Variable: 0, Value: 2},
		{Variable: 1, Value: 2},
		{Variable: 2, Value: 2},
	}, result.BestSolution.Decisions())
}

func TestSolverMaximizeNarrowWidthStillProvesOptimality(t *testing.T) {
	cfg := newSumConfig(ddbb.WithWidth[int64](ddbb.FixedWidth(1)))
	solver := ddbb.NewSolver(cfg, ddbb.WithWorkers[int64](1))

	result := solver.Maximize(context.Background())

	require.True(t, result.IsExact, "cutset reinsertion must recover optimality lost to a narrow width")
	require.Equal(t, int64(6), result.BestValue)
}

func TestSolverMaximizeReportsInfeasible(t *testing.T) {
	cfg := ddbb.NewConfig[int64](emptyDomainProblem{}, sumRelax{})
	solver := ddbb.NewSolver(cfg)

	result := solver.Maximize(context.Background())

	require.True(t, result.IsExact)
	require.False(t, result.HasSolution)
	require.ErrorIs(t, result.Err(), ddbb.ErrInfeasible)
}

func TestSolverMaximizeRespectsAnAlreadyExpiredCutoff(t *testing.T) {
	cfg := newSumConfig(ddbb.WithCutoff[int64](ddbb.NewTimeBudget(0)))
	solver := ddbb.NewSolver(cfg, ddbb.WithWorkers[int64](1))

	result := solver.Maximize(context.Background())

	require.False(t, result.IsExact)
	require.ErrorIs(t, result.Err(), ddbb.ErrCutoff)
}

func TestSolverStatsTracksExploredSubproblems(t *testing.T) {
	cfg := newSumConfig()
	solver := ddbb.NewSolver(cfg, ddbb.WithWorkers[int64](1))

	result := solver.Maximize(context.Background())

	snap := solver.Stats()
	require.Equal(t, result.Explored, snap.SubproblemsExplored)
}

func TestWithStuckWorkerTimeoutDoesNotBreakANormalSolve(t *testing.T) {
	cfg := newSumConfig()
	solver := ddbb.NewSolver(cfg,
		ddbb.WithWorkers[int64](1),
		ddbb.WithStuckWorkerTimeout[int64](time.Minute),
	)

	result := solver.Maximize(context.Background())

	require.True(t, result.IsExact)
	require.Equal(t, int64(6), result.BestValue)
}
