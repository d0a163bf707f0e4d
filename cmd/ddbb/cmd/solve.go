package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/ddbb/examples/knapsack"
	"github.com/gitrdm/ddbb/examples/maxindepset"
	"github.com/gitrdm/ddbb/pkg/ddbb"
)

var (
	solveWidth   int
	solveWorkers int
	solveTimeout time.Duration
)

var solveCmd = &cobra.Command{
	Use:       "solve [knapsack|maxindepset]",
	Short:     "Solve one of the bundled example problems",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"knapsack", "maxindepset"},
	RunE:      runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solveWidth, "width", 16, "maximum DD width (nodes per layer)")
	solveCmd.Flags().IntVar(&solveWorkers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "wall-clock cutoff (0 = unbounded)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	switch args[0] {
	case "knapsack":
		return solveKnapsack(ctx)
	case "maxindepset":
		return solveMaxIndepSet(ctx)
	default:
		return fmt.Errorf("unknown problem %q (want knapsack or maxindepset)", args[0])
	}
}

// solverOptions builds the SolverOptions common to every bundled problem
// from the solve subcommand's flags.
func solverOptions[T comparable]() []ddbb.SolverOption[T] {
	opts := []ddbb.SolverOption[T]{ddbb.WithLogger[T](logger)}
	if solveWorkers > 0 {
		opts = append(opts, ddbb.WithWorkers[T](solveWorkers))
	}
	return opts
}

// configOptions builds the ConfigOptions common to every bundled problem
// from the solve subcommand's flags.
func configOptions[T comparable]() []ddbb.ConfigOption[T] {
	opts := []ddbb.ConfigOption[T]{ddbb.WithWidth[T](ddbb.FixedWidth(solveWidth))}
	if solveTimeout > 0 {
		opts = append(opts, ddbb.WithCutoff[T](ddbb.NewTimeBudget(solveTimeout)))
	}
	return opts
}

// demoKnapsack is a small, fixed instance: the classic four-item textbook
// example with an optimal value of 7 (items 0 and 1).
func demoKnapsack() *knapsack.Problem {
	return knapsack.New([]knapsack.Item{
		{Weight: 2, Value: 3},
		{Weight: 3, Value: 4},
		{Weight: 4, Value: 5},
		{Weight: 5, Value: 6},
	}, 5)
}

func solveKnapsack(ctx context.Context) error {
	problem := demoKnapsack()
	relax := knapsack.NewRelaxation(problem)
	cfg := ddbb.NewConfig[knapsack.State](problem, relax, configOptions[knapsack.State]()...)
	solver := ddbb.NewSolver(cfg, solverOptions[knapsack.State]()...)

	result := solver.Maximize(ctx)
	printResult("knapsack", result)
	return nil
}

// demoMaxIndepSet is a small 5-cycle with distinct vertex weights, whose
// optimal independent set is vertices {0, 2} or {1, 3} depending on
// weights; with these weights the optimum is {1, 3} = 9.
func demoMaxIndepSet() *maxindepset.Problem {
	weights := []int64{3, 5, 2, 4, 1}
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}}
	return maxindepset.New(maxindepset.NewGraph(weights, edges))
}

func solveMaxIndepSet(ctx context.Context) error {
	problem := demoMaxIndepSet()
	relax := maxindepset.NewRelaxation(problem.Graph)
	cfg := ddbb.NewConfig[maxindepset.State](problem, relax, configOptions[maxindepset.State]()...)
	solver := ddbb.NewSolver(cfg, solverOptions[maxindepset.State]()...)

	result := solver.Maximize(ctx)
	printResult("maxindepset", result)
	return nil
}

func printResult[T comparable](name string, result ddbb.Result[T]) {
	fmt.Printf("%s: run=%s exact=%v explored=%d\n", name, result.RunID, result.IsExact, result.Explored)
	if !result.HasSolution {
		fmt.Println("  no feasible solution found")
		return
	}
	fmt.Printf("  best value = %d\n", result.BestValue)
	for _, d := range result.BestSolution.Decisions() {
		fmt.Printf("  var[%d] = %d\n", d.Variable, d.Value)
	}
}
