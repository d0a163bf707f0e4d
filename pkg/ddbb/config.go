package ddbb

// Config bundles a Problem, a Relaxation, and the pluggable heuristics that
// parameterize one DD's behavior. A Config is immutable once built and
// shared (read-only) across every worker's DD compiler.
type Config[T comparable] struct {
	Problem   Problem[T]
	Relax     Relaxation[T]
	Width     WidthHeuristic
	VarOrder  VariableHeuristic[T]
	NodeOrder NodeSelectionHeuristic[T]
	Cutoff    Cutoff
	LoadVars  LoadVars[T]
}

// ConfigOption customizes a Config built by NewConfig.
type ConfigOption[T comparable] func(*Config[T])

// WithWidth overrides the default WidthHeuristic.
func WithWidth[T comparable](w WidthHeuristic) ConfigOption[T] {
	return func(c *Config[T]) { c.Width = w }
}

// WithVariableOrder overrides the default VariableHeuristic.
func WithVariableOrder[T comparable](v VariableHeuristic[T]) ConfigOption[T] {
	return func(c *Config[T]) { c.VarOrder = v }
}

// WithNodeOrder overrides the default NodeSelectionHeuristic.
func WithNodeOrder[T comparable](n NodeSelectionHeuristic[T]) ConfigOption[T] {
	return func(c *Config[T]) { c.NodeOrder = n }
}

// WithCutoff overrides the default Cutoff.
func WithCutoff[T comparable](co Cutoff) ConfigOption[T] {
	return func(c *Config[T]) { c.Cutoff = co }
}

// WithLoadVars overrides the default LoadVars.
func WithLoadVars[T comparable](lv LoadVars[T]) ConfigOption[T] {
	return func(c *Config[T]) { c.LoadVars = lv }
}

// NewConfig builds a Config for problem/relax with sensible defaults:
// FixedWidth(1) is deliberately NOT the default (callers solving anything
// nontrivial should size the width); the default width policy is
// LinearWidth{Factor: 1} (one node per free variable), the default variable
// order is NaturalVariableOrder, the default node order is
// DefaultNodeOrder, the default cutoff is NoCutoff, and the default
// LoadVars replays the node's path against the full [0, n) set.
func NewConfig[T comparable](problem Problem[T], relax Relaxation[T], opts ...ConfigOption[T]) Config[T] {
	c := Config[T]{
		Problem:   problem,
		Relax:     relax,
		Width:     LinearWidth{Factor: 1},
		VarOrder:  NaturalVariableOrder[T]{},
		NodeOrder: DefaultNodeOrder[T]{},
		Cutoff:    NoCutoff{},
		LoadVars:  PathLoadVars[T]{NbVars: problem.NbVars()},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// RootNode returns the FrontierNode for the problem's initial state, the
// starting point for the very first subproblem pushed onto a fresh
// frontier.
func (c Config[T]) RootNode() FrontierNode[T] {
	return RootFrontierNode[T](c.Problem)
}
