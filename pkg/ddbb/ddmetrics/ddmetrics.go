// Package ddmetrics exposes the solver's runtime counters as Prometheus
// collectors, grounded on the registerer-wrapping pattern luxfi-consensus
// uses for its own engine metrics (metrics/metrics.go).
package ddmetrics

import "github.com/prometheus/client_golang/prometheus"

// Collector bundles every metric a Solver reports. Build one with New and
// pass it to a Solver via ddbb.WithMetrics. The zero value's metric fields
// are nil, so a Collector must come from New or NewNopCollector; a Solver
// without WithMetrics uses NewNopCollector.
type Collector struct {
	NodesExplored prometheus.Counter
	FrontierSize  prometheus.Gauge
	Incumbent     prometheus.Gauge
	WorkersIdle   prometheus.Gauge
}

// New builds a Collector and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		NodesExplored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ddbb_nodes_explored_total",
			Help: "Total number of subproblems popped off the frontier and compiled.",
		}),
		FrontierSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ddbb_frontier_size",
			Help: "Number of open subproblems currently queued.",
		}),
		Incumbent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ddbb_incumbent_value",
			Help: "Best objective value found so far.",
		}),
		WorkersIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ddbb_workers_idle",
			Help: "Number of workers currently waiting for a subproblem.",
		}),
	}
	for _, collector := range []prometheus.Collector{c.NodesExplored, c.FrontierSize, c.Incumbent, c.WorkersIdle} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewNopCollector returns a Collector backed by unregistered metrics: safe
// to record into from a Solver that was never given a registerer.
func NewNopCollector() *Collector {
	c, _ := New(prometheus.NewRegistry())
	return c
}
