// Package metrics instruments registry growth, mutation operators and
// network compilation with Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operator labels for MutationsTotal.
const (
	OperatorAddConnection = "add_connection"
	OperatorAddNode       = "add_node"
	OperatorPerturbWeight = "perturb_weight"
)

// Metrics groups the collectors of one run. A nil *Metrics records nothing.
type Metrics struct {
	FeaturesRegistered prometheus.Counter
	NodesMinted        prometheus.Counter
	MutationsTotal     *prometheus.CounterVec
	CompileDuration    prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FeaturesRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "neat_features_registered_total",
			Help: "Total number of features added to the historical marking registry",
		}),
		NodesMinted: factory.NewCounter(prometheus.CounterOpts{
			Name: "neat_nodes_minted_total",
			Help: "Total number of hidden nodes created by node-split mutations",
		}),
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "neat_mutations_total",
			Help: "Number of mutation operators applied, by operator",
		}, []string{"operator"}),
		CompileDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "neat_compile_duration_seconds",
			Help:    "Duration of genome to network compilation",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
	}
}

// FeatureRegistered counts one new ledger entry.
func (m *Metrics) FeatureRegistered() {
	if m == nil {
		return
	}
	m.FeaturesRegistered.Inc()
}

// NodeMinted counts one new hidden node.
func (m *Metrics) NodeMinted() {
	if m == nil {
		return
	}
	m.NodesMinted.Inc()
}

// Mutation counts one applied operator.
func (m *Metrics) Mutation(operator string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(operator).Inc()
}

// ObserveCompile records how long a compilation started at start took.
func (m *Metrics) ObserveCompile(start time.Time) {
	if m == nil {
		return
	}
	m.CompileDuration.Observe(time.Since(start).Seconds())
}
