package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts invariant lifecycle events of one run. Every session owns
// a private registry so concurrent runs never share counters.
type Metrics struct {
	Registry *prometheus.Registry

	Instantiated      prometheus.Counter
	ObviousSkipped    prometheus.Counter
	Falsified         prometheus.Counter
	Suppressed        prometheus.Counter
	Unsuppressed      prometheus.Counter
	SamplesDispatched prometheus.Counter
}

func newMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Instantiated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tinfer",
			Name:      "invariants_instantiated_total",
			Help:      "Candidate invariants created by factories.",
		}),
		ObviousSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tinfer",
			Name:      "invariants_not_instantiated_total",
			Help:      "Candidates skipped at creation because they were obvious.",
		}),
		Falsified: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tinfer",
			Name:      "invariants_falsified_total",
			Help:      "Candidates falsified by a sample.",
		}),
		Suppressed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tinfer",
			Name:      "invariants_suppressed_total",
			Help:      "Suppression links installed.",
		}),
		Unsuppressed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tinfer",
			Name:      "invariants_unsuppressed_total",
			Help:      "Suppressed invariants reinstated after a suppressor was falsified.",
		}),
		SamplesDispatched: f.NewCounter(prometheus.CounterOpts{
			Namespace: "tinfer",
			Name:      "slice_samples_total",
			Help:      "Samples accepted by slices, weighted by count.",
		}),
	}
}
