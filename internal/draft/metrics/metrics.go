package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the draft vertical.
type Metrics struct {
	DraftsStarted   prometheus.Counter
	DraftsCommitted prometheus.Counter
	FieldsSaved     prometheus.Counter
	StepsComputed   *prometheus.CounterVec
}

// New creates and registers all draft metrics.
func New() *Metrics {
	return &Metrics{
		DraftsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_drafts_started_total",
			Help: "Total number of draft sessions started",
		}),
		DraftsCommitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_drafts_committed_total",
			Help: "Total number of drafts committed into records",
		}),
		FieldsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_draft_fields_saved_total",
			Help: "Total number of field values saved to drafts",
		}),
		StepsComputed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "commune_draft_steps_computed_total",
			Help: "Traversal steps computed, labeled by step kind",
		}, []string{"kind"}),
	}
}
