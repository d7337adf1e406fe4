package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the collection vertical.
type Metrics struct {
	RecordsAdded      prometheus.Counter
	RecordsUpdated    prometheus.Counter
	RecordsRepaired   prometheus.Counter
	ActivitiesBuilt   prometheus.Counter
	SchemaMutations   *prometheus.CounterVec
	ValidationRejects prometheus.Counter
}

// New creates and registers all collection metrics.
func New() *Metrics {
	return &Metrics{
		RecordsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_records_added_total",
			Help: "Total number of records added to collections",
		}),
		RecordsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_records_updated_total",
			Help: "Total number of record updates",
		}),
		RecordsRepaired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_records_repaired_total",
			Help: "Total number of records added through the repair path",
		}),
		ActivitiesBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_activities_built_total",
			Help: "Total number of activity entries produced by mutations",
		}),
		SchemaMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "commune_schema_mutations_total",
			Help: "Schema edits, labeled by operation",
		}, []string{"op"}),
		ValidationRejects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "commune_validation_rejects_total",
			Help: "Total number of record mutations rejected by validation",
		}),
	}
}
