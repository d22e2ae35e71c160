package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Collector struct {
	OperationsTotal *prometheus.CounterVec

	PatientsRegisteredTotal prometheus.Counter
	PatientsRemovedTotal    prometheus.Counter
	BillsGeneratedTotal     prometheus.Counter
	BillAmountTotal         prometheus.Counter
	ProceduresRecordedTotal prometheus.Counter

	SavesTotal      prometheus.Counter
	SaveErrorsTotal prometheus.Counter
	LoadFallbacks   prometheus.Counter

	AuditEntriesTotal  prometheus.Counter
	AuditBufferDropped prometheus.Counter
}

// NewCollector registers the collectors on the default Prometheus
// registry. Use NewCollectorWith for an isolated registry (tests).
func NewCollector(serviceName string) *Collector {
	return NewCollectorWith(prometheus.DefaultRegisterer, serviceName)
}

func NewCollectorWith(reg prometheus.Registerer, serviceName string) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "registry",
			Name:      "operations_total",
			Help:      "Total registry operations by name and outcome.",
		}, []string{"operation", "outcome"}),

		PatientsRegisteredTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "patients_registered_total",
			Help:      "Total number of patient records created.",
		}),

		PatientsRemovedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "patients_removed_total",
			Help:      "Total number of patient records removed.",
		}),

		BillsGeneratedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "billing",
			Name:      "bills_generated_total",
			Help:      "Total bills generated, including procedure-derived ones.",
		}),

		BillAmountTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "billing",
			Name:      "billed_amount_total",
			Help:      "Sum of billed amounts after insurance discount.",
		}),

		ProceduresRecordedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "clinical",
			Name:      "procedures_recorded_total",
			Help:      "Total clinical procedures recorded.",
		}),

		SavesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "saves_total",
			Help:      "Total full-document writes to the backing file.",
		}),

		SaveErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "save_errors_total",
			Help:      "Total failed document writes.",
		}),

		LoadFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "store",
			Name:      "load_fallbacks_total",
			Help:      "Loads that substituted an empty document for a missing or unreadable file.",
		}),

		AuditEntriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "entries_total",
			Help:      "Total audit log entries written.",
		}),

		AuditBufferDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "audit",
			Name:      "buffer_dropped_total",
			Help:      "Audit entries dropped due to full buffer. Alert if non-zero.",
		}),
	}
}
