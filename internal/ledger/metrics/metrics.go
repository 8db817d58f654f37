package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the certificate ledger.
type Metrics struct {
	CertificatesIssued *prometheus.CounterVec
	StorageRecoveries  prometheus.Counter
}

// New creates and registers all ledger metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		CertificatesIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certledger_certificates_issued_total",
			Help: "Total number of certificates recorded, by kind",
		}, []string{"kind"}),
		StorageRecoveries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certledger_storage_recoveries_total",
			Help: "Times a corrupt ledger document was reinitialized",
		}),
	}
}

// IncrementIssued counts one recorded certificate of the given kind.
func (m *Metrics) IncrementIssued(kind string) {
	m.CertificatesIssued.WithLabelValues(kind).Inc()
}

// IncrementRecoveries counts one corrupt-document recovery.
func (m *Metrics) IncrementRecoveries() {
	m.StorageRecoveries.Inc()
}
