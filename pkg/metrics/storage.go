package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics records connector and ledger activity.
type StorageMetrics struct {
	acquisitions *prometheus.CounterVec
	degraded     prometheus.Counter
	probeHealthy prometheus.Gauge
	sales        prometheus.Counter
}

// NewStorageMetrics registers the storage metrics on the provided registerer.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	if reg == nil {
		return &StorageMetrics{}
	}
	acquisitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storage_acquisitions_total",
		Help: "Successful storage handle acquisitions by candidate.",
	}, []string{"candidate"})
	degraded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storage_degraded_acquisitions_total",
		Help: "Acquisitions that fell through to a non-primary candidate.",
	})
	probeHealthy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storage_probe_healthy",
		Help: "1 when the last storage probe succeeded, 0 otherwise.",
	})
	sales := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Completed atomic sell operations.",
	})
	reg.MustRegister(acquisitions, degraded, probeHealthy, sales)
	return &StorageMetrics{
		acquisitions: acquisitions,
		degraded:     degraded,
		probeHealthy: probeHealthy,
		sales:        sales,
	}
}

// IncAcquisition counts a successful acquisition for the named candidate.
func (m *StorageMetrics) IncAcquisition(candidate string) {
	if m == nil || m.acquisitions == nil {
		return
	}
	if candidate == "" {
		candidate = "unknown"
	}
	m.acquisitions.WithLabelValues(candidate).Inc()
}

// IncDegraded counts an acquisition that landed on a fallback candidate.
func (m *StorageMetrics) IncDegraded() {
	if m == nil || m.degraded == nil {
		return
	}
	m.degraded.Inc()
}

// SetProbeHealthy records the outcome of the latest probe.
func (m *StorageMetrics) SetProbeHealthy(healthy bool) {
	if m == nil || m.probeHealthy == nil {
		return
	}
	if healthy {
		m.probeHealthy.Set(1)
		return
	}
	m.probeHealthy.Set(0)
}

// IncSale counts a completed sell operation.
func (m *StorageMetrics) IncSale() {
	if m == nil || m.sales == nil {
		return
	}
	m.sales.Inc()
}
