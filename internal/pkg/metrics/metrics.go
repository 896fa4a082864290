package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the admission metrics
type Metrics struct {
	Admissions       *prometheus.CounterVec
	RecentAdmissions prometheus.Gauge
}

// New creates the admission metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "user_admission_attempts_total",
			Help: "Admission attempts by outcome (admitted, a rejection reason, or error)",
		}, []string{"outcome"}),
		RecentAdmissions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "user_admission_recent_admissions",
			Help: "Users admitted in the window covered by the last admission report",
		}),
	}
	reg.MustRegister(m.Admissions, m.RecentAdmissions)
	return m
}

// ObserveAdmission increments the counter for outcome. A nil *Metrics drops it
func (m *Metrics) ObserveAdmission(outcome string) {
	if m == nil {
		return
	}
	m.Admissions.WithLabelValues(outcome).Inc()
}

// SetRecentAdmissions records the count produced by the admission report
func (m *Metrics) SetRecentAdmissions(n int64) {
	if m == nil {
		return
	}
	m.RecentAdmissions.Set(float64(n))
}
