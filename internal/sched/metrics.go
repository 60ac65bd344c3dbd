package sched

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for launcher runs. There is no
// exposition endpoint; collectors register on the given registerer so an
// embedding process can scrape them.
type Metrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
}

// InitMetrics creates and registers the scheduler metrics. A nil registerer
// falls back to the prometheus default.
func InitMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "launcher_runs_total",
				Help:      "Total number of launcher runs",
			},
			[]string{"launcher", "status"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "launcher_run_duration_seconds",
				Help:      "Duration of launcher runs",
				Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 300, 1800, 7200},
			},
			[]string{"launcher"},
		),
	}

	reg.MustRegister(m.runsTotal, m.runDuration)
	return m
}

// observe records one finished launcher run.
func (m *Metrics) observe(launcher string, err error, d time.Duration) {
	if m == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.runsTotal.WithLabelValues(launcher, status).Inc()
	m.runDuration.WithLabelValues(launcher).Observe(d.Seconds())
}
