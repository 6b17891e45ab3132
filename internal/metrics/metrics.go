package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"fip_qc/internal/qc"
)

// Metrics holds the QC collectors exposed on /metrics.
type Metrics struct {
	verdicts      *prometheus.CounterVec
	runDuration   prometheus.Histogram
	epochsSkipped prometheus.Counter
	lastRunOK     prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them through promhttp.Handler.
func New(reg prometheus.Registerer) *Metrics {
	verdicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fipqc_check_verdicts_total",
		Help: "QC check verdicts by suite and status.",
	}, []string{"suite", "status"})
	runDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fipqc_run_duration_seconds",
		Help:    "Wall time of one QC run over an epoch.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
	epochsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fipqc_epochs_skipped_total",
		Help: "Epochs excluded from acquisition mapping because their timing could not be extracted.",
	})
	lastRunOK := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fipqc_last_run_ok",
		Help: "1 when the most recent QC run had no failing checks, 0 otherwise.",
	})

	reg.MustRegister(verdicts, runDuration, epochsSkipped, lastRunOK)

	return &Metrics{
		verdicts:      verdicts,
		runDuration:   runDuration,
		epochsSkipped: epochsSkipped,
		lastRunOK:     lastRunOK,
	}
}

// ObserveResult counts one verdict. It has the shape of a qc.Observer.
func (m *Metrics) ObserveResult(res qc.Result) {
	m.verdicts.WithLabelValues(res.Suite, string(res.Status)).Inc()
}

// ObserveRun records the duration and outcome of a run.
func (m *Metrics) ObserveRun(elapsed time.Duration, ok bool) {
	m.runDuration.Observe(elapsed.Seconds())
	v := 0.0
	if ok {
		v = 1
	}
	m.lastRunOK.Set(v)
}

// EpochSkipped counts an epoch dropped during acquisition mapping.
func (m *Metrics) EpochSkipped() {
	m.epochsSkipped.Inc()
}
