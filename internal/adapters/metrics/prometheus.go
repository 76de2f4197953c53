package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baditaflorin/go_key_terms/internal/ports"
)

// Prometheus records pipeline measurements as Prometheus collectors.
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	failures      *prometheus.CounterVec
	terms         prometheus.Counter
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keyterms_stage_duration_seconds",
				Help:    "Duration of key term pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyterms_stage_failures_total",
				Help: "Total number of failed key term pipeline stages",
			},
			[]string{"stage"},
		),
		terms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keyterms_terms_total",
			Help: "Total number of terms normalized and sorted",
		}),
	}

	for _, c := range []prometheus.Collector{p.stageDuration, p.failures, p.terms} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveStage records how long a stage took.
func (p *Prometheus) ObserveStage(stage string, elapsed time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// AddTerms counts prepared terms.
func (p *Prometheus) AddTerms(count int) {
	p.terms.Add(float64(count))
}

// IncFailure counts a failed stage.
func (p *Prometheus) IncFailure(stage string) {
	p.failures.WithLabelValues(stage).Inc()
}

var _ ports.Recorder = (*Prometheus)(nil)
