package metrics

import (
	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "threat_dashboard"

// Collector turns pipeline events into prometheus counters. It implements
// core.Observer.
type Collector struct {
	registry *prometheus.Registry

	classified     *prometheus.CounterVec
	classifyFailed prometheus.Counter
	submissions    *prometheus.CounterVec
	batches        *prometheus.CounterVec
	threats        prometheus.Gauge
	safe           prometheus.Gauge
}

// NewCollector creates a collector registered on its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		classified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Total number of classified messages",
		}, []string{"level"}),
		classifyFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classification_failures_total",
			Help:      "Total number of messages the classifier could not classify",
		}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Total number of proof submissions by outcome and failing stage",
		}, []string{"outcome", "stage"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Total number of submission runs by status",
		}, []string{"status"}),
		threats: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inbox_threats",
			Help:      "Threat count of the last aggregated message set",
		}),
		safe: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inbox_safe",
			Help:      "Safe count of the last aggregated message set",
		}),
	}
	c.registry.MustRegister(c.classified, c.classifyFailed, c.submissions, c.batches, c.threats, c.safe)
	return c
}

// Registry returns the registry the counters live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe implements core.Observer
func (c *Collector) Observe(ev core.Event) {
	switch ev.Kind {
	case core.KindClassified:
		level := "unknown"
		if ev.Result != nil {
			level = string(ev.Result.ThreatLevel)
		}
		c.classified.WithLabelValues(level).Inc()
	case core.KindClassificationFailed:
		c.classifyFailed.Inc()
	case core.KindProofSubmitted:
		c.submissions.WithLabelValues("success", "").Inc()
	case core.KindSubmissionFailed:
		c.submissions.WithLabelValues("failure", ev.Stage).Inc()
	case core.KindAggregated:
		if ev.Stats != nil {
			c.threats.Set(float64(ev.Stats.ThreatCount))
			c.safe.Set(float64(ev.Stats.SafeCount))
		}
	case core.KindBatchFinished:
		if ev.Report != nil {
			c.batches.WithLabelValues(ev.Report.Status.String()).Inc()
		}
	}
}
