package core

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const MetricsSubsystem = "engine"

// Metrics contains metrics exposed by this package.
type Metrics struct {
	// Last committed block.
	Head metrics.Gauge
	// Latest block reported by the node.
	ChainHead metrics.Gauge
	// Number of committed blocks.
	Blocks metrics.Counter
	// Number of dispatched events.
	Events metrics.Counter
	// Time spent applying and committing one block.
	BlockSeconds metrics.Histogram
	// Number of blocks that failed and were rolled back.
	Failures metrics.Counter
}

// PrometheusMetrics returns Metrics build using Prometheus client library.
// Optionally, labels can be provided along with their values ("foo",
// "fooValue").
func PrometheusMetrics(namespace string, labelsAndValues ...string) *Metrics {
	labels := []string{}
	for i := 0; i < len(labelsAndValues); i += 2 {
		labels = append(labels, labelsAndValues[i])
	}
	return &Metrics{
		Head: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "head",
			Help:      "Last committed block.",
		}, labels).With(labelsAndValues...),
		ChainHead: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "chain_head",
			Help:      "Latest block reported by the node.",
		}, labels).With(labelsAndValues...),
		Blocks: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "blocks_total",
			Help:      "Number of committed blocks.",
		}, labels).With(labelsAndValues...),
		Events: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "events_total",
			Help:      "Number of dispatched events.",
		}, labels).With(labelsAndValues...),
		BlockSeconds: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "block_seconds",
			Help:      "Time spent applying and committing one block.",
			Buckets:   stdprometheus.ExponentialBuckets(0.001, 2, 14),
		}, labels).With(labelsAndValues...),
		Failures: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: MetricsSubsystem,
			Name:      "failures_total",
			Help:      "Number of blocks that failed and were rolled back.",
		}, labels).With(labelsAndValues...),
	}
}

// NopMetrics returns no-op Metrics.
func NopMetrics() *Metrics {
	return &Metrics{
		Head:         discard.NewGauge(),
		ChainHead:    discard.NewGauge(),
		Blocks:       discard.NewCounter(),
		Events:       discard.NewCounter(),
		BlockSeconds: discard.NewHistogram(),
		Failures:     discard.NewCounter(),
	}
}
