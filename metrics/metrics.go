// Package metrics exports reactive graph activity as Prometheus metrics.
//
// A Collector passed to reactive.NewLifetime with reactive.WithHooks sees every
// derived, async and reaction node created under that lifetime. Signals and
// Arrays are not owned by a lifetime, so writes_total only counts those created
// with reactive.WithHooks(collector) or reactive.WithDefaultsOf(lt).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/delaneyj/signalflow/reactive"
)

type Config struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels
	// Buckets of the reaction duration histogram.
	Buckets  []float64
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "signalflow",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector implements reactive.Hooks. Nodes are labelled by kind and name;
// unnamed nodes share the "anonymous" label.
type Collector struct {
	writes           *prometheus.CounterVec
	recomputes       *prometheus.CounterVec
	asyncEvents      *prometheus.CounterVec
	reactionRuns     *prometheus.CounterVec
	reactionDuration *prometheus.HistogramVec
}

var _ reactive.Hooks = (*Collector)(nil)

func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Signal writes, by whether they changed the stored value",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "name", "outcome"}),

		recomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "recomputes_total",
			Help:        "Synchronous derived recomputations",
			ConstLabels: config.ConstLabels,
		}, []string{"name"}),

		asyncEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "async_events_total",
			Help:        "Async derivation lifecycle events",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "event"}),

		reactionRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reaction_runs_total",
			Help:        "Reaction effect executions",
			ConstLabels: config.ConstLabels,
		}, []string{"name", "status"}),

		reactionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reaction_duration_seconds",
			Help:        "Reaction effect duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"name"}),
	}
}

func nameOf(node reactive.NodeInfo) string {
	if node.Name == "" {
		return "anonymous"
	}
	return node.Name
}

func (c *Collector) OnWrite(node reactive.NodeInfo, changed bool) {
	outcome := "suppressed"
	if changed {
		outcome = "changed"
	}
	c.writes.WithLabelValues(node.Kind.String(), nameOf(node), outcome).Inc()
}

func (c *Collector) OnRecompute(node reactive.NodeInfo) {
	c.recomputes.WithLabelValues(nameOf(node)).Inc()
}

func (c *Collector) OnAsync(node reactive.NodeInfo, event reactive.AsyncEvent) {
	c.asyncEvents.WithLabelValues(nameOf(node), event.String()).Inc()
}

func (c *Collector) OnReaction(node reactive.NodeInfo, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	name := nameOf(node)
	c.reactionRuns.WithLabelValues(name, status).Inc()
	c.reactionDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}
