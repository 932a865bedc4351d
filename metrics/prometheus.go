package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnatoleLucet/reactive"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for run and flush durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus is a reactive.Observer exporting engine activity as Prometheus metrics.
type Prometheus struct {
	runs          *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	triggers      prometheus.Counter
	scheduled     prometheus.Counter
	flushes       prometheus.Counter
	flushedJobs   prometheus.Counter
	flushDuration prometheus.Histogram
}

var _ reactive.Observer = (*Prometheus)(nil)

// NewPrometheus registers the engine metrics and returns the observer.
// Pass it to reactive.Configure(reactive.WithObserver(...)).
func NewPrometheus(opts ...Option) *Prometheus {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Prometheus{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "subscriber_runs_total",
			Help:        "Total number of subscriber executions",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "subscriber_run_duration_seconds",
			Help:        "Subscriber execution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		triggers: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "triggers_total",
			Help:        "Total number of writes that scheduled at least one subscriber",
			ConstLabels: config.ConstLabels,
		}),

		scheduled: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "scheduled_subscribers_total",
			Help:        "Total number of subscribers scheduled by writes",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of flushes that ran deferred jobs",
			ConstLabels: config.ConstLabels,
		}),

		flushedJobs: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushed_jobs_total",
			Help:        "Total number of deferred jobs run by flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (p *Prometheus) SubscriberRan(kind reactive.Kind, elapsed time.Duration) {
	p.runs.WithLabelValues(kind.String()).Inc()
	p.runDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}

func (p *Prometheus) Triggered(scheduled int) {
	p.triggers.Inc()
	p.scheduled.Add(float64(scheduled))
}

func (p *Prometheus) Flushed(jobs int, elapsed time.Duration) {
	p.flushes.Inc()
	p.flushedJobs.Add(float64(jobs))
	p.flushDuration.Observe(elapsed.Seconds())
}
