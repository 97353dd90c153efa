package observe

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/runtime"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vrender").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vrender",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type metrics struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderErrors   *prometheus.CounterVec
	mountedGauge   prometheus.Gauge
}

// defaultMetrics are the metrics registered on the default registerer.
// They are created once so repeated observers share them.
var (
	defaultMetrics   *metrics
	defaultMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of component setup, mount and update steps",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "phase", "status"}),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Duration of component setup, mount and update steps in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component", "phase"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed steps by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "code"}),

		mountedGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mounted_components",
			Help:        "Number of successfully mounted component instances",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates an observer that records render metrics.
func Prometheus(opts ...MetricsOption) runtime.Observer {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var m *metrics
	if config.Registry == prometheus.DefaultRegisterer {
		defaultMetricsMu.Lock()
		if defaultMetrics == nil {
			defaultMetrics = initMetrics(config)
		}
		m = defaultMetrics
		defaultMetricsMu.Unlock()
	} else {
		m = initMetrics(config)
	}

	return runtime.ObserverFunc(func(inst *runtime.Instance, phase runtime.Phase) func(error) {
		start := time.Now()
		component := inst.Name()

		return func(err error) {
			m.renderDuration.WithLabelValues(component, string(phase)).Observe(time.Since(start).Seconds())

			status := "success"
			if err != nil {
				status = "error"
				m.renderErrors.WithLabelValues(component, errorCode(err)).Inc()
			} else if phase == runtime.PhaseMount {
				m.mountedGauge.Inc()
			}
			m.rendersTotal.WithLabelValues(component, string(phase), status).Inc()
		}
	})
}

// errorCode keeps the label set small: coded errors report their code,
// everything else is "internal".
func errorCode(err error) string {
	var e *errors.Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return "internal"
}
