package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oversys/Rusty-Words/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rustywords").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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
		Namespace: "rustywords",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation metrics registered by Prometheus.
type Metrics struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
}

func newMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of completed navigations by view",
			ConstLabels: config.ConstLabels,
		}, []string{"view", "redirected"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"view"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of navigations rejected by middleware",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

// Prometheus creates middleware that collects navigation metrics.
//
// Metrics are registered with the configured registry when Prometheus is
// called, so call it once per registry and share the middleware between
// navigators.
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	mw := middleware.Prometheus(middleware.WithRegistry(reg))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
func Prometheus(opts ...MetricsOption) router.Middleware {
	m, _ := NewMetrics(opts...)
	return m.Middleware()
}

// NewMetrics registers the navigation metrics and returns them with the
// resolved configuration.
func NewMetrics(opts ...MetricsOption) (*Metrics, MetricsConfig) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return newMetrics(config), config
}

// Middleware returns the navigation middleware recording into m.
func (m *Metrics) Middleware() router.Middleware {
	return func(next router.NavigateFunc) router.NavigateFunc {
		return func(ctx context.Context, req *router.NavigationRequest) (*router.Navigation, error) {
			start := time.Now()

			nav, err := next(ctx, req)
			if err != nil {
				m.errors.WithLabelValues(req.Kind.String()).Inc()
				return nil, err
			}

			view := viewLabel(nav)
			m.duration.WithLabelValues(view).Observe(time.Since(start).Seconds())
			m.navigations.WithLabelValues(view, strconv.FormatBool(nav.RedirectedFrom != "")).Inc()

			return nav, nil
		}
	}
}

func viewLabel(nav *router.Navigation) string {
	if nav.Route.View == "" {
		return "none"
	}
	return string(nav.Route.View)
}
