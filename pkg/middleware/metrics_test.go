package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/oversys/Rusty-Words/pkg/router"
)

func newNavigator(mw ...router.Middleware) *router.Navigator {
	resolver := router.NewResolver(router.MustDefaultTable(), nil)
	return router.NewNavigator(resolver, mw...)
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsNavigations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, _ := NewMetrics(WithRegistry(reg))
	nav := newNavigator(m.Middleware())
	ctx := context.Background()

	for _, p := range []string{"/", "/word/1", "/word/2", "/bogus"} {
		if _, err := nav.Navigate(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	if got := testutil.ToFloat64(m.navigations.WithLabelValues("WordDetails", "false")); got != 2 {
		t.Errorf("navigations_total{WordDetails,false} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.navigations.WithLabelValues("WordList", "false")); got != 1 {
		t.Errorf("navigations_total{WordList,false} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.navigations.WithLabelValues("WordList", "true")); got != 1 {
		t.Errorf("navigations_total{WordList,true} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.duration.WithLabelValues("WordDetails")); got != 2 {
		t.Errorf("duration sample count = %d, want 2", got)
	}
}

func TestPrometheusRecordsErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, _ := NewMetrics(WithRegistry(reg))

	errBlocked := errors.New("blocked")
	veto := func(next router.NavigateFunc) router.NavigateFunc {
		return func(ctx context.Context, req *router.NavigationRequest) (*router.Navigation, error) {
			return nil, errBlocked
		}
	}

	nav := newNavigator(m.Middleware(), veto)
	if _, err := nav.Navigate(context.Background(), "/add"); !errors.Is(err, errBlocked) {
		t.Fatalf("err = %v, want errBlocked", err)
	}

	if got := testutil.ToFloat64(m.errors.WithLabelValues("push")); got != 1 {
		t.Errorf("navigation_errors_total{push} = %v, want 1", got)
	}
}

func TestMetricsOptions(t *testing.T) {
	_, cfg := NewMetrics(
		WithRegistry(prometheus.NewRegistry()),
		WithNamespace("words"),
		WithSubsystem("router"),
		WithConstLabels(prometheus.Labels{"instance": "test"}),
		WithBuckets([]float64{0.001, 0.01}),
	)

	if cfg.Namespace != "words" || cfg.Subsystem != "router" {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.Buckets) != 2 {
		t.Errorf("Buckets = %v", cfg.Buckets)
	}
	if cfg.ConstLabels["instance"] != "test" {
		t.Errorf("ConstLabels = %v", cfg.ConstLabels)
	}
}

func TestPrometheusRegistersWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	nav := newNavigator(Prometheus(WithRegistry(reg)))

	if _, err := nav.Navigate(context.Background(), "/add"); err != nil {
		t.Fatal(err)
	}

	n, err := testutil.GatherAndCount(reg, "rustywords_navigations_total")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("series = %d, want 1", n)
	}
}
