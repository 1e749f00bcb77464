package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/oversys/Rusty-Words/pkg/router"
)

// Default tracer name for Rusty Words.
const defaultTracerName = "rustywords"

// SpanName is the name of the span started for every navigation.
const SpanName = "router.navigate"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "rustywords").
	TracerName string

	// TracerProvider provides the tracer. Defaults to the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which navigations to trace.
	// If nil, all navigations are traced.
	Filter func(req *router.NavigationRequest) bool

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(req *router.NavigationRequest) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before serving:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(next router.NavigateFunc) router.NavigateFunc {
		return func(ctx context.Context, req *router.NavigationRequest) (*router.Navigation, error) {
			if config.Filter != nil && !config.Filter(req) {
				return next(ctx, req)
			}

			ctx, span := config.tracer.Start(ctx, SpanName,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("route.request_path", req.Path),
					attribute.String("route.kind", req.Kind.String()),
				),
			)
			defer span.End()

			nav, err := next(ctx, req)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}

			span.SetAttributes(
				attribute.String("route.path", nav.Path),
				attribute.String("route.pattern", nav.Route.Path),
				attribute.String("route.view", string(nav.Route.View)),
				attribute.Bool("route.redirected", nav.RedirectedFrom != ""),
			)
			span.SetStatus(codes.Ok, "")

			return nav, nil
		}
	}
}
