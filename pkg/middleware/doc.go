// Package middleware provides observability middleware for the Rusty Words
// navigator.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry tracing middleware
//   - Structured logging middleware
//
// Every middleware is a router.Middleware and wraps one navigation:
//
//	nav := router.NewNavigator(resolver,
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.Logging(logger),
//	)
//
// # Prometheus Metrics
//
//   - rustywords_navigations_total{view,redirected}
//   - rustywords_navigation_duration_seconds{view}
//   - rustywords_navigation_errors_total{kind}
//
// Labels use the view name, never the raw path, so cardinality is bounded
// by the route table.
//
// # OpenTelemetry
//
// One span named "router.navigate" per navigation, carrying the requested
// path, the matched pattern, the view and whether a redirect happened. The
// span context is handed to the rest of the chain through ctx.
package middleware
