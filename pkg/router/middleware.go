package router

import "context"

// NavigateFunc performs one navigation.
type NavigateFunc func(ctx context.Context, req *NavigationRequest) (*Navigation, error)

// Middleware wraps navigations. Middleware may observe or veto a
// navigation by returning an error instead of calling next.
type Middleware func(next NavigateFunc) NavigateFunc

// Chain creates a middleware that combines multiple middleware in order.
// The first middleware is the outermost.
func Chain(middleware ...Middleware) Middleware {
	return func(next NavigateFunc) NavigateFunc {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}
