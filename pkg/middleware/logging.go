package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/oversys/Rusty-Words/pkg/router"
)

// Logging creates middleware that logs every navigation at debug level and
// rejected navigations at warn level. A nil logger uses slog.Default().
func Logging(logger *slog.Logger) router.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next router.NavigateFunc) router.NavigateFunc {
		return func(ctx context.Context, req *router.NavigationRequest) (*router.Navigation, error) {
			start := time.Now()

			nav, err := next(ctx, req)
			if err != nil {
				logger.WarnContext(ctx, "navigation rejected",
					"path", req.Path,
					"kind", req.Kind.String(),
					"error", err,
				)
				return nil, err
			}

			attrs := []any{
				"path", nav.URL(),
				"view", string(nav.Route.View),
				"kind", req.Kind.String(),
				"duration", time.Since(start),
			}
			if nav.RedirectedFrom != "" {
				attrs = append(attrs, "redirected_from", nav.RedirectedFrom)
			}
			logger.DebugContext(ctx, "navigation", attrs...)

			return nav, nil
		}
	}
}
