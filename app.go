// Package rustywords hosts the Rusty Words vocabulary app.
//
// App serves the page shell for every client route, the word API, the
// /_nav navigation websocket, static assets and Prometheus metrics:
//
//	store, _ := words.Open(ctx, "rusty_words.db")
//	app := rustywords.New(rustywords.Config{
//	    Store:  store,
//	    Static: rustywords.StaticConfig{Dir: "public"},
//	})
//	http.ListenAndServe(":1420", app)
package rustywords

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oversys/Rusty-Words/pkg/assets"
	"github.com/oversys/Rusty-Words/pkg/middleware"
	"github.com/oversys/Rusty-Words/pkg/router"
)

// NavPath is the navigation websocket endpoint.
const NavPath = "/_nav"

// App is the Rusty Words host. It implements http.Handler.
type App struct {
	config Config
	mux    *chi.Mux

	// Navigation middleware shared by every Navigator the app creates.
	navMiddleware []router.Middleware

	staticFS http.FileSystem
	assets   *assets.Resolver
	upgrader websocket.Upgrader

	logger *slog.Logger
}

// New creates an App with the given configuration.
func New(cfg Config) *App {
	cfg.applyDefaults()

	metrics, _ := middleware.NewMetrics(middleware.WithRegistry(cfg.Metrics.Registry))

	a := &App{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.Nav.CheckOrigin,
		},
		assets: assets.NewResolver(cfg.Static.Manifest, cfg.Static.Prefix),
		logger: cfg.Logger,
	}

	a.navMiddleware = []router.Middleware{
		middleware.OpenTelemetry(middleware.WithTracerProvider(cfg.TracerProvider)),
		metrics.Middleware(),
		middleware.Logging(cfg.Logger),
	}

	if cfg.Static.Dir != "" {
		a.staticFS = http.Dir(cfg.Static.Dir)
	}

	a.mux = a.routes()
	return a
}

func (a *App) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, a.accessLog, chimw.Recoverer)

	r.Get("/healthz", a.handleHealth)
	if a.config.Metrics.Path != "" {
		r.Method(http.MethodGet, a.config.Metrics.Path,
			promhttp.HandlerFor(a.config.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/greet", a.handleGreet)
		r.Route("/words", func(r chi.Router) {
			r.Get("/", a.handleListWords)
			r.Post("/", a.handleAddWord)
			r.Get("/{id}", a.handleGetWord)
			r.Put("/{id}", a.handleUpdateWord)
		})
		r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
			writeError(w, a.logger, &HTTPError{Code: http.StatusNotFound, Message: "not found"})
		})
	})

	r.Get(NavPath, a.handleNav)

	r.Get("/*", a.handlePage)
	r.Head("/*", a.handlePage)

	return r
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Handler returns the App as an http.Handler.
func (a *App) Handler() http.Handler {
	return a
}

// Use appends navigation middleware. It applies to navigators created
// after the call.
func (a *App) Use(mw ...router.Middleware) {
	a.navMiddleware = append(a.navMiddleware, mw...)
}

// Table returns the route table.
func (a *App) Table() *router.Table {
	return a.config.Table
}

// Registry returns the Prometheus registry navigation metrics are recorded in.
func (a *App) Registry() *prometheus.Registry {
	return a.config.Metrics.Registry
}

// NewNavigator returns a Navigator over the app's table and middleware,
// writing titles to sink.
func (a *App) NewNavigator(sink router.TitleSink) *router.Navigator {
	resolver := router.NewResolver(a.config.Table, sink)
	return router.NewNavigator(resolver, a.navMiddleware...)
}

// accessLog logs one line per request. Health checks and scrapes are
// skipped; responses with status >= 400 log at warn.
func (a *App) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || (a.config.Metrics.Path != "" && r.URL.Path == a.config.Metrics.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		if status >= 400 {
			level = slog.LevelWarn
		}

		a.logger.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", chimw.GetReqID(r.Context())),
		)
	})
}

// isStaticPath reports whether urlPath falls under a dedicated static prefix.
func (a *App) isStaticPath(urlPath string) bool {
	return a.staticFS != nil && a.config.Static.Prefix != "/" &&
		strings.HasPrefix(urlPath, a.config.Static.Prefix)
}
