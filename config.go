package rustywords

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/oversys/Rusty-Words/pkg/assets"
	"github.com/oversys/Rusty-Words/pkg/router"
	"github.com/oversys/Rusty-Words/pkg/words"
)

// WordStore is the persistence the host needs. *words.Store implements it.
type WordStore interface {
	All(ctx context.Context) ([]words.Word, error)
	Get(ctx context.Context, id int64) (words.Word, error)
	Add(ctx context.Context, w words.Word) (int64, error)
	Update(ctx context.Context, w words.Word) error
}

// Config configures an App.
type Config struct {
	// Store holds the vocabulary. Required for /api/words.
	Store WordStore

	// Table is the route table. Defaults to router.MustDefaultTable().
	Table *router.Table

	// Static configures static file serving.
	Static StaticConfig

	// Metrics configures the Prometheus registry and scrape endpoint.
	Metrics MetricsConfig

	// TracerProvider receives navigation spans. Nil uses the global provider.
	TracerProvider trace.TracerProvider

	// Nav configures the /_nav websocket.
	Nav NavConfig

	// MaxBodyBytes limits JSON request bodies. Default: 1 MiB.
	MaxBodyBytes int64

	// Logger is the structured logger for the application.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files (e.g., "public").
	// Empty disables static serving.
	Dir string

	// Prefix is the URL path prefix for static files.
	// Default: "/assets/".
	Prefix string

	// Manifest maps asset names to fingerprinted files for the page shell.
	// Nil links main.js and styles.css unchanged.
	Manifest *assets.Manifest
}

// MetricsConfig configures metrics.
type MetricsConfig struct {
	// Registry collects navigation metrics. Nil creates a private registry.
	Registry *prometheus.Registry

	// Path is the scrape endpoint. Empty disables the endpoint; navigation
	// metrics are still recorded in Registry.
	Path string
}

// NavConfig configures the navigation websocket.
type NavConfig struct {
	// ReadTimeout closes idle connections. Default: 5 minutes.
	ReadTimeout time.Duration

	// MaxMessageSize limits client frames. Default: 4 KiB.
	MaxMessageSize int64

	// CheckOrigin validates the websocket Origin header.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool
}

const (
	defaultStaticPrefix   = "/assets/"
	defaultMaxBodyBytes   = 1 << 20
	defaultReadTimeout    = 5 * time.Minute
	defaultMaxMessageSize = 4 << 10
)

func (c *Config) applyDefaults() {
	if c.Table == nil {
		c.Table = router.MustDefaultTable()
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = defaultStaticPrefix
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") {
		c.Static.Prefix = "/" + c.Static.Prefix
	}
	if !strings.HasSuffix(c.Static.Prefix, "/") {
		c.Static.Prefix += "/"
	}
	if c.Metrics.Registry == nil {
		c.Metrics.Registry = prometheus.NewRegistry()
	}
	if c.Nav.ReadTimeout == 0 {
		c.Nav.ReadTimeout = defaultReadTimeout
	}
	if c.Nav.MaxMessageSize == 0 {
		c.Nav.MaxMessageSize = defaultMaxMessageSize
	}
	if c.Nav.CheckOrigin == nil {
		c.Nav.CheckOrigin = SameOriginCheck
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// SameOriginCheck accepts websocket requests without an Origin header or
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return r.Host != "" && originURL.Host == r.Host
}
