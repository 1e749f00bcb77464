package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/oversys/Rusty-Words/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rustywords.json"

	// DefaultPort is the default server port.
	DefaultPort = 1420

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultDatabase is the default SQLite database path.
	DefaultDatabase = "rusty_words.db"

	// DefaultStaticDir is the default static file directory.
	DefaultStaticDir = "public"

	// DefaultStaticPrefix is the default URL prefix for static files.
	DefaultStaticPrefix = "/assets/"

	// DefaultManifest is the asset manifest file inside the static directory.
	DefaultManifest = "manifest.json"

	// DefaultBackupRegion is the default S3 region for backups.
	DefaultBackupRegion = "us-east-1"

	// DefaultMetricsPath is the default Prometheus scrape path.
	DefaultMetricsPath = "/metrics"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the complete rustywords.json configuration.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Static   StaticConfig   `json:"static"`
	Metrics  MetricsConfig  `json:"metrics"`
	Log      LogConfig      `json:"log"`
	Backup   BackupConfig   `json:"backup"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`
}

// DatabaseConfig contains word store settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. ":memory:" keeps words in memory.
	Path string `json:"path,omitempty"`
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/assets/").
	Prefix string `json:"prefix,omitempty"`

	// Manifest is the asset manifest, relative to Dir (default:
	// "manifest.json"). A missing file disables fingerprinted links.
	Manifest string `json:"manifest,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// BackupConfig contains S3 backup settings.
type BackupConfig struct {
	// Bucket receives snapshots. Empty disables S3 backups.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to object keys (e.g., "rusty-words/").
	Prefix string `json:"prefix,omitempty"`

	// Region is the bucket region (default: "us-east-1").
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint for compatible stores.
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle enables path-style bucket addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Database: DatabaseConfig{
			Path: DefaultDatabase,
		},
		Static: StaticConfig{
			Dir:      DefaultStaticDir,
			Prefix:   DefaultStaticPrefix,
			Manifest: DefaultManifest,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
		Backup: BackupConfig{
			Region: DefaultBackupRegion,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for rustywords.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config to use defaults")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads rustywords.json from dir, falling back to defaults
// when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.HasCode(err, "E100") {
		return New(), nil
	}
	return cfg, err
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabase
	}
	if c.Static.Dir == "" {
		c.Static.Dir = DefaultStaticDir
	}
	if c.Backup.Region == "" {
		c.Backup.Region = DefaultBackupRegion
	}
	if c.Static.Manifest == "" {
		c.Static.Manifest = DefaultManifest
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = DefaultStaticPrefix
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") {
		c.Static.Prefix = "/" + c.Static.Prefix
	}
	if !strings.HasSuffix(c.Static.Prefix, "/") {
		c.Static.Prefix += "/"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = FormatText
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetailf("Port %d must be between 0 and 65535", c.Server.Port)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Log.Format != FormatText && c.Log.Format != FormatJSON {
		return errors.New("E103").
			WithDetailf("Unknown log format %q", c.Log.Format).
			WithSuggestion(`Use "text" or "json"`)
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E103").
			WithDetailf("Unknown log level %q", c.Log.Level).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// DatabasePath returns the database path, resolved against the config
// directory when relative.
func (c *Config) DatabasePath() string {
	return c.resolve(c.Database.Path)
}

// StaticPath returns the static directory, resolved like DatabasePath.
func (c *Config) StaticPath() string {
	return c.resolve(c.Static.Dir)
}

// ManifestPath returns the asset manifest path inside the static directory.
func (c *Config) ManifestPath() string {
	if filepath.IsAbs(c.Static.Manifest) {
		return c.Static.Manifest
	}
	return filepath.Join(c.StaticPath(), c.Static.Manifest)
}

func (c *Config) resolve(path string) string {
	if path == ":memory:" || filepath.IsAbs(path) || c.configPath == "" {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
