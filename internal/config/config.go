// Package config defines the configuration structures of the qsphere tool.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"strings"
	"time"
)

// RenderConfig controls how scenes are turned into documents.
type RenderConfig struct {
	OutputPath  string `mapstructure:"output_path"`
	AutoOpen    bool   `mapstructure:"auto_open"`
	PlotlyCDN   string `mapstructure:"plotly_cdn"`
	Width       int    `mapstructure:"width"`
	Height      int    `mapstructure:"height"`
	SceneFormat string `mapstructure:"scene_format"` // "json" | "msgpack"
	// NormTolerance is the allowed |sum(p) - 1| before a warning is logged.
	NormTolerance float64 `mapstructure:"norm_tolerance"`
}

// ServerConfig holds HTTP preview server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// AllowedOrigins lists the browser origins granted CORS access.  Empty
	// disables cross-origin access.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RateLimit is the sustained renders per second allowed per client; 0
	// disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PublishConfig holds MinIO / S3-compatible upload parameters.
type PublishConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	Region          string        `mapstructure:"region"`
	Bucket          string        `mapstructure:"bucket"`
	Prefix          string        `mapstructure:"prefix"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
	RetentionDays   int           `mapstructure:"retention_days"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// WatchConfig tunes the file watcher.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
	Output string `mapstructure:"output"`
}

// Config is the root configuration structure.
type Config struct {
	Render  RenderConfig  `mapstructure:"render"`
	Server  ServerConfig  `mapstructure:"server"`
	Publish PublishConfig `mapstructure:"publish"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Log     LogConfig     `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered.
func (c *Config) Validate() error {
	// Render
	if strings.TrimSpace(c.Render.OutputPath) == "" {
		return fmt.Errorf("config: render.output_path is required")
	}
	if c.Render.Width < 1 || c.Render.Height < 1 {
		return fmt.Errorf("config: render.width and render.height must be ≥ 1, got %dx%d",
			c.Render.Width, c.Render.Height)
	}
	switch strings.ToLower(c.Render.SceneFormat) {
	case "json", "msgpack", "mpk":
	default:
		return fmt.Errorf("config: render.scene_format %q is invalid; expected json|msgpack", c.Render.SceneFormat)
	}
	if c.Render.NormTolerance < 0 {
		return fmt.Errorf("config: render.norm_tolerance must be ≥ 0, got %g", c.Render.NormTolerance)
	}

	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	if c.Server.MaxBodySize < 1 {
		return fmt.Errorf("config: server.max_body_size must be ≥ 1, got %d", c.Server.MaxBodySize)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("config: server.rate_limit must be ≥ 0, got %g", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("config: server.rate_burst must be ≥ 1 when rate limiting, got %d", c.Server.RateBurst)
	}

	// Publish
	if c.Publish.Enabled {
		if c.Publish.Endpoint == "" {
			return fmt.Errorf("config: publish.endpoint is required when publishing is enabled")
		}
		if c.Publish.Bucket == "" {
			return fmt.Errorf("config: publish.bucket is required when publishing is enabled")
		}
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

//Personal.AI order the ending
