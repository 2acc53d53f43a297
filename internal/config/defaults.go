package config

import "time"

const (
	DefaultOutputPath    = "qsphere_interativa.html"
	DefaultAutoOpen      = true
	DefaultPlotlyCDN     = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DefaultWidth         = 1400
	DefaultHeight        = 1100
	DefaultSceneFormat   = "json"
	DefaultNormTolerance = 1e-6

	DefaultServerHost      = "127.0.0.1"
	DefaultServerPort      = 8765
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodySize     = 8 << 20
	DefaultRateBurst       = 10

	DefaultPublishBucket = "qsphere-renders"
	DefaultPublishRegion = "us-east-1"
	DefaultPresignExpiry = 24 * time.Hour

	DefaultMetricsNamespace = "qsphere"
	DefaultMetricsPath      = "/metrics"

	DefaultWatchDebounce = 200 * time.Millisecond

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
	DefaultLogOutput = "stderr"
)

// Default returns a Config with every field at its default, including the
// boolean switches that ApplyDefaults cannot infer.
func Default() *Config {
	cfg := &Config{}
	cfg.Render.AutoOpen = DefaultAutoOpen
	cfg.Metrics.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// that have already been set are left unchanged so explicit configuration
// always wins.  Booleans are not touched; their defaults are registered with
// viper by the loader.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// Render
	if cfg.Render.OutputPath == "" {
		cfg.Render.OutputPath = DefaultOutputPath
	}
	if cfg.Render.PlotlyCDN == "" {
		cfg.Render.PlotlyCDN = DefaultPlotlyCDN
	}
	if cfg.Render.Width == 0 {
		cfg.Render.Width = DefaultWidth
	}
	if cfg.Render.Height == 0 {
		cfg.Render.Height = DefaultHeight
	}
	if cfg.Render.SceneFormat == "" {
		cfg.Render.SceneFormat = DefaultSceneFormat
	}
	if cfg.Render.NormTolerance == 0 {
		cfg.Render.NormTolerance = DefaultNormTolerance
	}

	// Server
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = DefaultRateBurst
	}

	// Publish
	if cfg.Publish.Bucket == "" {
		cfg.Publish.Bucket = DefaultPublishBucket
	}
	if cfg.Publish.Region == "" {
		cfg.Publish.Region = DefaultPublishRegion
	}
	if cfg.Publish.PresignExpiry == 0 {
		cfg.Publish.PresignExpiry = DefaultPresignExpiry
	}

	// Metrics
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// Watch
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = DefaultLogOutput
	}
}

//Personal.AI order the ending
