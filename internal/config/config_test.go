package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/qsphere/internal/config"
)

func TestConfig_Validate_Default(t *testing.T) {
	t.Parallel()
	assert.NoError(t, config.Default().Validate())
}

func TestConfig_Validate_Failures(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty output path", func(c *config.Config) { c.Render.OutputPath = "  " }, "render.output_path"},
		{"zero width", func(c *config.Config) { c.Render.Width = 0 }, "render.width"},
		{"bad scene format", func(c *config.Config) { c.Render.SceneFormat = "xml" }, "render.scene_format"},
		{"negative tolerance", func(c *config.Config) { c.Render.NormTolerance = -1 }, "render.norm_tolerance"},
		{"port too low", func(c *config.Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *config.Config) { c.Server.Port = 70000 }, "server.port"},
		{"body size", func(c *config.Config) { c.Server.MaxBodySize = 0 }, "server.max_body_size"},
		{"negative rate", func(c *config.Config) { c.Server.RateLimit = -1 }, "server.rate_limit"},
		{"rate without burst", func(c *config.Config) {
			c.Server.RateLimit = 5
			c.Server.RateBurst = 0
		}, "server.rate_burst"},
		{"publish endpoint", func(c *config.Config) { c.Publish.Enabled = true }, "publish.endpoint"},
		{"publish bucket", func(c *config.Config) {
			c.Publish.Enabled = true
			c.Publish.Endpoint = "localhost:9000"
			c.Publish.Bucket = ""
		}, "publish.bucket"},
		{"metrics namespace", func(c *config.Config) { c.Metrics.Namespace = "" }, "metrics.namespace"},
		{"log level", func(c *config.Config) { c.Log.Level = "verbose" }, "log.level"},
		{"log format", func(c *config.Config) { c.Log.Format = "text" }, "log.format"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestConfig_Validate_MetricsDisabledNeedsNoNamespace(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Metrics.Enabled = false
	cfg.Metrics.Namespace = ""
	assert.NoError(t, cfg.Validate())
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()
	s := config.ServerConfig{Host: "0.0.0.0", Port: 9000}
	assert.Equal(t, "0.0.0.0:9000", s.Addr())
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	assert.Equal(t, "qsphere_interativa.html", cfg.Render.OutputPath)
	assert.True(t, cfg.Render.AutoOpen)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Publish.Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
}

//Personal.AI order the ending
