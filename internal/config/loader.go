package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/qsphere/pkg/errors"
)

// envPrefix is the environment variable prefix of every setting.
const envPrefix = "QSPHERE"

// configName is the file name (without extension) looked up in search paths.
const configName = "qsphere"

var (
	ErrConfigFileNotFound = errors.New(errors.ErrCodeNotFound, "config file not found")
	ErrConfigParseError   = errors.New(errors.ErrCodeBadRequest, "config file could not be parsed")
	ErrConfigValidation   = errors.New(errors.ErrCodeValidation, "config validation failed")
)

var global atomic.Pointer[Config]

// Get returns the most recently loaded Config, or Default() when nothing was
// loaded yet.
func Get() *Config {
	if cfg := global.Load(); cfg != nil {
		return cfg
	}
	return Default()
}

type loadOptions struct {
	path        string
	searchPaths []string
	overrides   map[string]interface{}
}

// Option customises Load.
type Option func(*loadOptions)

// WithConfigPath loads exactly this file; a missing file is an error.
func WithConfigPath(path string) Option {
	return func(o *loadOptions) { o.path = path }
}

// WithSearchPaths looks for qsphere.{yaml,yml,json,toml} in each directory.
// Finding nothing is not an error.
func WithSearchPaths(dirs ...string) Option {
	return func(o *loadOptions) { o.searchPaths = append(o.searchPaths, dirs...) }
}

// WithOverrides sets keys with the highest precedence (e.g. bound CLI flags).
func WithOverrides(values map[string]interface{}) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]interface{}, len(values))
		}
		for k, v := range values {
			o.overrides[k] = v
		}
	}
}

// newViper builds a Viper instance with the standard settings: QSPHERE_ env
// prefix, automatic env binding and a "." → "_" key replacer so that
// "render.output_path" resolves to QSPHERE_RENDER_OUTPUT_PATH.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerDefaults(v)
	return v
}

// registerDefaults makes every key known to viper.  Unmarshal only consults
// the environment for known keys.
func registerDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("render.output_path", d.Render.OutputPath)
	v.SetDefault("render.auto_open", d.Render.AutoOpen)
	v.SetDefault("render.plotly_cdn", d.Render.PlotlyCDN)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.scene_format", d.Render.SceneFormat)
	v.SetDefault("render.norm_tolerance", d.Render.NormTolerance)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.rate_limit", d.Server.RateLimit)
	v.SetDefault("server.rate_burst", d.Server.RateBurst)

	v.SetDefault("publish.enabled", d.Publish.Enabled)
	v.SetDefault("publish.endpoint", d.Publish.Endpoint)
	v.SetDefault("publish.access_key_id", "")
	v.SetDefault("publish.secret_access_key", "")
	v.SetDefault("publish.use_ssl", d.Publish.UseSSL)
	v.SetDefault("publish.region", d.Publish.Region)
	v.SetDefault("publish.bucket", d.Publish.Bucket)
	v.SetDefault("publish.prefix", d.Publish.Prefix)
	v.SetDefault("publish.presign_expiry", d.Publish.PresignExpiry)
	v.SetDefault("publish.retention_days", d.Publish.RetentionDays)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.namespace", d.Metrics.Namespace)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("watch.debounce", d.Watch.Debounce)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
}

// Load resolves the configuration from (lowest to highest precedence)
// defaults, a config file, QSPHERE_* environment variables and overrides,
// then validates it.  The result also becomes the value returned by Get.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	v := newViper()
	if err := readConfigFile(v, o); err != nil {
		return nil, err
	}
	for k, val := range o.overrides {
		v.Set(k, val)
	}

	cfg, err := unmarshalAndFinalize(v)
	if err != nil {
		return nil, err
	}
	global.Store(cfg)
	return cfg, nil
}

func readConfigFile(v *viper.Viper, o *loadOptions) error {
	switch {
	case o.path != "":
		if _, err := os.Stat(o.path); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrConfigFileNotFound, o.path, err)
		}
		v.SetConfigFile(o.path)
	case len(o.searchPaths) > 0:
		v.SetConfigName(configName)
		for _, dir := range o.searchPaths {
			v.AddConfigPath(dir)
		}
	default:
		return nil
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}
	return nil
}

// LoadFromFile is Load(WithConfigPath(path)).
func LoadFromFile(path string) (*Config, error) {
	return Load(WithConfigPath(path))
}

// LoadFromEnv builds a Config from defaults and QSPHERE_* variables only.
//
//	QSPHERE_<SECTION>_<FIELD>   e.g.  QSPHERE_RENDER_AUTO_OPEN=false
func LoadFromEnv() (*Config, error) {
	return Load()
}

// unmarshalAndFinalize unmarshals viper state, applies defaults and validates.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParseError, err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigValidation, err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the re-parsed Config
// whenever the file changes on disk.  Invalid revisions are reported to
// onError (when non-nil) and otherwise skipped, so callers keep running on the
// last good configuration.  Watch does not block.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	if err := readConfigFile(v, &loadOptions{path: configPath}); err != nil {
		return err
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		global.Store(cfg)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad panics on any error.  It is intended for main().
func MustLoad(opts ...Option) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
