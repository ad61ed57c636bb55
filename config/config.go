package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix       = "SENTISCOPE_"
	DefaultFileName = "sentiscope.yaml"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Session  SessionConfig  `koanf:"session"`
	Loader   LoaderConfig   `koanf:"loader"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Viz      VizConfig      `koanf:"viz"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Addr          string `koanf:"addr"`
	SessionSecret string `koanf:"session_secret"`
}

type SessionConfig struct {
	IdleTimeout   time.Duration `koanf:"idle_timeout"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type LoaderConfig struct {
	Timeout        time.Duration `koanf:"timeout"`
	MaxBytes       int64         `koanf:"max_bytes"`
	MaxRetries     int           `koanf:"max_retries"`
	InitialBackoff time.Duration `koanf:"initial_backoff"`
}

type AnalysisConfig struct {
	ColumnHint  string `koanf:"column_hint"` // prefills the column input
	PreviewRows int    `koanf:"preview_rows"`
	StripMarkup bool   `koanf:"strip_markup"`
}

type VizConfig struct {
	MaxBins    int `koanf:"max_bins"`
	MaxBuckets int `koanf:"max_buckets"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":            ":8501",
		"server.session_secret":  "",
		"session.idle_timeout":   "2h",
		"session.sweep_interval": "5m",
		"loader.timeout":         "30s",
		"loader.max_bytes":       32 << 20,
		"loader.max_retries":     3,
		"loader.initial_backoff": "500ms",
		"analysis.column_hint":   "",
		"analysis.preview_rows":  5,
		"analysis.strip_markup":  false,
		"viz.max_bins":           20,
		"viz.max_buckets":        50,
		"log.level":              "info",
	}
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"addr":         "server.addr",
	"log-level":    "log.level",
	"strip-markup": "analysis.strip_markup",
	"preview-rows": "analysis.preview_rows",
}

// Load layers configuration, lowest to highest priority: defaults, the YAML
// file, SENTISCOPE_* environment variables, then flags that were set.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// SENTISCOPE_LOADER_MAX_RETRIES -> loader.max_retries
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultFileName); err == nil {
		return DefaultFileName
	}
	return ""
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Session.IdleTimeout <= 0 {
		errs = append(errs, errors.New("session.idle_timeout must be positive"))
	}
	if c.Loader.Timeout <= 0 {
		errs = append(errs, errors.New("loader.timeout must be positive"))
	}
	if c.Loader.MaxRetries < 1 {
		errs = append(errs, errors.New("loader.max_retries must be at least 1"))
	}
	if c.Loader.MaxBytes <= 0 {
		errs = append(errs, errors.New("loader.max_bytes must be positive"))
	}
	if c.Analysis.PreviewRows < 1 {
		errs = append(errs, errors.New("analysis.preview_rows must be at least 1"))
	}
	if c.Viz.MaxBins < 1 {
		errs = append(errs, errors.New("viz.max_bins must be at least 1"))
	}
	if c.Viz.MaxBuckets < 2 {
		errs = append(errs, errors.New("viz.max_buckets must be at least 2"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
