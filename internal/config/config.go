// Package config loads rayexport settings from defaults, an optional YAML
// file and RAYEXPORT_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override:
// RAYEXPORT_EXPORT_SCHEMA sets export.schema.
const EnvPrefix = "RAYEXPORT"

// Config holds all rayexport configuration.
type Config struct {
	Export ExportConfig `mapstructure:"export"`
	Batch  BatchConfig  `mapstructure:"batch"`
	Log    LogConfig    `mapstructure:"log"`
}

// ExportConfig holds the defaults applied to every export.
type ExportConfig struct {
	Group      string `mapstructure:"group"`
	Route      bool   `mapstructure:"route"`
	Schema     string `mapstructure:"schema"`      // v1 or v2
	LineEnding string `mapstructure:"line_ending"` // crlf or lf
	StrictText bool   `mapstructure:"strict_text"`
}

// BatchConfig controls the batch worker pool.
type BatchConfig struct {
	Workers    int  `mapstructure:"workers"`
	SkipErrors bool `mapstructure:"skip_errors"`
}

// LogConfig controls diagnostics output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // text or json
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// LineEndingBytes returns the terminator for the configured line ending.
func (e ExportConfig) LineEndingBytes() string {
	if strings.EqualFold(e.LineEnding, "lf") {
		return "\n"
	}
	return "\r\n"
}

// Load reads configuration. If path is empty, rayexport.yaml is looked up in
// the working directory and the user config directory; a missing file is not
// an error. A path that is given explicitly must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("export.group", "WAYPOINTS")
	v.SetDefault("export.route", false)
	v.SetDefault("export.schema", "v1")
	v.SetDefault("export.line_ending", "crlf")
	v.SetDefault("export.strict_text", false)
	v.SetDefault("batch.workers", runtime.NumCPU())
	v.SetDefault("batch.skip_errors", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("rayexport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "rayexport"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	var errs []string

	switch strings.ToLower(c.Export.Schema) {
	case "v1", "v2":
	default:
		errs = append(errs, fmt.Sprintf("export.schema must be v1 or v2, got %q", c.Export.Schema))
	}
	switch strings.ToLower(c.Export.LineEnding) {
	case "crlf", "lf":
	default:
		errs = append(errs, fmt.Sprintf("export.line_ending must be crlf or lf, got %q", c.Export.LineEnding))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Sprintf("batch.workers must be >= 0, got %d", c.Batch.Workers))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
