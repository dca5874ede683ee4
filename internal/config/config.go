// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads scalestat settings from defaults, an optional
// YAML file, a .env file and SCALESTAT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/scalestat/scalereport"
)

// EnvPrefix is the prefix of environment variables that override
// settings. Nested keys use "_" for ".", as in SCALESTAT_CHARTS_DIR.
const EnvPrefix = "SCALESTAT"

// Config holds the settings of a scalestat run.
type Config struct {
	Input       string  `mapstructure:"input"`
	Format      string  `mapstructure:"format"`
	Tolerance   float64 `mapstructure:"tolerance"`
	SkipInvalid bool    `mapstructure:"skip_invalid"`

	Charts     Charts     `mapstructure:"charts"`
	Prometheus Prometheus `mapstructure:"prometheus"`
	Log        Log        `mapstructure:"log"`
}

// Charts configures chart rendering.
type Charts struct {
	Enabled  bool    `mapstructure:"enabled"`
	Dir      string  `mapstructure:"dir"`
	DPI      int     `mapstructure:"dpi"`
	WidthCM  float64 `mapstructure:"width_cm"`
	HeightCM float64 `mapstructure:"height_cm"`
}

// Prometheus configures the metrics textfile export.
type Prometheus struct {
	// Textfile is the path of the exported metrics. The export is
	// skipped if it is empty.
	Textfile string `mapstructure:"textfile"`
}

// Log configures diagnostics.
type Log struct {
	Level string `mapstructure:"level"`
}

// New returns a viper instance with the scalestat defaults and
// environment binding. Callers may bind command-line flags to it
// before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("input", "results.csv")
	v.SetDefault("format", "text")
	v.SetDefault("tolerance", 0.01)
	v.SetDefault("skip_invalid", false)
	v.SetDefault("charts.enabled", true)
	v.SetDefault("charts.dir", ".")
	v.SetDefault("charts.dpi", 150)
	v.SetDefault("charts.width_cm", 25.0)
	v.SetDefault("charts.height_cm", 15.0)
	v.SetDefault("prometheus.textfile", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration into v and returns the validated
// result. If cfgFile is empty, scalestat.yaml is read from the working
// directory when present. A .env file in the working directory, if
// any, is loaded into the environment first; it does not override
// variables that are already set.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("scalestat")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports all invalid settings of c in one error.
func (c *Config) Validate() error {
	var errs []string
	if c.Input == "" {
		errs = append(errs, "input must not be empty")
	}
	if !scalereport.ValidFormat(c.Format) {
		errs = append(errs, fmt.Sprintf("format must be one of %s, got: %q", strings.Join(scalereport.Formats, ", "), c.Format))
	}
	if c.Tolerance <= 0 {
		errs = append(errs, fmt.Sprintf("tolerance must be positive, got: %g", c.Tolerance))
	}
	if c.Charts.DPI <= 0 {
		errs = append(errs, fmt.Sprintf("charts.dpi must be positive, got: %d", c.Charts.DPI))
	}
	if c.Charts.WidthCM <= 0 || c.Charts.HeightCM <= 0 {
		errs = append(errs, fmt.Sprintf("charts size must be positive, got: %gx%g cm", c.Charts.WidthCM, c.Charts.HeightCM))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// LogLevel returns the parsed log.level setting.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
