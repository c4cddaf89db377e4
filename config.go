// SPDX-License-Identifier: Apache-2.0

package ucase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by [ConfigFromEnv].
const (
	EnvConfigFile        = "UCASE_CONFIG"
	EnvEnableTransitions = "UCASE_ENABLE_TRANSITIONS"
	EnvLogLevel          = "UCASE_LOG_LEVEL"
	EnvLogFormat         = "UCASE_LOG_FORMAT"
)

// ErrInvalidConfig is returned (wrapped) for any configuration that cannot be
// loaded or does not validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config configures an [Engine] and the logger of applications built on it.
type Config struct {
	// EnableTransitions turns transition recording on.
	EnableTransitions bool `yaml:"enable_transitions"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures [Config.NewLogger].
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is either text or json.
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing else is given:
// transitions enabled, info level text logs.
func DefaultConfig() Config {
	return Config{
		EnableTransitions: true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their [DefaultConfig] values.
//
// Example file:
//
//	enable_transitions: false
//	log:
//	  level: debug
//	  format: json
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data over [DefaultConfig].
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv builds the configuration of the process.
//
// It starts from [DefaultConfig], loads the file named by UCASE_CONFIG if
// set, then applies UCASE_ENABLE_TRANSITIONS, UCASE_LOG_LEVEL and
// UCASE_LOG_FORMAT.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfigFile); path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return Config{}, err
		}
	}
	if v := os.Getenv(EnvEnableTransitions); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvEnableTransitions, err)
		}
		cfg.EnableTransitions = enabled
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the logging settings.
func (c Config) Validate() error {
	if _, err := parseLogLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
}

// NewLogger builds a structured logger writing to w according to the
// configuration.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	level, _ := parseLogLevel(c.Log.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.Log.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, level)
}
