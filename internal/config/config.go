// Package config loads the verifier configuration.
//
// Values come from three layers, later layers overriding earlier ones:
// built-in defaults, an optional TOML file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	envconfig "petstore-verify/pkg/config"
)

// Environment variables read by Load.
const (
	EnvBaseURL        = "INVENTORY_BASE_URL"
	EnvTimeout        = "INVENTORY_TIMEOUT"
	EnvWorkers        = "VERIFY_WORKERS"
	EnvFixturePath    = "FIXTURE_PATH"
	EnvRequestsPerSec = "PROBE_RPS"
	EnvCircuitBreaker = "PROBE_CIRCUIT_BREAKER"
	EnvLogFormat      = "LOG_FORMAT"
	EnvLogLevel       = "LOG_LEVEL"
)

// Duration is a time.Duration read from a TOML string such as "10s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the verifier configuration.
type Config struct {
	// BaseURL is the root of the inventory API, e.g. http://localhost:8080/
	BaseURL string `toml:"base_url"`

	// Timeout bounds a single probe request. Zero disables the client timeout.
	Timeout Duration `toml:"timeout"`

	// Workers is the number of cases executed concurrently
	Workers int `toml:"workers"`

	// FixturePath points at the JSON or YAML file with the expected inventory
	FixturePath string `toml:"fixture_path"`

	// RequestsPerSecond throttles probe requests; zero means unlimited
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// CircuitBreaker enables the probe circuit breaker
	CircuitBreaker bool `toml:"circuit_breaker"`

	Log LogConfig `toml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:           "http://localhost:8080/",
		Timeout:           Duration(10 * time.Second),
		Workers:           4,
		FixturePath:       "testdata/pets.json",
		RequestsPerSecond: 0,
		CircuitBreaker:    true,
		Log: LogConfig{
			Format: "json",
			Level:  "info",
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file '%s': %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse TOML config '%s': %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.BaseURL = envconfig.GetEnvString(EnvBaseURL, c.BaseURL)
	c.Timeout = Duration(envconfig.GetEnvDuration(EnvTimeout, time.Duration(c.Timeout)))
	c.Workers = envconfig.GetEnvInt(EnvWorkers, c.Workers)
	c.FixturePath = envconfig.GetEnvString(EnvFixturePath, c.FixturePath)
	c.RequestsPerSecond = envconfig.GetEnvFloat(EnvRequestsPerSec, c.RequestsPerSecond)
	c.CircuitBreaker = envconfig.GetEnvBool(EnvCircuitBreaker, c.CircuitBreaker)
	c.Log.Format = envconfig.GetEnvString(EnvLogFormat, c.Log.Format)
	c.Log.Level = envconfig.GetEnvString(EnvLogLevel, c.Log.Level)
}

// Validate checks every field and returns all problems joined together.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, &ValidationError{Field: "base_url", Message: "must be an absolute http or https URL"})
	}
	if c.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "timeout", Message: "must not be negative"})
	}
	if c.Workers < 1 {
		errs = append(errs, &ValidationError{Field: "workers", Message: "must be at least 1"})
	}
	if c.FixturePath == "" {
		errs = append(errs, &ValidationError{Field: "fixture_path", Message: "is required"})
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, &ValidationError{Field: "requests_per_second", Message: "must not be negative"})
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, &ValidationError{Field: "log.format", Message: "must be json or text"})
	}

	return errors.Join(errs...)
}

// ValidationError represents a validation error with detailed field information.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
