package config

import (
	"fmt"
	"time"
)

// ObservabilityConfig groups all configuration related to telemetry and
// runtime visibility: logging, New Relic APM and health checks.
type ObservabilityConfig struct {
	// ServiceName identifies this service in logs, traces and APM dashboards.
	// It is always overwritten with ServiceName by LoadConfig.
	ServiceName string `koanf:"service_name"`

	// Environment mirrors Primary.Env.
	Environment string `koanf:"environment"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format in production ("json" or "console").
	// Outside production logs are always written for humans.
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold marks queries slower than this as slow in the
	// query log. Parsed from duration strings like "100ms".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
// An empty LicenseKey disables the agent entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`

	// DebugLogging enables the agent's own debug output.
	DebugLogging bool `koanf:"debug_logging"`
}

// HealthChecksConfig controls the dependency checks run by /status.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Interval is how frequently an external monitor is expected to poll.
	Interval time.Duration `koanf:"interval" validate:"min=1s"`

	// Timeout bounds each dependency ping.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks names the dependencies to check ("database", "redis").
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig provides the defaults loaded before the
// environment is read.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false, // mixed log formats otherwise
		},
		HealthChecks: HealthChecksConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
			Timeout:  5 * time.Second,
			Checks:   []string{"database", "redis"},
		},
	}
}

// Validate applies rules that struct tags cannot express.
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be json or console)", c.Logging.Format)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	return nil
}

// GetLogLevel returns the effective log level: the configured one, or a
// per-environment default when none is set.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development", "local":
		if c.Logging.Level == "" {
			return "debug"
		}
	}

	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether a license key was configured.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}

// ChecksEnabled reports whether the named dependency check should run.
func (c *ObservabilityConfig) ChecksEnabled(name string) bool {
	if !c.HealthChecks.Enabled {
		return false
	}
	for _, check := range c.HealthChecks.Checks {
		if check == name {
			return true
		}
	}
	return false
}
