// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Three sources are layered, later ones winning:
//   - defaults (see defaults.go)
//   - SERVER_HOST / SERVER_PORT, the variables the service has always used
//     to bind its listener
//   - MUEBLES_ prefixed variables, with "__" as the nesting separator,
//     e.g. MUEBLES_DATABASE__HOST -> database.host -> Config.Database.Host
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process environment before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every application variable.
	EnvPrefix = "MUEBLES_"

	// ServiceName tags logs and New Relic transactions.
	ServiceName = "muebles-api"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer so tests and tools can build a Config by hand
// without it; LoadConfig always fills it.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Host               string   `koanf:"host"`
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// Address returns the listener bind address. An empty host binds every
// interface.
func (s ServerConfig) Address() string {
	return s.Host + ":" + s.Port
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// ConnMaxLifetime and ConnMaxIdleTime are expressed in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	AutoMigrate     bool   `koanf:"auto_migrate"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; empty means Redis is not used.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// RateLimitConfig configures the fixed-window limiter applied per client IP.
// Window is expressed in seconds.
type RateLimitConfig struct {
	Enabled  bool `koanf:"enabled"`
	Requests int  `koanf:"requests" validate:"min=0"`
	Window   int  `koanf:"window" validate:"min=0"`
}

// envKey turns "MUEBLES_DATABASE__MAX_OPEN_CONNS" into "database.max_open_conns".
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// serverKey turns "SERVER_PORT" into "server.port".
func serverKey(s string) string {
	return "server." + strings.ToLower(strings.TrimPrefix(s, "SERVER_"))
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load default config: %w", err)
	}

	// Only SERVER_HOST and SERVER_PORT are taken from the unprefixed namespace.
	err := k.Load(env.ProviderWithValue("SERVER_", ".", func(key, value string) (string, interface{}) {
		if key != "SERVER_HOST" && key != "SERVER_PORT" {
			return "", nil
		}
		return serverKey(key), value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load server env variables: %w", err)
	}

	err = k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		name := envKey(key)
		// Lists are comma separated.
		if name == "server.cors_allowed_origins" || name == "observability.health_checks.checks" {
			return name, strings.Split(value, ",")
		}
		return name, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment always follow the primary config so
	// logs and traces agree on them.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	if mainConfig.RateLimit.Enabled {
		if !mainConfig.Redis.Enabled() {
			return nil, fmt.Errorf("rate_limit requires redis.address")
		}
		if mainConfig.RateLimit.Requests < 1 || mainConfig.RateLimit.Window < 1 {
			return nil, fmt.Errorf("rate_limit requests and window must be positive")
		}
	}

	return mainConfig, nil
}
