package config

// defaults returns the flat key map loaded before any environment variable.
// Database credentials have no default on purpose: a missing one fails
// validation.
func defaults() map[string]interface{} {
	obs := DefaultObservabilityConfig()

	return map[string]interface{}{
		"primary.env": "development",

		"server.host":                 "",
		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},

		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  3600,
		"database.conn_max_idle_time": 300,
		"database.auto_migrate":       true,

		"rate_limit.enabled":  false,
		"rate_limit.requests": 100,
		"rate_limit.window":   60,

		"observability.logging.level":                         obs.Logging.Level,
		"observability.logging.format":                        obs.Logging.Format,
		"observability.logging.slow_query_threshold":          obs.Logging.SlowQueryThreshold,
		"observability.new_relic.license_key":                 obs.NewRelic.LicenseKey,
		"observability.new_relic.app_log_forwarding_enabled":  obs.NewRelic.AppLogForwardingEnabled,
		"observability.new_relic.distributed_tracing_enabled": obs.NewRelic.DistributedTracingEnabled,
		"observability.new_relic.debug_logging":               obs.NewRelic.DebugLogging,
		"observability.health_checks.enabled":                 obs.HealthChecks.Enabled,
		"observability.health_checks.interval":                obs.HealthChecks.Interval,
		"observability.health_checks.timeout":                 obs.HealthChecks.Timeout,
		"observability.health_checks.checks":                  obs.HealthChecks.Checks,
	}
}
