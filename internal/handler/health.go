package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/GonzaMon/muebles-api/internal/middleware"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultCheckTimeout = 5 * time.Second

// HealthHandler reports whether the service and its dependencies are
// reachable. Used by load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// HealthResponse is the body of GET /status.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// CheckHealth returns 200 when every required check passes and 503
// otherwise. The database is required; Redis is reported but only ever
// degrades the rate limiter, so its failure keeps the service healthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	if obs.ChecksEnabled("database") {
		result := h.runCheck(c.Request().Context(), logger, "database", func(ctx context.Context) error {
			return h.server.DB.Pool.Ping(ctx)
		})
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if h.server.Redis != nil && obs.ChecksEnabled("redis") {
		response.Checks["redis"] = h.runCheck(c.Request().Context(), logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthEvent(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(parent context.Context, logger zerolog.Logger, name string, check func(context.Context) error) CheckResult {
	timeout := h.server.Config.Observability.HealthChecks.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	checkStart := time.Now()
	err := check(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordHealthEvent(map[string]any{
			"check_type":       name,
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
	}

	return CheckResult{Status: "healthy", ResponseTime: elapsed.String()}
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		attrs["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
