package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/GonzaMon/muebles-api/internal/errs"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
)

// fixedWindow counts requests per client in Redis. Each window has its own
// key, which expires with the window.
type fixedWindow struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

func (fw *fixedWindow) key(client string, now time.Time) string {
	return fmt.Sprintf("ratelimit:%s:%d", client, now.Truncate(fw.window).Unix())
}

// allow counts one request and returns the requests left in the window,
// negative once the limit is exceeded.
func (fw *fixedWindow) allow(ctx context.Context, client string, now time.Time) (int64, error) {
	key := fw.key(client, now)

	pipe := fw.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, fw.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return fw.limit - count.Val(), nil
}

// RateLimitMiddleware limits requests per client IP when rate limiting is
// enabled and Redis is configured.
type RateLimitMiddleware struct {
	server  *server.Server
	limiter *fixedWindow
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{server: s}

	cfg := s.Config.RateLimit
	if cfg.Enabled && s.Redis != nil {
		rl.limiter = &fixedWindow{
			client: s.Redis,
			limit:  int64(cfg.Requests),
			window: time.Duration(cfg.Window) * time.Second,
		}
	}

	return rl
}

// Limit rejects requests over the limit with 429. A Redis failure lets
// the request through.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if r.limiter == nil {
			return next
		}

		return func(c echo.Context) error {
			remaining, err := r.limiter.allow(c.Request().Context(), c.RealIP(), time.Now())
			if err != nil {
				GetLogger(c).Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			header := c.Response().Header()
			header.Set(RateLimitLimitHeader, strconv.FormatInt(r.limiter.limit, 10))
			header.Set(RateLimitRemainingHeader, strconv.FormatInt(max(remaining, 0), 10))

			if remaining < 0 {
				r.RecordRateLimitHit(c.Path())
				return errs.NewTooManyRequestsError()
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
