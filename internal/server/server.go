// Package server defines the Server struct that composes the app's main
// dependencies and owns their lifecycle: configuration, logger and the
// optional New Relic application, the database pool, the optional Redis
// client and the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GonzaMon/muebles-api/internal/config"
	"github.com/GonzaMon/muebles-api/internal/database"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/GonzaMon/muebles-api/internal/logger"
)

// RedisPingTimeout bounds the start-up Redis ping.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database

	// Redis is nil when no redis.address is configured.
	Redis *redis.Client

	httpServer *http.Server
}

// New connects the database (failing when it is unreachable) and, when
// configured, Redis. Redis being down at start-up is logged, not fatal:
// it only backs the rate limiter, which fails open.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if cfg.Redis.Enabled() {
		server.Redis = newRedisClient(cfg, logger, loggerService)
	}

	return server, nil
}

func newRedisClient(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("failed to connect to Redis, continuing without it")
	} else {
		logger.Info().Str("address", cfg.Redis.Address).Msg("connected to Redis")
	}

	return redisClient
}

// SetupHTTPServer configures the listener around handler. Timeouts are
// configured in seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         s.Config.Server.Address(),
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called. It returns
// http.ErrServerClosed after a graceful shutdown.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("address", s.httpServer.Addr).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires, then releases the
// pool, Redis and the New Relic agent. Every step runs even if an earlier
// one failed; the errors are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	s.LoggerService.Shutdown()

	return errors.Join(errs...)
}
