// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It owns the *connection pool* the whole service shares: repositories
// borrow a connection per operation and hand it back when the operation
// returns, whatever the outcome. It also wires query tracing (pgx tracelog
// with zerolog, and New Relic when enabled) into the driver.
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/GonzaMon/muebles-api/internal/config"
	loggerConfig "github.com/GonzaMon/muebles-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// queryTracer is the subset of pgx.QueryTracer every chained tracer
// implements.
type queryTracer interface {
	TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
	TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
}

// multiTracer fans pgx query events out to several tracers, since
// ConnConfig only has a single Tracer slot.
type multiTracer struct {
	tracers []queryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// slowQueryTracer logs queries that take longer than threshold.
type slowQueryTracer struct {
	log       *zerolog.Logger
	threshold time.Duration
}

type slowQueryKey struct{}

type slowQueryStart struct {
	sql   string
	start time.Time
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryKey{}, slowQueryStart{sql: data.SQL, start: time.Now()})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(slowQueryKey{}).(slowQueryStart)
	if !ok {
		return
	}
	if elapsed := time.Since(started.start); elapsed >= t.threshold {
		t.log.Warn().
			Dur("duration", elapsed).
			Str("sql", started.sql).
			Err(data.Err).
			Msg("slow query")
	}
}

// DatabasePingTimeout is how long start-up waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// DSN builds the postgres URL for cfg, escaping the password.
func DSN(cfg config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// poolConfig parses the DSN and applies pool tuning and tracers.
func poolConfig(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Config, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []queryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if threshold := cfg.Observability.Logging.SlowQueryThreshold; threshold > 0 {
		tracers = append(tracers, &slowQueryTracer{log: logger, threshold: threshold})
	}

	// Every statement is logged in the local environment only.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return pgxPoolConfig, nil
}

// New creates the PostgreSQL connection pool and verifies it with a ping.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := poolConfig(cfg, logger, loggerService)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool: pool,
		log:  logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return database, nil
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
