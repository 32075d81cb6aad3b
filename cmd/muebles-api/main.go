package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GonzaMon/muebles-api/internal/config"
	"github.com/GonzaMon/muebles-api/internal/database"
	"github.com/GonzaMon/muebles-api/internal/handler"
	"github.com/GonzaMon/muebles-api/internal/logger"
	"github.com/GonzaMon/muebles-api/internal/repository"
	"github.com/GonzaMon/muebles-api/internal/router"
	"github.com/GonzaMon/muebles-api/internal/server"
	"github.com/GonzaMon/muebles-api/internal/service"
)

const (
	migrationTimeout = 60 * time.Second
	shutdownTimeout  = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flushed by srv.Shutdown.
	loggerService := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
		err := database.Migrate(ctx, &log, cfg)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	handlers := handler.NewHandlers(srv, services)

	r := router.NewRouter(srv, handlers)
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Msgf("Ejecutandose en %s", baseURL(cfg.Server))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// baseURL is the address of the muebles resource as printed at start-up.
func baseURL(s config.ServerConfig) string {
	host := s.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%s%s/muebles", host, s.Port, router.APIPrefix)
}
