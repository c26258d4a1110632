package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/store-inventory/internal/database"
	"github.com/deppfellow/store-inventory/internal/handler"
	"github.com/deppfellow/store-inventory/internal/repository"
	"github.com/deppfellow/store-inventory/internal/router"
	"github.com/deppfellow/store-inventory/internal/server"
	"github.com/deppfellow/store-inventory/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply schema migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateOnStart {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return err
	}

	services, err := service.NewServices(srv, repository.NewRepositories(srv))
	if err != nil {
		return err
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv, services))
	srv.SetupHTTPServer(r)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			return errors.Join(err, shutdown(context.Background(), srv, &log))
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown(shutdownCtx, srv, &log); err != nil {
		return err
	}

	log.Info().Msg("server exited gracefully")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown stops srv and logs a failure before returning it.
func shutdown(ctx context.Context, srv shutdowner, log *zerolog.Logger) error {
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}
	return nil
}
