// Command inventory runs the store inventory dashboard API.
//
//	inventory serve     start the HTTP server
//	inventory migrate   apply the embedded schema migrations
package main

import (
	"fmt"

	"github.com/deppfellow/store-inventory/internal/config"
	"github.com/deppfellow/store-inventory/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Store inventory dashboard API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// The configured logger may not exist yet, so failures are reported
		// through a plain logger.
		log := logger.NewLogger("error", false)
		log.Fatal().Err(err).Msg("inventory exited")
	}
}

// bootstrap loads configuration and builds the application logger shared by
// every subcommand.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, zerolog.Logger{}, err
	}

	return cfg, loggerService, logger.NewLoggerWithService(cfg.Observability, loggerService), nil
}
