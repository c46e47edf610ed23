package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/odariane19-ui/permiscard/internal/api"
	"github.com/odariane19-ui/permiscard/internal/api/router"
	"github.com/odariane19-ui/permiscard/internal/config"
)

const shutdownTimeout = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "permiscard",
		Short: "Permit issuance and field verification service",
	}

	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Run: func(_ *cobra.Command, _ []string) {
			runServe()
		},
	}
}

func runServe() {
	cfg := config.DefaultServiceConfigFromEnv()

	initLogger(cfg.Logger)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	router.Init(s)

	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, err := range s.Shutdown(ctx) {
		log.Error().Err(err).Msg("Error during shutdown")
	}
}

func initLogger(cfg config.Logger) {
	zerolog.SetGlobalLevel(cfg.Level)

	if cfg.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
