package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jfmyers9/nowplaying/internal/badge"
	"github.com/jfmyers9/nowplaying/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveListen   string
	serveLogFile  string
	serveLogLevel string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the badge HTTP server",
	Long: `Run the HTTP server that renders Last.fm now playing badges.

Endpoints:
  /user/{username}  badge for any Last.fm user (?bg=, ?barcolor=, ?textcolor=)
  /now-playing      badge for the configured username
  /card             badge for the configured username, honouring ?bg=
  /healthz          liveness check

The fixed endpoints are only available when lastfm.username is set.
The server handles graceful shutdown on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides config, default :3000)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "Log file path (default: stderr)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "Log level (debug, info, warn, error; overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if serveListen != "" {
		cfg.Listen = serveListen
	}
	if serveLogLevel != "" {
		cfg.LogLevel = serveLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(serveLogFile, cfg.LogLevel)

	logger.Info().
		Str("version", version).
		Str("listen", cfg.Listen).
		Str("username", cfg.LastFM.Username).
		Msg("Starting nowplaying server")

	presenter, _, err := newPresenter(cfg, logger)
	if err != nil {
		return err
	}

	renderer, err := badge.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	srv := server.New(server.Config{
		Listen:    cfg.Listen,
		Username:  cfg.LastFM.Username,
		Presenter: presenter,
		Renderer:  renderer,
		Logger:    logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle first signal gracefully, second signal forces exit
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
		cancel()

		<-sigChan
		logger.Warn().Msg("Second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server error")
		return err
	}

	logger.Info().Msg("Server stopped")
	return nil
}
