package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mielsense/nowplaying/internal/config"
	"github.com/mielsense/nowplaying/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the now playing page and API",
	Long: `Run an HTTP server that shows what the configured Last.fm user is playing.

Routes:
  GET /                 page with a "now playing" widget (omitted when nothing plays)
  GET /api/now-playing  {"track": {...}} | {"track": null} | {}
  GET /ws               websocket pushing the same JSON whenever the track changes
  GET /health           health check

Every page and API request performs its own Last.fm lookup; failures are
logged and shown as nothing playing.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config, default :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	// Set up logging
	logger := setupLogger(logFile, logLevel)

	logger.Info().
		Str("version", version).
		Str("user", cfg.LastFM.Username).
		Msg("Starting nowplaying server")

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		Title:          cfg.LastFM.Username,
		PollInterval:   time.Duration(cfg.PollInterval) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, fetcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}
