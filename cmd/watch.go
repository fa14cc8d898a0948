package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mielsense/nowplaying/internal/config"
	"github.com/mielsense/nowplaying/internal/nowplaying"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line whenever the playing track changes",
	Long: `Poll Last.fm every poll_interval seconds and print the current track
(formatted with output_format) each time it changes, or "-" when nothing
is playing. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("format", "f", "", "Output format template (overrides config)")
	watchCmd.Flags().DurationP("interval", "i", 0, "Poll interval (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if formatFlag, _ := cmd.Flags().GetString("format"); formatFlag != "" {
		cfg.OutputFormat = formatFlag
	}

	interval := time.Duration(cfg.PollInterval) * time.Second
	if flagInterval, _ := cmd.Flags().GetDuration("interval"); flagInterval > 0 {
		interval = flagInterval
	}

	logger := setupLogger(logFile, logLevel)

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	updates := make(chan nowplaying.Update, 1)
	poller := nowplaying.NewPoller(fetcher, interval, logger)

	errc := make(chan error, 1)
	go func() {
		errc <- poller.Run(ctx, updates)
	}()

	for {
		select {
		case update := <-updates:
			if err := printUpdate(cmd.OutOrStdout(), update, cfg.OutputFormat); err != nil {
				return err
			}
		case err := <-errc:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		}
	}
}

// printUpdate writes one line for an update.
func printUpdate(w io.Writer, update nowplaying.Update, format string) error {
	if !update.Result.Playing() {
		_, err := fmt.Fprintln(w, "-")
		return err
	}

	line, err := formatTrack(update.Result.Track, format)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(w, line)
	return err
}
