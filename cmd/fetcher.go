package cmd

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mielsense/nowplaying/internal/config"
	"github.com/mielsense/nowplaying/internal/nowplaying"
	"github.com/mielsense/nowplaying/pkg/lastfm"
)

// newFetcher builds the Last.fm client and fetcher from configuration.
func newFetcher(cfg *config.Config, logger zerolog.Logger) (*nowplaying.Fetcher, error) {
	if cfg.LastFM.APIKey == "" {
		return nil, fmt.Errorf("Last.fm API key not configured. Set LASTFM_APIKEY or lastfm.api_key in %s/config.yaml", config.GetConfigDir())
	}

	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:    cfg.LastFM.APIKey,
		BaseURL:   cfg.LastFM.BaseURL,
		UserAgent: "nowplaying/" + version,
		Logger:    lastfmLogger{logger: logger.With().Str("component", "lastfm").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Last.fm client: %w", err)
	}

	return nowplaying.NewFetcher(client.User(), cfg.LastFM.Username, logger), nil
}
