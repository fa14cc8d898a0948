package nowplaying

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mielsense/nowplaying/pkg/lastfm"
)

// RecentTracksGetter is the Last.fm capability the fetcher needs.
// *lastfm.UserService satisfies it.
type RecentTracksGetter interface {
	GetRecentTracks(ctx context.Context, p lastfm.RecentTracksParams) (*lastfm.RecentTracks, error)
}

// Fetcher looks up what a fixed Last.fm user is listening to.
// It holds no mutable state and is safe for concurrent use.
type Fetcher struct {
	tracks RecentTracksGetter
	user   string
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher for user.
func NewFetcher(tracks RecentTracksGetter, user string, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		tracks: tracks,
		user:   user,
		logger: logger.With().Str("component", "fetcher").Logger(),
	}
}

// Load returns the user's currently playing track.
//
// Load never fails. Network, upstream and parse errors are logged and
// reported as a Result with no track.
func (f *Fetcher) Load(ctx context.Context) Result {
	result, err := f.load(ctx)
	if err != nil {
		event := f.logger.Error().Err(err).Str("user", f.user)
		var upstream *lastfm.UpstreamError
		if errors.As(err, &upstream) {
			event = event.Int("status", upstream.StatusCode)
		}
		event.Msg("Failed to fetch now playing track")
		return Result{}
	}
	return result
}

func (f *Fetcher) load(ctx context.Context) (Result, error) {
	recent, err := f.tracks.GetRecentTracks(ctx, lastfm.RecentTracksParams{
		User:  f.user,
		Limit: 1,
	})
	if err != nil {
		return Result{}, err
	}

	if !recent.Listed {
		f.logger.Debug().Str("user", f.user).Msg("Response had no track list")
		return Result{Empty: true}, nil
	}

	if len(recent.Tracks) == 0 {
		return Result{}, nil
	}

	track := recent.Tracks[0]
	if !track.NowPlaying {
		return Result{}, nil
	}

	f.logger.Debug().
		Str("track", track.Name).
		Str("artist", track.Artist).
		Msg("Now playing")

	return Result{Track: &track}, nil
}
