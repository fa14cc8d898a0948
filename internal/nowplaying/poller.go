package nowplaying

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Loader produces a now-playing Result. *Fetcher implements it.
type Loader interface {
	Load(ctx context.Context) Result
}

// Update is sent by the Poller whenever the playing track changes.
type Update struct {
	Result Result
	At     time.Time
}

// Poller loads the now-playing state at regular intervals
type Poller struct {
	loader   Loader
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller creates a new Poller instance
func NewPoller(loader Loader, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		loader:   loader,
		interval: interval,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Run starts the polling loop and sends an update to the provided
// channel on the first poll and on every change after that.
// Blocks until context is cancelled
func (p *Poller) Run(ctx context.Context, updates chan<- Update) error {
	p.logger.Info().
		Dur("interval", p.interval).
		Msg("Starting poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Poll immediately on start
	last, sent := p.poll(ctx, updates, "", false)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Poller stopped")
			return ctx.Err()
		case <-ticker.C:
			last, sent = p.poll(ctx, updates, last, sent)
		}
	}
}

// poll loads the current state and sends it if it differs from last.
func (p *Poller) poll(ctx context.Context, updates chan<- Update, last string, sent bool) (string, bool) {
	result := p.loader.Load(ctx)
	if ctx.Err() != nil {
		return last, sent
	}

	key := result.Key()
	if sent && key == last {
		return last, sent
	}

	select {
	case updates <- Update{Result: result, At: time.Now()}:
		if result.Track != nil {
			p.logger.Debug().
				Str("track", result.Track.Name).
				Str("artist", result.Track.Artist).
				Msg("Now playing changed")
		} else {
			p.logger.Debug().Msg("Nothing playing")
		}
		return key, true
	case <-ctx.Done():
		return last, sent
	}
}
