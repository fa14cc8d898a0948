package nowplaying

import (
	"encoding/json"
	"strings"

	"github.com/mielsense/nowplaying/pkg/lastfm"
)

// Result is the outcome of one now-playing lookup.
//
// It has three JSON shapes:
//
//	{"track": {...}}  a track is playing (Track set)
//	{"track": null}   nothing is playing, or the lookup failed
//	{}                Last.fm answered without a track list (Empty set)
type Result struct {
	// Track is the playing track, nil otherwise.
	Track *lastfm.RecentTrack

	// Empty marks a response that carried no recenttracks.track list.
	// Renderers that only check Playing treat it like a nil Track.
	Empty bool
}

// Playing reports whether a track is currently playing.
func (r Result) Playing() bool {
	return r.Track != nil
}

// Key identifies the playing track for change detection.
// It is "" when nothing is playing.
func (r Result) Key() string {
	if r.Track == nil {
		return ""
	}
	return strings.Join([]string{r.Track.Artist, r.Track.Album, r.Track.Name}, "\x1f")
}

// MarshalJSON encodes the result in the shape the page consumes. The
// track is emitted as the raw Last.fm payload.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Track == nil && r.Empty {
		return []byte("{}"), nil
	}
	return json.Marshal(struct {
		Track *lastfm.RecentTrack `json:"track"`
	}{Track: r.Track})
}
