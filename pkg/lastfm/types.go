package lastfm

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// RecentTrack is one entry of a user's recent tracks.
//
// The typed fields are decoded leniently from Raw, which holds the
// entry exactly as Last.fm sent it. Marshaling a RecentTrack yields Raw
// so the full upstream payload survives a round trip.
type RecentTrack struct {
	Name       string    // Track title
	Artist     string    // Artist name
	Album      string    // Album name
	URL        string    // Last.fm track page
	MBID       string    // MusicBrainz track ID
	Images     []Image   // Cover art, smallest first
	PlayedAt   time.Time // When the scrobble happened (zero while playing)
	NowPlaying bool      // Whether @attr.nowplaying is set

	Raw json.RawMessage
}

// Image is a sized artwork URL.
type Image struct {
	Size string // small, medium, large, extralarge
	URL  string
}

// RecentTracks is the result of user.getRecentTracks.
type RecentTracks struct {
	User       string
	Page       int
	PerPage    int
	TotalPages int
	Total      int
	Tracks     []RecentTrack

	// Listed is false when the response had no recenttracks.track list
	// at all, as opposed to an empty one.
	Listed bool
}

// Image returns the URL of the image with the given size, falling back
// to the largest available one. Returns "" when there is no artwork.
func (t RecentTrack) Image(size string) string {
	var last string
	for _, img := range t.Images {
		if img.URL == "" {
			continue
		}
		if img.Size == size {
			return img.URL
		}
		last = img.URL
	}
	return last
}

// MarshalJSON returns the raw upstream payload.
func (t RecentTrack) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	return []byte("null"), nil
}

// textField is a Last.fm value that is either a plain string or an
// object carrying the text under "#text" (or "name" with extended=1).
type textField struct {
	Text string
	MBID string
}

func (f *textField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Text = s
		return nil
	}

	var obj struct {
		Text string `json:"#text"`
		Name string `json:"name"`
		MBID string `json:"mbid"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shapes leave the field empty rather than failing
		// the whole track.
		return nil
	}
	f.Text = obj.Text
	if f.Text == "" {
		f.Text = obj.Name
	}
	f.MBID = obj.MBID
	return nil
}

type wireTrack struct {
	Name   string    `json:"name"`
	URL    string    `json:"url"`
	MBID   string    `json:"mbid"`
	Artist textField `json:"artist"`
	Album  textField `json:"album"`
	Image  []struct {
		Size string `json:"size"`
		Text string `json:"#text"`
	} `json:"image"`
	Date *struct {
		UTS string `json:"uts"`
	} `json:"date"`
}

// decodeRecentTrack builds a RecentTrack from one raw array element.
// It never fails: fields that cannot be decoded stay zero.
func decodeRecentTrack(raw json.RawMessage) RecentTrack {
	t := RecentTrack{Raw: raw}

	var w wireTrack
	if err := json.Unmarshal(raw, &w); err == nil {
		t.Name = w.Name
		t.URL = w.URL
		t.MBID = w.MBID
		t.Artist = w.Artist.Text
		t.Album = w.Album.Text
		for _, img := range w.Image {
			t.Images = append(t.Images, Image{Size: img.Size, URL: img.Text})
		}
		if w.Date != nil {
			if uts, err := strconv.ParseInt(w.Date.UTS, 10, 64); err == nil {
				t.PlayedAt = time.Unix(uts, 0).UTC()
			}
		}
	}

	// Decoded separately so an unexpected shape elsewhere in the entry
	// cannot hide the marker.
	var attrs struct {
		Attr json.RawMessage `json:"@attr"`
	}
	if err := json.Unmarshal(raw, &attrs); err == nil && len(attrs.Attr) > 0 {
		var attr struct {
			NowPlaying json.RawMessage `json:"nowplaying"`
		}
		if err := json.Unmarshal(attrs.Attr, &attr); err == nil {
			t.NowPlaying = truthy(attr.NowPlaying)
		}
	}

	return t
}

// truthy reports whether a JSON value is set in the sense Last.fm
// clients check the nowplaying marker: a non-empty string, true, a
// non-zero number, or any object or array.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return s != ""
	case 't':
		return true
	case 'f', 'n':
		return false
	case '{', '[':
		return true
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && f != 0
	}
}

// atoi parses Last.fm's stringly-typed counters, returning 0 on failure.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
