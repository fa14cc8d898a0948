package lastfm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// UserService provides user operations for the Last.fm API.
type UserService struct {
	client *Client
}

const (
	methodGetRecentTracks = "user.getrecenttracks"

	// MaxRecentTracksLimit is the largest page size Last.fm accepts.
	MaxRecentTracksLimit = 200
)

// RecentTracksParams are the arguments to GetRecentTracks.
type RecentTracksParams struct {
	User     string // Required: Last.fm username
	Limit    int    // Optional: entries per page (1-200, Last.fm defaults to 50)
	Extended bool   // Optional: request extended artist data
}

// GetRecentTracks returns the most recent tracks scrobbled by a user.
//
// When the user is listening to something, Last.fm includes the
// current track as the first entry with NowPlaying set, even if that
// makes the page one entry longer than Limit.
//
// Does not require authentication beyond the API key.
//
// Example:
//
//	recent, err := client.User().GetRecentTracks(ctx, lastfm.RecentTracksParams{
//	    User:  "rj",
//	    Limit: 1,
//	})
//	if err != nil {
//	    log.Printf("Failed to get recent tracks: %v", err)
//	}
//	if len(recent.Tracks) > 0 && recent.Tracks[0].NowPlaying {
//	    fmt.Println("Listening to", recent.Tracks[0].Name)
//	}
func (s *UserService) GetRecentTracks(ctx context.Context, p RecentTracksParams) (*RecentTracks, error) {
	if p.User == "" {
		return nil, ErrMissingUser
	}

	params := url.Values{}
	params.Set("user", p.User)

	// Add optional parameters
	if p.Limit > 0 {
		limit := p.Limit
		if limit > MaxRecentTracksLimit {
			limit = MaxRecentTracksLimit
		}
		params.Set("limit", strconv.Itoa(limit))
	}
	if p.Extended {
		params.Set("extended", "1")
	}

	body, err := s.client.call(ctx, methodGetRecentTracks, params)
	if err != nil {
		return nil, err
	}

	recent, err := unmarshalRecentTracks(body)
	if err != nil {
		return nil, &ParseError{StatusCode: 200, Err: err}
	}

	return recent, nil
}

// unmarshalRecentTracks parses the JSON response from user.getrecenttracks.
//
// A body without a recenttracks object, or whose track member is not an
// array, is not an error: it yields RecentTracks with Listed false.
func unmarshalRecentTracks(data []byte) (*RecentTracks, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recent tracks response: %w", err)
	}

	result := &RecentTracks{}

	rawRecent, ok := top["recenttracks"]
	if !ok {
		return result, nil
	}

	var recent struct {
		Track json.RawMessage `json:"track"`
		Attr  json.RawMessage `json:"@attr"`
	}
	if err := json.Unmarshal(rawRecent, &recent); err != nil {
		// recenttracks is present but not the object we expect.
		return result, nil
	}

	var attr struct {
		User       string `json:"user"`
		Page       string `json:"page"`
		PerPage    string `json:"perPage"`
		TotalPages string `json:"totalPages"`
		Total      string `json:"total"`
	}
	if len(recent.Attr) > 0 && json.Unmarshal(recent.Attr, &attr) == nil {
		result.User = attr.User
		result.Page = atoi(attr.Page)
		result.PerPage = atoi(attr.PerPage)
		result.TotalPages = atoi(attr.TotalPages)
		result.Total = atoi(attr.Total)
	}

	trackJSON := bytes.TrimSpace(recent.Track)
	if len(trackJSON) == 0 || trackJSON[0] != '[' {
		return result, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trackJSON, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal track list: %w", err)
	}

	result.Listed = true
	result.Tracks = make([]RecentTrack, 0, len(entries))
	for _, entry := range entries {
		result.Tracks = append(result.Tracks, decodeRecentTrack(entry))
	}

	return result, nil
}
