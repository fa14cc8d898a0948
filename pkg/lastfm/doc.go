// Package lastfm provides a client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements a small Go client for the read-only part of
// the Last.fm API, using its JSON response format. It provides context
// support, typed errors and an injectable HTTP client.
//
// # Quick Start
//
// Create a client with your API key:
//
//	import "github.com/mielsense/nowplaying/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Recent Tracks
//
// The track a user is listening to right now is reported as the first
// recent track, marked with NowPlaying:
//
//	recent, err := client.User().GetRecentTracks(ctx, lastfm.RecentTracksParams{
//	    User:  "rj",
//	    Limit: 1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if len(recent.Tracks) > 0 && recent.Tracks[0].NowPlaying {
//	    fmt.Println(recent.Tracks[0].Artist, "-", recent.Tracks[0].Name)
//	}
//
// Each RecentTrack keeps the entry exactly as Last.fm sent it in Raw,
// and marshals back to that payload.
//
// # Error Handling
//
// Failures are reported as one of three types:
//
//	_, err := client.User().GetRecentTracks(ctx, params)
//	var upstream *lastfm.UpstreamError
//	var network *lastfm.NetworkError
//	var parse *lastfm.ParseError
//	switch {
//	case errors.As(err, &upstream):
//	    // Last.fm answered with a non-2xx status
//	case errors.As(err, &network):
//	    // the request never got a response
//	case errors.As(err, &parse):
//	    // the body was not the JSON we expected
//	}
//
// Requests are never retried.
//
// # Configuration
//
// The client can be configured with custom HTTP clients, base URLs (for testing),
// and optional loggers:
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:     "your-api-key",
//	    HTTPClient: &http.Client{Timeout: 10 * time.Second},
//	    Logger:     myLogger, // Implements lastfm.Logger interface
//	})
//
// # API Coverage
//
// Currently implemented:
//   - User (user.getRecentTracks)
//
// # Last.fm API Documentation
//
// For more information about the Last.fm API:
// https://www.last.fm/api/show/user.getRecentTracks
package lastfm
