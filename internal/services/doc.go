// Package services resolves songs to external media links and talks to a running partyx server.
//
// # Media Lookup
//
// All providers implement [MediaLookup]: given a title and an artist, return a link.
// [NewLookup] assembles the configured stack, outermost first:
//   - [Cached] : answers from previously resolved songs ([LinkStore])
//   - WithTimeout : bounds each lookup by media.timeout
//   - [RateLimited] : token bucket shared by every caller
//   - [Chain] : providers in media.providers order
//
// # YouTube
//
// [YouTubeService] calls the YouTube Data API v3 search endpoint with an API key and returns a watch URL.
//
// # Spotify
//
// [SpotifyService] uses the OAuth2 client credentials flow; the token is fetched and refreshed by the
// oauth2 client. Links are the track's open.spotify.com URL.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNoMediaMatch] : the provider answered with no result
//   - [shared.ErrAPIRequest] : HTTP request failed or returned a non-2xx status
//   - [shared.ErrUpstreamUnavailable] : no provider could answer
//   - [shared.ErrTimeout] : the lookup exceeded media.timeout
//   - [shared.ErrMissingConfig] : provider credentials absent; [NewLookup] skips it
//
// # API Client
//
// [APIService] performs raw requests against the partyx HTTP API for the CLI's api command.
package services
