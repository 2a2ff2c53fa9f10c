// Spotify Web API implementation of [MediaLookup]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/search
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/partyx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	ExternalURLs externalURLs    `json:"external_urls"`
	Popularity   int             `json:"popularity"`
	URI          string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
}

// SpotifyPaginatedTracks represents a paginated list of tracks in a search response.
type SpotifyPaginatedTracks struct {
	Items  []SpotifyTrack `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Next   *string        `json:"next"`
}

type spotifySearchResponse struct {
	Tracks SpotifyPaginatedTracks `json:"tracks"`
}

// SpotifyService implements [MediaLookup] using the client credentials flow.
//
// The client returned by [clientcredentials.Config] fetches and refreshes the app token on demand,
// so no user authorization is involved.
type SpotifyService struct {
	config     *clientcredentials.Config
	baseURL    string
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service instance.
//
// Returns [shared.ErrMissingConfig] without a client id and secret. A non-nil client is used for both token
// and API requests.
func NewSpotifyService(cfg shared.SpotifyConfig, client *http.Client) (*SpotifyService, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingConfig)
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}

	config := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
	}

	ctx := context.Background()
	if client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, client)
	}

	return &SpotifyService{
		config:     config,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: config.Client(ctx),
	}, nil
}

// Name returns the service name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	apiURL := s.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search runs a track search using Spotify field filters.
//
// Calls GET /search?type=track.
func (s *SpotifyService) Search(ctx context.Context, title, artist string, limit int) ([]Track, error) {
	q := "track:" + strings.TrimSpace(title)
	if a := strings.TrimSpace(artist); a != "" {
		q += " artist:" + a
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var resp spotifySearchResponse
	if err := s.doRequest(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(resp.Tracks.Items))
	for _, st := range resp.Tracks.Items {
		names := make([]string, len(st.Artists))
		for i, a := range st.Artists {
			names[i] = a.Name
		}
		tracks = append(tracks, Track{
			ID:       st.ID,
			Title:    st.Name,
			Artist:   strings.Join(names, ", "),
			Link:     st.ExternalURLs.Spotify,
			Provider: s.Name(),
		})
	}

	return tracks, nil
}

// SearchLink returns the open.spotify.com URL of the top track for title and artist.
func (s *SpotifyService) SearchLink(ctx context.Context, title, artist string) (string, error) {
	tracks, err := s.Search(ctx, title, artist, 1)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 || tracks[0].Link == "" {
		return "", fmt.Errorf("%w: spotify: %s", shared.ErrNoMediaMatch, searchQuery(title, artist))
	}
	return tracks[0].Link, nil
}
