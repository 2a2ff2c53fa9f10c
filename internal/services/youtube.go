// YouTube Data API v3 [MediaLookup] implementation
//
// Response types based on https://developers.google.com/youtube/v3/docs/search/list
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/desertthunder/partyx/internal/shared"
)

const (
	defaultYTBaseURL  string = "https://www.googleapis.com/youtube/v3"
	youtubeWatchURL   string = "https://www.youtube.com/watch?v="
	youtubeMusicTopic string = "10"
)

// YouTubeThumbnail represents an image/thumbnail from YouTube.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type youtubeID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// YouTubeSnippet holds the descriptive part of a search result.
type YouTubeSnippet struct {
	Title        string                      `json:"title"`
	ChannelTitle string                      `json:"channelTitle"`
	PublishedAt  string                      `json:"publishedAt"`
	Thumbnails   map[string]YouTubeThumbnail `json:"thumbnails"`
}

// YouTubeSearchResult is one item of a search.list response.
type YouTubeSearchResult struct {
	ID      youtubeID      `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

type youtubeSearchResponse struct {
	Items []YouTubeSearchResult `json:"items"`
}

type youtubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// YouTubeService implements [MediaLookup] against the YouTube Data API using an API key.
type YouTubeService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewYouTubeService creates a new YouTube service instance.
//
// Returns [shared.ErrMissingConfig] without an API key.
func NewYouTubeService(apiKey, baseURL string, client *http.Client) (*YouTubeService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: youtube api_key", shared.ErrMissingConfig)
	}
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YouTubeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	params.Set("key", y.apiKey)
	apiURL := y.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp youtubeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return fmt.Errorf("%w: youtube API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("%w: youtube API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search runs a music-category video search.
//
// Calls GET /search?part=snippet&type=video.
func (y *YouTubeService) Search(ctx context.Context, query string, limit int) ([]Track, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoCategoryId", youtubeMusicTopic)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("q", query)

	var resp youtubeSearchResponse
	if err := y.doRequest(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		tracks = append(tracks, Track{
			ID:       item.ID.VideoID,
			Title:    item.Snippet.Title,
			Artist:   item.Snippet.ChannelTitle,
			Link:     youtubeWatchURL + item.ID.VideoID,
			Provider: y.Name(),
		})
	}

	return tracks, nil
}

// SearchLink returns the watch URL of the top video for title and artist.
func (y *YouTubeService) SearchLink(ctx context.Context, title, artist string) (string, error) {
	tracks, err := y.Search(ctx, searchQuery(title, artist), 1)
	if err != nil {
		return "", err
	}
	if len(tracks) == 0 {
		return "", fmt.Errorf("%w: youtube: %s", shared.ErrNoMediaMatch, searchQuery(title, artist))
	}
	return tracks[0].Link, nil
}
