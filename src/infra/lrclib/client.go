package lrclib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lrcsolid/src/music"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "lrcsolid/0.1.0"
)

// Client queries an LRCLIB-compatible lyrics database over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the service at baseURL, e.g. a self-hosted
// LRCLIB instance.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

type lyricsResponse struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// GetLyrics looks up lyrics for a track. An exact match against /api/get is
// tried first; on a 404 the broader /api/search endpoint is queried by
// title and artist alone and the first candidate is taken as authoritative.
// Absence of lyrics is a result, never an error; errors mean the service
// could not be asked.
func (c *Client) GetLyrics(ctx context.Context, track *music.Track) (music.LyricsResult, error) {
	result, found, err := c.get(ctx, track)
	if err != nil {
		return music.LyricsResult{}, err
	}
	if found {
		return result, nil
	}
	return c.search(ctx, track)
}

// get performs the exact lookup. The duration parameter lets the server
// disambiguate within its own tolerance window, so it is sent only when
// known.
func (c *Client) get(ctx context.Context, track *music.Track) (music.LyricsResult, bool, error) {
	params := url.Values{}
	params.Set("track_name", track.Title)
	params.Set("artist_name", track.Artist)
	if track.Album != "" {
		params.Set("album_name", track.Album)
	}
	if track.Duration > 0 {
		params.Set("duration", strconv.Itoa(track.Duration))
	}

	var response lyricsResponse
	status, err := c.doRequest(ctx, "/api/get", params, &response)
	if err != nil {
		return music.LyricsResult{}, false, err
	}
	if status == http.StatusNotFound {
		return music.LyricsResult{}, false, nil
	}
	return toResult(response), true, nil
}

// search performs the fallback search-style lookup by title and artist.
func (c *Client) search(ctx context.Context, track *music.Track) (music.LyricsResult, error) {
	params := url.Values{}
	params.Set("track_name", track.Title)
	params.Set("artist_name", track.Artist)

	var candidates []lyricsResponse
	status, err := c.doRequest(ctx, "/api/search", params, &candidates)
	if err != nil {
		return music.LyricsResult{}, err
	}
	if status == http.StatusNotFound || len(candidates) == 0 {
		return music.LyricsResult{Status: music.StatusNotFound}, nil
	}
	return toResult(candidates[0]), nil
}

// doRequest issues a GET and decodes the JSON body. A 404 is reported via
// the status code so callers can treat it as absence; every other non-2xx
// status is an error.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) (int, error) {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("lyrics service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return http.StatusNotFound, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("lyrics service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func toResult(response lyricsResponse) music.LyricsResult {
	result := music.LyricsResult{
		TrackName:  response.TrackName,
		ArtistName: response.ArtistName,
		AlbumName:  response.AlbumName,
		Duration:   response.Duration,
		Synced:     response.SyncedLyrics,
		Plain:      response.PlainLyrics,
	}
	switch {
	case response.Instrumental:
		result.Status = music.StatusInstrumental
	case response.SyncedLyrics == "" && response.PlainLyrics == "":
		result.Status = music.StatusNotFound
	default:
		result.Status = music.StatusFound
	}
	return result
}
