package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://www.omdbapi.com"
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: &http.Client{Timeout: 15 * time.Second}}
}

// movieResponse is the raw OMDb payload for a single title.
type movieResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	ImdbID     string `json:"imdbID"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
	Rated      string `json:"Rated"`
	Released   string `json:"Released"`
	Language   string `json:"Language"`
	Country    string `json:"Country"`
	Awards     string `json:"Awards"`
}

// Lookup fetches metadata for a title. The imdbID lookup is preferred over
// the title lookup; a year only disambiguates title lookups. A response with
// Response != "True" means "unknown title" and yields (nil, nil).
func (c *Client) Lookup(ctx context.Context, apiKey, title, imdbID, year string) (*Metadata, error) {
	if apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("apikey", apiKey)
	params.Set("type", "movie")
	switch {
	case imdbID != "":
		params.Set("i", imdbID)
	case title != "":
		params.Set("t", title)
		if year != "" {
			params.Set("y", year)
		}
	default:
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dvd-catalog/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("omdb: status %d body=%q", resp.StatusCode, string(b[:min(len(b), 200)]))
	}
	var out movieResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("omdb: decode error: %w body=%q", err, string(b[:min(len(b), 200)]))
	}
	if out.Response != "True" {
		return nil, nil
	}
	return toMetadata(out), nil
}
