// Package search is a minimal client for the Tavily search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/transcriptlab/insights/pkg/config"
)

// Client calls the Tavily search-context endpoint. The returned context is
// pass-through text; it is never parsed further.
type Client struct {
	cfg    config.SearchConfig
	client *http.Client
}

// NewClient creates a search client from the provided config.
func NewClient(cfg config.SearchConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// searchRequest is the shape for search-context requests.
type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// searchResponse holds the opaque context blob.
type searchResponse struct {
	Results json.RawMessage `json:"results"`
}

// SearchContext performs one search and returns the raw context blob.
// Failures are never retried here; the retry decision belongs to the caller.
func (c *Client) SearchContext(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", fmt.Errorf("search query is empty")
	}

	reqBody := searchRequest{
		APIKey:     c.cfg.APIKey,
		Query:      query,
		MaxResults: c.cfg.MaxResults,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.cfg.BaseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("search backend returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}
	if len(sr.Results) == 0 {
		return "", fmt.Errorf("empty response from search backend")
	}
	return string(sr.Results), nil
}
