package ygoprodeck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://db.ygoprodeck.com/api/v7"

	defaultFetchTimeout = 120 * time.Second
)

// Client fetches the raw card catalog from the YGOPRODeck API. It is the
// only piece of the system that talks to the provider; everything past it
// works on already-decoded CardDocument values.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// FetchCatalog downloads the whole card catalog. Transport and decode
// failures are fatal for the caller's sync run; there is nothing to retry
// here that the next scheduled run would not retry anyway.
func (c *Client) FetchCatalog(ctx context.Context) ([]CardDocument, error) {
	url := c.baseURL + "/cardinfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned status %d", res.StatusCode)
	}

	var payload catalogResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return payload.Data, nil
}
