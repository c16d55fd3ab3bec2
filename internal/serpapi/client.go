// Package serpapi implements a client for the SerpAPI Google search endpoint.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Abdull-Majeed/web-search-agent/internal/provider"
)

const defaultBaseURL = "https://serpapi.com"

// maxAllowedResults bounds how many organic results a single search may
// request from the provider.
const maxAllowedResults = 10

// Client handles communication with SerpAPI. Each search is a single
// attempt: no retries, no backoff, one outbound HTTPS call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a SerpAPI client with the given API key and request
// timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, timeout)
}

// NewClientWithBaseURL creates a client against a non-default endpoint.
// Used by tests to point the client at a local server.
func NewClientWithBaseURL(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search runs a Google search through SerpAPI and returns up to maxResults
// provider-ranked results. The query must be non-empty; maxResults is
// clamped to 1..10. Results may be empty when the provider has nothing for
// the query.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("serpapi: query cannot be empty")
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > maxAllowedResults {
		maxResults = maxAllowedResults
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(maxResults))

	fullURL := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("serpapi: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: "serpapi", Op: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &provider.Error{
			Provider:   "serpapi",
			Op:         "search",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, &provider.Error{Provider: "serpapi", Op: "search", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	// SerpAPI reports some failures as 200s with an "error" field.
	if searchResp.Error != "" {
		return nil, &provider.Error{Provider: "serpapi", Op: "search", Err: fmt.Errorf("%s", searchResp.Error)}
	}

	results := make([]Result, 0, maxResults)
	for _, r := range searchResp.OrganicResults {
		if len(results) >= maxResults {
			break
		}
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		snippet := cleanSnippet(r.Snippet)
		if snippet == "" {
			snippet = "(no snippet)"
		}
		results = append(results, Result{
			Title:   title,
			Snippet: snippet,
			URL:     r.Link,
		})
	}

	return results, nil
}

// HealthCheck verifies that the API key is accepted by the provider.
func (c *Client) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	checkURL := fmt.Sprintf("%s/account.json?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return fmt.Errorf("serpapi: failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("serpapi is unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("serpapi rejected the API key (status %d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	return nil
}
