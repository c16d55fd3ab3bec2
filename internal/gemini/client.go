// Package gemini implements a client for the Gemini text generation API.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abdull-Majeed/web-search-agent/internal/provider"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client handles communication with the Gemini API. Calls are single
// attempts with a fixed timeout; streaming requests use a separate client
// without a timeout so long generations are not cut off mid-stream.
type Client struct {
	apiKey          string
	baseURL         string
	httpClient      *http.Client
	streamingClient *http.Client
}

// NewClient creates a Gemini client with the given API key and request
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
		streamingClient: &http.Client{},
	}
}

// GenerateText sends a prompt to the model and returns the complete
// generated text.
func (c *Client) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.post(ctx, c.httpClient, fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model), prompt)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", &provider.Error{Provider: "gemini", Op: "generate", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	text := candidateText(genResp)
	if text == "" {
		return "", &provider.Error{Provider: "gemini", Op: "generate", Err: fmt.Errorf("response contained no candidate text")}
	}

	return strings.TrimSpace(text), nil
}

// GenerateTextStream sends a prompt to the model and streams the generated
// text, calling onChunk for each fragment as it arrives. The complete text
// is returned once the stream ends.
func (c *Client) GenerateTextStream(ctx context.Context, model, prompt string, onChunk func(string)) (string, error) {
	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", c.baseURL, model)
	resp, err := c.post(ctx, c.streamingClient, url, prompt)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	text, err := c.streamResponse(resp.Body, onChunk)
	if err != nil {
		return text, &provider.Error{Provider: "gemini", Op: "generate", Err: err}
	}

	return strings.TrimSpace(text), nil
}

// post builds and executes a generateContent-style request, normalizing
// transport and status failures into provider errors.
func (c *Client) post(ctx context.Context, client *http.Client, url, prompt string) (*http.Response, error) {
	reqBody := generateRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: "gemini", Op: "generate", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &provider.Error{
			Provider:   "gemini",
			Op:         "generate",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", apiErrorMessage(body)),
		}
	}

	return resp, nil
}

// streamResponse reads server-sent events line by line and accumulates the
// candidate text.
func (c *Client) streamResponse(body io.Reader, onChunk func(string)) (string, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var full strings.Builder
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// Skip malformed events
			continue
		}

		if text := candidateText(chunk); text != "" {
			full.WriteString(text)
			if onChunk != nil {
				onChunk(text)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("scanner error: %w", err)
	}
	if full.Len() == 0 {
		return "", fmt.Errorf("stream contained no candidate text")
	}

	return full.String(), nil
}

// candidateText joins the text parts of the first candidate.
func candidateText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String()
}

// apiErrorMessage extracts the message from a structured error body,
// falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var wrapped struct {
		Error *apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		return wrapped.Error.Message
	}
	return strings.TrimSpace(string(body))
}
