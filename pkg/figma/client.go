package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const apiBase = "https://api.figma.com/v1"

// APIError is a non-200 response from the Figma API. It carries the status
// code and the raw body so callers can decide whether the failure is
// transient (429/5xx) or permanent.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("figma API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed on a later attempt.
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Client talks to the Figma REST API. Responses are cached for a short TTL so
// repeated reads inside a single watch window do not refetch; retries with
// linear backoff cover rate limits and server errors.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	cache       *gocache.Cache
	maxRetries  int
	backoffUnit time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithCacheTTL sets how long successful responses are reused. Zero disables
// caching.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = gocache.New(ttl, 2*ttl)
	}
}

// NewClient creates a Figma API client authenticated with a personal access
// token. The transport keeps HTTP/2 off: large document payloads are known to
// trip stream errors there.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     apiBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute,
			Transport: transport,
		},
		cache:       gocache.New(45*time.Second, 90*time.Second),
		maxRetries:  3,
		backoffUnit: 2 * time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ExtractFileKey extracts the file identifier from a Figma URL. Both /file/
// and /design/ URL forms are accepted. The pattern is anchored so arbitrary
// hosts cannot masquerade as figma.com.
func ExtractFileKey(figmaURL string) (string, error) {
	re := regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?)`)
	matches := re.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a figma.com URL with a /file/ or /design/ path")
	}
	return matches[1], nil
}

// GetFile retrieves the complete file: document tree, published style index,
// and metadata.
func (c *Client) GetFile(ctx context.Context, fileKey string) (*FileResponse, error) {
	var resp FileResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/files/%s", fileKey), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFileNodes retrieves specific nodes by ID.
func (c *Client) GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string) (*NodesResponse, error) {
	var resp NodesResponse
	path := fmt.Sprintf("/files/%s/nodes?ids=%s", fileKey, strings.Join(nodeIDs, ","))
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFileStyles retrieves the published style metadata of a file.
func (c *Client) GetFileStyles(ctx context.Context, fileKey string) (*StylesResponse, error) {
	var resp StylesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/files/%s/styles", fileKey), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLocalVariables retrieves the designer-defined variables of a file.
func (c *Client) GetLocalVariables(ctx context.Context, fileKey string) (*VariablesResponse, error) {
	var resp VariablesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/files/%s/variables/local", fileKey), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getJSON performs an authenticated GET with retry and decodes the body into
// out. Successful bodies are cached by path.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.cache != nil {
		if body, ok := c.cache.Get(path); ok {
			return json.Unmarshal(body.([]byte), out)
		}
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response for %s: %w", path, err)
	}

	if c.cache != nil {
		c.cache.SetDefault(path, body)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	url := c.baseURL + path

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * c.backoffUnit):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Figma-Token", c.accessToken)
		// Keep connections short-lived; long-running watch processes should
		// not pin idle sockets to the API.
		req.Header.Set("Connection", "close")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
			lastErr = apiErr
			if apiErr.Retryable() {
				continue
			}
			return nil, apiErr
		}

		if readErr != nil {
			lastErr = fmt.Errorf("attempt %d failed to read response body: %w", attempt, readErr)
			continue
		}

		return body, nil
	}

	return nil, lastErr
}
