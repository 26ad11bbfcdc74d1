// Package api is the authenticated fetch layer for the marketplace REST
// service.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stxswap/internal/observability"
)

// DefaultTimeout bounds a single REST request. Failures are not retried.
const DefaultTimeout = 30 * time.Second

// Client issues authenticated GET requests against the marketplace API.
type Client struct {
	host   string
	apiKey string
	client *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// NewClient creates a marketplace API client.
func NewClient(host, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		host:   strings.TrimSuffix(host, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches an endpoint and decodes the JSON response into v.
// A non-2xx status is a fatal error carrying the HTTP status.
func (c *Client) Get(ctx context.Context, endpoint string, v interface{}) error {
	start := time.Now()
	err := c.get(ctx, endpoint, v)
	observability.RecordAPIRequest(metricEndpoint(endpoint), time.Since(start).Seconds(), err)
	return err
}

func (c *Client) get(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// metricEndpoint strips query parameters so metric labels stay low-cardinality.
func metricEndpoint(endpoint string) string {
	path, _, _ := strings.Cut(endpoint, "?")
	return path
}
