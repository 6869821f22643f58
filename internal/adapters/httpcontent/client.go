// Package httpcontent fetches static JSON documents over HTTP
package httpcontent

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"scriptorium/internal/application"
	"scriptorium/internal/ports"
)

// Client is the HTTP client for the content server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements ports.ContentFetcher
var _ ports.ContentFetcher = (*Client)(nil)

// NewClient creates a new content client. A zero timeout leaves requests
// bounded only by ctx.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch performs a GET for path. Any non-2xx status is an error and the
// body is not returned.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &application.ContentError{Path: path, Err: err}
	}
	return readBody(path, resp)
}

// readBody reads the response and rejects non-2xx statuses
func readBody(path string, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &application.ContentError{
			Path:   path,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &application.ContentError{Path: path, Err: err}
	}
	return body, nil
}
