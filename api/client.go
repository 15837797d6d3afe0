// ABOUTME: HTTP client for the marketplace REST API
// ABOUTME: JSON request helper with bearer injection and uniform error conversion
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const defaultTimeout = 15 * time.Second

// Client issues authenticated requests against one API base URL. All
// non-2xx responses come back as *APIError; a 401 additionally tears down
// the session before ErrUnauthorized is returned.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
}

// NewClient creates a client bound to a session. The oauth2 transport pulls
// the bearer from the session on every request, so sign-in and teardown take
// effect immediately.
func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &oauth2.Transport{
				Source: session,
				Base:   http.DefaultTransport,
			},
		},
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the session this client authenticates with.
func (c *Client) Session() *Session { return c.session }

// do issues a JSON request and decodes the response into out (may be nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decode(resp, out)
}

// decode converts a response into out or into the error taxonomy.
func (c *Client) decode(resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Unauthorized()
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			if payload.Error != "" {
				apiErr.Message = payload.Error
			} else {
				apiErr.Message = payload.Message
			}
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
