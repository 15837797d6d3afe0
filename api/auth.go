// ABOUTME: Authentication endpoints
// ABOUTME: Login exchanges credentials for a bearer token; logout invalidates it server-side
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// LoginResult is the server's response to a successful login.
type LoginResult struct {
	Token       string    `json:"token"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
}

// Login exchanges credentials for a bearer token. It deliberately uses a
// plain HTTP client: there is no session yet.
func Login(ctx context.Context, baseURL, email, password string) (LoginResult, error) {
	payload := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	buf, err := json.Marshal(payload)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to encode credentials: %w", err)
	}

	url := strings.TrimRight(baseURL, "/") + "/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: defaultTimeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return LoginResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return LoginResult{}, &APIError{Status: resp.StatusCode, Message: "invalid credentials"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return LoginResult{}, &APIError{Status: resp.StatusCode}
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return LoginResult{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	return result, nil
}

// Logout invalidates the current token server-side. An already-dead session
// is not an error.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotLoggedIn) {
		return nil
	}
	return err
}
