// Package rest implements the mission backend ports over its JSON REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/example/tesseract/internal/ports/secondary"
)

// DefaultTimeout bounds every request unless configured otherwise.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token for each request.
// An empty token means the request is sent without credentials.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client provides methods to interact with the missions REST API.
type Client struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
}

// NewClient creates a new client. A zero timeout disables the request deadline.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: API error: %s (status %d)", e.Method, e.Path, body, e.Status)
}

// Is lets callers match status classes against the port sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case secondary.ErrNotFound:
		return e.Status == http.StatusNotFound
	case secondary.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// request sends an HTTP request to the API and returns the response body.
// Requests are sent exactly once.
func (c *Client) request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.Tokens != nil {
		token, err := c.Tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// Login exchanges credentials for a token. Any non-2xx response is a refusal.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := LoginRequest{Email: email, Password: password}

	// Login never carries a stored credential.
	anon := &Client{BaseURL: c.BaseURL, HTTPClient: c.HTTPClient}
	resp, err := anon.request(ctx, http.MethodPost, "/login", payload)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return "", fmt.Errorf("%w: %v", secondary.ErrInvalidCredentials, err)
	}
	if err != nil {
		return "", err
	}

	var result LoginResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	return result.Token, nil
}

// Ensure Client implements the interface
var _ secondary.AuthAPI = (*Client)(nil)
