package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnauthorized is returned when the API answers 401/403. The stored token
// has already been purged by the time the caller sees it; the only sensible
// reaction is to send the user back to /login.
var ErrUnauthorized = errors.New("no autorizado")

// APIError is a non-2xx response that is not an auth failure.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("error %d: %s", e.Status, e.Message)
}

// TokenStore is the slot holding the bearer token (the browser app kept it in
// local storage under "accessToken"). Same-goroutine access only.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

// MemoryTokenStore is the in-memory TokenStore used per browser session.
type MemoryTokenStore struct {
	token string
}

func (s *MemoryTokenStore) Token() string         { return s.token }
func (s *MemoryTokenStore) SetToken(token string) { s.token = token }
func (s *MemoryTokenStore) Clear()                { s.token = "" }

// Client wraps every outbound API call: base URL, bearer injection and the
// global 401/403 interceptor.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
}

func New(baseURL string, store TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		store:   store,
	}
}

// WithHTTPClient overrides the underlying http.Client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(payload), "application/json", out)
}

// do performs one request. 401/403 purge the stored token and surface
// ErrUnauthorized regardless of what the caller was doing.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.store.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		c.store.Clear()
		return fmt.Errorf("%w (%s %s)", ErrUnauthorized, method, path)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode, Message: res.Status}
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	raw, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err == nil && json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
	}
	return apiErr
}
