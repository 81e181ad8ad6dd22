package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tsijukebox/jukebox/internal/core"
)

const (
	// BaseURL is the Spotify Web API base URL.
	BaseURL = "https://api.spotify.com/v1"
)

// Session supplies access tokens and the acting user. *auth.Session
// satisfies it.
type Session interface {
	ValidToken(ctx context.Context) (string, error)
	ValidateToken(ctx context.Context) *core.User
}

// Client is a Spotify Web API client bound to one session.
type Client struct {
	session    Session
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new Spotify client.
func New(session Session, opts ...Option) *Client {
	c := &Client{
		session:    session,
		baseURL:    BaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs an authenticated call and returns the raw response body.
// The bearer token and JSON content type are set first; header entries
// replace them only when given under the same key. A 204 yields "{}".
// Requests are never retried: a 401 after a fresh token is returned as a
// *RequestError like any other status.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}, header http.Header) ([]byte, error) {
	token, err := c.session.ValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("spotify request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("spotify request", "method", method, "path", path,
		"status", resp.StatusCode, "took", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode == http.StatusNoContent {
		return []byte("{}"), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRequestError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	data, err := c.Request(ctx, method, path, body, nil)
	if err != nil {
		return err
	}
	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) delete(ctx context.Context, path string, body interface{}) error {
	return c.do(ctx, http.MethodDelete, path, body, nil)
}

// BuildURL builds a URL with query parameters. Empty values are skipped.
func BuildURL(path string, params map[string]string) string {
	if len(params) == 0 {
		return path
	}

	u, err := url.Parse(path)
	if err != nil {
		return path
	}
	q := u.Query()
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// pageParams returns the limit/offset query parameters, omitting zeros.
func pageParams(limit, offset int) map[string]string {
	params := make(map[string]string)
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	if offset > 0 {
		params["offset"] = strconv.Itoa(offset)
	}
	return params
}
