// Package api is the HTTP client for the external CKD prediction service.
//
// The service owns authentication, the admin statistics and the prediction
// model. Every call is a single JSON request/response; failures are returned
// to the calling screen and never retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Veraticus/ckd-predict/internal/common"
	"github.com/Veraticus/ckd-predict/internal/model"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is where the development backend listens.
const DefaultBaseURL = "http://localhost:5000"

// Config holds configuration for the service client.
type Config struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// Client talks to the prediction service.
type Client struct {
	httpClient *http.Client
	cache      *cache.Cache
	logger     *slog.Logger
	baseURL    *url.URL
}

// NewClient creates a client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid api base url %q", common.ErrInvalidConfig, base)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:    u,
		httpClient: httpClient,
		logger:     logger,
	}

	// Expired entries are purged on write, so no janitor goroutine is needed.
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 0)
	}

	return c, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// requestOptions customize a single call.
type requestOptions struct {
	body        io.Reader
	token       model.Token
	contentType string
}

type requestOption func(*requestOptions)

func withToken(token model.Token) requestOption {
	return func(o *requestOptions) {
		o.token = token
	}
}

func withJSONBody(payload any) (requestOption, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return func(o *requestOptions) {
		o.body = bytes.NewReader(data)
		o.contentType = "application/json"
	}, nil
}

func withRawBody(body io.Reader, contentType string) requestOption {
	return func(o *requestOptions) {
		o.body = body
		o.contentType = contentType
	}
}

// do performs a request and decodes a 2xx JSON body into out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, out any, opts ...requestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, ro.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if ro.contentType != "" {
		req.Header.Set("Content-Type", ro.contentType)
	}

	client := c.httpClient
	if ro.token != "" {
		client = c.authorized(ro.token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return common.NewUserError("Connection error. Please try again.", fmt.Errorf("%w: %w", common.ErrConnection, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newServiceError(resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// authorized returns a client that sends token as a bearer credential.
func (c *Client) authorized(token model.Token) *http.Client {
	return &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: string(token),
				TokenType:   "Bearer",
			}),
			Base: c.httpClient.Transport,
		},
	}
}
