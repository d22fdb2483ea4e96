package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TokenSource yields the bearer token for the current session. An empty
// token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// ClientConfig configures the HTTP client.
type ClientConfig struct {
	// BaseURL is prepended to relative endpoint templates.
	BaseURL string

	// Timeout for individual requests (default: 30s).
	Timeout time.Duration

	// RateLimit requests per second (default: 10).
	RateLimit float64

	// RateBurst maximum burst size (default: 5).
	RateBurst int

	// Tokens supplies the bearer token; nil disables auth headers.
	Tokens TokenSource

	// OnUnauthorized runs after any 401 response, typically to clear the session.
	OnUnauthorized func(ctx context.Context)

	Logger  logging.Logger
	Metrics *metrics.Metrics

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper
}

// Options is the per-request bag.
type Options struct {
	Method      string
	PathParams  map[string]string
	QueryParams map[string]string
	Metadata    *models.RequestMetadata

	// Body is JSON-encoded. Form, when set, is sent urlencoded instead.
	Body any
	Form url.Values

	NoAuth bool
}

// Client is a rate-limited HTTP client speaking the backend's JSON envelope.
type Client struct {
	config      ClientConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         logging.Logger
}

// NewClient creates a client, filling zero config values with defaults.
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 10.0
	}
	if config.RateBurst == 0 {
		config.RateBurst = 5
	}
	log := config.Logger
	if log == nil {
		log = logging.NewNop()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		log:         log,
	}
}

// BuildURL resolves endpoint against BaseURL and appends the query string.
func (c *Client) BuildURL(endpoint string, opts Options) (string, error) {
	if strings.TrimSpace(endpoint) == "" {
		return "", common.ErrNoEndpoint
	}
	path, err := Expand(endpoint, opts.PathParams)
	if err != nil {
		return "", err
	}

	fullURL := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		fullURL = strings.TrimSuffix(c.config.BaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	}

	q := url.Values{}
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	EncodeMetadata(q, opts.Metadata)
	if len(q) > 0 {
		sep := "?"
		if strings.Contains(fullURL, "?") {
			sep = "&"
		}
		fullURL += sep + q.Encode()
	}
	return fullURL, nil
}

func (c *Client) newBody(opts Options) (io.Reader, string, error) {
	switch {
	case opts.Form != nil:
		return strings.NewReader(opts.Form.Encode()), "application/x-www-form-urlencoded", nil
	case opts.Body != nil:
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, "", fmt.Errorf("marshal body: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
	return nil, "", nil
}

// Fetch performs one request and normalizes the response.
func (c *Client) Fetch(ctx context.Context, endpoint string, opts Options) (*Envelope, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	fullURL, err := c.BuildURL(endpoint, opts)
	if err != nil {
		return nil, err
	}

	body, contentType, err := c.newBody(opts)
	if err != nil {
		return nil, err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !opts.NoAuth && c.config.Tokens != nil {
		if token := c.config.Tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	c.log.Debug(ctx, "api request", "method", method, "url", fullURL, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.config.Metrics.ObserveRequest(method, 0)
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	c.config.Metrics.ObserveRequest(method, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && c.config.OnUnauthorized != nil {
			c.config.OnUnauthorized(ctx)
		}
		msg := errorFromBody(raw, http.StatusText(resp.StatusCode))
		c.log.Debug(ctx, "api error response", "status", resp.StatusCode, "request_id", requestID, "detail", msg)
		return &Envelope{Detail: &Detail{Error: msg}}, nil
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env, nil
}
