// Package upstream is the typed client for the freight ERP REST API. Every
// endpoint responds with the shared {errCode,data,msg} envelope; this package
// is the single place where loose upstream payloads are decoded and coerced
// into explicit record types.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/clearlane/freight-console/internal/common"
	"github.com/clearlane/freight-console/internal/obs"
)

// Config groups Client construction parameters. The base URL is injected here
// rather than read from process-wide state.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

// Client performs single-flight requests against the ERP. Calls are not
// retried and there is no circuit breaking: a failed request surfaces its
// error and leaves prior state untouched.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// envelope mirrors the upstream response wrapper with the payload kept raw.
type envelope struct {
	ErrCode int             `json:"errCode"`
	Data    json.RawMessage `json:"data"`
	Msg     string          `json:"msg"`
}

// New constructs a Client from the provided configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("upstream: base URL is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("upstream: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("upstream: base URL %q must be absolute", base)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = "freight-console"
	}
	return &Client{baseURL: parsed, http: httpClient, userAgent: userAgent}, nil
}

// do issues one request and decodes the envelope into out. resource labels the
// call for metrics; body is JSON-encoded when non-nil.
func (c *Client) do(ctx context.Context, resource, method, path string, query url.Values, body, out any) error {
	if c == nil || c.http == nil {
		return errors.New("upstream: client not configured")
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + path
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	// each outbound call carries its own id so ERP-side logs can be correlated
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(resource, "transport_error", start)
		return &common.AppError{
			ErrCode:    http.StatusBadGateway,
			Message:    "upstream unavailable",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		c.observe(resource, "read_error", start)
		return &common.AppError{
			ErrCode:    http.StatusBadGateway,
			Message:    "upstream response unreadable",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		c.observe(resource, "decode_error", start)
		return &common.AppError{
			ErrCode:    http.StatusBadGateway,
			Message:    "upstream returned malformed response",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}

	if env.ErrCode != 200 {
		c.observe(resource, "api_error", start)
		msg := strings.TrimSpace(env.Msg)
		if msg == "" {
			msg = fmt.Sprintf("upstream error %d", env.ErrCode)
		}
		// Application-level errors keep the envelope convention: the errCode
		// and msg pass through to the dashboard unchanged.
		return &common.AppError{ErrCode: env.ErrCode, Message: msg, HTTPStatus: http.StatusOK}
	}

	c.observe(resource, "ok", start)
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &common.AppError{
			ErrCode:    http.StatusBadGateway,
			Message:    "upstream returned unexpected payload",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	return nil
}

func (c *Client) observe(resource, result string, start time.Time) {
	if obs.UpstreamRequestTotal != nil {
		obs.UpstreamRequestTotal.WithLabelValues(resource, result).Inc()
	}
	if obs.UpstreamRequestLatency != nil {
		obs.UpstreamRequestLatency.WithLabelValues(resource).Observe(obs.DurationMillis(time.Since(start)))
	}
}

// Ping probes the upstream health endpoint. Used by readiness checks.
func (c *Client) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.do(ctx, "health", http.MethodGet, "/api/health", nil, nil, nil)
}
