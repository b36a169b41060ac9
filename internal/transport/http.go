// Package transport sends signed requests to the exchange over a shared HTTP client.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"bitget/internal/signing"
	"bitget/pkg/core"
)

// Config configures the HTTP transport.
type Config struct {
	BaseURL string        `validate:"required,url"`
	Timeout time.Duration `validate:"min=1ms"`
}

// Client wraps a resty client. One Client owns one connection pool and is
// safe for concurrent use. It never retries; a retry must rebuild and re-sign
// the request, which is the caller's decision.
type Client struct {
	client  *resty.Client
	logger  zerolog.Logger
	baseURL string

	mu     sync.RWMutex
	closed bool
}

// Response is a 2xx HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// NewClient creates a transport for config.
func NewClient(config Config, logger zerolog.Logger) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, &core.ConfigError{Code: core.ErrCodeInvalidConfig, Err: fmt.Errorf("transport: %w", err)}
	}

	client := resty.New()
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{
		client:  client,
		logger:  logger,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
	}, nil
}

// Do sends req exactly once. The URL is the base URL followed by the signed
// path verbatim, so the query on the wire is the query that was signed.
func (c *Client) Do(ctx context.Context, req *signing.SignedRequest) (*Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, &core.ConfigError{Code: core.ErrCodeClientClosed, Err: core.ErrClientClosed}
	}

	r := c.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers)
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, c.baseURL+req.Path)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("http request failed")
		return nil, &core.TransportError{Type: networkErrorType(ctx, err), Err: fmt.Errorf("http request: %w", err)}
	}

	status := resp.StatusCode()
	body := resp.Bytes()
	if status < 200 || status > 299 {
		c.logger.Error().
			Str("method", req.Method).
			Str("path", req.Path).
			Int("status", status).
			Msg("http request rejected")
		return nil, core.NewStatusError(status, body)
	}

	return &Response{
		StatusCode: status,
		Body:       body,
		Headers:    resp.Header(),
	}, nil
}

// Close releases the connection pool. Further calls to Do fail.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

func networkErrorType(ctx context.Context, err error) core.ErrorType {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return core.ErrorTypeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return core.ErrorTypeTimeout
	}
	return core.ErrorTypeNetwork
}
