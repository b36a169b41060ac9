package bitget

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"bitget/internal/signing"
	"bitget/internal/transport"
	"bitget/pkg/core"
)

// Client is a Bitget REST client. It is safe for concurrent use; the
// credentials, signer and connection pool are shared by every call.
type Client struct {
	config  *core.Config
	builder *signing.Builder
	http    *transport.Client
	logger  zerolog.Logger
	now     func() time.Time

	// offset is server time minus local time, in milliseconds.
	offset atomic.Int64
	closed atomic.Bool
}

// New creates a client for a copy of config; later changes to config do not
// affect the client. Credentials are optional; without them only public
// endpoints can be called. An unsupported signature scheme fails
// here, before any request is attempted.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	config = config.Clone()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if err := signing.CheckSignType(config.SignType); err != nil {
		return nil, err
	}

	options := applyOptions(opts...)

	logger := options.Logger
	if config.LogLevel != "" {
		level, err := zerolog.ParseLevel(config.LogLevel)
		if err != nil {
			return nil, &core.ConfigError{Code: core.ErrCodeInvalidConfig, Field: "log_level", Err: err}
		}
		logger = logger.Level(level)
	}
	logger = logger.With().Str("component", "bitget").Logger()

	timeout := config.Timeout
	if options.HTTPTimeout > 0 {
		timeout = options.HTTPTimeout
	}

	httpClient, err := transport.NewClient(transport.Config{
		BaseURL: config.BaseURL,
		Timeout: timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}

	c := &Client{
		config: config,
		http:   httpClient,
		logger: logger,
		now:    options.Clock,
	}

	if config.Credentials != nil {
		c.builder, err = signing.NewBuilder(*config.Credentials, config.SignType, c.clock, config.Locale)
		if err != nil {
			_ = httpClient.Close()
			return nil, err
		}
		logger.Debug().Stringer("credentials", *config.Credentials).Msg("signed requests enabled")
	}

	return c, nil
}

// Config returns a copy of the client configuration.
func (c *Client) Config() *core.Config {
	return c.config.Clone()
}

// Close releases the connection pool. Calls made after Close fail with ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.http.Close()
}

// Request sends an authenticated request and returns the raw response body
// once it has been classified as a success.
func (c *Client) Request(ctx context.Context, method, path string, params core.Params) ([]byte, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if c.builder == nil {
		return nil, &core.ConfigError{Code: core.ErrCodeNoCredentials, Err: core.ErrNoCredentials}
	}

	req, err := c.builder.Build(method, path, params)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req)
}

// PublicRequest sends an unauthenticated request through the same encoding
// and classification steps as Request.
func (c *Client) PublicRequest(ctx context.Context, method, path string, params core.Params) ([]byte, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	req, err := signing.BuildPublic(method, path, params, c.config.Locale)
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req)
}

// Do calls the endpoint registered for op.
func (c *Client) Do(ctx context.Context, op core.Operation, params core.Params) ([]byte, error) {
	ep, ok := endpoints[op]
	if !ok {
		return nil, &core.ConfigError{
			Code:  core.ErrCodeUnknownOperation,
			Field: op.String(),
			Err:   fmt.Errorf("no endpoint for operation %d", int(op)),
		}
	}
	req := core.NewRequest(ep.Method, ep.Path).
		SetParams(params).
		SetRequireAuth(ep.Auth)
	return c.Execute(ctx, req)
}

// Execute sends a prepared request, signed when it requires auth.
func (c *Client) Execute(ctx context.Context, req *core.Request) ([]byte, error) {
	if req.RequireAuth {
		return c.Request(ctx, req.Method, req.Path, req.Params)
	}
	return c.PublicRequest(ctx, req.Method, req.Path, req.Params)
}

func (c *Client) send(ctx context.Context, req *signing.SignedRequest) ([]byte, error) {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := Classify(resp.Body, c.config.SuccessCode); err != nil {
		var exErr *core.ExchangeError
		if errors.As(err, &exErr) {
			exErr.StatusCode = resp.StatusCode
			c.logger.Warn().
				Str("method", req.Method).
				Str("path", req.Path).
				Str("code", exErr.Code).
				Str("msg", exErr.Message).
				Str("request_id", exErr.RequestID).
				Msg("exchange rejected request")
		}
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) checkOpen() error {
	if c.closed.Load() {
		return &core.ConfigError{Code: core.ErrCodeClientClosed, Err: core.ErrClientClosed}
	}
	return nil
}

// clock is the time source handed to the signer.
func (c *Client) clock() time.Time {
	t := c.now()
	if c.config.UseServerTime {
		t = t.Add(time.Duration(c.offset.Load()) * time.Millisecond)
	}
	return t
}

// ServerTime returns the exchange clock.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	body, err := c.PublicRequest(ctx, http.MethodGet, pathServerTime, nil)
	if err != nil {
		return time.Time{}, err
	}
	data, err := Decode[serverTime](body)
	if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(string(data.ServerTime), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse server time %q: %w", data.ServerTime, err)
	}
	return time.UnixMilli(ms), nil
}

// SyncTime measures the offset between the local and the exchange clock and
// stores it. The offset is applied to request timestamps when
// Config.UseServerTime is set.
func (c *Client) SyncTime(ctx context.Context) (time.Duration, error) {
	before := c.now()
	server, err := c.ServerTime(ctx)
	if err != nil {
		return 0, err
	}
	after := c.now()

	local := before.Add(after.Sub(before) / 2)
	offset := server.Sub(local)
	c.offset.Store(offset.Milliseconds())

	c.logger.Debug().Dur("offset", offset).Msg("server time synced")
	return offset, nil
}

// TimeOffset returns the last offset stored by SyncTime.
func (c *Client) TimeOffset() time.Duration {
	return time.Duration(c.offset.Load()) * time.Millisecond
}
