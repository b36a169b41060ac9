package bitget

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"bitget/internal/signing"
	"bitget/internal/ws"
	"bitget/pkg/core"
)

const (
	wsLoginPath     = "/user/verify"
	wsLoginTimeout  = 10 * time.Second
	wsLoginOkCode   = "0"
	wsOpLogin       = "login"
	wsOpSubscribe   = "subscribe"
	wsOpUnsubscribe = "unsubscribe"
	wsEventError    = "error"
)

// SubscribeArg names one websocket channel.
type SubscribeArg struct {
	// InstType is "SPOT", "USDT-FUTURES", "COIN-FUTURES" or "USDC-FUTURES".
	InstType string `json:"instType" validate:"required"`
	Channel  string `json:"channel" validate:"required"`
	InstID   string `json:"instId,omitempty"`
	Coin     string `json:"coin,omitempty"`
}

// WSMessage is a decoded websocket frame: either an event (login,
// subscribe, error) or a channel push carrying Data.
type WSMessage struct {
	Event  string          `json:"event"`
	Code   FlexString      `json:"code"`
	Msg    string          `json:"msg"`
	Action string          `json:"action"`
	Arg    SubscribeArg    `json:"arg"`
	// Data is the raw channel payload; sonic fills json.RawMessage without
	// an encoding/json round trip.
	Data   json.RawMessage `json:"data"`
	Ts     FlexString      `json:"ts"`
}

type wsRequest struct {
	Op   string `json:"op"`
	Args []any  `json:"args"`
}

type wsLoginArg struct {
	APIKey     string `json:"apiKey"`
	Passphrase string `json:"passphrase"`
	Timestamp  string `json:"timestamp"`
	Sign       string `json:"sign"`
}

// WSClient is a Bitget websocket client. Subscriptions and the login state
// survive reconnects: after the connection is re-established the client logs
// in again and re-sends every subscription.
type WSClient struct {
	conn   *ws.Conn
	creds  *core.Credentials
	signer signing.Signer
	now    func() time.Time
	logger zerolog.Logger

	// loginSlot admits one Login at a time.
	loginSlot chan struct{}

	mu       sync.Mutex
	subs     []SubscribeArg
	loggedIn bool
	loginCh  chan error
	handler  func(*WSMessage)
}

// NewWSClient creates a websocket client for the public endpoint, or for the
// private one when private is set. Credentials are only needed for Login.
func NewWSClient(config *core.Config, private bool, opts ...Option) (*WSClient, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	config = config.Clone()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	options := applyOptions(opts...)

	url := config.WSURL
	if private {
		url = config.PrivateWSURL
	}
	logger := options.Logger.With().Str("component", "bitget-ws").Logger()

	w := &WSClient{
		creds:     config.Credentials,
		now:       options.Clock,
		logger:    logger,
		loginSlot: make(chan struct{}, 1),
	}
	if config.Credentials != nil {
		signer, err := signing.NewSigner(config.SignType, config.Credentials.SecretKey)
		if err != nil {
			return nil, err
		}
		w.signer = signer
	}

	w.conn = ws.New(ws.Config{
		URL:              url,
		ReconnectEnabled: true,
	}, logger)
	w.conn.OnMessage(w.dispatch)
	w.conn.OnReconnect(w.restore)
	return w, nil
}

// OnMessage sets the handler for channel pushes and non-login events. It is
// called from the read loop and must not block.
func (w *WSClient) OnMessage(fn func(*WSMessage)) {
	w.mu.Lock()
	w.handler = fn
	w.mu.Unlock()
}

// Connect opens the connection.
func (w *WSClient) Connect(ctx context.Context) error {
	return w.conn.Connect(ctx)
}

// Close shuts the connection down permanently.
func (w *WSClient) Close() error {
	return w.conn.Close()
}

// IsConnected reports whether the connection is open.
func (w *WSClient) IsConnected() bool {
	return w.conn.IsConnected()
}

// Login authenticates the connection and waits for the exchange to accept it.
// The signature covers the timestamp in seconds, "GET" and "/user/verify".
// Concurrent calls run one after another.
func (w *WSClient) Login(ctx context.Context) error {
	if w.creds == nil || w.signer == nil {
		return &core.ConfigError{Code: core.ErrCodeNoCredentials, Err: core.ErrNoCredentials}
	}

	select {
	case w.loginSlot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-w.loginSlot }()

	ch := make(chan error, 1)
	w.mu.Lock()
	w.loginCh = ch
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		if w.loginCh == ch {
			w.loginCh = nil
		}
		w.mu.Unlock()
	}()

	ts := strconv.FormatInt(w.now().Unix(), 10)
	arg := wsLoginArg{
		APIKey:     w.creds.APIKey,
		Passphrase: w.creds.Passphrase,
		Timestamp:  ts,
		Sign:       w.signer.Sign(signing.Prehash(ts, "GET", wsLoginPath, nil)),
	}
	if err := w.conn.WriteJSON(wsRequest{Op: wsOpLogin, Args: []any{arg}}); err != nil {
		return err
	}

	select {
	case err := <-ch:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	w.loggedIn = true
	w.mu.Unlock()
	w.logger.Info().Msg("websocket login accepted")
	return nil
}

// Subscribe sends one subscribe frame per arg and remembers each arg for
// resubscription after a reconnect.
func (w *WSClient) Subscribe(args ...SubscribeArg) error {
	for _, arg := range args {
		if err := checkParams(arg); err != nil {
			return err
		}
		if err := w.send(wsOpSubscribe, arg); err != nil {
			return err
		}

		w.mu.Lock()
		if !slices.Contains(w.subs, arg) {
			w.subs = append(w.subs, arg)
		}
		w.mu.Unlock()
	}
	return nil
}

// Unsubscribe sends one unsubscribe frame per arg and forgets it.
func (w *WSClient) Unsubscribe(args ...SubscribeArg) error {
	for _, arg := range args {
		if err := w.send(wsOpUnsubscribe, arg); err != nil {
			return err
		}

		w.mu.Lock()
		w.subs = slices.DeleteFunc(w.subs, func(s SubscribeArg) bool { return s == arg })
		w.mu.Unlock()
	}
	return nil
}

// Subscriptions returns the channels that will be restored after a reconnect.
func (w *WSClient) Subscriptions() []SubscribeArg {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.subs)
}

func (w *WSClient) send(op string, arg SubscribeArg) error {
	return w.conn.WriteJSON(wsRequest{Op: op, Args: []any{arg}})
}

func (w *WSClient) dispatch(data []byte) {
	var msg WSMessage
	if err := sonic.Unmarshal(data, &msg); err != nil {
		w.logger.Debug().Err(err).Str("data", string(data)).Msg("dropping undecodable frame")
		return
	}

	switch msg.Event {
	case wsOpLogin:
		var err error
		if string(msg.Code) != wsLoginOkCode && msg.Code != "" {
			err = core.NewExchangeError(mapErrorCode(string(msg.Code)), 0, string(msg.Code), msg.Msg, "")
		}
		w.resolveLogin(err)
		return
	case wsEventError:
		err := core.NewExchangeError(mapErrorCode(string(msg.Code)), 0, string(msg.Code), msg.Msg, "")
		w.logger.Warn().Str("code", err.Code).Str("msg", err.Message).Msg("websocket error event")
		if w.resolveLogin(err) {
			return
		}
	}

	w.mu.Lock()
	handler := w.handler
	w.mu.Unlock()
	if handler != nil {
		handler(&msg)
	}
}

// resolveLogin hands err to a pending Login and reports whether one was waiting.
func (w *WSClient) resolveLogin(err error) bool {
	w.mu.Lock()
	ch := w.loginCh
	w.loginCh = nil
	w.mu.Unlock()
	if ch == nil {
		return false
	}
	ch <- err
	return true
}

// restore runs after a reconnect.
func (w *WSClient) restore() {
	w.mu.Lock()
	loggedIn := w.loggedIn
	subs := slices.Clone(w.subs)
	w.mu.Unlock()

	if loggedIn {
		ctx, cancel := context.WithTimeout(context.Background(), wsLoginTimeout)
		err := w.Login(ctx)
		cancel()
		if err != nil {
			w.logger.Error().Err(err).Msg("websocket re-login failed")
			return
		}
	}

	for _, arg := range subs {
		if err := w.send(wsOpSubscribe, arg); err != nil {
			w.logger.Error().Err(err).Str("channel", arg.Channel).Msg("resubscribe failed")
			return
		}
	}
	w.logger.Info().Int("subscriptions", len(subs)).Msg("websocket session restored")
}
