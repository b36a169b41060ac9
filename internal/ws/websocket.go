// Package ws maintains a single websocket connection with keepalive and
// automatic reconnection. Frames are handed to one message handler.
package ws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/lxzan/gws"
	"github.com/rs/zerolog"

	"bitget/pkg/core"
)

var (
	pingFrame = []byte("ping")
	pongFrame = []byte("pong")
)

// Config holds configuration options for a websocket connection.
type Config struct {
	// URL is the websocket server endpoint to connect to.
	URL string
	// ReconnectEnabled determines whether a dropped connection is re-established.
	ReconnectEnabled bool
	// ReconnectBaseWait is the wait before the first reconnection attempt.
	ReconnectBaseWait time.Duration
	// ReconnectMaxWait caps the exponential backoff between attempts.
	ReconnectMaxWait time.Duration
	// PingInterval is how often the text "ping" keepalive is sent.
	PingInterval time.Duration
	// ReadTimeout is how long the connection may stay silent before it is dropped.
	ReadTimeout time.Duration
	// DialTimeout bounds a reconnection handshake.
	DialTimeout time.Duration
}

// Handler receives every data frame. The slice is owned by the handler.
type Handler func(data []byte)

// Conn manages one websocket connection.
type Conn struct {
	config Config
	state  *State
	logger zerolog.Logger

	mu                sync.RWMutex
	conn              *gws.Conn
	ready             chan struct{}
	onMessage         Handler
	onReconnect       func()
	reconnectAttempts int

	// writeMu keeps at most one frame in flight on the socket.
	writeMu sync.Mutex

	stopChan chan struct{}
	pingOnce sync.Once
	wg       sync.WaitGroup
}

type eventHandler struct {
	conn *Conn
}

// New creates a websocket connection. Zero-valued durations get defaults.
func New(config Config, logger zerolog.Logger) *Conn {
	if config.ReconnectBaseWait == 0 {
		config.ReconnectBaseWait = time.Second
	}
	if config.ReconnectMaxWait == 0 {
		config.ReconnectMaxWait = 30 * time.Second
	}
	if config.PingInterval == 0 {
		config.PingInterval = 30 * time.Second
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 2 * config.PingInterval
	}
	if config.DialTimeout == 0 {
		config.DialTimeout = 10 * time.Second
	}

	c := &Conn{
		config:   config,
		state:    &State{},
		logger:   logger,
		ready:    make(chan struct{}),
		stopChan: make(chan struct{}),
	}
	c.state.Store(StateDisconnected)
	return c
}

// OnMessage sets the data frame handler. It must be set before Connect.
func (c *Conn) OnMessage(h Handler) {
	c.mu.Lock()
	c.onMessage = h
	c.mu.Unlock()
}

// OnReconnect sets a hook run after every successful reconnection. It runs
// outside the read loop, so it may write and wait for replies.
func (c *Conn) OnReconnect(fn func()) {
	c.mu.Lock()
	c.onReconnect = fn
	c.mu.Unlock()
}

func (h *eventHandler) OnOpen(socket *gws.Conn) {
	c := h.conn
	if !c.state.CompareAndSwap(StateConnecting, StateConnected) &&
		!c.state.CompareAndSwap(StateReconnecting, StateConnected) {
		_ = socket.NetConn().Close()
		return
	}

	c.mu.Lock()
	c.reconnectAttempts = 0
	select {
	case <-c.ready:
	default:
		close(c.ready)
	}
	c.mu.Unlock()

	c.logger.Info().Str("url", c.config.URL).Msg("websocket connected")
	_ = socket.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
}

func (h *eventHandler) OnClose(socket *gws.Conn, err error) {
	c := h.conn

	c.mu.Lock()
	stale := c.conn != socket
	if !stale {
		c.conn = nil
	}
	c.mu.Unlock()
	if stale {
		return
	}

	select {
	case <-c.stopChan:
		c.state.Store(StateClosed)
		return
	default:
	}

	c.state.Store(StateDisconnected)
	c.logger.Warn().Err(err).Str("url", c.config.URL).Msg("websocket disconnected")

	if c.config.ReconnectEnabled {
		c.wg.Go(c.reconnect)
	}
}

func (h *eventHandler) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetReadDeadline(time.Now().Add(h.conn.config.ReadTimeout))
	_ = socket.WritePong(payload)
}

func (h *eventHandler) OnPong(socket *gws.Conn, _ []byte) {
	_ = socket.SetReadDeadline(time.Now().Add(h.conn.config.ReadTimeout))
}

func (h *eventHandler) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()
	_ = socket.SetReadDeadline(time.Now().Add(h.conn.config.ReadTimeout))

	payload := message.Bytes()
	if len(payload) == 0 || string(payload) == string(pongFrame) {
		return
	}

	h.conn.mu.RLock()
	handler := h.conn.onMessage
	h.conn.mu.RUnlock()
	if handler == nil {
		return
	}

	// message buffers are pooled by gws
	data := make([]byte, len(payload))
	copy(data, payload)
	handler(data)
}

// Connect dials the configured URL and waits until the connection is open.
func (c *Conn) Connect(ctx context.Context) error {
	if !c.state.CompareAndSwap(StateDisconnected, StateConnecting) {
		current := c.state.Load()
		if current == StateConnected {
			return nil
		}
		if current == StateClosed {
			return core.ErrClientClosed
		}
		return fmt.Errorf("invalid state for connect: %s", current)
	}

	if err := c.dial(ctx); err != nil {
		c.state.CompareAndSwap(StateConnecting, StateDisconnected)
		return err
	}

	c.pingOnce.Do(func() { c.wg.Go(c.pingLoop) })
	return nil
}

func (c *Conn) dial(ctx context.Context) error {
	ready := make(chan struct{})
	c.mu.Lock()
	c.ready = ready
	c.mu.Unlock()

	socket, _, err := gws.NewClient(&eventHandler{conn: c}, &gws.ClientOption{
		Addr: c.config.URL,
	})
	if err != nil {
		return fmt.Errorf("connect websocket: %w", err)
	}

	c.mu.Lock()
	c.conn = socket
	c.mu.Unlock()

	c.wg.Go(socket.ReadLoop)

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		c.abandon(socket)
		return ctx.Err()
	case <-c.stopChan:
		c.abandon(socket)
		return core.ErrClientClosed
	}
}

// abandon drops a socket that never finished opening without triggering a reconnect.
func (c *Conn) abandon(socket *gws.Conn) {
	c.mu.Lock()
	if c.conn == socket {
		c.conn = nil
	}
	c.mu.Unlock()
	_ = socket.NetConn().Close()
}

// Close shuts the connection down permanently and waits for its goroutines.
func (c *Conn) Close() error {
	for {
		current := c.state.Load()
		if current == StateClosed {
			return nil
		}
		if c.state.CompareAndSwap(current, StateClosed) {
			break
		}
	}

	close(c.stopChan)

	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.NetConn().Close()
	}
	c.mu.Unlock()

	c.wg.Wait()
	return nil
}

// State returns the current connection state.
func (c *Conn) State() ConnState {
	return c.state.Load()
}

// IsConnected returns true if the connection is open.
func (c *Conn) IsConnected() bool {
	return c.state.Load() == StateConnected
}

// WriteText sends one text frame. Concurrent callers are serialized.
func (c *Conn) WriteText(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	socket := c.conn
	c.mu.RUnlock()

	if socket == nil || c.state.Load() != StateConnected {
		return core.ErrNotConnected
	}
	return socket.WriteMessage(gws.OpcodeText, data)
}

// WriteJSON marshals v with sonic and sends it as a text frame.
func (c *Conn) WriteJSON(v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return &core.SerializationError{Err: err}
	}
	return c.WriteText(data)
}

// pingLoop sends the text keepalive the exchange expects. Control frame
// pings are not enough to keep a Bitget session alive.
func (c *Conn) pingLoop() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			if err := c.WriteText(pingFrame); err != nil && !errors.Is(err, core.ErrNotConnected) {
				c.logger.Warn().Err(err).Msg("websocket ping failed")
			}
		}
	}
}

func (c *Conn) reconnect() {
	if !c.state.CompareAndSwap(StateDisconnected, StateReconnecting) {
		return
	}

	for {
		select {
		case <-c.stopChan:
			return
		default:
		}

		c.mu.Lock()
		attempts := c.reconnectAttempts
		c.reconnectAttempts++
		c.mu.Unlock()

		wait := c.backoff(attempts)
		c.logger.Info().
			Dur("wait", wait).
			Int("attempt", attempts+1).
			Msg("attempting reconnect")

		select {
		case <-time.After(wait):
		case <-c.stopChan:
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.config.DialTimeout)
		err := c.dial(ctx)
		cancel()
		if err != nil {
			if errors.Is(err, core.ErrClientClosed) {
				return
			}
			c.logger.Error().Err(err).
				Int("attempt", attempts+1).
				Msg("reconnect failed")
			continue
		}

		c.logger.Info().Msg("reconnected successfully")

		c.mu.RLock()
		hook := c.onReconnect
		c.mu.RUnlock()
		if hook != nil {
			hook()
		}
		return
	}
}

func (c *Conn) backoff(attempts int) time.Duration {
	if attempts > 16 {
		attempts = 16
	}
	return min(c.config.ReconnectBaseWait*time.Duration(1<<uint(attempts)), c.config.ReconnectMaxWait)
}
