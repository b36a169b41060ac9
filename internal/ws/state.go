package ws

import "sync/atomic"

// ConnState represents the current connection state of a websocket.
type ConnState int32

// Connection states. A Conn starts disconnected and ends closed; closed is terminal.
const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateClosed
)

func (s ConnState) String() string {
	names := [...]string{
		"disconnected",
		"connecting",
		"connected",
		"reconnecting",
		"closed",
	}
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// State provides atomic access to a ConnState value.
type State struct {
	state atomic.Int32
}

func (s *State) Load() ConnState {
	return ConnState(s.state.Load())
}

func (s *State) Store(state ConnState) {
	s.state.Store(int32(state))
}

// CompareAndSwap swaps to next only if the current state is old.
func (s *State) CompareAndSwap(old, next ConnState) bool {
	return s.state.CompareAndSwap(int32(old), int32(next))
}
