package relay

import (
	"sync"
	"sync/atomic"

	"github.com/julienstroheker/nc/internal/config"
)

// State is the lifecycle state of a relay session
type State int

const (
	// StateActive means both directions are open
	StateActive State = iota
	// StateRemoteClosed means the peer ended its stream
	StateRemoteClosed
	// StateLocalClosed means standard input ended and a half-close was sent
	StateLocalClosed
	// StateError means a read or write failed
	StateError
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateRemoteClosed:
		return "remote_closed"
	case StateLocalClosed:
		return "local_closed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible
func (s State) Terminal() bool {
	return s != StateActive
}

// Session is the runtime state of one relay run
type Session struct {
	id   string
	role config.Role

	received atomic.Int64
	sent     atomic.Int64

	mu    sync.Mutex
	state State
}

func newSession(id string, role config.Role) *Session {
	return &Session{id: id, role: role, state: StateActive}
}

// finish moves an active session to a terminal state. Later calls are
// ignored.
func (s *Session) finish(state State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Terminal() {
		return false
	}
	s.state = state
	return true
}

// ID returns the endpoint session identifier
func (s *Session) ID() string { return s.id }

// Role returns the role the endpoint was established with
func (s *Session) Role() config.Role { return s.role }

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BytesReceived is the number of bytes written to stdout
func (s *Session) BytesReceived() int64 { return s.received.Load() }

// BytesSent is the number of bytes written to the endpoint
func (s *Session) BytesSent() int64 { return s.sent.Load() }

// ExitCode maps the state to a process exit status. An active session has
// no exit status yet and reports -1.
func (s *Session) ExitCode() int {
	switch s.State() {
	case StateRemoteClosed, StateLocalClosed:
		return 0
	case StateError:
		return 1
	default:
		return -1
	}
}
