package endpoint

import (
	"io"

	"github.com/google/uuid"
	"github.com/julienstroheker/nc/internal/config"
	"github.com/julienstroheker/nc/internal/logging"
)

// Endpoint is the live bidirectional connection owned by the relay
type Endpoint interface {
	io.ReadWriteCloser

	// CloseWrite shuts down the writing half while leaving reads open
	CloseWrite() error

	// Role reports whether the endpoint was accepted or dialed
	Role() config.Role

	// SessionID is a short identifier used to correlate log lines
	SessionID() string

	// LocalAddr and RemoteAddr describe the two ends of the connection
	LocalAddr() string
	RemoteAddr() string
}

// Options contains collaborators for establishing an endpoint
type Options struct {
	// Logger receives debug diagnostics. Nil discards them.
	Logger logging.Sink
}

func (o *Options) logger() logging.Sink {
	if o == nil || o.Logger == nil {
		return logging.Nop()
	}
	return o.Logger
}

func newSessionID() string {
	return uuid.New().String()[:8]
}
