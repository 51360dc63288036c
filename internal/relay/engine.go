package relay

import (
	"context"
	"io"

	"github.com/julienstroheker/nc/internal/config"
	"github.com/julienstroheker/nc/internal/endpoint"
	"github.com/julienstroheker/nc/internal/logging"
)

// Engine wires an endpoint to standard input and output
type Engine struct {
	stdin      io.Reader
	stdout     io.Writer
	logger     logging.Sink
	bufferSize int
}

// Options contains configuration for the Engine
type Options struct {
	// Stdin is the local source forwarded to the peer
	Stdin io.Reader

	// Stdout receives everything the peer sends
	Stdout io.Writer

	// Logger receives diagnostics. Nil discards them.
	Logger logging.Sink

	// BufferSize is the per-direction copy buffer; zero uses the default
	BufferSize int
}

// NewEngine creates a relay engine
func NewEngine(opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}

	e := &Engine{
		stdin:      opts.Stdin,
		stdout:     opts.Stdout,
		logger:     opts.Logger,
		bufferSize: opts.BufferSize,
	}
	if e.stdin == nil {
		e.stdin = eofReader{}
	}
	if e.stdout == nil {
		e.stdout = io.Discard
	}
	if e.logger == nil {
		e.logger = logging.Nop()
	}
	if e.bufferSize <= 0 {
		e.bufferSize = config.DefaultBufferSize
	}
	return e
}

type direction int

const (
	remoteToStdout direction = iota
	stdinToRemote
)

type outcome struct {
	dir direction
	err error
}

// Run relays until one direction reaches end of stream or fails, and
// returns the finished session. The endpoint is closed on return and no
// stdout write starts afterwards. Neither a stdin read nor a stdout write
// still blocked at that point is waited for; the caller is expected to exit.
func (e *Engine) Run(ctx context.Context, ep endpoint.Endpoint) (*Session, error) {
	session := newSession(ep.SessionID(), ep.Role())
	logger := logging.WithFields(e.logger,
		logging.String("session", session.ID()),
		logging.String("role", session.Role().String()))

	logger.Debug("Relay started",
		logging.String("local_addr", ep.LocalAddr()),
		logging.String("remote_addr", ep.RemoteAddr()))

	done := make(chan outcome, 2)
	stdout := &writeGate{w: e.stdout}

	go func() {
		err := pump(stdout, ep, make([]byte, e.bufferSize), StreamRemote, StreamStdout, &session.received, logger)
		done <- outcome{dir: remoteToStdout, err: err}
	}()

	go func() {
		err := pump(ep, e.stdin, make([]byte, e.bufferSize), StreamStdin, StreamRemote, &session.sent, logger)
		done <- outcome{dir: stdinToRemote, err: err}
	}()

	var result outcome
	select {
	case <-ctx.Done():
		session.finish(StateError)
		e.shutdown(ep, stdout, logger)
		return session, ctx.Err()
	case result = <-done:
	}

	var err error
	switch {
	case result.err != nil:
		session.finish(StateError)
		err = result.err
		logger.Debug("Relay direction failed", logging.Error(err))

	case result.dir == remoteToStdout:
		session.finish(StateRemoteClosed)
		logger.Debug("Socket disconnected")

	default:
		logger.Debug("Standard input closed, sending half-close")
		if cwErr := ep.CloseWrite(); cwErr != nil {
			session.finish(StateError)
			err = &StreamError{Op: "close_write", Stream: StreamRemote, Err: cwErr}
		} else {
			session.finish(StateLocalClosed)
		}
	}

	e.shutdown(ep, stdout, logger)

	logger.Debug("Relay finished",
		logging.String("state", session.State().String()),
		logging.Int64("bytes_received", session.BytesReceived()),
		logging.Int64("bytes_sent", session.BytesSent()))

	return session, err
}

// shutdown stops stdout so no write starts after Run returns, then closes
// the endpoint, which unblocks the remote reader. A stdout write already in
// progress is not waited for.
func (e *Engine) shutdown(ep endpoint.Endpoint, stdout *writeGate, logger logging.Sink) {
	if !stdout.stop() {
		logger.Debug("Abandoning pending stdout write")
	}
	_ = ep.Close()
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
