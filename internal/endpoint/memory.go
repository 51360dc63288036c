package endpoint

import (
	"io"
	"sync"

	"github.com/julienstroheker/nc/internal/config"
)

// MemoryEndpoint is an in-memory Endpoint backed by two pipes, for testing
type MemoryEndpoint struct {
	reader *io.PipeReader
	writer *io.PipeWriter
	role   config.Role
	id     string
	local  string
	remote string

	mu          sync.Mutex
	closed      bool
	writeClosed bool
}

// NewMemoryPair returns two connected endpoints. The first carries role,
// the second the peer role; whatever one writes the other reads.
func NewMemoryPair(role config.Role) (*MemoryEndpoint, *MemoryEndpoint) {
	// a writes -> b reads
	bReader, aWriter := io.Pipe()
	// b writes -> a reads
	aReader, bWriter := io.Pipe()

	id := newSessionID()
	a := &MemoryEndpoint{
		reader: aReader,
		writer: aWriter,
		role:   role,
		id:     id,
		local:  "memory:" + role.String(),
		remote: "memory:" + role.Peer().String(),
	}
	b := &MemoryEndpoint{
		reader: bReader,
		writer: bWriter,
		role:   role.Peer(),
		id:     id,
		local:  a.remote,
		remote: a.local,
	}
	return a, b
}

// Read reads data sent by the peer. It returns io.EOF after the peer's
// CloseWrite or Close.
func (e *MemoryEndpoint) Read(p []byte) (int, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return 0, ErrConnectionClosed
	}
	e.mu.Unlock()
	return e.reader.Read(p)
}

// Write sends data to the peer, blocking until the peer reads it
func (e *MemoryEndpoint) Write(p []byte) (int, error) {
	e.mu.Lock()
	if e.closed || e.writeClosed {
		e.mu.Unlock()
		return 0, ErrConnectionClosed
	}
	e.mu.Unlock()
	return e.writer.Write(p)
}

// CloseWrite signals end of stream to the peer
func (e *MemoryEndpoint) CloseWrite() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrConnectionClosed
	}
	if e.writeClosed {
		return nil
	}
	e.writeClosed = true
	return e.writer.Close()
}

// Close closes both directions and unblocks pending reads
func (e *MemoryEndpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	_ = e.reader.Close()
	_ = e.writer.Close()
	return nil
}

// WriteClosed reports whether CloseWrite or Close has been called
func (e *MemoryEndpoint) WriteClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writeClosed || e.closed
}

// Closed reports whether Close has been called
func (e *MemoryEndpoint) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *MemoryEndpoint) Role() config.Role  { return e.role }
func (e *MemoryEndpoint) SessionID() string  { return e.id }
func (e *MemoryEndpoint) LocalAddr() string  { return e.local }
func (e *MemoryEndpoint) RemoteAddr() string { return e.remote }
