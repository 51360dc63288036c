package relay

import (
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// errWriterStopped is returned by a stopped writeGate
var errWriterStopped = errors.New("writer stopped")

// writeGate wraps stdout so Run can forbid further writes without waiting
// on a write that may never complete
type writeGate struct {
	w       io.Writer
	mu      sync.Mutex
	stopped atomic.Bool
}

func (g *writeGate) Write(p []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped.Load() {
		return 0, errWriterStopped
	}
	return g.w.Write(p)
}

// stop rejects every write that has not started yet. It reports false when
// a write is still in progress; that write is abandoned, not awaited.
func (g *writeGate) stop() bool {
	g.stopped.Store(true)
	if g.mu.TryLock() {
		g.mu.Unlock()
		return true
	}
	return false
}
