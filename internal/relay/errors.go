package relay

import "fmt"

// Stream names used in StreamError
const (
	StreamRemote = "remote"
	StreamStdin  = "stdin"
	StreamStdout = "stdout"
)

// StreamError reports a read or write failure after the endpoint was
// established
type StreamError struct {
	// Op is "read", "write" or "close_write"
	Op string
	// Stream is one of StreamRemote, StreamStdin, StreamStdout
	Stream string
	Err    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Stream, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
