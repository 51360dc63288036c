package relay

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/julienstroheker/nc/internal/logging"
)

// pump copies src to dst until src reports io.EOF, which yields nil. Each
// chunk is written whole before the next read, so per-source order is kept.
func pump(dst io.Writer, src io.Reader, buf []byte, from, to string, count *atomic.Int64, logger logging.Sink) error {
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			written, werr := dst.Write(buf[:n])
			if werr == nil && written != n {
				werr = io.ErrShortWrite
			}
			count.Add(int64(written))
			if werr != nil {
				return &StreamError{Op: "write", Stream: to, Err: werr}
			}
			logger.Debug("Forwarded data",
				logging.String("from", from),
				logging.String("to", to),
				logging.Int("bytes", n))
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return &StreamError{Op: "read", Stream: from, Err: rerr}
		}
	}
}
