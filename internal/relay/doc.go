// Package relay forwards bytes between one endpoint and standard I/O.
//
// Two goroutines run independently: remote -> stdout and stdin -> remote.
// Whichever reaches a terminal condition first decides how the session
// ends:
//
//   - remote end of stream: stop immediately (RemoteClosed). Pending local
//     input is abandoned.
//   - local end of stream: half-close the endpoint and stop without waiting
//     for the peer (LocalClosed).
//   - any read or write failure: StreamError (Error).
//
// The two end-of-stream paths race; the first one observed wins.
package relay
