// Package endpoint establishes the single connection that nc relays through.
//
// An Endpoint is a bidirectional byte stream that also supports a half-close
// (CloseWrite), so the relay can signal "no more data" while still receiving.
// Exactly one Endpoint exists per invocation: a server accepts the first
// inbound connection and stops listening, a client makes a single outbound
// attempt with no retry.
//
// # Usage Example
//
//	// Server role: bind, then accept exactly one connection
//	ep, err := endpoint.ListenAndAccept(ctx, 9001, &endpoint.Options{Logger: log})
//	if err != nil {
//	    var bindErr *endpoint.BindError
//	    if errors.As(err, &bindErr) { ... }
//	}
//
//	// Client role: one connection attempt
//	ep, err := endpoint.Connect(ctx, "127.0.0.1", "9001", &endpoint.Options{Logger: log})
//
// # In-memory endpoints
//
// NewMemoryPair returns two connected endpoints built on io.Pipe, so relay
// behavior can be tested without sockets.
package endpoint
