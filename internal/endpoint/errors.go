package endpoint

import (
	"errors"
	"fmt"
)

// ErrConnectionClosed is returned when reading or writing a closed endpoint
var ErrConnectionClosed = errors.New("connection is closed")

// BindError reports a listening socket that could not be bound
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind port %d: %v", e.Port, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// ConnectError reports an outbound connection that could not be made,
// including resolution failures
type ConnectError struct {
	Address string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Address, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
