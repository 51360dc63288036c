package endpoint

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"

	"github.com/julienstroheker/nc/internal/config"
	"github.com/julienstroheker/nc/internal/logging"
)

// tcpEndpoint adapts a *net.TCPConn to Endpoint
type tcpEndpoint struct {
	*net.TCPConn
	role config.Role
	id   string
}

func (e *tcpEndpoint) Role() config.Role  { return e.role }
func (e *tcpEndpoint) SessionID() string  { return e.id }
func (e *tcpEndpoint) LocalAddr() string  { return e.TCPConn.LocalAddr().String() }
func (e *tcpEndpoint) RemoteAddr() string { return e.TCPConn.RemoteAddr().String() }

func newTCPEndpoint(conn net.Conn, role config.Role) (*tcpEndpoint, error) {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		_ = conn.Close()
		return nil, errors.New("not a TCP connection")
	}
	return &tcpEndpoint{TCPConn: tcpConn, role: role, id: newSessionID()}, nil
}

// Listener is a bound listening socket that hands out exactly one connection
type Listener struct {
	ln     net.Listener
	port   int
	logger logging.Sink

	closeOnce sync.Once
	closeErr  error
}

// Listen binds a TCP socket on all interfaces. Port 0 picks an ephemeral port.
func Listen(ctx context.Context, port int, opts *Options) (*Listener, error) {
	logger := opts.logger()

	lc := net.ListenConfig{Control: reuseAddrControl}
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return nil, &BindError{Port: port, Err: err}
	}

	logger.Debug("Listening", logging.String("address", ln.Addr().String()))

	return &Listener{ln: ln, port: port, logger: logger}, nil
}

// Addr returns the bound address, useful when listening on port 0
func (l *Listener) Addr() net.Addr {
	return l.ln.Addr()
}

// Accept waits for one inbound connection and then stops listening. The
// wait has no timeout; cancelling ctx aborts it.
func (l *Listener) Accept(ctx context.Context) (Endpoint, error) {
	defer func() {
		_ = l.Close()
	}()

	stop := context.AfterFunc(ctx, func() {
		_ = l.Close()
	})
	defer stop()

	conn, err := l.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &BindError{Port: l.port, Err: err}
	}

	ep, err := newTCPEndpoint(conn, config.RoleServer)
	if err != nil {
		return nil, &BindError{Port: l.port, Err: err}
	}

	l.logger.Debug("Socket connected",
		logging.String("session", ep.SessionID()),
		logging.String("local_addr", ep.LocalAddr()),
		logging.String("remote_addr", ep.RemoteAddr()))

	return ep, nil
}

// Close stops listening. It is safe to call more than once.
func (l *Listener) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.ln.Close()
	})
	return l.closeErr
}

// ListenAndAccept binds the port and returns the first inbound connection
func ListenAndAccept(ctx context.Context, port int, opts *Options) (Endpoint, error) {
	l, err := Listen(ctx, port, opts)
	if err != nil {
		return nil, err
	}
	return l.Accept(ctx)
}

// Connect makes a single outbound connection attempt. port may be numeric
// or a service name. No timeout is applied beyond ctx.
func Connect(ctx context.Context, host, port string, opts *Options) (Endpoint, error) {
	logger := opts.logger()
	address := net.JoinHostPort(host, port)

	logger.Debug("Connecting", logging.String("address", address))

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, &ConnectError{Address: address, Err: err}
	}

	ep, err := newTCPEndpoint(conn, config.RoleClient)
	if err != nil {
		return nil, &ConnectError{Address: address, Err: err}
	}

	logger.Debug("Connected to server",
		logging.String("session", ep.SessionID()),
		logging.String("local_addr", ep.LocalAddr()),
		logging.String("remote_addr", ep.RemoteAddr()))

	return ep, nil
}
