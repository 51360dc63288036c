package cmd

import (
	"context"
	"io"

	"github.com/julienstroheker/nc/internal/config"
	"github.com/julienstroheker/nc/internal/endpoint"
	"github.com/julienstroheker/nc/internal/logging"
	"github.com/julienstroheker/nc/internal/relay"
)

// establish obtains the single endpoint for the configured role
func establish(ctx context.Context, c config.Config, log logging.Sink) (endpoint.Endpoint, error) {
	opts := &endpoint.Options{Logger: log}

	if c.Role == config.RoleServer {
		port, err := config.ListenPort(c.Port)
		if err != nil {
			return nil, err
		}
		log.Debug("Will listen", logging.Int("port", port))
		return endpoint.ListenAndAccept(ctx, port, opts)
	}

	return endpoint.Connect(ctx, c.Host, c.Port, opts)
}

// runRelay establishes the endpoint and relays it to stdin/stdout. Every
// failure is logged before it is returned.
func runRelay(ctx context.Context, c config.Config, stdin io.Reader, stdout io.Writer, log *logging.Logger) error {
	ep, err := establish(ctx, c, log)
	if err != nil {
		log.Error("Failed to establish connection",
			logging.String("role", c.Role.String()),
			logging.String("address", c.Address()),
			logging.Error(err))
		return err
	}

	engine := relay.NewEngine(&relay.Options{
		Stdin:      stdin,
		Stdout:     stdout,
		Logger:     log,
		BufferSize: c.BufferSize,
	})

	session, err := engine.Run(ctx, ep)
	if err != nil {
		log.Error("Relay failed",
			logging.String("session", session.ID()),
			logging.Error(err))
		return err
	}

	return nil
}
