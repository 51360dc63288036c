package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/julienstroheker/nc/internal/logging"
)

const (
	// DefaultBufferSize is the per-direction copy buffer
	DefaultBufferSize = 32 * 1024

	maxBufferSize = 16 * 1024 * 1024
)

// Config is the immutable configuration of one invocation. Methods that
// change it return a modified copy.
type Config struct {
	// Role selects listening (server) or connecting (client)
	Role Role

	// Host is the remote host in client role, empty in server role
	Host string

	// Port is the port to listen on or connect to. Clients may use a
	// service name such as "http".
	Port string

	// Verbose raises log detail to debug
	Verbose bool

	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string

	// LogFormat is auto, console or json
	LogFormat string

	// BufferSize is the copy buffer used by each relay direction
	BufferSize int

	// badBufferSize holds an unparsable NC_BUFFER_SIZE for Validate
	badBufferSize string
}

// Load creates a Config by reading from environment variables
// and applying defaults where values are not set
func Load() Config {
	cfg := Config{
		Role:       RoleClient,
		LogLevel:   getEnvOrDefault("NC_LOG_LEVEL", "info"),
		LogFormat:  getEnvOrDefault("NC_LOG_FORMAT", "auto"),
		BufferSize: DefaultBufferSize,
		Verbose:    getEnvBool("TRACE"),
	}

	if v := os.Getenv("NC_BUFFER_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BufferSize = n
		} else {
			cfg.badBufferSize = v
		}
	}

	return cfg
}

// WithArgs applies the role and positional arguments. Server role takes
// exactly a port; client role takes a host and a port.
func (c Config) WithArgs(listen bool, args []string) (Config, error) {
	if listen {
		c.Role = RoleServer
		switch {
		case len(args) < 1:
			return c, usagef("port number required to listen")
		case len(args) > 1:
			return c, usagef("too many arguments for listen mode")
		}
		c.Host = ""
		c.Port = args[0]
		if _, err := ListenPort(c.Port); err != nil {
			return c, err
		}
		return c, nil
	}

	c.Role = RoleClient
	switch {
	case len(args) < 2:
		return c, usagef("missing hostname and port")
	case len(args) > 2:
		return c, usagef("too many arguments")
	}
	c.Host = args[0]
	c.Port = args[1]
	if err := validateDialPort(c.Port); err != nil {
		return c, err
	}
	return c, nil
}

// WithVerbose returns a copy with Verbose set when v is true
func (c Config) WithVerbose(v bool) Config {
	if v {
		c.Verbose = true
	}
	return c
}

// WithLogFormat returns a copy with the log format replaced when f is non-empty
func (c Config) WithLogFormat(f string) Config {
	if f != "" {
		c.LogFormat = f
	}
	return c
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	var problems []string

	if !c.Role.IsValid() {
		problems = append(problems, fmt.Sprintf("invalid role %q", c.Role))
	}

	switch c.Role {
	case RoleServer:
		if _, err := ListenPort(c.Port); err != nil {
			problems = append(problems, err.Error())
		}
	case RoleClient:
		if c.Host == "" {
			problems = append(problems, "host is required")
		}
		if err := validateDialPort(c.Port); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if !logging.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "auto", "console", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format %q", c.LogFormat))
	}

	if c.badBufferSize != "" {
		problems = append(problems, fmt.Sprintf("invalid NC_BUFFER_SIZE %q", c.badBufferSize))
	} else if c.BufferSize <= 0 || c.BufferSize > maxBufferSize {
		problems = append(problems, fmt.Sprintf("buffer size must be between 1 and %d", maxBufferSize))
	}

	if len(problems) > 0 {
		return usagef(strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the effective logging level
func (c Config) Level() logging.Level {
	if c.Verbose {
		return logging.DebugLevel
	}
	return logging.ParseLevel(c.LogLevel)
}

// Address returns the host:port to connect to
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ListenPort parses a numeric listening port in 0..65535
func ListenPort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("port must be a number")
	}
	if port < 0 || port > 65535 {
		return 0, usagef(fmt.Sprintf("port %d out of range", port))
	}
	return port, nil
}

// validateDialPort accepts 1..65535 or a service name
func validateDialPort(s string) error {
	if s == "" {
		return usagef("port is required")
	}
	if port, err := strconv.Atoi(s); err == nil {
		if port < 1 || port > 65535 {
			return usagef(fmt.Sprintf("port %d out of range", port))
		}
		return nil
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			return usagef(fmt.Sprintf("invalid port or service name %q", s))
		}
	}
	return nil
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
