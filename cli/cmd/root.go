package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julienstroheker/nc/internal/config"
	"github.com/julienstroheker/nc/internal/logging"
	"github.com/spf13/cobra"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var (
	cfg    config.Config
	logger *logging.Logger

	listenFlag    bool
	verboseFlag   bool
	debugFlag     bool
	udpFlag       bool
	unixFlag      bool
	configFlag    string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "nc [-l] [host] port",
	Short: "Relay bytes between a TCP connection and stdin/stdout",
	Long: `nc - relay bytes between one TCP connection and standard input/output

Client role (default) connects to host:port. With -l, nc listens on port and
relays the first inbound connection. Whatever arrives from the peer is written
to stdout unchanged; whatever is read from stdin is sent to the peer.`,
	Example: `  nc -l 9001
  nc 127.0.0.1 9001`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(args)
		if err != nil {
			return err
		}
		cfg = c
		logger = logging.NewWithOptions(cfg.Level(), logging.ParseFormat(cfg.LogFormat), cmd.ErrOrStderr())
		logger.Debug("Configuration loaded",
			logging.String("role", cfg.Role.String()),
			logging.String("host", cfg.Host),
			logging.String("port", cfg.Port),
			logging.Int("buffer_size", cfg.BufferSize))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelay(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &config.UsageError{Msg: err.Error()}
	})

	flags := rootCmd.Flags()
	flags.BoolVarP(&listenFlag, "listen", "l", false, "Listen mode, for inbound connects")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging (debug level)")
	flags.BoolVar(&debugFlag, "debug", false, "Print lots of debugging info (env TRACE)")
	flags.BoolVarP(&udpFlag, "udp", "u", false, "UDP mode")
	flags.BoolVarP(&unixFlag, "unix", "U", false, "Use UNIX domain socket")
	flags.StringVar(&configFlag, "config", "", "YAML configuration file")
	flags.StringVar(&logFormatFlag, "log-format", "", "Log format: auto, console or json")

	_ = flags.MarkHidden("debug")
	_ = flags.MarkHidden("udp")
	_ = flags.MarkHidden("unix")
}

// loadConfig assembles the configuration: defaults and environment, then
// the YAML file, then flags and positional arguments
func loadConfig(args []string) (config.Config, error) {
	if udpFlag {
		return config.Config{}, &config.UsageError{Msg: "UDP mode is not supported"}
	}
	if unixFlag {
		return config.Config{}, &config.UsageError{Msg: "UNIX domain sockets are not supported"}
	}

	c := config.Load()
	if configFlag != "" {
		var err error
		if c, err = config.LoadFile(configFlag, c); err != nil {
			return c, err
		}
	}

	c = c.WithVerbose(verboseFlag || debugFlag).WithLogFormat(logFormatFlag)

	c, err := c.WithArgs(listenFlag, args)
	if err != nil {
		return c, err
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// ExitCode maps an error returned by the command to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var usageErr *config.UsageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}
	return exitError
}

// reportUsage prints a usage error followed by the usage text
func reportUsage(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s: error: %v\n", rootCmd.Name(), err)
	_, _ = fmt.Fprint(w, rootCmd.UsageString())
}

// Execute runs the root command and terminates the process. Exiting here
// abandons a stdin read that may still be blocked after the relay ends.
func Execute() {
	err := rootCmd.Execute()

	var usageErr *config.UsageError
	if errors.As(err, &usageErr) {
		reportUsage(os.Stderr, err)
	} else if err != nil && logger == nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}

	os.Exit(ExitCode(err))
}
