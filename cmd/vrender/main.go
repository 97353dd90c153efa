package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┬─┐┌─┐┌┐┌┌┬┐┌─┐┬─┐
  └┐┌┘├┬┘├┤ │││ ││├┤ ├┬┘
   └┘ ┴└─└─┘┘└┘─┴┘└─┘┴└─
`

// globalFlags are shared by every command.
type globalFlags struct {
	configDir string
	logLevel  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vrender",
		Short: "Render virtual DOM trees to HTML, terminals and images",
		Long: `vrender mounts component trees described in YAML tree files and
renders them through a host adapter.

  • HTML pages, terminal outlines and PNG images
  • Reactive state: writing a signal re-renders its component
  • Live preview server with websocket updates
  • Prometheus metrics and OpenTelemetry spans per render`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configDir, "config", "c", ".", "Directory containing vrender.json")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from vrender.json)")

	rootCmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		demoCmd(),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (f *globalFlags) setup(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(f.configDir)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, nil, err
	}
	if f.logLevel != "" {
		if _, err := config.ParseLevel(f.logLevel); err != nil {
			return nil, nil, err
		}
		cfg.LogLevel = f.logLevel
	}
	return cfg, newLogger(stderr, cfg.Level()), nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printBanner prints the vrender banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
