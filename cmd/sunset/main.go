// sunset renders an animated sunset over the ocean in the terminal.
//
// Usage:
//
//	sunset                   - Run the animation (same as "sunset run")
//	sunset run               - Run the animation in this terminal
//	sunset snapshot          - Render frames headlessly and write a PNG
//	sunset serve             - Start SSH server streaming the animation
//	sunset config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.sunset/config.yaml, ./configs/sunset.yaml)
//	--log-level <level> - debug, info, warn or error (default: info)
//	--log-file <path>   - Log file for the terminal animation (default: ~/.sunset/sunset.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sunset/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sunset",
	Short: "Sunset - an animated sunset in your terminal",
	Long: `Sunset draws a sky gradient, a descending sun and a rippling ocean,
double buffered and paced at a fixed interval.

Available commands:
  run       - Run the animation (default)
  snapshot  - Render headlessly and save a PNG
  serve     - Start SSH server streaming the animation
  config    - Print the effective configuration

Controls:
  +/=/Up     - Faster
  -/_/Down   - Slower
  Esc/Q      - Quit
  Ctrl+C     - Close

Examples:
  sunset
  sunset run --fps 30
  sunset snapshot --frames 600 --out dusk.png
  sunset serve --ssh :2222
  sunset config --config ./my-sunset.yaml`,
	Run: runAnimation,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for the terminal animation (default ~/.sunset/sunset.log)")

	addDisplayFlags(rootCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// mustValidate exits when the config is unusable.
func mustValidate(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens the --log-file for appending, creating ~/.sunset if
// needed. Without a home directory logs are discarded.
func openLogFile() (io.WriteCloser, error) {
	path := flagLogFile
	if path == "" {
		path = config.UserPath("sunset.log")
	}
	if path == "" {
		return nopCloser{io.Discard}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
