package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sunset/internal/config"
	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/platform/tui"
	"github.com/vovakirdan/tui-sunset/internal/present"
)

var (
	flagWidth  int
	flagHeight int
	flagFPS    int
	flagNoHelp bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the animation in this terminal",
	Long: `Run the sunset animation in the alternate screen.

Each terminal cell shows two pixels stacked with a half block, so the
surface is as wide as the terminal and twice as tall. --width and
--height set the surface size in pixels instead.

Logs go to --log-file because the terminal belongs to the animation.

Examples:
  sunset run
  sunset run --width 120 --height 60
  sunset run --fps 30 --no-help
  sunset run --log-level debug --log-file ./sunset.log`,
	Run: runAnimation,
}

func init() {
	addDisplayFlags(runCmd)
}

func addDisplayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Surface width in pixels (0 = terminal width)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Surface height in pixels (0 = twice the terminal height)")
	cmd.Flags().IntVar(&flagFPS, "fps", 0, "Terminal repaint cap (0 = config value)")
	cmd.Flags().BoolVar(&flagNoHelp, "no-help", false, "Hide the key help bar")
}

// applyDisplayFlags overrides config values with the flags that were set.
func applyDisplayFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("width") {
		cfg.Display.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Display.Height = flagHeight
	}
	if cmd.Flags().Changed("fps") {
		cfg.Display.FPS = flagFPS
	}
	if flagNoHelp {
		cfg.Display.Help = false
	}
}

// surfaceSize fills unset dimensions from the terminal size.
func surfaceSize(d config.DisplayConfig) (int, int) {
	cols, rows := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = w, h
	}
	if d.Help {
		rows-- // help bar
	}

	width, height := d.Width, d.Height
	if width == 0 {
		width = cols
	}
	if height == 0 {
		height = tui.PixelHeight(rows)
	}
	return width, height
}

func runAnimation(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	applyDisplayFlags(cmd, &cfg)
	mustValidate(cfg)

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(logFile, "sunset")
	if err != nil {
		logFile.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded", "source", cfg.Source)

	width, height := surfaceSize(cfg.Display)
	bindings := cfg.Bindings()

	d := tui.NewDisplay(
		tui.WithBindings(bindings),
		tui.WithHelp(cfg.Display.Help),
		tui.WithLogger(logger),
		tui.WithProgramOptions(tea.WithFPS(cfg.Display.FPS)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	loop := present.NewLoop(d,
		present.WithLogger(logger),
		present.WithMapper(input.NewMapper(bindings)),
		present.WithScene(cfg.SceneFactory()),
		present.WithInterval(cfg.Display.Interval),
	)
	code := loop.Run(ctx, width, height)
	stop()
	logFile.Close()

	if err := loop.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}
