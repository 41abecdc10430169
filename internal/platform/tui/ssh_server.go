package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/present"
)

// ServerConfig holds configuration for the SSH server.
type ServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sunset/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Interval is the pacing sleep of each session's loop.
	Interval time.Duration

	// Scene builds the scene for each session.
	Scene present.SceneFactory

	// Bindings are the keys every session uses.
	Bindings input.Bindings

	// FPS caps how often sessions repaint.
	FPS int
}

// DefaultServerConfig returns a config with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Interval:    present.DefaultInterval,
		Scene:       present.DefaultSceneFactory,
		Bindings:    input.DefaultBindings(),
		FPS:         60,
	}
}

// Server serves the animation over SSH, one present loop per session.
type Server struct {
	config ServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewServer creates an SSH server. A nil logger writes to stderr.
func NewServer(cfg ServerConfig, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "sunset-ssh",
		})
	}
	if cfg.Scene == nil {
		cfg.Scene = present.DefaultSceneFactory
	}

	srv := &Server{
		config: cfg,
		logger: logger,
	}

	hostKeyPath, err := resolveHostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(srv.programHandler, termenv.TrueColor),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func resolveHostKeyPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".sunset", "host_key"), nil
}

// sessionSize returns the surface size for a terminal. One row is kept for
// the help bar.
func sessionSize(cols, rows int) (int, int) {
	return cols, PixelHeight(rows - 1)
}

// programHandler starts a present loop for the session and hands its
// program to the middleware, which runs it.
func (s *Server) programHandler(sess ssh.Session) *tea.Program {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		wish.Fatalln(sess, "sunset needs an interactive terminal, try ssh -t")
		return nil
	}

	width, height := sessionSize(pty.Window.Width, pty.Window.Height)
	logger := s.logger.With("user", sess.User())

	opts := append(bubbletea.MakeOptions(sess), tea.WithAltScreen())
	if s.config.FPS > 0 {
		opts = append(opts, tea.WithFPS(s.config.FPS))
	}
	d := NewExternalDisplay(sess.Context(),
		WithRenderer(bubbletea.MakeRenderer(sess)),
		WithBindings(s.config.Bindings),
		WithLogger(logger),
		WithProgramOptions(opts...),
	)

	loop := present.NewLoop(d,
		present.WithLogger(logger),
		present.WithMapper(input.NewMapper(s.config.Bindings)),
		present.WithScene(s.config.Scene),
		present.WithInterval(s.config.Interval),
	)
	go func() {
		if code := loop.Run(sess.Context(), width, height); code != present.ExitOK {
			logger.Error("session animation failed", "error", loop.Err())
			_ = sess.Exit(code)
			_ = sess.Close()
		}
	}()

	return d.Program()
}

// loggingMiddleware logs SSH session events.
func (s *Server) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("ssh server: %w", err)
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}
