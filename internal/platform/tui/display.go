package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/present"
)

// eventBuffer bounds the keys queued between two polls.
const eventBuffer = 64

// shutdownTimeout bounds how long teardown waits for the terminal.
const shutdownTimeout = 2 * time.Second

// startTimeout bounds how long acquisition waits for the terminal.
const startTimeout = 5 * time.Second

var (
	// ErrClosed is returned when the display is used without an open pair.
	ErrClosed = errors.New("tui: no surface pair")

	// ErrProgramExited is returned by Swap once the terminal program ended.
	ErrProgramExited = errors.New("tui: terminal program exited")
)

// Display is a present.Display backed by a Bubble Tea program.
//
// Surfaces are only touched by the goroutine running the present loop.
// Swap renders the new front surface to a string and hands that string to
// the program, so the terminal side never reads a surface.
type Display struct {
	title    string
	keys     input.Bindings
	showHelp bool
	renderer *lipgloss.Renderer
	logger   *log.Logger
	progOpts []tea.ProgramOption

	program  *tea.Program
	run      func() (tea.Model, error)
	external bool // program lifecycle owned by the caller

	events    chan input.RawEvent
	closeReq  chan struct{}
	closeOnce sync.Once
	closeSent bool
	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
	doneOnce  sync.Once
	runErr    error

	front  *core.Surface
	back   *core.Surface
	handle present.Handle
	open   bool
}

// Option configures a Display.
type Option func(*Display)

// WithTitle sets the terminal title prefix.
func WithTitle(title string) Option {
	return func(d *Display) { d.title = title }
}

// WithBindings sets the keys shown in the help bar.
func WithBindings(b input.Bindings) Option {
	return func(d *Display) { d.keys = b }
}

// WithHelp toggles the help bar under the frame.
func WithHelp(show bool) Option {
	return func(d *Display) { d.showHelp = show }
}

// WithRenderer sets the lipgloss renderer used to encode frames.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(d *Display) { d.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Display) { d.logger = l }
}

// WithProgramOptions adds Bubble Tea program options.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(d *Display) { d.progOpts = append(d.progOpts, opts...) }
}

func newDisplay(opts []Option) *Display {
	d := &Display{
		title:    "Sunset Animation",
		keys:     input.DefaultBindings(),
		showHelp: true,
		logger:   log.New(io.Discard),
		events:   make(chan input.RawEvent, eventBuffer),
		closeReq: make(chan struct{}),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.renderer == nil {
		d.renderer = lipgloss.DefaultRenderer()
	}

	model := NewModel(d.keys, d.showHelp, d.emit).OnReady(d.markReady)
	d.program = tea.NewProgram(model, d.progOpts...)
	d.run = d.program.Run
	return d
}

// NewDisplay creates a display for the local terminal. The program starts
// in the alternate screen when the surface pair is created.
func NewDisplay(opts ...Option) *Display {
	opts = append([]Option{WithProgramOptions(tea.WithAltScreen())}, opts...)
	return newDisplay(opts)
}

// NewExternalDisplay creates a display whose program is run by the caller,
// such as the SSH middleware. The display treats ctx ending as the program
// having exited.
func NewExternalDisplay(ctx context.Context, opts ...Option) *Display {
	d := newDisplay(opts)
	d.external = true
	go func() {
		<-ctx.Done()
		d.finish(nil)
	}()
	return d
}

// Program returns the underlying Bubble Tea program.
func (d *Display) Program() *tea.Program {
	return d.program
}

// CreateSurfacePair implements present.Display.
// It returns once the terminal program is processing messages, or with an
// error if the program ended or never started.
func (d *Display) CreateSurfacePair(width, height int) (present.Handle, error) {
	if d.open {
		return 0, fmt.Errorf("tui: surface pair %d already open", d.handle)
	}
	select {
	case <-d.done:
		return 0, d.exitErr()
	default:
	}

	if !d.external {
		go func() {
			_, err := d.run()
			d.finish(err)
		}()
	}

	select {
	case <-d.ready:
	case <-d.done:
		return 0, d.exitErr()
	case <-time.After(startTimeout):
		if !d.external {
			d.program.Kill()
		}
		return 0, fmt.Errorf("tui: terminal did not start within %s", startTimeout)
	}

	d.front = core.NewSurface(width, height)
	d.back = core.NewSurface(width, height)
	d.handle++
	d.open = true

	d.program.Send(titleMsg(fmt.Sprintf("%s (%d x %d)", d.title, width, height)))
	d.logger.Debug("surface pair created", "width", width, "height", height, "rows", RowsFor(height))
	return d.handle, nil
}

// BeginFrame implements present.Display.
func (d *Display) BeginFrame(h present.Handle) *core.Surface {
	if !d.valid(h) {
		return nil
	}
	return d.back
}

// Swap implements present.Display.
func (d *Display) Swap(h present.Handle) error {
	if !d.valid(h) {
		return ErrClosed
	}
	select {
	case <-d.done:
		return ErrProgramExited
	default:
	}

	d.front, d.back = d.back, d.front
	d.program.Send(frameMsg(RenderSurface(d.renderer, d.front)))
	return nil
}

// PollEvent implements present.Display.
func (d *Display) PollEvent() (input.RawEvent, bool) {
	select {
	case ev := <-d.events:
		return ev, true
	default:
	}

	select {
	case <-d.closeReq:
		if !d.closeSent {
			d.closeSent = true
			return input.CloseRequest(), true
		}
	default:
	}
	return input.RawEvent{}, false
}

// DestroySurfacePair implements present.Display.
// It stops the program and, for local terminals, waits for the screen to be
// restored.
func (d *Display) DestroySurfacePair(h present.Handle) error {
	if !d.valid(h) {
		return ErrClosed
	}
	d.open = false
	d.front, d.back = nil, nil

	d.program.Quit()
	if d.external {
		return nil
	}

	select {
	case <-d.done:
	case <-time.After(shutdownTimeout):
		d.program.Kill()
		return fmt.Errorf("tui: terminal did not stop within %s", shutdownTimeout)
	}
	if d.runErr != nil && !errors.Is(d.runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: terminal program: %w", d.runErr)
	}
	return nil
}

// emit is called from the program goroutine for every key.
func (d *Display) emit(ev input.RawEvent) {
	if ev.Kind == input.Close {
		d.requestClose()
		return
	}
	select {
	case d.events <- ev:
	default:
		d.logger.Warn("input queue full, dropping key", "key", ev.Key)
	}
}

func (d *Display) markReady() {
	d.readyOnce.Do(func() { close(d.ready) })
}

// exitErr describes why the program is no longer running. It must only be
// called once done is closed.
func (d *Display) exitErr() error {
	if d.runErr != nil {
		return fmt.Errorf("tui: start terminal: %w", d.runErr)
	}
	return ErrProgramExited
}

func (d *Display) requestClose() {
	d.closeOnce.Do(func() { close(d.closeReq) })
}

// finish records that the program has ended and turns it into a close
// request.
func (d *Display) finish(err error) {
	d.doneOnce.Do(func() {
		d.runErr = err
		close(d.done)
	})
	d.requestClose()
}

func (d *Display) valid(h present.Handle) bool {
	return d.open && h == d.handle
}
