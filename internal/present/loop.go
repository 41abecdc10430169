// Package present runs the animation: it drains input, advances the scene,
// draws the layers into the display's back surface, swaps, and paces.
//
// Everything happens on the calling goroutine in that fixed order, so no
// layer observes a scene mutated mid-frame and no swap exposes a partially
// drawn surface.
package present

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/render"
	"github.com/vovakirdan/tui-sunset/internal/scene"
)

// Exit codes returned by Run.
const (
	ExitOK                 = 0
	ExitAcquisitionFailure = 1
)

// DefaultInterval is the pacing sleep between frames.
const DefaultInterval = 10 * time.Millisecond

// Error taxonomy. Acquisition failures are fatal; swap failures drop a
// frame; teardown failures are logged while the loop exits anyway.
var (
	ErrAcquisition = errors.New("surface acquisition failed")
	ErrSwap        = errors.New("swap failed")
	ErrTeardown    = errors.New("teardown failed")
)

// Handle identifies a surface pair owned by a Display.
type Handle uint64

// Display is the windowing collaborator. It owns the physical front and
// back surfaces; the loop only draws into the back surface and asks for a
// swap once drawing is complete.
type Display interface {
	// CreateSurfacePair allocates the front/back pair and makes it visible.
	CreateSurfacePair(width, height int) (Handle, error)

	// BeginFrame returns the back surface to draw the next frame into.
	BeginFrame(h Handle) *core.Surface

	// Swap presents the back surface and recycles the old front.
	Swap(h Handle) error

	// PollEvent returns the next pending event without blocking.
	// Close requests arrive as input.Close events.
	PollEvent() (input.RawEvent, bool)

	// DestroySurfacePair releases the pair.
	DestroySurfacePair(h Handle) error
}

// State is the loop's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Terminating
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Terminating:
		return "Terminating"
	default:
		return "Unknown"
	}
}

// Stats counts what the loop did.
type Stats struct {
	Frames   int // Frames presented
	Dropped  int // Frames lost to swap failures
	Commands int // Non-None commands applied
}

// SceneFactory builds the scene state and layer stack for a surface size.
type SceneFactory func(width, height int) (*scene.State, render.Stack)

// DefaultSceneFactory scales the stock parameters and style to the surface
// height.
func DefaultSceneFactory(width, height int) (*scene.State, render.Stack) {
	f := float64(height) / scene.ReferenceHeight
	st := scene.NewState(scene.DefaultParams().Scale(f), width, height)
	return st, render.NewStack(render.DefaultPalette(), render.DefaultStyle().Scale(f))
}

// Loop is the present loop state machine.
type Loop struct {
	display  Display
	logger   *log.Logger
	mapper   *input.Mapper
	factory  SceneFactory
	interval time.Duration
	dt       float64
	sleep    func(time.Duration)

	state  State
	scene  *scene.State
	layers render.Stack
	stats  Stats
	err    error
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(lp *Loop) { lp.logger = l }
}

// WithMapper sets the key mapper.
func WithMapper(m *input.Mapper) Option {
	return func(lp *Loop) { lp.mapper = m }
}

// WithScene sets the scene factory.
func WithScene(f SceneFactory) Option {
	return func(lp *Loop) { lp.factory = f }
}

// WithInterval sets the pacing sleep. Zero disables pacing.
func WithInterval(d time.Duration) Option {
	return func(lp *Loop) { lp.interval = d }
}

// WithFrameStep sets the dt passed to Advance each frame.
func WithFrameStep(dt float64) Option {
	return func(lp *Loop) { lp.dt = dt }
}

// WithSleep replaces time.Sleep, for tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(lp *Loop) { lp.sleep = fn }
}

// NewLoop creates an idle loop bound to a display.
func NewLoop(d Display, opts ...Option) *Loop {
	l := &Loop{
		display:  d,
		logger:   log.New(io.Discard),
		mapper:   input.DefaultMapper(),
		factory:  DefaultSceneFactory,
		interval: DefaultInterval,
		dt:       1,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run is shorthand for NewLoop(d, opts...).Run(ctx, width, height).
func Run(ctx context.Context, d Display, width, height int, opts ...Option) int {
	return NewLoop(d, opts...).Run(ctx, width, height)
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Stats returns frame counters.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Scene returns the scene being animated, or nil before Run.
func (l *Loop) Scene() *scene.State {
	return l.scene
}

// Err returns the fatal error that stopped Run, if any.
func (l *Loop) Err() error {
	return l.err
}

// Run acquires a surface pair, animates until a quit or close request and
// tears down. It returns ExitOK on a graceful stop and
// ExitAcquisitionFailure when the display could not be set up.
// Cancelling ctx counts as a close request.
func (l *Loop) Run(ctx context.Context, width, height int) int {
	if width <= 0 || height <= 0 {
		l.err = fmt.Errorf("%w: invalid surface size %dx%d", ErrAcquisition, width, height)
		l.logger.Error("cannot start animation", "error", l.err)
		return ExitAcquisitionFailure
	}

	h, err := l.display.CreateSurfacePair(width, height)
	if err != nil {
		l.err = fmt.Errorf("%w: %w", ErrAcquisition, err)
		l.logger.Error("cannot start animation", "error", l.err)
		return ExitAcquisitionFailure
	}

	l.scene, l.layers = l.factory(width, height)
	l.setState(Running)
	l.logger.Info("animation started", "width", width, "height", height, "interval", l.interval)

	for l.state == Running {
		l.drainInput(ctx)
		if l.state != Running {
			break
		}

		l.scene.Advance(l.dt)
		l.renderFrame(h)

		if l.interval > 0 {
			l.sleep(l.interval)
		}
	}

	l.teardown(h)
	return ExitOK
}

// drainInput applies every pending event. A quit or close request moves
// the loop to Terminating and leaves the rest of the queue unread.
func (l *Loop) drainInput(ctx context.Context) {
	select {
	case <-ctx.Done():
		l.logger.Debug("context done", "cause", context.Cause(ctx))
		l.setState(Terminating)
		return
	default:
	}

	for {
		ev, ok := l.display.PollEvent()
		if !ok {
			return
		}
		if ev.Kind == input.Close {
			l.logger.Debug("close requested")
			l.setState(Terminating)
			return
		}

		cmd := l.mapper.Map(ev)
		if cmd == input.None {
			continue
		}
		l.stats.Commands++

		switch cmd {
		case input.SpeedUp:
			l.logger.Debug("speed up", "speed", l.scene.ApplySpeedDelta(1))
		case input.SpeedDown:
			l.logger.Debug("speed down", "speed", l.scene.ApplySpeedDelta(-1))
		case input.Quit:
			l.logger.Debug("quit requested", "key", ev.Key)
			l.setState(Terminating)
			return
		}
	}
}

// renderFrame draws every layer into the back surface, then swaps.
func (l *Loop) renderFrame(h Handle) {
	back := l.display.BeginFrame(h)
	if back == nil {
		l.dropFrame(errors.New("no back surface"))
		return
	}

	back.Clear()
	l.layers.Draw(back, l.scene)

	if err := l.display.Swap(h); err != nil {
		l.dropFrame(err)
		return
	}
	l.stats.Frames++
}

func (l *Loop) dropFrame(cause error) {
	l.stats.Dropped++
	l.logger.Warn("dropping frame",
		"error", fmt.Errorf("%w: %w", ErrSwap, cause),
		"dropped", l.stats.Dropped,
	)
}

func (l *Loop) teardown(h Handle) {
	if err := l.display.DestroySurfacePair(h); err != nil {
		l.logger.Error("releasing surfaces", "error", fmt.Errorf("%w: %w", ErrTeardown, err))
	}
	l.logger.Info("animation stopped",
		"frames", l.stats.Frames,
		"dropped", l.stats.Dropped,
		"cycles", l.scene.Cycles(),
	)
}

func (l *Loop) setState(s State) {
	if l.state == s {
		return
	}
	l.logger.Debug("state change", "from", l.state, "to", s)
	l.state = s
}
