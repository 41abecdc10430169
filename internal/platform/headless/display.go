// Package headless provides an in-memory double-buffered display.
// It backs the snapshot command and drives the present loop in tests:
// events are scripted up front and every presented frame can be observed
// through a hook.
package headless

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/present"
)

// ErrClosed is returned when the display is used without an open pair.
var ErrClosed = errors.New("headless: no surface pair")

// Call names recorded by the display, in order.
const (
	CallCreate  = "create"
	CallBegin   = "begin"
	CallSwap    = "swap"
	CallDestroy = "destroy"
)

// PresentFunc observes a frame right after it became the front surface.
// frame counts successful swaps starting at 1. The surface must not be
// retained; copy it if needed.
type PresentFunc func(frame int, front *core.Surface)

// Display is a headless present.Display.
type Display struct {
	front  *core.Surface
	back   *core.Surface
	handle present.Handle
	open   bool

	queue      []input.RawEvent
	scheduled  map[int][]input.RawEvent
	frameLimit int
	closeSent  bool

	onPresent  PresentFunc
	swapErr    func(frame int) error
	createErr  error
	destroyErr error

	swaps int
	calls []string
}

// Option configures a Display.
type Option func(*Display)

// WithEvents queues events that are pending before the first frame.
func WithEvents(evs ...input.RawEvent) Option {
	return func(d *Display) { d.queue = append(d.queue, evs...) }
}

// WithEventsAfter queues events that become pending once frame swaps have
// completed.
func WithEventsAfter(frame int, evs ...input.RawEvent) Option {
	return func(d *Display) {
		d.scheduled[frame] = append(d.scheduled[frame], evs...)
	}
}

// WithFrameLimit delivers a close request after n presented frames.
func WithFrameLimit(n int) Option {
	return func(d *Display) { d.frameLimit = n }
}

// WithPresentHook observes every presented frame.
func WithPresentHook(fn PresentFunc) Option {
	return func(d *Display) { d.onPresent = fn }
}

// WithSwapError makes Swap fail whenever fn returns an error for the frame
// about to be presented.
func WithSwapError(fn func(frame int) error) Option {
	return func(d *Display) { d.swapErr = fn }
}

// WithCreateError makes CreateSurfacePair fail.
func WithCreateError(err error) Option {
	return func(d *Display) { d.createErr = err }
}

// WithDestroyError makes DestroySurfacePair fail after releasing.
func WithDestroyError(err error) Option {
	return func(d *Display) { d.destroyErr = err }
}

// New creates a headless display.
func New(opts ...Option) *Display {
	d := &Display{scheduled: make(map[int][]input.RawEvent)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// CreateSurfacePair implements present.Display.
func (d *Display) CreateSurfacePair(width, height int) (present.Handle, error) {
	d.calls = append(d.calls, CallCreate)
	if d.createErr != nil {
		return 0, d.createErr
	}
	if d.open {
		return 0, fmt.Errorf("headless: surface pair %d already open", d.handle)
	}

	d.front = core.NewSurface(width, height)
	d.back = core.NewSurface(width, height)
	d.handle++
	d.open = true
	d.enqueueScheduled()
	return d.handle, nil
}

// BeginFrame implements present.Display.
func (d *Display) BeginFrame(h present.Handle) *core.Surface {
	d.calls = append(d.calls, CallBegin)
	if !d.valid(h) {
		return nil
	}
	return d.back
}

// Swap implements present.Display.
func (d *Display) Swap(h present.Handle) error {
	d.calls = append(d.calls, CallSwap)
	if !d.valid(h) {
		return ErrClosed
	}
	if d.swapErr != nil {
		if err := d.swapErr(d.swaps + 1); err != nil {
			return err
		}
	}

	d.front, d.back = d.back, d.front
	d.swaps++
	if d.onPresent != nil {
		d.onPresent(d.swaps, d.front)
	}
	d.enqueueScheduled()
	return nil
}

// PollEvent implements present.Display.
func (d *Display) PollEvent() (input.RawEvent, bool) {
	if len(d.queue) > 0 {
		ev := d.queue[0]
		d.queue = d.queue[1:]
		return ev, true
	}
	if d.frameLimit > 0 && d.swaps >= d.frameLimit && !d.closeSent {
		d.closeSent = true
		return input.CloseRequest(), true
	}
	return input.RawEvent{}, false
}

// DestroySurfacePair implements present.Display.
func (d *Display) DestroySurfacePair(h present.Handle) error {
	d.calls = append(d.calls, CallDestroy)
	if !d.valid(h) {
		return ErrClosed
	}
	d.open = false
	d.front, d.back = nil, nil
	return d.destroyErr
}

// Front returns the visible surface, or nil when closed.
func (d *Display) Front() *core.Surface {
	return d.front
}

// Swaps returns the number of successful swaps.
func (d *Display) Swaps() int {
	return d.swaps
}

// Calls returns the recorded call names in order.
func (d *Display) Calls() []string {
	return append([]string(nil), d.calls...)
}

func (d *Display) valid(h present.Handle) bool {
	return d.open && h == d.handle
}

func (d *Display) enqueueScheduled() {
	if evs, ok := d.scheduled[d.swaps]; ok {
		d.queue = append(d.queue, evs...)
		delete(d.scheduled, d.swaps)
	}
}
