// Package input translates raw key events into scene commands.
// Key bindings are bubbles/key bindings so the same definitions drive both
// the mapping and the help bar.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// EventKind distinguishes raw events delivered by a display.
type EventKind int

const (
	KeyPress EventKind = iota
	KeyRelease
	Close // Window or session close request
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case KeyPress:
		return "KeyPress"
	case KeyRelease:
		return "KeyRelease"
	case Close:
		return "Close"
	default:
		return "Unknown"
	}
}

// RawEvent is one event as delivered by a display.
// Key uses Bubble Tea key names ("esc", "+", "ctrl+c", ...).
type RawEvent struct {
	Kind EventKind
	Key  string
}

// Press returns a key-press event for the named key.
func Press(k string) RawEvent {
	return RawEvent{Kind: KeyPress, Key: k}
}

// Release returns a key-release event for the named key.
func Release(k string) RawEvent {
	return RawEvent{Kind: KeyRelease, Key: k}
}

// CloseRequest returns a close event.
func CloseRequest() RawEvent {
	return RawEvent{Kind: Close}
}

// String returns the key name, which is what key.Matches compares.
func (e RawEvent) String() string {
	return e.Key
}

// Command is a scene command derived from a key.
type Command int

const (
	None Command = iota
	SpeedUp
	SpeedDown
	Quit
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case None:
		return "None"
	case SpeedUp:
		return "SpeedUp"
	case SpeedDown:
		return "SpeedDown"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Bindings groups the keys for every command. It satisfies help.KeyMap.
type Bindings struct {
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// ShortHelp returns bindings for the single-line help bar.
func (b Bindings) ShortHelp() []key.Binding {
	return []key.Binding{b.Faster, b.Slower, b.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (b Bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Faster, b.Slower},
		{b.Quit},
	}
}

// DefaultBindings returns the stock key bindings.
func DefaultBindings() Bindings {
	return NewBindings(
		[]string{"+", "=", "up"},
		[]string{"-", "_", "down"},
		[]string{"esc", "q"},
	)
}

// NewBindings builds bindings from key name lists.
// The first two names of each list are shown in the help bar.
func NewBindings(faster, slower, quit []string) Bindings {
	return Bindings{
		Faster: binding(faster, "faster"),
		Slower: binding(slower, "slower"),
		Quit:   binding(quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	shown := keys
	if len(shown) > 2 {
		shown = shown[:2]
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(shown, "/"), desc),
	)
}

// Mapper translates raw events into commands.
type Mapper struct {
	keys Bindings
}

// NewMapper creates a mapper for the given bindings.
func NewMapper(b Bindings) *Mapper {
	return &Mapper{keys: b}
}

// DefaultMapper creates a mapper with DefaultBindings.
func DefaultMapper() *Mapper {
	return NewMapper(DefaultBindings())
}

// Bindings returns the mapper's key bindings.
func (m *Mapper) Bindings() Bindings {
	return m.keys
}

// Map returns the command for ev. Only key presses produce commands;
// releases, close requests and unbound keys map to None.
func (m *Mapper) Map(ev RawEvent) Command {
	if ev.Kind != KeyPress {
		return None
	}

	switch {
	case key.Matches(ev, m.keys.Quit):
		return Quit
	case key.Matches(ev, m.keys.Faster):
		return SpeedUp
	case key.Matches(ev, m.keys.Slower):
		return SpeedDown
	}
	return None
}
