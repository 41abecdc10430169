// Package tui presents the sunset in a terminal through Bubble Tea.
// The present loop draws and swaps on its own goroutine; the Bubble Tea
// program only receives finished frames as strings and forwards keys back.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sunset/internal/input"
)

// frameMsg carries a rendered front surface.
type frameMsg string

// titleMsg asks the terminal to change its title.
type titleMsg string

// readyMsg is the first message of a running program.
type readyMsg struct{}

// Model is the Bubble Tea model that shows presented frames.
type Model struct {
	frame    string
	help     help.Model
	keys     input.Bindings
	showHelp bool
	emit     func(input.RawEvent)
	ready    func()
}

// NewModel creates a model that passes raw events to emit.
func NewModel(keys input.Bindings, showHelp bool, emit func(input.RawEvent)) Model {
	return Model{
		help:     help.New(),
		keys:     keys,
		showHelp: showHelp,
		emit:     emit,
	}
}

// OnReady returns a copy of the model that calls fn once the program's
// event loop is processing messages.
func (m Model) OnReady(fn func()) Model {
	m.ready = fn
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return readyMsg{} }
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case readyMsg:
		if m.ready != nil {
			m.ready()
		}

	case frameMsg:
		m.frame = string(msg)

	case titleMsg:
		return m, tea.SetWindowTitle(string(msg))

	case tea.KeyMsg:
		if m.emit != nil {
			m.emit(keyEvent(msg))
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the latest frame with the help bar beneath it.
func (m Model) View() string {
	if !m.showHelp {
		return m.frame
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteRune('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
