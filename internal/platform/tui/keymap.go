package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sunset/internal/input"
)

// closeKeys request a close instead of producing a key event, the way a
// window manager's close button would.
var closeKeys = map[string]bool{
	"ctrl+c": true,
	"ctrl+d": true,
}

// keyEvent translates a Bubble Tea key message into a raw event.
// Terminals only report presses, so releases are never produced here.
func keyEvent(msg tea.KeyMsg) input.RawEvent {
	k := msg.String()
	if closeKeys[k] {
		return input.CloseRequest()
	}
	return input.Press(k)
}
