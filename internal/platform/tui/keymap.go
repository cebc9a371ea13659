package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-paddle/internal/core"
)

// KeyMap defines the in-game key bindings.
// It translates Bubble Tea key messages to intents and feeds the help bar.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Reset      key.Binding
	Pause      key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings: arrows or a/d (h/l) to move,
// space to restart after a loss.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Reset: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Reset, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Reset},
		{k.Pause, k.Screenshot, k.Quit},
	}
}

// Intent maps a key message to an intent. Reset is only produced once the
// round is over; during play the space bar does nothing.
func (k KeyMap) Intent(msg tea.KeyMsg, gameOver bool) core.Intent {
	switch {
	case key.Matches(msg, k.Quit):
		return core.IntentQuit
	case key.Matches(msg, k.Left):
		return core.IntentMoveLeft
	case key.Matches(msg, k.Right):
		return core.IntentMoveRight
	case key.Matches(msg, k.Pause):
		return core.IntentPause
	case key.Matches(msg, k.Reset):
		if gameOver {
			return core.IntentReset
		}
	}
	return core.IntentNone
}
