package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the bindings the host handles itself. Every other key is
// delivered to the document.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default host bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// KeyName returns the event key for a key press: the typed text for
// printable keys and names such as "enter", "up" or "ctrl+a" otherwise.
func KeyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeyRunes && !msg.Alt {
		return string(msg.Runes)
	}
	return msg.String()
}
