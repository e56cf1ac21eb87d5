// Package keymap defines the keybindings for the chat interface.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the chat bindings. Send and Select share enter; which one
// applies depends on whether the rating menu is open.
type KeyMap struct {
	Quit     key.Binding
	Send     key.Binding
	Rate     key.Binding
	Cancel   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Rate:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "rate answer")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "move")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// ShortHelp lists the hints shown in the status bar during normal chat.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Rate, k.Quit}
}

// RatingHelp lists the hints shown while the rating menu is open.
func (k *KeyMap) RatingHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Cancel}
}
