// Package chat is the Bubble Tea model for the lawchat client.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP
// =============================================================================

// KeyMap defines the keyboard bindings for the chat surface.
type KeyMap struct {
	Submit       key.Binding
	Quit         key.Binding
	FocusNext    key.Binding
	NewChat      key.Binding
	DeleteChat   key.Binding
	Record       key.Binding
	SpeakLast    key.Binding
	DiscardImage key.Binding
	Logout       key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	Select       key.Binding
	Dismiss      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new conversation"),
		),
		DeleteChat: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete conversation"),
		),
		Record: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("C-r", "record voice"),
		),
		SpeakLast: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "read answer aloud"),
		),
		DiscardImage: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "discard image"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "log out"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "pgup"),
			key.WithHelp("Up", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "pgdown"),
			key.WithHelp("Down", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss"),
		),
	}
}
