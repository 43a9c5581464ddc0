// Package components provides reusable UI pieces for the lawchat TUI.
package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// =============================================================================
// BUSY SPINNER
// =============================================================================

// Spinner shows progress while a turn, upload, or transcription is on the
// wire. It wraps the bubbles spinner with a label.
type Spinner struct {
	inner spinner.Model
	label string
}

// NewSpinner creates a spinner with the house styling.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Gold)
	return Spinner{inner: s}
}

// SetLabel sets the text shown next to the spinner.
func (s *Spinner) SetLabel(label string) {
	s.label = label
}

// Tick starts the spinner animation.
func (s Spinner) Tick() tea.Cmd {
	return s.inner.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.inner, cmd = s.inner.Update(msg)
	return s, cmd
}

// View renders the spinner with its label.
func (s Spinner) View() string {
	if s.label == "" {
		return s.inner.View()
	}
	return s.inner.View() + " " + styles.HintStyle.Render(s.label)
}
