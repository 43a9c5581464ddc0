// Package components provides reusable UI pieces for the lawchat TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
	"github.com/kiransrisai/Legal-chatbot/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusBar is the single-line footer summarizing session and activity
// state.
type StatusBar struct {
	Username     string
	Conversation string
	Busy         bool
	BusyLabel    string
	Recording    bool
	Speaking     bool
	Error        string
	Width        int
}

// View renders the status bar at the configured width.
func (s StatusBar) View() string {
	var segments []string

	if s.Username != "" {
		segments = append(segments, s.Username)
	}
	if s.Conversation != "" {
		segments = append(segments, util.TruncateWidth(s.Conversation, 30))
	}
	if s.Busy {
		label := s.BusyLabel
		if label == "" {
			label = "working"
		}
		segments = append(segments, styles.StatusBusyStyle.Render(label+"..."))
	}
	if s.Recording {
		segments = append(segments, styles.StatusBusyStyle.Render(styles.StatusIndicators.Recording))
	}
	if s.Speaking {
		segments = append(segments, styles.StatusBusyStyle.Render(styles.StatusIndicators.Speaking))
	}
	if s.Error != "" {
		segments = append(segments, styles.StatusErrorStyle.Render(util.TruncateWidth(s.Error, 60)))
	}

	line := strings.Join(segments, "  |  ")
	if s.Width > 0 {
		return styles.StatusBarStyle.Width(s.Width).Render(line)
	}
	return styles.StatusBarStyle.Render(line)
}

// HelpLine renders the key hints under the status bar.
func HelpLine(hints [][2]string) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts, lipgloss.NewStyle().Foreground(styles.TextSecondary).Bold(true).Render(h[0])+
			" "+styles.HintStyle.Render(h[1]))
	}
	return styles.HintStyle.Render(strings.Join(parts, "  "))
}
