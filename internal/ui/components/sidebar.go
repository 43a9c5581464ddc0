// Package components provides reusable UI pieces for the lawchat TUI.
package components

import (
	"strings"

	"github.com/kiransrisai/Legal-chatbot/internal/model"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
	"github.com/kiransrisai/Legal-chatbot/internal/util"
)

// =============================================================================
// CONVERSATION SIDEBAR
// =============================================================================

// Sidebar renders the conversation list. The cursor moves independently of
// the active conversation so the user can browse without switching.
type Sidebar struct {
	Summaries []model.ConversationSummary
	ActiveID  string
	Cursor    int
	Width     int
	Height    int
}

// ClampCursor keeps the cursor inside the list after refreshes and deletes.
func (s *Sidebar) ClampCursor() {
	if s.Cursor >= len(s.Summaries) {
		s.Cursor = len(s.Summaries) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// CursorID returns the conversation id under the cursor, or "".
func (s Sidebar) CursorID() string {
	if s.Cursor < 0 || s.Cursor >= len(s.Summaries) {
		return ""
	}
	return s.Summaries[s.Cursor].ID
}

// View renders the sidebar pane.
func (s Sidebar) View() string {
	innerWidth := s.Width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	var b strings.Builder
	b.WriteString(styles.SidebarTitleStyle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(s.Summaries) == 0 {
		b.WriteString(styles.HintStyle.Render("No conversations yet."))
	}

	// Scroll the window so the cursor stays visible.
	visible := s.Height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.Cursor >= visible {
		start = s.Cursor - visible + 1
	}
	end := start + visible
	if end > len(s.Summaries) {
		end = len(s.Summaries)
	}

	for i := start; i < end; i++ {
		sum := s.Summaries[i]
		title := util.TruncateWidth(sum.DisplayTitle(), innerWidth)

		style := styles.SidebarItemStyle
		prefix := "  "
		if sum.ID == s.ActiveID {
			style = styles.SidebarActiveStyle
			prefix = "* "
		}
		if i == s.Cursor {
			prefix = "> "
		}

		b.WriteString(style.Render(prefix + title))
		b.WriteString("\n")
		meta := util.IntToString(sum.MessageCount) + " messages"
		b.WriteString(styles.SidebarMetaStyle.Render("    " + meta))
		b.WriteString("\n")
	}

	return styles.SidebarStyle.Width(s.Width).Height(s.Height).Render(b.String())
}
