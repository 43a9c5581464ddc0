// Package styles provides the visual styling system for the lawchat TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME APPLICATION
// =============================================================================

// ApplyTheme pins the light/dark rendering of all AdaptiveColors. "auto"
// keeps terminal background detection; "light" and "dark" force one side.
func ApplyTheme(theme string) {
	switch strings.ToLower(theme) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		lipgloss.SetHasDarkBackground(termenv.HasDarkBackground())
	}
}

// GlamourStyle returns the glamour style name matching the pinned theme.
func GlamourStyle() string {
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// =============================================================================
// CHROME STYLES
// =============================================================================

// HeaderStyle renders the title bar.
var HeaderStyle = lipgloss.NewStyle().
	Foreground(Navy).
	Bold(true).
	Padding(0, 1)

// StatusBarStyle renders the bottom status line.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Background(SurfaceDim).
	Padding(0, 1)

// StatusErrorStyle marks a status bar error segment.
var StatusErrorStyle = lipgloss.NewStyle().
	Foreground(Rose).
	Bold(true)

// StatusBusyStyle marks the in-flight turn segment.
var StatusBusyStyle = lipgloss.NewStyle().
	Foreground(Amber)

// =============================================================================
// SIDEBAR STYLES
// =============================================================================

// SidebarStyle frames the conversation list.
var SidebarStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderRight(true).
	BorderForeground(Overlay).
	Padding(0, 1)

// SidebarTitleStyle renders the conversation list heading.
var SidebarTitleStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Bold(true)

// SidebarItemStyle renders one conversation entry.
var SidebarItemStyle = lipgloss.NewStyle().
	Foreground(TextPrimary)

// SidebarActiveStyle renders the active conversation entry.
var SidebarActiveStyle = lipgloss.NewStyle().
	Foreground(Gold).
	Bold(true)

// SidebarMetaStyle renders message counts and timestamps.
var SidebarMetaStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// =============================================================================
// TRANSCRIPT STYLES
// =============================================================================

// UserLabelStyle renders the "You" label on user messages.
var UserLabelStyle = lipgloss.NewStyle().
	Foreground(UserBubbleFg).
	Bold(true)

// AssistantLabelStyle renders the "Assistant" label.
var AssistantLabelStyle = lipgloss.NewStyle().
	Foreground(AssistantBubbleFg).
	Bold(true)

// SystemLabelStyle renders the "System" label on upload progress messages.
var SystemLabelStyle = lipgloss.NewStyle().
	Foreground(SystemBubbleFg).
	Bold(true)

// UserMessageStyle frames a user message.
var UserMessageStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(UserBubbleBorder).
	PaddingLeft(1)

// AssistantMessageStyle frames an assistant message.
var AssistantMessageStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(AssistantBubbleBorder).
	PaddingLeft(1)

// SystemMessageStyle frames a system message.
var SystemMessageStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(SystemBubbleBorder).
	PaddingLeft(1).
	Foreground(SystemBubbleFg)

// ErrorMessageStyle frames a failed turn recorded inline.
var ErrorMessageStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderLeft(true).
	BorderForeground(ErrorBubbleBorder).
	PaddingLeft(1).
	Foreground(ErrorBubbleFg)

// TimestampStyle renders message timestamps.
var TimestampStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// RelatedQuestionStyle renders one follow-up suggestion.
var RelatedQuestionStyle = lipgloss.NewStyle().
	Foreground(Gold)

// RelatedSelectedStyle renders the highlighted follow-up suggestion.
var RelatedSelectedStyle = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Gold).
	Bold(true)

// SpeakingStyle marks the message currently being narrated.
var SpeakingStyle = lipgloss.NewStyle().
	Foreground(Amber).
	Bold(true)

// =============================================================================
// INPUT & FORM STYLES
// =============================================================================

// InputStyle frames the input field.
var InputStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(Overlay).
	Padding(0, 1)

// InputFocusedStyle frames the input field when focused.
var InputFocusedStyle = InputStyle.
	BorderForeground(Gold)

// AttachmentStyle renders the staged image chip above the input.
var AttachmentStyle = lipgloss.NewStyle().
	Foreground(TextInverse).
	Background(Navy).
	Padding(0, 1)

// FormLabelStyle renders login/register field labels.
var FormLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Bold(true)

// FormErrorStyle renders login/register error lines.
var FormErrorStyle = lipgloss.NewStyle().
	Foreground(Rose)

// HintStyle renders key hints and placeholders.
var HintStyle = lipgloss.NewStyle().
	Foreground(TextMuted)
