// Package chat is the Bubble Tea model for the lawchat client.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiransrisai/Legal-chatbot/internal/model"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/components"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// =============================================================================
// TOP-LEVEL VIEW
// =============================================================================

// View renders the current surface.
func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	switch m.screen {
	case screenVerifying:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Checking session...")
	case screenLogin:
		return m.login.view(m.width, m.height)
	default:
		return m.chatView()
	}
}

// =============================================================================
// CHAT SURFACE
// =============================================================================

func (m Model) chatView() string {
	header := styles.HeaderStyle.Render("Legal Chatbot")
	if title := m.deps.Registry.ActiveTitle(); title != "" {
		header += styles.HintStyle.Render("  -  " + title)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.viewport.View())

	var sections []string
	sections = append(sections, header, body)

	if img := m.deps.Turns.StagedImage(); img != nil {
		chip := styles.AttachmentStyle.Render("[IMG] " + img.Name + "  (C-x to discard)")
		sections = append(sections, chip)
	}

	inputFrame := styles.InputStyle
	if m.focus == focusInput {
		inputFrame = styles.InputFocusedStyle
	}
	sections = append(sections, inputFrame.Render(m.input.View()))

	sections = append(sections, m.statusLine(), m.helpLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) statusLine() string {
	username := ""
	if sess := m.deps.Store.Current(); sess != nil {
		username = sess.Username
	}

	_, speaking := m.deps.Speech.SpeakingIndex()

	bar := components.StatusBar{
		Username:     username,
		Conversation: m.deps.Registry.ActiveTitle(),
		Busy:         m.anyBusy(),
		BusyLabel:    m.currentBusyLabel(),
		Recording:    m.deps.Recorder.Recording(),
		Speaking:     speaking,
		Error:        m.alert,
		Width:        m.width,
	}
	if bar.Busy {
		return m.spinner.View() + " " + bar.View()
	}
	return bar.View()
}

// currentBusyLabel names the dominant in-flight activity.
func (m Model) currentBusyLabel() string {
	switch {
	case m.deps.Turns.Busy():
		return "thinking"
	case m.transcribing:
		return "transcribing"
	case m.uploading:
		return "uploading"
	case m.busyLabel != "":
		return m.busyLabel
	default:
		return ""
	}
}

func (m Model) helpLine() string {
	hints := [][2]string{
		{"Enter", "send"},
		{"Tab", "pane"},
		{"C-n", "new"},
		{"C-d", "delete"},
		{"C-r", "record"},
		{"C-s", "speak"},
		{"C-l", "logout"},
		{"C-c", "quit"},
	}
	if m.deps.Turns.StagedImage() != nil {
		hints = append(hints, [2]string{"C-x", "discard image"})
	}
	return components.HelpLine(hints)
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// refreshTranscript rebuilds the viewport content from the message list.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}

	messages := m.deps.Turns.Messages()
	if len(messages) == 0 {
		m.viewport.SetContent(styles.HintStyle.Render(
			"\n  Ask a question to begin, or pick a conversation on the left.\n" +
				"  /attach <path> stages an image, /upload <path> adds a document."))
		return
	}

	speakingIndex, speaking := m.deps.Speech.SpeakingIndex()

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg, speaking && i == speakingIndex))
		b.WriteString("\n")
	}

	if related := m.relatedQuestions(); len(related) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderRelated(related))
	}

	m.viewport.SetContent(b.String())
}

// renderMessage renders one transcript entry with its label line.
func (m Model) renderMessage(msg *model.Message, speaking bool) string {
	label := msg.Role.DisplayName()
	labelStyle := styles.SystemLabelStyle
	frame := styles.SystemMessageStyle

	switch {
	case msg.IsError:
		labelStyle = styles.AssistantLabelStyle
		frame = styles.ErrorMessageStyle
	case msg.Role == model.RoleUser:
		labelStyle = styles.UserLabelStyle
		frame = styles.UserMessageStyle
	case msg.Role == model.RoleAssistant:
		labelStyle = styles.AssistantLabelStyle
		frame = styles.AssistantMessageStyle
	}

	head := labelStyle.Render(label)
	if speaking {
		head += " " + styles.SpeakingStyle.Render(styles.StatusIndicators.Speaking)
	}
	if m.deps.Config.UI.ShowTimestamps && !msg.Timestamp.IsZero() {
		head += " " + styles.TimestampStyle.Render(msg.Timestamp.Format("15:04"))
	}

	body := msg.Content
	if msg.Role == model.RoleAssistant && !msg.IsError {
		rendered := ""
		if m.renderer != nil {
			if out, err := m.renderer.Render(msg.Content); err == nil {
				rendered = strings.TrimRight(out, "\n")
			}
		}
		if rendered == "" {
			// No renderer (or a render failure): still highlight the code.
			rendered = components.ParseCodeBlocks(msg.Content, m.viewport.Width-4)
		}
		body = rendered
	}

	return head + "\n" + frame.Render(body)
}

// renderRelated renders the follow-up suggestions under the last answer.
func (m Model) renderRelated(related []string) string {
	var b strings.Builder
	b.WriteString(styles.HintStyle.Render("Follow-up questions (Tab twice, then a number or Enter):"))
	b.WriteString("\n")
	for i, q := range related {
		style := styles.RelatedQuestionStyle
		if m.focus == focusRelated && i == m.relatedCursor {
			style = styles.RelatedSelectedStyle
		}
		b.WriteString("  " + style.Render("> "+q))
		b.WriteString("\n")
	}
	return b.String()
}
