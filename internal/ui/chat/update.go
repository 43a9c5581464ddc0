// Package chat is the Bubble Tea model for the lawchat client.
package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/model"
	"github.com/kiransrisai/Legal-chatbot/internal/recorder"
	"github.com/kiransrisai/Legal-chatbot/internal/turn"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// =============================================================================
// REDUCER
// =============================================================================

// Update is the reducer: every state transition in the client happens here,
// on the single event loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.anyBusy() {
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	// ----- auth -----

	case SessionVerifiedMsg:
		return m.handleSessionVerified(msg)

	case LoginResultMsg:
		return m.handleAuthResult(msg.Session != nil, msg.Error)

	case RegisterResultMsg:
		return m.handleAuthResult(msg.Session != nil, msg.Error)

	case LogoutDoneMsg:
		m.resetAll()
		return m, nil

	// ----- conversations -----

	case ConversationsMsg:
		return m.handleConversations(msg)

	case HistoryMsg:
		return m.handleHistory(msg)

	case ConversationCreatedMsg:
		return m.handleConversationCreated(msg)

	case ConversationDeletedMsg:
		return m.handleConversationDeleted(msg)

	// ----- turns -----

	case TurnResultMsg:
		return m.handleTurnResult(msg)

	// ----- side flows -----

	case UploadResultMsg:
		m.uploading = false
		if msg.Error != nil {
			if m.handleAuthRejection(msg.Error) {
				return m, nil
			}
			m.deps.Turns.FailUpload(msg.Name, msg.Error)
		} else {
			m.deps.Turns.CompleteUpload(msg.Message)
		}
		m.refreshTranscript()
		return m, nil

	case RecordingDoneMsg:
		if msg.Error != nil {
			m.alert = "Recording failed: " + msg.Error.Error()
			return m, nil
		}
		if len(msg.Audio) == 0 {
			m.alert = "Nothing was recorded."
			return m, nil
		}
		m.transcribing = true
		return m, tea.Batch(transcribeCmd(m.deps.Client, msg.Audio), m.spinner.Tick())

	case TranscriptionMsg:
		m.transcribing = false
		if msg.Error != nil {
			if m.handleAuthRejection(msg.Error) {
				return m, nil
			}
			m.alert = "Transcription failed: " + errorLine(msg.Error)
			return m, nil
		}
		m.input.SetValue(turn.MergeTranscription(m.input.Value(), msg.Text))
		m.input.CursorEnd()
		return m, nil

	case SpeechDoneMsg:
		applied := m.deps.Speech.Finished(msg.Generation)
		if msg.Error != nil && applied {
			m.alert = "Speech failed: " + msg.Error.Error()
		}
		m.refreshTranscript()
		return m, nil

	// ----- config -----

	case ConfigReloadedMsg:
		m.deps.Config = msg.Config
		m.deps.Client.SetBaseURL(msg.Config.Backend.URL)
		styles.ApplyTheme(msg.Config.UI.Theme)
		if m.ready {
			m.resize(m.width, m.height)
		}
		return m, watchConfigCmd(m.deps.ConfigUpdates)
	}

	// Everything else (cursor blinks and the like) belongs to the widgets.
	if m.screen == screenLogin {
		return m, m.login.update(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// anyBusy reports whether anything is animating the spinner.
func (m Model) anyBusy() bool {
	return m.deps.Turns.Busy() || m.uploading || m.transcribing || m.login.busy
}

// errorLine extracts the server's error text, falling back to the Go error.
func errorLine(err error) string {
	if text := api.ServerText(err); text != "" {
		return text
	}
	return err.Error()
}

// =============================================================================
// AUTH TRANSITIONS
// =============================================================================

func (m Model) handleSessionVerified(msg SessionVerifiedMsg) (tea.Model, tea.Cmd) {
	if msg.Result == auth.Authenticated {
		return m.enterChat()
	}
	m.screen = screenLogin
	return m, nil
}

// handleAuthResult lands both login and register completions.
func (m Model) handleAuthResult(ok bool, err error) (tea.Model, tea.Cmd) {
	m.login.reset()
	if err != nil {
		m.login.errText = errorLine(err)
		return m, nil
	}
	if !ok {
		m.login.errText = "Sign-in failed. Please try again."
		return m, nil
	}
	return m.enterChat()
}

// enterChat switches to the chat surface and fetches the conversation list.
func (m Model) enterChat() (tea.Model, tea.Cmd) {
	m.screen = screenChat
	m.focus = focusInput
	m.input.Focus()
	return m, listConversationsCmd(m.deps.Client)
}

// =============================================================================
// CONVERSATION TRANSITIONS
// =============================================================================

func (m Model) handleConversations(msg ConversationsMsg) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		if m.handleAuthRejection(msg.Error) {
			return m, nil
		}
		m.alert = "Could not load conversations: " + errorLine(msg.Error)
		return m, nil
	}
	m.deps.Registry.SetSummaries(msg.Summaries)
	m.syncSidebar()
	return m, nil
}

func (m Model) handleHistory(msg HistoryMsg) (tea.Model, tea.Cmd) {
	m.busyLabel = ""
	if msg.Error != nil {
		if m.handleAuthRejection(msg.Error) {
			return m, nil
		}
		m.alert = "Could not open conversation: " + errorLine(msg.Error)
		return m, nil
	}

	// Activate only after the history arrives; switching away mid-fetch
	// means a later activation wins.
	m.deps.Speech.Silence()
	m.deps.Registry.Activate(msg.ID)
	m.deps.Turns.SetHistory(msg.Messages)
	m.relatedCursor = 0
	m.syncSidebar()
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) handleConversationCreated(msg ConversationCreatedMsg) (tea.Model, tea.Cmd) {
	m.busyLabel = ""
	if msg.Error != nil {
		if m.handleAuthRejection(msg.Error) {
			return m, nil
		}
		// Creation failed: fall back to the draftless state rather than
		// pointing at an id the server never minted.
		m.deps.Registry.Deactivate()
		m.deps.Turns.ClearMessages()
		m.alert = "Could not create a conversation: " + errorLine(msg.Error)
		m.syncSidebar()
		m.refreshTranscript()
		return m, nil
	}

	m.deps.Speech.Silence()
	m.deps.Registry.Activate(msg.ID)
	m.deps.Turns.ClearMessages()
	m.relatedCursor = 0
	m.refreshTranscript()
	return m, listConversationsCmd(m.deps.Client)
}

func (m Model) handleConversationDeleted(msg ConversationDeletedMsg) (tea.Model, tea.Cmd) {
	m.busyLabel = ""
	if msg.Error != nil {
		if m.handleAuthRejection(msg.Error) {
			return m, nil
		}
		m.alert = "Could not delete conversation: " + errorLine(msg.Error)
		return m, nil
	}

	if m.deps.Registry.ApplyDelete(msg.ID) {
		m.deps.Speech.Silence()
		m.deps.Turns.ClearMessages()
		m.refreshTranscript()
	}
	m.syncSidebar()
	// The server is the authority; always refresh after a delete.
	return m, listConversationsCmd(m.deps.Client)
}

// syncSidebar mirrors registry state into the sidebar widget.
func (m *Model) syncSidebar() {
	m.sidebar.Summaries = m.deps.Registry.Summaries()
	m.sidebar.ActiveID = m.deps.Registry.ActiveID()
	m.sidebar.ClampCursor()
}

// =============================================================================
// TURN TRANSITIONS
// =============================================================================

func (m Model) handleTurnResult(msg TurnResultMsg) (tea.Model, tea.Cmd) {
	if msg.Error != nil {
		if m.handleAuthRejection(msg.Error) {
			return m, nil
		}
		if m.deps.Turns.ApplyFailure(msg.Token, m.deps.Registry.ActiveID(), msg.Error) {
			m.refreshTranscript()
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	adopted, applied := m.deps.Turns.ApplyResponse(msg.Token, m.deps.Registry.ActiveID(), msg.Response)
	if !applied {
		return m, nil
	}

	if adopted != "" {
		m.deps.Registry.Activate(adopted)
	}
	m.relatedCursor = 0
	m.refreshTranscript()
	m.viewport.GotoBottom()

	conversationID := m.deps.Registry.ActiveID()
	return m, tea.Batch(
		listConversationsCmd(m.deps.Client),
		archiveTurnCmd(m.deps.Archive, conversationID, m.pendingQuestion, msg.Response.Answer),
	)
}

// submitTurn starts a turn from the input field or a follow-up suggestion.
func (m Model) submitTurn(override string) (tea.Model, tea.Cmd) {
	req := m.deps.Turns.Submit(m.input.Value(), override, m.deps.Registry.ActiveID())
	if req == nil {
		return m, nil
	}

	m.pendingQuestion = req.Query
	if override == "" {
		m.input.Reset()
	}
	m.relatedCursor = 0
	m.focus = focusInput
	m.alert = ""
	m.refreshTranscript()
	m.viewport.GotoBottom()

	cmd := chatCmd(m.deps.Client, req)
	m.deps.Turns.MarkAwaiting()
	return m, tea.Batch(cmd, m.spinner.Tick())
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case screenVerifying:
		return m, nil
	case screenLogin:
		return m.handleLoginKey(msg)
	default:
		return m.handleChatKey(msg)
	}
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab":
		m.login.cycleFocus()
		return m, nil

	case "ctrl+t":
		m.login.toggleMode()
		return m, nil

	case "enter":
		username, email, password := m.login.values()
		if m.login.registering {
			if username == "" || email == "" || password == "" {
				m.login.errText = "All fields are required."
				return m, nil
			}
			m.login.busy = true
			m.login.errText = ""
			return m, tea.Batch(registerCmd(m.deps.Gate, username, email, password), m.spinner.Tick())
		}
		if email == "" || password == "" {
			m.login.errText = "Email and password are required."
			return m, nil
		}
		m.login.busy = true
		m.login.errText = ""
		return m, tea.Batch(loginCmd(m.deps.Gate, email, password), m.spinner.Tick())
	}

	return m, m.login.update(msg)
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDeleteID != "" {
		return m.handleDeleteConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Dismiss):
		m.alert = ""
		m.focus = focusInput
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		return m.cycleFocusArea(), nil

	case key.Matches(msg, m.keys.NewChat):
		m.busyLabel = "creating"
		return m, tea.Batch(createConversationCmd(m.deps.Client), m.spinner.Tick())

	case key.Matches(msg, m.keys.DeleteChat):
		id := m.sidebar.CursorID()
		if m.focus != focusSidebar || id == "" {
			id = m.deps.Registry.ActiveID()
		}
		if id == "" {
			return m, nil
		}
		// Deletion is irreversible; ask first.
		m.confirmDeleteID = id
		title := id
		if s := m.deps.Registry.Find(id); s != nil {
			title = s.DisplayTitle()
		}
		m.alert = "Delete \"" + title + "\"? y/n"
		return m, nil

	case key.Matches(msg, m.keys.Record):
		return m.toggleRecording()

	case key.Matches(msg, m.keys.SpeakLast):
		return m.toggleSpeech()

	case key.Matches(msg, m.keys.DiscardImage):
		m.deps.Turns.DiscardImage()
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		m.deps.Speech.Silence()
		m.deps.Recorder.Abort()
		return m, logoutCmd(m.deps.Gate)
	}

	switch m.focus {
	case focusSidebar:
		return m.handleSidebarKey(msg)
	case focusRelated:
		return m.handleRelatedKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

// handleDeleteConfirm settles the pending y/n delete prompt. Anything other
// than an explicit yes cancels.
func (m Model) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmDeleteID
	m.confirmDeleteID = ""
	m.alert = ""

	if msg.String() == "y" || msg.String() == "Y" {
		m.busyLabel = "deleting"
		return m, tea.Batch(deleteConversationCmd(m.deps.Client, id), m.spinner.Tick())
	}
	return m, nil
}

// cycleFocusArea rotates input -> sidebar -> suggestions (when any) -> input.
func (m Model) cycleFocusArea() Model {
	switch m.focus {
	case focusInput:
		m.focus = focusSidebar
		m.input.Blur()
	case focusSidebar:
		if len(m.relatedQuestions()) > 0 {
			m.focus = focusRelated
			m.relatedCursor = 0
		} else {
			m.focus = focusInput
			m.input.Focus()
		}
	default:
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if handled, next, cmd := m.runSlashCommand(); handled {
			return next, cmd
		}
		return m.submitTurn("")

	// Page keys scroll the transcript; plain arrows stay in the input.
	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil
	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		m.sidebar.Cursor--
		m.sidebar.ClampCursor()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.sidebar.Cursor++
		m.sidebar.ClampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		id := m.sidebar.CursorID()
		if id == "" || id == m.deps.Registry.ActiveID() {
			return m, nil
		}
		m.busyLabel = "loading"
		return m, tea.Batch(loadHistoryCmd(m.deps.Client, id), m.spinner.Tick())
	}
	return m, nil
}

func (m Model) handleRelatedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	related := m.relatedQuestions()
	if len(related) == 0 {
		m.focus = focusInput
		m.input.Focus()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ScrollUp):
		if m.relatedCursor > 0 {
			m.relatedCursor--
		}
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		if m.relatedCursor < len(related)-1 {
			m.relatedCursor++
		}
		m.refreshTranscript()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.submitTurn(related[m.relatedCursor])
	}

	// Number keys pick a suggestion directly.
	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if n := int(s[0] - '0'); n <= len(related) {
			return m.submitTurn(related[n-1])
		}
	}
	return m, nil
}

// relatedQuestions returns the follow-up suggestions on the trailing
// assistant message, if any.
func (m Model) relatedQuestions() []string {
	messages := m.deps.Turns.Messages()
	if len(messages) == 0 {
		return nil
	}
	last := messages[len(messages)-1]
	if last.Role != model.RoleAssistant {
		return nil
	}
	return last.RelatedQuestions
}

// =============================================================================
// VOICE & SPEECH TOGGLES
// =============================================================================

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if finish, ok := m.deps.Recorder.Stop(); ok {
		return m, tea.Batch(finishRecordingCmd(finish), m.spinner.Tick())
	}
	if err := m.deps.Recorder.Start(); err != nil {
		if err != recorder.ErrAlreadyRecording {
			m.alert = "Recording unavailable: " + err.Error()
		}
	}
	return m, nil
}

func (m Model) toggleSpeech() (tea.Model, tea.Cmd) {
	if !m.deps.Config.Speech.Enabled {
		m.alert = "Speech is disabled in the configuration."
		return m, nil
	}
	if !m.deps.Speech.Available() {
		m.alert = "No speech tool found on this system."
		return m, nil
	}

	messages := m.deps.Turns.Messages()
	index := -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == model.RoleAssistant && !messages[i].IsError {
			index = i
			break
		}
	}
	if index < 0 {
		return m, nil
	}

	playback, generation := m.deps.Speech.Toggle(index, messages[index].Content)
	if playback == nil {
		return m, nil
	}
	return m, speakCmd(playback, generation)
}
