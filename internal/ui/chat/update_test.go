package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/config"
	"github.com/kiransrisai/Legal-chatbot/internal/model"
	"github.com/kiransrisai/Legal-chatbot/internal/recorder"
	"github.com/kiransrisai/Legal-chatbot/internal/registry"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
	"github.com/kiransrisai/Legal-chatbot/internal/speech"
	"github.com/kiransrisai/Legal-chatbot/internal/turn"
)

// newTestModel builds a model over a throwaway backend. The backend is only
// there so commands have somewhere to point; these tests feed completion
// messages directly into the reducer instead of running commands.
func newTestModel(t *testing.T) Model {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	t.Cleanup(server.Close)

	store := session.NewStore(t.TempDir())
	client := api.NewClient(&api.ClientConfig{BaseURL: server.URL}, store)

	m := New(Deps{
		Config:   config.Default(),
		Client:   client,
		Store:    store,
		Gate:     auth.NewGate(store, client),
		Registry: registry.New(),
		Turns:    turn.New(),
		Speech:   speech.NewController(nil),
		Recorder: recorder.NewAdapter(nil),
	})
	m.resize(100, 40)
	return m
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update should return the chat model")
	return out, cmd
}

// =============================================================================
// AUTH FLOW
// =============================================================================

func TestVerifiedSessionEntersChat(t *testing.T) {
	m := newTestModel(t)

	m, cmd := apply(t, m, SessionVerifiedMsg{Result: auth.Authenticated})

	assert.Equal(t, screenChat, m.screen)
	assert.NotNil(t, cmd, "entering chat should fetch the conversation list")
}

func TestUnverifiedSessionShowsLogin(t *testing.T) {
	m := newTestModel(t)

	m, cmd := apply(t, m, SessionVerifiedMsg{Result: auth.Unauthenticated})

	assert.Equal(t, screenLogin, m.screen)
	assert.Nil(t, cmd)
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenLogin
	m.login.busy = true

	m, _ = apply(t, m, LoginResultMsg{Error: assert.AnError})

	assert.Equal(t, screenLogin, m.screen)
	assert.False(t, m.login.busy)
	assert.NotEmpty(t, m.login.errText)
}

func TestLoginSuccessEntersChat(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenLogin

	m, cmd := apply(t, m, LoginResultMsg{Session: &session.Session{Token: "tok", Username: "ada"}})

	assert.Equal(t, screenChat, m.screen)
	assert.NotNil(t, cmd)
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1"}})
	m.deps.Registry.Activate("c1")

	m, _ = apply(t, m, LogoutDoneMsg{})

	assert.Equal(t, screenLogin, m.screen)
	assert.Zero(t, m.deps.Registry.Len())
	assert.Empty(t, m.deps.Turns.Messages())
}

func TestAuthRejectionAnywhereResetsEverything(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1"}})
	m.deps.Registry.Activate("c1")
	m.deps.Turns.Submit("a question", "", "c1")

	m, _ = apply(t, m, ConversationsMsg{Error: api.ErrAuthRejected})

	assert.Equal(t, screenLogin, m.screen)
	assert.Zero(t, m.deps.Registry.Len())
	assert.False(t, m.deps.Turns.Busy())
	assert.NotEmpty(t, m.login.errText, "the form should explain why the user is back here")
}

// =============================================================================
// CONVERSATION FLOW
// =============================================================================

func TestConversationsRefreshSyncsSidebar(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	m, _ = apply(t, m, ConversationsMsg{Summaries: []model.ConversationSummary{
		{ID: "c1", Title: "Lease"},
		{ID: "c2", Title: "Torts"},
	}})

	assert.Len(t, m.sidebar.Summaries, 2)
}

func TestHistoryActivatesConversation(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	m, _ = apply(t, m, HistoryMsg{ID: "c1", Messages: []api.HistoryMessage{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi"},
	}})

	assert.Equal(t, "c1", m.deps.Registry.ActiveID())
	assert.Len(t, m.deps.Turns.Messages(), 2)
}

func TestCreateFailureFallsBackToDraftlessState(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1"}})
	m.deps.Registry.Activate("c1")

	m, _ = apply(t, m, ConversationCreatedMsg{Error: assert.AnError})

	assert.False(t, m.deps.Registry.HasActive())
	assert.Empty(t, m.deps.Turns.Messages())
	assert.NotEmpty(t, m.alert)
}

func TestCreateSuccessActivatesEmptyConversation(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Turns.SetHistory([]api.HistoryMessage{{Role: "user", Content: "old"}})

	m, cmd := apply(t, m, ConversationCreatedMsg{ID: "c-new"})

	assert.Equal(t, "c-new", m.deps.Registry.ActiveID())
	assert.Empty(t, m.deps.Turns.Messages())
	assert.NotNil(t, cmd, "creation should refresh the list")
}

func TestDeleteActiveConversationClearsTranscript(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1"}, {ID: "c2"}})
	m.deps.Registry.Activate("c1")
	m.deps.Turns.SetHistory([]api.HistoryMessage{{Role: "user", Content: "q"}})

	m, cmd := apply(t, m, ConversationDeletedMsg{ID: "c1"})

	assert.False(t, m.deps.Registry.HasActive())
	assert.Empty(t, m.deps.Turns.Messages())
	assert.NotNil(t, cmd, "delete should always refresh the list")
}

func TestDeleteOtherConversationKeepsTranscript(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1"}, {ID: "c2"}})
	m.deps.Registry.Activate("c1")
	m.deps.Turns.SetHistory([]api.HistoryMessage{{Role: "user", Content: "q"}})

	m, _ = apply(t, m, ConversationDeletedMsg{ID: "c2"})

	assert.Equal(t, "c1", m.deps.Registry.ActiveID())
	assert.Len(t, m.deps.Turns.Messages(), 1)
}

// =============================================================================
// TURN FLOW
// =============================================================================

func TestSubmitConsumesInputAndDispatches(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.input.SetValue("What is consideration?")

	next, cmd := m.submitTurn("")
	m = next.(Model)

	assert.NotNil(t, cmd)
	assert.True(t, m.deps.Turns.Busy())
	assert.Empty(t, m.input.Value(), "submit consumes the input")
	assert.Equal(t, "What is consideration?", m.pendingQuestion)
}

func TestTurnCompletionThroughReducer(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	// Drive the orchestrator the way submitTurn does, keeping hold of the
	// request so the test can echo its correlation token back.
	req := m.deps.Turns.Submit("What is consideration?", "", "")
	require.NotNil(t, req)
	m.deps.Turns.MarkAwaiting()
	m.pendingQuestion = req.Query

	m, _ = apply(t, m, TurnResultMsg{Token: req.Token, Response: &api.ChatResponse{
		Answer:           "A bargained-for exchange.",
		ConversationID:   "c-minted",
		RelatedQuestions: []string{"What about promissory estoppel?"},
	}})

	assert.False(t, m.deps.Turns.Busy())
	assert.Equal(t, "c-minted", m.deps.Registry.ActiveID(), "a draftless turn adopts the minted id")
	messages := m.deps.Turns.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
}

func TestStaleTurnCompletionIgnoredByReducer(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	req := m.deps.Turns.Submit("first question", "", "")
	require.NotNil(t, req)
	m.deps.Turns.MarkAwaiting()

	m, _ = apply(t, m, TurnResultMsg{Token: "not-the-token", Response: &api.ChatResponse{Answer: "late"}})

	assert.True(t, m.deps.Turns.Busy(), "a mismatched token must not settle the turn")
	assert.Len(t, m.deps.Turns.Messages(), 1)
}

func TestTurnFailureRecordedInline(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	req := m.deps.Turns.Submit("question", "", "")
	require.NotNil(t, req)
	m.deps.Turns.MarkAwaiting()

	m, _ = apply(t, m, TurnResultMsg{Token: req.Token, Error: assert.AnError})

	messages := m.deps.Turns.Messages()
	require.Len(t, messages, 2)
	assert.True(t, messages[1].IsError)
	assert.False(t, m.deps.Turns.Busy())
}

func TestOverrideSubmitKeepsTypedDraft(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.input.SetValue("half-written question about easements")

	next, cmd := m.submitTurn("What about negligence?")
	m = next.(Model)

	assert.NotNil(t, cmd)
	assert.Equal(t, "What about negligence?", m.pendingQuestion)
	assert.Equal(t, "half-written question about easements", m.input.Value(),
		"picking a suggestion must not destroy the typed draft")
}

// =============================================================================
// DELETE CONFIRMATION
// =============================================================================

func TestDeleteAsksForConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1", Title: "Lease"}})
	m.deps.Registry.Activate("c1")

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})

	assert.Nil(t, cmd, "nothing is deleted before the user confirms")
	assert.Equal(t, "c1", m.confirmDeleteID)
	assert.Contains(t, m.alert, "Lease")

	// Anything but y cancels.
	m, cmd = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Nil(t, cmd)
	assert.Empty(t, m.confirmDeleteID)
}

func TestDeleteConfirmedDispatches(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Registry.SetSummaries([]model.ConversationSummary{{ID: "c1"}})
	m.deps.Registry.Activate("c1")

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	assert.NotNil(t, cmd, "confirming should dispatch the delete")
	assert.Empty(t, m.confirmDeleteID)
}

// =============================================================================
// SIDE FLOWS
// =============================================================================

func TestUploadResultAppendsSystemMessage(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.uploading = true
	m.deps.Turns.BeginUpload("brief.pdf")

	m, _ = apply(t, m, UploadResultMsg{Name: "brief.pdf", Message: "Document brief.pdf added to your library."})

	assert.False(t, m.uploading)
	messages := m.deps.Turns.Messages()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1].Content, "added to your library")
}

func TestTranscriptionMergesIntoInput(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.input.SetValue("As discussed")
	m.transcribing = true

	m, _ = apply(t, m, TranscriptionMsg{Text: "what about damages?"})

	assert.False(t, m.transcribing)
	assert.Equal(t, "As discussed what about damages?", m.input.Value())
}

func TestEmptyRecordingSetsAlert(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat

	m, cmd := apply(t, m, RecordingDoneMsg{Audio: nil})

	assert.NotEmpty(t, m.alert)
	assert.Nil(t, cmd, "an empty recording must not be sent for transcription")
}

// =============================================================================
// SPEECH
// =============================================================================

// quietSynth succeeds without blocking.
type quietSynth struct{}

func (quietSynth) Speak(context.Context, string) error { return nil }

func TestSpeakWithoutToolSetsAlert(t *testing.T) {
	// Speech enabled in config, but no speech tool on the system: the
	// controller was built over nothing and must refuse, not crash.
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Config.Speech.Enabled = true
	m.deps.Turns.SetHistory([]api.HistoryMessage{
		{Role: "user", Content: "q"},
		{Role: "assistant", Content: "An answer worth hearing."},
	})

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Nil(t, cmd, "nothing must be dispatched without a synthesizer")
	assert.NotEmpty(t, m.alert)
	_, speaking := m.deps.Speech.SpeakingIndex()
	assert.False(t, speaking)
}

func TestSpeechFailureSurfacesAlert(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Speech = speech.NewController(quietSynth{})

	_, gen := m.deps.Speech.Toggle(1, "An answer.")

	m, _ = apply(t, m, SpeechDoneMsg{Generation: gen, Error: assert.AnError})

	assert.Contains(t, m.alert, "Speech failed")
	_, speaking := m.deps.Speech.SpeakingIndex()
	assert.False(t, speaking, "the failed utterance still settles the slot")
}

func TestStaleSpeechFailureKeepsQuiet(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	m.deps.Speech = speech.NewController(quietSynth{})

	_, gen := m.deps.Speech.Toggle(1, "An answer.")
	m.deps.Speech.Silence()

	m, _ = apply(t, m, SpeechDoneMsg{Generation: gen, Error: assert.AnError})

	assert.Empty(t, m.alert, "a cancelled utterance's failure is nobody's business")
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

func TestConfigReloadSwapsConfig(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenChat
	updates := make(chan *config.Config, 1)
	m.deps.ConfigUpdates = updates

	cfg := config.Default()
	cfg.UI.Theme = "light"
	m, cmd := apply(t, m, ConfigReloadedMsg{Config: cfg})

	assert.Equal(t, "light", m.deps.Config.UI.Theme)
	assert.NotNil(t, cmd, "the watcher must be re-armed for the next reload")
}
