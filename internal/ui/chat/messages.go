// Package chat is the Bubble Tea model for the lawchat client.
//
// This file defines the message types delivered back into the event loop
// when asynchronous work completes: authentication, conversation fetches,
// chat turns, uploads, transcription, and speech playback. Every completion
// that can race with a state change carries enough identity (correlation
// token, conversation id, playback generation) for the reducer to discard
// it when stale.
package chat

import (
	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/config"
	"github.com/kiransrisai/Legal-chatbot/internal/model"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
)

// =============================================================================
// AUTH MESSAGES
// =============================================================================

// SessionVerifiedMsg delivers the one-time startup verification result.
type SessionVerifiedMsg struct {
	Result auth.Result
}

// LoginResultMsg delivers the outcome of a login attempt.
type LoginResultMsg struct {
	Session *session.Session
	Error   error
}

// RegisterResultMsg delivers the outcome of register-then-login.
type RegisterResultMsg struct {
	Session *session.Session
	Error   error
}

// LogoutDoneMsg signals that logout finished. Local state is already
// cleared by then; this only flips the screen.
type LogoutDoneMsg struct{}

// =============================================================================
// CONVERSATION MESSAGES
// =============================================================================

// ConversationsMsg delivers a wholesale summary refresh.
type ConversationsMsg struct {
	Summaries []model.ConversationSummary
	Error     error
}

// HistoryMsg delivers a fetched conversation history.
type HistoryMsg struct {
	ID       string
	Messages []api.HistoryMessage
	Error    error
}

// ConversationCreatedMsg delivers the id of a newly created conversation.
type ConversationCreatedMsg struct {
	ID    string
	Error error
}

// ConversationDeletedMsg confirms a server-side delete.
type ConversationDeletedMsg struct {
	ID    string
	Error error
}

// =============================================================================
// TURN MESSAGES
// =============================================================================

// TurnResultMsg delivers the completion of a chat turn, success or failure.
// Token correlates it with the submission that produced it.
type TurnResultMsg struct {
	Token    string
	Response *api.ChatResponse
	Error    error
}

// =============================================================================
// SIDE FLOW MESSAGES
// =============================================================================

// UploadResultMsg delivers the outcome of a document upload.
type UploadResultMsg struct {
	Name    string
	Message string
	Error   error
}

// RecordingDoneMsg delivers the finished voice recording blob.
type RecordingDoneMsg struct {
	Audio []byte
	Error error
}

// TranscriptionMsg delivers the transcription of a finished recording.
type TranscriptionMsg struct {
	Text  string
	Error error
}

// SpeechDoneMsg signals that a narration finished playing. Generation
// identifies the utterance; stale generations are ignored. Error carries
// the synthesis failure, if any.
type SpeechDoneMsg struct {
	Generation int
	Error      error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a live-reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}
