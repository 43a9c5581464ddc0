// Package api provides the HTTP client for the lawchat backend.
package api

import "github.com/kiransrisai/Legal-chatbot/internal/model"

// =============================================================================
// AUTH TYPES
// =============================================================================

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body for POST /login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyResponse is the body for GET /verify.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// =============================================================================
// CONVERSATION TYPES
// =============================================================================

// ConversationsResponse is the body for GET /conversations.
type ConversationsResponse struct {
	Conversations []model.ConversationSummary `json:"conversations"`
}

// NewConversationResponse is the body for POST /conversations/new.
type NewConversationResponse struct {
	ConversationID string `json:"conversation_id"`
}

// HistoryMessage is one entry of a fetched conversation history.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// HistoryResponse is the body for GET /conversations/{id}.
type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// =============================================================================
// CHAT TYPES
// =============================================================================

// ChatRequest is the body for POST /chat. ConversationID is omitted when no
// conversation is active; the server then mints one and returns it.
type ChatRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the shared success body for POST /chat and POST /chat_vision.
type ChatResponse struct {
	Answer           string   `json:"answer"`
	RelatedQuestions []string `json:"related_questions,omitempty"`
	ConversationID   string   `json:"conversation_id"`
}

// =============================================================================
// SIDE-FLOW TYPES
// =============================================================================

// UploadResponse is the body for POST /upload_document. Message carries the
// server's human-readable result ("File 'contract.pdf' processed successfully.").
type UploadResponse struct {
	Message string `json:"message"`
}

// TranscribeResponse is the body for POST /transcribe.
type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}

// errorBody is the error envelope the backend uses for non-2xx responses.
// FastAPI emits either {"error": ...} or {"detail": ...} depending on the
// failure path, so both are accepted.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (e errorBody) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}
