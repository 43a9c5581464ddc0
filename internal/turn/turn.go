// Package turn runs the chat turn state machine.
package turn

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/model"
)

// =============================================================================
// STATE TYPE
// =============================================================================

// State is the turn lifecycle state.
type State int

const (
	// Idle means no turn is in flight; a submit is accepted.
	Idle State = iota
	// Submitting means the user message is appended and the request is
	// being dispatched.
	Submitting
	// AwaitingResponse means the request is on the wire.
	AwaitingResponse
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case AwaitingResponse:
		return "awaiting response"
	default:
		return "idle"
	}
}

// =============================================================================
// REQUEST TYPE
// =============================================================================

// Request describes one outgoing turn. Token correlates the eventual
// completion with this submission; ConversationID is the active conversation
// captured at submit time, empty when the turn should mint a new one. A
// non-nil Image routes the turn to the vision endpoint.
type Request struct {
	Token          string
	Query          string
	ConversationID string
	Image          *model.PendingAttachment
}

// =============================================================================
// ORCHESTRATOR
// =============================================================================

// genericTurnError is shown when a failed turn carries no server text.
const genericTurnError = "Sorry, something went wrong. Please try again."

// Orchestrator owns the transcript, the staged attachment, and the
// single-flight turn lifecycle.
type Orchestrator struct {
	state    State
	messages []*model.Message
	staged   *model.PendingAttachment

	// The turn currently in flight; zero value when Idle.
	inflight Request
}

// New creates an orchestrator in the Idle state with an empty transcript.
func New() *Orchestrator {
	return &Orchestrator{}
}

// State returns the current turn lifecycle state.
func (o *Orchestrator) State() State {
	return o.state
}

// Busy reports whether a turn is in flight.
func (o *Orchestrator) Busy() bool {
	return o.state != Idle
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Messages returns the transcript of the active conversation. The returned
// slice is the orchestrator's own; callers must not mutate it.
func (o *Orchestrator) Messages() []*model.Message {
	return o.messages
}

// SetHistory replaces the transcript wholesale with a fetched conversation
// history. Used when switching conversations; the list is never merged.
func (o *Orchestrator) SetHistory(history []api.HistoryMessage) {
	o.messages = make([]*model.Message, 0, len(history))
	for _, h := range history {
		o.messages = append(o.messages, model.NewMessage(model.Role(h.Role), h.Content))
	}
}

// ClearMessages empties the transcript. Used when creating or deleting the
// active conversation.
func (o *Orchestrator) ClearMessages() {
	o.messages = nil
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit begins a new turn. text is the raw input field content; override,
// when non-empty, is a clicked follow-up suggestion and takes precedence.
// It returns the request to dispatch, or nil when the submission is
// rejected: another turn is in flight, or the effective query is empty and
// no image is staged (both are silent no-ops, not errors).
//
// On acceptance the user message is appended, any follow-up suggestions on
// the trailing assistant message are cleared when a suggestion originated
// this turn, and the state moves to Submitting. The staged image rides along
// on the request but stays staged until the turn succeeds.
func (o *Orchestrator) Submit(text, override, activeID string) *Request {
	if o.state != Idle {
		return nil
	}

	query := override
	if query == "" {
		query = strings.TrimSpace(text)
	}
	if query == "" && o.staged == nil {
		return nil
	}

	if override != "" {
		if last := model.LastAssistantMessage(o.messages); last != nil {
			last.ClearRelatedQuestions()
		}
	}

	o.messages = append(o.messages, model.NewUserMessage(query))
	o.state = Submitting
	o.inflight = Request{
		Token:          uuid.NewString(),
		Query:          query,
		ConversationID: activeID,
		Image:          o.staged,
	}
	req := o.inflight
	return &req
}

// MarkAwaiting records that the in-flight request has been handed to the
// transport. Called by the event loop right after dispatching.
func (o *Orchestrator) MarkAwaiting() {
	if o.state == Submitting {
		o.state = AwaitingResponse
	}
}

// =============================================================================
// COMPLETION
// =============================================================================

// ApplyResponse reconciles a successful turn. token is the correlation
// token the completion arrived with; activeID is the conversation active
// right now, which may differ from the one captured at submit time.
//
// A completion for a superseded turn, or for a conversation that is no
// longer active, is discarded. On a discard of the in-flight turn the state
// still returns to Idle so the user is never stuck.
//
// adopted is the newly minted conversation id to activate when this turn
// started without one; empty otherwise.
func (o *Orchestrator) ApplyResponse(token, activeID string, resp *api.ChatResponse) (adopted string, applied bool) {
	req, ok := o.finish(token)
	if !ok {
		return "", false
	}
	if req.ConversationID != activeID {
		return "", false
	}

	o.messages = append(o.messages, model.NewAssistantMessage(resp.Answer, resp.RelatedQuestions))
	o.staged = nil

	if req.ConversationID == "" && resp.ConversationID != "" {
		adopted = resp.ConversationID
	}
	return adopted, true
}

// ApplyFailure reconciles a failed turn. The failure is recorded inline in
// the transcript as an assistant-role message carrying the server's error
// text when there is one. The staged image is kept so the user can retry.
func (o *Orchestrator) ApplyFailure(token, activeID string, err error) (applied bool) {
	req, ok := o.finish(token)
	if !ok {
		return false
	}
	if req.ConversationID != activeID {
		return false
	}

	text := api.ServerText(err)
	if text == "" {
		text = genericTurnError
	}
	o.messages = append(o.messages, model.NewErrorMessage(text))
	return true
}

// finish validates the correlation token and, when it matches the in-flight
// turn, returns that turn and transitions back to Idle unconditionally.
func (o *Orchestrator) finish(token string) (Request, bool) {
	if o.state == Idle || token == "" || token != o.inflight.Token {
		return Request{}, false
	}
	req := o.inflight
	o.inflight = Request{}
	o.state = Idle
	return req, true
}

// =============================================================================
// ATTACHMENT STAGING
// =============================================================================

// StagedImage returns the staged attachment, or nil.
func (o *Orchestrator) StagedImage() *model.PendingAttachment {
	return o.staged
}

// StageFile classifies a user-provided file by content type. Image-typed
// files replace the staged attachment and are never auto-sent; it returns
// false for every other type, which the caller routes to the document
// upload flow instead.
func (o *Orchestrator) StageFile(name, mimeType string, data []byte) bool {
	if !model.IsImage(mimeType) {
		return false
	}
	o.staged = &model.PendingAttachment{Name: name, MIME: mimeType, Data: data}
	return true
}

// DiscardImage drops the staged attachment without sending it.
func (o *Orchestrator) DiscardImage() {
	o.staged = nil
}

// =============================================================================
// DOCUMENT UPLOAD SIDE FLOW
// =============================================================================

// BeginUpload appends the "uploading" system message for the named file.
// Uploads run outside the turn state machine and never block a submit.
func (o *Orchestrator) BeginUpload(name string) {
	o.messages = append(o.messages, model.NewSystemMessage("Uploading "+name+"..."))
}

// CompleteUpload appends the server's upload result verbatim.
func (o *Orchestrator) CompleteUpload(message string) {
	o.messages = append(o.messages, model.NewSystemMessage(message))
}

// FailUpload appends the upload failure for the named file.
func (o *Orchestrator) FailUpload(name string, err error) {
	text := api.ServerText(err)
	if text == "" {
		text = "Upload of " + name + " failed. Please try again."
	}
	o.messages = append(o.messages, model.NewSystemMessage(text))
}

// =============================================================================
// VOICE TRANSCRIPTION SIDE FLOW
// =============================================================================

// MergeTranscription appends a finished transcription to the current input
// field content, space-separated. The transcription never replaces what the
// user has already typed.
func MergeTranscription(input, transcription string) string {
	transcription = strings.TrimSpace(transcription)
	if transcription == "" {
		return input
	}
	if input == "" {
		return transcription
	}
	return strings.TrimRight(input, " ") + " " + transcription
}

// =============================================================================
// RESET
// =============================================================================

// Reset returns the orchestrator to its initial state: transcript, staged
// attachment, and any in-flight turn are all dropped. Invoked on logout and
// on any authentication rejection.
func (o *Orchestrator) Reset() {
	o.state = Idle
	o.messages = nil
	o.staged = nil
	o.inflight = Request{}
}
