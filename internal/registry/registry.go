// Package registry tracks the user's conversations and which one is active.
package registry

import (
	"github.com/kiransrisai/Legal-chatbot/internal/model"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry owns the conversation summary set and the active conversation id.
// Exactly one summary's id equals the active id, or the active id is empty.
type Registry struct {
	summaries []model.ConversationSummary
	activeID  string
}

// New creates an empty registry with no active conversation.
func New() *Registry {
	return &Registry{}
}

// =============================================================================
// READS
// =============================================================================

// Summaries returns the summary set sorted by recency, newest first. The
// returned slice is the registry's own; callers must not mutate it.
func (r *Registry) Summaries() []model.ConversationSummary {
	return r.summaries
}

// ActiveID returns the active conversation id, or "" when none is active.
func (r *Registry) ActiveID() string {
	return r.activeID
}

// HasActive reports whether a conversation is currently active.
func (r *Registry) HasActive() bool {
	return r.activeID != ""
}

// Find returns the summary with the given id, or nil.
func (r *Registry) Find(id string) *model.ConversationSummary {
	for i := range r.summaries {
		if r.summaries[i].ID == id {
			return &r.summaries[i]
		}
	}
	return nil
}

// ActiveTitle returns the display title of the active conversation, or ""
// when none is active or the summary set has not caught up yet.
func (r *Registry) ActiveTitle() string {
	if s := r.Find(r.activeID); s != nil {
		return s.DisplayTitle()
	}
	return ""
}

// Len returns the number of known conversations.
func (r *Registry) Len() int {
	return len(r.summaries)
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// SetSummaries replaces the summary set wholesale with a fresh fetch. The
// set is re-sorted by updated_at descending regardless of backend ordering.
// An active id that no longer appears in the set is cleared; the server is
// the authority on which conversations exist.
func (r *Registry) SetSummaries(summaries []model.ConversationSummary) {
	r.summaries = summaries
	model.SortSummaries(r.summaries)

	if r.activeID != "" && r.Find(r.activeID) == nil {
		r.activeID = ""
	}
}

// Activate marks the given conversation as active. Called after a history
// fetch succeeds, or when a chat response mints a new conversation id.
func (r *Registry) Activate(id string) {
	r.activeID = id
}

// Deactivate clears the active id without touching the summary set. Used
// when conversation creation fails: the client falls back to a draftless
// state rather than pointing at a nonexistent id.
func (r *Registry) Deactivate() {
	r.activeID = ""
}

// ApplyDelete records a successful server-side delete. It reports whether
// the deleted conversation was the active one, in which case the active id
// is cleared and the caller must also clear its message list. The summary
// set is pruned immediately; a wholesale refresh follows either way.
func (r *Registry) ApplyDelete(id string) (wasActive bool) {
	wasActive = id == r.activeID
	if wasActive {
		r.activeID = ""
	}

	for i := range r.summaries {
		if r.summaries[i].ID == id {
			r.summaries = append(r.summaries[:i], r.summaries[i+1:]...)
			break
		}
	}
	return wasActive
}

// Clear resets the registry to its initial state. Invoked on logout and on
// any authentication rejection.
func (r *Registry) Clear() {
	r.summaries = nil
	r.activeID = ""
}
