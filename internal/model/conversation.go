// Package model contains the data structures for conversations and messages.
package model

import (
	"sort"
	"strings"
	"time"
)

// =============================================================================
// CONVERSATION SUMMARY
// =============================================================================

// ConversationSummary is the listing entry returned by GET /conversations.
// Field names follow the backend wire contract.
type ConversationSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayTitle returns the conversation title or a default.
func (s ConversationSummary) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return "New Conversation"
}

// SortSummaries orders summaries by recency (UpdatedAt descending) in place.
// The client never trusts backend ordering.
func SortSummaries(summaries []ConversationSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
}

// =============================================================================
// TRANSCRIPT HELPERS
// =============================================================================

// LastAssistantMessage returns the most recent assistant message in the
// list, or nil.
func LastAssistantMessage(messages []*Message) *Message {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleAssistant {
			return messages[i]
		}
	}
	return nil
}

// =============================================================================
// PENDING ATTACHMENT
// =============================================================================

// PendingAttachment is an image staged for the next submission. At most one
// may be staged at a time; it is cleared after a successful send or an
// explicit discard, and kept across a failed send so the user can retry.
type PendingAttachment struct {
	Name string
	MIME string
	Data []byte
}

// IsImage reports whether a MIME type should be staged as an attachment
// rather than routed to the document-upload flow.
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") && len(mimeType) > len("image/")
}
