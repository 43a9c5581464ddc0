// Package model contains the data structures for conversations and messages.
//
// These types mirror the backend wire contract: a Message carries a role,
// content, and (for assistant messages) the follow-up suggestions the server
// returned alongside the answer. A ConversationSummary is the lightweight
// listing entry returned by GET /conversations.
//
// Ownership rules live elsewhere: the turn orchestrator owns the message
// list for the active conversation, the registry owns the summary set.
package model
