// Package chat is the Bubble Tea model for the lawchat client.
//
// The package follows the Elm shape: commands in commands.go wrap the
// backend and platform calls and deliver typed completion messages, and the
// reducer in update.go applies every state transition on the single event
// loop. Nothing here needs locking; the collaborators in Deps are only ever
// touched from Update.
//
// Completions that can race with a state change carry identity: chat turns
// a correlation token plus the conversation id captured at submit time,
// narrations a generation counter. The reducer discards whatever arrives
// stale, so a slow response can never land in the wrong conversation.
package chat
