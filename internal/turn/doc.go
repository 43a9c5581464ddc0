// Package turn runs the chat turn state machine.
//
// The Orchestrator owns the transcript of the active conversation, the
// staged image attachment, and the single-flight turn lifecycle: Idle,
// Submitting (the user message is appended and the request is being built),
// AwaitingResponse (the request is on the wire). Exactly one turn may be in
// flight; a submit while busy is ignored without side effects.
//
// Every outgoing turn carries a correlation token and the conversation id
// captured at submit time. A completion whose token no longer matches the
// in-flight turn, or whose originating conversation is no longer the active
// one, is discarded rather than applied to a transcript it does not belong
// to.
//
// Document upload and voice transcription are side flows. They never touch
// the turn state; uploads narrate their progress through system-role
// messages in the transcript, and a finished transcription is merged into
// the input field rather than submitted.
//
// Like the rest of the client state, the Orchestrator is confined to the
// event loop and needs no locking.
package turn
