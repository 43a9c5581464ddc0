// Package registry tracks the user's conversations and which one is active.
//
// The Registry is a pure state container: it owns the summary set and the
// active conversation id, nothing else. Fetching and mutating conversations
// happens elsewhere (the backend client, driven by the event loop); the
// results are applied here through small, synchronous transitions. After any
// backend mutation the summary set is replaced wholesale rather than patched,
// so the registry can never drift from the server's view for longer than one
// refresh.
//
// The Registry is confined to the event loop and needs no locking.
package registry
