// Package session owns the persisted authentication session.
//
// A Session is the token plus the identity the backend returned at login.
// The Store persists it across process restarts under ~/.lawchat/, writing
// atomically and keeping the token encrypted at rest (AES-256-GCM under a
// PBKDF2-derived key held in a 0600 key file).
//
// The Store is the only owner of the Session: login and registration write
// it, logout and any authentication rejection clear it, everyone else reads
// it through Current or Token.
package session
