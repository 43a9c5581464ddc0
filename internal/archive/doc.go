// Package archive keeps a local record of completed chat turns.
//
// The backend is the authority on conversation history; the archive is a
// convenience copy in a SQLite database under the state directory, so the
// user can grep their own questions and answers without a login. Writes are
// best-effort: an archive failure never fails the turn it records.
package archive
