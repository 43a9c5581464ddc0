// Package api provides the HTTP client for the lawchat backend.
//
// The backend owns inference, document parsing, transcription, and
// conversation persistence; this client is a thin, retry-free wrapper over
// its REST surface. Every method takes a context and returns a typed
// *ClientError on failure so callers can distinguish an authentication
// rejection (which forces a global session reset) from an ordinary server
// or connection error (which is surfaced and abandoned).
//
// Authenticated requests carry a bearer token obtained from a TokenSource;
// an empty token means the request goes out unauthenticated.
package api
