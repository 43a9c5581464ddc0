// Package auth decides whether the user is in or out.
//
// The Gate owns the authentication lifecycle: the one-time startup
// verification of a persisted session, login, register-then-login, and
// logout. It is deliberately dumb about UI; callers observe only
// Authenticated or Unauthenticated plus the session identity.
//
// Two rules bind everything else in the client to this package: only the
// Gate (or an authentication rejection funneled through the event loop)
// may clear the session store, and a cleared session always means a full
// reset of dependent state.
package auth
