// Package auth decides whether the user is in or out.
package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
)

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result is the outcome of the startup verification.
type Result int

const (
	Unauthenticated Result = iota
	Authenticated
)

// String returns the string representation of the result.
func (r Result) String() string {
	if r == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrTooManyAttempts is returned when login attempts are throttled locally.
// No network call is made for a throttled attempt.
var ErrTooManyAttempts = errors.New("too many login attempts, wait a moment")

// ErrMissingCredentials is returned for empty email or password.
var ErrMissingCredentials = errors.New("email and password are required")

// =============================================================================
// GATE
// =============================================================================

// Gate owns the authentication lifecycle.
type Gate struct {
	store  *session.Store
	client *api.Client

	// Local throttle on login attempts: a short burst, then one attempt
	// per ten seconds.
	attempts *rate.Limiter
}

// NewGate creates a gate over the given store and backend client.
func NewGate(store *session.Store, client *api.Client) *Gate {
	return &Gate{
		store:    store,
		client:   client,
		attempts: rate.NewLimiter(rate.Every(10*time.Second), 3),
	}
}

// VerifySession performs the one-time startup check. With no persisted
// session it answers immediately without touching the network. With one, it
// issues a single authenticated verification; any failure (rejection,
// network error, invalid verdict) clears the store. Callers run this exactly
// once per process.
func (g *Gate) VerifySession(ctx context.Context) Result {
	if g.store.Load() == nil {
		return Unauthenticated
	}

	valid, err := g.client.Verify(ctx)
	if err != nil || !valid {
		g.store.Clear()
		return Unauthenticated
	}
	return Authenticated
}

// Login exchanges credentials for a session and persists it.
func (g *Gate) Login(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if !g.attempts.Allow() {
		return nil, ErrTooManyAttempts
	}

	resp, err := g.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{Token: resp.Token, Username: resp.Username, UserID: resp.UserID}
	if err := g.store.Save(sess); err != nil {
		// Authentication succeeded; a persistence failure costs only the
		// next restart.
		log.Printf("session persist failed: %v", err)
	}
	return sess, nil
}

// Register creates the account and immediately logs in with the same
// credentials. Registration alone never authenticates.
func (g *Gate) Register(ctx context.Context, username, email, password string) (*session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if err := g.client.Register(ctx, username, email, password); err != nil {
		return nil, err
	}
	return g.Login(ctx, email, password)
}

// Logout notifies the backend best-effort, then unconditionally clears the
// local session. Dependent state (messages, registry, active id) is reset by
// the event loop reacting to the resulting state change.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.client.Logout(ctx); err != nil {
		log.Printf("backend logout failed (ignored): %v", err)
	}
	g.store.Clear()
}

// Reset clears the session without a backend call. Used when any request
// elsewhere fails with an authentication rejection.
func (g *Gate) Reset() {
	g.store.Clear()
}
