package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
)

// newGate wires a gate against a test backend with a fresh temp session dir.
func newGate(t *testing.T, handler http.Handler) (*Gate, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir())
	client := api.NewClient(&api.ClientConfig{BaseURL: srv.URL}, store)
	return NewGate(store, client), store
}

// =============================================================================
// STARTUP VERIFICATION
// =============================================================================

func TestVerifySessionWithoutStoredSession(t *testing.T) {
	calls := 0
	gate, _ := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	result := gate.VerifySession(context.Background())

	assert.Equal(t, Unauthenticated, result)
	assert.Zero(t, calls, "no stored session must mean no network call")
}

func TestVerifySessionAccepted(t *testing.T) {
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(api.VerifyResponse{Valid: true})
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok", Username: "ada", UserID: "u1"}))

	assert.Equal(t, Authenticated, gate.VerifySession(context.Background()))
	assert.NotNil(t, store.Current())
}

func TestVerifySessionRejectedClearsStore(t *testing.T) {
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, store.Save(&session.Session{Token: "stale", Username: "ada", UserID: "u1"}))

	assert.Equal(t, Unauthenticated, gate.VerifySession(context.Background()))
	assert.Nil(t, store.Current(), "a rejected session must be cleared")
}

func TestVerifySessionNetworkFailureClearsStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable backend

	store := session.NewStore(t.TempDir())
	require.NoError(t, store.Save(&session.Session{Token: "tok", Username: "ada", UserID: "u1"}))
	gate := NewGate(store, api.NewClient(&api.ClientConfig{BaseURL: srv.URL}, store))

	assert.Equal(t, Unauthenticated, gate.VerifySession(context.Background()))
	assert.Nil(t, store.Current())
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

func TestLoginPersistsSession(t *testing.T) {
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)
		json.NewEncoder(w).Encode(api.LoginResponse{Token: "tok-1", Username: "ada", UserID: "u1"})
	}))

	sess, err := gate.Login(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ada", sess.Username)
	assert.Equal(t, "tok-1", store.Token())
}

func TestLoginValidation(t *testing.T) {
	gate, _ := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the network")
	}))

	_, err := gate.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = gate.Login(context.Background(), "a@b.c", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoginThrottle(t *testing.T) {
	gate, _ := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	}))

	// Burst of three is allowed, the fourth is throttled locally.
	for i := 0; i < 3; i++ {
		_, err := gate.Login(context.Background(), "a@b.c", "wrong")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrTooManyAttempts)
	}
	_, err := gate.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}

func TestRegisterThenLogin(t *testing.T) {
	var order []string
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, r.URL.Path)
		switch r.URL.Path {
		case "/register":
			w.WriteHeader(http.StatusOK)
		case "/login":
			json.NewEncoder(w).Encode(api.LoginResponse{Token: "tok-2", Username: "ada", UserID: "u1"})
		}
	}))

	sess, err := gate.Register(context.Background(), "ada", "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, []string{"/register", "/login"}, order, "registration alone never authenticates")
	assert.Equal(t, "tok-2", sess.Token)
	assert.Equal(t, "tok-2", store.Token())
}

func TestRegisterFailureDoesNotLogin(t *testing.T) {
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/register" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "username taken"})
			return
		}
		t.Errorf("unexpected call to %s", r.URL.Path)
	}))

	_, err := gate.Register(context.Background(), "ada", "ada@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, "username taken", api.ServerText(err))
	assert.Nil(t, store.Current())
}

// =============================================================================
// LOGOUT
// =============================================================================

func TestLogoutClearsEvenWhenBackendFails(t *testing.T) {
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok", Username: "ada", UserID: "u1"}))

	gate.Logout(context.Background())

	assert.Nil(t, store.Current(), "logout clears the session unconditionally")
	assert.Empty(t, store.Token())
}

func TestReset(t *testing.T) {
	gate, store := newGate(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Reset must not call the backend")
	}))
	require.NoError(t, store.Save(&session.Session{Token: "tok", Username: "ada", UserID: "u1"}))

	gate.Reset()
	assert.Nil(t, store.Current())
}
