// Package session owns the persisted authentication session.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kiransrisai/Legal-chatbot/internal/util"
)

// =============================================================================
// SESSION TYPE
// =============================================================================

// Session holds the auth token and the identity the backend returned.
type Session struct {
	Token    string `json:"-"`
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// storedSession is the on-disk form; the token travels encrypted.
type storedSession struct {
	Username       string `json:"username"`
	UserID         string `json:"user_id"`
	EncryptedToken string `json:"token"`
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store persists the session across restarts.
type Store struct {
	mu      sync.RWMutex
	path    string
	keyPath string
	current *Session
}

// NewStore creates a store rooted at dir (typically ~/.lawchat). The
// directory is created on first save, not here.
func NewStore(dir string) *Store {
	return &Store{
		path:    filepath.Join(dir, "session.json"),
		keyPath: filepath.Join(dir, "session.key"),
	}
}

// DefaultDir returns the lawchat state directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lawchat"
	}
	return filepath.Join(home, ".lawchat")
}

// Load reads the persisted session into memory. A missing or unreadable
// session file simply yields no session; the user logs in again.
func (s *Store) Load() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}

	token, err := s.decryptToken(stored.EncryptedToken)
	if err != nil {
		// Key file lost or data tampered with; treat as logged out.
		return nil
	}

	s.current = &Session{Token: token, Username: stored.Username, UserID: stored.UserID}
	return s.current
}

// Save persists the session and makes it current.
func (s *Store) Save(session *Session) error {
	if session == nil || session.Token == "" {
		return errors.New("refusing to save an empty session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := s.encryptToken(session.Token)
	if err != nil {
		return fmt.Errorf("encrypt token: %w", err)
	}

	data, err := json.MarshalIndent(storedSession{
		Username:       session.Username,
		UserID:         session.UserID,
		EncryptedToken: encrypted,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := util.AtomicWriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	s.current = session
	return nil
}

// Clear forgets the session in memory and on disk. Removal errors are
// ignored: Clear must always succeed from the caller's point of view.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	os.Remove(s.path)
}

// Current returns the in-memory session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current bearer token, or "" when logged out. This
// satisfies the api.TokenSource interface.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}
