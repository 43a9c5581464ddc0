// Package api provides the HTTP client for the lawchat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/kiransrisai/Legal-chatbot/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match sentinel errors by type.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeAuthRejected
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrAuthRejected = &ClientError{Type: ErrTypeAuthRejected, Message: "authentication rejected"}
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsAuthRejected reports whether err is an authentication rejection, which
// must trigger the global session reset no matter where it surfaced.
func IsAuthRejected(err error) bool {
	return errors.Is(err, ErrAuthRejected)
}

// ServerText extracts the server-provided error text from err, or returns
// the empty string when err carries none.
func ServerText(err error) string {
	var ce *ClientError
	if errors.As(err, &ce) && ce.Type == ErrTypeServer {
		return ce.Message
	}
	return ""
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// TokenSource supplies the current bearer token. An empty token means the
// request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for JSON requests (default: 60s; chat answers are slow)
	Timeout time.Duration

	// UploadTimeout for multipart requests carrying files (default: 120s)
	UploadTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       60 * time.Second,
		UploadTimeout: 120 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the lawchat backend.
// It is safe for concurrent use.
type Client struct {
	mu           sync.RWMutex
	base         string
	httpClient   *http.Client
	uploadClient *http.Client
	tokens       TokenSource
}

// NewClient creates a backend client. tokens may be nil for a client that
// only issues unauthenticated requests.
func NewClient(config *ClientConfig, tokens TokenSource) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 120 * time.Second
	}

	return &Client{
		base:         config.BaseURL,
		httpClient:   &http.Client{Timeout: config.Timeout},
		uploadClient: &http.Client{Timeout: config.UploadTimeout},
		tokens:       tokens,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.base
}

// SetBaseURL repoints the client at a different backend. Used by config
// live-reload, which runs on the event loop while request goroutines are
// in flight; in-flight requests keep the URL they started with.
func (c *Client) SetBaseURL(baseURL string) {
	if baseURL == "" {
		return
	}
	c.mu.Lock()
	c.base = baseURL
	c.mu.Unlock()
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account. It grants no session; callers log in after.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/register", RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}

// Verify checks whether the stored session token is still accepted.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	var resp VerifyResponse
	if err := c.doJSON(ctx, http.MethodGet, "/verify", nil, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Logout notifies the backend that the session is over. Best effort: the
// caller clears local state regardless of the result.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/logout", nil, nil)
}

// =============================================================================
// CONVERSATION ENDPOINTS
// =============================================================================

// ListConversations fetches all conversation summaries for the user.
func (c *Client) ListConversations(ctx context.Context) ([]model.ConversationSummary, error) {
	var resp ConversationsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/conversations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// NewConversation creates an empty conversation and returns its id.
func (c *Client) NewConversation(ctx context.Context) (string, error) {
	var resp NewConversationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/conversations/new", nil, &resp); err != nil {
		return "", err
	}
	return resp.ConversationID, nil
}

// GetConversation fetches the full message history for a conversation.
func (c *Client) GetConversation(ctx context.Context, id string) ([]HistoryMessage, error) {
	var resp HistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/conversations/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// DeleteConversation removes a conversation server-side.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/conversations/"+url.PathEscape(id), nil, nil)
}

// =============================================================================
// CHAT ENDPOINT
// =============================================================================

// Chat submits a text turn. conversationID may be empty, in which case the
// server mints a new conversation and returns its id in the response.
func (c *Client) Chat(ctx context.Context, question, conversationID string) (*ChatResponse, error) {
	var resp ChatResponse
	err := c.doJSON(ctx, http.MethodPost, "/chat", ChatRequest{
		Question:       norm.NFC.String(question),
		ConversationID: conversationID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// doJSON issues a JSON request and decodes the response into out (when out
// is non-nil). Non-2xx statuses are mapped onto the error taxonomy; the
// server's own error text is preserved for display.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL()+path, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
		}
	}
	return nil
}

// authorize attaches the bearer credential when a token is available.
func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// checkStatus maps a non-2xx response onto the error taxonomy.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrAuthRejected
	}

	// Preserve the server's error text; it goes straight into the transcript.
	var envelope errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.text() != "" {
		return &ClientError{Type: ErrTypeServer, Message: envelope.text()}
	}
	return &ClientError{Type: ErrTypeServer, Message: "server error: " + resp.Status}
}

// wrapTransportError classifies a transport-level failure.
func wrapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeConnection, Message: "cannot reach backend", Cause: err}
}
