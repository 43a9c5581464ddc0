// Package chat is the Bubble Tea model for the lawchat client.
package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/archive"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/config"
	"github.com/kiransrisai/Legal-chatbot/internal/recorder"
	"github.com/kiransrisai/Legal-chatbot/internal/registry"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
	"github.com/kiransrisai/Legal-chatbot/internal/speech"
	"github.com/kiransrisai/Legal-chatbot/internal/turn"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/components"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// =============================================================================
// SCREEN & FOCUS STATE
// =============================================================================

// screen is the top-level surface being shown.
type screen int

const (
	screenVerifying screen = iota
	screenLogin
	screenChat
)

// focusArea is the pane holding keyboard focus on the chat screen.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
	focusRelated
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Deps carries the collaborators the chat model drives. Archive and the
// config updates channel may be nil.
type Deps struct {
	Config        *config.Config
	Client        *api.Client
	Store         *session.Store
	Gate          *auth.Gate
	Registry      *registry.Registry
	Turns         *turn.Orchestrator
	Speech        *speech.Controller
	Recorder      *recorder.Adapter
	Archive       *archive.Archive
	ConfigUpdates <-chan *config.Config
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the whole client: the login surface and the chat surface, plus
// the state machines behind them.
type Model struct {
	deps Deps
	keys KeyMap

	// Top-level surface
	screen screen
	login  loginForm

	// Chat surface widgets
	input    textarea.Model
	viewport viewport.Model
	sidebar  components.Sidebar
	spinner  components.Spinner
	renderer *glamour.TermRenderer

	// Chat surface state
	focus           focusArea
	relatedCursor   int
	pendingQuestion string
	confirmDeleteID string
	alert           string
	busyLabel       string
	uploading       bool
	transcribing    bool

	width  int
	height int
	ready  bool
}

// New creates the client model. The startup verification runs from Init.
func New(deps Deps) Model {
	styles.ApplyTheme(deps.Config.UI.Theme)

	input := textarea.New()
	input.Placeholder = "Ask a legal question..."
	input.ShowLineNumbers = false
	input.SetHeight(3)
	input.CharLimit = 4000
	input.Focus()

	return Model{
		deps:    deps,
		keys:    DefaultKeyMap(),
		screen:  screenVerifying,
		login:   newLoginForm(),
		input:   input,
		spinner: components.NewSpinner(),
	}
}

// Init kicks off the one-time session verification and, when configured,
// the config watch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{verifySessionCmd(m.deps.Gate)}
	if m.deps.ConfigUpdates != nil {
		cmds = append(cmds, watchConfigCmd(m.deps.ConfigUpdates))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// LAYOUT
// =============================================================================

// sidebarWidth is the fixed conversation list width.
const sidebarWidth = 28

// resize recomputes widget dimensions and rebuilds the markdown renderer
// for the new wrap width.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	transcriptWidth := width - sidebarWidth
	if transcriptWidth < 20 {
		transcriptWidth = 20
	}
	// Header, input, status bar, and help line flank the transcript.
	transcriptHeight := height - m.input.Height() - 5
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(transcriptWidth, transcriptHeight)
		m.ready = true
	} else {
		m.viewport.Width = transcriptWidth
		m.viewport.Height = transcriptHeight
	}

	m.input.SetWidth(transcriptWidth - 2)
	m.sidebar.Width = sidebarWidth
	m.sidebar.Height = transcriptHeight

	wrap := transcriptWidth - 4
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refreshTranscript()
}

// =============================================================================
// GLOBAL RESET
// =============================================================================

// resetAll clears every piece of dependent state and returns to the login
// screen. Runs on logout and on any authentication rejection, no matter
// which request surfaced it.
func (m *Model) resetAll() {
	m.deps.Gate.Reset()
	m.deps.Registry.Clear()
	m.deps.Turns.Reset()
	m.deps.Speech.Silence()
	m.deps.Recorder.Abort()

	m.screen = screenLogin
	m.login = newLoginForm()
	m.focus = focusInput
	m.relatedCursor = 0
	m.pendingQuestion = ""
	m.confirmDeleteID = ""
	m.alert = ""
	m.busyLabel = ""
	m.uploading = false
	m.transcribing = false
	m.input.Reset()
	m.sidebar.Summaries = nil
	m.sidebar.ActiveID = ""
	m.sidebar.Cursor = 0
	m.refreshTranscript()
}

// handleAuthRejection funnels any authentication rejection into the global
// reset. It reports whether err was one.
func (m *Model) handleAuthRejection(err error) bool {
	if err == nil || !api.IsAuthRejected(err) {
		return false
	}
	m.resetAll()
	m.login.errText = "Your session has expired. Please sign in again."
	return true
}
