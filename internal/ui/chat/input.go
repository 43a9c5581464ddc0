// Package chat is the Bubble Tea model for the lawchat client.
package chat

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// maxAttachmentBytes caps what the client will read into memory for an
// attachment or upload.
const maxAttachmentBytes = 20 << 20

// runSlashCommand handles input lines starting with "/". It reports whether
// the line was a command; non-commands fall through to a normal submit.
//
//	/attach <path>  stage an image for the next question
//	/upload <path>  send a document to the user's library
func (m Model) runSlashCommand() (handled bool, next tea.Model, cmd tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if !strings.HasPrefix(line, "/") {
		return false, m, nil
	}

	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch verb {
	case "/attach", "/upload":
		if arg == "" {
			m.alert = "Usage: " + verb + " <path>"
			return true, m, nil
		}
		m.input.Reset()
		return m.ingestFile(arg)

	default:
		m.alert = "Unknown command: " + verb
		return true, m, nil
	}
}

// ingestFile reads a local file and routes it by content type: images are
// staged on the next question, everything else goes to the document upload
// flow.
func (m Model) ingestFile(path string) (bool, tea.Model, tea.Cmd) {
	info, err := os.Stat(path)
	if err != nil {
		m.alert = "Cannot read " + path + ": " + err.Error()
		return true, m, nil
	}
	if info.Size() > maxAttachmentBytes {
		m.alert = "File is too large to send: " + filepath.Base(path)
		return true, m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.alert = "Cannot read " + path + ": " + err.Error()
		return true, m, nil
	}

	name := filepath.Base(path)
	mimeType := detectMIME(name, data)

	if m.deps.Turns.StageFile(name, mimeType, data) {
		m.refreshTranscript()
		return true, m, nil
	}

	if m.uploading {
		m.alert = "An upload is already in progress."
		return true, m, nil
	}
	m.uploading = true
	m.deps.Turns.BeginUpload(name)
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return true, m, tea.Batch(
		uploadDocumentCmd(m.deps.Client, name, mimeType, data),
		m.spinner.Tick(),
	)
}

// detectMIME resolves a content type from the file extension, sniffing the
// bytes when the extension is unknown.
func detectMIME(name string, data []byte) string {
	if mimeType := mime.TypeByExtension(filepath.Ext(name)); mimeType != "" {
		return mimeType
	}
	return http.DetectContentType(data)
}
