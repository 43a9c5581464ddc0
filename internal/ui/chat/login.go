// Package chat is the Bubble Tea model for the lawchat client.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// =============================================================================
// LOGIN / REGISTER FORM
// =============================================================================

// Field indices into loginForm.inputs. Register mode prepends the username
// field; login mode skips it.
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldCount
)

// loginForm is the unauthenticated surface: a login form that flips into a
// register form and back.
type loginForm struct {
	inputs      [fieldCount]textinput.Model
	focused     int
	registering bool
	busy        bool
	errText     string
}

func newLoginForm() loginForm {
	var f loginForm

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	f.inputs[fieldUsername] = username

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	f.inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	f.inputs[fieldPassword] = password

	f.focused = fieldEmail
	f.inputs[fieldEmail].Focus()
	return f
}

// firstField returns the first focusable field for the current mode.
func (f *loginForm) firstField() int {
	if f.registering {
		return fieldUsername
	}
	return fieldEmail
}

// toggleMode flips between login and register, resetting focus and errors.
func (f *loginForm) toggleMode() {
	f.registering = !f.registering
	f.errText = ""
	f.setFocus(f.firstField())
}

// setFocus moves keyboard focus to the given field.
func (f *loginForm) setFocus(index int) {
	f.focused = index
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// cycleFocus advances focus to the next field for the current mode.
func (f *loginForm) cycleFocus() {
	next := f.focused + 1
	if next >= fieldCount {
		next = f.firstField()
	}
	if !f.registering && next == fieldUsername {
		next = fieldEmail
	}
	f.setFocus(next)
}

// values returns the trimmed form values.
func (f *loginForm) values() (username, email, password string) {
	return strings.TrimSpace(f.inputs[fieldUsername].Value()),
		strings.TrimSpace(f.inputs[fieldEmail].Value()),
		f.inputs[fieldPassword].Value()
}

// reset clears the password and any error, keeping the email for retry.
func (f *loginForm) reset() {
	f.inputs[fieldPassword].Reset()
	f.busy = false
}

// update routes key events into the focused field.
func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// view renders the form centered in the given window.
func (f *loginForm) view(width, height int) string {
	title := "Legal Chatbot"
	mode := "Sign in"
	hint := "Tab: next field  |  Enter: sign in  |  C-t: create an account  |  C-c: quit"
	if f.registering {
		mode = "Create an account"
		hint = "Tab: next field  |  Enter: register  |  C-t: back to sign in  |  C-c: quit"
	}

	var b strings.Builder
	b.WriteString(styles.HeaderStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FormLabelStyle.Render(mode))
	b.WriteString("\n\n")

	if f.registering {
		b.WriteString(styles.FormLabelStyle.Render("Username"))
		b.WriteString("\n")
		b.WriteString(f.inputs[fieldUsername].View())
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FormLabelStyle.Render("Email"))
	b.WriteString("\n")
	b.WriteString(f.inputs[fieldEmail].View())
	b.WriteString("\n\n")
	b.WriteString(styles.FormLabelStyle.Render("Password"))
	b.WriteString("\n")
	b.WriteString(f.inputs[fieldPassword].View())
	b.WriteString("\n\n")

	if f.busy {
		b.WriteString(styles.HintStyle.Render("Contacting server..."))
		b.WriteString("\n")
	}
	if f.errText != "" {
		b.WriteString(styles.FormErrorStyle.Render(f.errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.HintStyle.Render(hint))

	form := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(1, 3).
		Render(b.String())

	if width > 0 && height > 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}
