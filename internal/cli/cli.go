// cli.go - subcommand dispatch for the lawchat binary.

package cli

import (
	"fmt"
	"os"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/archive"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/config"
	"github.com/kiransrisai/Legal-chatbot/internal/session"
)

// =============================================================================
// APP
// =============================================================================

// App bundles the collaborators every subcommand needs.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Store   *session.Store
	Gate    *auth.Gate
	Archive *archive.Archive // nil when the local archive is disabled
	Version string
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes one subcommand and returns a process exit code.
func (a *App) Run(args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return 0
	}

	command := args[0]
	parser := NewArgParser(args[1:])

	var err error
	switch command {
	case "ask":
		err = a.runAsk(parser)
	case "chat":
		err = a.runChat(parser)
	case "login":
		err = a.runLogin(parser)
	case "register":
		err = a.runRegister(parser)
	case "logout":
		err = a.runLogout()
	case "status":
		err = a.runStatus()
	case "history":
		err = a.runHistory(parser)
	case "version":
		fmt.Println("lawchat", a.Version)
	case "help", "-h", "--help":
		a.printUsage()
	default:
		fmt.Fprintf(os.Stderr, "lawchat: unknown command %q (try 'lawchat help')\n", command)
		return 2
	}

	if err != nil {
		if api.IsAuthRejected(err) {
			a.Gate.Reset()
			fmt.Fprintln(os.Stderr, "lawchat: your session has expired, run 'lawchat login'")
			return 1
		}
		fmt.Fprintln(os.Stderr, "lawchat:", errText(err))
		return 1
	}
	return 0
}

// errText prefers the backend's own error message.
func errText(err error) string {
	if text := api.ServerText(err); text != "" {
		return text
	}
	return err.Error()
}

// requireSession fails fast for commands that need an authenticated session.
func (a *App) requireSession() error {
	if a.Store.Load() == nil {
		return fmt.Errorf("not signed in, run 'lawchat login' first")
	}
	return nil
}

func (a *App) printUsage() {
	fmt.Print(`lawchat - legal research chatbot client

Usage:
  lawchat                           start the interactive TUI
  lawchat ask <question...>         ask one question and print the answer
  lawchat chat                      line-based chat loop
  lawchat login [--email <email>]   sign in and persist the session
  lawchat register                  create an account and sign in
  lawchat logout                    sign out and clear the stored session
  lawchat status                    show backend and session state
  lawchat history <subcommand>      browse the local question archive
  lawchat version                   print the version

Ask flags:
  --conversation <id>   continue an existing conversation
  --plain               print the raw answer without markdown rendering

History subcommands:
  recent [--limit N]          newest archived turns
  search <terms...> [--limit N]
  show <conversation-id>      all archived turns of one conversation
`)
}
