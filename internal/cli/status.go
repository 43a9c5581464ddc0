// status.go - backend and session diagnostics.

package cli

import (
	"context"
	"fmt"

	"github.com/kiransrisai/Legal-chatbot/internal/config"
)

// runStatus reports where the client points and whether the stored session
// still verifies.
func (a *App) runStatus() error {
	fmt.Println("Backend: ", a.Config.Backend.URL)
	if path, err := config.PathTOML(); err == nil {
		fmt.Println("Config:  ", path)
	}

	sess := a.Store.Load()
	if sess == nil {
		fmt.Println("Session:  not signed in")
		return nil
	}

	fmt.Println("Session: ", sess.Username)
	valid, err := a.Client.Verify(context.Background())
	switch {
	case err != nil:
		fmt.Println("Verify:   unreachable:", errText(err))
	case valid:
		fmt.Println("Verify:   ok")
	default:
		fmt.Println("Verify:   rejected, run 'lawchat login'")
	}

	if a.Archive != nil {
		if turns, err := a.Archive.RecentTurns(1); err == nil {
			if len(turns) == 0 {
				fmt.Println("Archive:  empty")
			} else {
				fmt.Println("Archive:  last turn", turns[0].CreatedAt.Format("2006-01-02 15:04"))
			}
		}
	} else {
		fmt.Println("Archive:  disabled")
	}
	return nil
}
