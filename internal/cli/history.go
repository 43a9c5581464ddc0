// history.go - browsing the local question archive.

package cli

import (
	"fmt"

	"github.com/kiransrisai/Legal-chatbot/internal/archive"
	"github.com/kiransrisai/Legal-chatbot/internal/util"
)

// runHistory dispatches the archive subcommands. The archive is local and
// optional; everything here works offline.
func (a *App) runHistory(args *ArgParser) error {
	if a.Archive == nil {
		return fmt.Errorf("the local archive is disabled in the configuration")
	}

	switch args.Subcommand() {
	case "recent", "":
		turns, err := a.Archive.RecentTurns(args.FlagIntOrDefault("limit", 10))
		if err != nil {
			return err
		}
		printTurns(turns)
		return nil

	case "search":
		query := args.JoinFrom(1)
		if query == "" {
			return fmt.Errorf("usage: lawchat history search <terms...>")
		}
		turns, err := a.Archive.Search(query, args.FlagIntOrDefault("limit", 20))
		if err != nil {
			return err
		}
		printTurns(turns)
		return nil

	case "show":
		id := args.Positional(1)
		if id == "" {
			return fmt.Errorf("usage: lawchat history show <conversation-id>")
		}
		turns, err := a.Archive.ConversationTurns(id)
		if err != nil {
			return err
		}
		printTurns(turns)
		return nil

	default:
		return fmt.Errorf("unknown history subcommand %q (recent, search, show)", args.Subcommand())
	}
}

func printTurns(turns []archive.Turn) {
	if len(turns) == 0 {
		fmt.Println("nothing archived")
		return
	}
	for _, t := range turns {
		fmt.Printf("[%s] %s\n", t.CreatedAt.Format("2006-01-02 15:04"), t.ConversationID)
		fmt.Println("  Q:", util.TruncateRunes(util.CollapseWhitespace(t.Question), 100))
		fmt.Println("  A:", util.TruncateRunes(util.CollapseWhitespace(t.Answer), 160))
	}
}
