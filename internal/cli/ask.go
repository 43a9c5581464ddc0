// ask.go - one-shot question command.

package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/kiransrisai/Legal-chatbot/internal/ui/components"
	"github.com/kiransrisai/Legal-chatbot/internal/ui/styles"
)

// runAsk sends a single question and prints the rendered answer. Related
// questions are listed under the answer so a follow-up is one copy-paste
// away.
func (a *App) runAsk(args *ArgParser) error {
	question := args.JoinFrom(0)
	if question == "" {
		return fmt.Errorf("usage: lawchat ask <question...>")
	}
	if err := a.requireSession(); err != nil {
		return err
	}

	resp, err := a.Client.Chat(context.Background(), question, args.Flag("conversation"))
	if err != nil {
		return err
	}

	if args.BoolFlag("plain") {
		fmt.Println(resp.Answer)
	} else {
		fmt.Print(renderMarkdown(resp.Answer))
	}

	if len(resp.RelatedQuestions) > 0 {
		fmt.Println("\nRelated questions:")
		for _, q := range resp.RelatedQuestions {
			fmt.Println("  -", q)
		}
	}
	if resp.ConversationID != "" {
		fmt.Println("\nConversation:", resp.ConversationID)
	}

	if a.Archive != nil {
		a.Archive.RecordTurn(resp.ConversationID, question, resp.Answer)
	}
	return nil
}

// renderMarkdown renders an answer for the terminal. When full markdown
// rendering fails, code fences are still highlighted.
func renderMarkdown(text string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.GlamourStyle()),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return components.ParseCodeBlocks(text, 100) + "\n"
	}
	out, err := renderer.Render(text)
	if err != nil {
		return components.ParseCodeBlocks(text, 100) + "\n"
	}
	return out
}
