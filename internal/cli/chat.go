// chat.go - line-based chat loop for terminals where the TUI is overkill.

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/kiransrisai/Legal-chatbot/internal/model"
	"github.com/kiransrisai/Legal-chatbot/internal/registry"
)

// runChat runs a readline loop against the backend. Conversation state is
// tracked the same way the TUI tracks it, through a registry.
func (a *App) runChat(args *ArgParser) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	reg := registry.New()
	if summaries, err := a.Client.ListConversations(context.Background()); err == nil {
		reg.SetSummaries(summaries)
	}
	if id := args.Flag("conversation"); id != "" {
		reg.Activate(id)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("lawchat chat loop. /help lists commands, /quit leaves.")

	for {
		input, err := line.Prompt("> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := a.chatCommand(reg, input); quit {
				return nil
			}
			continue
		}

		resp, err := a.Client.Chat(context.Background(), input, reg.ActiveID())
		if err != nil {
			fmt.Println("error:", errText(err))
			continue
		}
		if reg.ActiveID() == "" && resp.ConversationID != "" {
			reg.Activate(resp.ConversationID)
		}

		fmt.Print(renderMarkdown(resp.Answer))
		for _, q := range resp.RelatedQuestions {
			fmt.Println("  ?", q)
		}

		if a.Archive != nil {
			a.Archive.RecordTurn(reg.ActiveID(), input, resp.Answer)
		}
	}
}

// chatCommand handles the /slash commands of the loop. It reports whether
// the loop should exit.
func (a *App) chatCommand(reg *registry.Registry, input string) (quit bool) {
	verb, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	ctx := context.Background()

	switch verb {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Println("/list          show conversations")
		fmt.Println("/switch <n>    switch to conversation n from /list")
		fmt.Println("/new           start a fresh conversation")
		fmt.Println("/delete <n>    delete conversation n from /list")
		fmt.Println("/quit          leave the loop")

	case "/list":
		if summaries, err := a.Client.ListConversations(ctx); err == nil {
			reg.SetSummaries(summaries)
		}
		for i, s := range reg.Summaries() {
			marker := "  "
			if s.ID == reg.ActiveID() {
				marker = "* "
			}
			fmt.Printf("%s%2d. %s (%d messages)\n", marker, i+1, s.DisplayTitle(), s.MessageCount)
		}

	case "/switch":
		target := pickSummary(arg, reg.Summaries())
		if target == nil {
			fmt.Println("usage: /switch <n> (see /list)")
			return false
		}
		reg.Activate(target.ID)
		fmt.Println("switched to:", target.DisplayTitle())

	case "/new":
		id, err := a.Client.NewConversation(ctx)
		if err != nil {
			fmt.Println("error:", errText(err))
			return false
		}
		reg.Activate(id)
		fmt.Println("started a new conversation")

	case "/delete":
		target := pickSummary(arg, reg.Summaries())
		if target == nil {
			fmt.Println("usage: /delete <n> (see /list)")
			return false
		}
		if err := a.Client.DeleteConversation(ctx, target.ID); err != nil {
			fmt.Println("error:", errText(err))
			return false
		}
		reg.ApplyDelete(target.ID)
		if fresh, err := a.Client.ListConversations(ctx); err == nil {
			reg.SetSummaries(fresh)
		}
		fmt.Println("deleted")

	default:
		fmt.Println("unknown command, /help lists them")
	}
	return false
}

// pickSummary resolves a 1-based /list index into its summary, or nil.
func pickSummary(arg string, summaries []model.ConversationSummary) *model.ConversationSummary {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(summaries) {
		return nil
	}
	return &summaries[n-1]
}
