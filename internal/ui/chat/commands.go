// Package chat is the Bubble Tea model for the lawchat client.
//
// This file holds the tea.Cmd constructors: each wraps one backend call or
// platform capability and delivers its completion as a typed message. The
// commands never mutate model state; every transition happens in the
// reducer when the message lands.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/archive"
	"github.com/kiransrisai/Legal-chatbot/internal/auth"
	"github.com/kiransrisai/Legal-chatbot/internal/config"
	"github.com/kiransrisai/Legal-chatbot/internal/turn"
)

// =============================================================================
// AUTH COMMANDS
// =============================================================================

func verifySessionCmd(gate *auth.Gate) tea.Cmd {
	return func() tea.Msg {
		return SessionVerifiedMsg{Result: gate.VerifySession(context.Background())}
	}
}

func loginCmd(gate *auth.Gate, email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := gate.Login(context.Background(), email, password)
		return LoginResultMsg{Session: sess, Error: err}
	}
}

func registerCmd(gate *auth.Gate, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := gate.Register(context.Background(), username, email, password)
		return RegisterResultMsg{Session: sess, Error: err}
	}
}

func logoutCmd(gate *auth.Gate) tea.Cmd {
	return func() tea.Msg {
		gate.Logout(context.Background())
		return LogoutDoneMsg{}
	}
}

// =============================================================================
// CONVERSATION COMMANDS
// =============================================================================

func listConversationsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		summaries, err := client.ListConversations(context.Background())
		return ConversationsMsg{Summaries: summaries, Error: err}
	}
}

func loadHistoryCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		messages, err := client.GetConversation(context.Background(), id)
		return HistoryMsg{ID: id, Messages: messages, Error: err}
	}
}

func createConversationCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		id, err := client.NewConversation(context.Background())
		return ConversationCreatedMsg{ID: id, Error: err}
	}
}

func deleteConversationCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteConversation(context.Background(), id)
		return ConversationDeletedMsg{ID: id, Error: err}
	}
}

// =============================================================================
// TURN COMMANDS
// =============================================================================

// chatCmd dispatches one turn: the vision endpoint when an image rides
// along, the text endpoint otherwise. The correlation token travels with
// the completion so the reducer can discard superseded results.
func chatCmd(client *api.Client, req *turn.Request) tea.Cmd {
	token := req.Token
	return func() tea.Msg {
		var resp *api.ChatResponse
		var err error
		if req.Image != nil {
			resp, err = client.ChatVision(context.Background(), req.Query, req.ConversationID,
				req.Image.Name, req.Image.MIME, req.Image.Data)
		} else {
			resp, err = client.Chat(context.Background(), req.Query, req.ConversationID)
		}
		return TurnResultMsg{Token: token, Response: resp, Error: err}
	}
}

// =============================================================================
// SIDE FLOW COMMANDS
// =============================================================================

func uploadDocumentCmd(client *api.Client, name, mimeType string, data []byte) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.UploadDocument(context.Background(), name, mimeType, data)
		if err != nil {
			return UploadResultMsg{Name: name, Error: err}
		}
		return UploadResultMsg{Name: name, Message: resp.Message}
	}
}

func transcribeCmd(client *api.Client, audio []byte) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Transcribe(context.Background(), audio)
		if err != nil {
			return TranscriptionMsg{Error: err}
		}
		return TranscriptionMsg{Text: resp.Transcription}
	}
}

// finishRecordingCmd collects the blob from a stopped recording.
func finishRecordingCmd(finish func() ([]byte, error)) tea.Cmd {
	return func() tea.Msg {
		audio, err := finish()
		return RecordingDoneMsg{Audio: audio, Error: err}
	}
}

// speakCmd runs one narration to completion.
func speakCmd(playback func() error, generation int) tea.Cmd {
	return func() tea.Msg {
		return SpeechDoneMsg{Generation: generation, Error: playback()}
	}
}

// =============================================================================
// BACKGROUND COMMANDS
// =============================================================================

// watchConfigCmd waits for the next live config reload.
func watchConfigCmd(updates <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// archiveTurnCmd records a completed turn locally, best-effort.
func archiveTurnCmd(arc *archive.Archive, conversationID, question, answer string) tea.Cmd {
	if arc == nil {
		return nil
	}
	return func() tea.Msg {
		arc.RecordTurn(conversationID, question, answer)
		return nil
	}
}
