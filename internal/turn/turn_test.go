package turn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiransrisai/Legal-chatbot/internal/api"
	"github.com/kiransrisai/Legal-chatbot/internal/model"
)

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmitBasicTurn(t *testing.T) {
	o := New()

	req := o.Submit("What is tort law?", "", "")
	require.NotNil(t, req)
	assert.Equal(t, "What is tort law?", req.Query)
	assert.Empty(t, req.ConversationID, "no active conversation means no id on the wire")
	assert.Nil(t, req.Image)
	assert.NotEmpty(t, req.Token)
	assert.Equal(t, Submitting, o.State())

	o.MarkAwaiting()
	assert.Equal(t, AwaitingResponse, o.State())

	require.Len(t, o.Messages(), 1)
	assert.Equal(t, model.RoleUser, o.Messages()[0].Role)
	assert.Equal(t, "What is tort law?", o.Messages()[0].Content)
}

func TestSubmitTrimsInput(t *testing.T) {
	o := New()
	req := o.Submit("  negligence?  ", "", "c1")
	require.NotNil(t, req)
	assert.Equal(t, "negligence?", req.Query)
	assert.Equal(t, "c1", req.ConversationID)
}

func TestSubmitEmptyIsSilentNoOp(t *testing.T) {
	o := New()
	assert.Nil(t, o.Submit("", "", ""))
	assert.Nil(t, o.Submit("   \t ", "", ""))
	assert.Equal(t, Idle, o.State())
	assert.Empty(t, o.Messages())
}

func TestSubmitEmptyWithStagedImageIsAccepted(t *testing.T) {
	o := New()
	require.True(t, o.StageFile("clause.png", "image/png", []byte{1}))

	req := o.Submit("", "", "c1")
	require.NotNil(t, req)
	require.NotNil(t, req.Image)
	assert.Equal(t, "clause.png", req.Image.Name)
}

func TestSubmitWhileBusyIsNoOp(t *testing.T) {
	o := New()
	first := o.Submit("first", "", "c1")
	require.NotNil(t, first)

	assert.Nil(t, o.Submit("second", "", "c1"), "mid-flight submit must be rejected")
	o.MarkAwaiting()
	assert.Nil(t, o.Submit("third", "", "c1"))
	assert.Len(t, o.Messages(), 1, "rejected submits must not append messages")
}

func TestSubmitWithOverrideClearsRelatedQuestions(t *testing.T) {
	o := New()
	req := o.Submit("What is tort law?", "", "")
	require.NotNil(t, req)
	_, applied := o.ApplyResponse(req.Token, "", &api.ChatResponse{
		Answer:           "Tort law covers civil wrongs.",
		RelatedQuestions: []string{"What is negligence?"},
		ConversationID:   "c1",
	})
	require.True(t, applied)

	// Clicking the suggestion starts the next turn with it as override.
	req = o.Submit("", "What is negligence?", "c1")
	require.NotNil(t, req)
	assert.Equal(t, "What is negligence?", req.Query)

	last := model.LastAssistantMessage(o.Messages())
	require.NotNil(t, last)
	assert.Empty(t, last.RelatedQuestions, "used suggestions must not linger")
}

func TestOverrideTakesPrecedenceOverTypedText(t *testing.T) {
	o := New()
	req := o.Submit("half-typed draft", "What is negligence?", "c1")
	require.NotNil(t, req)
	assert.Equal(t, "What is negligence?", req.Query)
}

// =============================================================================
// COMPLETION
// =============================================================================

func TestApplyResponseAdoptsNewConversation(t *testing.T) {
	o := New()
	req := o.Submit("What is tort law?", "", "")
	require.NotNil(t, req)
	o.MarkAwaiting()

	adopted, applied := o.ApplyResponse(req.Token, "", &api.ChatResponse{
		Answer:           "Tort law covers civil wrongs.",
		RelatedQuestions: []string{"What is negligence?"},
		ConversationID:   "c1",
	})

	require.True(t, applied)
	assert.Equal(t, "c1", adopted)
	assert.Equal(t, Idle, o.State())

	msgs := o.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.Equal(t, []string{"What is negligence?"}, msgs[1].RelatedQuestions)
}

func TestApplyResponseWithExistingConversationAdoptsNothing(t *testing.T) {
	o := New()
	req := o.Submit("and negligence?", "", "c1")
	require.NotNil(t, req)

	adopted, applied := o.ApplyResponse(req.Token, "c1", &api.ChatResponse{
		Answer:         "Negligence is...",
		ConversationID: "c1",
	})
	require.True(t, applied)
	assert.Empty(t, adopted)
}

func TestApplyResponseClearsStagedImage(t *testing.T) {
	o := New()
	o.StageFile("clause.png", "image/png", []byte{1})
	req := o.Submit("Explain this clause", "", "c1")
	require.NotNil(t, req)

	_, applied := o.ApplyResponse(req.Token, "c1", &api.ChatResponse{Answer: "ok", ConversationID: "c1"})
	require.True(t, applied)
	assert.Nil(t, o.StagedImage(), "staged image is cleared after a successful send")
}

func TestApplyFailureKeepsStagedImage(t *testing.T) {
	o := New()
	o.StageFile("clause.png", "image/png", []byte{1})
	req := o.Submit("Explain this clause", "", "c1")
	require.NotNil(t, req)

	applied := o.ApplyFailure(req.Token, "c1", errors.New("boom"))
	require.True(t, applied)
	assert.NotNil(t, o.StagedImage(), "staged image survives a failed send for retry")
	assert.Equal(t, Idle, o.State())

	msgs := o.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
	assert.True(t, msgs[1].IsError)
	assert.Equal(t, genericTurnError, msgs[1].Content)
}

func TestApplyFailurePreservesServerText(t *testing.T) {
	o := New()
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)

	serverErr := &api.ClientError{Type: api.ErrTypeServer, Message: "Daily quota exceeded"}
	require.True(t, o.ApplyFailure(req.Token, "c1", serverErr))
	assert.Equal(t, "Daily quota exceeded", o.Messages()[1].Content)
}

func TestStaleTokenIsDiscarded(t *testing.T) {
	o := New()
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)

	_, applied := o.ApplyResponse("not-the-token", "c1", &api.ChatResponse{Answer: "x"})
	assert.False(t, applied)
	assert.Equal(t, Submitting, o.State(), "a stale completion must not finish the live turn")

	// The real completion still lands.
	_, applied = o.ApplyResponse(req.Token, "c1", &api.ChatResponse{Answer: "y", ConversationID: "c1"})
	assert.True(t, applied)
}

func TestCompletionAfterConversationSwitchIsDiscarded(t *testing.T) {
	o := New()
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)
	o.MarkAwaiting()

	// The user switched to c2 while the request was on the wire.
	o.SetHistory([]api.HistoryMessage{{Role: "user", Content: "old"}})

	_, applied := o.ApplyResponse(req.Token, "c2", &api.ChatResponse{Answer: "late", ConversationID: "c1"})
	assert.False(t, applied)
	assert.Equal(t, Idle, o.State(), "a discarded turn still releases the single-flight slot")
	require.Len(t, o.Messages(), 1)
	assert.Equal(t, "old", o.Messages()[0].Content, "a stale answer must not leak into another transcript")
}

func TestFailureAfterConversationSwitchIsDiscarded(t *testing.T) {
	o := New()
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)
	o.SetHistory(nil)

	assert.False(t, o.ApplyFailure(req.Token, "c2", errors.New("late failure")))
	assert.Equal(t, Idle, o.State())
	assert.Empty(t, o.Messages())
}

func TestCompletionAppliedTwiceIsIdempotent(t *testing.T) {
	o := New()
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)

	_, applied := o.ApplyResponse(req.Token, "c1", &api.ChatResponse{Answer: "x", ConversationID: "c1"})
	require.True(t, applied)
	_, applied = o.ApplyResponse(req.Token, "c1", &api.ChatResponse{Answer: "x", ConversationID: "c1"})
	assert.False(t, applied, "a consumed token must not apply again")
	assert.Len(t, o.Messages(), 2)
}

// =============================================================================
// FILE CLASSIFICATION
// =============================================================================

func TestStageFileClassification(t *testing.T) {
	tests := []struct {
		name   string
		mime   string
		staged bool
	}{
		{"photo.jpg", "image/jpeg", true},
		{"scan.png", "image/png", true},
		{"contract.pdf", "application/pdf", false},
		{"notes.txt", "text/plain", false},
		{"weird", "image/", false},
		{"unknown.bin", "", false},
	}

	for _, tt := range tests {
		o := New()
		got := o.StageFile(tt.name, tt.mime, []byte{1})
		if got != tt.staged {
			t.Errorf("StageFile(%q, %q) = %v, want %v", tt.name, tt.mime, got, tt.staged)
		}
		if tt.staged && o.StagedImage() == nil {
			t.Errorf("StageFile(%q) should stage the attachment", tt.name)
		}
	}
}

func TestStageFileReplacesPrevious(t *testing.T) {
	o := New()
	o.StageFile("a.png", "image/png", []byte{1})
	o.StageFile("b.jpg", "image/jpeg", []byte{2})
	require.NotNil(t, o.StagedImage())
	assert.Equal(t, "b.jpg", o.StagedImage().Name, "at most one attachment may be staged")
}

func TestDiscardImage(t *testing.T) {
	o := New()
	o.StageFile("a.png", "image/png", []byte{1})
	o.DiscardImage()
	assert.Nil(t, o.StagedImage())
}

// =============================================================================
// SIDE FLOWS
// =============================================================================

func TestUploadSideFlow(t *testing.T) {
	o := New()
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)

	// The upload narrates through the transcript without touching the turn.
	o.BeginUpload("contract.pdf")
	assert.Equal(t, Submitting, o.State())
	o.CompleteUpload("File 'contract.pdf' processed successfully.")

	msgs := o.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, model.RoleSystem, msgs[1].Role)
	assert.Equal(t, "Uploading contract.pdf...", msgs[1].Content)
	assert.Equal(t, model.RoleSystem, msgs[2].Role)
	assert.Equal(t, "File 'contract.pdf' processed successfully.", msgs[2].Content)
}

func TestUploadFailure(t *testing.T) {
	o := New()
	o.BeginUpload("contract.pdf")
	o.FailUpload("contract.pdf", &api.ClientError{Type: api.ErrTypeServer, Message: "Unsupported file type"})

	msgs := o.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Unsupported file type", msgs[1].Content)

	o.FailUpload("contract.pdf", errors.New("dial tcp: refused"))
	assert.Equal(t, "Upload of contract.pdf failed. Please try again.", o.Messages()[2].Content)
}

func TestMergeTranscription(t *testing.T) {
	tests := []struct {
		input, transcription, want string
	}{
		{"", "what is a tort", "what is a tort"},
		{"please explain", "negligence", "please explain negligence"},
		{"trailing space ", "word", "trailing space word"},
		{"keep me", "", "keep me"},
		{"keep me", "   ", "keep me"},
	}
	for _, tt := range tests {
		if got := MergeTranscription(tt.input, tt.transcription); got != tt.want {
			t.Errorf("MergeTranscription(%q, %q) = %q, want %q", tt.input, tt.transcription, got, tt.want)
		}
	}
}

// =============================================================================
// RESET / HISTORY
// =============================================================================

func TestSetHistoryReplacesWholesale(t *testing.T) {
	o := New()
	req := o.Submit("hello", "", "")
	require.NotNil(t, req)
	_, applied := o.ApplyResponse(req.Token, "", &api.ChatResponse{Answer: "hi", ConversationID: "c1"})
	require.True(t, applied)

	o.SetHistory([]api.HistoryMessage{
		{Role: "user", Content: "old question"},
		{Role: "assistant", Content: "old answer"},
	})

	msgs := o.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "old question", msgs[0].Content)
	assert.Equal(t, model.RoleAssistant, msgs[1].Role)
}

func TestReset(t *testing.T) {
	o := New()
	o.StageFile("a.png", "image/png", []byte{1})
	req := o.Submit("question", "", "c1")
	require.NotNil(t, req)

	o.Reset()

	assert.Equal(t, Idle, o.State())
	assert.Empty(t, o.Messages())
	assert.Nil(t, o.StagedImage())

	// The completion of the pre-reset turn must not resurrect anything.
	_, applied := o.ApplyResponse(req.Token, "c1", &api.ChatResponse{Answer: "late"})
	assert.False(t, applied)
	assert.Empty(t, o.Messages())
}
