// Package speech narrates assistant answers aloud, one at a time.
package speech

import (
	"context"
)

// =============================================================================
// SYNTHESIZER CAPABILITY
// =============================================================================

// Synthesizer is the platform speech capability. Speak blocks until the
// utterance finishes or ctx is cancelled; the controller drives cancellation
// through the context, never through the synthesizer directly.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// noMessage is the index value while Silent.
const noMessage = -1

// Controller owns the single playback slot.
type Controller struct {
	synth Synthesizer

	index      int // message currently speaking, or noMessage
	generation int // bumped on every start and every cancel
	cancel     context.CancelFunc
}

// NewController creates a silent controller over the given synthesizer.
// synth may be nil when the platform has no speech tool; the controller
// then stays permanently Silent.
func NewController(synth Synthesizer) *Controller {
	return &Controller{synth: synth, index: noMessage}
}

// Available reports whether the controller has a synthesizer to speak with.
func (c *Controller) Available() bool {
	return c.synth != nil
}

// SpeakingIndex returns the index of the message currently speaking. ok is
// false while Silent.
func (c *Controller) SpeakingIndex() (index int, ok bool) {
	if c.index == noMessage {
		return 0, false
	}
	return c.index, true
}

// Toggle flips playback for the message at index. If that message is already
// speaking, playback is cancelled and the controller falls Silent; playback
// is nil. Otherwise any current utterance is cancelled, text is stripped to
// plain narration, and the controller transitions to Speaking(index);
// playback is the blocking call the event loop runs asynchronously, and
// generation is handed back to Finished when it returns.
func (c *Controller) Toggle(index int, text string) (playback func() error, generation int) {
	if c.synth == nil {
		return nil, 0
	}
	if c.index == index {
		c.stop()
		return nil, 0
	}
	c.stop()

	narration := StripMarkdown(text)
	ctx, cancel := context.WithCancel(context.Background())

	c.generation++
	c.index = index
	c.cancel = cancel

	synth := c.synth
	return func() error { return synth.Speak(ctx, narration) }, c.generation
}

// Finished delivers a playback completion signal. It transitions to Silent
// only when generation still identifies the live utterance; completions of
// cancelled or superseded utterances are ignored. It reports whether the
// signal was applied.
func (c *Controller) Finished(generation int) bool {
	if c.index == noMessage || generation != c.generation {
		return false
	}
	c.index = noMessage
	c.cancel = nil
	return true
}

// Silence cancels any playback unconditionally. Invoked on logout, on
// conversation switches, and on any authentication rejection.
func (c *Controller) Silence() {
	c.stop()
}

// stop cancels the live utterance, if any, and bumps the generation so its
// eventual completion signal reads as stale.
func (c *Controller) stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.index != noMessage {
		c.generation++
		c.index = noMessage
	}
}
