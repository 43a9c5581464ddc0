// Package speech narrates assistant answers aloud, one at a time.
//
// The Controller is a two-state machine, Silent or Speaking(messageIndex),
// wrapped around an opaque Synthesizer. Toggling the message that is
// already speaking cancels it; toggling any other message cancels whatever
// was playing and starts the new utterance. Playback completion arrives
// asynchronously carrying a generation number, so the completion of an
// utterance that has since been cancelled or superseded can never flip the
// controller back to Silent under the wrong message, nor resurrect Speaking
// for an index that is no longer playing.
//
// Markdown is stripped before synthesis; nobody wants to hear "asterisk
// asterisk" in the middle of a sentence.
package speech
