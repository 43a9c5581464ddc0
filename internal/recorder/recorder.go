// Package recorder captures one voice note at a time.
package recorder

import "errors"

// =============================================================================
// CAPTURE CAPABILITY
// =============================================================================

// Capture is the platform audio capability. Begin starts capturing and
// returns immediately; End stops the capture and hands back the recorded
// bytes. The Adapter guarantees Begin/End alternate strictly.
type Capture interface {
	Begin() error
	End() ([]byte, error)
}

// =============================================================================
// ADAPTER
// =============================================================================

// ErrAlreadyRecording is returned by Start while a recording is active.
var ErrAlreadyRecording = errors.New("a recording is already in progress")

// Adapter enforces the single-flight recording discipline over a Capture.
type Adapter struct {
	capture   Capture
	recording bool
}

// NewAdapter creates an idle adapter over the given capture capability.
func NewAdapter(capture Capture) *Adapter {
	return &Adapter{capture: capture}
}

// Recording reports whether a recording is active.
func (a *Adapter) Recording() bool {
	return a.recording
}

// Start begins a recording. A second Start while one is active is rejected
// without touching the live recording.
func (a *Adapter) Start() error {
	if a.recording {
		return ErrAlreadyRecording
	}
	if err := a.capture.Begin(); err != nil {
		return err
	}
	a.recording = true
	return nil
}

// Stop ends the active recording. It returns a finish function the event
// loop runs asynchronously to collect the blob; ok is false when nothing
// was recording, in which case there is nothing to finish. The adapter is
// idle again as soon as Stop returns, so the blob is handed out exactly
// once.
func (a *Adapter) Stop() (finish func() ([]byte, error), ok bool) {
	if !a.recording {
		return nil, false
	}
	a.recording = false

	capture := a.capture
	return func() ([]byte, error) { return capture.End() }, true
}

// Abort ends and discards any active recording. Invoked on logout and on
// any authentication rejection, both of which run on the event loop, so
// the blocking collection happens off it.
func (a *Adapter) Abort() {
	if finish, ok := a.Stop(); ok {
		go finish()
	}
}
