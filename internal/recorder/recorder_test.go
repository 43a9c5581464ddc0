package recorder

import (
	"errors"
	"testing"
	"time"
)

// fakeCapture counts Begin/End calls and returns a canned blob.
type fakeCapture struct {
	begins, ends int
	beginErr     error
	blob         []byte
}

func (f *fakeCapture) Begin() error {
	f.begins++
	return f.beginErr
}

func (f *fakeCapture) End() ([]byte, error) {
	f.ends++
	return f.blob, nil
}

func TestStartStopRoundTrip(t *testing.T) {
	capture := &fakeCapture{blob: []byte("RIFF")}
	a := NewAdapter(capture)

	if a.Recording() {
		t.Error("fresh adapter should be idle")
	}
	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !a.Recording() {
		t.Error("adapter should be recording after Start")
	}

	finish, ok := a.Stop()
	if !ok {
		t.Fatal("Stop of an active recording should produce a finish func")
	}
	if a.Recording() {
		t.Error("adapter should be idle as soon as Stop returns")
	}

	blob, err := finish()
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if string(blob) != "RIFF" {
		t.Errorf("blob = %q, want RIFF", blob)
	}
	if capture.begins != 1 || capture.ends != 1 {
		t.Errorf("Begin/End called %d/%d times, want 1/1", capture.begins, capture.ends)
	}
}

func TestStartWhileRecordingIsRejected(t *testing.T) {
	capture := &fakeCapture{}
	a := NewAdapter(capture)

	if err := a.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := a.Start(); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("second Start = %v, want ErrAlreadyRecording", err)
	}
	if capture.begins != 1 {
		t.Errorf("Begin called %d times, want 1", capture.begins)
	}
}

func TestStopWhileIdleIsNoOp(t *testing.T) {
	capture := &fakeCapture{}
	a := NewAdapter(capture)

	if _, ok := a.Stop(); ok {
		t.Error("Stop while idle should produce nothing")
	}
	if capture.ends != 0 {
		t.Error("Stop while idle must not touch the capture")
	}
}

func TestStopConsumesExactlyOnce(t *testing.T) {
	capture := &fakeCapture{blob: []byte("x")}
	a := NewAdapter(capture)

	a.Start()
	if _, ok := a.Stop(); !ok {
		t.Fatal("first Stop should succeed")
	}
	if _, ok := a.Stop(); ok {
		t.Error("second Stop should produce nothing")
	}
}

func TestStartErrorLeavesAdapterIdle(t *testing.T) {
	capture := &fakeCapture{beginErr: ErrNoRecorder}
	a := NewAdapter(capture)

	if err := a.Start(); !errors.Is(err, ErrNoRecorder) {
		t.Errorf("Start = %v, want ErrNoRecorder", err)
	}
	if a.Recording() {
		t.Error("a failed Start must leave the adapter idle")
	}
}

// blockingCapture parks End until released, signalling both edges so tests
// can observe the discard happening off the calling goroutine.
type blockingCapture struct {
	started chan struct{}
	release chan struct{}
	done    chan struct{}
}

func newBlockingCapture() *blockingCapture {
	return &blockingCapture{
		started: make(chan struct{}),
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (b *blockingCapture) Begin() error { return nil }

func (b *blockingCapture) End() ([]byte, error) {
	close(b.started)
	<-b.release
	close(b.done)
	return nil, nil
}

func TestAbortDiscardsWithoutBlocking(t *testing.T) {
	capture := newBlockingCapture()
	a := NewAdapter(capture)

	a.Start()
	// A synchronous Abort would deadlock here: End stays parked until the
	// release below, which only happens after Abort returns.
	a.Abort()

	if a.Recording() {
		t.Error("Abort should leave the adapter idle")
	}

	select {
	case <-capture.started:
	case <-time.After(time.Second):
		t.Fatal("Abort never ended the capture")
	}
	close(capture.release)

	select {
	case <-capture.done:
	case <-time.After(time.Second):
		t.Fatal("capture End never completed")
	}

	// Aborting while idle is harmless.
	a.Abort()
}
