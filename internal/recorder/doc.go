// Package recorder captures one voice note at a time.
//
// The Adapter wraps an opaque Capture capability behind a single-flight
// start/stop pair: starting while a recording is active is rejected, and
// stopping while idle produces nothing. A finished recording surfaces as an
// opaque byte blob consumed exactly once, by the transcription flow.
//
// The bundled ExecCapture records through whatever command-line tool the
// system has (arecord, sox's rec, or ffmpeg), writing a WAV file that is
// read back and deleted when the recording stops.
package recorder
