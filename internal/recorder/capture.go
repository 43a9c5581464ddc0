// Package recorder captures one voice note at a time.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// =============================================================================
// EXEC CAPTURE
// =============================================================================

// ErrNoRecorder is returned when no recording tool exists on this system.
var ErrNoRecorder = errors.New("no audio recording tool available")

// ExecCapture records a WAV file through a command-line tool. The process
// runs until End interrupts it, which lets the tool finalize the WAV header
// before the file is read back.
type ExecCapture struct {
	cmd  *exec.Cmd
	path string
}

// NewCapture returns the platform capture capability.
func NewCapture() *ExecCapture {
	return &ExecCapture{}
}

// Available reports whether a recording tool exists on this system.
func (c *ExecCapture) Available() bool {
	_, _, err := lookupRecorder("")
	return err == nil
}

// Begin starts recording into a temporary WAV file.
func (c *ExecCapture) Begin() error {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("lawchat-rec-%d.wav", time.Now().UnixNano()))

	tool, args, err := lookupRecorder(path)
	if err != nil {
		return err
	}

	cmd := exec.Command(tool, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start recorder: %w", err)
	}

	c.cmd = cmd
	c.path = path
	return nil
}

// End stops the recording and returns the captured bytes. The temporary
// file is removed regardless of the outcome.
func (c *ExecCapture) End() ([]byte, error) {
	if c.cmd == nil {
		return nil, errors.New("no recording in progress")
	}
	cmd, path := c.cmd, c.path
	c.cmd, c.path = nil, ""
	defer os.Remove(path)

	// SIGINT lets the tool close the WAV properly; fall back to Kill on
	// platforms that cannot deliver it.
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}
	cmd.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("recording is empty")
	}
	return data, nil
}

// lookupRecorder finds the recording binary and its arguments for this
// platform. path may be empty when only probing availability.
func lookupRecorder(path string) (string, []string, error) {
	type candidate struct {
		name string
		args []string
	}

	var candidates []candidate
	switch runtime.GOOS {
	case "darwin":
		candidates = []candidate{
			{"rec", []string{"-q", path}},
			{"ffmpeg", []string{"-loglevel", "quiet", "-f", "avfoundation", "-i", ":0", path}},
		}
	case "windows":
		candidates = []candidate{
			{"ffmpeg", []string{"-loglevel", "quiet", "-f", "dshow", "-i", "audio=default", path}},
		}
	default:
		candidates = []candidate{
			{"arecord", []string{"-q", "-f", "cd", "-t", "wav", path}},
			{"rec", []string{"-q", path}},
			{"ffmpeg", []string{"-loglevel", "quiet", "-f", "alsa", "-i", "default", path}},
		}
	}

	for _, c := range candidates {
		if tool, err := exec.LookPath(c.name); err == nil {
			return tool, c.args, nil
		}
	}
	return "", nil, ErrNoRecorder
}
