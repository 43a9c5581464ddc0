// Package speech narrates assistant answers aloud, one at a time.
package speech

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// =============================================================================
// PLATFORM SYNTHESIZER
// =============================================================================

// ErrNoSynthesizer is returned when no speech tool exists on this system.
var ErrNoSynthesizer = errors.New("no speech synthesizer available")

// sapiScript reads the narration from stdin to sidestep argument quoting.
const sapiScript = `$t = [Console]::In.ReadToEnd();` +
	`Add-Type -AssemblyName System.Speech;` +
	`(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak($t)`

// ExecSynthesizer speaks through whatever the platform provides: say on
// macOS, espeak-ng or espeak on Linux, the SAPI bridge via PowerShell on
// Windows. Cancelling the context kills the process mid-utterance.
type ExecSynthesizer struct{}

// NewSynthesizer returns the platform synthesizer.
func NewSynthesizer() *ExecSynthesizer {
	return &ExecSynthesizer{}
}

// Available reports whether a speech tool exists on this system.
func (s *ExecSynthesizer) Available() bool {
	_, err := lookupTool()
	return err == nil
}

// Speak blocks until the utterance finishes or ctx is cancelled.
func (s *ExecSynthesizer) Speak(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cmd, err := buildCommand(ctx, text)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		// Cancellation is the caller's doing, not a failure.
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// lookupTool finds the speech binary for this platform.
func lookupTool() (string, error) {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"say"}
	case "windows":
		candidates = []string{"powershell"}
	default:
		candidates = []string{"espeak-ng", "espeak"}
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNoSynthesizer
}

// buildCommand assembles the platform invocation with the narration fed on
// stdin wherever the tool allows it.
func buildCommand(ctx context.Context, text string) (*exec.Cmd, error) {
	tool, err := lookupTool()
	if err != nil {
		return nil, err
	}

	var cmd *exec.Cmd
	switch {
	case strings.HasSuffix(tool, "say"):
		cmd = exec.CommandContext(ctx, tool, "-f", "-")
		cmd.Stdin = strings.NewReader(text)
	case strings.Contains(tool, "powershell"):
		cmd = exec.CommandContext(ctx, tool, "-NoProfile", "-NonInteractive", "-Command", sapiScript)
		cmd.Stdin = strings.NewReader(text)
	default:
		cmd = exec.CommandContext(ctx, tool, "--stdin")
		cmd.Stdin = strings.NewReader(text)
	}
	return cmd, nil
}
