package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max", "hello", 2, "he"},
		{"multibyte safe", "日本語のテキスト", 5, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters are two columns wide.
	got := TruncateWidth("日本語テキスト", 9)
	if StringWidth(got) > 9 {
		t.Errorf("TruncateWidth produced %q with width %d, want <= 9", got, StringWidth(got))
	}

	if got := TruncateWidth("short", 20); got != "short" {
		t.Errorf("TruncateWidth should not modify strings that fit, got %q", got)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := CollapseWhitespace("  what is\n\ttort   law? ")
	want := "what is tort law?"
	if got != want {
		t.Errorf("CollapseWhitespace = %q, want %q", got, want)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "session.json")

	if err := AtomicWriteFile(path, []byte(`{"token":"abc"}`), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != `{"token":"abc"}` {
		t.Errorf("file content = %q", data)
	}

	// Overwrite must replace content completely.
	if err := AtomicWriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "x" {
		t.Errorf("overwritten content = %q, want %q", data, "x")
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if e.Name() != "session.json" {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}
