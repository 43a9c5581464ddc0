// Package cli implements the non-interactive command surface of lawchat.
//
// The TUI is the primary interface; the CLI covers the flows that make
// sense from scripts and one-off shells: asking a single question, a plain
// line-based chat loop, login/logout, and searching the local archive.
// Every command goes through Run, which owns argument parsing and help.
package cli
