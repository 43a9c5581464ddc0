// Package util provides small shared helpers for the lawchat client.
//
// It contains rune- and width-aware string truncation used by the sidebar
// and status bar, and an atomic file writer used by the session store and
// config writer.
//
// Nothing in this package knows about the chat domain; keep it that way.
package util
