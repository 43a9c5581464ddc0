// Package components provides reusable UI pieces for the lawchat TUI: the
// conversation sidebar, the status bar, the busy spinner, and the syntax
// highlighted code block renderer used inside assistant answers.
package components
