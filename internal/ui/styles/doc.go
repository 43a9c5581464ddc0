// Package styles provides the visual styling system for the lawchat TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette works on both light
// and dark terminals; ApplyTheme can pin one or the other explicitly when
// the config asks for it.
package styles
