// Package speech narrates assistant answers aloud, one at a time.
package speech

import (
	"regexp"
	"strings"

	"github.com/kiransrisai/Legal-chatbot/internal/util"
)

// =============================================================================
// MARKDOWN STRIPPING
// =============================================================================

var (
	imagePattern     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkPattern      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	fencePattern     = regexp.MustCompile("(?m)^\\s*```.*$")
	headingPattern   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletPattern    = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	quotePattern     = regexp.MustCompile(`(?m)^\s*>\s?`)
	emphasisPattern  = regexp.MustCompile(`[*_~]{1,3}`)
	inlineCodeRunes  = "`"
	tableRulePattern = regexp.MustCompile(`(?m)^\s*\|?[-:| ]+\|?\s*$`)
)

// StripMarkdown reduces a markdown answer to plain narration text. Link and
// image targets are dropped in favor of their labels, code fence delimiters
// and decoration characters disappear, and all whitespace collapses to
// single spaces.
func StripMarkdown(text string) string {
	text = imagePattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = fencePattern.ReplaceAllString(text, "")
	text = tableRulePattern.ReplaceAllString(text, "")
	text = headingPattern.ReplaceAllString(text, "")
	text = bulletPattern.ReplaceAllString(text, "")
	text = quotePattern.ReplaceAllString(text, "")
	text = emphasisPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, inlineCodeRunes, "")
	text = strings.ReplaceAll(text, "|", " ")
	return util.CollapseWhitespace(text)
}
