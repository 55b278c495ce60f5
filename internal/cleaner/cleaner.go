// Package cleaner strips boilerplate from extracted page text before it is
// chunked and embedded.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	referencesRe = regexp.MustCompile(`(?i)\breferences\b`)
	urlRe        = regexp.MustCompile(`http\S+|www\S+`)
	doiRe        = regexp.MustCompile(`(?i)doi:\s*\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean truncates the text at the first references heading, removes URL and
// DOI substrings, and collapses whitespace runs to single spaces. Reference
// stripping runs before whitespace normalization so the heading is matched on
// the raw layout. Idempotent.
func Clean(text string) string {
	if loc := referencesRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = urlRe.ReplaceAllString(text, "")
	text = doiRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
