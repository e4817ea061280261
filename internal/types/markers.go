package types

import (
	"regexp"
	"strings"
)

// Generated-content markers. Every templated value that originated from
// a module's field extraction is wrapped in these markers in all three
// artifacts; the composer measures the real completion rate from marker
// density.
const (
	GenOpen  = "<!--gen-->"
	GenClose = "<!--/gen-->"
)

// WrapGenerated wraps an extracted value in generated-content markers.
func WrapGenerated(value string) string {
	return GenOpen + value + GenClose
}

// HasGenerated reports whether the text contains at least one complete
// generated-content region.
func HasGenerated(text string) bool {
	open := strings.Index(text, GenOpen)
	return open >= 0 && strings.Contains(text[open:], GenClose)
}

// StripMarkers removes all generated-content markers, keeping the
// wrapped values.
func StripMarkers(text string) string {
	text = strings.ReplaceAll(text, GenOpen, "")
	return strings.ReplaceAll(text, GenClose, "")
}

// Manual-input placeholder tokens. Each token in a composed artifact is
// surfaced as a review flag prompting the documentation author.
const (
	manualOpen  = "[[MANUAL: "
	manualClose = "]]"
)

// ManualTokenRE matches unresolved manual-input tokens.
var ManualTokenRE = regexp.MustCompile(`\[\[MANUAL: [^\]]*\]\]`)

// ManualToken renders an unresolved manual-input placeholder for the
// given prompt.
func ManualToken(prompt string) string {
	return manualOpen + prompt + manualClose
}

// HasManualToken reports whether the text contains an unresolved
// manual-input token.
func HasManualToken(text string) bool {
	return ManualTokenRE.MatchString(text)
}
