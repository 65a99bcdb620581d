// Package sanitize cleans model output before terminal rendering.
// Responses relayed from the LLM occasionally carry ANSI escape
// sequences or stray control characters; left in place they corrupt
// the TUI transcript. For width-aware styling the tui package layers
// charmbracelet/x/ansi on top of this.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// ANSI escape codes: CSI sequences like \x1b[31m or \x1b[2K.
	csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

	// OSC sequences (terminal title changes, hyperlinks), terminated
	// by BEL or ST.
	oscPattern = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
)

// Strip removes ANSI escape sequences and non-printing control runes,
// keeping newlines and tabs.
func Strip(s string) string {
	s = oscPattern.ReplaceAllString(s, "")
	s = csiPattern.ReplaceAllString(s, "")

	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Collapse squeezes whitespace runs to single spaces and trims the
// ends. Used for single-line card fields where wrapped model output
// would otherwise break the layout.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
