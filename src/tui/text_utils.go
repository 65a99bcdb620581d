package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// VisualWidth returns the display width of text, accounting for
// multi-byte characters.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates text to maxLen visual columns with an optional
// ellipsis.
func Truncate(s string, maxLen int, ellipsis bool) string {
	s = strings.TrimSpace(s)
	if maxLen <= 0 {
		return ""
	}

	if VisualWidth(s) > maxLen {
		if ellipsis && maxLen > 3 {
			return runewidth.Truncate(s, maxLen-3, "") + "..."
		}
		return runewidth.Truncate(s, maxLen, "")
	}
	return s
}

// TruncateAndPad truncates text and pads to the exact width. Used for
// card cells to maintain consistent column widths.
func TruncateAndPad(s string, width int, ellipsis bool) string {
	s = Truncate(s, width, ellipsis)
	if w := VisualWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Wrap wraps text to the given width, breaking on word boundaries.
// Words wider than the width are broken mid-word.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLength := 0
	for _, line := range strings.Split(text, "\n") {
		if result.Len() > 0 {
			result.WriteString("\n")
			lineLength = 0
		}
		words := strings.Fields(line)
		for _, word := range words {
			wordLen := VisualWidth(word)

			if wordLen > width {
				if lineLength > 0 {
					result.WriteString("\n")
					lineLength = 0
				}
				for VisualWidth(word) > width {
					chunk := runewidth.Truncate(word, width, "")
					if chunk == "" {
						// A single rune wider than the column.
						break
					}
					result.WriteString(chunk)
					result.WriteString("\n")
					word = strings.TrimPrefix(word, chunk)
				}
				result.WriteString(word)
				lineLength = VisualWidth(word)
				continue
			}

			switch {
			case lineLength == 0:
				result.WriteString(word)
				lineLength = wordLen
			case lineLength+1+wordLen <= width:
				result.WriteString(" ")
				result.WriteString(word)
				lineLength += 1 + wordLen
			default:
				result.WriteString("\n")
				result.WriteString(word)
				lineLength = wordLen
			}
		}
	}

	return result.String()
}
