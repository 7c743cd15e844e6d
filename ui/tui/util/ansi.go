package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// VisibleLen returns the visible display width of a string (excluding ANSI codes).
func VisibleLen(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// TruncateLeft keeps the rightmost cells of s that fit in width,
// marking the cut with a leading ellipsis.
func TruncateLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}

	runes := []rune(s)
	w := 1 // ellipsis
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return "…" + string(runes[i:])
}

// PadLeft right-aligns s in width cells.
func PadLeft(s string, width int) string {
	pad := width - VisibleLen(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
