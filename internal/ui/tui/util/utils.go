package util

import (
	"github.com/mattn/go-runewidth"
)

// TruncateString cuts a string to fit within maxWidth visual width
func TruncateString(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return runewidth.Truncate(s, max(maxWidth, 0), "")
	}
	width := 0
	for i, r := range s {
		charWidth := runewidth.RuneWidth(r)
		if width+charWidth > maxWidth {
			return runewidth.Truncate(s[:i], maxWidth-3, "") + "..."
		}
		width += charWidth
	}
	return s // Return as is if it fits
}

// PadRight pads s with spaces to exactly width cells, truncating when it is wider
func PadRight(s string, width int) string {
	s = TruncateString(s, width)
	return runewidth.FillRight(s, width)
}
