// Package textutil provides unicode-aware column layout for TUI rows.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in an ellipsis
// when anything was cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRight pads or truncates s to exactly width columns, left aligned.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// PadLeft pads or truncates s to exactly width columns, right aligned.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	return runewidth.FillLeft(s, width)
}

// Column is one cell of a row.
type Column struct {
	Text       string
	Width      int  // 0 takes the remaining width
	AlignRight bool
}

// Row lays out cols in total columns separated by two spaces. At most one
// column should have Width 0; it absorbs whatever the fixed columns leave.
func Row(total int, cols ...Column) string {
	const gap = 2
	fixed := 0
	for _, c := range cols {
		fixed += c.Width
	}
	flex := total - fixed - gap*(len(cols)-1)
	if flex < 1 {
		flex = 1
	}
	cells := make([]string, len(cols))
	for i, c := range cols {
		w := c.Width
		if w == 0 {
			w = flex
		}
		if c.AlignRight {
			cells[i] = PadLeft(c.Text, w)
		} else {
			cells[i] = PadRight(c.Text, w)
		}
	}
	return strings.Join(cells, strings.Repeat(" ", gap))
}
