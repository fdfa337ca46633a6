package formatter

import (
	"github.com/mattn/go-runewidth"
)

// FitLeft cuts s to at most width characters and right-aligns it in width
// display columns. Wide characters are kept whole, so a key of wide runes may
// overflow the column.
func FitLeft(s string, width int) string {
	if r := []rune(s); len(r) > width {
		s = string(r[:width])
	}
	return runewidth.FillLeft(s, width)
}
