package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`, stopping before
// column `maxX`. Wide runes take two columns. Returns the column after the last
// rune drawn.
func DrawStr(s tcell.Screen, x, y, maxX int, str string, style tcell.Style) int {
	for _, r := range str {
		width := cellWidth(r)
		if x+width > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += width
	}
	return x
}

// cellWidth returns how many columns r takes. Zero-width runes are given a
// column of their own so that every character of the buffer can be seen.
func cellWidth(r rune) int {
	return max(1, runewidth.RuneWidth(r))
}
