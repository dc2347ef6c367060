package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s. This is the
// count a user perceives as "characters", which differs from the rune count
// for combining sequences, emoji with modifiers, and similar clusters.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// DisplayWidth returns the number of terminal cells s occupies, expanding
// tabs to the next tab stop and measuring each grapheme cluster by its
// East Asian width.
func DisplayWidth(s string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	state := -1
	var cluster string
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			width += tabWidth - width%tabWidth
			continue
		}
		width += runewidth.StringWidth(cluster)
	}
	return width
}
