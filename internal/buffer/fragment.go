// Package buffer stores text as lines of grapheme fragments and
// implements the edit and query operations of the editor.
package buffer

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeWidth is the number of terminal cells a fragment occupies.
type GraphemeWidth int

const (
	Half GraphemeWidth = 1
	Full GraphemeWidth = 2
)

// TextFragment is one grapheme cluster. Zero-width clusters carry a
// single-cell Replacement so they stay visible and addressable.
type TextFragment struct {
	Grapheme    string
	Width       GraphemeWidth
	Replacement rune
}

// NewFragment classifies a single grapheme cluster.
func NewFragment(g string) TextFragment {
	w := cellWidth(g)
	f := TextFragment{Grapheme: g, Width: Half}
	if w >= 2 {
		f.Width = Full
	}
	if w == 0 {
		f.Replacement = replacementFor(g)
	}
	return f
}

// Display returns what is drawn for the fragment.
func (f TextFragment) Display() string {
	if f.Replacement != 0 {
		return string(f.Replacement)
	}
	return f.Grapheme
}

// Cols is the width in cells.
func (f TextFragment) Cols() int {
	return int(f.Width)
}

func (f TextFragment) isSpace() bool {
	return f.Display() == " "
}

// Fragments segments s into grapheme fragments.
func Fragments(s string) []TextFragment {
	if s == "" {
		return nil
	}
	out := make([]TextFragment, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, NewFragment(g.Str()))
	}
	return out
}

func cellWidth(g string) int {
	w := runewidth.StringWidth(g)
	if w <= 0 {
		w = uniseg.StringWidth(g)
	}
	if w < 0 {
		w = 0
	}
	return w
}

func replacementFor(g string) rune {
	if g == "\t" {
		return ' '
	}
	for _, r := range g {
		if unicode.IsControl(r) {
			return '|'
		}
	}
	if strings.TrimSpace(g) == "" {
		return '*'
	}
	return '.'
}
