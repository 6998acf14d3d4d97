package buffer

import (
	"fmt"
	"strings"
)

// Line is one row of text. raw caches the display form and is rebuilt
// by every mutation of fragments.
type Line struct {
	fragments []TextFragment
	raw       string
}

// NewLine segments s into a line.
func NewLine(s string) *Line {
	l := &Line{fragments: Fragments(s)}
	l.refresh()
	return l
}

func lineFrom(frags []TextFragment) *Line {
	l := &Line{fragments: frags}
	l.refresh()
	return l
}

func (l *Line) refresh() {
	var sb strings.Builder
	for _, f := range l.fragments {
		sb.WriteString(f.Display())
	}
	l.raw = sb.String()
}

// String returns the display form, with zero-width graphemes replaced.
func (l *Line) String() string {
	return l.raw
}

// Text returns the original source text of the line.
func (l *Line) Text() string {
	var sb strings.Builder
	for _, f := range l.fragments {
		sb.WriteString(f.Grapheme)
	}
	return sb.String()
}

// Len is the number of fragments.
func (l *Line) Len() int {
	return len(l.fragments)
}

func (l *Line) IsEmpty() bool {
	return len(l.fragments) == 0
}

// GraphemeLen is the display width of the line in cells.
func (l *Line) GraphemeLen() int {
	n := 0
	for _, f := range l.fragments {
		n += f.Cols()
	}
	return n
}

// Fragment returns the fragment at index i.
func (l *Line) Fragment(i int) TextFragment {
	return l.fragments[i]
}

// Fragments returns the fragments of the line. The slice must not be
// modified.
func (l *Line) Fragments() []TextFragment {
	return l.fragments
}

// IndexAt maps a display column to the index of the first fragment
// starting at or after it.
func (l *Line) IndexAt(col int) int {
	c := 0
	for i, f := range l.fragments {
		if c >= col {
			return i
		}
		c += f.Cols()
	}
	return len(l.fragments)
}

// ColumnAt is the display column where fragment i starts.
func (l *Line) ColumnAt(i int) int {
	c := 0
	for _, f := range l.fragments[:min(i, len(l.fragments))] {
		c += f.Cols()
	}
	return c
}

// PrevColumn is the start column of the fragment that ends at or
// before col.
func (l *Line) PrevColumn(col int) int {
	i := l.IndexAt(col)
	if i == 0 {
		return 0
	}
	return l.ColumnAt(i - 1)
}

// NextColumn is the column right after the fragment starting at col.
func (l *Line) NextColumn(col int) int {
	i := l.IndexAt(col)
	if i >= len(l.fragments) {
		return l.GraphemeLen()
	}
	return l.ColumnAt(i + 1)
}

// SnapColumn is the start column of the fragment covering col, or the
// line width when col is past the last fragment.
func (l *Line) SnapColumn(col int) int {
	c := 0
	for _, f := range l.fragments {
		if c+f.Cols() > col {
			return c
		}
		c += f.Cols()
	}
	return c
}

// Subset returns the fragments that fit entirely inside the column
// range [start, end). A start past the end of the line yields an empty
// line.
func (l *Line) Subset(start, end int) *Line {
	if start > l.GraphemeLen() || end <= start {
		return &Line{}
	}
	var out []TextFragment
	c := 0
	for _, f := range l.fragments {
		next := c + f.Cols()
		if c >= start && next <= end {
			out = append(out, f)
		}
		if next >= end {
			break
		}
		c = next
	}
	return lineFrom(out)
}

func (l *Line) insert(i int, frags ...TextFragment) {
	if i < 0 || i > len(l.fragments) {
		panic(fmt.Sprintf("buffer: insert at fragment %d of %d", i, len(l.fragments)))
	}
	l.fragments = append(l.fragments[:i], append(append([]TextFragment(nil), frags...), l.fragments[i:]...)...)
	l.refresh()
}

// remove deletes fragments [start, end) and returns them.
func (l *Line) remove(start, end int) []TextFragment {
	if start < 0 || end > len(l.fragments) || start > end {
		panic(fmt.Sprintf("buffer: remove fragments [%d,%d) of %d", start, end, len(l.fragments)))
	}
	removed := append([]TextFragment(nil), l.fragments[start:end]...)
	l.fragments = append(l.fragments[:start], l.fragments[end:]...)
	l.refresh()
	return removed
}

// truncate cuts the line at fragment i and returns the tail.
func (l *Line) truncate(i int) []TextFragment {
	return l.remove(i, len(l.fragments))
}

func (l *Line) append(frags ...TextFragment) {
	l.fragments = append(l.fragments, frags...)
	l.refresh()
}

// leadingSpaces counts the space fragments at the start of the line.
func (l *Line) leadingSpaces() int {
	n := 0
	for _, f := range l.fragments {
		if f.Grapheme != " " {
			break
		}
		n++
	}
	return n
}
