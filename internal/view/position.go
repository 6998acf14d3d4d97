// Package view holds the coordinate algebra shared by the buffer and the
// editor: cursor positions, scroll offsets, terminal sizes and the rules
// that keep the cursor inside the visible rectangle.
package view

import "fmt"

// Position is an absolute buffer coordinate in display columns.
// MaxWidth remembers the column the cursor wants to return to when a
// vertical move crosses shorter lines.
type Position struct {
	Height   int
	Width    int
	MaxWidth int
}

// At returns a position with MaxWidth synced to width.
func At(height, width int) Position {
	return Position{Height: height, Width: width, MaxWidth: width}
}

// Equal compares row and column only.
func (p Position) Equal(o Position) bool {
	return p.Height == o.Height && p.Width == o.Width
}

// Before reports whether p comes strictly before o in reading order.
func (p Position) Before(o Position) bool {
	if p.Height != o.Height {
		return p.Height < o.Height
	}
	return p.Width < o.Width
}

// SetWidth moves the column and makes it the remembered column too.
func (p *Position) SetWidth(w int) {
	if w < 0 {
		w = 0
	}
	p.Width = w
	p.MaxWidth = w
}

// resolveWidth restores the remembered column on the current row,
// clamped to the line and snapped to a grapheme start.
func (p *Position) resolveWidth(t Text) {
	p.Width = t.SnapColumn(p.Height, min(p.MaxWidth, t.LineWidth(p.Height)))
}

// Relative returns the on-screen cell of p for the given offset.
func (p Position) Relative(off ScreenOffset) (row, col int) {
	return p.Height - off.Height, p.Width - off.Width
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Height, p.Width)
}

// Size is the full terminal size. Rows reserved for the status and
// message lines are passed separately wherever they matter.
type Size struct {
	Height int
	Width  int
}

// Visible returns the number of text rows left after reserving rows.
func (s Size) Visible(reserved int) int {
	if v := s.Height - reserved; v > 0 {
		return v
	}
	return 0
}

// Empty reports whether nothing can be drawn.
func (s Size) Empty() bool {
	return s.Height <= 0 || s.Width <= 0
}
