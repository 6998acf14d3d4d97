package buffer

import (
	"strings"

	"github.com/kobzarvs/minivim/internal/view"
)

// Search returns every non-overlapping occurrence of q in the display
// form of the lines, in reading order.
func (b *Buffer) Search(q string) []view.Position {
	if q == "" {
		return nil
	}
	var out []view.Position
	for row, l := range b.lines {
		parts := strings.Split(l.raw, q)
		offset := 0
		for _, p := range parts[:len(parts)-1] {
			offset += len(p)
			out = append(out, view.At(row, l.columnOfByte(offset)))
			offset += len(q)
		}
	}
	return out
}

// columnOfByte maps a byte offset into raw to a display column.
func (l *Line) columnOfByte(off int) int {
	n, col := 0, 0
	for _, f := range l.fragments {
		if n >= off {
			return col
		}
		n += len(f.Display())
		col += f.Cols()
	}
	return col
}
