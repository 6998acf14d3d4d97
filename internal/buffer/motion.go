package buffer

import "github.com/kobzarvs/minivim/internal/view"

// FindNextWord moves pos to the next space-delimited word, continuing
// onto following lines. With no word left it stops at the line end.
func (b *Buffer) FindNextWord(pos *view.Position) {
	if b.IsEmpty() {
		return
	}
	if col, ok := b.Line(pos.Height).NextWord(pos.Width); ok {
		pos.SetWidth(col)
		return
	}
	for row := pos.Height + 1; row < len(b.lines); row++ {
		if col, ok := b.lines[row].NextWordSpillover(); ok {
			*pos = view.At(row, col)
			return
		}
	}
	pos.SetWidth(b.LineWidth(pos.Height))
}

// FindPrevWord moves pos to the previous space-delimited word start,
// continuing onto preceding lines. With no word left it stops at
// column 0.
func (b *Buffer) FindPrevWord(pos *view.Position) {
	if b.IsEmpty() {
		return
	}
	if col, ok := b.Line(pos.Height).PrevWord(pos.Width); ok {
		pos.SetWidth(col)
		return
	}
	for row := pos.Height - 1; row >= 0; row-- {
		if col, ok := b.lines[row].PrevWordSpillover(); ok {
			*pos = view.At(row, col)
			return
		}
	}
	pos.SetWidth(0)
}

// NextWordStart is the target of vim's w from p.
func (b *Buffer) NextWordStart(p view.Position) (view.Position, bool) {
	if b.IsEmpty() {
		return p, false
	}
	if col, ok := b.Line(p.Height).BeginningOfNextWord(p.Width); ok {
		return view.At(p.Height, col), true
	}
	for row := p.Height + 1; row < len(b.lines); row++ {
		if col, ok := b.lines[row].BeginningOfNextWordSpillover(); ok {
			return view.At(row, col), true
		}
	}
	return p, false
}

// PrevWordStart is the target of vim's b from p.
func (b *Buffer) PrevWordStart(p view.Position) (view.Position, bool) {
	if b.IsEmpty() {
		return p, false
	}
	if col, ok := b.Line(p.Height).BeginningOfCurrentWord(p.Width); ok {
		return view.At(p.Height, col), true
	}
	for row := p.Height - 1; row >= 0; row-- {
		if col, ok := b.lines[row].BeginningOfCurrentWordSpillover(); ok {
			return view.At(row, col), true
		}
	}
	return p, false
}

// WordEnd is the target of vim's e from p.
func (b *Buffer) WordEnd(p view.Position) (view.Position, bool) {
	if b.IsEmpty() {
		return p, false
	}
	if col, ok := b.Line(p.Height).EndOfCurrentWord(p.Width); ok {
		return view.At(p.Height, col), true
	}
	for row := p.Height + 1; row < len(b.lines); row++ {
		if col, ok := b.lines[row].EndOfCurrentWordSpillover(); ok {
			return view.At(row, col), true
		}
	}
	return p, false
}

// Clamp pulls p back inside the buffer.
func (b *Buffer) Clamp(p view.Position) view.Position {
	if b.IsEmpty() {
		return view.Position{}
	}
	p.Height = min(max(p.Height, 0), len(b.lines)-1)
	p.Width = b.SnapColumn(p.Height, max(p.Width, 0))
	return p
}
