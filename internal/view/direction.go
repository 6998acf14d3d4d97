package view

// Text is the read side of a buffer that cursor movement needs.
// Columns are display columns; PrevColumn and NextColumn step over one
// grapheme and SnapColumn backs up to the start of the grapheme covering
// a column, so wide glyphs are never split.
type Text interface {
	Len() int
	LineWidth(row int) int
	PrevColumn(row, col int) int
	NextColumn(row, col int) int
	SnapColumn(row, col int) int
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	PageUp
	PageDown
	Home
	End
)

var directionNames = [...]string{
	Up:       "up",
	Down:     "down",
	Left:     "left",
	Right:    "right",
	PageUp:   "page_up",
	PageDown: "page_down",
	Home:     "home",
	End:      "end",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Move applies d to p. On an empty text the cursor is pinned to (0,0).
func (d Direction) Move(p *Position, t Text) {
	n := t.Len()
	if n == 0 {
		*p = Position{}
		return
	}
	if p.Height >= n {
		p.Height = n - 1
	}
	if p.Height < 0 {
		p.Height = 0
	}
	last := n - 1

	switch d {
	case Up:
		if p.Height > 0 {
			p.Height--
		}
		p.resolveWidth(t)
	case Down:
		if p.Height < last {
			p.Height++
		}
		p.resolveWidth(t)
	case PageUp:
		p.Height = 0
		p.resolveWidth(t)
	case PageDown:
		p.Height = last
		p.resolveWidth(t)
	case Left:
		switch {
		case p.Width > 0:
			p.SetWidth(t.PrevColumn(p.Height, p.Width))
		case p.Height > 0:
			p.Height--
			p.SetWidth(t.LineWidth(p.Height))
		}
	case Right:
		switch {
		case p.Width < t.LineWidth(p.Height):
			p.SetWidth(t.NextColumn(p.Height, p.Width))
		case p.Height < last:
			p.Height++
			p.SetWidth(0)
		}
	case Home:
		p.SetWidth(0)
	case End:
		p.SetWidth(t.LineWidth(p.Height))
	}
}
