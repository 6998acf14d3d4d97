package editor

import (
	"fmt"

	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/view"
)

// Orientation tells which end of a selection comes first.
type Orientation int

const (
	StartFirst Orientation = iota
	EndFirst
)

// HighlightLine is how a selection covers one row.
type HighlightLine int

const (
	// Leading runs from column 0 to inside the row.
	Leading HighlightLine = iota
	// Trailing runs from inside the row to its end.
	Trailing
	// Middle starts and ends inside the row.
	Middle
	// All covers the whole row.
	All
)

// HighlightSpan is the inclusive column range selected on one row.
type HighlightSpan struct {
	Kind HighlightLine
	From int
	To   int
}

func (s HighlightSpan) covers(col int) bool {
	return col >= s.From && col <= s.To
}

type highlightState struct {
	anchor view.Position
	end    view.Position
}

func (h *highlightState) orientation() Orientation {
	if h.end.Before(h.anchor) {
		return EndFirst
	}
	return StartFirst
}

// bounds returns the selection ends in reading order.
func (h *highlightState) bounds() (first, last view.Position) {
	if h.orientation() == EndFirst {
		return h.end, h.anchor
	}
	return h.anchor, h.end
}

// span is the part of row inside the selection. lastCol is the start
// column of the row's final grapheme.
func (h *highlightState) span(row, lastCol int) (HighlightSpan, bool) {
	first, last := h.bounds()
	if row < first.Height || row > last.Height {
		return HighlightSpan{}, false
	}
	s := HighlightSpan{From: 0, To: lastCol}
	if row == first.Height {
		s.From = first.Width
	}
	if row == last.Height {
		s.To = last.Width
	}
	switch atStart, atEnd := s.From == 0, s.To >= lastCol; {
	case atStart && atEnd:
		s.Kind = All
	case atStart:
		s.Kind = Leading
	case atEnd:
		s.Kind = Trailing
	default:
		s.Kind = Middle
	}
	return s, true
}

func (e *Editor) selectionOn(row int) (HighlightSpan, bool) {
	if e.hl == nil {
		return HighlightSpan{}, false
	}
	return e.hl.span(row, e.lastColumn(row))
}

// runHighlight is the selection loop. The anchor stays where the cursor
// was; movement keys drag the other end.
func (e *Editor) runHighlight() (view.Render, Outcome) {
	if e.buf.IsEmpty() {
		return view.DefaultAction, Continue
	}
	origin, originOffset := e.pos, e.offset
	anchor := e.pos
	anchor.SetWidth(min(anchor.Width, e.lastColumn(anchor.Height)))
	e.pos = anchor
	e.hl = &highlightState{anchor: anchor, end: anchor}
	e.mode = ModeHighlight
	defer func() {
		e.hl = nil
		e.mode = ModeInsert
	}()

	e.Render(view.SingleLine.Scrolled(e.reconcile()))
	for {
		ev, ok := e.poll(func() { e.Render(view.FullScreen) })
		if !ok {
			e.pos, e.offset = origin, originOffset
			return view.FullScreen, Continue
		}
		switch key := keyString(ev); key {
		case "esc":
			e.pos, e.offset = origin, originOffset
			return view.FullScreen, Continue
		case "ctrl+c":
			text := e.selectionText()
			e.copyText(text)
			e.message = fmt.Sprintf("%d characters copied", len([]rune(text)))
			return view.FullScreen, Continue
		case "backspace", "del":
			e.deleteSelection()
			e.reconcile()
			return view.FullScreen, Continue
		default:
			d, ok := moveActions[e.keymap.insert[key]]
			if !ok {
				d, ok = moveActions[e.keymap.vim[key]]
			}
			if !ok {
				continue
			}
			before := e.hl.end
			e.moveSelection(d)
			r := view.SingleLine
			if before.Height != e.hl.end.Height {
				r = view.MultiLine
			}
			e.Render(r.Scrolled(e.reconcile()))
		}
	}
}

// moveSelection moves the free end. It never rests past the last
// grapheme of a row, so Right and Left cross rows one column early.
func (e *Editor) moveSelection(d view.Direction) {
	end := &e.hl.end
	switch d {
	case view.Right:
		switch {
		case end.Width < e.lastColumn(end.Height):
			end.SetWidth(e.buf.NextColumn(end.Height, end.Width))
		case end.Height < e.buf.Len()-1:
			*end = view.At(end.Height+1, 0)
		}
	case view.Left:
		switch {
		case end.Width > 0:
			end.SetWidth(e.buf.PrevColumn(end.Height, end.Width))
		case end.Height > 0:
			*end = view.At(end.Height-1, e.lastColumn(end.Height-1))
		}
	case view.End:
		end.SetWidth(e.lastColumn(end.Height))
	default:
		d.Move(end, e.buf)
		end.Width = min(end.Width, e.lastColumn(end.Height))
	}
	e.pos = *end
}

func (e *Editor) selectionText() string {
	first, last := e.hl.bounds()
	return e.buf.Segment(first, last)
}

// deleteSelection removes the selected text. Across rows the interior
// lines go first, then both boundary rows are trimmed and joined.
func (e *Editor) deleteSelection() {
	first, last := e.hl.bounds()
	if first.Height == last.Height {
		e.buf.DeleteSegment(first, &last)
		e.pos = e.buf.Clamp(view.At(first.Height, first.Width))
		return
	}

	for row := last.Height - 1; row > first.Height; row-- {
		e.buf.PopLine(row)
	}
	tail := view.At(first.Height+1, last.Width)
	e.buf.DeleteSegment(view.At(first.Height+1, 0), &tail)
	head := view.At(first.Height, e.lastColumn(first.Height))
	e.buf.DeleteSegment(first, &head)
	e.buf.JoinLine(first.Height + 1)
	e.pos = e.buf.Clamp(view.At(first.Height, first.Width))
	logger.Debug("selection deleted", "from", first, "to", last)
}
