package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/view"
)

// Render redraws the part of the screen r names, then the status and
// message rows and the cursor.
func (e *Editor) Render(r view.Render) {
	if e.size.Empty() {
		return
	}
	visible := e.size.Visible(e.reserved)
	cursorRow := e.pos.Height - e.offset.Height
	switch r {
	case view.FullScreen:
		e.term.HideCursor()
		e.term.Clear(e.styles.main)
		e.drawRows(0, visible)
	case view.MultiLine:
		e.drawRows(cursorRow-1, visible)
	case view.SingleLine:
		e.drawRows(cursorRow, cursorRow+1)
	}
	e.drawStatus()
	e.drawMessage()
	e.placeCursor()
	e.term.Flush()
}

func (e *Editor) drawRows(from, to int) {
	visible := e.size.Visible(e.reserved)
	for y := max(from, 0); y < to && y < visible; y++ {
		e.drawRow(y)
	}
}

func (e *Editor) drawRow(y int) {
	e.term.ClearLine(y, e.styles.main)
	row := e.offset.Height + y
	if row >= e.buf.Len() {
		e.drawFiller(y)
		return
	}

	l := e.buf.Line(row)
	sel, selected := e.selectionOn(row)
	matches := e.matchesOn(row)

	col := l.ColumnAt(l.IndexAt(e.offset.Width))
	for _, f := range l.Subset(e.offset.Width, e.offset.Width+e.size.Width).Fragments() {
		style := e.styles.main
		if selected && sel.covers(col) {
			style = e.styles.selection
		} else if m, ok := matchAt(matches, col); ok {
			style = e.styles.match
			if m.current {
				style = e.styles.selection
			}
		}
		e.term.Put(y, col-e.offset.Width, f.Display(), style)
		col += f.Cols()
	}
}

// drawFiller marks rows past the end of the buffer. An empty buffer
// shows the welcome line a third of the way down.
func (e *Editor) drawFiller(y int) {
	if e.buf.IsEmpty() && y == e.size.Height/3 {
		msg := fmt.Sprintf("%s editor -- version %s", Name, Version)
		padding := (e.size.Width - len(msg)) / 2
		e.term.Print(y, 0, "~", e.styles.main)
		e.term.Fill(y, 1, padding-1, e.styles.main)
		e.term.Print(y, max(padding, 1), msg, e.styles.main)
		return
	}
	e.term.Print(y, 0, "~", e.styles.main)
}

func (e *Editor) statusRow() int  { return e.size.Height - 2 }
func (e *Editor) messageRow() int { return e.size.Height - 1 }

func (e *Editor) drawStatus() {
	y := e.statusRow()
	if y < 0 {
		return
	}
	name := e.buf.Filename
	if name == "" {
		name = "-"
	}
	state := "modified"
	if e.buf.Saved {
		state = "saved"
	}
	current := 0
	if !e.buf.IsEmpty() {
		current = e.pos.Height + 1
	}
	left := fmt.Sprintf(" Mode: %s | Filename: %s | Status: %s", e.mode, name, state)
	right := fmt.Sprintf("Line: %d / %d ", current, e.buf.Len())
	e.term.ClearLine(y, e.styles.status)
	e.term.Print(y, 0, string(composeStatusLine(left, right, e.size.Width)), e.styles.status)
}

func (e *Editor) drawMessage() {
	y := e.messageRow()
	e.term.ClearLine(y, e.styles.command)
	e.term.Print(y, 0, e.message, e.styles.command)
}

// drawPrompt shows text on the message row with the cursor after it.
func (e *Editor) drawPrompt(text string) {
	y := e.messageRow()
	e.term.ClearLine(y, e.styles.command)
	end := e.term.Print(y, 0, text, e.styles.command)
	e.term.SetCursorStyle(e.styles.cursor)
	e.term.MoveCursor(y, min(end, e.size.Width-1))
	e.term.Flush()
}

func (e *Editor) placeCursor() {
	row, col := e.pos.Relative(e.offset)
	cs := e.styles.cursor
	if e.mode == ModeVim || e.mode == ModeHighlight {
		cs = tcell.CursorStyleSteadyBlock
	}
	e.term.SetCursorStyle(cs)
	e.term.MoveCursor(row, col)
}

func composeStatusLine(left, right string, width int) []rune {
	if width <= 0 {
		return nil
	}
	leftRunes := []rune(left)
	rightRunes := []rune(right)
	if len(leftRunes)+len(rightRunes) > width {
		if len(rightRunes) >= width {
			rightRunes = rightRunes[len(rightRunes)-width:]
			leftRunes = nil
		} else {
			leftRunes = leftRunes[:width-len(rightRunes)]
		}
	}
	line := make([]rune, 0, width)
	line = append(line, leftRunes...)
	for i := len(leftRunes) + len(rightRunes); i < width; i++ {
		line = append(line, ' ')
	}
	return append(line, rightRunes...)
}
