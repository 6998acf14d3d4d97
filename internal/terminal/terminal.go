// Package terminal is the drawing surface of the editor. It wraps a
// tcell.Screen and owns the policy for failed draw calls: a panic in
// debug builds, a log line otherwise.
package terminal

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/view"
)

// ErrOutOfBounds is reported when a cell outside the screen is written.
var ErrOutOfBounds = errors.New("cell out of bounds")

type Terminal struct {
	screen tcell.Screen
}

// New wraps an initialized screen.
func New(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Open creates the terminal screen and switches it to raw mode on the
// alternate screen. Close restores the terminal.
func Open() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	return New(s), nil
}

func (t *Terminal) Close() {
	t.screen.Fini()
}

// PollEvent blocks for the next event. It returns nil once the screen
// has been finalized.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Size is the full terminal size, reserved rows included.
func (t *Terminal) Size() view.Size {
	w, h := t.screen.Size()
	return view.Size{Height: h, Width: w}
}

// Clear blanks the whole screen in style.
func (t *Terminal) Clear(style tcell.Style) {
	t.screen.SetStyle(style)
	t.screen.Clear()
}

// ClearLine paints row with blanks in style.
func (t *Terminal) ClearLine(row int, style tcell.Style) {
	w, h := t.screen.Size()
	if row < 0 || row >= h {
		t.check(fmt.Errorf("clear row %d: %w", row, ErrOutOfBounds))
		return
	}
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, row, ' ', nil, style)
	}
}

// Put draws one grapheme at (row, col) and returns the columns it took.
func (t *Terminal) Put(row, col int, grapheme string, style tcell.Style) int {
	w, h := t.screen.Size()
	if row < 0 || row >= h || col < 0 || col >= w {
		t.check(fmt.Errorf("put (%d,%d): %w", row, col, ErrOutOfBounds))
		return 0
	}
	runes := []rune(grapheme)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	t.screen.SetContent(col, row, runes[0], runes[1:], style)
	return max(uniseg.StringWidth(grapheme), 1)
}

// Print draws text from (row, col), clipped at the right edge. It
// returns the column after the last drawn cell.
func (t *Terminal) Print(row, col int, text string, style tcell.Style) int {
	w, _ := t.screen.Size()
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cw := max(g.Width(), 1)
		if col+cw > w {
			break
		}
		col += t.Put(row, col, g.Str(), style)
	}
	return col
}

// Fill paints n blank cells from (row, col).
func (t *Terminal) Fill(row, col, n int, style tcell.Style) {
	w, _ := t.screen.Size()
	for x := col; x < col+n && x < w; x++ {
		t.Put(row, x, " ", style)
	}
}

func (t *Terminal) MoveCursor(row, col int) {
	t.screen.ShowCursor(col, row)
}

func (t *Terminal) HideCursor() {
	t.screen.HideCursor()
}

func (t *Terminal) SetCursorStyle(cs tcell.CursorStyle) {
	t.screen.SetCursorStyle(cs)
}

// Flush pushes pending cells to the terminal.
func (t *Terminal) Flush() {
	t.screen.Show()
}

// Sync repaints the whole terminal, used after a resize.
func (t *Terminal) Sync() {
	t.screen.Sync()
}

func (t *Terminal) check(err error) {
	if err == nil {
		return
	}
	if debugBuild {
		panic(err)
	}
	logger.Debug("terminal call failed", "error", err)
}
