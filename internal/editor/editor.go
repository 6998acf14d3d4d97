// Package editor turns key events into buffer and viewport changes. The
// insert loop is the entry point; vim, search, highlight and the text
// prompts run as nested loops that own the event source until they
// return.
package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/buffer"
	"github.com/kobzarvs/minivim/internal/clipboard"
	"github.com/kobzarvs/minivim/internal/config"
	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/terminal"
	"github.com/kobzarvs/minivim/internal/view"
)

const (
	Name    = "minivim"
	Version = "0.1.0"
)

type Mode int

const (
	ModeInsert Mode = iota
	ModeVim
	ModeSearch
	ModeHighlight
)

func (m Mode) String() string {
	switch m {
	case ModeVim:
		return "Vim"
	case ModeSearch:
		return "Search"
	case ModeHighlight:
		return "Highlight"
	}
	return "Insert"
}

// Outcome is what a nested loop hands back to its caller.
type Outcome int

const (
	Continue Outcome = iota
	ExitMode
	ExitSession
)

// EventSource delivers terminal events. PollEvent returns nil once the
// source is closed, which every loop treats as cancel.
type EventSource interface {
	PollEvent() tcell.Event
}

type keymapSet struct {
	insert map[string]string
	vim    map[string]string
}

type Editor struct {
	term     *terminal.Terminal
	events   EventSource
	buf      *buffer.Buffer
	clip     clipboard.Clipboard
	pos      view.Position
	offset   view.ScreenOffset
	size     view.Size
	reserved int
	mode     Mode
	keymap   keymapSet
	softTab  bool
	palettes []config.Palette
	palette  int
	styles   styles
	message  string
	hl       *highlightState
	search   *searchState
}

// New wires an editor to its collaborators. Events are read from term.
func New(cfg config.Config, term *terminal.Terminal, buf *buffer.Buffer, clip clipboard.Clipboard) *Editor {
	insert := make(map[string]string, len(cfg.Keymap.Insert))
	for k, v := range cfg.Keymap.Insert {
		insert[k] = v
	}
	vim := make(map[string]string, len(cfg.Keymap.Vim))
	for k, v := range cfg.Keymap.Vim {
		vim[k] = v
	}
	// The status and message rows always sit at the bottom.
	reserved := max(cfg.Editor.ReservedRows, 2)
	if cfg.Editor.TabWidth > 0 {
		buf.TabWidth = cfg.Editor.TabWidth
	}

	palettes, err := cfg.Palettes()
	if err != nil {
		logger.Warn("some themes could not be loaded", "error", err)
	}

	e := &Editor{
		term:     term,
		events:   term,
		buf:      buf,
		clip:     clip,
		size:     term.Size(),
		reserved: reserved,
		keymap:   keymapSet{insert: insert, vim: vim},
		softTab:  cfg.Editor.SoftTab,
		palettes: palettes,
	}
	e.styles = newStyles(cfg.Theme)
	return e
}

// Position returns the cursor and the scroll origin.
func (e *Editor) Position() (view.Position, view.ScreenOffset) {
	return e.pos, e.offset
}

// Restore moves the cursor to p, clamped to the buffer, and scrolls it
// into view.
func (e *Editor) Restore(p view.Position, off view.ScreenOffset) {
	e.pos = e.buf.Clamp(p)
	e.offset = off
	e.reconcile()
}

func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Run draws the first frame and processes events until the session
// ends or the event source closes.
func (e *Editor) Run() {
	e.Render(view.FullScreen)
	for {
		ev := e.events.PollEvent()
		if ev == nil {
			return
		}
		if !e.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent processes one insert-mode event and reports whether the
// session continues.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	var cmd Command
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cmd = Command{Kind: CmdResize}
	case *tcell.EventKey:
		e.message = ""
		cmd = e.parseInsert(ev)
	default:
		return true
	}
	r, out := e.execute(cmd)
	if out == ExitSession {
		logger.Info("session ended", "file", e.buf.Filename)
		return false
	}
	e.Render(r)
	return true
}

// reconcile keeps the cursor on screen and reports whether the view
// scrolled.
func (e *Editor) reconcile() bool {
	return e.offset.Reconcile(e.pos, e.size, e.reserved)
}

func (e *Editor) resize() {
	e.size = e.term.Size()
	e.offset.Snap(e.pos, e.size, e.reserved)
	e.term.Sync()
	logger.Debug("terminal resized", "height", e.size.Height, "width", e.size.Width)
}

// poll waits for the next key. Resizes are applied and redrawn with
// redraw before waiting again. ok is false once the source is closed.
func (e *Editor) poll(redraw func()) (*tcell.EventKey, bool) {
	for {
		switch ev := e.events.PollEvent().(type) {
		case nil:
			return nil, false
		case *tcell.EventKey:
			return ev, true
		case *tcell.EventResize:
			e.resize()
			redraw()
		}
	}
}

// lastColumn is the start column of the final grapheme of row, the
// furthest a selection end may go.
func (e *Editor) lastColumn(row int) int {
	l := e.buf.Line(row)
	if l.Len() == 0 {
		return 0
	}
	return l.ColumnAt(l.Len() - 1)
}
