package editor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/view"
)

// Action names used in keymaps.
const (
	actionQuit         = "quit"
	actionSave         = "save"
	actionSearch       = "search"
	actionHighlight    = "highlight"
	actionVimMode      = "vim_mode"
	actionTheme        = "theme"
	actionHelp         = "help"
	actionJumpToLine   = "jump_to_line"
	actionPaste        = "paste"
	actionNewLine      = "newline"
	actionBackspace    = "backspace"
	actionTab          = "tab"
	actionMoveLeft     = "move_left"
	actionMoveRight    = "move_right"
	actionMoveUp       = "move_up"
	actionMoveDown     = "move_down"
	actionLineStart    = "line_start"
	actionLineEnd      = "line_end"
	actionPageUp       = "page_up"
	actionPageDown     = "page_down"
	actionWordLeft     = "word_left"
	actionWordRight    = "word_right"
	actionWordForward  = "word_forward"
	actionWordBackward = "word_backward"
	actionWordEnd      = "word_end"
	actionGotoTop      = "goto_top"
	actionGotoBottom   = "goto_bottom"
	actionDelete       = "delete"
	actionYank         = "yank"
	actionCommand      = "command"
	actionInsertMode   = "insert_mode"
)

var moveActions = map[string]view.Direction{
	actionMoveLeft:  view.Left,
	actionMoveRight: view.Right,
	actionMoveUp:    view.Up,
	actionMoveDown:  view.Down,
	actionLineStart: view.Home,
	actionLineEnd:   view.End,
	actionPageUp:    view.PageUp,
	actionPageDown:  view.PageDown,
}

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdInsert
	CmdNewLine
	CmdDelete
	CmdTab
	CmdMove
	CmdJumpWord
	CmdPaste
	CmdSave
	CmdSearch
	CmdHighlight
	CmdVimMode
	CmdTheme
	CmdHelp
	CmdJumpToLine
	CmdQuit
	CmdResize
)

// Command is one parsed insert-mode event. Rune is set for CmdInsert,
// Dir for CmdMove and CmdJumpWord.
type Command struct {
	Kind CommandKind
	Rune rune
	Dir  view.Direction
}

func (e *Editor) parseInsert(ev *tcell.EventKey) Command {
	if action, ok := e.keymap.insert[keyString(ev)]; ok {
		return commandFor(action)
	}
	if printable(ev) {
		return Command{Kind: CmdInsert, Rune: ev.Rune()}
	}
	return Command{}
}

func commandFor(action string) Command {
	if d, ok := moveActions[action]; ok {
		return Command{Kind: CmdMove, Dir: d}
	}
	switch action {
	case actionNewLine:
		return Command{Kind: CmdNewLine}
	case actionBackspace:
		return Command{Kind: CmdDelete}
	case actionTab:
		return Command{Kind: CmdTab}
	case actionWordLeft:
		return Command{Kind: CmdJumpWord, Dir: view.Left}
	case actionWordRight:
		return Command{Kind: CmdJumpWord, Dir: view.Right}
	case actionPaste:
		return Command{Kind: CmdPaste}
	case actionSave:
		return Command{Kind: CmdSave}
	case actionSearch:
		return Command{Kind: CmdSearch}
	case actionHighlight:
		return Command{Kind: CmdHighlight}
	case actionVimMode:
		return Command{Kind: CmdVimMode}
	case actionTheme:
		return Command{Kind: CmdTheme}
	case actionHelp:
		return Command{Kind: CmdHelp}
	case actionJumpToLine:
		return Command{Kind: CmdJumpToLine}
	case actionQuit:
		return Command{Kind: CmdQuit}
	}
	logger.Debug("unknown insert action", "action", action)
	return Command{}
}

// execute applies cmd and classifies what has to be redrawn.
func (e *Editor) execute(cmd Command) (view.Render, Outcome) {
	switch cmd.Kind {
	case CmdInsert:
		e.buf.InsertChar(&e.pos, cmd.Rune)
		return view.SingleLine.Scrolled(e.reconcile()), Continue
	case CmdNewLine:
		return e.newLine(), Continue
	case CmdDelete:
		return e.deleteChar(), Continue
	case CmdTab:
		if e.softTab {
			e.buf.InsertTab(&e.pos, 1)
		} else {
			e.buf.InsertChar(&e.pos, '\t')
		}
		return view.SingleLine.Scrolled(e.reconcile()), Continue
	case CmdMove:
		cmd.Dir.Move(&e.pos, e.buf)
		return view.DefaultAction.Scrolled(e.reconcile()), Continue
	case CmdJumpWord:
		if cmd.Dir == view.Left {
			e.buf.FindPrevWord(&e.pos)
		} else {
			e.buf.FindNextWord(&e.pos)
		}
		return view.DefaultAction.Scrolled(e.reconcile()), Continue
	case CmdPaste:
		return e.paste(), Continue
	case CmdSave:
		e.saveBuffer()
		return view.DefaultAction, Continue
	case CmdSearch:
		return e.runSearch()
	case CmdHighlight:
		return e.runHighlight()
	case CmdVimMode:
		return e.runVim()
	case CmdTheme:
		return e.cycleTheme(), Continue
	case CmdHelp:
		e.message = e.helpText()
		return view.DefaultAction, Continue
	case CmdJumpToLine:
		return e.jumpToLine(), Continue
	case CmdQuit:
		if e.buf.Saved || e.buf.IsEmpty() {
			return view.DefaultAction, ExitSession
		}
		return e.confirmQuit()
	case CmdResize:
		e.resize()
		return view.FullScreen, Continue
	}
	return view.DefaultAction, Continue
}

// newLine splits the line at the cursor. At the end of a line it opens
// a fresh line that keeps the soft-tab indent instead.
func (e *Editor) newLine() view.Render {
	if e.buf.IsEmpty() || e.pos.Width >= e.buf.LineWidth(e.pos.Height) {
		indent := e.buf.NewLine(e.pos.Height)
		e.pos = view.At(e.pos.Height+1, indent)
	} else {
		e.buf.SplitLine(e.pos)
		e.pos = view.At(e.pos.Height+1, 0)
	}
	return view.MultiLine.Scrolled(e.reconcile())
}

// deleteChar is backspace. At column 0 it merges the line into the one
// above, dropping it outright when it is empty.
func (e *Editor) deleteChar() view.Render {
	if e.buf.IsEmpty() {
		return view.DefaultAction
	}
	if e.pos.Width > 0 {
		e.buf.DeleteChar(&e.pos)
		return view.SingleLine.Scrolled(e.reconcile())
	}
	row := e.pos.Height
	if row == 0 {
		return view.DefaultAction
	}
	if e.buf.Line(row).IsEmpty() {
		e.buf.PopLine(row)
		e.pos = view.At(row-1, e.buf.LineWidth(row-1))
	} else {
		width := e.buf.LineWidth(row - 1)
		e.buf.JoinLine(row)
		e.pos = view.At(row-1, width)
	}
	return view.MultiLine.Scrolled(e.reconcile())
}

func (e *Editor) paste() view.Render {
	text, err := e.clip.GetText()
	if err != nil {
		logger.Debug("paste skipped", "error", err)
		return view.DefaultAction
	}
	e.buf.AddTextFromClipboard(text, &e.pos)
	r := view.SingleLine
	if strings.Contains(text, "\n") {
		r = view.FullScreen
	}
	return r.Scrolled(e.reconcile())
}

// copyText puts text on the clipboard. Failures are logged only.
func (e *Editor) copyText(text string) {
	if err := e.clip.SetText(text); err != nil {
		logger.Debug("copy failed", "error", err)
	}
}

// saveBuffer writes the buffer, asking for a filename when it has none.
// It reports whether the file was written.
func (e *Editor) saveBuffer() bool {
	var err error
	if e.buf.Filename == "" {
		name, ok := e.prompt("Filename: ", nil)
		if !ok || strings.TrimSpace(name) == "" {
			e.message = "Save cancelled"
			return false
		}
		err = e.buf.SaveAs(name)
	} else {
		err = e.buf.Save()
	}
	if err != nil {
		logger.Error("save failed", "file", e.buf.Filename, "error", err)
		e.message = "Save failed: " + err.Error()
		return false
	}
	e.message = fmt.Sprintf("%q written, %d lines", e.buf.Filename, e.buf.Len())
	return true
}

func (e *Editor) jumpToLine() view.Render {
	text, ok := e.prompt("Jump to: ", unicode.IsDigit)
	if !ok || text == "" || e.buf.IsEmpty() {
		return view.DefaultAction
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		n = e.buf.Len()
	}
	row := min(max(n-1, 0), e.buf.Len()-1)
	e.pos = view.At(row, 0)
	return view.DefaultAction.Scrolled(e.reconcile())
}

// confirmQuit asks what to do with unsaved changes before leaving.
func (e *Editor) confirmQuit() (view.Render, Outcome) {
	draw := func() {
		e.term.Clear(e.styles.main)
		e.term.Print(0, 0, "Leave without saving:", e.styles.main)
		e.term.Print(1, 0, "Ctrl-y = exit | Ctrl-n = save", e.styles.main)
		e.term.MoveCursor(2, 0)
		e.term.Flush()
	}
	draw()
	for {
		ev, ok := e.poll(draw)
		if !ok {
			return view.FullScreen, Continue
		}
		switch keyString(ev) {
		case "ctrl+y":
			logger.Info("discarding unsaved changes", "file", e.buf.Filename)
			return view.FullScreen, ExitSession
		case "ctrl+n":
			if e.saveBuffer() {
				return view.FullScreen, ExitSession
			}
			return view.FullScreen, Continue
		case "esc":
			return view.FullScreen, Continue
		}
	}
}

var helpActions = []string{
	actionSave,
	actionQuit,
	actionSearch,
	actionHighlight,
	actionVimMode,
	actionJumpToLine,
	actionPaste,
	actionTheme,
}

// helpText lists the main insert chords as bound in the keymap.
func (e *Editor) helpText() string {
	keys := make(map[string][]string)
	for k, a := range e.keymap.insert {
		keys[a] = append(keys[a], k)
	}
	var parts []string
	for _, a := range helpActions {
		ks := keys[a]
		if len(ks) == 0 {
			continue
		}
		slices.Sort(ks)
		parts = append(parts, ks[0]+" "+strings.ReplaceAll(a, "_", " "))
	}
	return strings.Join(parts, " | ")
}
