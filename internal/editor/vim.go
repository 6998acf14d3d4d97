package editor

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/view"
)

// runVim is the normal-mode loop. It returns to insert mode on Esc or i,
// and ends the session on :wq or :q!.
func (e *Editor) runVim() (view.Render, Outcome) {
	e.mode = ModeVim
	defer func() { e.mode = ModeInsert }()
	logger.Debug("mode changed", "mode", e.mode)

	e.Render(view.DefaultAction)
	for {
		ev, ok := e.poll(func() { e.Render(view.FullScreen) })
		if !ok {
			return view.DefaultAction, Continue
		}
		e.message = ""
		r, out := e.vimKey(ev)
		switch out {
		case ExitMode:
			return r, Continue
		case ExitSession:
			return r, ExitSession
		}
		e.Render(r)
	}
}

func (e *Editor) vimKey(ev *tcell.EventKey) (view.Render, Outcome) {
	key := keyString(ev)
	action := e.keymap.vim[key]
	if d, ok := moveActions[action]; ok {
		d.Move(&e.pos, e.buf)
		return view.DefaultAction.Scrolled(e.reconcile()), Continue
	}

	switch action {
	case actionWordForward:
		e.jumpTo(e.buf.NextWordStart(e.pos))
	case actionWordBackward:
		e.jumpTo(e.buf.PrevWordStart(e.pos))
	case actionWordEnd:
		e.jumpTo(e.buf.WordEnd(e.pos))
	case actionGotoTop, actionGotoBottom:
		if !e.repeated(key, action) || e.buf.IsEmpty() {
			return view.DefaultAction, Continue
		}
		row := 0
		if action == actionGotoBottom {
			row = e.buf.Len() - 1
		}
		e.pos = view.At(row, 0)
	case actionDelete, actionYank:
		return e.operator(key, action), Continue
	case actionPaste:
		return e.paste(), Continue
	case actionCommand:
		return e.colonCommand()
	case actionInsertMode:
		return view.DefaultAction, ExitMode
	case "":
		return view.DefaultAction, Continue
	default:
		logger.Debug("unknown vim action", "action", action, "key", key)
		return view.DefaultAction, Continue
	}
	return view.DefaultAction.Scrolled(e.reconcile()), Continue
}

func (e *Editor) jumpTo(p view.Position, ok bool) {
	if ok {
		e.pos = p
	}
}

// pending shows key on the message row and blocks for the next key.
func (e *Editor) pending(key string) (string, bool) {
	e.message = key
	e.Render(view.DefaultAction)
	ev, ok := e.poll(func() { e.Render(view.FullScreen) })
	e.message = ""
	if !ok {
		return "", false
	}
	return keyString(ev), true
}

// repeated reports whether the key after key maps to the same action,
// as in gg or GG.
func (e *Editor) repeated(key, action string) bool {
	next, ok := e.pending(key)
	return ok && e.keymap.vim[next] == action
}

// operator runs d or y over the object named by the next key: a word
// motion, or the operator key again for the whole line.
func (e *Editor) operator(key, action string) view.Render {
	next, ok := e.pending(key)
	if !ok || e.buf.IsEmpty() {
		return view.DefaultAction
	}
	object := e.keymap.vim[next]
	if object == action {
		return e.lineOperator(action)
	}

	left, right, ok := e.objectRange(object)
	if !ok {
		return view.DefaultAction
	}
	e.copyText(e.buf.Segment(left, right))
	if action == actionYank {
		return view.DefaultAction
	}
	e.buf.DeleteSegment(left, &right)
	e.pos = right
	return view.SingleLine.Scrolled(e.reconcile())
}

// objectRange is the inclusive column range on the cursor row that a
// word object covers. Objects never reach past the current row.
func (e *Editor) objectRange(object string) (left, right view.Position, ok bool) {
	row := e.pos.Height
	width := e.buf.LineWidth(row)
	switch object {
	case actionWordForward:
		if e.pos.Width >= width {
			return left, right, false
		}
		end := e.lastColumn(row)
		if next, found := e.buf.NextWordStart(e.pos); found && next.Height == row {
			end = e.buf.PrevColumn(row, next.Width)
		}
		return e.pos, view.At(row, end), true
	case actionWordBackward:
		if e.pos.Width == 0 {
			return left, right, false
		}
		start := 0
		if prev, found := e.buf.PrevWordStart(e.pos); found && prev.Height == row {
			start = prev.Width
		}
		return view.At(row, start), view.At(row, e.buf.PrevColumn(row, e.pos.Width)), true
	case actionWordEnd:
		if e.pos.Width >= width {
			return left, right, false
		}
		end := e.lastColumn(row)
		if next, found := e.buf.WordEnd(e.pos); found && next.Height == row {
			end = next.Width
		}
		return e.pos, view.At(row, end), true
	}
	return left, right, false
}

// lineOperator is dd or yy.
func (e *Editor) lineOperator(action string) view.Render {
	row := e.pos.Height
	e.copyText(e.buf.Line(row).Text())
	if action == actionYank {
		e.message = "1 line yanked"
		return view.DefaultAction
	}
	e.buf.PopLine(row)
	if e.buf.IsEmpty() {
		e.pos = view.Position{}
		e.offset = view.ScreenOffset{}
		return view.FullScreen
	}
	e.pos = e.buf.Clamp(view.At(min(row, e.buf.Len()-1), 0))
	return view.MultiLine.Scrolled(e.reconcile())
}

// colonCommand reads a command line made of w, q and !. A bare q with
// unsaved changes asks again.
func (e *Editor) colonCommand() (view.Render, Outcome) {
	label := ":"
	for {
		text, ok := e.prompt(label, nil)
		if !ok {
			return view.DefaultAction, Continue
		}
		text = strings.TrimSpace(text)

		var write, quit, force bool
		for _, r := range text {
			switch r {
			case 'w':
				write = true
			case 'q':
				quit = true
			case '!':
				force = true
			default:
				e.message = "Not an editor command: " + text
				return view.DefaultAction, Continue
			}
		}

		if write && !e.saveBuffer() {
			return view.DefaultAction, Continue
		}
		if !quit {
			return view.DefaultAction, Continue
		}
		if force || write || e.buf.Saved || e.buf.IsEmpty() {
			return view.DefaultAction, ExitSession
		}
		label = "No write since last change (add ! to override) :"
	}
}
