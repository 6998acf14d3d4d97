package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/view"
)

// prompt reads one line of text on the message row. Enter accepts, Esc
// cancels. accept limits which runes can be typed; nil allows any
// printable rune.
func (e *Editor) prompt(label string, accept func(rune) bool) (string, bool) {
	var input []rune
	draw := func() { e.drawPrompt(label + string(input)) }
	redraw := func() {
		e.Render(view.FullScreen)
		draw()
	}
	draw()
	for {
		ev, ok := e.poll(redraw)
		if !ok {
			return "", false
		}
		switch ev.Key() {
		case tcell.KeyEnter:
			return string(input), true
		case tcell.KeyEscape:
			return "", false
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case tcell.KeyRune:
			if printable(ev) && (accept == nil || accept(ev.Rune())) {
				input = append(input, ev.Rune())
			}
		}
		draw()
	}
}
