package editor

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/buffer"
	"github.com/kobzarvs/minivim/internal/view"
)

// searchState keeps one result list per typed prefix so backspace pops
// instead of searching again.
type searchState struct {
	query        []rune
	width        int
	stack        [][]view.Position
	index        int
	origin       view.Position
	originOffset view.ScreenOffset
}

func (s *searchState) results() []view.Position {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *searchState) current() (view.Position, bool) {
	r := s.results()
	if len(r) == 0 {
		return view.Position{}, false
	}
	return r[s.index], true
}

// step moves through the results with wraparound.
func (s *searchState) step(delta int) {
	n := len(s.results())
	if n == 0 {
		return
	}
	s.index = ((s.index+delta)%n + n) % n
}

func (s *searchState) setWidth() {
	s.width = 0
	for _, f := range buffer.Fragments(string(s.query)) {
		s.width += f.Cols()
	}
}

// nearestMatch returns the index of the match whose row is closest to
// row. matches must be in reading order; on a tie the match below row
// wins.
func nearestMatch(matches []view.Position, row int) int {
	if len(matches) == 0 {
		return 0
	}
	i := sort.Search(len(matches), func(i int) bool { return matches[i].Height >= row })
	switch {
	case i == len(matches):
		return i - 1
	case i == 0:
		return 0
	}
	if row-matches[i-1].Height < matches[i].Height-row {
		return i - 1
	}
	return i
}

// runSearch is the incremental search loop. Enter keeps the match under
// the cursor, Esc puts everything back.
func (e *Editor) runSearch() (view.Render, Outcome) {
	s := &searchState{origin: e.pos, originOffset: e.offset}
	e.search = s
	e.mode = ModeSearch
	defer func() {
		e.search = nil
		e.mode = ModeInsert
	}()

	draw := func() {
		e.Render(view.FullScreen)
		e.drawPrompt("Search: " + string(s.query))
	}
	draw()
	for {
		ev, ok := e.poll(draw)
		if !ok {
			e.pos, e.offset = s.origin, s.originOffset
			return view.FullScreen, Continue
		}
		switch key := keyString(ev); {
		case key == "enter":
			return view.FullScreen, Continue
		case key == "esc":
			e.pos, e.offset = s.origin, s.originOffset
			return view.FullScreen, Continue
		case key == "ctrl+n":
			s.step(1)
		case key == "ctrl+p":
			s.step(-1)
		case key == "backspace":
			if len(s.query) == 0 {
				continue
			}
			s.query = s.query[:len(s.query)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.setWidth()
			s.index = nearestMatch(s.results(), s.origin.Height)
		case ev.Key() == tcell.KeyRune && printable(ev):
			s.query = append(s.query, ev.Rune())
			s.stack = append(s.stack, e.buf.Search(string(s.query)))
			s.setWidth()
			s.index = nearestMatch(s.results(), s.origin.Height)
		default:
			continue
		}
		e.showMatch()
		draw()
	}
}

// showMatch moves the cursor to the current match, or back to where
// the search started when nothing matches.
func (e *Editor) showMatch() {
	p, ok := e.search.current()
	if !ok {
		e.pos, e.offset = e.search.origin, e.search.originOffset
		return
	}
	e.pos = p
	if p.Width < e.size.Width {
		e.offset.Width = 0
	}
	e.reconcile()
}

type matchSpan struct {
	from, to int
	current  bool
}

// matchesOn returns the search hits on row as inclusive column ranges.
func (e *Editor) matchesOn(row int) []matchSpan {
	s := e.search
	if s == nil || s.width == 0 {
		return nil
	}
	var out []matchSpan
	for i, p := range s.results() {
		if p.Height != row {
			continue
		}
		out = append(out, matchSpan{from: p.Width, to: p.Width + s.width - 1, current: i == s.index})
	}
	return out
}

func matchAt(spans []matchSpan, col int) (matchSpan, bool) {
	for _, m := range spans {
		if col >= m.from && col <= m.to {
			return m, true
		}
	}
	return matchSpan{}, false
}
