package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kobzarvs/minivim/internal/clipboard"
	"github.com/kobzarvs/minivim/internal/view"
)

func clipText(t *testing.T, e *Editor) string {
	t.Helper()
	text, err := e.clip.GetText()
	if err != nil {
		t.Fatalf("clipboard: %v", err)
	}
	return text
}

func TestVimWordMotions(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar baz")
	feed(t, e, "w", "w", "b", "e", "i")
	if !press(t, e, "esc") {
		t.Fatalf("vim mode ended the session")
	}
	if !e.pos.Equal(view.At(0, 6)) {
		t.Fatalf("pos = %v, want (0,6)", e.pos)
	}
	if e.mode != ModeInsert {
		t.Fatalf("mode = %v, want Insert", e.mode)
	}
}

func TestVimBasicMotions(t *testing.T) {
	e, _ := newTestEditor(t, "abc", "de", "fghij")
	feed(t, e, "l", "l", "j", "j", "$", "k", "0", "esc")
	press(t, e, "esc")
	if !e.pos.Equal(view.At(1, 0)) {
		t.Fatalf("pos = %v, want (1,0)", e.pos)
	}
}

func TestVimGotoTopAndBottom(t *testing.T) {
	e, _ := newTestEditor(t, "a", "bb", "ccc")
	e.pos = view.At(1, 1)

	feed(t, e, "G", "G", "i")
	press(t, e, "esc")
	if !e.pos.Equal(view.At(2, 0)) {
		t.Fatalf("GG pos = %v, want (2,0)", e.pos)
	}

	feed(t, e, "g", "x", "g", "g", "i")
	press(t, e, "esc")
	if !e.pos.Equal(view.At(0, 0)) {
		t.Fatalf("gg pos = %v, want (0,0)", e.pos)
	}
}

func TestVimDeleteWord(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar")
	feed(t, e, "d", "w", "i")
	press(t, e, "esc")
	if got := rows(e)[0]; got != "bar" {
		t.Fatalf("row = %q, want %q", got, "bar")
	}
	if got := clipText(t, e); got != "foo " {
		t.Fatalf("clipboard = %q, want %q", got, "foo ")
	}
}

func TestVimDeleteLastWordRunsToLineEnd(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar", "next")
	e.pos = view.At(0, 4)
	feed(t, e, "d", "w", "i")
	press(t, e, "esc")
	if got := strings.Join(rows(e), "|"); got != "foo |next" {
		t.Fatalf("rows = %q, want %q", got, "foo |next")
	}
}

func TestVimDeleteBackWord(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar")
	e.pos = view.At(0, 7)
	feed(t, e, "d", "b", "i")
	press(t, e, "esc")
	if got := rows(e)[0]; got != "foo " {
		t.Fatalf("row = %q, want %q", got, "foo ")
	}
	if got := clipText(t, e); got != "bar" {
		t.Fatalf("clipboard = %q, want %q", got, "bar")
	}
	if !e.pos.Equal(view.At(0, 4)) {
		t.Fatalf("pos = %v, want (0,4)", e.pos)
	}
}

func TestVimDeleteToWordEnd(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar")
	feed(t, e, "d", "e", "i")
	press(t, e, "esc")
	if got := rows(e)[0]; got != " bar" {
		t.Fatalf("row = %q, want %q", got, " bar")
	}
}

func TestVimYankWordKeepsText(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar")
	feed(t, e, "y", "e", "i")
	press(t, e, "esc")
	if got := rows(e)[0]; got != "foo bar" {
		t.Fatalf("row = %q, want unchanged", got)
	}
	if got := clipText(t, e); got != "foo" {
		t.Fatalf("clipboard = %q, want %q", got, "foo")
	}
}

func TestVimDeleteLine(t *testing.T) {
	e, _ := newTestEditor(t, "one", "two", "three")
	e.pos = view.At(1, 1)
	feed(t, e, "d", "d", "i")
	press(t, e, "esc")
	if got := strings.Join(rows(e), "|"); got != "one|three" {
		t.Fatalf("rows = %q, want %q", got, "one|three")
	}
	if !e.pos.Equal(view.At(1, 0)) {
		t.Fatalf("pos = %v, want (1,0)", e.pos)
	}
	if got := clipText(t, e); got != "two" {
		t.Fatalf("clipboard = %q, want %q", got, "two")
	}
}

func TestVimDeleteOnlyLine(t *testing.T) {
	e, _ := newTestEditor(t, "solo")
	feed(t, e, "d", "d", "i")
	press(t, e, "esc")
	if !e.buf.IsEmpty() {
		t.Fatalf("rows = %q, want empty buffer", rows(e))
	}
	if e.pos != (view.Position{}) {
		t.Fatalf("pos = %v, want (0,0)", e.pos)
	}
}

func TestVimYankLineAndPaste(t *testing.T) {
	e, _ := newTestEditor(t, "ab")
	feed(t, e, "y", "y", "p", "i")
	press(t, e, "esc")
	if got := rows(e)[0]; got != "abab" {
		t.Fatalf("row = %q, want %q", got, "abab")
	}
}

func TestVimOperatorCancelledByOtherKey(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar")
	feed(t, e, "d", "x", "i")
	press(t, e, "esc")
	if got := rows(e)[0]; got != "foo bar" {
		t.Fatalf("row = %q, want unchanged", got)
	}
}

func TestColonWriteQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	e, _ := newTestEditor(t, "a")
	e.buf.Filename = path
	e.buf.Saved = false

	feed(t, e, ":", "w", "q", "enter")
	if press(t, e, "esc") {
		t.Fatalf(":wq kept the session")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "a" {
		t.Fatalf("file = %q, want %q", data, "a")
	}
}

func TestColonWriteStays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	e, _ := newTestEditor(t, "a")
	e.buf.Filename = path
	e.buf.Saved = false

	feed(t, e, ":", "w", "enter", "i")
	if !press(t, e, "esc") {
		t.Fatalf(":w ended the session")
	}
	if !e.buf.Saved {
		t.Fatalf("Saved = false after :w")
	}
}

func TestColonQuitUnsavedAsksAgain(t *testing.T) {
	e, _ := newTestEditor(t, "a")
	e.buf.Saved = false

	feed(t, e, ":", "q", "enter", "esc", "i")
	if !press(t, e, "esc") {
		t.Fatalf(":q on unsaved buffer ended the session")
	}

	feed(t, e, ":", "q", "enter", "q", "!", "enter")
	if press(t, e, "esc") {
		t.Fatalf(":q then :q! kept the session")
	}
}

func TestColonQuitSaved(t *testing.T) {
	e, _ := newTestEditor(t, "a")
	feed(t, e, ":", "q", "enter")
	if press(t, e, "esc") {
		t.Fatalf(":q on saved buffer kept the session")
	}
}

func TestColonUnknownCommand(t *testing.T) {
	e, _ := newTestEditor(t, "a")
	feed(t, e, ":", "x", "enter")
	press(t, e, "esc")
	if e.message != "Not an editor command: x" {
		t.Fatalf("message = %q", e.message)
	}
}

func TestNearestMatch(t *testing.T) {
	lines := []int{4, 9, 12, 30, 39, 45, 56, 63}
	matches := make([]view.Position, len(lines))
	for i, h := range lines {
		matches[i] = view.At(h, 0)
	}
	cases := []struct{ row, want int }{
		{0, 0},
		{4, 0},
		{10, 1},
		{15, 2},
		{25, 3},
		{40, 4},
		{63, 7},
		{100, 7},
	}
	for _, c := range cases {
		if got := nearestMatch(matches, c.row); got != c.want {
			t.Fatalf("nearestMatch(%d) = %d, want %d", c.row, got, c.want)
		}
	}
	tied := []view.Position{view.At(4, 0), view.At(10, 0), view.At(16, 0)}
	if got := nearestMatch(tied, 7); got != 1 {
		t.Fatalf("nearestMatch on a tie = %d, want 1", got)
	}
	if got := nearestMatch(nil, 3); got != 0 {
		t.Fatalf("nearestMatch(nil) = %d, want 0", got)
	}
}

func TestSearchCyclesWithWrap(t *testing.T) {
	e, _ := newTestEditor(t, "foo", "bar foo", "foo")
	feed(t, e, "f", "o", "o", "ctrl+n", "ctrl+n", "ctrl+n", "ctrl+p", "enter")
	press(t, e, "ctrl+f")
	if !e.pos.Equal(view.At(2, 0)) {
		t.Fatalf("pos = %v, want (2,0)", e.pos)
	}
	if e.search != nil || e.mode != ModeInsert {
		t.Fatalf("search state left behind: mode %v", e.mode)
	}
}

func TestSearchStartsNearCursor(t *testing.T) {
	e, _ := newTestEditor(t, "x", "a", "x", "x", "x", "a")
	e.pos = view.At(4, 0)
	feed(t, e, "a", "enter")
	press(t, e, "ctrl+f")
	if !e.pos.Equal(view.At(5, 0)) {
		t.Fatalf("pos = %v, want (5,0)", e.pos)
	}
}

func TestSearchEscRestores(t *testing.T) {
	e, _ := newTestEditor(t, "alpha", "beta", "gamma")
	e.pos = view.At(0, 2)
	feed(t, e, "g", "a", "esc")
	press(t, e, "ctrl+f")
	if !e.pos.Equal(view.At(0, 2)) {
		t.Fatalf("pos = %v, want (0,2)", e.pos)
	}
}

func TestSearchWithoutMatchKeepsOrigin(t *testing.T) {
	e, _ := newTestEditor(t, "alpha", "beta")
	e.pos = view.At(1, 1)
	feed(t, e, "b", "z", "enter")
	press(t, e, "ctrl+f")
	if !e.pos.Equal(view.At(1, 1)) {
		t.Fatalf("pos = %v, want (1,1)", e.pos)
	}
}

func TestSearchBackspacePopsResults(t *testing.T) {
	e, _ := newTestEditor(t, "alpha", "beta")
	feed(t, e, "e", "z", "backspace", "enter")
	press(t, e, "ctrl+f")
	if !e.pos.Equal(view.At(1, 1)) {
		t.Fatalf("pos = %v, want (1,1)", e.pos)
	}
}

func TestSearchHighlightsMatches(t *testing.T) {
	e, s := newTestEditor(t, "abc abc")
	e.search = &searchState{query: []rune("abc"), stack: [][]view.Position{e.buf.Search("abc")}, index: 1}
	e.search.setWidth()
	e.Render(view.FullScreen)

	cells, _, _ := s.GetContents()
	other, current, plain := cells[0], cells[4], cells[3]
	if other.Style != e.styles.match {
		t.Fatalf("first match style = %v, want match style", other.Style)
	}
	if current.Style != e.styles.selection {
		t.Fatalf("current match style = %v, want selection style", current.Style)
	}
	if plain.Style != e.styles.main {
		t.Fatalf("gap style = %v, want main style", plain.Style)
	}
}

func TestHighlightSpans(t *testing.T) {
	h := &highlightState{anchor: view.At(1, 2), end: view.At(3, 1)}
	cases := []struct {
		row  int
		last int
		want HighlightSpan
	}{
		{1, 5, HighlightSpan{Kind: Trailing, From: 2, To: 5}},
		{2, 4, HighlightSpan{Kind: All, From: 0, To: 4}},
		{3, 6, HighlightSpan{Kind: Leading, From: 0, To: 1}},
	}
	for _, c := range cases {
		got, ok := h.span(c.row, c.last)
		if !ok || got != c.want {
			t.Fatalf("span(%d) = %+v, %v; want %+v", c.row, got, ok, c.want)
		}
	}
	if _, ok := h.span(0, 3); ok {
		t.Fatalf("row above the selection reported a span")
	}

	single := &highlightState{anchor: view.At(0, 3), end: view.At(0, 1)}
	if got, _ := single.span(0, 6); got != (HighlightSpan{Kind: Middle, From: 1, To: 3}) {
		t.Fatalf("single row span = %+v", got)
	}
	if single.orientation() != EndFirst {
		t.Fatalf("orientation = %v, want EndFirst", single.orientation())
	}
}

func TestHighlightCopyIgnoresOrientation(t *testing.T) {
	e, _ := newTestEditor(t, "hello", "world")

	e.hl = &highlightState{anchor: view.At(0, 2), end: view.At(1, 1)}
	forward := e.selectionText()
	e.hl = &highlightState{anchor: view.At(1, 1), end: view.At(0, 2)}
	backward := e.selectionText()

	if forward != backward {
		t.Fatalf("EndFirst text %q != StartFirst text %q", backward, forward)
	}
	if forward != "llo\nwo" {
		t.Fatalf("selection = %q, want %q", forward, "llo\nwo")
	}
}

func TestHighlightCopyWithKeys(t *testing.T) {
	e, _ := newTestEditor(t, "hello", "world")
	e.pos = view.At(0, 3)
	feed(t, e, "right", "right", "ctrl+c")
	press(t, e, "ctrl+b")
	if got := clipText(t, e); got != "lo\nw" {
		t.Fatalf("clipboard = %q, want %q", got, "lo\nw")
	}
	if got := strings.Join(rows(e), "|"); got != "hello|world" {
		t.Fatalf("copy changed the buffer: %q", got)
	}
	if e.hl != nil || e.mode != ModeInsert {
		t.Fatalf("selection left behind: mode %v", e.mode)
	}
}

func TestHighlightLeftWrapsToPreviousRow(t *testing.T) {
	e, _ := newTestEditor(t, "ab", "cd")
	e.pos = view.At(1, 0)
	feed(t, e, "left", "ctrl+c")
	press(t, e, "ctrl+b")
	if got := clipText(t, e); got != "b\nc" {
		t.Fatalf("clipboard = %q, want %q", got, "b\nc")
	}
}

func TestHighlightDeleteSameRow(t *testing.T) {
	e, _ := newTestEditor(t, "hello")
	e.pos = view.At(0, 1)
	feed(t, e, "right", "right", "backspace")
	press(t, e, "ctrl+b")
	if got := rows(e)[0]; got != "ho" {
		t.Fatalf("row = %q, want %q", got, "ho")
	}
	if !e.pos.Equal(view.At(0, 1)) {
		t.Fatalf("pos = %v, want (0,1)", e.pos)
	}
}

func TestHighlightDeleteAcrossRows(t *testing.T) {
	e, _ := newTestEditor(t, "hello", "big", "world", "tail")
	e.hl = &highlightState{anchor: view.At(2, 1), end: view.At(0, 2)}
	e.deleteSelection()
	if got := strings.Join(rows(e), "|"); got != "herld|tail" {
		t.Fatalf("rows = %q, want %q", got, "herld|tail")
	}
	if !e.pos.Equal(view.At(0, 2)) {
		t.Fatalf("pos = %v, want (0,2)", e.pos)
	}
}

func TestHighlightEscLeavesBufferAlone(t *testing.T) {
	e, _ := newTestEditor(t, "hello", "world")
	e.pos = view.At(0, 5)
	feed(t, e, "down", "left", "esc")
	press(t, e, "ctrl+b")
	if got := strings.Join(rows(e), "|"); got != "hello|world" {
		t.Fatalf("rows = %q", got)
	}
	if !e.pos.Equal(view.At(0, 5)) {
		t.Fatalf("pos = %v, want (0,5)", e.pos)
	}
}

func TestHighlightOnEmptyBuffer(t *testing.T) {
	e, _ := newTestEditor(t)
	e.clip = &clipboard.Memory{}
	if !press(t, e, "ctrl+b") {
		t.Fatalf("highlight on empty buffer ended the session")
	}
	if e.hl != nil {
		t.Fatalf("selection started on empty buffer")
	}
}
