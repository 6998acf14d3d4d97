package buffer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kobzarvs/minivim/internal/view"
)

// DefaultTabWidth is the number of spaces a soft tab expands to.
const DefaultTabWidth = 4

// Buffer is an ordered list of lines plus file metadata.
//
// Operations taking a position expect it to be clamped already; an out
// of range row or column is a programming error and panics.
type Buffer struct {
	lines    []*Line
	Filename string
	Saved    bool
	TabWidth int

	// eol is "\r\n" for files that use it on every line. Mixed files
	// split on "\n" and keep their carriage returns as text.
	eol string
}

// New returns an empty buffer bound to filename.
func New(filename string) *Buffer {
	return &Buffer{Filename: filename, Saved: true, TabWidth: DefaultTabWidth}
}

// FromLines builds an unnamed buffer from text rows.
func FromLines(rows ...string) *Buffer {
	b := New("")
	b.lines = make([]*Line, len(rows))
	for i, r := range rows {
		b.lines[i] = NewLine(r)
	}
	return b
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns row i.
func (b *Buffer) Line(i int) *Line {
	b.checkRow(i)
	return b.lines[i]
}

// Rows returns the display form of every line.
func (b *Buffer) Rows() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = l.String()
	}
	return out
}

func (b *Buffer) LineWidth(row int) int {
	return b.Line(row).GraphemeLen()
}

func (b *Buffer) PrevColumn(row, col int) int {
	return b.Line(row).PrevColumn(col)
}

func (b *Buffer) NextColumn(row, col int) int {
	return b.Line(row).NextColumn(col)
}

func (b *Buffer) SnapColumn(row, col int) int {
	return b.Line(row).SnapColumn(col)
}

func (b *Buffer) tabWidth() int {
	if b.TabWidth < 1 {
		return DefaultTabWidth
	}
	return b.TabWidth
}

func (b *Buffer) checkRow(i int) {
	if i < 0 || i >= len(b.lines) {
		panic(fmt.Sprintf("buffer: row %d out of range [0,%d)", i, len(b.lines)))
	}
}

func checkColumn(l *Line, p view.Position) {
	if p.Width < 0 || p.Width > l.GraphemeLen() {
		panic(fmt.Sprintf("buffer: column %d out of range [0,%d] at row %d", p.Width, l.GraphemeLen(), p.Height))
	}
}

// ensureLine gives an empty buffer its first line so typing can start.
func (b *Buffer) ensureLine() {
	if len(b.lines) == 0 {
		b.lines = append(b.lines, NewLine(""))
	}
}

func (b *Buffer) insertLine(at int, l *Line) {
	b.lines = slices.Insert(b.lines, at, l)
}

// InsertChar inserts r at pos and advances pos by its display width.
func (b *Buffer) InsertChar(pos *view.Position, r rune) {
	b.insertFragment(pos, NewFragment(string(r)))
}

// InsertText inserts s one grapheme at a time, advancing pos.
func (b *Buffer) InsertText(pos *view.Position, s string) {
	for _, f := range Fragments(s) {
		b.insertFragment(pos, f)
	}
}

func (b *Buffer) insertFragment(pos *view.Position, f TextFragment) {
	b.ensureLine()
	line := b.Line(pos.Height)
	checkColumn(line, *pos)
	line.insert(line.IndexAt(pos.Width), f)
	pos.SetWidth(pos.Width + f.Cols())
	b.Saved = false
}

// DeleteChar removes the grapheme left of pos. Four spaces in a row
// ending at pos count as one soft tab and go together.
func (b *Buffer) DeleteChar(pos *view.Position) {
	line := b.Line(pos.Height)
	checkColumn(line, *pos)
	if pos.Width == 0 {
		return
	}
	i := line.IndexAt(pos.Width)
	n := 1
	if b.IsTab(*pos) {
		n = b.tabWidth()
	}
	pos.SetWidth(line.ColumnAt(i - n))
	line.remove(i-n, i)
	b.Saved = false
}

// IsTab reports whether the fragments right before pos form a soft tab.
func (b *Buffer) IsTab(pos view.Position) bool {
	if pos.Height < 0 || pos.Height >= len(b.lines) {
		return false
	}
	line := b.lines[pos.Height]
	tw := b.tabWidth()
	i := line.IndexAt(pos.Width)
	if i < tw {
		return false
	}
	for _, f := range line.fragments[i-tw : i] {
		if f.Grapheme != " " {
			return false
		}
	}
	return true
}

// InsertTab inserts n soft tabs at pos and advances pos past them.
func (b *Buffer) InsertTab(pos *view.Position, n int) {
	if n <= 0 {
		return
	}
	b.ensureLine()
	line := b.Line(pos.Height)
	checkColumn(line, *pos)
	width := n * b.tabWidth()
	line.insert(line.IndexAt(pos.Width), Fragments(strings.Repeat(" ", width))...)
	pos.SetWidth(pos.Width + width)
	b.Saved = false
}

// NewLine inserts a blank line after index that repeats the soft-tab
// depth of line index. It returns the indent width of the new line.
func (b *Buffer) NewLine(index int) int {
	if b.IsEmpty() {
		b.ensureLine()
		index = 0
	}
	above := b.Line(index)
	tw := b.tabWidth()
	indent := above.leadingSpaces() / tw * tw
	b.insertLine(index+1, NewLine(strings.Repeat(" ", indent)))
	b.Saved = false
	return indent
}

// SplitLine moves everything right of pos onto a new following line.
func (b *Buffer) SplitLine(pos view.Position) {
	line := b.Line(pos.Height)
	checkColumn(line, pos)
	tail := line.truncate(line.IndexAt(pos.Width))
	b.insertLine(pos.Height+1, lineFrom(tail))
	b.Saved = false
}

// JoinLine appends line index onto line index-1 and removes it.
func (b *Buffer) JoinLine(index int) {
	b.checkRow(index)
	if index == 0 {
		panic("buffer: join of the first line")
	}
	b.lines[index-1].append(b.lines[index].fragments...)
	b.lines = slices.Delete(b.lines, index, index+1)
	b.Saved = false
}

// PopLine removes line index entirely and returns it.
func (b *Buffer) PopLine(index int) *Line {
	l := b.Line(index)
	b.lines = slices.Delete(b.lines, index, index+1)
	b.Saved = false
	return l
}

// DeleteSegment deletes the graphemes between left and right on one
// row, both ends included. right is moved onto left afterwards.
func (b *Buffer) DeleteSegment(left view.Position, right *view.Position) {
	if left.Height != right.Height {
		panic(fmt.Sprintf("buffer: segment delete across rows %d and %d", left.Height, right.Height))
	}
	if right.Before(left) {
		panic(fmt.Sprintf("buffer: segment delete with right %s before left %s", right, left))
	}
	line := b.Line(left.Height)
	checkColumn(line, left)
	checkColumn(line, *right)
	li := line.IndexAt(left.Width)
	ri := min(line.IndexAt(right.Width), line.Len()-1)
	if li <= ri {
		line.remove(li, ri+1)
		b.Saved = false
	}
	right.SetWidth(line.ColumnAt(li))
}

// Segment returns the text from left to right inclusive. Lines are
// joined with "\n". The order of the two ends does not matter.
func (b *Buffer) Segment(left, right view.Position) string {
	if right.Before(left) {
		left, right = right, left
	}
	first := b.Line(left.Height)
	li := first.IndexAt(left.Width)
	if left.Height == right.Height {
		ri := min(first.IndexAt(right.Width), first.Len()-1)
		if li > ri {
			return ""
		}
		return textOf(first.fragments[li : ri+1])
	}

	last := b.Line(right.Height)
	var sb strings.Builder
	sb.WriteString(textOf(first.fragments[li:]))
	sb.WriteByte('\n')
	for _, l := range b.lines[left.Height+1 : right.Height] {
		sb.WriteString(l.Text())
		sb.WriteByte('\n')
	}
	if ri := min(last.IndexAt(right.Width), last.Len()-1); ri >= 0 {
		sb.WriteString(textOf(last.fragments[:ri+1]))
	}
	return sb.String()
}

func textOf(frags []TextFragment) string {
	var sb strings.Builder
	for _, f := range frags {
		sb.WriteString(f.Grapheme)
	}
	return sb.String()
}

// AddTextFromClipboard inserts text at pos. Rows that already exist
// get the text inserted grapheme by grapheme, the first at pos and the
// rest at column 0; rows past the end are appended whole. pos ends up
// after the last inserted grapheme.
func (b *Buffer) AddTextFromClipboard(text string, pos *view.Position) {
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, part := range strings.Split(text, "\n") {
		row := pos.Height
		if i > 0 {
			row++
		}
		if row >= len(b.lines) {
			b.lines = append(b.lines, NewLine(part))
			*pos = view.At(len(b.lines)-1, b.lines[len(b.lines)-1].GraphemeLen())
			continue
		}
		if i > 0 {
			*pos = view.At(row, 0)
		}
		b.InsertText(pos, part)
	}
	b.Saved = false
}

// Content joins all lines with "\n".
func (b *Buffer) Content() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, b.lineEnding())
}

func (b *Buffer) lineEnding() string {
	if b.eol == "" {
		return "\n"
	}
	return b.eol
}
