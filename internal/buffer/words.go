package buffer

import (
	"unicode"
	"unicode/utf8"
)

// Two boundary systems live here. The space-delimited one backs the
// word-jump keys of insert mode. The character-class one (alnum and
// underscore versus punctuation) backs the vim w, b and e motions.
// All functions take and return display columns.

// NextWord returns the start of the first word after the next space.
func (l *Line) NextWord(start int) (int, bool) {
	n := len(l.fragments)
	if n == 0 {
		return 0, false
	}
	i := l.IndexAt(start)
	for i < n && !l.fragments[i].isSpace() {
		i++
	}
	for i < n && l.fragments[i].isSpace() {
		i++
	}
	if i >= n {
		return 0, false
	}
	return l.ColumnAt(i), true
}

// NextWordSpillover is the first word start when arriving from the
// previous line.
func (l *Line) NextWordSpillover() (int, bool) {
	for i, f := range l.fragments {
		if !f.isSpace() {
			return l.ColumnAt(i), true
		}
	}
	return 0, false
}

// PrevWord returns the start of the word before start.
func (l *Line) PrevWord(start int) (int, bool) {
	i := l.IndexAt(start)
	if i == 0 {
		return 0, false
	}
	for i > 0 && l.fragments[i-1].isSpace() {
		i--
	}
	if i == 0 {
		return 0, false
	}
	for i > 0 && !l.fragments[i-1].isSpace() {
		i--
	}
	return l.ColumnAt(i), true
}

// PrevWordSpillover is the start of the last word when arriving from
// the next line.
func (l *Line) PrevWordSpillover() (int, bool) {
	return l.PrevWord(l.GraphemeLen())
}

type charClass int

const (
	classSpace charClass = iota
	classWord
	classPunct
)

func classOf(f TextFragment) charClass {
	if f.isSpace() {
		return classSpace
	}
	r, _ := utf8.DecodeRuneInString(f.Grapheme)
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	}
	return classPunct
}

func (l *Line) class(i int) charClass {
	return classOf(l.fragments[i])
}

// BeginningOfNextWord is vim's w within one line.
func (l *Line) BeginningOfNextWord(col int) (int, bool) {
	n := len(l.fragments)
	i := l.IndexAt(col)
	if i >= n {
		return 0, false
	}
	if c := l.class(i); c != classSpace {
		for i < n && l.class(i) == c {
			i++
		}
	}
	for i < n && l.class(i) == classSpace {
		i++
	}
	if i >= n {
		return 0, false
	}
	return l.ColumnAt(i), true
}

// BeginningOfCurrentWord is vim's b within one line.
func (l *Line) BeginningOfCurrentWord(col int) (int, bool) {
	i := l.IndexAt(col) - 1
	for i >= 0 && l.class(i) == classSpace {
		i--
	}
	if i < 0 {
		return 0, false
	}
	c := l.class(i)
	for i > 0 && l.class(i-1) == c {
		i--
	}
	return l.ColumnAt(i), true
}

// EndOfCurrentWord is vim's e within one line.
func (l *Line) EndOfCurrentWord(col int) (int, bool) {
	n := len(l.fragments)
	i := l.IndexAt(col) + 1
	for i < n && l.class(i) == classSpace {
		i++
	}
	if i >= n {
		return 0, false
	}
	c := l.class(i)
	for i+1 < n && l.class(i+1) == c {
		i++
	}
	return l.ColumnAt(i), true
}

// BeginningOfNextWordSpillover is where w lands on a following line.
func (l *Line) BeginningOfNextWordSpillover() (int, bool) {
	for i := range l.fragments {
		if l.class(i) != classSpace {
			return l.ColumnAt(i), true
		}
	}
	return 0, false
}

// BeginningOfCurrentWordSpillover is where b lands on a preceding line.
func (l *Line) BeginningOfCurrentWordSpillover() (int, bool) {
	return l.BeginningOfCurrentWord(l.GraphemeLen())
}

// EndOfCurrentWordSpillover is where e lands on a following line.
func (l *Line) EndOfCurrentWordSpillover() (int, bool) {
	n := len(l.fragments)
	i := 0
	for i < n && l.class(i) == classSpace {
		i++
	}
	if i >= n {
		return 0, false
	}
	c := l.class(i)
	for i+1 < n && l.class(i+1) == c {
		i++
	}
	return l.ColumnAt(i), true
}
