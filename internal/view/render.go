package view

// Render is how much of the screen a command invalidated. It is
// computed per command and never kept between events.
type Render int

const (
	// DefaultAction redraws the cursor and status line only.
	DefaultAction Render = iota
	// SingleLine redraws the cursor row.
	SingleLine
	// MultiLine redraws the cursor row and everything below it.
	MultiLine
	// FullScreen redraws every row.
	FullScreen
)

func (r Render) String() string {
	switch r {
	case DefaultAction:
		return "default"
	case SingleLine:
		return "single_line"
	case MultiLine:
		return "multi_line"
	case FullScreen:
		return "full_screen"
	}
	return "unknown"
}

// Max returns the wider of two classifications.
func (r Render) Max(o Render) Render {
	if o > r {
		return o
	}
	return r
}

// Scrolled upgrades r to FullScreen when the offset changed.
func (r Render) Scrolled(moved bool) Render {
	if moved {
		return FullScreen
	}
	return r
}
