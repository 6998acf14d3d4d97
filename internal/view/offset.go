package view

// ScreenOffset is the buffer coordinate drawn at the top-left cell.
type ScreenOffset struct {
	Height int
	Width  int
}

// MaxDisplacementFromView returns 0 when p lies inside the visible
// rectangle, otherwise how many rows or columns it overflows by,
// whichever axis is worse.
func (p Position) MaxDisplacementFromView(off ScreenOffset, size Size, reserved int) int {
	var dw int
	switch right := off.Width + size.Width; {
	case p.Width < off.Width:
		dw = off.Width - p.Width
	case p.Width >= right:
		dw = p.Width - right + 1
	}

	var dh int
	switch cutoff := off.Height + size.Visible(reserved); {
	case p.Height < off.Height:
		dh = off.Height - p.Height
	case p.Height >= cutoff:
		dh = p.Height - cutoff + 1
	}
	return max(dh, dw)
}

// SingleMove nudges the offset just enough to bring p back into view.
// It is meant for displacements of one row or column.
func (o *ScreenOffset) SingleMove(p Position, size Size, reserved int) {
	visible := size.Visible(reserved)
	if p.Height >= o.Height+visible {
		o.Height = max(p.Height-visible+1, 0)
	}
	if p.Height < o.Height {
		o.Height = p.Height
	}
	if p.Width < o.Width {
		o.Width = p.Width
	}
	if p.Width >= o.Width+size.Width {
		o.Width = max(p.Width-size.Width+1, 0)
	}
}

// Snap recomputes the offset from p after a jump. Rows above the view
// keep one line of context; the first row and first column pin the
// offset to the edge.
func (o *ScreenOffset) Snap(p Position, size Size, reserved int) {
	visible := size.Visible(reserved)
	switch {
	case p.Height >= o.Height+visible:
		o.Height = max(p.Height-visible+1, 0)
	case p.Height < o.Height:
		o.Height = max(p.Height-1, 0)
		if visible <= 1 {
			o.Height = p.Height
		}
	}
	if p.Height == 0 {
		o.Height = 0
	}

	switch {
	case p.Width == 0:
		o.Width = 0
	case p.Width >= o.Width+size.Width:
		o.Width = max(p.Width-size.Width+1, 0)
	case p.Width < o.Width:
		o.Width = p.Width
	}
}

// Reconcile picks the cheap or the full strategy from the displacement
// and reports whether the offset moved.
func (o *ScreenOffset) Reconcile(p Position, size Size, reserved int) bool {
	before := *o
	switch d := p.MaxDisplacementFromView(*o, size, reserved); {
	case d == 0:
		return false
	case d == 1:
		o.SingleMove(p, size, reserved)
	default:
		o.Snap(p, size, reserved)
	}
	return *o != before
}
