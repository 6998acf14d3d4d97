package editor

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/minivim/internal/config"
	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/view"
)

type styles struct {
	main      tcell.Style
	status    tcell.Style
	command   tcell.Style
	selection tcell.Style
	match     tcell.Style
	cursor    tcell.CursorStyle
}

func newStyles(t config.Theme) styles {
	pair := func(fg, bg string) tcell.Style {
		return tcell.StyleDefault.
			Foreground(parseColor(fg, tcell.ColorDefault)).
			Background(parseColor(bg, tcell.ColorDefault))
	}
	return styles{
		main:      pair(t.Foreground, t.Background),
		status:    pair(t.StatuslineForeground, t.StatuslineBackground),
		command:   pair(t.CommandlineForeground, t.CommandlineBackground),
		selection: pair(t.SelectionForeground, t.SelectionBackground),
		match:     pair(t.SearchMatchForeground, t.SearchMatchBackground),
		cursor:    parseCursorStyle(t.CursorStyle),
	}
}

// cycleTheme switches to the next palette in the rotation.
func (e *Editor) cycleTheme() view.Render {
	if len(e.palettes) == 0 {
		return view.DefaultAction
	}
	e.palette = (e.palette + 1) % len(e.palettes)
	p := e.palettes[e.palette]
	e.styles = newStyles(p.Theme)
	e.message = "Theme: " + p.Name
	logger.Debug("theme changed", "theme", p.Name)
	return view.FullScreen
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

func parseCursorStyle(name string) tcell.CursorStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blinking-block":
		return tcell.CursorStyleBlinkingBlock
	case "steady-block", "block":
		return tcell.CursorStyleSteadyBlock
	case "blinking-underline":
		return tcell.CursorStyleBlinkingUnderline
	case "steady-underline", "underline":
		return tcell.CursorStyleSteadyUnderline
	case "blinking-bar":
		return tcell.CursorStyleBlinkingBar
	case "steady-bar", "bar":
		return tcell.CursorStyleSteadyBar
	}
	return tcell.CursorStyleDefault
}
