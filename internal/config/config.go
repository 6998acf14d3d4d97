package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

// Keymap binds key strings such as "ctrl+q" or "G" to action names.
type Keymap struct {
	Insert map[string]string `toml:"insert"`
	Vim    map[string]string `toml:"vim"`
}

type EditorOptions struct {
	TabWidth     int  `toml:"tab-width"`
	ReservedRows int  `toml:"reserved-rows"`
	SoftTab      bool `toml:"soft-tab"`
	Debug        bool `toml:"debug"`
}

type Theme struct {
	Theme                 string   `toml:"theme"`
	Cycle                 []string `toml:"cycle"`
	Foreground            string   `toml:"foreground"`
	Background            string   `toml:"background"`
	StatuslineForeground  string   `toml:"statusline-foreground"`
	StatuslineBackground  string   `toml:"statusline-background"`
	CommandlineForeground string   `toml:"commandline-foreground"`
	CommandlineBackground string   `toml:"commandline-background"`
	SelectionForeground   string   `toml:"selection-foreground"`
	SelectionBackground   string   `toml:"selection-background"`
	SearchMatchForeground string   `toml:"search-foreground"`
	SearchMatchBackground string   `toml:"search-background"`
	CursorStyle           string   `toml:"cursor-style"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:     4,
			ReservedRows: 2,
			SoftTab:      true,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#0A0E14",
			StatuslineBackground:  "#B3B1AD",
			CommandlineForeground: "#B3B1AD",
			CommandlineBackground: "#0A0E14",
			SelectionForeground:   "#B3B1AD",
			SelectionBackground:   "#27425A",
			SearchMatchForeground: "#000000",
			SearchMatchBackground: "#FFD700",
			CursorStyle:           "default",
		},
		Keymap: Keymap{
			Insert: map[string]string{
				"ctrl+q":     "quit",
				"ctrl+w":     "save",
				"ctrl+f":     "search",
				"ctrl+b":     "highlight",
				"esc":        "vim_mode",
				"ctrl+t":     "theme",
				"ctrl+g":     "help",
				"ctrl+j":     "jump_to_line",
				"ctrl+v":     "paste",
				"ctrl+l":     "line_start",
				"ctrl+r":     "line_end",
				"ctrl+u":     "page_up",
				"ctrl+d":     "page_down",
				"left":       "move_left",
				"down":       "move_down",
				"up":         "move_up",
				"right":      "move_right",
				"home":       "line_start",
				"end":        "line_end",
				"pgup":       "page_up",
				"pgdn":       "page_down",
				"ctrl+left":  "word_left",
				"ctrl+right": "word_right",
				"enter":      "newline",
				"backspace":  "backspace",
				"tab":        "tab",
			},
			Vim: map[string]string{
				"h":     "move_left",
				"j":     "move_down",
				"k":     "move_up",
				"l":     "move_right",
				"left":  "move_left",
				"down":  "move_down",
				"up":    "move_up",
				"right": "move_right",
				"0":     "line_start",
				"$":     "line_end",
				"w":     "word_forward",
				"b":     "word_backward",
				"e":     "word_end",
				"g":     "goto_top",
				"G":     "goto_bottom",
				"d":     "delete",
				"y":     "yank",
				"p":     "paste",
				":":     "command",
				"i":     "insert_mode",
				"esc":   "insert_mode",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.ReservedRows > 0 {
		cfg.Editor.ReservedRows = userCfg.Editor.ReservedRows
	}
	if md.IsDefined("editor", "soft-tab") {
		cfg.Editor.SoftTab = userCfg.Editor.SoftTab
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = true
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	if len(userCfg.Theme.Cycle) > 0 {
		cfg.Theme.Cycle = userCfg.Theme.Cycle
	}
	for k, v := range userCfg.Keymap.Insert {
		cfg.Keymap.Insert[k] = v
	}
	for k, v := range userCfg.Keymap.Vim {
		cfg.Keymap.Vim[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.CommandlineForeground != "" {
		dst.CommandlineForeground = src.CommandlineForeground
	}
	if src.CommandlineBackground != "" {
		dst.CommandlineBackground = src.CommandlineBackground
	}
	if src.SelectionForeground != "" {
		dst.SelectionForeground = src.SelectionForeground
	}
	if src.SelectionBackground != "" {
		dst.SelectionBackground = src.SelectionBackground
	}
	if src.SearchMatchForeground != "" {
		dst.SearchMatchForeground = src.SearchMatchForeground
	}
	if src.SearchMatchBackground != "" {
		dst.SearchMatchBackground = src.SearchMatchBackground
	}
	if src.CursorStyle != "" {
		dst.CursorStyle = src.CursorStyle
	}
}

// Palette is one entry of the theme rotation.
type Palette struct {
	Name  string
	Theme Theme
}

var builtinPalettes = []Palette{
	{Name: "light", Theme: Theme{
		Foreground:            "#383A42",
		Background:            "#FAFAFA",
		StatuslineForeground:  "#FAFAFA",
		StatuslineBackground:  "#383A42",
		CommandlineForeground: "#383A42",
		CommandlineBackground: "#FAFAFA",
		SelectionForeground:   "#383A42",
		SelectionBackground:   "#BFCEFF",
		SearchMatchForeground: "#FAFAFA",
		SearchMatchBackground: "#4078F2",
		CursorStyle:           "steady-bar",
	}},
	{Name: "terminal", Theme: Theme{
		Foreground:            "white",
		Background:            "black",
		StatuslineForeground:  "black",
		StatuslineBackground:  "white",
		CommandlineForeground: "white",
		CommandlineBackground: "black",
		SelectionForeground:   "white",
		SelectionBackground:   "blue",
		SearchMatchForeground: "white",
		SearchMatchBackground: "darkblue",
		CursorStyle:           "blinking-block",
	}},
}

// Palettes returns the themes the editor rotates through: the configured
// theme first, then the built-in ones, then every file named in cycle.
// Theme files that fail to load are skipped and reported together.
func (c Config) Palettes() ([]Palette, error) {
	name := c.Theme.Theme
	if name == "" {
		name = "default"
	}
	out := []Palette{{Name: name, Theme: c.Theme}}
	for _, p := range builtinPalettes {
		t := c.Theme
		mergeTheme(&t, p.Theme)
		out = append(out, Palette{Name: p.Name, Theme: t})
	}

	var errs error
	for _, n := range c.Theme.Cycle {
		theme, err := LoadTheme(n)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("theme %s: %w", n, err))
			continue
		}
		t := c.Theme
		mergeTheme(&t, theme)
		out = append(out, Palette{Name: n, Theme: t})
	}
	return out, errs
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("MINIVIM_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "minivim"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "minivim"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
