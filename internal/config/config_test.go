package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("MINIVIM_CONFIG_HOME", "/tmp/minivim-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/minivim-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/minivim-config")
	}

	t.Setenv("MINIVIM_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/minivim" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/minivim")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("MINIVIM_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.ReservedRows != 2 {
		t.Fatalf("ReservedRows = %d, want 2", cfg.Editor.ReservedRows)
	}
	if !cfg.Editor.SoftTab {
		t.Fatalf("SoftTab = false, want true")
	}
	if cfg.Keymap.Insert["ctrl+q"] != "quit" {
		t.Fatalf("keymap ctrl+q = %q, want %q", cfg.Keymap.Insert["ctrl+q"], "quit")
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIVIM_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
statusline-foreground = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
reserved-rows = 3
soft-tab = false

[theme]
theme = "test"
commandline-background = "#123456"

[keymap.insert]
"ctrl+e" = "quit"

[keymap.vim]
x = "delete"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ReservedRows != 3 {
		t.Fatalf("ReservedRows = %d, want 3", cfg.Editor.ReservedRows)
	}
	if cfg.Editor.SoftTab {
		t.Fatalf("SoftTab = true, want false")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.StatuslineForeground != "#333333" {
		t.Fatalf("StatuslineForeground = %q, want %q", cfg.Theme.StatuslineForeground, "#333333")
	}
	if cfg.Theme.CommandlineBackground != "#123456" {
		t.Fatalf("CommandlineBackground = %q, want %q", cfg.Theme.CommandlineBackground, "#123456")
	}
	if cfg.Keymap.Insert["ctrl+e"] != "quit" {
		t.Fatalf("keymap ctrl+e = %q, want %q", cfg.Keymap.Insert["ctrl+e"], "quit")
	}
	if cfg.Keymap.Insert["ctrl+q"] != "quit" {
		t.Fatalf("keymap ctrl+q = %q, want %q", cfg.Keymap.Insert["ctrl+q"], "quit")
	}
	if cfg.Keymap.Vim["x"] != "delete" {
		t.Fatalf("keymap x = %q, want %q", cfg.Keymap.Vim["x"], "delete")
	}
	if cfg.Keymap.Vim["h"] != "move_left" {
		t.Fatalf("keymap h = %q, want %q", cfg.Keymap.Vim["h"], "move_left")
	}
}

func TestLoadRejectsBadToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIVIM_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\ntab-width = ")

	if _, err := Load(); err == nil {
		t.Fatalf("Load error = nil, want parse error")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIVIM_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.Background != "#bbbbbb" {
		t.Fatalf("Background = %q, want %q", theme.Background, "#bbbbbb")
	}
}

func TestPalettes(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MINIVIM_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "theme", "night.toml"), `foreground = "#010101"`)

	cfg := Default()
	cfg.Theme.Cycle = []string{"night", "missing", "gone"}

	palettes, err := cfg.Palettes()
	if err == nil {
		t.Fatalf("Palettes error = nil, want missing theme errors")
	}
	if !strings.Contains(err.Error(), "missing") || !strings.Contains(err.Error(), "gone") {
		t.Fatalf("Palettes error = %v, want both missing themes named", err)
	}
	if len(palettes) != 1+len(builtinPalettes)+1 {
		t.Fatalf("len(palettes) = %d, want %d", len(palettes), 2+len(builtinPalettes))
	}
	if palettes[0].Name != "default" {
		t.Fatalf("palettes[0] = %q, want %q", palettes[0].Name, "default")
	}
	last := palettes[len(palettes)-1]
	if last.Name != "night" || last.Theme.Foreground != "#010101" {
		t.Fatalf("last palette = %+v, want night with #010101", last)
	}
	if last.Theme.Background != cfg.Theme.Background {
		t.Fatalf("night background = %q, want inherited %q", last.Theme.Background, cfg.Theme.Background)
	}
}
