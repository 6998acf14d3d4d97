package buffer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kobzarvs/minivim/internal/logger"
)

// ErrNoFilename is returned when saving a buffer that has never been named.
var ErrNoFilename = errors.New("buffer has no filename")

// Load reads path into a new buffer. An empty file gives an empty buffer.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	b := New(path)
	if len(data) == 0 {
		return b, nil
	}
	text := string(data)
	if n := strings.Count(text, "\n"); n > 0 && strings.Count(text, "\r\n") == n {
		b.eol = "\r\n"
	}
	rows := strings.Split(text, b.lineEnding())
	b.lines = make([]*Line, len(rows))
	for i, r := range rows {
		b.lines[i] = NewLine(r)
	}
	return b, nil
}

// Open loads path or, when it cannot be read, starts an empty buffer
// that will be written to path on save.
func Open(path string) *Buffer {
	if path == "" {
		return New("")
	}
	b, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("open failed, starting empty buffer", "path", path, "error", err)
		}
		return New(path)
	}
	logger.Info("file loaded", "path", path, "lines", b.Len())
	return b
}

// Save writes the buffer to its filename.
func (b *Buffer) Save() error {
	if b.Filename == "" {
		return ErrNoFilename
	}
	if err := os.WriteFile(b.Filename, []byte(b.Content()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.Filename, err)
	}
	b.Saved = true
	logger.Info("file saved", "path", b.Filename, "lines", b.Len())
	return nil
}

// SaveAs renames the buffer and saves it.
func (b *Buffer) SaveAs(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNoFilename
	}
	b.Filename = name
	return b.Save()
}
