// Package clipboard gives the editor text access to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable means no clipboard utility could be reached.
var ErrUnavailable = errors.New("clipboard unavailable")

type Clipboard interface {
	GetText() (string, error)
	SetText(text string) error
}

// System talks to the OS clipboard. When the OS clipboard cannot be
// written, the text is still kept in process so a later paste works.
type System struct {
	mu       sync.Mutex
	internal string
}

func NewSystem() *System {
	return &System{}
}

func (c *System) GetText() (string, error) {
	if !clipboard.Unsupported {
		if text, err := clipboard.ReadAll(); err == nil {
			return text, nil
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.internal == "" {
		return "", ErrUnavailable
	}
	return c.internal, nil
}

func (c *System) SetText(text string) error {
	c.mu.Lock()
	c.internal = text
	c.mu.Unlock()
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Memory is a process-local clipboard.
type Memory struct {
	Text string
	Err  error
}

func (m *Memory) GetText() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}

func (m *Memory) SetText(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
