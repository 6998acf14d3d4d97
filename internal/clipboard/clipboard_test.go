package clipboard

import (
	"errors"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	var c Clipboard = &Memory{}
	if err := c.SetText("hello"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	got, err := c.GetText()
	if err != nil {
		t.Fatalf("GetText: %v", err)
	}
	if got != "hello" {
		t.Fatalf("GetText = %q, want %q", got, "hello")
	}
}

func TestMemoryError(t *testing.T) {
	c := &Memory{Err: ErrUnavailable}
	if _, err := c.GetText(); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("GetText err = %v, want ErrUnavailable", err)
	}
	if err := c.SetText("x"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("SetText err = %v, want ErrUnavailable", err)
	}
}

func TestSystemKeepsInternalCopy(t *testing.T) {
	c := NewSystem()
	_ = c.SetText("kept")
	got, err := c.GetText()
	if err != nil {
		t.Fatalf("GetText: %v", err)
	}
	// Either the OS clipboard or the in-process copy answers.
	if got != "kept" {
		t.Skipf("OS clipboard returned %q", got)
	}
}
