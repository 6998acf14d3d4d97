package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathEnv(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	path, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if want := "/tmp/state/minivim/session.json"; path != want {
		t.Fatalf("Path = %q, want %q", path, want)
	}
}

func TestSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minivim", "session.json")
	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, ok := m.FileState("/a.txt"); ok {
		t.Fatalf("FileState on fresh store found an entry")
	}

	want := FileState{CursorRow: 12, CursorCol: 3, OffsetRow: 5}
	m.SetFileState("/a.txt", want)
	if err := m.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	m2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, ok := m2.FileState("/a.txt")
	if !ok || got != want {
		t.Fatalf("FileState = %+v, %v; want %+v, true", got, ok, want)
	}
	if m2.ActiveFile() != "/a.txt" {
		t.Fatalf("ActiveFile = %q, want %q", m2.ActiveFile(), "/a.txt")
	}
}

func TestSaveSkipsCleanStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("clean Save wrote a file, stat err = %v", err)
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, ok := m.FileState("/x"); ok {
		t.Fatalf("corrupt store produced an entry")
	}
}
