package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"

	"github.com/kobzarvs/minivim/internal/buffer"
	"github.com/kobzarvs/minivim/internal/clipboard"
	"github.com/kobzarvs/minivim/internal/config"
	"github.com/kobzarvs/minivim/internal/editor"
	"github.com/kobzarvs/minivim/internal/logger"
	"github.com/kobzarvs/minivim/internal/session"
	"github.com/kobzarvs/minivim/internal/terminal"
	"github.com/kobzarvs/minivim/internal/view"
)

// App is the top-level runtime for minivim.
type App struct {
	args []string
	out  io.Writer
}

func New(args []string) *App {
	return &App{args: args, out: os.Stdout}
}

func (a *App) Run() (err error) {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug); err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, logger.Close()) }()

	var path string
	if len(a.args) > 0 {
		path = a.args[0]
	}
	buf := buffer.Open(path)

	sessions, serr := session.NewManager()
	if serr != nil {
		logger.Warn("session store unavailable", "error", serr)
	}
	key := sessionKey(path)

	term, err := terminal.Open()
	if err != nil {
		return err
	}
	ed := run(term, func() *editor.Editor {
		ed := editor.New(cfg, term, buf, clipboard.NewSystem())
		restoreState(sessions, ed, key)
		return ed
	})

	rememberState(sessions, ed, key)
	if sessions != nil {
		err = multierr.Append(err, sessions.Save())
	}
	fmt.Fprintln(a.out, "Goodbye.")
	return err
}

// run builds the editor with open and drives it. The terminal is given
// back on every exit path, panics included.
func run(term *terminal.Terminal, open func() *editor.Editor) *editor.Editor {
	defer func() {
		term.Close()
		if r := recover(); r != nil {
			logger.Error("editor panic", "panic", r)
			panic(r)
		}
	}()
	ed := open()
	logger.Info("session started", "file", ed.Buffer().Filename)
	ed.Run()
	return ed
}

// sessionKey is the absolute path a file's state is stored under.
// Unnamed buffers have no key.
func sessionKey(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func restoreState(m *session.Manager, ed *editor.Editor, key string) {
	if m == nil || key == "" {
		return
	}
	st, ok := m.FileState(key)
	if !ok {
		return
	}
	ed.Restore(
		view.Position{Height: st.CursorRow, Width: st.CursorCol, MaxWidth: st.CursorCol},
		view.ScreenOffset{Height: st.OffsetRow, Width: st.OffsetCol},
	)
	logger.Debug("session restored", "file", key, "row", st.CursorRow, "col", st.CursorCol)
}

func rememberState(m *session.Manager, ed *editor.Editor, key string) {
	if m == nil || key == "" {
		return
	}
	pos, off := ed.Position()
	m.SetFileState(key, session.FileState{
		CursorRow: pos.Height,
		CursorCol: pos.Width,
		OffsetRow: off.Height,
		OffsetCol: off.Width,
	})
}
