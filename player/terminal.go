package player

import (
	"bufio"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal is the real terminal collaborator: a buffered writer over a
// tty plus the few control sequences the engine needs. The engine only
// ever emits absolute cursor positioning (ESC[row;colH) and raw text.
type Terminal struct {
	f   *os.File
	out *bufio.Writer
	raw *term.State
}

// NewTerminal wraps stdout.
func NewTerminal() *Terminal {
	return NewTerminalFile(os.Stdout)
}

// NewTerminalFile wraps an arbitrary terminal file.
func NewTerminalFile(f *os.File) *Terminal {
	return &Terminal{
		f:   f,
		out: bufio.NewWriterSize(f, 64*1024),
	}
}

// Size returns the terminal dimensions in character cells, read fresh
// from the kernel.
func (t *Terminal) Size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// Clear erases the screen and homes the cursor.
func (t *Terminal) Clear() error {
	_, err := t.out.WriteString("\x1b[2J\x1b[H")
	return err
}

// HideCursor makes the cursor invisible.
func (t *Terminal) HideCursor() error {
	_, err := t.out.WriteString("\x1b[?25l")
	return err
}

// ShowCursor makes the cursor visible again.
func (t *Terminal) ShowCursor() error {
	_, err := t.out.WriteString("\x1b[?25h")
	return err
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Flush pushes buffered output to the terminal.
func (t *Terminal) Flush() error {
	return t.out.Flush()
}

// MakeRaw puts the terminal into raw mode so keypresses are neither
// echoed nor line-buffered during playback. Callers pair it with
// Restore around the playback loop.
func (t *Terminal) MakeRaw() error {
	st, err := term.MakeRaw(int(t.f.Fd()))
	if err != nil {
		return err
	}
	t.raw = st
	return nil
}

// Restore undoes MakeRaw. Safe to call when raw mode was never entered.
func (t *Terminal) Restore() error {
	if t.raw == nil {
		return nil
	}
	st := t.raw
	t.raw = nil
	return term.Restore(int(t.f.Fd()), st)
}
