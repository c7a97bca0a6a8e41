package player

import (
	"bytes"
	"fmt"
)

// DiffRenderer writes frames to a screen, rewriting only the lines that
// changed since the previous frame. The diff is line-granular: a single
// changed character rewrites the whole row. Not safe for concurrent
// use; the playback loop is the only caller.
type DiffRenderer struct {
	screen Screen
	last   Frame
}

// NewDiffRenderer creates a renderer drawing to screen.
func NewDiffRenderer(screen Screen) *DiffRenderer {
	return &DiffRenderer{screen: screen}
}

// Draw brings the screen to the state of f, offset by top rows and left
// columns. On the first call every line is written; afterwards only
// lines that differ from the previously drawn frame. The whole frame is
// buffered and flushed as one write. On failure the frame is considered
// undrawn and the previous frame reference is left untouched.
func (r *DiffRenderer) Draw(f Frame, top, left int) error {
	var buf bytes.Buffer

	for row, line := range f {
		if r.last != nil && row < len(r.last) && r.last[row] == line {
			continue
		}
		fmt.Fprintf(&buf, "\x1b[%d;%dH%s", top+row, left, line)
	}

	if buf.Len() > 0 {
		if _, err := r.screen.Write(buf.Bytes()); err != nil {
			return &WriteError{Err: err}
		}
		if err := r.screen.Flush(); err != nil {
			return &WriteError{Err: err}
		}
	}

	r.last = f
	return nil
}

// Reset forgets the previously drawn frame, forcing the next Draw to
// write every line.
func (r *DiffRenderer) Reset() {
	r.last = nil
}
