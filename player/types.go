package player

import (
	"errors"
	"fmt"
	"time"
)

// Frame is one unit of displayable text art: an ordered sequence of
// lines. Lines may embed ANSI color sequences; every frame of one
// playback session has the same row count.
type Frame []string

// DefaultFPS is the target frame rate used when Options.FPS is zero.
const DefaultFPS = 24

// ErrNoFrames is returned when a frame store is constructed from an
// empty sequence. Playback cannot start without at least one frame.
var ErrNoFrames = errors.New("player: no frames to play")

// WriteError wraps a terminal write or flush failure. The frame being
// drawn when it occurred is considered undrawn.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("player: terminal write failed: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Policy selects how the pacing controller picks frames.
type Policy int

const (
	// PolicyRealtime selects the frame that should be showing right now
	// from elapsed wall-clock time. It skips frames rather than falling
	// behind when an iteration overruns the frame interval.
	PolicyRealtime Policy = iota

	// PolicySequential shows every frame in order and re-aligns each
	// sleep to the next frame boundary. It never skips frames but
	// accumulates lag if iterations overrun the interval.
	PolicySequential
)

// Options configures a playback run.
type Options struct {
	// FPS is the target frame rate. Zero means DefaultFPS.
	FPS int

	// Duration bounds playback by wall clock. Zero means a single pass
	// over the store (or, with Loop, until the context is cancelled).
	Duration time.Duration

	// Loop repeats the sequence when Duration is zero.
	Loop bool

	// Policy selects frame-selection behavior. The zero value is
	// PolicyRealtime.
	Policy Policy
}

func (o Options) fps() int {
	if o.FPS <= 0 {
		return DefaultFPS
	}
	return o.FPS
}

func (o Options) interval() time.Duration {
	return time.Duration(float64(time.Second) / float64(o.fps()))
}

// Screen is the terminal surface the engine draws to. Implemented by
// Terminal; tests substitute a fake.
type Screen interface {
	// Size returns the terminal dimensions in character cells.
	Size() (cols, rows int, err error)

	// Clear erases the screen and homes the cursor.
	Clear() error

	// HideCursor and ShowCursor toggle cursor visibility.
	HideCursor() error
	ShowCursor() error

	// Write buffers raw bytes; Flush pushes them to the terminal.
	Write(p []byte) (int, error)
	Flush() error
}
