package player

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFrameIndexAt(t *testing.T) {
	tests := []struct {
		name       string
		elapsed    time.Duration
		fps        int
		frameCount int
		want       int
	}{
		{"start", 0, 24, 10, 0},
		{"half second wraps", 500 * time.Millisecond, 24, 10, 2}, // 12 mod 10
		{"one second", time.Second, 24, 10, 4},                   // 24 mod 10
		{"exact frame boundary", 250 * time.Millisecond, 24, 10, 6},
		{"single frame store", time.Minute, 24, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, frameIndexAt(tt.elapsed, tt.fps, tt.frameCount))
		})
	}
}

func TestBoundaryWait(t *testing.T) {
	interval := 50 * time.Millisecond

	require.Equal(t, 20*time.Millisecond, boundaryWait(130*time.Millisecond, interval))
	require.Equal(t, interval, boundaryWait(0, interval))
	require.Equal(t, interval, boundaryWait(100*time.Millisecond, interval))
}

func newTestController(t *testing.T, screen *fakeScreen, frames []Frame, opts Options) *Controller {
	t.Helper()
	store, err := NewFrameStore(frames)
	require.NoError(t, err)
	return NewController(store, screen, opts)
}

func TestSequentialSinglePassShowsEveryFrame(t *testing.T) {
	screen := &fakeScreen{cols: 80, rows: 24}
	ctrl := newTestController(t, screen, []Frame{{"A"}, {"B"}, {"C"}}, Options{
		FPS:    500,
		Policy: PolicySequential,
	})

	require.NoError(t, ctrl.Run(context.Background()))

	out := screen.output()
	require.Contains(t, out, "A")
	require.Contains(t, out, "B")
	require.Contains(t, out, "C")

	require.Equal(t, 1, screen.clears)
	require.Equal(t, 1, screen.hides)
	require.Equal(t, 1, screen.shows)
}

func TestRealtimeStopsAtDeadline(t *testing.T) {
	screen := &fakeScreen{cols: 80, rows: 24}
	ctrl := newTestController(t, screen, []Frame{{"A"}, {"B"}}, Options{
		FPS:      100,
		Duration: 30 * time.Millisecond,
	})

	start := time.Now()
	require.NoError(t, ctrl.Run(context.Background()))

	require.NotEmpty(t, screen.writes)
	require.Less(t, time.Since(start), 500*time.Millisecond)
	require.Equal(t, 1, screen.shows)
}

func TestRealtimeSinglePassTerminates(t *testing.T) {
	screen := &fakeScreen{cols: 80, rows: 24}
	ctrl := newTestController(t, screen, []Frame{{"A"}, {"B"}, {"C"}}, Options{
		FPS: 200,
	})

	require.NoError(t, ctrl.Run(context.Background()))
	require.NotEmpty(t, screen.writes)
}

func TestRunObservesCancellation(t *testing.T) {
	screen := &fakeScreen{cols: 80, rows: 24}
	ctrl := newTestController(t, screen, []Frame{{"A"}}, Options{
		FPS:  500,
		Loop: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ctrl.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// Cursor restored even though no frame was drawn.
	require.Empty(t, screen.writes)
	require.Equal(t, 1, screen.shows)
}

func TestRunRestoresCursorOnWriteFailure(t *testing.T) {
	screen := &fakeScreen{cols: 80, rows: 24, writeErr: errors.New("broken pipe")}
	ctrl := newTestController(t, screen, []Frame{{"A"}}, Options{FPS: 100})

	err := ctrl.Run(context.Background())
	var werr *WriteError
	require.ErrorAs(t, err, &werr)
	require.Equal(t, 1, screen.shows)
}

func TestRunCentersFrame(t *testing.T) {
	screen := &fakeScreen{cols: 80, rows: 24}
	// One 2-row frame, visible width 30 -> scaled width 10.
	line := "\x1b[31m##############################\x1b[0m"
	ctrl := newTestController(t, screen, []Frame{{line, line}}, Options{FPS: 500, Policy: PolicySequential})

	require.NoError(t, ctrl.Run(context.Background()))

	// top = (24-2)/2 = 11, left = (80-10)/2 = 35
	require.Contains(t, screen.output(), "\x1b[11;35H")
}
