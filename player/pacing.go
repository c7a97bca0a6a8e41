package player

import (
	"context"
	"time"
)

// Controller drives the playback loop: it selects which frame to show
// at each iteration, sleeps to hold the target frame rate, and restores
// the cursor on every exit path. Single-threaded by design; the only
// suspension point is the sleep between frames, so cancellation is
// observed at iteration boundaries.
type Controller struct {
	store    *FrameStore
	renderer *DiffRenderer
	screen   Screen
	opts     Options
}

// NewController creates a controller playing store on screen.
func NewController(store *FrameStore, screen Screen, opts Options) *Controller {
	return &Controller{
		store:    store,
		renderer: NewDiffRenderer(screen),
		screen:   screen,
		opts:     opts,
	}
}

// Run clears the screen, hides the cursor and plays the frame sequence
// until the configured termination condition or context cancellation.
// The cursor is shown again before Run returns, also on failure.
func (c *Controller) Run(ctx context.Context) (err error) {
	cols, rows, sizeErr := c.screen.Size()
	if sizeErr != nil {
		cols, rows = 0, 0
	}
	top := VerticalPadding(rows, c.store.Rows())
	left := HorizontalPadding(cols, c.store.Frame(0))

	if err := c.screen.Clear(); err != nil {
		return &WriteError{Err: err}
	}
	if err := c.screen.HideCursor(); err != nil {
		return &WriteError{Err: err}
	}
	defer func() {
		restoreErr := c.screen.ShowCursor()
		if restoreErr == nil {
			restoreErr = c.screen.Flush()
		}
		if err == nil && restoreErr != nil {
			err = &WriteError{Err: restoreErr}
		}
	}()
	if err := c.screen.Flush(); err != nil {
		return &WriteError{Err: err}
	}

	c.renderer.Reset()

	if c.opts.Policy == PolicySequential {
		return c.runSequential(ctx, top, left)
	}
	return c.runRealtime(ctx, top, left)
}

// runRealtime implements elapsed-time frame selection: each iteration
// shows the frame that should be on screen right now, skipping frames
// when rendering falls behind instead of accumulating lag.
func (c *Controller) runRealtime(ctx context.Context, top, left int) error {
	interval := c.opts.interval()
	fps := c.opts.fps()
	count := c.store.Len()

	start := time.Now()
	var deadline time.Time
	switch {
	case c.opts.Duration > 0:
		deadline = start.Add(c.opts.Duration)
	case !c.opts.Loop:
		// One pass worth of wall clock.
		deadline = start.Add(time.Duration(count) * interval)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		iterStart := time.Now()
		if !deadline.IsZero() && !iterStart.Before(deadline) {
			return nil
		}

		idx := frameIndexAt(iterStart.Sub(start), fps, count)
		if err := c.renderer.Draw(c.store.Frame(idx), top, left); err != nil {
			return err
		}

		if d := interval - time.Since(iterStart); d > 0 {
			time.Sleep(d)
		}
	}
}

// runSequential shows every frame in order and re-aligns each sleep to
// the next frame boundary. Drift is corrected modulo the interval, not
// by skipping, so sustained overrun accumulates lag.
func (c *Controller) runSequential(ctx context.Context, top, left int) error {
	interval := c.opts.interval()
	count := c.store.Len()

	start := time.Now()
	var deadline time.Time
	if c.opts.Duration > 0 {
		deadline = start.Add(c.opts.Duration)
	}

	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		idx := i % count
		if err := c.renderer.Draw(c.store.Frame(idx), top, left); err != nil {
			return err
		}

		if d := boundaryWait(time.Since(start), interval); d > 0 {
			time.Sleep(d)
		}

		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil
		}
		if deadline.IsZero() && !c.opts.Loop && idx == count-1 {
			return nil
		}
	}
}

// frameIndexAt returns the frame that should be showing after elapsed
// wall-clock time at the given frame rate, wrapping over frameCount.
func frameIndexAt(elapsed time.Duration, fps, frameCount int) int {
	return int(elapsed.Seconds()*float64(fps)) % frameCount
}

// boundaryWait returns the time remaining until the next frame boundary
// after sinceStart.
func boundaryWait(sinceStart, interval time.Duration) time.Duration {
	return interval - sinceStart%interval
}
