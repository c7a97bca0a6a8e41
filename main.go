package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thmasq/bad-ascii/ascii"
	"github.com/thmasq/bad-ascii/media"
	"github.com/thmasq/bad-ascii/player"
	"github.com/thmasq/bad-ascii/tui"
)

var cli struct {
	Input      string        `arg:"" type:"existingfile" help:"Path to the source video."`
	FPS        int           `name:"fps" default:"24" help:"Target playback frame rate."`
	Duration   time.Duration `default:"90s" help:"Wall-clock playback length (0 plays the sequence once)."`
	Columns    int           `default:"0" help:"Text grid width in characters (0 derives it from the terminal)."`
	Sequential bool          `help:"Show every frame in order instead of skipping to stay in real time."`
	Loop       bool          `help:"With --duration=0, repeat the sequence until interrupted."`
	Plain      bool          `help:"Skip the loading screen."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("bad-ascii"),
		kong.Description("Play a video as real-time text art in the terminal."),
	)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	term := player.NewTerminal()

	// Geometry drives conversion: the column budget is fixed before any
	// frame exists.
	columns := cli.Columns
	if columns <= 0 {
		cols, rows, err := term.Size()
		if err != nil {
			return fmt.Errorf("terminal size: %w", err)
		}
		columns = player.AdaptiveColumns(cols, rows)
	}

	frames, err := loadFrames(columns)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		return err
	}

	store, err := player.NewFrameStore(frames)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Raw mode keeps keypresses from echoing into the frames. Keys are
	// read directly; the controller notices the cancellation at the next
	// iteration boundary.
	if err := term.MakeRaw(); err == nil {
		defer term.Restore()
		go watchKeys(cancel)
	}

	policy := player.PolicyRealtime
	if cli.Sequential {
		policy = player.PolicySequential
	}

	ctrl := player.NewController(store, term, player.Options{
		FPS:      cli.FPS,
		Duration: cli.Duration,
		Loop:     cli.Loop,
		Policy:   policy,
	})

	err = ctrl.Run(ctx)
	term.Restore()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadFrames extracts raster frames and converts them to text art,
// behind the loading screen unless --plain was given.
func loadFrames(columns int) ([]player.Frame, error) {
	cfg := tui.Config{
		Input:    cli.Input,
		Duration: cli.Duration,
		FPS:      cli.FPS,
		Columns:  columns,
	}

	if cli.Plain {
		images, err := media.Extract(cfg.Input, cfg.Duration, cfg.FPS)
		if err != nil {
			return nil, err
		}
		frames := make([]player.Frame, len(images))
		for i, img := range images {
			frames[i] = player.Frame(ascii.Convert(img, cfg.Columns))
		}
		return frames, nil
	}

	p := tea.NewProgram(tui.NewModel(cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(tui.Model).Result()
}

// watchKeys cancels playback on q or ctrl+c, which arrive as plain
// bytes while the terminal is raw.
func watchKeys(cancel context.CancelFunc) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			switch buf[0] {
			case 'q', 'Q', 0x03:
				cancel()
				return
			}
		}
	}
}
