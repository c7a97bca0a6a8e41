package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thmasq/bad-ascii/ascii"
	"github.com/thmasq/bad-ascii/media"
	"github.com/thmasq/bad-ascii/player"
)

// ErrAborted is reported when the user quits the loading screen before
// playback starts.
var ErrAborted = errors.New("aborted by user")

// Messages
type (
	extractedMsg struct{ count int }
	progressMsg  struct{ done, total int }
	convertedMsg struct{ frames []player.Frame }
	loadErrorMsg struct{ err error }
)

// state represents the loading screen state
type state int

const (
	stateExtracting state = iota
	stateConverting
	stateDone
	stateError
)

// Config carries the caller-supplied load parameters.
type Config struct {
	Input    string
	Duration time.Duration
	FPS      int
	Columns  int
}

// Model is the Bubble Tea model for the loading screen. It decodes and
// converts the video in the background and carries the finished frames
// (or the error) back to the caller via Result.
type Model struct {
	state    state
	cfg      Config
	spinner  spinner.Model
	progress progress.Model

	width  int
	height int
	status string
	done   int
	total  int

	frames []player.Frame
	err    error

	events chan tea.Msg
}

// NewModel creates the loading screen model.
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	p := progress.New(progress.WithDefaultGradient())

	return Model{
		state:    stateExtracting,
		cfg:      cfg,
		spinner:  s,
		progress: p,
		status:   "Decoding video...",
		events:   make(chan tea.Msg, 8),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load, m.waitForEvent)
}

// load runs the whole extract/convert pipeline. Bubble Tea executes it
// on its own goroutine; intermediate progress goes through the events
// channel, the terminal message is returned directly.
func (m Model) load() tea.Msg {
	images, err := media.Extract(m.cfg.Input, m.cfg.Duration, m.cfg.FPS)
	if err != nil {
		return loadErrorMsg{err}
	}
	if len(images) == 0 {
		return loadErrorMsg{fmt.Errorf("no video frames in %s", m.cfg.Input)}
	}

	m.events <- extractedMsg{count: len(images)}

	frames := make([]player.Frame, len(images))
	for i, img := range images {
		frames[i] = player.Frame(ascii.Convert(img, m.cfg.Columns))
		m.events <- progressMsg{done: i + 1, total: len(images)}
	}

	return convertedMsg{frames: frames}
}

func (m Model) waitForEvent() tea.Msg {
	return <-m.events
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := min(msg.Width-10, 60); w > 0 {
			m.progress.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.state = stateError
			m.err = ErrAborted
			return m, tea.Quit
		}
		return m, nil

	case extractedMsg:
		m.state = stateConverting
		m.total = msg.count
		m.status = fmt.Sprintf("Converting %d frames to text art...", msg.count)
		return m, m.waitForEvent

	case progressMsg:
		m.done = msg.done
		m.total = msg.total
		return m, m.waitForEvent

	case convertedMsg:
		m.state = stateDone
		m.frames = msg.frames
		return m, tea.Quit

	case loadErrorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Result returns the converted frames, or the error that stopped the
// loading screen.
func (m Model) Result() ([]player.Frame, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.frames, nil
}
