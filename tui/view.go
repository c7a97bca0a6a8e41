package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var logo = []string{
	` ___    _   ___     _   ___  ___  ___  ___ `,
	`| _ )  /_\ |   \   /_\ / __|/ __||_ _||_ _|`,
	`| _ \ / _ \| |) | / _ \\__ \ (__  | |  | | `,
	`|___//_/ \_\___/ /_/ \_\___/\___||___||___|`,
}

// View renders the loading screen
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return fmt.Sprintf("\n\n   %s %s\n\n", m.spinner.View(), m.status)
	}

	var block []string
	for _, line := range logo {
		block = append(block, titleStyle.Render(line))
	}
	block = append(block, "")

	switch m.state {
	case stateError:
		block = append(block, errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case stateConverting:
		block = append(block, m.progress.ViewAs(m.ratio()))
		block = append(block, "")
		block = append(block, statusStyle.Render(fmt.Sprintf("%d / %d frames", m.done, m.total)))
	default:
		block = append(block, fmt.Sprintf("%s %s", m.spinner.View(), statusStyle.Render(m.status)))
	}
	block = append(block, "")
	block = append(block, hintStyle.Render("q to quit"))

	return centerBlock(block, m.width, m.height)
}

func (m Model) ratio() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// centerBlock lays out lines centered in a width x height cell grid.
func centerBlock(lines []string, width, height int) string {
	startRow := (height - len(lines)) / 2
	if startRow < 0 {
		startRow = 0
	}

	var b strings.Builder
	for y := range height {
		if y >= startRow && y-startRow < len(lines) {
			text := lines[y-startRow]
			pad := (width - lipgloss.Width(text)) / 2
			if pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(text)
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
