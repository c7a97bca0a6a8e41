package player

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "HELLO", "HELLO"},
		{"color wrapped", "\x1b[31mHELLO\x1b[0m", "HELLO"},
		{"escape only", "\x1b[2J", ""},
		{"interleaved", "a\x1b[1mb\x1b[0mc", "abc"},
		{"unterminated escape swallows the rest", "ab\x1b[31;42", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripEscapes(tt.in))
		})
	}
}

func TestVerticalPadding(t *testing.T) {
	tests := []struct {
		name      string
		termRows  int
		frameRows int
		want      int
	}{
		{"frame fills terminal", 20, 20, 0},
		{"terminal taller", 30, 20, 5},
		{"terminal much taller", 50, 20, 15},
		{"frame taller than terminal", 10, 20, 0},
		{"odd remainder floors", 31, 20, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, VerticalPadding(tt.termRows, tt.frameRows))
		})
	}
}

func TestHorizontalPaddingMeasuresVisibleWidth(t *testing.T) {
	// Visible width 30, scaled by the converter density divisor to 10.
	frame := Frame{
		"\x1b[31m" + strings.Repeat("#", 30) + "\x1b[0m",
		strings.Repeat("#", 12),
	}

	require.Equal(t, 15, HorizontalPadding(40, frame))
}

func TestHorizontalPaddingIgnoresEmptyLines(t *testing.T) {
	frame := Frame{
		"",
		"   ",
		"\x1b[0m",
		strings.Repeat("#", 9),
	}

	// Only the last line counts: 9/3 = 3, (20-3)/2 = 8.
	require.Equal(t, 8, HorizontalPadding(20, frame))
}

func TestHorizontalPaddingWideFrame(t *testing.T) {
	frame := Frame{strings.Repeat("#", 300)}

	// 300/3 = 100 >= 80 columns: no padding.
	require.Equal(t, 0, HorizontalPadding(80, frame))
}

func TestStripEscapesVisibleLength(t *testing.T) {
	visible := strings.TrimSpace(StripEscapes("\x1b[31mHELLO\x1b[0m"))
	require.Equal(t, "HELLO", visible)
	require.Len(t, visible, 5)
}

func TestAdaptiveColumns(t *testing.T) {
	tests := []struct {
		name string
		cols int
		rows int
		want int
	}{
		{"rows constrain", 100, 50, 160},  // min(200, 40) * 4
		{"cols constrain", 10, 100, 80},   // min(20, 80) * 4
		{"zero geometry falls back", 0, 0, 80},
		{"degenerate rows fall back", 100, 0, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AdaptiveColumns(tt.cols, tt.rows))
		})
	}
}
