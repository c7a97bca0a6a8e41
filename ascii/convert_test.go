package ascii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thmasq/bad-ascii/media"
	"github.com/thmasq/bad-ascii/player"
)

func solidImage(w, h int, r, g, b byte) *media.Image {
	rgb := make([]byte, w*h*3)
	for i := 0; i < len(rgb); i += 3 {
		rgb[i], rgb[i+1], rgb[i+2] = r, g, b
	}
	return &media.Image{RGB: rgb, Width: w, Height: h}
}

func TestConvertGridDimensions(t *testing.T) {
	img := solidImage(8, 8, 128, 128, 128)

	lines := Convert(img, 8)
	// Rows are halved for the terminal cell aspect.
	require.Len(t, lines, 4)
	for _, line := range lines {
		require.Len(t, player.StripEscapes(line), 8)
	}
}

func TestConvertBrightAndDark(t *testing.T) {
	bright := Convert(solidImage(4, 4, 255, 255, 255), 4)
	require.Equal(t, "@@@@", player.StripEscapes(bright[0]))

	dark := Convert(solidImage(4, 4, 0, 0, 0), 4)
	require.Equal(t, "    ", player.StripEscapes(dark[0]))
}

func TestConvertEmitsColorOncePerRun(t *testing.T) {
	lines := Convert(solidImage(4, 4, 255, 0, 0), 4)

	// One foreground escape for the uniform run, one reset at end of line.
	require.Equal(t, 1, strings.Count(lines[0], "\x1b[38;2;255;0;0m"))
	require.True(t, strings.HasSuffix(lines[0], "\x1b[0m"))
}

func TestConvertColorChangeStartsNewEscape(t *testing.T) {
	// Left half red, right half blue.
	img := solidImage(4, 2, 255, 0, 0)
	for y := 0; y < 2; y++ {
		for x := 2; x < 4; x++ {
			idx := (y*4 + x) * 3
			img.RGB[idx], img.RGB[idx+1], img.RGB[idx+2] = 0, 0, 255
		}
	}

	lines := Convert(img, 4)
	require.Contains(t, lines[0], "\x1b[38;2;255;0;0m")
	require.Contains(t, lines[0], "\x1b[38;2;0;0;255m")
}

func TestConvertMinimumOneRow(t *testing.T) {
	lines := Convert(solidImage(8, 1, 10, 10, 10), 8)
	require.Len(t, lines, 1)
}
