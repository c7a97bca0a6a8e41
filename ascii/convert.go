// Package ascii converts raster images to colored text-art frames. It
// is called once per frame at load time; playback never re-converts.
package ascii

import (
	"fmt"
	"strings"

	"github.com/thmasq/bad-ascii/media"
)

// ramp maps luminance to density, darkest first.
const ramp = " .:-=+*#%@"

// cellAspect compensates for terminal cells being roughly twice as tall
// as they are wide.
const cellAspect = 2

// Convert maps one raster image to a text grid of targetColumns
// columns, rows scaled to preserve aspect ratio. Each cell carries a
// 24-bit foreground color escape when its color differs from the cell
// to its left; every line ends with a reset.
func Convert(img *media.Image, targetColumns int) []string {
	cols := targetColumns
	if cols < 1 {
		cols = 1
	}
	rows := img.Height * cols / img.Width / cellAspect
	if rows < 1 {
		rows = 1
	}

	lines := make([]string, rows)
	for y := range rows {
		var b strings.Builder
		prevR, prevG, prevB := -1, -1, -1

		srcY := y * img.Height / rows
		for x := range cols {
			srcX := x * img.Width / cols
			r, g, bl := pixelAt(img, srcX, srcY)

			if r != prevR || g != prevG || bl != prevB {
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", r, g, bl)
				prevR, prevG, prevB = r, g, bl
			}
			b.WriteByte(rampChar(r, g, bl))
		}

		b.WriteString("\x1b[0m")
		lines[y] = b.String()
	}

	return lines
}

func pixelAt(img *media.Image, x, y int) (r, g, b int) {
	idx := (y*img.Width + x) * 3
	if idx+2 >= len(img.RGB) {
		return 0, 0, 0
	}
	return int(img.RGB[idx]), int(img.RGB[idx+1]), int(img.RGB[idx+2])
}

func rampChar(r, g, b int) byte {
	// Rec. 601 luma weights
	lum := (299*r + 587*g + 114*b) / 1000
	return ramp[lum*(len(ramp)-1)/255]
}
