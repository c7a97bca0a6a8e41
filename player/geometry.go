package player

import "strings"

// widthDivisor corrects the stripped line width for the converter's
// output density before centering. Calibrated to the conversion
// collaborator, not a general escape-width rule.
const widthDivisor = 3

// minAdaptiveColumns is the fallback column budget when the terminal
// reports unusable dimensions.
const minAdaptiveColumns = 80

// VerticalPadding returns the number of blank rows above a centered
// frame. A frame as tall as the terminal (or taller) gets no padding
// and is top-anchored.
func VerticalPadding(termRows, frameRows int) int {
	if termRows > frameRows {
		return (termRows - frameRows) / 2
	}
	return 0
}

// HorizontalPadding returns the number of blank columns left of a
// centered frame. Line width is measured on the escape-stripped,
// trimmed text; empty lines are ignored.
func HorizontalPadding(termCols int, f Frame) int {
	maxWidth := 0
	for _, line := range f {
		visible := strings.TrimSpace(StripEscapes(line))
		if visible == "" {
			continue
		}
		if len(visible) > maxWidth {
			maxWidth = len(visible)
		}
	}

	scaled := maxWidth / widthDivisor
	if termCols > scaled {
		return (termCols - scaled) / 2
	}
	return 0
}

// StripEscapes removes terminal escape sequences from s. An escape
// sequence is any run starting at ESC and continuing through the first
// ASCII alphabetic character, inclusive.
func StripEscapes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inEscape := false
	for _, r := range s {
		switch {
		case r == 0x1b:
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AdaptiveColumns derives the column budget handed to the conversion
// collaborator from terminal geometry, for sessions where the grid size
// is not fixed ahead of time. Geometry drives conversion in this mode.
func AdaptiveColumns(termCols, termRows int) int {
	w := min(termCols*2, termRows*8/10) * 4
	if w <= 0 {
		return minAdaptiveColumns
	}
	return w
}
