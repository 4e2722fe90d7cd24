// Package layout wraps text into lines that fit a pixel width budget, using
// the glyph metrics of a concrete font face.
package layout

import (
	"strings"

	"golang.org/x/image/font"
)

// DefaultSpacing is the vertical gap between wrapped lines, in pixels.
const DefaultSpacing = 10

// Line is a single wrapped line with its rendered pixel width.
type Line struct {
	Text  string
	Width int
}

// Block is a wrapped, measured text block. It is derived data: recompute it
// whenever the text, face, or width budget changes.
type Block struct {
	Lines      []Line
	Width      int // widest line
	Height     int // total block height including inter-line spacing
	LineHeight int
	Spacing    int
}

// Wrap greedily packs whitespace-separated words into lines no wider than
// maxWidth pixels. A single word wider than maxWidth stays on its own line
// unsplit. Text with no words yields exactly one line holding the original
// text, so the result is never empty.
func Wrap(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	var current []string
	for _, word := range words {
		candidate := word
		if len(current) > 0 {
			candidate = strings.Join(current, " ") + " " + word
		}
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
		}
		current = []string{word}
	}
	lines = append(lines, strings.Join(current, " "))

	return lines
}

// MeasureBlock computes per-line widths and the total block height for a set
// of lines at the given face and inter-line spacing.
func MeasureBlock(lines []string, face font.Face, spacing int) Block {
	m := face.Metrics()
	b := Block{
		LineHeight: (m.Ascent + m.Descent).Ceil(),
		Spacing:    spacing,
	}
	for _, s := range lines {
		w := font.MeasureString(face, s).Ceil()
		if w > b.Width {
			b.Width = w
		}
		b.Lines = append(b.Lines, Line{Text: s, Width: w})
	}
	if n := len(b.Lines); n > 0 {
		b.Height = n*b.LineHeight + (n-1)*b.Spacing
	}
	return b
}
