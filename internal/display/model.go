package display

import (
	"strconv"

	"github.com/wunderabt/soil-moisture/internal/logic"
)

// glyphAdvance is the renderer's base glyph cell width in pixels.
const glyphAdvance = 7

// Layout fixes the geometry of the per-channel status rows.
type Layout struct {
	Width, Height int
	// BarScale converts moisture percent points into bar pixels.
	BarScale float64
	// NumberX is the channel number column.
	NumberX int
	// BarX is the left edge of the moisture bar.
	BarX int
	// PercentX is the numeric percent column.
	PercentX int
	// AttemptsInset is the attempt counter's inset from the right edge.
	AttemptsInset int
}

// DefaultLayout matches the 200x200 tricolor panel the board ships with:
// 100% moisture maps to a 138 pixel bar.
func DefaultLayout() Layout {
	return Layout{
		Width:         200,
		Height:        200,
		BarScale:      1.38,
		NumberX:       0,
		BarX:          12,
		PercentX:      150,
		AttemptsInset: 8,
	}
}

// Build derives the frame for the given channel states. The scene reflects
// state before any pump runs of the current cycle, so the attempts column
// trails actuation by one refresh.
func Build(channels []logic.ChannelState, l Layout, version string) Scene {
	s := Scene{Width: l.Width, Height: l.Height}
	if len(channels) == 0 {
		return s
	}

	rowHeight := l.Height / len(channels)
	for i, ch := range channels {
		y := i * rowHeight
		warn := ch.Moisture < ch.Reference

		// Channel number.
		s.Texts = append(s.Texts, Text{
			X: l.NumberX, Y: y + 15, Size: 2, Color: ColorNormal,
			Value: strconv.Itoa(i + 1),
		})

		// Moisture bar.
		s.Rects = append(s.Rects, Rect{
			X: l.BarX, Y: y + 8,
			W: int(float64(ch.Moisture) * l.BarScale), H: 34,
			Color: colorFor(warn),
		})

		// Reference marker: two triangles and a connecting line. It marks
		// a target, not a status, so it stays in normal color.
		mx := l.BarX + int(float64(ch.Reference)*l.BarScale)
		s.Triangles = append(s.Triangles,
			Triangle{mx - 3, y + 4, mx + 3, y + 4, mx, y + 8, ColorNormal},
			Triangle{mx, y + 43, mx + 3, y + 47, mx - 3, y + 47, ColorNormal},
		)
		s.Lines = append(s.Lines, Line{mx, y + 8, mx, y + 43, ColorNormal})

		// Numeric percent plus the raw sample as a small diagnostic.
		s.Texts = append(s.Texts, Text{
			X: l.PercentX, Y: y + 15, Size: 2, Color: colorFor(warn),
			Value: strconv.Itoa(ch.Moisture) + "%",
		})
		s.Texts = append(s.Texts, Text{
			X: l.PercentX, Y: y + 35, Size: 1, Color: ColorNormal,
			Value: strconv.Itoa(ch.MoistureRaw),
		})

		// Attempt counter, red once the channel has given up.
		s.Texts = append(s.Texts, Text{
			X: l.Width - l.AttemptsInset, Y: y + 20, Size: 1,
			Color: colorFor(ch.Attempts >= ch.MaxAttempts),
			Value: strconv.Itoa(ch.Attempts),
		})
	}

	// Version in the lower right corner.
	s.Texts = append(s.Texts, Text{
		X: l.Width - len(version)*glyphAdvance, Y: l.Height - 14,
		Size: 1, Color: ColorNormal, Value: version,
	})
	return s
}

func colorFor(warn bool) Color {
	if warn {
		return ColorWarning
	}
	return ColorNormal
}
