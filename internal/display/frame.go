package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Panel palette. The e-paper controller maps anything red-ish onto its red
// plane, so exact values are not critical.
var (
	paletteWhite   = color.RGBA{255, 255, 255, 255}
	paletteBlack   = color.RGBA{0, 0, 0, 255}
	paletteWarning = color.RGBA{200, 0, 0, 255}
)

// FrameWriter rasterizes scenes and writes them as PNG frames for the
// e-paper blitter service to pick up. Writes are atomic (temp file plus
// rename) so the blitter never sees a torn frame.
type FrameWriter struct {
	path string
}

// NewFrameWriter creates a FrameWriter targeting path. The parent
// directory is created if missing.
func NewFrameWriter(path string) (*FrameWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &FrameWriter{path: path}, nil
}

// Render rasterizes the scene and replaces the frame file.
func (w *FrameWriter) Render(s Scene) error {
	img := Rasterize(s)

	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close frame file: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish frame: %w", err)
	}
	return nil
}

// Close is a no-op; the last frame stays published.
func (w *FrameWriter) Close() error {
	return nil
}

var _ Renderer = (*FrameWriter)(nil)

// Rasterize draws the scene into a white frame.
func Rasterize(s Scene) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	fill(img, img.Bounds(), paletteWhite)

	for _, r := range s.Rects {
		fill(img, image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H), rgba(r.Color))
	}
	for _, l := range s.Lines {
		drawLine(img, l)
	}
	for _, t := range s.Triangles {
		fillTriangle(img, t)
	}
	for _, t := range s.Texts {
		drawText(img, t)
	}
	return img
}

func rgba(c Color) color.RGBA {
	if c == ColorWarning {
		return paletteWarning
	}
	return paletteBlack
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawLine draws a one-pixel Bresenham line.
func drawLine(img *image.RGBA, l Line) {
	c := rgba(l.Color)
	x0, y0, x1, y1 := l.X0, l.Y0, l.X1, l.Y1

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		setRGBA(img, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangle fills using the edge function over the bounding box; the
// triangles here are a handful of pixels, so brute force is fine.
func fillTriangle(img *image.RGBA, t Triangle) {
	c := rgba(t.Color)
	minX := min3(t.X0, t.X1, t.X2)
	maxX := max3(t.X0, t.X1, t.X2)
	minY := min3(t.Y0, t.Y1, t.Y2)
	maxY := max3(t.Y0, t.Y1, t.Y2)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d0 := edge(t.X0, t.Y0, t.X1, t.Y1, x, y)
			d1 := edge(t.X1, t.Y1, t.X2, t.Y2, x, y)
			d2 := edge(t.X2, t.Y2, t.X0, t.Y0, x, y)
			neg := d0 < 0 || d1 < 0 || d2 < 0
			pos := d0 > 0 || d1 > 0 || d2 > 0
			if !(neg && pos) {
				setRGBA(img, x, y, c)
			}
		}
	}
}

func edge(ax, ay, bx, by, px, py int) int {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// drawText draws a text run with the base bitmap font, scaled up with
// nearest neighbor for the large type so the glyph edges stay crisp on the
// two-level panel.
func drawText(img *image.RGBA, t Text) {
	face := basicfont.Face7x13
	size := t.Size
	if size < 1 {
		size = 1
	}

	w := len(t.Value) * glyphAdvance
	h := face.Height
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  src,
		Src:  image.NewUniform(rgba(t.Color)),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(t.Value)

	dst := image.Rect(t.X, t.Y, t.X+w*size, t.Y+h*size)
	xdraw.NearestNeighbor.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)
}

func setRGBA(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
