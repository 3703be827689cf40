// Package display derives a renderable scene from channel state. The
// scene is plain data; pixel drawing and the slow panel refresh belong to
// the Renderer implementations.
package display

// Color tags a primitive for the tricolor panel.
type Color uint8

const (
	// ColorNormal is black on the reference panel.
	ColorNormal Color = iota
	// ColorWarning is red.
	ColorWarning
)

// Rect is a filled rectangle.
type Rect struct {
	X, Y, W, H int
	Color      Color
}

// Line is a one-pixel line.
type Line struct {
	X0, Y0, X1, Y1 int
	Color          Color
}

// Triangle is a filled triangle.
type Triangle struct {
	X0, Y0, X1, Y1, X2, Y2 int
	Color                  Color
}

// Text is a text run. Size multiplies the base glyph cell, matching the
// panel's 1x small and 2x large type.
type Text struct {
	X, Y  int
	Size  int
	Color Color
	Value string
}

// Scene is one full frame. Renderers draw rects first, then lines,
// triangles, and texts, which is the stacking the layout assumes (the
// reference markers sit on top of the moisture bar).
type Scene struct {
	Width, Height int
	Rects         []Rect
	Lines         []Line
	Triangles     []Triangle
	Texts         []Text
}
