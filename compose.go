package gridanim

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Grid holds rows of timelines, composed left to right and stacked top to
// bottom.
type Grid [][]Timeline

// Timelines flattens the grid in row-major order.
func (g Grid) Timelines() []Timeline {
	var out []Timeline
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Breakpoints merges the timelines of every cell.
func (g Grid) Breakpoints() []int {
	return Breakpoints(g.Timelines()...)
}

// Layout is the canvas geometry of a Grid. It depends only on image sizes,
// so it is computed once and shared by every output frame.
type Layout struct {
	Width, Height int
	RowHeights    []int
}

func NewLayout(g Grid) Layout {
	l := Layout{RowHeights: make([]int, len(g))}
	for i, row := range g {
		w, h := 0, 0
		for _, tl := range row {
			size := tl.Size()
			w += size.X
			h = max(h, size.Y)
		}
		l.Width = max(l.Width, w)
		l.RowHeights[i] = h
		l.Height += h
	}
	return l
}

func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width, l.Height)
}

// DrawFrame fills dst with bg and draws the frame each cell shows at time t.
// Cells sit bottom-aligned in their row. Pixels landing outside dst are
// dropped.
func DrawFrame(dst *image.RGBA, g Grid, l Layout, t int, bg color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	y := 0
	for i, row := range g {
		h := l.RowHeights[i]
		x := 0
		for _, tl := range row {
			img := tl.FrameAt(t)
			size := img.Bounds().Size()
			drawAt(dst, img, x, y+h-size.Y)
			x += size.X
		}
		y += h
	}
}

// drawAt copies src verbatim with its top-left corner at (x, y).
func drawAt(dst *image.RGBA, src *image.RGBA, x, y int) {
	b := src.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(dst, r, src, b.Min, draw.Src)
}

// RenderFrame allocates a canvas for l and draws the grid at time t into it.
func RenderFrame(g Grid, l Layout, t int, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(l.Bounds())
	DrawFrame(dst, g, l, t, bg)
	return dst
}
