package gridanim

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// SplitSizes divides total into n parts of total/n each, with the last part
// absorbing the remainder.
func SplitSizes(total, n int) []int {
	if n < 1 {
		panic(fmt.Sprintf("gridanim: cannot split into %d parts", n))
	}
	base := total / n
	sizes := make([]int, n)
	for i := range sizes {
		sizes[i] = base
	}
	sizes[n-1] = total - base*(n-1)
	return sizes
}

// SplitRects returns the cell rectangles of a rows x cols split of size,
// row-major.
func SplitRects(size image.Point, rows, cols int) []image.Rectangle {
	heights := SplitSizes(size.Y, rows)
	widths := SplitSizes(size.X, cols)
	rects := make([]image.Rectangle, 0, rows*cols)
	y := 0
	for _, h := range heights {
		x := 0
		for _, w := range widths {
			rects = append(rects, image.Rect(x, y, x+w, y+h))
			x += w
		}
		y += h
	}
	return rects
}

// Split partitions src into rows x cols timelines in row-major order.
// Animated sources are cut frame by frame, keeping each frame's delay, and
// every resulting cell loops forever.
//
// Split panics if rows or cols is below 1.
func Split(src Timeline, rows, cols int) []Timeline {
	rects := SplitRects(src.Size(), rows, cols)
	cells := make([]Timeline, len(rects))
	for i, r := range rects {
		if !src.Animated {
			cells[i] = Static(subImage(src.Frames[0].Image, r))
			continue
		}
		frames := make([]Frame, len(src.Frames))
		for j, f := range src.Frames {
			frames[j] = Frame{Image: subImage(f.Image, r), Delay: f.Delay}
		}
		cells[i] = Animated(frames)
		cells[i].Loop = true
	}
	return cells
}

// subImage copies r out of img into a new buffer. Parts of r outside img stay
// zero.
func subImage(img *image.RGBA, r image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Rect, img, r.Min, draw.Src)
	return out
}
