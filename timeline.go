package gridanim

import (
	"image"
	"image/color"
	"image/gif"

	"golang.org/x/image/draw"
)

// Frame is one image of a Timeline together with how long it is shown.
// Delay is in GIF units (1/100 s) and copied verbatim from the source.
type Frame struct {
	Image *image.RGBA
	Delay int
}

// Timeline is a still image or an ordered sequence of timed frames.
//
// A still Timeline holds exactly one frame whose Delay is ignored.
// An animated Timeline holds at least one frame; Loop marks output that
// repeats forever.
type Timeline struct {
	Frames   []Frame
	Animated bool
	Loop     bool
}

// Static wraps a single image.
func Static(img *image.RGBA) Timeline {
	return Timeline{Frames: []Frame{{Image: img}}}
}

// Animated builds an animated Timeline from frames in display order.
func Animated(frames []Frame) Timeline {
	if len(frames) == 0 {
		panic("gridanim: animated timeline needs at least one frame")
	}
	return Timeline{Frames: frames, Animated: true}
}

func (t Timeline) Len() int {
	return len(t.Frames)
}

// Duration is the sum of all frame delays. Still timelines have zero length.
func (t Timeline) Duration() int {
	if !t.Animated {
		return 0
	}
	total := 0
	for _, f := range t.Frames {
		total += f.Delay
	}
	return total
}

// Size returns the dimensions of the first frame.
func (t Timeline) Size() image.Point {
	if len(t.Frames) == 0 || t.Frames[0].Image == nil {
		return image.Point{}
	}
	return t.Frames[0].Image.Bounds().Size()
}

// FrameAt returns the frame visible at time ms. The active frame is the first
// one whose cumulative end time is strictly greater than ms; past the end the
// last frame is held.
func (t Timeline) FrameAt(ms int) *image.RGBA {
	if !t.Animated {
		return t.Frames[0].Image
	}
	end := 0
	for _, f := range t.Frames {
		end += f.Delay
		if ms < end {
			return f.Image
		}
	}
	return t.Frames[len(t.Frames)-1].Image
}

// FromImage copies img into a fresh origin-anchored RGBA buffer and wraps it
// as a still Timeline.
func FromImage(img image.Image) Timeline {
	return Static(toRGBA(img))
}

// FromGIF converts a decoded GIF into a Timeline. A GIF with more than one
// frame becomes animated with every frame fully composited on the logical
// screen, so each Frame is independent of its predecessors. Loop follows the
// GIF loop count.
func FromGIF(g *gif.GIF) Timeline {
	if len(g.Image) == 0 {
		return Static(image.NewRGBA(image.Rect(0, 0, g.Config.Width, g.Config.Height)))
	}
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		for _, p := range g.Image {
			w = max(w, p.Rect.Max.X)
			h = max(h, p.Rect.Max.Y)
		}
	}
	screen := image.NewRGBA(image.Rect(0, 0, w, h))
	if len(g.Image) == 1 {
		p := g.Image[0]
		draw.Draw(screen, p.Rect, p, p.Rect.Min, draw.Src)
		return Static(screen)
	}

	frames := make([]Frame, len(g.Image))
	for i, p := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var saved *image.RGBA
		if disposal == gif.DisposalPrevious {
			saved = cloneRGBA(screen)
		}

		draw.Draw(screen, p.Rect, p, p.Rect.Min, draw.Over)
		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		frames[i] = Frame{Image: cloneRGBA(screen), Delay: delay}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(screen, p.Rect, image.NewUniform(color.Transparent), image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			screen = saved
		}
	}
	out := Animated(frames)
	out.Loop = g.LoopCount == 0
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Rect)
	copy(out.Pix, img.Pix)
	return out
}
