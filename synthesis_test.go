package gridanim

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
)

func delays(tl Timeline) []int {
	out := make([]int, len(tl.Frames))
	for i, f := range tl.Frames {
		out[i] = f.Delay
	}
	return out
}

func TestSynthesizeStillGrid(t *testing.T) {
	g := Grid{{Static(solid(10, 10, red)), Static(solid(20, 20, blue))}}

	out := Synthesize(g, DefaultOptions())
	require.False(t, out.Animated)
	require.Equal(t, 1, out.Len())

	img := out.Frames[0].Image
	require.Equal(t, 30, img.Bounds().Dx())
	require.Equal(t, 20, img.Bounds().Dy())
	require.Equal(t, white, img.RGBAAt(0, 0))
	require.Equal(t, red, img.RGBAAt(0, 10))
	require.Equal(t, blue, img.RGBAAt(10, 0))
}

func TestSynthesizeSingleAnimation(t *testing.T) {
	g := Grid{{animation(4, 4, []int{100, 200}, red, blue)}}

	out := Synthesize(g, DefaultOptions())
	require.True(t, out.Animated)
	require.True(t, out.Loop)
	require.Equal(t, []int{100, 200}, delays(out))
	require.Equal(t, red, out.Frames[0].Image.RGBAAt(0, 0))
	require.Equal(t, blue, out.Frames[1].Image.RGBAAt(0, 0))
}

func TestSynthesizeMergesTimelines(t *testing.T) {
	a := animation(2, 2, []int{100, 200}, red, blue)
	b := animation(2, 2, []int{150}, green)
	g := Grid{{a, b}}

	out := Synthesize(g, DefaultOptions())
	require.Equal(t, []int{100, 50, 150}, delays(out))
	require.Equal(t, g.Breakpoints()[len(g.Breakpoints())-1], out.Duration())

	// Frame at t=100: a has moved on, b is frozen on its only frame.
	second := out.Frames[1].Image
	require.Equal(t, blue, second.RGBAAt(0, 0))
	require.Equal(t, green, second.RGBAAt(2, 0))

	require.Equal(t, red, out.Frames[0].Image.RGBAAt(0, 0))
	require.Equal(t, green, out.Frames[2].Image.RGBAAt(3, 1))
}

func TestSynthesizeFramesAreIndependent(t *testing.T) {
	g := Grid{{animation(2, 2, []int{10, 10, 10}, red, blue, green)}}
	out := Synthesize(g, DefaultOptions())

	for i := range out.Frames {
		for j := i + 1; j < len(out.Frames); j++ {
			require.NotSame(t, out.Frames[i].Image, out.Frames[j].Image)
		}
	}
}

func TestSynthesizeWorkersMatchSequential(t *testing.T) {
	g := Grid{
		{animation(3, 5, []int{7, 11, 13}, red, blue), Static(solid(4, 2, green))},
		{animation(6, 3, []int{5, 5, 5, 5, 5, 5}, blue, green, red)},
	}
	seq := Synthesize(g, DefaultOptions())

	opt := DefaultOptions()
	opt.Workers = 4
	par := Synthesize(g, opt)

	require.Equal(t, delays(seq), delays(par))
	for i := range seq.Frames {
		require.Equal(t, seq.Frames[i].Image.Pix, par.Frames[i].Image.Pix)
	}
}

func TestSynthesizeBackground(t *testing.T) {
	g := Grid{{Static(solid(2, 2, red))}, {Static(solid(4, 2, blue))}}
	opt := DefaultOptions()
	opt.Background = colorful.Color{R: 0, G: 1, B: 0}

	out := Synthesize(g, opt)
	require.Equal(t, green, out.Frames[0].Image.RGBAAt(3, 0))
}

func TestSynthesizeRejectsEmptyGrid(t *testing.T) {
	require.Panics(t, func() { Synthesize(Grid{}, DefaultOptions()) })
	require.Panics(t, func() { Synthesize(Grid{{Static(solid(1, 1, red))}, {}}, DefaultOptions()) })
}

func TestZeroOptionsBackgroundIsBlack(t *testing.T) {
	g := Grid{{Static(solid(2, 2, red))}, {Static(solid(4, 2, blue))}}

	require.Equal(t, white, Synthesize(g, DefaultOptions()).Frames[0].Image.RGBAAt(3, 0))
	require.Equal(t, color.RGBA{A: 255}, Synthesize(g, Options{}).Frames[0].Image.RGBAAt(3, 0))
}

func TestOptionsFromFrameCount(t *testing.T) {
	require.Equal(t, 1, OptionsFromFrameCount(3).Workers)
	require.Equal(t, 1, OptionsFromFrameCount(8).Workers)
	workers := OptionsFromFrameCount(100).Workers
	require.GreaterOrEqual(t, workers, 1)
	require.LessOrEqual(t, workers, 25)
	require.Equal(t, colorful.Color{R: 1, G: 1, B: 1}, OptionsFromFrameCount(100).Background)
}
