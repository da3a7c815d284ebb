package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/setanarut/gridanim"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type EncodeOptions struct {
	// Palette source for GIF frames.
	PaletteMethod PaletteMethod
	// Maximum palette size per GIF frame, 2-256.
	// Lower values encode faster and smaller but band gradients.
	Colors int
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		PaletteMethod: PaletteMethodDominantColor,
		Colors:        64,
	}
}

// FileCodec reads and writes timelines on disk.
type FileCodec struct {
	Options EncodeOptions
}

func NewFileCodec(opt EncodeOptions) *FileCodec {
	return &FileCodec{Options: opt}
}

func (c *FileCodec) Decode(path string) (gridanim.Timeline, error) {
	return ReadTimeline(path)
}

func (c *FileCodec) Encode(t gridanim.Timeline, path string) error {
	return SaveTimeline(t, path, c.Options)
}

func ReadTimeline(path string) (gridanim.Timeline, error) {
	file, err := os.Open(path)
	if err != nil {
		return gridanim.Timeline{}, err
	}
	defer file.Close()
	return DecodeTimeline(file)
}

// DecodeTimeline reads a still image or an animated GIF from r.
func DecodeTimeline(r io.Reader) (gridanim.Timeline, error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(4)
	if bytes.HasPrefix(magic, []byte("GIF8")) {
		g, err := gif.DecodeAll(br)
		if err != nil {
			return gridanim.Timeline{}, err
		}
		return gridanim.FromGIF(g), nil
	}
	img, _, err := image.Decode(br)
	if err != nil {
		return gridanim.Timeline{}, err
	}
	return gridanim.FromImage(img), nil
}

// SaveTimeline writes still timelines as PNG and animated ones as GIF,
// whatever the extension of filename.
func SaveTimeline(t gridanim.Timeline, filename string, opt EncodeOptions) error {
	if len(t.Frames) == 0 {
		return fmt.Errorf("empty timeline")
	}
	if !t.Animated {
		return SaveImage(t.Frames[0].Image, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := EncodeTimeline(f, t, opt); err != nil {
		return err
	}
	return f.Close()
}

func EncodeTimeline(w io.Writer, t gridanim.Timeline, opt EncodeOptions) error {
	if len(t.Frames) == 0 {
		return fmt.Errorf("empty timeline")
	}
	if !t.Animated {
		return png.Encode(w, t.Frames[0].Image)
	}
	return gif.EncodeAll(w, ToGIF(t, opt))
}

// ToGIF quantizes every frame with Floyd-Steinberg dithering against its own
// palette.
func ToGIF(t gridanim.Timeline, opt EncodeOptions) *gif.GIF {
	out := &gif.GIF{
		Image:     make([]*image.Paletted, len(t.Frames)),
		Delay:     make([]int, len(t.Frames)),
		Disposal:  make([]byte, len(t.Frames)),
		LoopCount: -1,
	}
	if t.Loop {
		out.LoopCount = 0
	}
	for i, f := range t.Frames {
		b := f.Image.Bounds()
		p := image.NewPaletted(b, GIFPalette(f.Image, opt.Colors, opt.PaletteMethod))
		draw.FloydSteinberg.Draw(p, b, f.Image, b.Min)
		out.Image[i] = p
		out.Delay[i] = f.Delay
		out.Disposal[i] = gif.DisposalBackground
	}
	return out
}

// SaveImage writes img as a PNG file.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return f.Close()
}
