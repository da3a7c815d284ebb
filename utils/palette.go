package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
	PaletteMethodPlan9
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	case PaletteMethodPlan9:
		return "plan9"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "dominantcolor", "dominant", "":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	case "plan9":
		return PaletteMethodPlan9, nil
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(p []colorful.Color) {
	slices.SortFunc(p, func(a, b colorful.Color) int {
		ya, yb := luminance(a), luminance(b)
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	// dominantcolor clusters internally; keep the candidate count bounded for
	// large GIF palettes and tiny frames.
	area := img.Bounds().Dx() * img.Bounds().Dy()
	candidates := dominantcolor.FindWeight(img, max(1, min(max(24, k*2), 512, area)))
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: max(c.Weight, 1e-6)})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colors that are far apart in
// Lab space, favoring heavy candidates. The heaviest candidate is picked
// first.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	labs := make([][]float64, len(cands))
	maxW := 0.0
	seed := 0
	for i, c := range cands {
		l, a, b := c.Col.Lab()
		labs[i] = []float64{l, a, b}
		if c.Weight > maxW {
			maxW = c.Weight
			seed = i
		}
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	// minDist[i] is the Lab distance from candidate i to the closest pick.
	minDist := make([]float64, len(cands))
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}
	picked := make([]bool, len(cands))
	out := make([]colorful.Color, 0, k)
	next := seed
	for len(out) < k && next >= 0 {
		picked[next] = true
		out = append(out, cands[next].Col)
		for i := range cands {
			if !picked[i] {
				minDist[i] = min(minDist[i], floats.Distance(labs[i], labs[next], 2))
			}
		}

		next = -1
		best := -1.0
		for i := range cands {
			if picked[i] {
				continue
			}
			normW := cands[i].Weight / maxW
			score := minDist[i] * (0.55 + 0.45*math.Sqrt(normW))
			if score > best {
				best = score
				next = i
			}
		}
	}
	return out
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large frames.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / 65535.0,
				float64(g16) / 65535.0,
				float64(b16) / 65535.0,
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*2, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 || len(c.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// GIFPalette builds a palette of at most colors entries (capped at 256) for
// encoding img as a GIF frame. Frames with fully transparent pixels get a
// transparent entry at index 0.
func GIFPalette(img image.Image, colors int, method PaletteMethod) color.Palette {
	if method == PaletteMethodPlan9 {
		return palette.Plan9
	}
	colors = max(2, min(256, colors))
	transparent := hasTransparency(img)
	if transparent {
		colors--
	}

	extracted := ExtractPalette(img, colors, method)
	SortPaletteByBrightness(extracted)

	p := make(color.Palette, 0, len(extracted)+1)
	if transparent {
		p = append(p, color.RGBA{})
	}
	for _, c := range extracted {
		r, g, b := c.Clamped().RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	if len(p) == 0 {
		return palette.Plan9
	}
	return p
}

// hasTransparency reports whether any pixel is fully transparent. Partially
// transparent pixels do not count; GIF encoding dithers them onto opaque
// palette entries.
func hasTransparency(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				return true
			}
		}
	}
	return false
}
