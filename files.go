package gridanim

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Decoder loads a raster file as a Timeline without modifying it.
type Decoder interface {
	Decode(path string) (Timeline, error)
}

// Encoder writes a Timeline to path: still timelines as a single image,
// animated ones as a looping animation.
type Encoder interface {
	Encode(t Timeline, path string) error
}

// Ext is the file extension a timeline is saved with.
func Ext(t Timeline) string {
	if t.Animated {
		return ".gif"
	}
	return ".png"
}

// SplitName is the extension-less name of the i-th (1-based) cell split from
// the file at path.
func SplitName(path string, i int) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "_" + strconv.Itoa(i)
}

// ComposeFiles decodes every source, synthesizes the grid and writes it to
// outBase plus the matching extension. It returns the written path.
// A Workers value below 1 is replaced by one sized to the output frame count.
func ComposeFiles(dec Decoder, enc Encoder, rows [][]string, outBase string, opt Options) (string, error) {
	g := make(Grid, len(rows))
	for i, row := range rows {
		g[i] = make([]Timeline, len(row))
		for j, path := range row {
			tl, err := dec.Decode(path)
			if err != nil {
				return "", fmt.Errorf("decode %s: %w", path, err)
			}
			g[i][j] = tl
		}
	}
	if opt.Workers < 1 {
		opt.Workers = OptionsFromFrameCount(len(g.Breakpoints()) - 1).Workers
	}
	out := Synthesize(g, opt)
	name := outBase + Ext(out)
	if err := enc.Encode(out, name); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	return name, nil
}

// SplitFile splits the image at path into rows x cols cells and writes them
// to outDir, creating it if needed. It returns the written paths in
// row-major order.
func SplitFile(dec Decoder, enc Encoder, path string, rows, cols int, outDir string) ([]string, error) {
	src, err := dec.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}
	cells := Split(src, rows, cols)
	saved := make([]string, 0, len(cells))
	for i, cell := range cells {
		name := filepath.Join(outDir, SplitName(path, i+1)+Ext(cell))
		if err := enc.Encode(cell, name); err != nil {
			return saved, fmt.Errorf("encode %s: %w", name, err)
		}
		saved = append(saved, name)
	}
	return saved, nil
}
