package gridanim

import (
	"runtime"

	"github.com/lucasb-eyer/go-colorful"
)

// Options configures Synthesize. Start from DefaultOptions: the zero value
// has a black background.
type Options struct {
	// Canvas fill behind every cell. Always opaque. White by default.
	// Gaps left by short images or uneven rows show this color.
	Background colorful.Color
	// Number of goroutines rendering output frames.
	// Values below 1 render sequentially. Output is identical either way.
	Workers int
	// Print per-frame progress to stdout.
	Verbose bool
}

func DefaultOptions() Options {
	return Options{
		Background: colorful.Color{R: 1, G: 1, B: 1},
		Workers:    1,
	}
}

// OptionsFromFrameCount picks a worker count suited to the number of output
// frames a grid will produce.
func OptionsFromFrameCount(n int) Options {
	opt := DefaultOptions()
	if n > 8 {
		opt.Workers = max(1, min(runtime.NumCPU(), n/4))
	}
	return opt
}
