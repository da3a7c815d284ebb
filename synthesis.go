package gridanim

import (
	"fmt"
	"sync"
)

// Synthesize composes the grid into one output timeline. When no cell is
// animated the result is a still image rendered at time 0. Otherwise every
// consecutive pair of breakpoints yields one frame lasting their difference,
// and the result loops forever.
//
// Synthesize panics if the grid or any of its rows is empty.
func Synthesize(g Grid, opt Options) Timeline {
	if len(g) == 0 {
		panic("gridanim: empty grid")
	}
	for i, row := range g {
		if len(row) == 0 {
			panic(fmt.Sprintf("gridanim: row %d is empty", i))
		}
	}

	layout := NewLayout(g)
	points := g.Breakpoints()
	if len(points) <= 1 {
		return Static(RenderFrame(g, layout, 0, opt.Background))
	}

	frames := make([]Frame, len(points)-1)
	render := func(i int) {
		t, next := points[i], points[i+1]
		frames[i] = Frame{
			Image: RenderFrame(g, layout, t, opt.Background),
			Delay: next - t,
		}
		if opt.Verbose {
			fmt.Printf("   frame %d/%d t=%d delay=%d\n", i+1, len(frames), t, next-t)
		}
	}

	if opt.Workers <= 1 {
		for i := range frames {
			render(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for range min(opt.Workers, len(frames)) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					render(i)
				}
			}()
		}
		for i := range frames {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	out := Animated(frames)
	out.Loop = true
	return out
}
