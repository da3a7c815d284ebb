package gridanim

import "slices"

// Breakpoints returns the sorted, duplicate-free time offsets at which any of
// the animated timelines switches frame. The result always starts with 0.
// Still timelines contribute nothing.
func Breakpoints(timelines ...Timeline) []int {
	points := []int{0}
	for _, tl := range timelines {
		if !tl.Animated {
			continue
		}
		t := 0
		for _, f := range tl.Frames {
			t += f.Delay
			points = append(points, t)
		}
	}
	slices.Sort(points)
	return slices.Compact(points)
}
