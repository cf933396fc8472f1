package gcode

import (
	"sort"

	"github.com/printforge/toolpath/coord"
)

// Result is the accumulated outcome of interpreting a command stream.
type Result struct {
	// Metadata holds annotation key/value pairs. Later writes to the same
	// key overwrite earlier ones.
	Metadata map[string]string `json:"metadata"`

	// Layers maps layer number to the ordered points recorded in it. Keys
	// need not be contiguous or start at zero, and an entry may exist with
	// no points.
	Layers map[int][]coord.Point `json:"layers"`
}

func newResult() *Result {
	return &Result{
		Metadata: make(map[string]string),
		Layers:   make(map[int][]coord.Point),
	}
}

// LayerNumbers returns the layer keys in ascending order.
func (r *Result) LayerNumbers() []int {
	nums := make([]int, 0, len(r.Layers))
	for n := range r.Layers {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// NumPoints returns the total number of recorded points across all layers.
func (r *Result) NumPoints() int {
	var n int
	for _, pts := range r.Layers {
		n += len(pts)
	}
	return n
}

// points visits every recorded point in ascending layer order.
func (r *Result) points(visit func(layer int, p coord.Point)) {
	for _, n := range r.LayerNumbers() {
		for _, p := range r.Layers[n] {
			visit(n, p)
		}
	}
}

// Bounds returns the minimum and maximum spatial coordinates over all
// recorded points. Both are zero when no points were recorded.
func (r *Result) Bounds() (min, max coord.Point) {
	first := true
	r.points(func(_ int, p coord.Point) {
		if first {
			min, max = p, p
			min.E, min.F = 0, 0
			max.E, max.F = 0, 0
			first = false
			return
		}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	})
	return min, max
}

// TravelDistance returns the spatial path length over all recorded points
// in layer order.
func (r *Result) TravelDistance() float64 {
	var dist float64
	var last coord.Point
	first := true
	r.points(func(_ int, p coord.Point) {
		if !first {
			dist += last.Distance(p)
		}
		last = p
		first = false
	})
	return dist
}

// FilamentUsed returns the total forward E advance over all recorded points
// in layer order. Retractions (negative E deltas) do not count against it.
func (r *Result) FilamentUsed() float64 {
	var used float64
	var lastE float64
	r.points(func(_ int, p coord.Point) {
		if d := p.E - lastE; d > 0 {
			used += d
		}
		lastE = p.E
	})
	return used
}
