package coord

import (
	"math"
)

// Point is an absolute machine position snapshot: the three spatial axes,
// the extruder position E, and the feed rate F active at that position.
type Point struct {
	X, Y, Z float64
	E       float64
	F       float64
}

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z && p.E == b.E && p.F == b.F
}

// MotionEqual reports whether b holds the same motion state as p.
// F is excluded: a feed rate change alone is not a motion.
func (p Point) MotionEqual(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z && p.E == b.E
}

// Add will add the target X/Y/Z/E values to p. F is carried from p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	p.E += target.E
	return p
}

// Sub will subtract the target X/Y/Z/E values from p. F is carried from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	p.E -= target.E
	return p
}

// Distance will return the spatial (X/Y/Z) distance from p to the target.
func (p Point) Distance(target Point) float64 {
	return math.Sqrt(math.Pow(target.X-p.X, 2) + math.Pow(target.Y-p.Y, 2) + math.Pow(target.Z-p.Z, 2))
}

// DistanceXY will return the 2D distance to p from (x,y).
func (p Point) DistanceXY(x, y float64) float64 {
	return math.Sqrt(math.Pow(x-p.X, 2) + math.Pow(y-p.Y, 2))
}

// Split will return a set of n evenly spaced points from p to the target.
// E is interpolated along with the spatial axes; F takes the target value.
func (p Point) Split(target Point, n int) []Point {
	step := target.Sub(p)
	step.X /= float64(n)
	step.Y /= float64(n)
	step.Z /= float64(n)
	step.E /= float64(n)

	res := make([]Point, n)
	for i := range res {
		res[i].X = p.X + step.X*float64(i+1)
		res[i].Y = p.Y + step.Y*float64(i+1)
		res[i].Z = p.Z + step.Z*float64(i+1)
		res[i].E = p.E + step.E*float64(i+1)
		res[i].F = target.F
	}

	return res
}
