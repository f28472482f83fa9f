package mathutil

import "math"

// Round rounds half up toward positive infinity, so -0.5 rounds to 0 and
// 2.5 rounds to 3. Tile lookups depend on this: math.Round would send an
// entity at x=-0.5 one tile further left (search: tile-round).
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Dist is the Euclidean distance between two points.
func Dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// CenterOffset is the L1 distance from (x, y) to the nearest integer grid point.
func CenterOffset(x, y float64) float64 {
	return math.Abs(x-float64(Round(x))) + math.Abs(y-float64(Round(y)))
}
