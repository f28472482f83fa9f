package collision

import (
	"math"

	"tilechase/internal/world"
)

// Body is anything that takes part in contact tests.
type Body interface {
	CellCenter() (float64, float64)
	CollisionRadius() float64
	IsActive() bool
}

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// Collides is the single contact rule: both bodies active and the distance
// between their cell centers below the sum of their radii.
func Collides(a, b Body) bool {
	if !a.IsActive() || !b.IsActive() {
		return false
	}
	ax, ay := a.CellCenter()
	bx, by := b.CellCenter()
	return math.Hypot(ax-bx, ay-by) < a.CollisionRadius()+b.CollisionRadius()
}

// Within reports whether (bx, by) lies strictly inside radius r of (ax, ay).
func Within(ax, ay, bx, by, r float64) bool {
	return math.Hypot(ax-bx, ay-by) < r
}

// WithinInclusive is Within with the boundary counted as inside.
func WithinInclusive(ax, ay, bx, by, r float64) bool {
	return math.Hypot(ax-bx, ay-by) <= r
}

// CheckLineOfSight reports whether two tiles share a row or column with no
// blocking tile strictly between them. Diagonal pairs never see each other.
func CheckLineOfSight(tc TileChecker, from, to world.Point) bool {
	width, height := tc.GetWorldBounds()
	if from.X < 0 || from.Y < 0 || from.X >= width || from.Y >= height {
		return false
	}
	if to.X < 0 || to.Y < 0 || to.X >= width || to.Y >= height {
		return false
	}

	switch {
	case from == to:
		return true
	case from.X == to.X:
		step := 1
		if to.Y < from.Y {
			step = -1
		}
		for y := from.Y + step; y != to.Y; y += step {
			if tc.IsTileBlocking(from.X, y) {
				return false
			}
		}
		return true
	case from.Y == to.Y:
		step := 1
		if to.X < from.X {
			step = -1
		}
		for x := from.X + step; x != to.X; x += step {
			if tc.IsTileBlocking(x, from.Y) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
