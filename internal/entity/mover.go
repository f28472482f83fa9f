package entity

import (
	"math"

	"tilechase/internal/mathutil"
	"tilechase/internal/world"
)

// Mover is the continuous-position state shared by the player and monsters.
// Positions are in grid units; (5, 5) is the center of tile (5, 5).
type Mover struct {
	X, Y   float64
	Dir    world.Direction
	Speed  float64
	Radius float64
	Active bool
}

// NewMover places an active mover at the center of tile (x, y).
func NewMover(x, y int, speed, radius float64) Mover {
	return Mover{X: float64(x), Y: float64(y), Speed: speed, Radius: radius, Active: true}
}

// Tile is the rounded grid position.
func (m *Mover) Tile() world.Point {
	return world.Point{X: mathutil.Round(m.X), Y: mathutil.Round(m.Y)}
}

// CellCenter is the tile-space analogue of a pixel center: (x+0.5, y+0.5).
// Multiply by the tile size to get screen pixels.
func (m *Mover) CellCenter() (float64, float64) {
	return m.X + 0.5, m.Y + 0.5
}

func (m *Mover) CollisionRadius() float64 { return m.Radius }
func (m *Mover) IsActive() bool           { return m.Active }

// AlignToGrid snaps the position onto the nearest tile center.
func (m *Mover) AlignToGrid() {
	m.X = math.Floor(m.X + 0.5)
	m.Y = math.Floor(m.Y + 0.5)
}

// CenterDistance is the L1 distance to the nearest tile center.
func (m *Mover) CenterDistance() float64 {
	return mathutil.CenterOffset(m.X, m.Y)
}

// DistanceTo is the Euclidean distance from the mover to (x, y).
func (m *Mover) DistanceTo(x, y float64) float64 {
	return mathutil.Dist(m.X, m.Y, x, y)
}

// SetPosition moves the entity to the center of tile p.
func (m *Mover) SetPosition(p world.Point) {
	m.X, m.Y = float64(p.X), float64(p.Y)
}

// Next returns the tile one step ahead in direction d.
func (m *Mover) Next(d world.Direction) world.Point {
	return m.Tile().Add(d)
}

// Position returns the fractional grid position.
func (m *Mover) Position() (float64, float64) {
	return m.X, m.Y
}
