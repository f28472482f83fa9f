package monster

import (
	"math"

	"tilechase/internal/collision"
	"tilechase/internal/world"
)

// Grid is the passability view monsters move and look through.
type Grid interface {
	collision.TileChecker
	CanEnterFrom(x, y float64, from world.Direction, wallPass bool) bool
}

// Target is what monsters chase. A nil Target means no player is present.
type Target interface {
	Position() (x, y float64)
	Tile() world.Point
}

// senses bundles the per-tick inputs a decision may read.
type senses struct {
	grid   Grid
	target Target
}

func (s senses) targetPosition() (float64, float64, bool) {
	if s.target == nil {
		return 0, 0, false
	}
	x, y := s.target.Position()
	return x, y, true
}

type decideFunc func(m *Monster, s senses)
type tickFunc func(m *Monster, dt float64, s senses)

// decisions is the strategy table; each variant decides independently.
var decisions = map[Variant]decideFunc{
	Chaser:    decideChase,
	Wanderer:  decideWander,
	Hunter:    decideHunt,
	Patroller: decidePatrol,
	Phantom:   decidePhantom,
}

// preTicks run every unfrozen frame before the shared decision loop.
var preTicks = map[Variant]tickFunc{
	Hunter:  tickRush,
	Phantom: tickVisibility,
}

// Update advances the monster by dt seconds: freeze countdown, variant
// timers, decision cadence at tile centers, then a movement step that never
// passes the next tile center.
func (m *Monster) Update(dt float64, grid Grid, target Target) {
	if m.frozen {
		m.frozenTimer -= dt
		if m.frozenTimer <= 0 {
			m.frozen = false
			m.frozenTimer = 0
		}
		return
	}

	s := senses{grid: grid, target: target}
	if tick, ok := preTicks[m.Variant]; ok {
		tick(m, dt, s)
	}
	m.Speed = m.modeSpeed() * m.terrainFactor

	if m.CenterDistance() < m.cfg.DecisionThreshold {
		m.moveTimer += dt
		if m.moveTimer >= m.moveInterval {
			m.moveTimer = 0
			m.AlignToGrid()
			m.decide(s)
		}
	}

	if m.Dir == world.None {
		return
	}
	next, ok := m.nextCenter()
	if !ok || !m.canEnter(grid, next, m.Dir) {
		m.AlignToGrid()
		m.Dir = world.None
		m.decide(s)
		return
	}
	m.step(next, dt)
}

func (m *Monster) decide(s senses) {
	if fn, ok := decisions[m.Variant]; ok {
		fn(m, s)
	}
}

// nextCenter is the first tile center strictly ahead in the heading.
func (m *Monster) nextCenter() (world.Point, bool) {
	switch m.Dir {
	case world.Right:
		return world.Point{X: int(math.Floor(m.X)) + 1, Y: int(math.Floor(m.Y + 0.5))}, true
	case world.Left:
		return world.Point{X: int(math.Ceil(m.X)) - 1, Y: int(math.Floor(m.Y + 0.5))}, true
	case world.Down:
		return world.Point{X: int(math.Floor(m.X + 0.5)), Y: int(math.Floor(m.Y)) + 1}, true
	case world.Up:
		return world.Point{X: int(math.Floor(m.X + 0.5)), Y: int(math.Ceil(m.Y)) - 1}, true
	default:
		return world.Point{}, false
	}
}

func (m *Monster) step(next world.Point, dt float64) {
	dx, dy := m.Dir.Delta()
	dist := m.Speed * dt
	nx := m.X + float64(dx)*dist
	ny := m.Y + float64(dy)*dist

	tx, ty := float64(next.X), float64(next.Y)
	if (dx > 0 && nx > tx) || (dx < 0 && nx < tx) {
		nx = tx
	}
	if (dy > 0 && ny > ty) || (dy < 0 && ny < ty) {
		ny = ty
	}
	m.X, m.Y = nx, ny
}

func (m *Monster) canEnter(grid Grid, p world.Point, heading world.Direction) bool {
	return grid.CanEnterFrom(float64(p.X), float64(p.Y), heading.Opposite(), false)
}

// validDirs lists headings whose neighbour tile can be entered, in
// world.Cardinals order.
func (m *Monster) validDirs(grid Grid) []world.Direction {
	tile := m.Tile()
	dirs := make([]world.Direction, 0, 4)
	for _, d := range world.Cardinals {
		if m.canEnter(grid, tile.Add(d), d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// forwardDirs is validDirs without the reverse heading, except at dead ends.
func (m *Monster) forwardDirs(grid Grid) []world.Direction {
	return withoutReverse(m.validDirs(grid), m.Dir)
}

// greedyAxis is the heading along the larger offset to the target.
// Ties go to the vertical axis; a target on the monster gives None.
func (m *Monster) greedyAxis(tx, ty float64) world.Direction {
	dx, dy := tx-m.X, ty-m.Y
	switch {
	case math.Abs(dx) > math.Abs(dy):
		if dx > 0 {
			return world.Right
		}
		return world.Left
	case math.Abs(dy) > 0:
		if dy > 0 {
			return world.Down
		}
		return world.Up
	default:
		return world.None
	}
}

func (m *Monster) pick(dirs []world.Direction) world.Direction {
	return dirs[m.rng.Intn(len(dirs))]
}
