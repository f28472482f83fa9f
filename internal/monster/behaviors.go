package monster

import (
	"math"

	"tilechase/internal/world"
)

func decideChase(m *Monster, s senses) {
	tx, ty, ok := s.targetPosition()
	if !ok {
		if dirs := m.validDirs(s.grid); len(dirs) > 0 {
			m.Dir = m.pick(dirs)
		}
		return
	}
	m.chaseToward(s.grid, tx, ty)
}

// chaseToward takes the axis-greedy heading when it is open, otherwise the
// neighbour tile closest to the target. Reversing is a dead-end fallback.
func (m *Monster) chaseToward(grid Grid, tx, ty float64) {
	dirs := m.forwardDirs(grid)
	if len(dirs) == 0 {
		m.Dir = world.None
		return
	}

	if greedy := m.greedyAxis(tx, ty); containsDir(dirs, greedy) {
		m.Dir = greedy
		return
	}

	tile := m.Tile()
	best := dirs[0]
	bestDist := math.MaxFloat64
	for _, d := range dirs {
		n := tile.Add(d)
		dist := math.Hypot(float64(n.X)-tx, float64(n.Y)-ty)
		if dist < bestDist {
			bestDist = dist
			best = d
		}
	}
	m.Dir = best
}

func decideWander(m *Monster, s senses) {
	m.wander(s.grid, m.keepChance)
}

// wander keeps the heading with probability keep while it stays open,
// otherwise picks uniformly among the forward candidates.
func (m *Monster) wander(grid Grid, keep float64) {
	dirs := m.forwardDirs(grid)
	if len(dirs) == 0 {
		m.Dir = world.None
		return
	}
	if m.Dir != world.None && containsDir(dirs, m.Dir) && m.rng.Float64() < keep {
		return
	}
	m.Dir = m.pick(dirs)
}
