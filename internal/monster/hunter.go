package monster

import (
	"tilechase/internal/collision"
	"tilechase/internal/world"
)

// tickRush runs the Hunter's rush clock. A rush lasts a fixed time whether
// or not the player stays in sight, then a cooldown gates the next one.
func tickRush(m *Monster, dt float64, s senses) {
	h := &m.Hunter
	if h.RushCooldown > 0 {
		h.RushCooldown -= dt
	}
	if !h.Rushing && h.RushCooldown <= 0 && m.CanSee(s.grid, s.target) {
		h.Rushing = true
		h.RushTimer = 0
	}
	if h.Rushing {
		h.RushTimer += dt
		if h.RushTimer >= m.cfg.Hunter.RushDuration {
			h.Rushing = false
			h.RushTimer = 0
			h.RushCooldown = m.cfg.Hunter.RushCooldown
		}
	}
}

// CanSee reports whether the target shares a row or column with the monster,
// lies in the half-plane the monster faces, and has no wall in between.
// A monster with no heading looks every way.
func (m *Monster) CanSee(grid Grid, target Target) bool {
	if target == nil {
		return false
	}
	me, them := m.Tile(), target.Tile()
	if me.X != them.X && me.Y != them.Y {
		return false
	}
	if !facingToward(m.Dir, me, them) {
		return false
	}
	return collision.CheckLineOfSight(grid, me, them)
}

func facingToward(d world.Direction, me, them world.Point) bool {
	switch d {
	case world.Up:
		return me.X == them.X && them.Y < me.Y
	case world.Down:
		return me.X == them.X && them.Y > me.Y
	case world.Left:
		return me.Y == them.Y && them.X < me.X
	case world.Right:
		return me.Y == them.Y && them.X > me.X
	default:
		return true
	}
}

func decideHunt(m *Monster, s senses) {
	if tx, ty, ok := s.targetPosition(); ok && m.Hunter.Rushing {
		m.chaseToward(s.grid, tx, ty)
		return
	}
	m.wander(s.grid, m.keepChance)
}
