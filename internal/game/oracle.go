package game

import (
	"tilechase/internal/collision"
	"tilechase/internal/items"
	"tilechase/internal/world"
)

// collectDots takes every dot under the player, and every dot within
// magnet range while the magnet is active.
func (s *Session) collectDots() {
	px, py := s.player.Position()
	magnet := s.player.HasEffect(items.ItemMagnet)
	for _, d := range s.dots {
		if d.Collected {
			continue
		}
		dx, dy := float64(d.X), float64(d.Y)
		hit := collision.Within(px, py, dx, dy, s.cfg.Items.DotRadius) ||
			(magnet && collision.WithinInclusive(px, py, dx, dy, s.cfg.Items.MagnetRange))
		if hit && d.Collect() {
			s.remaining--
			s.emit(Event{Kind: EventDotCollected, At: world.Point{X: d.X, Y: d.Y}})
		}
	}
}

func (s *Session) collectItems() {
	px, py := s.player.Position()
	for _, it := range s.items {
		if it.Collected || !collision.Within(px, py, float64(it.X), float64(it.Y), s.cfg.Items.PickupRadius) {
			continue
		}
		if it.Collect(s.player) {
			s.emit(Event{Kind: EventItemCollected, Item: it.Type, At: world.Point{X: it.X, Y: it.Y}})
		}
	}
}

// checkHazards tests the player against every monster. A held shield soaks
// one contact and the scan goes on; the invincibility it opens skips the
// remaining monsters. The first unabsorbed contact is a hit.
func (s *Session) checkHazards() bool {
	if s.player.IsJumping() {
		return false
	}
	for _, m := range s.monsters {
		if s.player.IsInvincible() {
			continue
		}
		if !collision.Collides(s.player, m) {
			continue
		}
		if s.player.ConsumeShield() {
			s.emit(Event{Kind: EventHazardHit, Absorbed: true, Monster: m.ID, At: m.Tile()})
			continue
		}
		s.emit(Event{Kind: EventHazardHit, Monster: m.ID, At: m.Tile()})
		return true
	}
	return false
}
