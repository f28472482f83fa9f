package game

import (
	"github.com/sirupsen/logrus"

	"tilechase/internal/items"
	"tilechase/internal/level"
	"tilechase/internal/mathutil"
	"tilechase/internal/monster"
	"tilechase/internal/player"
	"tilechase/internal/terrain"
	"tilechase/internal/world"
)

// build replaces the live world with the one described by d. Placement
// order matters: dots first, then items and enemies clear the dot under them.
func (s *Session) build(d *level.Data) error {
	grid, err := d.Build(s.legend, s.cfg.World.MapWidth, s.cfg.World.MapHeight)
	if err != nil {
		return err
	}

	s.grid = grid
	s.terrain = terrain.New(grid, s.cfg.Terrain)
	s.monsters = nil
	s.items = nil
	s.dots = nil

	spawn := s.place(d.Spawn, logrus.Fields{"entity": "player"})
	s.player = player.New(spawn, grid, s.cfg.Player)
	s.lastPlayerTile = spawn

	grid.Walk(func(t world.Tile) {
		if t.Kind == world.Floor && t.Point() != spawn {
			s.dots = append(s.dots, &items.Dot{X: t.X, Y: t.Y})
		}
	})

	for _, is := range d.Items {
		kind, ok := items.ParseItemType(is.Type)
		if !ok {
			s.log.WithFields(logrus.Fields{"item": is.Type, "x": is.X, "y": is.Y}).Warn("unknown item type, skipped")
			continue
		}
		if !grid.InBounds(is.X, is.Y) {
			s.log.WithFields(logrus.Fields{"item": is.Type, "x": is.X, "y": is.Y}).Warn("item outside the map, skipped")
			continue
		}
		at := s.place(world.Point{X: is.X, Y: is.Y}, logrus.Fields{"entity": "item", "item": kind.String()})
		s.items = append(s.items, items.NewItem(at.X, at.Y, kind, s.cfg.Items))
		s.removeDot(at)
	}

	for i, es := range d.Enemies {
		variant, ok := monster.ParseVariant(es.Type)
		if !ok {
			s.log.WithFields(logrus.Fields{"monster": es.Type, "x": es.X, "y": es.Y}).Warn("unknown enemy type, using wanderer")
		}
		at := s.place(world.Point{X: es.X, Y: es.Y}, logrus.Fields{"entity": "monster", "variant": variant.String()})
		m := monster.New(variant, at, s.cfg.Monsters, s.rng)
		if variant.Patrols() {
			if wp, ok := d.PatrolFor(i); ok {
				m.SetPatrolPath(wp)
			} else {
				m.GeneratePatrolPath(grid)
			}
		}
		s.monsters = append(s.monsters, m)
		s.removeDot(at)
	}

	s.remaining = len(s.dots)
	return nil
}

// place returns p when it can be stood on, else the nearest passable tile.
// Bad coordinates in level data are logged, never fatal.
func (s *Session) place(p world.Point, fields logrus.Fields) world.Point {
	if s.grid.CanOccupy(float64(p.X), float64(p.Y), false) {
		return p
	}
	radius := mathutil.IntMax(s.grid.Width(), s.grid.Height())
	found, ok := s.grid.NearestPassable(p.X, p.Y, radius)
	log := s.log.WithFields(fields).WithFields(logrus.Fields{"x": p.X, "y": p.Y})
	if !ok {
		log.Error("no passable tile for spawn, keeping authored position")
		return p
	}
	log.WithFields(logrus.Fields{"to_x": found.X, "to_y": found.Y}).Warn("spawn on impassable tile, relocated")
	return found
}

func (s *Session) removeDot(p world.Point) {
	kept := s.dots[:0]
	for _, d := range s.dots {
		if d.X != p.X || d.Y != p.Y {
			kept = append(kept, d)
		}
	}
	s.dots = kept
}
