package game

import (
	"tilechase/internal/items"
	"tilechase/internal/mathutil"
	"tilechase/internal/monster"
	"tilechase/internal/world"
)

// TileView is the render state of one tile.
type TileView struct {
	Kind   world.TileKind
	Facing world.Direction
}

type PlayerView struct {
	X, Y         float64
	Tile         world.Point
	Heading      world.Direction
	Facing       world.Direction
	Effects      map[items.ItemType]float64
	Shield       bool
	Invincible   bool
	Blinded      bool
	VisibleRange int
	Jumping      bool
	JumpProgress float64
	JumpTarget   world.Point
}

type MonsterView struct {
	ID        string
	Variant   monster.Variant
	X, Y      float64
	Heading   world.Direction
	Frozen    bool
	Rushing   bool
	Invisible bool
	Opacity   float64
}

type DotView struct {
	X, Y      int
	Collected bool
}

type ItemView struct {
	X, Y      int
	Type      items.ItemType
	Collected bool
}

// Snapshot is a copy of everything a renderer needs for one frame. It
// shares no memory with the session.
type Snapshot struct {
	Level     int
	Name      string
	Chapter   int
	Width     int
	Height    int
	Tiles     []TileView
	Player    PlayerView
	Monsters  []MonsterView
	Dots      []DotView
	Items     []ItemView
	Lives     int
	Elapsed   float64
	Remaining int
	State     State
	Countdown int
}

// TileAt indexes the row-major tile slice.
func (s *Snapshot) TileAt(x, y int) TileView {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return TileView{Kind: world.Wall}
	}
	return s.Tiles[y*s.Width+x]
}

// Visible reports whether a tile is drawn this frame: everything, unless
// the player is blinded, in which case only tiles within the visible range
// (Chebyshev distance) of the player.
func (s *Snapshot) Visible(x, y int) bool {
	if !s.Player.Blinded {
		return true
	}
	r := s.Player.VisibleRange
	return mathutil.IntAbs(x-s.Player.Tile.X) <= r && mathutil.IntAbs(y-s.Player.Tile.Y) <= r
}

// Snapshot captures the current frame.
func (s *Session) Snapshot() Snapshot {
	s.mustBeLoaded("Snapshot")
	p := s.player
	snap := Snapshot{
		Level:   s.level.Number,
		Name:    s.level.Name,
		Chapter: s.level.Chapter,
		Width:   s.grid.Width(),
		Height:  s.grid.Height(),
		Tiles:   make([]TileView, 0, s.grid.Width()*s.grid.Height()),
		Player: PlayerView{
			X:            p.X,
			Y:            p.Y,
			Tile:         p.Tile(),
			Heading:      p.Heading(),
			Facing:       p.Facing(),
			Effects:      p.ActiveEffects(),
			Shield:       p.HasShield(),
			Invincible:   p.IsInvincible(),
			Blinded:      p.IsBlinded(),
			VisibleRange: s.cfg.Terrain.BlindVisibleRange,
			Jumping:      p.IsJumping(),
			JumpProgress: p.JumpProgress(),
			JumpTarget:   p.JumpTarget(),
		},
		Lives:     s.lives,
		Elapsed:   s.elapsed,
		Remaining: s.remaining,
		State:     s.state,
		Countdown: s.countdown,
	}

	s.grid.Walk(func(t world.Tile) {
		snap.Tiles = append(snap.Tiles, TileView{Kind: t.Kind, Facing: t.Facing})
	})
	for _, m := range s.monsters {
		snap.Monsters = append(snap.Monsters, MonsterView{
			ID:        m.ID,
			Variant:   m.Variant,
			X:         m.X,
			Y:         m.Y,
			Heading:   m.Dir,
			Frozen:    m.IsFrozen(),
			Rushing:   m.IsRushing(),
			Invisible: m.IsInvisible(),
			Opacity:   m.Opacity(),
		})
	}
	for _, d := range s.dots {
		snap.Dots = append(snap.Dots, DotView{X: d.X, Y: d.Y, Collected: d.Collected})
	}
	for _, it := range s.items {
		snap.Items = append(snap.Items, ItemView{X: it.X, Y: it.Y, Type: it.Type, Collected: it.Collected})
	}
	return snap
}
