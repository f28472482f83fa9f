package terrain

import (
	"tilechase/internal/config"
	"tilechase/internal/mathutil"
	"tilechase/internal/world"
)

// Effect names what a tile did to the entity standing on it.
type Effect int

const (
	EffectNone Effect = iota
	EffectIce
	EffectSpeedUp
	EffectSlowDown
	EffectBlind
	EffectJump
	EffectTeleport
)

var effectNames = [...]string{
	EffectNone:     "none",
	EffectIce:      "ice",
	EffectSpeedUp:  "speed_up",
	EffectSlowDown: "slow_down",
	EffectBlind:    "blind",
	EffectJump:     "jump",
	EffectTeleport: "teleport",
}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return "unknown"
}

// Map is the tile view the resolver reads.
type Map interface {
	TileAt(x, y int) (world.Tile, bool)
	Linked(t world.Tile) (world.Tile, bool)
	CanOccupy(x, y float64, wallPass bool) bool
	GetWorldBounds() (width, height int)
}

// PlayerTarget is the part of the player controller tiles act on.
type PlayerTarget interface {
	Tile() world.Point
	Heading() world.Direction
	SetOnIce(onIce bool)
	ApplySpeedModifier(modifier float64)
	ApplyBlind(duration float64)
	StartJump(target world.Point)
	IsJumping() bool
	CanTeleport() bool
	TeleportTo(target world.Point)
}

// MoverTarget is the part of a monster tiles act on.
type MoverTarget interface {
	SetTerrainFactor(f float64)
	Relocate(p world.Point)
}

// Resolver applies on-step tile effects. It holds no per-entity state;
// cooldowns and timers live on the entities.
type Resolver struct {
	grid Map
	cfg  config.TerrainConfig
}

func New(grid Map, cfg config.TerrainConfig) *Resolver {
	return &Resolver{grid: grid, cfg: cfg}
}

// StepPlayer runs the effect of the tile under the player. Callers skip it
// while the player is mid-jump.
func (r *Resolver) StepPlayer(p PlayerTarget) Effect {
	pos := p.Tile()
	tile, ok := r.grid.TileAt(pos.X, pos.Y)
	if !ok {
		p.SetOnIce(false)
		return EffectNone
	}

	p.SetOnIce(tile.Kind == world.Ice)
	switch tile.Kind {
	case world.Ice:
		return EffectIce
	case world.SpeedUp:
		p.ApplySpeedModifier(r.cfg.SpeedUpMultiplier)
		return EffectSpeedUp
	case world.SlowDown:
		p.ApplySpeedModifier(r.cfg.SlowDownMultiplier)
		return EffectSlowDown
	case world.BlindTrap:
		p.ApplyBlind(r.cfg.BlindDuration)
		return EffectBlind
	case world.JumpPad:
		if r.jump(p, tile) {
			return EffectJump
		}
	}
	if tile.IsPortal() {
		if !p.CanTeleport() {
			return EffectNone
		}
		if dest, ok := r.grid.Linked(tile); ok {
			p.TeleportTo(dest.Point())
			return EffectTeleport
		}
	}
	return EffectNone
}

// jump launches the player over walls to the first standable tile along the
// pad's facing, or the player's heading when the pad has none.
func (r *Resolver) jump(p PlayerTarget, pad world.Tile) bool {
	if p.IsJumping() {
		return false
	}
	dir := pad.Facing
	if dir == world.None {
		dir = p.Heading()
	}
	if dir == world.None {
		return false
	}

	width, height := r.grid.GetWorldBounds()
	dx, dy := dir.Delta()
	for dist := 1; dist <= mathutil.IntMax(width, height); dist++ {
		x, y := pad.X+dx*dist, pad.Y+dy*dist
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		if r.grid.CanOccupy(float64(x), float64(y), false) {
			p.StartJump(world.Point{X: x, Y: y})
			return true
		}
	}
	return false
}

// StepMover runs the effect of a tile a monster has just entered. Speed
// tiles set the terrain factor for the stay on that tile; any other tile
// resets it. Portals relocate with no cooldown, and the relocation counts
// as the entry into the far end.
func (r *Resolver) StepMover(m MoverTarget, at world.Point) Effect {
	tile, ok := r.grid.TileAt(at.X, at.Y)
	if !ok {
		m.SetTerrainFactor(1.0)
		return EffectNone
	}
	switch tile.Kind {
	case world.SpeedUp:
		m.SetTerrainFactor(r.cfg.SpeedUpMultiplier)
		return EffectSpeedUp
	case world.SlowDown:
		m.SetTerrainFactor(r.cfg.SlowDownMultiplier)
		return EffectSlowDown
	}
	m.SetTerrainFactor(1.0)
	if tile.IsPortal() {
		if dest, ok := r.grid.Linked(tile); ok {
			m.Relocate(dest.Point())
			return EffectTeleport
		}
	}
	return EffectNone
}
