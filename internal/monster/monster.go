package monster

import (
	"github.com/google/uuid"

	"tilechase/internal/config"
	"tilechase/internal/entity"
	"tilechase/internal/world"
)

// Rand is the random source monsters decide with. *rand.Rand satisfies it;
// tests pass a seeded one.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Monster is a single enemy. All variants share this struct; the Variant
// tag selects the decision strategy and which state block is live.
type Monster struct {
	entity.Mover

	ID      string
	Variant Variant

	frozen      bool
	frozenTimer float64

	moveTimer    float64
	moveInterval float64
	keepChance   float64

	baseSpeed     float64
	terrainFactor float64
	lastTile      world.Point

	Hunter  HunterState
	Patrol  PatrolState
	Phantom PhantomState

	cfg config.MonstersConfig
	rng Rand

	phantomFade *fadeTween
}

// New creates a monster of the given variant at the center of tile spawn.
func New(variant Variant, spawn world.Point, cfg config.MonstersConfig, rng Rand) *Monster {
	vc := variantConfig(variant, cfg)
	m := &Monster{
		Mover:         entity.NewMover(spawn.X, spawn.Y, vc.Speed, cfg.CollisionRadius),
		ID:            uuid.NewString(),
		Variant:       variant,
		moveInterval:  vc.MoveInterval,
		keepChance:    vc.KeepDirection,
		baseSpeed:     vc.Speed,
		terrainFactor: 1.0,
		lastTile:      spawn,
		cfg:           cfg,
		rng:           rng,
	}
	m.Patrol.Forward = true
	m.Phantom.Opacity = 1.0
	return m
}

func variantConfig(v Variant, cfg config.MonstersConfig) config.VariantConfig {
	switch v {
	case Chaser:
		return cfg.Chaser
	case Hunter:
		return cfg.Hunter.VariantConfig
	case Patroller:
		return cfg.Patroller.VariantConfig
	case Phantom:
		return cfg.Phantom.VariantConfig
	default:
		return cfg.Wanderer
	}
}

// Freeze makes the monster inert for duration seconds.
func (m *Monster) Freeze(duration float64) {
	m.frozen = true
	m.frozenTimer = duration
}

func (m *Monster) IsFrozen() bool { return m.frozen }

// IsRushing reports a Hunter in its fast pursuit phase.
func (m *Monster) IsRushing() bool { return m.Variant == Hunter && m.Hunter.Rushing }

// IsInvisible reports a Phantom in its hidden phase.
func (m *Monster) IsInvisible() bool { return m.Variant == Phantom && m.Phantom.Invisible }

// Opacity is the render alpha; only Phantoms fade.
func (m *Monster) Opacity() float64 {
	if m.Variant != Phantom {
		return 1.0
	}
	return m.Phantom.Opacity
}

// BaseSpeed is the variant's cruising speed before mode and terrain.
func (m *Monster) BaseSpeed() float64 { return m.baseSpeed }

// SetTerrainFactor scales speed while the monster stays on the tile it just
// entered. Terrain sets it once per entry, so it never compounds.
func (m *Monster) SetTerrainFactor(f float64) { m.terrainFactor = f }

func (m *Monster) TerrainFactor() float64 { return m.terrainFactor }

// Relocate moves the monster to a tile center and counts that tile as
// already entered, which keeps portal pairs from bouncing it back.
func (m *Monster) Relocate(p world.Point) {
	m.SetPosition(p)
	m.lastTile = p
}

// TakeTileEntry reports the tile the monster has moved onto since the last
// call, if any.
func (m *Monster) TakeTileEntry() (world.Point, bool) {
	tile := m.Tile()
	if tile == m.lastTile {
		return tile, false
	}
	m.lastTile = tile
	return tile, true
}

// modeSpeed is the speed the current behaviour phase runs at.
func (m *Monster) modeSpeed() float64 {
	switch {
	case m.Variant == Hunter && m.Hunter.Rushing:
		return m.cfg.Hunter.RushSpeed
	case m.Variant == Phantom && m.Phantom.Invisible:
		return m.cfg.Phantom.InvisibleSpeed
	default:
		return m.baseSpeed
	}
}
