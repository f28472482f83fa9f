package player

import (
	"math"

	"tilechase/internal/config"
	"tilechase/internal/entity"
	"tilechase/internal/items"
	"tilechase/internal/mathutil"
	"tilechase/internal/world"
)

// Map is the grid view the controller moves against.
type Map interface {
	CanOccupy(x, y float64, wallPass bool) bool
	CanEnterFrom(x, y float64, from world.Direction, wallPass bool) bool
	NearestPassable(x, y, maxRadius int) (world.Point, bool)
	GetWorldBounds() (width, height int)
}

// Player is the user-controlled mover. Its state is a set of independent
// flags and timers rather than a single mode; Update advances them in a
// fixed order.
type Player struct {
	entity.Mover

	grid Map
	cfg  config.PlayerConfig

	nextDir    world.Direction
	lastFacing world.Direction

	effects   map[items.ItemType]float64
	hasShield bool

	invincibleTimer float64
	blinded         bool
	blindTimer      float64
	portalCooldown  float64

	jumping      bool
	jumpTarget   world.Point
	jumpProgress float64

	speedModifier float64
	onIce         bool
	iceDir        world.Direction

	rescueFailed bool
}

// New creates a player at the center of the spawn tile.
func New(spawn world.Point, grid Map, cfg config.PlayerConfig) *Player {
	return &Player{
		Mover:         entity.NewMover(spawn.X, spawn.Y, cfg.Speed, cfg.CollisionRadius),
		grid:          grid,
		cfg:           cfg,
		lastFacing:    world.Down,
		effects:       make(map[items.ItemType]float64),
		speedModifier: 1.0,
	}
}

// SetNextDirection buffers an input. An idle player off ice starts moving
// immediately; the buffer still goes through the usual turn checks.
func (p *Player) SetNextDirection(d world.Direction) {
	p.nextDir = d
	if p.Dir == world.None && !p.onIce {
		p.Dir = d
	}
}

// Update advances the controller by dt seconds.
func (p *Player) Update(dt float64) {
	p.tickTimers(dt)

	if p.jumping {
		p.updateJump(dt)
		return
	}

	speed := p.Speed * p.speedModifier
	p.tryChangeDirection()
	p.move(speed, dt)

	p.speedModifier = 1.0
}

func (p *Player) tickTimers(dt float64) {
	for kind, remaining := range p.effects {
		remaining -= dt
		if remaining <= 0 {
			delete(p.effects, kind)
			p.onEffectEnd(kind)
			continue
		}
		p.effects[kind] = remaining
	}

	if p.portalCooldown > 0 {
		p.portalCooldown -= dt
	}
	if p.invincibleTimer > 0 {
		p.invincibleTimer -= dt
	}
	if p.blinded {
		p.blindTimer -= dt
		if p.blindTimer <= 0 {
			p.blinded = false
			p.blindTimer = 0
		}
	}
}

func (p *Player) updateJump(dt float64) {
	p.jumpProgress += dt * p.cfg.JumpSpeed
	if p.jumpProgress >= 1.0 {
		p.SetPosition(p.jumpTarget)
		p.jumping = false
		p.jumpProgress = 0
	}
}

func (p *Player) wallPass() bool {
	_, ok := p.effects[items.ItemWallPass]
	return ok
}

func (p *Player) tryChangeDirection() {
	next := p.nextDir
	if next == world.None {
		return
	}
	// An ice slide has to stop before the player can steer again.
	if p.onIce && p.iceDir != world.None {
		return
	}
	if next == p.Dir {
		p.nextDir = world.None
		return
	}
	if p.CenterDistance() >= p.cfg.TurnThreshold {
		return
	}

	target := p.wrapTile(p.Next(next))
	if p.grid.CanEnterFrom(float64(target.X), float64(target.Y), next.Opposite(), p.wallPass()) {
		p.Dir = next
		if p.onIce {
			p.iceDir = next
		}
		p.nextDir = world.None
		p.AlignToGrid()
	}
}

func (p *Player) move(speed, dt float64) {
	sliding := p.onIce && p.iceDir != world.None
	if p.Dir == world.None && !sliding {
		return
	}

	moveDir := p.Dir
	if p.onIce {
		moveDir = p.iceDir
	}
	if moveDir == world.None {
		// On ice with the slide stopped; the explicit direction waits for the next turn.
		return
	}
	p.lastFacing = moveDir

	wallPass := p.wallPass()
	from := moveDir.Opposite()
	next := p.wrapTile(p.Next(moveDir))

	if p.distanceToEdge(moveDir) < p.cfg.EdgeThreshold &&
		!p.grid.CanEnterFrom(float64(next.X), float64(next.Y), from, wallPass) {
		p.stop(moveDir)
		if p.nextDir == moveDir {
			p.nextDir = world.None
		}
		return
	}

	dx, dy := moveDir.Delta()
	nx := p.X + float64(dx)*speed*dt
	ny := p.Y + float64(dy)*speed*dt
	dest := p.wrapTile(world.Point{X: mathutil.Round(nx), Y: mathutil.Round(ny)})
	if p.grid.CanEnterFrom(float64(dest.X), float64(dest.Y), from, wallPass) {
		p.X, p.Y = nx, ny
		p.wrap()
		return
	}
	p.stop(moveDir)
}

// stop aligns the player after running into something. On ice only the
// slide ends so the steering direction survives.
func (p *Player) stop(moveDir world.Direction) {
	p.AlignToGrid()
	if p.onIce {
		p.iceDir = world.None
		return
	}
	p.Dir = world.None
	if p.nextDir == moveDir {
		p.nextDir = world.None
	}
}

func (p *Player) distanceToEdge(d world.Direction) float64 {
	dx, dy := d.Delta()
	distX, distY := 1.0, 1.0
	switch {
	case dx > 0:
		distX = math.Ceil(p.X) - p.X
	case dx < 0:
		distX = p.X - math.Floor(p.X)
	}
	switch {
	case dy > 0:
		distY = math.Ceil(p.Y) - p.Y
	case dy < 0:
		distY = p.Y - math.Floor(p.Y)
	}
	return math.Min(distX, distY)
}

// wrapTile maps a tile just past an edge onto the opposite edge.
func (p *Player) wrapTile(t world.Point) world.Point {
	w, h := p.grid.GetWorldBounds()
	t.X = (t.X%w + w) % w
	t.Y = (t.Y%h + h) % h
	return t
}

// wrap carries a player whose rounded tile left the grid over to the
// opposite edge, keeping the fractional offset.
func (p *Player) wrap() {
	w, h := p.grid.GetWorldBounds()
	tile := p.Tile()
	switch {
	case tile.X < 0:
		p.X += float64(w)
	case tile.X >= w:
		p.X -= float64(w)
	}
	switch {
	case tile.Y < 0:
		p.Y += float64(h)
	case tile.Y >= h:
		p.Y -= float64(h)
	}
}

func (p *Player) onEffectEnd(kind items.ItemType) {
	if kind != items.ItemWallPass {
		return
	}
	tile := p.Tile()
	if p.grid.CanOccupy(float64(tile.X), float64(tile.Y), false) {
		return
	}
	safe, ok := p.grid.NearestPassable(tile.X, tile.Y, p.cfg.RescueRadius)
	if !ok {
		p.rescueFailed = true
		return
	}
	p.SetPosition(safe)
}
