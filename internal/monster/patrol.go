package monster

import (
	"math"

	"tilechase/internal/collision"
	"tilechase/internal/config"
	"tilechase/internal/world"
)

// Waypoint is a patrol stop, in tile coordinates.
type Waypoint = world.Point

func (m *Monster) patrolConfig() config.PatrolConfig {
	if m.Variant == Phantom {
		return m.cfg.Phantom.PatrolConfig
	}
	return m.cfg.Patroller
}

// SetPatrolPath installs a waypoint list and starts at the stop nearest to
// the monster. Ignored for variants that do not patrol.
func (m *Monster) SetPatrolPath(path []Waypoint) {
	if !m.Variant.Patrols() {
		return
	}
	m.Patrol.Path = append([]Waypoint(nil), path...)
	m.Patrol.Forward = true
	m.Patrol.Index = 0
	best := math.MaxFloat64
	for i, p := range m.Patrol.Path {
		if d := m.DistanceTo(float64(p.X), float64(p.Y)); d < best {
			best = d
			m.Patrol.Index = i
		}
	}
}

// GeneratePatrolPath builds and installs a default path from the spawn tile.
func (m *Monster) GeneratePatrolPath(grid collision.TileChecker) {
	start := world.Point{X: int(m.X), Y: int(m.Y)}
	m.SetPatrolPath(GeneratePatrolPath(grid, start, m.patrolConfig()))
	m.Patrol.Index = 0
}

// advance moves the waypoint index one stop, bouncing at either end.
func (ps *PatrolState) advance() {
	n := len(ps.Path)
	if n == 0 {
		return
	}
	if ps.Forward {
		ps.Index++
		if ps.Index >= n {
			ps.Index = n - 2
			ps.Forward = false
			if ps.Index < 0 {
				ps.Index = 0
			}
		}
		return
	}
	ps.Index--
	if ps.Index < 0 {
		ps.Index = 1
		ps.Forward = true
		if ps.Index >= n {
			ps.Index = 0
		}
	}
}

// Current is the waypoint being walked to.
func (ps *PatrolState) Current() (Waypoint, bool) {
	if len(ps.Path) == 0 {
		return Waypoint{}, false
	}
	return ps.Path[ps.Index], true
}

func decidePatrol(m *Monster, s senses) {
	m.patrol(s.grid)
}

// patrol walks toward the current waypoint, advancing it on arrival. With no
// path the monster wanders.
func (m *Monster) patrol(grid Grid) {
	target, ok := m.Patrol.Current()
	if !ok {
		m.wander(grid, m.keepChance)
		return
	}
	if m.DistanceTo(float64(target.X), float64(target.Y)) < m.patrolConfig().ArrivalThreshold {
		m.Patrol.advance()
		target, _ = m.Patrol.Current()
	}

	dirs := m.validDirs(grid)
	if len(dirs) == 0 {
		m.Dir = world.None
		return
	}
	m.Dir = bestByDot(dirs, float64(target.X)-m.X, float64(target.Y)-m.Y)
}

// GeneratePatrolPath walks greedily from start: at each step it takes the
// direction with the longest open run (capped at MaxRun, inside a one-tile
// margin, never straight back) and moves half of it. It stops at
// MinPathLength points or MaxSteps attempts. A path that ends up with fewer
// than three points is padded with a square of offsets around start.
func GeneratePatrolPath(grid collision.TileChecker, start world.Point, cfg config.PatrolConfig) []Waypoint {
	width, height := grid.GetWorldBounds()
	interior := func(x, y int) bool {
		return x >= 1 && x < width-1 && y >= 1 && y < height-1 && !grid.IsTileBlocking(x, y)
	}

	path := []Waypoint{start}
	cur := start
	last := world.None
	for step := 0; step < cfg.MaxSteps && len(path) < cfg.MinPathLength; step++ {
		bestDir := world.None
		bestRun := 0
		for _, d := range world.Cardinals {
			if len(path) > 1 && d == last.Opposite() {
				continue
			}
			dx, dy := d.Delta()
			run := 0
			for run < cfg.MaxRun && interior(cur.X+dx*(run+1), cur.Y+dy*(run+1)) {
				run++
			}
			if run > bestRun {
				bestRun = run
				bestDir = d
			}
		}

		if bestDir == world.None || bestRun < 2 {
			last = world.None
			continue
		}
		walk := bestRun / 2
		if walk < 2 {
			walk = 2
		}
		dx, dy := bestDir.Delta()
		cur = Waypoint{X: cur.X + dx*walk, Y: cur.Y + dy*walk}
		if path[len(path)-1] != cur {
			path = append(path, cur)
		}
		last = bestDir
	}

	if len(path) < 3 {
		o := cfg.FallbackOffset
		for _, off := range []Waypoint{{X: 0, Y: -o}, {X: o, Y: 0}, {X: 0, Y: o}, {X: -o, Y: 0}} {
			p := Waypoint{X: start.X + off.X, Y: start.Y + off.Y}
			if interior(p.X, p.Y) {
				path = append(path, p)
			}
		}
	}
	return path
}
