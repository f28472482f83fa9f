package world

import (
	"fmt"

	"tilechase/internal/mathutil"
)

// Grid is a fixed width x height tile array stored row-major. Topology is
// set while a level is built and only read during simulation.
type Grid struct {
	width, height int
	tiles         []Tile
}

// NewGrid creates a grid filled with Floor tiles.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, tiles: make([]Tile, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles[y*width+x] = Tile{X: x, Y: y, Kind: Floor, Linked: NoLink}
		}
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is a tile of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Index returns the flat handle for (x, y), or NoLink when out of bounds.
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		return NoLink
	}
	return y*g.width + x
}

// PointOf converts a handle back to coordinates.
func (g *Grid) PointOf(handle int) Point {
	return Point{X: handle % g.width, Y: handle / g.width}
}

// TileAt returns the tile at (x, y). Out-of-bounds lookups return the
// OutOfBounds sentinel and false.
func (g *Grid) TileAt(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return OutOfBounds, false
	}
	return g.tiles[y*g.width+x], true
}

// KindAt is TileAt without the tile copy; out of bounds reads as Wall.
func (g *Grid) KindAt(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return Wall
	}
	return g.tiles[y*g.width+x].Kind
}

// SetTile changes the kind and facing of a tile. Placing a non-portal over
// a linked portal detaches both ends.
func (g *Grid) SetTile(x, y int, kind TileKind, facing Direction) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("tile (%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	}
	t := &g.tiles[y*g.width+x]
	if t.Linked != NoLink && kind != Portal {
		g.tiles[t.Linked].Linked = NoLink
		t.Linked = NoLink
	}
	t.Kind = kind
	t.Facing = facing
	return nil
}

// CanOccupy reports whether an entity whose position rounds to (x, y) may
// stand there. Out of bounds is never passable, wall pass or not.
func (g *Grid) CanOccupy(x, y float64, wallPass bool) bool {
	tx, ty := mathutil.Round(x), mathutil.Round(y)
	if !g.InBounds(tx, ty) {
		return false
	}
	if wallPass {
		return true
	}
	return g.tiles[ty*g.width+tx].Kind.Passable()
}

// CanEnterFrom is CanOccupy plus the one-way rule: a OneWay tile only
// admits entities arriving from the side opposite its facing.
func (g *Grid) CanEnterFrom(x, y float64, from Direction, wallPass bool) bool {
	if !g.CanOccupy(x, y, wallPass) {
		return false
	}
	t := g.tiles[mathutil.Round(y)*g.width+mathutil.Round(x)]
	if t.Kind == OneWay {
		return from == t.Facing.Opposite()
	}
	return true
}

// LinkPortals pairs two tiles. Both ends become Portal tiles and any earlier
// partner of either end is detached.
func (g *Grid) LinkPortals(a, b Point) error {
	ia, ib := g.Index(a.X, a.Y), g.Index(b.X, b.Y)
	if ia == NoLink || ib == NoLink {
		return fmt.Errorf("portal pair (%d,%d)-(%d,%d) outside %dx%d grid", a.X, a.Y, b.X, b.Y, g.width, g.height)
	}
	if ia == ib {
		return fmt.Errorf("portal (%d,%d) cannot link to itself", a.X, a.Y)
	}
	for _, i := range []int{ia, ib} {
		if old := g.tiles[i].Linked; old != NoLink {
			g.tiles[old].Linked = NoLink
		}
		g.tiles[i].Kind = Portal
	}
	g.tiles[ia].Linked = ib
	g.tiles[ib].Linked = ia
	return nil
}

// Linked returns the partner of a portal tile.
func (g *Grid) Linked(t Tile) (Tile, bool) {
	if !t.HasLink() || t.Linked < 0 || t.Linked >= len(g.tiles) {
		return OutOfBounds, false
	}
	return g.tiles[t.Linked], true
}

// NearestPassable searches square rings of radius 1..maxRadius around
// (x, y), visiting only the perimeter of each ring, and returns the first
// passable in-bounds tile. Wall pass is ignored.
func (g *Grid) NearestPassable(x, y, maxRadius int) (Point, bool) {
	for r := 1; r <= maxRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if mathutil.IntAbs(dx) != r && mathutil.IntAbs(dy) != r {
					continue
				}
				nx, ny := x+dx, y+dy
				if g.InBounds(nx, ny) && g.tiles[ny*g.width+nx].Kind.Passable() {
					return Point{X: nx, Y: ny}, true
				}
			}
		}
	}
	return Point{}, false
}

// Walk calls fn for every tile in row-major order.
func (g *Grid) Walk(fn func(t Tile)) {
	for _, t := range g.tiles {
		fn(t)
	}
}

// Count returns how many tiles have the given kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, t := range g.tiles {
		if t.Kind == kind {
			n++
		}
	}
	return n
}

// IsTileBlocking satisfies collision.TileChecker.
func (g *Grid) IsTileBlocking(tileX, tileY int) bool {
	return !g.KindAt(tileX, tileY).Passable()
}

// GetWorldBounds satisfies collision.TileChecker.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.width, g.height
}
