package world

// TileKind is the passability and effect class of a tile.
type TileKind int

const (
	Floor TileKind = iota
	Wall
	Portal
	OneWay
	Ice
	JumpPad
	SpeedUp
	SlowDown
	BlindTrap
)

var kindNames = map[TileKind]string{
	Floor:     "floor",
	Wall:      "wall",
	Portal:    "portal",
	OneWay:    "one_way",
	Ice:       "ice",
	JumpPad:   "jump_pad",
	SpeedUp:   "speed_up",
	SlowDown:  "slow_down",
	BlindTrap: "blind_trap",
}

func (k TileKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Passable reports whether entities may stand on the kind. Direction rules
// for OneWay are applied by the grid, not here.
func (k TileKind) Passable() bool {
	return k != Wall
}

// ParseTileKind maps a legend key such as "jump_pad" to its kind.
func ParseTileKind(name string) (TileKind, bool) {
	for kind, n := range kindNames {
		if n == name {
			return kind, true
		}
	}
	return Floor, false
}

// NoLink marks a tile without a portal partner.
const NoLink = -1

// Tile is one grid cell. Linked holds the flat grid index of the partner
// portal, so tiles never point at each other directly.
type Tile struct {
	X, Y   int
	Kind   TileKind
	Facing Direction
	Linked int
}

// OutOfBounds is returned for queries outside the grid.
var OutOfBounds = Tile{X: -1, Y: -1, Kind: Wall, Linked: NoLink}

func (t Tile) IsPortal() bool { return t.Kind == Portal }
func (t Tile) HasLink() bool  { return t.Kind == Portal && t.Linked != NoLink }
func (t Tile) Passable() bool { return t.Kind.Passable() }
func (t Tile) Point() Point   { return Point{X: t.X, Y: t.Y} }

// Point is an integer grid coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}
