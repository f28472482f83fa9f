package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tilechase/internal/world"
)

var (
	// ErrInvalidLevel wraps every structural defect found in level data.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrNoLevel is returned for level numbers a provider cannot serve.
	ErrNoLevel = errors.New("no such level")
)

// LevelsPerChapter groups levels into chapters of six.
const LevelsPerChapter = 6

// EnemySpawn places one enemy by type tag.
type EnemySpawn struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// ItemSpawn places one pickup by type tag.
type ItemSpawn struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// PortalPair links two tiles both ways.
type PortalPair struct {
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
	X2 int `yaml:"x2"`
	Y2 int `yaml:"y2"`
}

// OneWay turns a tile into a one-way passage pointing in Direction.
type OneWay struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
}

// Patrol gives the enemy at index Enemy an explicit waypoint list.
type Patrol struct {
	Enemy     int           `yaml:"enemy"`
	Waypoints []world.Point `yaml:"waypoints"`
}

// Data is one level as authored or generated.
type Data struct {
	Number  int          `yaml:"number"`
	Name    string       `yaml:"name"`
	Chapter int          `yaml:"chapter"`
	Layout  []string     `yaml:"layout"`
	Spawn   world.Point  `yaml:"spawn"`
	Enemies []EnemySpawn `yaml:"enemies"`
	Items   []ItemSpawn  `yaml:"items"`
	Portals []PortalPair `yaml:"portals"`
	OneWays []OneWay     `yaml:"one_ways"`
	Patrols []Patrol     `yaml:"patrols"`
}

// Provider serves level data by number, starting at 1.
type Provider interface {
	Level(n int) (*Data, error)
}

// ChapterOf returns the chapter a level number belongs to.
func ChapterOf(n int) int {
	return (n-1)/LevelsPerChapter + 1
}

// InChapter returns the 1-based position of a level inside its chapter.
func InChapter(n int) int {
	return (n-1)%LevelsPerChapter + 1
}

// LoadFile reads a YAML level file.
func LoadFile(filename string) (*Data, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", filename, err)
	}
	if len(d.Layout) == 0 {
		return nil, fmt.Errorf("level %s: %w: empty layout", filename, ErrInvalidLevel)
	}
	return &d, nil
}

// Build turns the layout into a width x height grid and applies the one-way
// overrides and portal links on top of it.
func (d *Data) Build(legend *world.Legend, width, height int) (*world.Grid, error) {
	if legend == nil {
		legend = world.DefaultLegend()
	}
	g := legend.BuildGrid(d.Layout, width, height)

	for _, ow := range d.OneWays {
		dir, err := world.ParseDirection(ow.Direction)
		if err != nil || dir == world.None {
			return nil, fmt.Errorf("%w: one-way at (%d,%d) has direction %q", ErrInvalidLevel, ow.X, ow.Y, ow.Direction)
		}
		if err := g.SetTile(ow.X, ow.Y, world.OneWay, dir); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
		}
	}
	for _, pp := range d.Portals {
		a, b := world.Point{X: pp.X1, Y: pp.Y1}, world.Point{X: pp.X2, Y: pp.Y2}
		if err := g.LinkPortals(a, b); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
		}
	}
	for _, p := range d.Patrols {
		if p.Enemy < 0 || p.Enemy >= len(d.Enemies) {
			return nil, fmt.Errorf("%w: patrol for enemy %d, level has %d enemies", ErrInvalidLevel, p.Enemy, len(d.Enemies))
		}
	}
	return g, nil
}

// PatrolFor returns the explicit waypoints of the enemy at index i.
func (d *Data) PatrolFor(i int) ([]world.Point, bool) {
	for _, p := range d.Patrols {
		if p.Enemy == i && len(p.Waypoints) > 0 {
			return p.Waypoints, true
		}
	}
	return nil, false
}
