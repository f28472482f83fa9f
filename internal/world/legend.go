package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Legend maps layout glyphs to tile kinds, and kinds back to a display glyph.
type Legend struct {
	glyphToKind map[rune]TileKind
	kindToGlyph map[TileKind]rune
	fallback    TileKind
}

// legendFile is the YAML shape: kind name -> glyphs, first glyph is the display one.
type legendFile struct {
	Tiles    map[string][]string `yaml:"tiles"`
	Fallback string              `yaml:"fallback"`
}

// DefaultLegend is the stock layout alphabet. Unknown glyphs are Floor.
func DefaultLegend() *Legend {
	l := newLegend()
	l.add(Wall, '#', 'W')
	l.add(Floor, '.', ' ')
	l.add(Portal, 'P')
	l.add(OneWay, 'O')
	l.add(Ice, 'I')
	l.add(JumpPad, 'J')
	l.add(SpeedUp, '+')
	l.add(SlowDown, '-')
	l.add(BlindTrap, 'B')
	return l
}

func newLegend() *Legend {
	return &Legend{
		glyphToKind: make(map[rune]TileKind),
		kindToGlyph: make(map[TileKind]rune),
		fallback:    Floor,
	}
}

func (l *Legend) add(kind TileKind, glyphs ...rune) {
	for i, g := range glyphs {
		l.glyphToKind[g] = kind
		if i == 0 {
			if _, taken := l.kindToGlyph[kind]; !taken {
				l.kindToGlyph[kind] = g
			}
		}
	}
}

// LoadLegend reads a glyph legend from YAML. Kinds missing from the file keep
// their default glyphs.
func LoadLegend(filename string) (*Legend, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read legend file: %w", err)
	}

	var lf legendFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse legend: %w", err)
	}

	defaults := DefaultLegend()
	l := newLegend()
	for name, glyphs := range lf.Tiles {
		kind, ok := ParseTileKind(name)
		if !ok {
			return nil, fmt.Errorf("legend %s: unknown tile kind %q", filename, name)
		}
		runes := make([]rune, 0, len(glyphs))
		for _, g := range glyphs {
			r := []rune(g)
			if len(r) != 1 {
				return nil, fmt.Errorf("legend %s: glyph %q for %s must be a single character", filename, g, name)
			}
			runes = append(runes, r[0])
		}
		l.add(kind, runes...)
	}
	for kind, g := range defaults.kindToGlyph {
		if _, mapped := l.kindToGlyph[kind]; mapped {
			continue
		}
		if _, claimed := l.glyphToKind[g]; !claimed {
			l.add(kind, g)
		}
	}
	if lf.Fallback != "" {
		kind, ok := ParseTileKind(lf.Fallback)
		if !ok {
			return nil, fmt.Errorf("legend %s: unknown fallback kind %q", filename, lf.Fallback)
		}
		l.fallback = kind
	}
	return l, nil
}

// Kind resolves a glyph; anything unmapped becomes the fallback kind.
func (l *Legend) Kind(glyph rune) TileKind {
	if kind, ok := l.glyphToKind[glyph]; ok {
		return kind
	}
	return l.fallback
}

// Glyph returns the display glyph for a kind.
func (l *Legend) Glyph(kind TileKind) rune {
	if g, ok := l.kindToGlyph[kind]; ok {
		return g
	}
	return '?'
}

// BuildGrid parses a text layout into a width x height grid. Rows and columns
// beyond the grid are ignored and missing cells stay Floor.
func (l *Legend) BuildGrid(layout []string, width, height int) *Grid {
	g := NewGrid(width, height)
	for y := 0; y < len(layout) && y < height; y++ {
		x := 0
		for _, r := range layout[y] {
			if x >= width {
				break
			}
			g.tiles[y*width+x].Kind = l.Kind(r)
			x++
		}
	}
	return g
}

// Render turns a grid back into layout rows.
func (l *Legend) Render(g *Grid) []string {
	rows := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		line := make([]rune, g.width)
		for x := 0; x < g.width; x++ {
			line[x] = l.Glyph(g.tiles[y*g.width+x].Kind)
		}
		rows[y] = string(line)
	}
	return rows
}
