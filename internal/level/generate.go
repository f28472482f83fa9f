package level

import (
	"fmt"
	"strings"
)

// MaxGeneratedLevel is the last level Generated serves: five chapters.
const MaxGeneratedLevel = 30

// Generated builds the stock levels procedurally. The grid size matches the
// configured map size; the layouts assume the stock 20x15 map.
type Generated struct {
	Cols, Rows int
}

func NewGenerated(cols, rows int) *Generated {
	return &Generated{Cols: cols, Rows: rows}
}

// Level returns generated level n: a wall pattern chosen by n mod 5,
// chapter-dependent special tiles and an enemy/item roster that grows with
// the level number.
func (g *Generated) Level(n int) (*Data, error) {
	if n < 1 || n > MaxGeneratedLevel {
		return nil, fmt.Errorf("generated level %d: %w", n, ErrNoLevel)
	}
	d := &Data{
		Number:  n,
		Name:    fmt.Sprintf("Level %d", n),
		Chapter: ChapterOf(n),
		Layout:  g.layout(n),
	}
	d.Spawn.X, d.Spawn.Y = 1, 1
	if d.Chapter == 1 && n >= 4 {
		d.Portals = append(d.Portals, PortalPair{X1: 1, Y1: g.Rows - 2, X2: g.Cols - 2, Y2: 1})
	}
	g.addEnemies(d)
	g.addItems(d)
	return d, nil
}

func (g *Generated) layout(n int) []string {
	rows := make([]string, g.Rows)
	var sb strings.Builder
	for y := 0; y < g.Rows; y++ {
		sb.Reset()
		for x := 0; x < g.Cols; x++ {
			switch {
			case x == 0 || y == 0 || x == g.Cols-1 || y == g.Rows-1:
				sb.WriteByte('#')
			case g.isWall(x, y, n):
				sb.WriteByte('#')
			default:
				sb.WriteByte(g.special(x, y, n))
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// isWall keeps the 3x3 corner around the spawn clear.
func (g *Generated) isWall(x, y, n int) bool {
	if x <= 2 && y <= 2 {
		return false
	}
	sq := func(v int) int { return v * v }
	switch n % 5 {
	case 0:
		return (x%4 == 2 && y%3 != 0) || (y%4 == 2 && x%3 != 0)
	case 1:
		return (x+y)%5 == 0 && x > 3 && y > 3
	case 2:
		return ((x%3 == 0 && y%2 == 0) || (x%2 == 0 && y%3 == 0)) && x > 2 && y > 2
	case 3:
		return (x%4 == 0 || y%4 == 0) && x > 2 && y > 2 && x < g.Cols-2 && y < g.Rows-2
	default:
		return sq(x-5)+sq(y-7) < 9 || sq(x-14)+sq(y-7) < 9
	}
}

// special returns the layout glyph for a non-wall interior tile.
func (g *Generated) special(x, y, n int) byte {
	chapter := ChapterOf(n)
	if chapter == 1 {
		if n >= 4 && ((x == 1 && y == g.Rows-2) || (x == g.Cols-2 && y == 1)) {
			return 'P'
		}
		return '.'
	}
	if y == 7 && x > 5 && x < 15 {
		switch {
		case x < 8:
			return 'I'
		case x < 12:
			return '+'
		default:
			return '-'
		}
	}
	if x == 10 && y > 3 && y < 12 {
		return 'J'
	}
	return '.'
}

func (g *Generated) addEnemies(d *Data) {
	n := d.Number
	if n == 1 {
		return
	}
	chapter, lic := ChapterOf(n), InChapter(n)
	cols, rows := g.Cols, g.Rows
	add := func(kind string, x, y int) {
		d.Enemies = append(d.Enemies, EnemySpawn{Type: kind, X: x, Y: y})
	}

	add("chaser", cols-3, rows-3)
	if n >= 4 {
		add("chaser", cols/2, rows/2)
	}
	if n >= 3 {
		add("wanderer", 5, rows-3)
	}
	if n >= 5 {
		add("wanderer", cols-5, 3)
	}
	if chapter >= 2 && lic >= 2 {
		add("patroller", 8, 5)
	}
	if chapter >= 2 && lic >= 4 {
		add("patroller", 12, 10)
	}
	if chapter >= 3 && lic >= 2 {
		add("hunter", cols-4, rows/2)
	}
	if chapter >= 3 && lic >= 5 {
		add("hunter", 4, rows/2)
	}
	if chapter >= 4 {
		add("phantom", cols/2, 3)
	}
	if chapter >= 4 && lic >= 4 {
		add("phantom", cols/2, rows-4)
	}
	if chapter == 5 {
		add("chaser", 3, 3)
		add("hunter", cols-6, 6)
	}
}

func (g *Generated) addItems(d *Data) {
	chapter, lic := ChapterOf(d.Number), InChapter(d.Number)
	if chapter < 3 {
		return
	}
	cols, rows := g.Cols, g.Rows
	add := func(kind string, x, y int) {
		d.Items = append(d.Items, ItemSpawn{Type: kind, X: x, Y: y})
	}

	add("magnet", cols/2, rows/2)
	if lic >= 3 {
		add("shield", 3, rows-4)
	}
	if lic >= 5 {
		add("wallpass", cols-4, 4)
	}
	if chapter == 5 {
		add("shield", cols-3, rows-3)
		if lic >= 4 {
			add("magnet", 4, 4)
		}
	}
}
