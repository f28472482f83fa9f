package monster

import (
	"math/rand"

	"tilechase/internal/config"
	"tilechase/internal/world"
)

// MockTarget stands in for the player.
type MockTarget struct {
	X, Y float64
}

func (t *MockTarget) Position() (float64, float64) { return t.X, t.Y }
func (t *MockTarget) Tile() world.Point {
	return world.Point{X: int(t.X + 0.5), Y: int(t.Y + 0.5)}
}

// scriptedRand replays fixed outputs so decisions are predictable.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

func testConfig() config.MonstersConfig {
	return config.Default().Monsters
}

func newTestMonster(v Variant, x, y int) *Monster {
	return New(v, world.Point{X: x, Y: y}, testConfig(), rand.New(rand.NewSource(1)))
}

// boxGrid returns a grid with a wall border, like every stock level.
func boxGrid(w, h int) *world.Grid {
	g := world.NewGrid(w, h)
	for x := 0; x < w; x++ {
		_ = g.SetTile(x, 0, world.Wall, world.None)
		_ = g.SetTile(x, h-1, world.Wall, world.None)
	}
	for y := 0; y < h; y++ {
		_ = g.SetTile(0, y, world.Wall, world.None)
		_ = g.SetTile(w-1, y, world.Wall, world.None)
	}
	return g
}
