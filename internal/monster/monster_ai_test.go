package monster

import (
	"math"
	"testing"

	"tilechase/internal/world"
)

func TestFrozenMonsterIsInert(t *testing.T) {
	g := boxGrid(10, 10)
	m := newTestMonster(Chaser, 4, 4)
	m.Dir = world.Right
	m.Freeze(0.1)

	m.Update(0.05, g, &MockTarget{X: 8, Y: 4})
	if m.X != 4 || m.Y != 4 {
		t.Fatalf("frozen monster moved to (%v,%v)", m.X, m.Y)
	}
	if !m.IsFrozen() {
		t.Fatal("should still be frozen")
	}
	m.Update(0.06, g, &MockTarget{X: 8, Y: 4})
	if m.IsFrozen() {
		t.Fatal("freeze should have expired")
	}
	m.Update(0.05, g, &MockTarget{X: 8, Y: 4})
	if m.X <= 4 {
		t.Errorf("thawed monster should move again, x=%v", m.X)
	}
}

// TestMovementClampsAtNextCenter uses a speed that would cover several tiles
// in one frame; the step must stop on the next tile center.
func TestMovementClampsAtNextCenter(t *testing.T) {
	cfg := testConfig()
	cfg.Chaser.Speed = 60
	g := boxGrid(12, 8)
	m := New(Chaser, world.Point{X: 3, Y: 3}, cfg, &scriptedRand{})
	m.Dir = world.Right

	m.Update(0.05, g, &MockTarget{X: 10, Y: 3})
	if m.X != 4 || m.Y != 3 {
		t.Fatalf("expected clamp at (4,3), got (%v,%v)", m.X, m.Y)
	}

	m.X = 4.4
	m.Update(0.05, g, &MockTarget{X: 10, Y: 3})
	if m.X != 5 {
		t.Errorf("mid-tile step should clamp at x=5, got %v", m.X)
	}
}

func TestBlockedMonsterRedecidesImmediately(t *testing.T) {
	g := boxGrid(10, 10)
	_ = g.SetTile(5, 4, world.Wall, world.None)
	m := newTestMonster(Chaser, 4, 4)
	m.Dir = world.Right

	m.Update(0.01, g, &MockTarget{X: 4, Y: 1})
	if m.Dir != world.Up {
		t.Fatalf("expected an immediate re-decision toward the target (up), got %s", m.Dir)
	}
	if m.X != 4 || m.Y != 4 {
		t.Errorf("blocked frame should not move, got (%v,%v)", m.X, m.Y)
	}
}

func TestDecisionCadence(t *testing.T) {
	g := boxGrid(10, 10)
	m := newTestMonster(Chaser, 4, 4)
	target := &MockTarget{X: 8, Y: 4}

	m.Update(0.1, g, target)
	if m.Dir != world.None {
		t.Fatalf("decided before the interval elapsed: %s", m.Dir)
	}
	m.Update(0.1, g, target)
	if m.Dir != world.Right {
		t.Fatalf("expected decision right after the interval, got %s", m.Dir)
	}
}

func TestMonstersRespectOneWayTiles(t *testing.T) {
	g := boxGrid(10, 5)
	_ = g.SetTile(5, 2, world.OneWay, world.Left)
	m := newTestMonster(Chaser, 4, 2)
	for _, d := range m.validDirs(g) {
		if d == world.Right {
			t.Fatal("entering a one-way tile against its arrow should be invalid")
		}
	}
}

func TestTileEntryAndRelocate(t *testing.T) {
	m := newTestMonster(Wanderer, 2, 2)
	if _, entered := m.TakeTileEntry(); entered {
		t.Fatal("spawn tile should not count as an entry")
	}
	m.X = 2.6
	tile, entered := m.TakeTileEntry()
	if !entered || tile != (world.Point{X: 3, Y: 2}) {
		t.Fatalf("expected entry into (3,2), got %v %v", tile, entered)
	}
	if _, entered := m.TakeTileEntry(); entered {
		t.Fatal("entry is reported once")
	}
	m.Relocate(world.Point{X: 7, Y: 7})
	if _, entered := m.TakeTileEntry(); entered {
		t.Fatal("relocation counts as already entered")
	}
}

func TestTerrainFactorScalesSpeed(t *testing.T) {
	g := boxGrid(20, 5)
	m := newTestMonster(Wanderer, 2, 2)
	m.SetTerrainFactor(0.5)
	m.Dir = world.Right
	m.Update(0.05, g, nil)
	if math.Abs(m.Speed-m.BaseSpeed()*0.5) > 1e-9 {
		t.Errorf("speed = %v, want %v", m.Speed, m.BaseSpeed()*0.5)
	}
	// Repeated frames on the same tile must not compound.
	m.Update(0.05, g, nil)
	if math.Abs(m.Speed-m.BaseSpeed()*0.5) > 1e-9 {
		t.Errorf("speed compounded to %v", m.Speed)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []Variant{Chaser, Wanderer, Hunter, Patroller, Phantom} {
		got, ok := ParseVariant(v.String())
		if !ok || got != v {
			t.Errorf("ParseVariant(%q) = %v, %v", v.String(), got, ok)
		}
	}
	if v, ok := ParseVariant("goblin"); ok || v != Wanderer {
		t.Errorf("unknown tag should fall back to wanderer, got %v %v", v, ok)
	}
}

func TestMonsterIDsAreUnique(t *testing.T) {
	a := newTestMonster(Chaser, 1, 1)
	b := newTestMonster(Chaser, 1, 1)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
}
