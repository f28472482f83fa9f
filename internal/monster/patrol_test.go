package monster

import (
	"testing"

	"tilechase/internal/mathutil"
	"tilechase/internal/world"
)

func TestPatrolIndexPingPongs(t *testing.T) {
	tests := []struct {
		name string
		size int
		want []int
	}{
		{"single stop", 1, []int{0, 0, 0, 0}},
		{"two stops", 2, []int{1, 0, 1, 0}},
		{"three stops", 3, []int{1, 2, 1, 0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := PatrolState{Path: make([]Waypoint, tt.size), Forward: true}
			for i, want := range tt.want {
				ps.advance()
				if ps.Index != want {
					t.Fatalf("step %d: index %d, want %d", i, ps.Index, want)
				}
				if ps.Index < 0 || ps.Index >= tt.size {
					t.Fatalf("index %d out of range", ps.Index)
				}
			}
		})
	}
}

func TestSetPatrolPathStartsNearest(t *testing.T) {
	m := newTestMonster(Patroller, 5, 5)
	m.SetPatrolPath([]Waypoint{{X: 1, Y: 1}, {X: 5, Y: 6}, {X: 9, Y: 9}})
	if m.Patrol.Index != 1 {
		t.Errorf("index = %d, want 1", m.Patrol.Index)
	}

	c := newTestMonster(Chaser, 5, 5)
	c.SetPatrolPath([]Waypoint{{X: 1, Y: 1}})
	if len(c.Patrol.Path) != 0 {
		t.Error("non-patrolling variants ignore paths")
	}
}

func TestPatrolHeadsForNextWaypoint(t *testing.T) {
	g := boxGrid(12, 10)
	m := newTestMonster(Patroller, 4, 4)
	m.SetPatrolPath([]Waypoint{{X: 4, Y: 4}, {X: 8, Y: 4}})

	decidePatrol(m, senses{grid: g})
	if m.Patrol.Index != 1 {
		t.Fatalf("arrival should advance the index, got %d", m.Patrol.Index)
	}
	if m.Dir != world.Right {
		t.Errorf("expected right toward (8,4), got %s", m.Dir)
	}
}

func TestPatrolWithoutPathWanders(t *testing.T) {
	g := boxGrid(12, 10)
	m := New(Patroller, world.Point{X: 4, Y: 4}, testConfig(), &scriptedRand{ints: []int{3}})
	decidePatrol(m, senses{grid: g})
	if m.Dir != world.Right {
		t.Errorf("got %s, want the randomly picked right", m.Dir)
	}
}

func TestGeneratePatrolPathOpenGrid(t *testing.T) {
	g := boxGrid(20, 15)
	cfg := testConfig().Patroller
	start := world.Point{X: 5, Y: 5}
	path := GeneratePatrolPath(g, start, cfg)

	if len(path) < 3 || len(path) > cfg.MinPathLength {
		t.Fatalf("path length %d", len(path))
	}
	if path[0] != start {
		t.Errorf("path starts at %v", path[0])
	}
	for i, p := range path {
		if p.X < 1 || p.Y < 1 || p.X > 18 || p.Y > 13 || g.IsTileBlocking(p.X, p.Y) {
			t.Errorf("waypoint %d %v outside the interior", i, p)
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		if prev.X != p.X && prev.Y != p.Y {
			t.Errorf("waypoints %v -> %v are not axis aligned", prev, p)
		}
		if run := mathutil.IntAbs(prev.X-p.X) + mathutil.IntAbs(prev.Y-p.Y); run < 2 {
			t.Errorf("segment %v -> %v shorter than two tiles", prev, p)
		}
	}
}

func TestGeneratePatrolPathFallsBackToOffsets(t *testing.T) {
	g := boxGrid(20, 15)
	start := world.Point{X: 8, Y: 7}
	for _, d := range world.Cardinals {
		n := start.Add(d)
		_ = g.SetTile(n.X, n.Y, world.Wall, world.None)
	}
	cfg := testConfig().Patroller
	path := GeneratePatrolPath(g, start, cfg)

	want := []Waypoint{start, {X: 8, Y: 4}, {X: 11, Y: 7}, {X: 8, Y: 10}, {X: 5, Y: 7}}
	if len(path) != len(want) {
		t.Fatalf("got %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("waypoint %d = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestGeneratedPathIsInstalled(t *testing.T) {
	g := boxGrid(20, 15)
	m := newTestMonster(Phantom, 5, 5)
	m.GeneratePatrolPath(g)
	if len(m.Patrol.Path) < 3 || m.Patrol.Index != 0 {
		t.Errorf("path=%v index=%d", m.Patrol.Path, m.Patrol.Index)
	}
}
