package monster

import (
	"math"
	"math/rand"
	"testing"

	"tilechase/internal/world"
)

func newTestPhantom() *Monster {
	cfg := testConfig()
	cfg.Phantom.Cycle = 3.0
	cfg.Phantom.InvisibleDuration = 1.5
	cfg.Phantom.Fade = 0.25
	return New(Phantom, world.Point{X: 4, Y: 4}, cfg, rand.New(rand.NewSource(7)))
}

func assertOpacity(t *testing.T, m *Monster, want float64) {
	t.Helper()
	if math.Abs(m.Opacity()-want) > 1e-3 {
		t.Fatalf("opacity = %v, want %v (timer %v)", m.Opacity(), want, m.Phantom.PhaseTimer)
	}
}

func TestPhantomVisibilityCycle(t *testing.T) {
	m := newTestPhantom()

	for i := 0; i < 5; i++ {
		tickVisibility(m, 0.25, senses{})
	}
	if m.IsInvisible() {
		t.Fatal("still inside the visible phase")
	}
	assertOpacity(t, m, 1)

	tickVisibility(m, 0.25, senses{})
	if !m.IsInvisible() {
		t.Fatal("expected the hidden phase after 1.5s")
	}

	tickVisibility(m, 0.125, senses{})
	assertOpacity(t, m, 0.5)
	tickVisibility(m, 0.125, senses{})
	assertOpacity(t, m, 0)

	for m.Phantom.PhaseTimer < 1.25 {
		tickVisibility(m, 0.125, senses{})
		assertOpacity(t, m, 0)
	}
	tickVisibility(m, 0.125, senses{})
	assertOpacity(t, m, 0.5)

	tickVisibility(m, 0.125, senses{})
	if m.IsInvisible() {
		t.Fatal("hidden phase should end after its duration")
	}
	assertOpacity(t, m, 1)
}

func TestPhantomSpeedFollowsPhase(t *testing.T) {
	m := newTestPhantom()
	if m.modeSpeed() != m.BaseSpeed() {
		t.Errorf("visible speed = %v", m.modeSpeed())
	}
	m.Phantom.Invisible = true
	if m.modeSpeed() != testConfig().Phantom.InvisibleSpeed {
		t.Errorf("hidden speed = %v", m.modeSpeed())
	}
}

func TestPhantomHuntsWhileHidden(t *testing.T) {
	g := boxGrid(12, 10)
	m := newTestPhantom()
	m.SetPatrolPath([]Waypoint{{X: 4, Y: 4}, {X: 8, Y: 4}})
	target := &MockTarget{X: 4, Y: 8}

	m.Phantom.Invisible = true
	decidePhantom(m, senses{grid: g, target: target})
	if m.Dir != world.Down {
		t.Errorf("hidden phantom should head for the player, got %s", m.Dir)
	}

	m.Phantom.Invisible = false
	m.Dir = world.None
	decidePhantom(m, senses{grid: g, target: target})
	if m.Dir != world.Right {
		t.Errorf("visible phantom should patrol, got %s", m.Dir)
	}
}

func TestNonPhantomsAreOpaque(t *testing.T) {
	m := newTestMonster(Chaser, 1, 1)
	m.Phantom.Opacity = 0
	if m.Opacity() != 1 {
		t.Error("only phantoms fade")
	}
}
