package game

import (
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"

	"tilechase/internal/config"
	"tilechase/internal/level"
	"tilechase/internal/world"
)

// MockProvider serves fixed level data.
type MockProvider struct {
	levels map[int]*level.Data
}

func (p *MockProvider) Level(n int) (*level.Data, error) {
	d, ok := p.levels[n]
	if !ok {
		return nil, fmt.Errorf("mock level %d: %w", n, level.ErrNoLevel)
	}
	cp := *d
	return &cp, nil
}

// recorder collects events pushed to the listener.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// testConfig sizes the map to the layout and skips the countdown.
func testConfig(layout []string) *config.Config {
	cfg := config.Default()
	cfg.World.MapWidth = len(layout[0])
	cfg.World.MapHeight = len(layout)
	cfg.Simulation.Countdown = 0
	return cfg
}

func newTestSession(t *testing.T, d *level.Data, mutate func(*config.Config), opts ...Option) *Session {
	t.Helper()
	cfg := testConfig(d.Layout)
	if mutate != nil {
		mutate(cfg)
	}
	if d.Number == 0 {
		d.Number = 1
	}
	opts = append([]Option{WithLogger(quietLogger()), WithRand(rand.New(rand.NewSource(1)))}, opts...)
	s := New(cfg, &MockProvider{levels: map[int]*level.Data{d.Number: d}}, opts...)
	if err := s.Load(d.Number); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func openRoom() []string {
	return []string{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	}
}

func dotAt(snap Snapshot, p world.Point) (DotView, bool) {
	for _, d := range snap.Dots {
		if d.X == p.X && d.Y == p.Y {
			return d, true
		}
	}
	return DotView{}, false
}
