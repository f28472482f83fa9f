package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLegendBuildGrid(t *testing.T) {
	layout := []string{
		"#####",
		"#P.I#",
		"#J+-#",
		"#BO?W",
	}
	g := DefaultLegend().BuildGrid(layout, 5, 5)

	checks := map[Point]TileKind{
		{0, 0}: Wall,
		{1, 1}: Portal,
		{2, 1}: Floor,
		{3, 1}: Ice,
		{1, 2}: JumpPad,
		{2, 2}: SpeedUp,
		{3, 2}: SlowDown,
		{1, 3}: BlindTrap,
		{2, 3}: OneWay,
		{3, 3}: Floor, // unknown glyph
		{4, 3}: Wall,
		{2, 4}: Floor, // row missing from layout
	}
	for p, want := range checks {
		if got := g.KindAt(p.X, p.Y); got != want {
			t.Errorf("tile %v: got %s, want %s", p, got, want)
		}
	}
}

func TestLoadLegendOverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legend.yaml")
	content := `tiles:
  wall: ["X"]
  ice: ["~", "I"]
fallback: floor
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := LoadLegend(path)
	if err != nil {
		t.Fatalf("LoadLegend: %v", err)
	}
	if l.Kind('X') != Wall || l.Glyph(Wall) != 'X' {
		t.Errorf("wall override not applied")
	}
	if l.Kind('~') != Ice || l.Kind('I') != Ice || l.Glyph(Ice) != '~' {
		t.Errorf("ice override not applied")
	}
	if l.Kind('P') != Portal {
		t.Errorf("portal default glyph lost")
	}
	// '#' is no longer a wall: the file remapped walls.
	if l.Kind('#') != Floor {
		t.Errorf("'#' should fall back to floor, got %s", l.Kind('#'))
	}
}

func TestLoadLegendRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legend.yaml")
	if err := os.WriteFile(path, []byte("tiles:\n  lava: [\"L\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLegend(path); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestRenderRoundTrip(t *testing.T) {
	layout := []string{"#.P", "I+B"}
	l := DefaultLegend()
	rows := l.Render(l.BuildGrid(layout, 3, 2))
	for i := range layout {
		if rows[i] != layout[i] {
			t.Errorf("row %d: got %q, want %q", i, rows[i], layout[i])
		}
	}
}
