package player

import (
	"math"
	"testing"

	"tilechase/internal/config"
	"tilechase/internal/items"
	"tilechase/internal/world"
)

func openGrid(w, h int) *world.Grid {
	return world.NewGrid(w, h)
}

func newTestPlayer(g *world.Grid, x, y int) *Player {
	return New(world.Point{X: x, Y: y}, g, config.Default().Player)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

// TestMoveHalfTileInOneStep covers a player at (5,5) heading right at 5
// tiles/s for 0.1s: half a tile, no snapping.
func TestMoveHalfTileInOneStep(t *testing.T) {
	p := newTestPlayer(openGrid(12, 12), 5, 5)
	p.SetNextDirection(world.Right)

	p.Update(0.1)

	if !near(p.X, 5.5) || !near(p.Y, 5) {
		t.Fatalf("expected (5.5,5), got (%v,%v)", p.X, p.Y)
	}
	if p.Heading() != world.Right {
		t.Errorf("expected to keep heading right, got %s", p.Heading())
	}
}

func TestStopsAtWallWithoutEnteringIt(t *testing.T) {
	g := openGrid(12, 12)
	_ = g.SetTile(8, 5, world.Wall, world.None)
	p := newTestPlayer(g, 5, 5)
	p.SetNextDirection(world.Right)

	for i := 0; i < 60; i++ {
		p.Update(0.05)
		tile := p.Tile()
		if !g.CanOccupy(float64(tile.X), float64(tile.Y), false) {
			t.Fatalf("frame %d: player on impassable tile %v at x=%v", i, tile, p.X)
		}
	}
	if p.X != 7 || p.Y != 5 {
		t.Errorf("expected to rest at (7,5), got (%v,%v)", p.X, p.Y)
	}
	if p.Heading() != world.None {
		t.Errorf("expected to stop, heading %s", p.Heading())
	}
	if p.NextDirection() != world.None {
		t.Errorf("buffered direction into the wall should be cleared")
	}
}

// TestTurnsOnlyNearTileCenter feeds small steps and checks that the heading
// changes only when the pre-step position is within the turn threshold.
func TestTurnsOnlyNearTileCenter(t *testing.T) {
	cfg := config.Default().Player
	g := openGrid(20, 12)
	p := New(world.Point{X: 2, Y: 5}, g, cfg)
	p.SetNextDirection(world.Right)
	p.X = 2.3

	p.SetNextDirection(world.Down)
	turned := false
	for i := 0; i < 200 && !turned; i++ {
		before := p.CenterDistance()
		p.Update(0.008)
		if p.Heading() == world.Down {
			turned = true
			if before >= cfg.TurnThreshold {
				t.Fatalf("turned at center distance %v (threshold %v)", before, cfg.TurnThreshold)
			}
			if p.X != math.Round(p.X) {
				t.Errorf("turn should align x to the grid, got %v", p.X)
			}
		} else if before < cfg.TurnThreshold-1e-9 {
			t.Fatalf("step %d: open turn refused at center distance %v", i, before)
		}
	}
	if !turned {
		t.Fatal("player never turned")
	}
}

func TestBufferedTurnIntoWallIsHeld(t *testing.T) {
	g := openGrid(12, 12)
	for x := 0; x < 12; x++ {
		_ = g.SetTile(x, 6, world.Wall, world.None)
	}
	p := newTestPlayer(g, 3, 5)
	p.SetNextDirection(world.Right)
	p.Update(0.05)
	p.SetNextDirection(world.Down)

	for i := 0; i < 10; i++ {
		p.Update(0.05)
	}
	if p.Heading() != world.Right {
		t.Errorf("turn into a wall must not be taken, heading %s", p.Heading())
	}
	if p.NextDirection() != world.Down {
		t.Errorf("buffer should survive until the turn is legal")
	}
}

func TestOneWayEntry(t *testing.T) {
	g := openGrid(12, 12)
	_ = g.SetTile(6, 5, world.OneWay, world.Left)

	blocked := newTestPlayer(g, 5, 5)
	blocked.SetNextDirection(world.Right)
	for i := 0; i < 20; i++ {
		blocked.Update(0.05)
	}
	if blocked.X != 5 {
		t.Errorf("entering against the arrow should be blocked, x=%v", blocked.X)
	}

	allowed := newTestPlayer(g, 7, 5)
	allowed.SetNextDirection(world.Left)
	for i := 0; i < 8; i++ {
		allowed.Update(0.05)
	}
	if allowed.X >= 6 {
		t.Errorf("entering along the arrow should pass through, x=%v", allowed.X)
	}
}

func TestIceSlideBlocksSteeringUntilStopped(t *testing.T) {
	g := openGrid(12, 12)
	_ = g.SetTile(9, 5, world.Wall, world.None)
	p := newTestPlayer(g, 5, 5)
	p.SetNextDirection(world.Right)
	p.Update(0.02)
	p.SetOnIce(true)
	if p.IceDirection() != world.Right {
		t.Fatalf("ice direction should be captured on entry, got %s", p.IceDirection())
	}

	p.SetNextDirection(world.Up)
	for i := 0; i < 5; i++ {
		p.SetOnIce(true)
		p.Update(0.05)
	}
	if p.Heading() != world.Right || p.Y != 5 {
		t.Fatalf("steering should be ignored while sliding, heading %s y=%v", p.Heading(), p.Y)
	}

	for i := 0; i < 40; i++ {
		p.SetOnIce(true)
		p.Update(0.05)
	}
	// The slide ends against the wall so the buffered turn goes through.
	if p.Heading() != world.Up {
		t.Errorf("expected turn after the slide stopped, heading %s", p.Heading())
	}
	if p.X != 8 {
		t.Errorf("expected slide to stop at x=8, got %v", p.X)
	}
}

func TestSpeedModifierResetsEachFrame(t *testing.T) {
	p := newTestPlayer(openGrid(20, 5), 2, 2)
	p.SetNextDirection(world.Right)

	p.ApplySpeedModifier(1.8)
	p.Update(0.05)
	if !near(p.X, 2+5*1.8*0.05) {
		t.Fatalf("boosted step wrong: x=%v", p.X)
	}
	if p.SpeedModifier() != 1 {
		t.Fatalf("modifier should reset after update, got %v", p.SpeedModifier())
	}
	x := p.X
	p.Update(0.05)
	if !near(p.X-x, 0.25) {
		t.Errorf("unboosted step wrong: moved %v", p.X-x)
	}
}

func TestJumpArc(t *testing.T) {
	p := newTestPlayer(openGrid(12, 12), 2, 5)
	p.StartJump(world.Point{X: 6, Y: 5})

	for i := 0; i < 6; i++ {
		p.Update(0.05)
		if !p.IsJumping() || p.X != 2 {
			t.Fatalf("step %d: expected mid-jump at x=2, jumping=%v x=%v", i, p.IsJumping(), p.X)
		}
	}
	p.Update(0.05)
	if p.IsJumping() {
		t.Fatal("jump should complete once progress reaches 1")
	}
	if p.X != 6 || p.Y != 5 {
		t.Errorf("expected landing at (6,5), got (%v,%v)", p.X, p.Y)
	}
}

func TestWallPassRescue(t *testing.T) {
	g := openGrid(12, 12)
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 6; x++ {
			_ = g.SetTile(x, y, world.Wall, world.None)
		}
	}
	p := newTestPlayer(g, 4, 4)
	p.AddEffect(items.ItemWallPass, 0.08)

	p.Update(0.05)
	if p.X != 4 || p.Y != 4 {
		t.Fatal("should stay put while wall pass is active")
	}
	p.Update(0.05)
	tile := p.Tile()
	if !g.CanOccupy(float64(tile.X), float64(tile.Y), false) {
		t.Fatalf("rescue left the player in a wall at %v", tile)
	}
	if p.HasEffect(items.ItemWallPass) {
		t.Error("wall pass should have expired")
	}
	if p.TakeRescueFailure() {
		t.Error("rescue should have succeeded")
	}
}

func TestWallPassRescueFailureIsReported(t *testing.T) {
	g := openGrid(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			_ = g.SetTile(x, y, world.Wall, world.None)
		}
	}
	_ = g.SetTile(19, 19, world.Floor, world.None)
	p := newTestPlayer(g, 5, 5)
	p.AddEffect(items.ItemWallPass, 0.01)

	p.Update(0.05)
	if p.X != 5 || p.Y != 5 {
		t.Errorf("player should remain embedded, got (%v,%v)", p.X, p.Y)
	}
	if !p.TakeRescueFailure() {
		t.Fatal("expected rescue failure to be reported")
	}
	if p.TakeRescueFailure() {
		t.Error("failure should be reported once")
	}
}

func TestWallPassLetsPlayerCrossWalls(t *testing.T) {
	g := openGrid(12, 12)
	_ = g.SetTile(6, 5, world.Wall, world.None)
	p := newTestPlayer(g, 5, 5)
	p.AddEffect(items.ItemWallPass, 3)
	p.SetNextDirection(world.Right)
	for i := 0; i < 8; i++ {
		p.Update(0.05)
	}
	if p.X <= 6 {
		t.Errorf("expected to pass through the wall, x=%v", p.X)
	}
}

// TestWrapsAcrossGridEdges runs off each edge of an open 6x3 grid at 0.25
// tiles per frame and checks the player comes in on the opposite side.
func TestWrapsAcrossGridEdges(t *testing.T) {
	tests := []struct {
		name         string
		start        world.Point
		dir          world.Direction
		frames       int
		wantX, wantY float64
	}{
		{"left", world.Point{X: 0, Y: 1}, world.Left, 3, 5.25, 1},
		{"right", world.Point{X: 5, Y: 1}, world.Right, 2, -0.5, 1},
		{"up", world.Point{X: 2, Y: 0}, world.Up, 3, 2, 2.25},
		{"down", world.Point{X: 2, Y: 2}, world.Down, 2, 2, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := openGrid(6, 3)
			p := newTestPlayer(g, tt.start.X, tt.start.Y)
			p.SetNextDirection(tt.dir)
			for i := 0; i < tt.frames; i++ {
				p.Update(0.05)
				tile := p.Tile()
				if !g.InBounds(tile.X, tile.Y) {
					t.Fatalf("frame %d: rounded tile %v left the grid", i, tile)
				}
			}
			if !near(p.X, tt.wantX) || !near(p.Y, tt.wantY) {
				t.Errorf("expected (%v,%v), got (%v,%v)", tt.wantX, tt.wantY, p.X, p.Y)
			}
			if p.Heading() != tt.dir {
				t.Errorf("heading %s after wrap, want %s", p.Heading(), tt.dir)
			}
		})
	}
}

func TestWrapRefusesWallOnOppositeEdge(t *testing.T) {
	g := openGrid(6, 3)
	_ = g.SetTile(5, 1, world.Wall, world.None)
	p := newTestPlayer(g, 0, 1)
	p.SetNextDirection(world.Left)

	for i := 0; i < 10; i++ {
		p.Update(0.05)
		tile := p.Tile()
		if !g.CanOccupy(float64(tile.X), float64(tile.Y), false) {
			t.Fatalf("frame %d: player on impassable tile %v", i, tile)
		}
	}
	if p.X != 0 || p.Y != 1 {
		t.Errorf("expected to stay at (0,1), got (%v,%v)", p.X, p.Y)
	}
	if p.Heading() != world.None {
		t.Errorf("expected to stop, heading %s", p.Heading())
	}
}

// TestOneWaySidewaysTurnStops pins the one-way rule for a player already on
// the tile: a sideways move still rounds onto the one-way tile, and entry
// from that side is refused, so the player halts.
func TestOneWaySidewaysTurnStops(t *testing.T) {
	g := openGrid(12, 12)
	_ = g.SetTile(5, 5, world.OneWay, world.Right)
	p := newTestPlayer(g, 5, 5)
	p.SetNextDirection(world.Up)

	p.Update(0.01)
	if p.X != 5 || p.Y != 5 {
		t.Errorf("expected to stay at (5,5), got (%v,%v)", p.X, p.Y)
	}
	if p.Heading() != world.None {
		t.Errorf("expected to stop, heading %s", p.Heading())
	}
}

func TestShieldAndInvincibility(t *testing.T) {
	p := newTestPlayer(openGrid(5, 5), 2, 2)
	if p.ConsumeShield() {
		t.Fatal("no shield to consume")
	}
	p.AddEffect(items.ItemShield, 0)
	p.GrantShield() // does not stack
	if !p.ConsumeShield() {
		t.Fatal("shield should absorb")
	}
	if p.ConsumeShield() {
		t.Fatal("shield is single use")
	}
	if !p.IsInvincible() {
		t.Fatal("absorbing a hit starts invincibility")
	}
	for i := 0; i < 21; i++ {
		p.Update(0.05)
	}
	if p.IsInvincible() {
		t.Error("invincibility should expire after a second")
	}
}

func TestEffectDurationLatestWins(t *testing.T) {
	p := newTestPlayer(openGrid(5, 5), 2, 2)
	p.AddEffect(items.ItemMagnet, 5)
	p.Update(0.05)
	p.AddEffect(items.ItemMagnet, 1)
	if got := p.EffectRemaining(items.ItemMagnet); got != 1 {
		t.Errorf("expected latest duration 1, got %v", got)
	}
}

func TestBlindTimer(t *testing.T) {
	p := newTestPlayer(openGrid(5, 5), 2, 2)
	p.ApplyBlind(0.1)
	p.Update(0.05)
	if !p.IsBlinded() {
		t.Fatal("should still be blind")
	}
	p.Update(0.05)
	p.Update(0.01)
	if p.IsBlinded() {
		t.Error("blindness should wear off")
	}
}

func TestPortalCooldown(t *testing.T) {
	p := newTestPlayer(openGrid(8, 8), 1, 1)
	p.TeleportTo(world.Point{X: 6, Y: 6})
	if p.X != 6 || p.Y != 6 {
		t.Fatalf("teleport should land exactly on the target, got (%v,%v)", p.X, p.Y)
	}
	if p.CanTeleport() {
		t.Fatal("cooldown should block immediate re-teleport")
	}
	for i := 0; i < 11; i++ {
		p.Update(0.05)
	}
	if !p.CanTeleport() {
		t.Error("cooldown should have expired")
	}
}
