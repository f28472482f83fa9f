package game

import (
	"strings"
	"testing"

	"tilechase/internal/items"
)

func TestSnapshotHUDLines(t *testing.T) {
	snap := &Snapshot{
		Level:     4,
		Name:      "Crossroads",
		Lives:     2,
		Remaining: 17,
		Elapsed:   12.3,
		Player: PlayerView{
			Effects: map[items.ItemType]float64{items.ItemWallPass: 2.5, items.ItemMagnet: 1},
			Shield:  true,
		},
	}
	lines := snap.HUDLines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "Level 4 - Crossroads" {
		t.Errorf("title = %q", lines[0])
	}
	for _, want := range []string{"Lives 2", "Dots 17", "Time 12.3s", "magnet 1.0, wallpass 2.5", "shield"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("status %q is missing %q", lines[1], want)
		}
	}
}

func TestSnapshotBanner(t *testing.T) {
	tests := []struct {
		state     State
		countdown int
		want      string
	}{
		{StatePlaying, 0, ""},
		{StateCountdown, 3, "3"},
		{StateCountdown, 0, "GO"},
		{StatePaused, 0, "PAUSED"},
		{StateLevelComplete, 0, "LEVEL COMPLETE"},
		{StateGameOver, 0, "GAME OVER"},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			got := (&Snapshot{State: tt.state, Countdown: tt.countdown}).Banner()
			if tt.want == "" {
				if got != "" {
					t.Errorf("got %q, want no banner", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("got %q, want prefix %q", got, tt.want)
			}
		})
	}
}
