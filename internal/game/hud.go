package game

import (
	"fmt"
	"sort"
	"strings"
)

// HUDLines is the status bar text: level title, then lives, dots, time
// and active effects.
func (s *Snapshot) HUDLines() []string {
	title := fmt.Sprintf("Level %d", s.Level)
	if s.Name != "" {
		title += " - " + s.Name
	}
	status := fmt.Sprintf("Lives %d   Dots %d   Time %.1fs", s.Lives, s.Remaining, s.Elapsed)

	var effects []string
	for kind, left := range s.Player.Effects {
		effects = append(effects, fmt.Sprintf("%s %.1f", kind, left))
	}
	sort.Strings(effects)
	if s.Player.Shield {
		effects = append(effects, "shield")
	}
	if s.Player.Blinded {
		effects = append(effects, "blind")
	}
	if len(effects) > 0 {
		status += "   " + strings.Join(effects, ", ")
	}
	return []string{title, status}
}

// Banner is the centred message for non-playing states, empty while playing.
func (s *Snapshot) Banner() string {
	switch s.State {
	case StateCountdown:
		if s.Countdown > 0 {
			return fmt.Sprintf("%d", s.Countdown)
		}
		return "GO"
	case StatePaused:
		return "PAUSED - press P to resume"
	case StateLevelComplete:
		return "LEVEL COMPLETE - press N for the next level"
	case StateGameOver:
		return "GAME OVER - press R to retry"
	default:
		return ""
	}
}
