package monster

import "tilechase/internal/world"

// Helpers for the small direction sets monsters decide over (search: dir-set).

func containsDir(dirs []world.Direction, d world.Direction) bool {
	for _, c := range dirs {
		if c == d {
			return true
		}
	}
	return false
}

// withoutReverse drops the reverse of heading unless it is the only way out.
func withoutReverse(dirs []world.Direction, heading world.Direction) []world.Direction {
	if len(dirs) <= 1 {
		return dirs
	}
	reverse := heading.Opposite()
	out := make([]world.Direction, 0, len(dirs))
	for _, d := range dirs {
		if d != reverse || reverse == world.None {
			out = append(out, d)
		}
	}
	return out
}

// bestByDot picks the direction best aligned with (dx, dy). Only positive
// scores win, so with nothing ahead the first candidate is kept.
func bestByDot(dirs []world.Direction, dx, dy float64) world.Direction {
	if len(dirs) == 0 {
		return world.None
	}
	best := dirs[0]
	bestScore := 0.0
	for _, d := range dirs {
		ux, uy := d.Delta()
		score := float64(ux)*dx + float64(uy)*dy
		if score > bestScore {
			bestScore = score
			best = d
		}
	}
	return best
}
