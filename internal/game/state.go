package game

// State is the session's phase.
type State int

const (
	StateCountdown State = iota
	StatePlaying
	StatePaused
	StateLevelComplete
	StateGameOver
)

var stateNames = [...]string{
	StateCountdown:     "countdown",
	StatePlaying:       "playing",
	StatePaused:        "paused",
	StateLevelComplete: "level_complete",
	StateGameOver:      "game_over",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// AcceptsInput reports whether direction intents reach the player.
func (s State) AcceptsInput() bool {
	return s == StatePlaying || s == StateCountdown
}

// Finished reports a terminal phase; only Restart or NextLevel leave it.
func (s State) Finished() bool {
	return s == StateLevelComplete || s == StateGameOver
}
