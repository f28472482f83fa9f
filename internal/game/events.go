package game

import (
	"tilechase/internal/items"
	"tilechase/internal/terrain"
	"tilechase/internal/world"
)

// EventKind classifies what happened during a frame.
type EventKind int

const (
	EventDotCollected EventKind = iota
	EventItemCollected
	EventHazardHit
	EventLifeLost
	EventGameOver
	EventLevelComplete
	EventTerrainTriggered
	EventRescueFailed
	EventCountdownTick
	EventLevelStarted
)

var eventNames = [...]string{
	EventDotCollected:     "dot_collected",
	EventItemCollected:    "item_collected",
	EventHazardHit:        "hazard_hit",
	EventLifeLost:         "life_lost",
	EventGameOver:         "game_over",
	EventLevelComplete:    "level_complete",
	EventTerrainTriggered: "terrain_triggered",
	EventRescueFailed:     "rescue_failed",
	EventCountdownTick:    "countdown_tick",
	EventLevelStarted:     "level_started",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one notable state change. Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	At       world.Point
	Item     items.ItemType
	Effect   terrain.Effect
	Absorbed bool
	Monster  string
	Value    int
}

// Listener receives events as they happen, for audio and UI collaborators.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Listeners fans each event out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnEvent(e Event) {
	for _, l := range ls {
		l.OnEvent(e)
	}
}
