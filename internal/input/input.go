// Package input turns ebiten key state into a per-frame intended direction
// and a set of one-shot host commands.
package input

import (
	"tilechase/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// Update records the current state and reports a released-to-pressed edge.
func (k *KeyStateTracker) Update(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Bindings lists the keys for each action. Any key of a list triggers it.
type Bindings struct {
	Up      []ebiten.Key
	Down    []ebiten.Key
	Left    []ebiten.Key
	Right   []ebiten.Key
	Pause   []ebiten.Key
	Restart []ebiten.Key
	Next    []ebiten.Key
	Freeze  []ebiten.Key
	Quit    []ebiten.Key
}

// DefaultBindings maps arrows and WASD to movement.
func DefaultBindings() Bindings {
	return Bindings{
		Up:      []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
		Down:    []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Left:    []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:   []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Pause:   []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
		Restart: []ebiten.Key{ebiten.KeyR},
		Next:    []ebiten.Key{ebiten.KeyN, ebiten.KeyEnter},
		Freeze:  []ebiten.Key{ebiten.KeyF},
		Quit:    []ebiten.Key{ebiten.KeyQ},
	}
}

// Frame is the decoded input of one tick.
type Frame struct {
	Direction world.Direction
	Pause     bool
	Restart   bool
	Next      bool
	Freeze    bool
	Quit      bool
}

// Reader keeps edge state between frames. The direction is the most
// recently pressed movement key that is still held; releasing it falls back
// to any other held movement key.
type Reader struct {
	bindings Bindings
	trackers map[ebiten.Key]*KeyStateTracker
	last     world.Direction
}

func NewReader(b Bindings) *Reader {
	return &Reader{
		bindings: b,
		trackers: make(map[ebiten.Key]*KeyStateTracker),
	}
}

// Poll reads the live keyboard.
func (r *Reader) Poll() Frame {
	return r.Decode(ebiten.IsKeyPressed)
}

// Decode builds a frame from an arbitrary key state function.
func (r *Reader) Decode(pressed func(ebiten.Key) bool) Frame {
	var f Frame
	moves := map[world.Direction][]ebiten.Key{
		world.Up:    r.bindings.Up,
		world.Down:  r.bindings.Down,
		world.Left:  r.bindings.Left,
		world.Right: r.bindings.Right,
	}

	held := world.None
	for _, d := range world.Cardinals {
		edge, down := r.scan(moves[d], pressed)
		if edge {
			r.last = d
		}
		if down && held == world.None {
			held = d
		}
	}
	if r.last != world.None && !r.anyHeld(moves[r.last], pressed) {
		r.last = held
	}
	f.Direction = r.last

	f.Pause, _ = r.scan(r.bindings.Pause, pressed)
	f.Restart, _ = r.scan(r.bindings.Restart, pressed)
	f.Next, _ = r.scan(r.bindings.Next, pressed)
	f.Freeze, _ = r.scan(r.bindings.Freeze, pressed)
	f.Quit, _ = r.scan(r.bindings.Quit, pressed)
	return f
}

// scan updates every tracker of the list and reports whether any key went
// down this frame and whether any is held.
func (r *Reader) scan(keys []ebiten.Key, pressed func(ebiten.Key) bool) (edge, down bool) {
	for _, k := range keys {
		t, ok := r.trackers[k]
		if !ok {
			t = &KeyStateTracker{}
			r.trackers[k] = t
		}
		p := pressed(k)
		if t.Update(p) {
			edge = true
		}
		down = down || p
	}
	return edge, down
}

func (r *Reader) anyHeld(keys []ebiten.Key, pressed func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}
