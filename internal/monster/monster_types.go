package monster

import "strings"

// Variant selects a monster's decision strategy and its state block.
type Variant int

const (
	Chaser Variant = iota
	Wanderer
	Hunter
	Patroller
	Phantom
)

var variantNames = [...]string{
	Chaser:    "chaser",
	Wanderer:  "wanderer",
	Hunter:    "hunter",
	Patroller: "patroller",
	Phantom:   "phantom",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "unknown"
}

// ParseVariant maps a level file tag to a variant. Unknown tags report false
// and return Wanderer, which level builders use as the fallback.
func ParseVariant(tag string) (Variant, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for i, name := range variantNames {
		if name == tag {
			return Variant(i), true
		}
	}
	return Wanderer, false
}

// Patrols reports whether the variant walks a waypoint list.
func (v Variant) Patrols() bool {
	return v == Patroller || v == Phantom
}

// HunterState is the rush bookkeeping of a Hunter.
type HunterState struct {
	Rushing      bool
	RushTimer    float64
	RushCooldown float64
}

// PatrolState is the waypoint walk shared by Patroller and Phantom.
type PatrolState struct {
	Path    []Waypoint
	Index   int
	Forward bool
}

// PhantomState is the visibility cycle of a Phantom.
type PhantomState struct {
	Invisible  bool
	PhaseTimer float64
	Opacity    float64
}
