package items

import (
	"strings"

	"tilechase/internal/config"
)

// ItemType is the pickup kind. Magnet and WallPass are timed effects,
// Shield is a single-hit charge.
type ItemType int

const (
	ItemMagnet ItemType = iota
	ItemShield
	ItemWallPass
)

func (t ItemType) String() string {
	switch t {
	case ItemMagnet:
		return "magnet"
	case ItemShield:
		return "shield"
	case ItemWallPass:
		return "wallpass"
	default:
		return "unknown"
	}
}

// ParseItemType accepts the tags used in level files.
func ParseItemType(tag string) (ItemType, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "magnet":
		return ItemMagnet, true
	case "shield":
		return ItemShield, true
	case "wallpass", "wall_pass":
		return ItemWallPass, true
	default:
		return ItemMagnet, false
	}
}

// EffectTarget receives item effects. The player controller implements it.
type EffectTarget interface {
	AddEffect(kind ItemType, duration float64)
	GrantShield()
}

// Applier mutates the target when an item is picked up.
type Applier func(target EffectTarget)

// ApplierFor returns the stock effect of an item kind.
func ApplierFor(kind ItemType, cfg config.ItemsConfig) Applier {
	switch kind {
	case ItemMagnet:
		return func(target EffectTarget) { target.AddEffect(ItemMagnet, cfg.MagnetDuration) }
	case ItemWallPass:
		return func(target EffectTarget) { target.AddEffect(ItemWallPass, cfg.WallPassDuration) }
	default:
		return func(target EffectTarget) { target.GrantShield() }
	}
}

// Item is a single-use pickup on a tile.
type Item struct {
	X, Y      int
	Type      ItemType
	Collected bool
	apply     Applier
}

func NewItem(x, y int, kind ItemType, cfg config.ItemsConfig) *Item {
	return &Item{X: x, Y: y, Type: kind, apply: ApplierFor(kind, cfg)}
}

// NewItemWithApplier builds an item with a custom effect.
func NewItemWithApplier(x, y int, kind ItemType, apply Applier) *Item {
	return &Item{X: x, Y: y, Type: kind, apply: apply}
}

// Collect marks the item collected and applies its effect. It returns false,
// and does nothing, when the item was already taken.
func (it *Item) Collect(target EffectTarget) bool {
	if it.Collected {
		return false
	}
	it.Collected = true
	if it.apply != nil {
		it.apply(target)
	}
	return true
}

// Dot is a score pellet. Collecting every dot completes the level.
type Dot struct {
	X, Y      int
	Collected bool
}

// Collect reports whether this call took the dot.
func (d *Dot) Collect() bool {
	if d.Collected {
		return false
	}
	d.Collected = true
	return true
}
