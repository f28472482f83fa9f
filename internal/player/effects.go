package player

import (
	"tilechase/internal/items"
	"tilechase/internal/world"
)

// AddEffect starts or restarts a timed effect. Durations do not stack:
// the latest pickup wins. Shield pickups route to GrantShield.
func (p *Player) AddEffect(kind items.ItemType, duration float64) {
	if kind == items.ItemShield {
		p.GrantShield()
		return
	}
	p.effects[kind] = duration
}

// HasEffect reports whether a timed effect (or the shield) is active.
func (p *Player) HasEffect(kind items.ItemType) bool {
	if kind == items.ItemShield {
		return p.hasShield
	}
	_, ok := p.effects[kind]
	return ok
}

// EffectRemaining returns the seconds left on a timed effect.
func (p *Player) EffectRemaining(kind items.ItemType) float64 {
	return p.effects[kind]
}

// ActiveEffects copies the timed effects for snapshots.
func (p *Player) ActiveEffects() map[items.ItemType]float64 {
	out := make(map[items.ItemType]float64, len(p.effects))
	for k, v := range p.effects {
		out[k] = v
	}
	return out
}

func (p *Player) GrantShield()    { p.hasShield = true }
func (p *Player) HasShield() bool { return p.hasShield }

// ConsumeShield spends the shield on a hit and opens the invincibility window.
func (p *Player) ConsumeShield() bool {
	if !p.hasShield {
		return false
	}
	p.hasShield = false
	p.invincibleTimer = p.cfg.ShieldInvincible
	return true
}

func (p *Player) IsInvincible() bool { return p.invincibleTimer > 0 }

// ApplyBlind (re)starts the blind timer.
func (p *Player) ApplyBlind(duration float64) {
	p.blinded = true
	p.blindTimer = duration
}

func (p *Player) IsBlinded() bool { return p.blinded }

// ApplySpeedModifier sets this frame's speed multiplier. Update resets it.
func (p *Player) ApplySpeedModifier(modifier float64) {
	p.speedModifier = modifier
}

func (p *Player) SpeedModifier() float64 { return p.speedModifier }

// SetOnIce records ice contact. The slide direction is captured only on the
// frame the player steps onto ice, and dropped when leaving it.
func (p *Player) SetOnIce(onIce bool) {
	was := p.onIce
	p.onIce = onIce
	switch {
	case onIce && !was && p.Dir != world.None:
		p.iceDir = p.Dir
	case !onIce && was:
		p.iceDir = world.None
	}
}

func (p *Player) OnIce() bool                    { return p.onIce }
func (p *Player) IceDirection() world.Direction { return p.iceDir }

// StartJump begins an arc toward target. Position stays put until landing.
func (p *Player) StartJump(target world.Point) {
	p.jumping = true
	p.jumpTarget = target
	p.jumpProgress = 0
}

func (p *Player) IsJumping() bool         { return p.jumping }
func (p *Player) JumpTarget() world.Point { return p.jumpTarget }
func (p *Player) JumpProgress() float64   { return p.jumpProgress }

func (p *Player) CanTeleport() bool { return p.portalCooldown <= 0 }

// TeleportTo relocates the player to a tile center and arms the portal cooldown.
func (p *Player) TeleportTo(target world.Point) {
	p.SetPosition(target)
	p.portalCooldown = p.cfg.PortalCooldown
}

func (p *Player) NextDirection() world.Direction { return p.nextDir }
func (p *Player) Heading() world.Direction       { return p.Dir }

// Facing is the direction to draw the player with, kept while idle.
func (p *Player) Facing() world.Direction {
	if p.Dir != world.None {
		return p.Dir
	}
	return p.lastFacing
}

// TakeRescueFailure reports, once, that a wall-pass expiry left the player
// inside a wall with no free tile in reach.
func (p *Player) TakeRescueFailure() bool {
	failed := p.rescueFailed
	p.rescueFailed = false
	return failed
}
