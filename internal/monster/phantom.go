package monster

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"tilechase/internal/world"
)

type fadeStage int

const (
	fadeOut fadeStage = iota
	fadeIn
)

// fadeTween drives the Phantom's opacity ramp at either end of its hidden phase.
type fadeTween struct {
	stage fadeStage
	tween *gween.Tween
}

func newFade(stage fadeStage, duration float64) *fadeTween {
	from, to := float32(1), float32(0)
	if stage == fadeIn {
		from, to = 0, 1
	}
	return &fadeTween{stage: stage, tween: gween.New(from, to, float32(duration), ease.Linear)}
}

func (f *fadeTween) advance(dt float64) float64 {
	v, _ := f.tween.Update(float32(dt))
	return float64(v)
}

// tickVisibility cycles the Phantom between its visible and hidden phases.
func tickVisibility(m *Monster, dt float64, _ senses) {
	cfg := m.cfg.Phantom
	p := &m.Phantom
	p.PhaseTimer += dt

	if !p.Invisible {
		p.Opacity = 1.0
		if p.PhaseTimer >= cfg.Cycle-cfg.InvisibleDuration {
			p.Invisible = true
			p.PhaseTimer = 0
			m.phantomFade = nil
			if cfg.Fade > 0 {
				m.phantomFade = newFade(fadeOut, cfg.Fade)
			}
		}
		return
	}

	if p.PhaseTimer >= cfg.InvisibleDuration {
		p.Invisible = false
		p.PhaseTimer = 0
		p.Opacity = 1.0
		m.phantomFade = nil
		return
	}

	switch {
	case cfg.Fade <= 0:
		p.Opacity = 0
	case p.PhaseTimer < cfg.Fade:
		if m.phantomFade == nil || m.phantomFade.stage != fadeOut {
			m.phantomFade = newFade(fadeOut, cfg.Fade)
			p.Opacity = m.phantomFade.advance(p.PhaseTimer)
			return
		}
		p.Opacity = m.phantomFade.advance(dt)
	case p.PhaseTimer > cfg.InvisibleDuration-cfg.Fade:
		if m.phantomFade == nil || m.phantomFade.stage != fadeIn {
			m.phantomFade = newFade(fadeIn, cfg.Fade)
			p.Opacity = m.phantomFade.advance(p.PhaseTimer - (cfg.InvisibleDuration - cfg.Fade))
			return
		}
		p.Opacity = m.phantomFade.advance(dt)
	default:
		p.Opacity = 0
	}
}

// decidePhantom hunts the live player while hidden and patrols otherwise.
func decidePhantom(m *Monster, s senses) {
	if tx, ty, ok := s.targetPosition(); ok && m.Phantom.Invisible {
		dirs := m.forwardDirs(s.grid)
		if len(dirs) == 0 {
			m.Dir = world.None
			return
		}
		m.Dir = bestByDot(dirs, tx-m.X, ty-m.Y)
		return
	}
	m.patrol(s.grid)
}
