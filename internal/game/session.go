package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"tilechase/internal/config"
	"tilechase/internal/items"
	"tilechase/internal/level"
	"tilechase/internal/monster"
	"tilechase/internal/player"
	"tilechase/internal/terrain"
	"tilechase/internal/world"
)

// Session runs one level at a time: it owns the grid, the player, the
// monsters and the pickups, and advances them in a fixed order each frame.
type Session struct {
	cfg      *config.Config
	provider level.Provider
	legend   *world.Legend
	log      logrus.FieldLogger
	listener Listener
	rng      monster.Rand

	level    *level.Data
	grid     *world.Grid
	terrain  *terrain.Resolver
	player   *player.Player
	monsters []*monster.Monster
	dots     []*items.Dot
	items    []*items.Item

	state          State
	countdown      int
	countdownTimer float64
	hitCooldown    float64
	lives          int
	elapsed        float64
	remaining      int
	intent         world.Direction
	lastPlayerTile world.Point

	events []Event
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) { s.log = log }
}

func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithRand injects the random source monsters decide with.
func WithRand(rng monster.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

func WithLegend(l *world.Legend) Option {
	return func(s *Session) { s.legend = l }
}

// New creates a session with no level loaded. Call Load before Update.
func New(cfg *config.Config, provider level.Provider, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		provider: provider,
		legend:   world.DefaultLegend(),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := cfg.Simulation.RandomSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	return s
}

// Load starts level n from scratch: full lives, zero time, countdown.
func (s *Session) Load(n int) error {
	d, err := s.provider.Level(n)
	if err != nil {
		return fmt.Errorf("load level %d: %w", n, err)
	}
	if err := s.build(d); err != nil {
		return fmt.Errorf("build level %d: %w", n, err)
	}

	s.level = d
	s.lives = s.cfg.Simulation.DefaultLives
	s.elapsed = 0
	s.hitCooldown = 0
	s.intent = world.None
	s.countdownTimer = 0
	s.countdown = int(s.cfg.Simulation.Countdown)
	s.state = StateCountdown
	if s.countdown <= 0 {
		s.state = StatePlaying
	}

	s.log.WithFields(logrus.Fields{
		"level":    d.Number,
		"name":     d.Name,
		"chapter":  d.Chapter,
		"dots":     s.remaining,
		"monsters": len(s.monsters),
	}).Info("level started")
	s.events = nil
	s.emit(Event{Kind: EventLevelStarted, Value: d.Number})
	return nil
}

// Restart reloads the current level.
func (s *Session) Restart() error {
	s.mustBeLoaded("Restart")
	return s.Load(s.level.Number)
}

// NextLevel loads the level after the current one. level.ErrNoLevel in the
// error chain means the last level has been beaten.
func (s *Session) NextLevel() error {
	s.mustBeLoaded("NextLevel")
	return s.Load(s.level.Number + 1)
}

// TogglePause switches between Playing and Paused. Other phases ignore it.
func (s *Session) TogglePause() {
	switch s.state {
	case StatePlaying:
		s.state = StatePaused
	case StatePaused:
		s.state = StatePlaying
	}
}

// FreezeMonsters makes every monster inert for duration seconds.
func (s *Session) FreezeMonsters(duration float64) {
	s.mustBeLoaded("FreezeMonsters")
	for _, m := range s.monsters {
		m.Freeze(duration)
	}
}

// SetIntent records this frame's input direction. None means no input.
// Intents given while paused or after the level ended are dropped.
func (s *Session) SetIntent(d world.Direction) {
	if !s.state.AcceptsInput() {
		s.intent = world.None
		return
	}
	s.intent = d
}

func (s *Session) State() State       { return s.state }
func (s *Session) Lives() int         { return s.lives }
func (s *Session) Elapsed() float64   { return s.elapsed }
func (s *Session) RemainingDots() int { return s.remaining }

// LevelNumber is the loaded level, or 0 before the first Load.
func (s *Session) LevelNumber() int {
	if s.level == nil {
		return 0
	}
	return s.level.Number
}

// Player exposes the controller for hosts and tests.
func (s *Session) Player() *player.Player {
	s.mustBeLoaded("Player")
	return s.player
}

func (s *Session) Monsters() []*monster.Monster { return s.monsters }
func (s *Session) Grid() *world.Grid            { return s.grid }

// Update advances the session by dt seconds, clamped to the configured
// maximum step, and returns the events of the frame.
func (s *Session) Update(dt float64) []Event {
	s.mustBeLoaded("Update")
	s.events = nil

	if dt > s.cfg.Simulation.MaxDelta {
		dt = s.cfg.Simulation.MaxDelta
	}
	if dt < 0 {
		dt = 0
	}

	switch s.state {
	case StateCountdown:
		s.consumeIntent()
		s.updateCountdown(dt)
	case StatePlaying:
		s.updatePlaying(dt)
	}
	return s.events
}

func (s *Session) consumeIntent() {
	if s.intent != world.None {
		s.player.SetNextDirection(s.intent)
		s.intent = world.None
	}
}

func (s *Session) updateCountdown(dt float64) {
	s.countdownTimer += dt
	if s.countdownTimer < 1.0 {
		return
	}
	s.countdownTimer = 0
	s.countdown--
	s.emit(Event{Kind: EventCountdownTick, Value: s.countdown})
	if s.countdown <= 0 {
		s.state = StatePlaying
	}
}

func (s *Session) updatePlaying(dt float64) {
	s.elapsed += dt
	if s.hitCooldown > 0 {
		s.hitCooldown -= dt
	}

	s.consumeIntent()
	s.player.Update(dt)
	if s.player.TakeRescueFailure() {
		tile := s.player.Tile()
		s.log.WithFields(logrus.Fields{"x": tile.X, "y": tile.Y}).Warn("wall pass expired with no free tile in reach")
		s.emit(Event{Kind: EventRescueFailed, At: tile})
	}
	s.stepPlayerTerrain()
	s.updateMonsters(dt)

	s.collectDots()
	s.collectItems()
	if s.hitCooldown <= 0 && s.checkHazards() {
		s.loseLife()
	}

	switch {
	case s.state == StateGameOver:
	case s.remaining == 0:
		s.state = StateLevelComplete
		s.log.WithFields(logrus.Fields{"level": s.level.Number, "time": s.elapsed}).Info("level complete")
		s.emit(Event{Kind: EventLevelComplete, Value: s.level.Number})
	}
}

// stepPlayerTerrain runs the tile under the player. Effects that persist
// while standing (ice, speed, blindness) are reported on entry only.
func (s *Session) stepPlayerTerrain() {
	if s.player.IsJumping() {
		return
	}
	entered := s.player.Tile() != s.lastPlayerTile
	eff := s.terrain.StepPlayer(s.player)
	tile := s.player.Tile()
	if eff != terrain.EffectNone && (entered || eff == terrain.EffectJump || eff == terrain.EffectTeleport) {
		s.emit(Event{Kind: EventTerrainTriggered, Effect: eff, At: tile})
	}
	s.lastPlayerTile = tile
}

func (s *Session) updateMonsters(dt float64) {
	for _, m := range s.monsters {
		m.Update(dt, s.grid, s.player)
		if tile, ok := m.TakeTileEntry(); ok {
			s.terrain.StepMover(m, tile)
		}
	}
}

func (s *Session) loseLife() {
	s.lives--
	s.hitCooldown = s.cfg.Simulation.HitCooldown
	s.emit(Event{Kind: EventLifeLost, Value: s.lives})
	if s.lives > 0 {
		return
	}
	s.state = StateGameOver
	s.log.WithFields(logrus.Fields{"level": s.level.Number, "time": s.elapsed}).Info("game over")
	s.emit(Event{Kind: EventGameOver, Value: s.level.Number})
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
	if s.listener != nil {
		s.listener.OnEvent(e)
	}
}

func (s *Session) mustBeLoaded(op string) {
	if s.level == nil {
		panic("game: " + op + " called before a level was loaded")
	}
}
