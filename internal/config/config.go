package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all simulation and host configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Player     PlayerConfig     `yaml:"player"`
	Monsters   MonstersConfig   `yaml:"monsters"`
	Items      ItemsConfig      `yaml:"items"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	TPS          int    `yaml:"tps"`
}

type WorldConfig struct {
	TileSize  int    `yaml:"tile_size"`
	MapWidth  int    `yaml:"map_width"`
	MapHeight int    `yaml:"map_height"`
	LevelDir  string `yaml:"level_dir"`
	Legend    string `yaml:"legend"`
}

type SimulationConfig struct {
	MaxDelta     float64 `yaml:"max_delta"`
	Countdown    float64 `yaml:"countdown"`
	HitCooldown  float64 `yaml:"hit_cooldown"`
	DefaultLives int     `yaml:"default_lives"`
	RandomSeed   int64   `yaml:"random_seed"`
}

type PlayerConfig struct {
	Speed            float64 `yaml:"speed"`
	CollisionRadius  float64 `yaml:"collision_radius"`
	TurnThreshold    float64 `yaml:"turn_threshold"`
	EdgeThreshold    float64 `yaml:"edge_threshold"`
	JumpSpeed        float64 `yaml:"jump_speed"`
	PortalCooldown   float64 `yaml:"portal_cooldown"`
	ShieldInvincible float64 `yaml:"shield_invincibility"`
	RescueRadius     int     `yaml:"rescue_radius"`
}

// MonstersConfig carries the shared decision substrate plus one block per variant.
type MonstersConfig struct {
	CollisionRadius   float64       `yaml:"collision_radius"`
	DecisionThreshold float64       `yaml:"decision_threshold"`
	Chaser            VariantConfig `yaml:"chaser"`
	Wanderer          VariantConfig `yaml:"wanderer"`
	Hunter            HunterConfig  `yaml:"hunter"`
	Patroller         PatrolConfig  `yaml:"patroller"`
	Phantom           PhantomConfig `yaml:"phantom"`
}

type VariantConfig struct {
	Speed         float64 `yaml:"speed"`
	MoveInterval  float64 `yaml:"move_interval"`
	KeepDirection float64 `yaml:"keep_direction"`
}

type HunterConfig struct {
	VariantConfig `yaml:",inline"`
	RushSpeed     float64 `yaml:"rush_speed"`
	RushDuration  float64 `yaml:"rush_duration"`
	RushCooldown  float64 `yaml:"rush_cooldown"`
}

type PatrolConfig struct {
	VariantConfig    `yaml:",inline"`
	ArrivalThreshold float64 `yaml:"arrival_threshold"`
	MinPathLength    int     `yaml:"min_path_length"`
	MaxSteps         int     `yaml:"max_steps"`
	MaxRun           int     `yaml:"max_run"`
	FallbackOffset   int     `yaml:"fallback_offset"`
}

type PhantomConfig struct {
	PatrolConfig      `yaml:",inline"`
	InvisibleSpeed    float64 `yaml:"invisible_speed"`
	Cycle             float64 `yaml:"cycle"`
	InvisibleDuration float64 `yaml:"invisible_duration"`
	Fade              float64 `yaml:"fade"`
}

type ItemsConfig struct {
	DotRadius        float64 `yaml:"dot_radius"`
	PickupRadius     float64 `yaml:"pickup_radius"`
	MagnetRange      float64 `yaml:"magnet_range"`
	MagnetDuration   float64 `yaml:"magnet_duration"`
	WallPassDuration float64 `yaml:"wall_pass_duration"`
}

type TerrainConfig struct {
	SpeedUpMultiplier  float64 `yaml:"speed_up_multiplier"`
	SlowDownMultiplier float64 `yaml:"slow_down_multiplier"`
	BlindDuration      float64 `yaml:"blind_duration"`
	BlindVisibleRange  int     `yaml:"blind_visible_range"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the stock tuning. LoadConfig unmarshals on top of it,
// so a config file only needs the keys it changes.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  720,
			ScreenHeight: 600,
			WindowTitle:  "Tile Chase",
			Resizable:    true,
			TPS:          120,
		},
		World: WorldConfig{
			TileSize:  36,
			MapWidth:  20,
			MapHeight: 15,
			LevelDir:  "assets/levels",
		},
		Simulation: SimulationConfig{
			MaxDelta:     0.05,
			Countdown:    3.0,
			HitCooldown:  1.5,
			DefaultLives: 3,
		},
		Player: PlayerConfig{
			Speed:            5.0,
			CollisionRadius:  16.0 / 36.0,
			TurnThreshold:    0.15,
			EdgeThreshold:    0.1,
			JumpSpeed:        3.0,
			PortalCooldown:   0.5,
			ShieldInvincible: 1.0,
			RescueRadius:     5,
		},
		Monsters: MonstersConfig{
			CollisionRadius:   16.0 / 36.0,
			DecisionThreshold: 0.1,
			Chaser:            VariantConfig{Speed: 3.5, MoveInterval: 0.2},
			Wanderer:          VariantConfig{Speed: 3.0, MoveInterval: 0.3, KeepDirection: 0.7},
			Hunter: HunterConfig{
				VariantConfig: VariantConfig{Speed: 2.0, MoveInterval: 0.15, KeepDirection: 0.8},
				RushSpeed:     7.5,
				RushDuration:  2.0,
				RushCooldown:  1.5,
			},
			Patroller: PatrolConfig{
				VariantConfig:    VariantConfig{Speed: 3.0, MoveInterval: 0.1, KeepDirection: 0.7},
				ArrivalThreshold: 0.2,
				MinPathLength:    12,
				MaxSteps:         30,
				MaxRun:           8,
				FallbackOffset:   3,
			},
			Phantom: PhantomConfig{
				PatrolConfig: PatrolConfig{
					VariantConfig:    VariantConfig{Speed: 2.0, MoveInterval: 0.2, KeepDirection: 0.8},
					ArrivalThreshold: 0.2,
					MinPathLength:    12,
					MaxSteps:         30,
					MaxRun:           8,
					FallbackOffset:   4,
				},
				InvisibleSpeed:    3.0,
				Cycle:             3.0,
				InvisibleDuration: 1.5,
				Fade:              0.3,
			},
		},
		Items: ItemsConfig{
			DotRadius:        0.5,
			PickupRadius:     0.6,
			MagnetRange:      3.0,
			MagnetDuration:   5.0,
			WallPassDuration: 3.0,
		},
		Terrain: TerrainConfig{
			SpeedUpMultiplier:  1.8,
			SlowDownMultiplier: 0.5,
			BlindDuration:      2.0,
			BlindVisibleRange:  3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads the configuration from a YAML file over Default()
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values that would stall or destabilise the simulation.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("simulation.max_delta", c.Simulation.MaxDelta)
	positive("player.speed", c.Player.Speed)
	positive("player.collision_radius", c.Player.CollisionRadius)
	positive("player.turn_threshold", c.Player.TurnThreshold)
	positive("player.edge_threshold", c.Player.EdgeThreshold)
	positive("player.jump_speed", c.Player.JumpSpeed)
	positive("monsters.collision_radius", c.Monsters.CollisionRadius)
	positive("monsters.decision_threshold", c.Monsters.DecisionThreshold)
	for name, v := range map[string]VariantConfig{
		"chaser":    c.Monsters.Chaser,
		"wanderer":  c.Monsters.Wanderer,
		"hunter":    c.Monsters.Hunter.VariantConfig,
		"patroller": c.Monsters.Patroller.VariantConfig,
		"phantom":   c.Monsters.Phantom.VariantConfig,
	} {
		positive("monsters."+name+".speed", v.Speed)
		positive("monsters."+name+".move_interval", v.MoveInterval)
		if v.KeepDirection < 0 || v.KeepDirection > 1 {
			errs = append(errs, fmt.Errorf("monsters.%s.keep_direction must be within [0,1], got %v", name, v.KeepDirection))
		}
	}
	positive("monsters.hunter.rush_speed", c.Monsters.Hunter.RushSpeed)
	positive("monsters.phantom.invisible_speed", c.Monsters.Phantom.InvisibleSpeed)
	if ph := c.Monsters.Phantom; ph.InvisibleDuration <= 0 || ph.InvisibleDuration >= ph.Cycle {
		errs = append(errs, fmt.Errorf("monsters.phantom.invisible_duration must be within (0, cycle), got %v", ph.InvisibleDuration))
	}
	if ph := c.Monsters.Phantom; ph.Fade < 0 || 2*ph.Fade > ph.InvisibleDuration {
		errs = append(errs, fmt.Errorf("monsters.phantom.fade must fit twice into invisible_duration, got %v", ph.Fade))
	}
	if c.Display.TPS < 1 {
		errs = append(errs, fmt.Errorf("display.tps must be at least 1, got %d", c.Display.TPS))
	}
	if c.World.TileSize < 1 {
		errs = append(errs, fmt.Errorf("world.tile_size must be at least 1, got %d", c.World.TileSize))
	}
	if c.Player.RescueRadius < 1 {
		errs = append(errs, fmt.Errorf("player.rescue_radius must be at least 1, got %d", c.Player.RescueRadius))
	}
	if c.World.MapWidth < 3 || c.World.MapHeight < 3 {
		errs = append(errs, fmt.Errorf("world map must be at least 3x3, got %dx%d", c.World.MapWidth, c.World.MapHeight))
	}
	return errors.Join(errs...)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}
