package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := writeConfig(t, `
player:
  speed: 6.5
monsters:
  hunter:
    rush_speed: 9
    keep_direction: 0.5
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	def := Default()
	if cfg.Player.Speed != 6.5 {
		t.Errorf("player speed = %v, want 6.5", cfg.Player.Speed)
	}
	if cfg.Player.TurnThreshold != def.Player.TurnThreshold {
		t.Errorf("turn threshold = %v, want default %v", cfg.Player.TurnThreshold, def.Player.TurnThreshold)
	}
	if cfg.Monsters.Hunter.RushSpeed != 9 || cfg.Monsters.Hunter.KeepDirection != 0.5 {
		t.Errorf("hunter = %+v", cfg.Monsters.Hunter)
	}
	if cfg.Monsters.Hunter.Speed != def.Monsters.Hunter.Speed {
		t.Errorf("inline hunter speed = %v, want default %v", cfg.Monsters.Hunter.Speed, def.Monsters.Hunter.Speed)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "player: [", "failed to parse"},
		{"zero speed", "player:\n  speed: 0\n", "player.speed"},
		{"keep direction", "monsters:\n  wanderer:\n    keep_direction: 1.5\n", "monsters.wanderer.keep_direction"},
		{"phantom window", "monsters:\n  phantom:\n    invisible_duration: 4\n", "invisible_duration"},
		{"phantom fade", "monsters:\n  phantom:\n    fade: 1\n", "fade"},
		{"tiny map", "world:\n  map_width: 2\n", "at least 3x3"},
		{"rescue radius", "player:\n  rescue_radius: 0\n", "rescue_radius"},
		{"tps", "display:\n  tps: 0\n", "display.tps"},
		{"tile size", "world:\n  tile_size: -4\n", "world.tile_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want a not-exist error", err)
	}
}

func TestMustLoadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
}

func TestStockConfigLoads(t *testing.T) {
	path := filepath.Join("..", "..", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Skip("no stock config")
	}
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("stock config: %v", err)
	}
}
