// Package app wires configuration, logging, level provider and session
// for the hosts, and maps host commands onto the session.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tilechase/internal/config"
	"tilechase/internal/game"
	"tilechase/internal/level"
	"tilechase/internal/monitoring"
	"tilechase/internal/world"
)

// FreezeDuration is how long the debug freeze command stops all monsters.
const FreezeDuration = 3.0

type App struct {
	Config  *config.Config
	Log     *logrus.Logger
	Session *game.Session
	Monitor *monitoring.Monitor
}

// NewLogger builds a logrus logger from the logging block.
func NewLogger(cfg config.LoggingConfig) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	log.SetLevel(lvl)
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("logging.format: unknown format %q", cfg.Format)
	}
	return log, nil
}

// New builds a session over the configured level directory, falling back to
// generated levels, and loads the first level.
func New(cfg *config.Config, log *logrus.Logger, first int, opts ...game.Option) (*App, error) {
	legend := world.DefaultLegend()
	if cfg.World.Legend != "" {
		l, err := world.LoadLegend(cfg.World.Legend)
		if err != nil {
			return nil, err
		}
		legend = l
	}

	mon := monitoring.NewMonitor()
	provider := level.NewDirProvider(cfg.World.LevelDir, level.NewGenerated(cfg.World.MapWidth, cfg.World.MapHeight), log)
	opts = append([]game.Option{
		game.WithLogger(log),
		game.WithLegend(legend),
		game.WithListener(game.Listeners{eventLogger(log), mon}),
	}, opts...)
	s := game.New(cfg, provider, opts...)
	if err := s.Load(first); err != nil {
		return nil, err
	}
	return &App{Config: cfg, Log: log, Session: s, Monitor: mon}, nil
}

func eventLogger(log logrus.FieldLogger) game.Listener {
	return game.ListenerFunc(func(e game.Event) {
		log.WithFields(logrus.Fields{
			"event": e.Kind.String(),
			"x":     e.At.X,
			"y":     e.At.Y,
		}).Debug("game event")
	})
}

// Frame times one host frame and emits the periodic metrics report.
func (a *App) Frame(fn func()) {
	ft := a.Monitor.StartFrame()
	fn()
	ft.EndFrame()
	a.Monitor.MaybeReport(a.Log, time.Now())
}

// Command is a one-shot host request.
type Command int

const (
	CmdNone Command = iota
	CmdPause
	CmdRestart
	CmdNext
	CmdFreeze
	CmdQuit
)

// ErrQuit is returned by Apply when the host should shut down.
var ErrQuit = errors.New("quit requested")

// Apply runs a command against the session. Next only advances from a
// completed level; past the last level it reports ErrQuit.
func (a *App) Apply(cmd Command) error {
	s := a.Session
	switch cmd {
	case CmdPause:
		s.TogglePause()
	case CmdRestart:
		return s.Restart()
	case CmdNext:
		if s.State() != game.StateLevelComplete {
			return nil
		}
		err := s.NextLevel()
		if errors.Is(err, level.ErrNoLevel) {
			a.Log.WithField("level", s.LevelNumber()).Info("all levels cleared")
			return ErrQuit
		}
		return err
	case CmdFreeze:
		s.FreezeMonsters(FreezeDuration)
	case CmdQuit:
		return ErrQuit
	}
	return nil
}

// EnsureRuntimeCWD moves to the executable's directory when the config is
// not reachable from the current one.
func EnsureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
