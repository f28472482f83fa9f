package main

import (
	"errors"
	"flag"
	"log"

	"tilechase/internal/app"
	"tilechase/internal/config"
	"tilechase/internal/game"
	"tilechase/internal/graphics"
	"tilechase/internal/input"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	configPath = flag.String("config", "config.yaml", "path to the configuration file")
	startLevel = flag.Int("level", 1, "level to start on")
	spriteDir  = flag.String("sprites", "assets/sprites", "directory of optional PNG sprites")
)

// host adapts a session to ebiten's game loop.
type host struct {
	app      *app.App
	input    *input.Reader
	renderer *graphics.Renderer
	snap     game.Snapshot
}

func main() {
	flag.Parse()
	app.EnsureRuntimeCWD(*configPath)

	// Load configuration
	cfg := config.MustLoadConfig(*configPath)

	logger, err := app.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.New(cfg, logger, *startLevel)
	if err != nil {
		logger.WithError(err).Fatal("failed to start")
	}

	sprites := graphics.NewSpriteManager(*spriteDir, cfg.World.TileSize, logger)
	h := &host{
		app:      a,
		input:    input.NewReader(input.DefaultBindings()),
		renderer: graphics.NewRenderer(cfg.World.TileSize, sprites),
		snap:     a.Session.Snapshot(),
	}

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Display.TPS)

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.WithError(err).Fatal("game loop stopped")
	}
}

func (h *host) Update() error {
	frame := h.input.Poll()
	for _, cmd := range commands(frame) {
		if err := h.app.Apply(cmd); err != nil {
			if errors.Is(err, app.ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}

	h.app.Frame(func() {
		h.app.Session.SetIntent(frame.Direction)
		h.app.Session.Update(1 / float64(ebiten.TPS()))
		h.snap = h.app.Session.Snapshot()
	})
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	h.renderer.Draw(screen, &h.snap)
}

func (h *host) Layout(_, _ int) (int, int) {
	return h.renderer.ScreenSize(&h.snap)
}

func commands(f input.Frame) []app.Command {
	var cmds []app.Command
	if f.Pause {
		cmds = append(cmds, app.CmdPause)
	}
	if f.Restart {
		cmds = append(cmds, app.CmdRestart)
	}
	if f.Next {
		cmds = append(cmds, app.CmdNext)
	}
	if f.Freeze {
		cmds = append(cmds, app.CmdFreeze)
	}
	if f.Quit {
		cmds = append(cmds, app.CmdQuit)
	}
	return cmds
}
