// Command termchase plays tilechase in a terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilechase/internal/app"
	"tilechase/internal/config"
	"tilechase/internal/world"
)

var (
	configPath = flag.String("config", "config.yaml", "path to the configuration file")
	startLevel = flag.Int("level", 1, "level to start on")
	logPath    = flag.String("log", "termchase.log", "log file; the terminal is used for the game")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "termchase: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app.EnsureRuntimeCWD(*configPath)
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
	} else {
		defer out.Close()
		logger.SetOutput(out)
	}

	a, err := app.New(cfg, logger, *startLevel)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorWhite))
	screen.Clear()

	return loop(screen, a, cfg.Display.TPS)
}

// loop polls key events on a goroutine and runs the session on a ticker.
func loop(screen tcell.Screen, a *app.App, tps int) error {
	if tps <= 0 {
		tps = 60
	}
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, events, done)

	ticker := time.NewTicker(time.Second / time.Duration(tps))
	defer ticker.Stop()
	last := time.Now()

	for {
		intent := world.None
	drain:
		for {
			select {
			case ev := <-events:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					dir, cmd := decodeKey(ev)
					if dir != world.None {
						intent = dir
					}
					if err := a.Apply(cmd); err != nil {
						if errors.Is(err, app.ErrQuit) {
							return nil
						}
						return err
					}
				case *tcell.EventResize:
					screen.Sync()
				}
			default:
				break drain
			}
		}

		a.Frame(func() {
			now := time.Now()
			a.Session.SetIntent(intent)
			a.Session.Update(now.Sub(last).Seconds())
			last = now

			snap := a.Session.Snapshot()
			draw(screen, &snap)
		})
		<-ticker.C
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func decodeKey(ev *tcell.EventKey) (world.Direction, app.Command) {
	return decode(ev.Key(), ev.Rune())
}

// decode maps a key to a movement direction and a host command.
func decode(key tcell.Key, r rune) (world.Direction, app.Command) {
	switch key {
	case tcell.KeyUp:
		return world.Up, app.CmdNone
	case tcell.KeyDown:
		return world.Down, app.CmdNone
	case tcell.KeyLeft:
		return world.Left, app.CmdNone
	case tcell.KeyRight:
		return world.Right, app.CmdNone
	case tcell.KeyEscape:
		return world.None, app.CmdPause
	case tcell.KeyEnter:
		return world.None, app.CmdNext
	case tcell.KeyCtrlC:
		return world.None, app.CmdQuit
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return world.Up, app.CmdNone
		case 's', 'S':
			return world.Down, app.CmdNone
		case 'a', 'A':
			return world.Left, app.CmdNone
		case 'd', 'D':
			return world.Right, app.CmdNone
		case 'p', 'P':
			return world.None, app.CmdPause
		case 'r', 'R':
			return world.None, app.CmdRestart
		case 'n', 'N':
			return world.None, app.CmdNext
		case 'f', 'F':
			return world.None, app.CmdFreeze
		case 'q', 'Q':
			return world.None, app.CmdQuit
		}
	}
	return world.None, app.CmdNone
}
