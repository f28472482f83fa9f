// Command map_viewer browses the level set: authored files from the level
// directory and generated levels for the numbers without a file.
package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"sort"
	"strings"

	"tilechase/internal/app"
	"tilechase/internal/config"
	"tilechase/internal/graphics"
	"tilechase/internal/level"
	"tilechase/internal/monster"
	"tilechase/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

type levelInfo struct {
	Number int
	Data   *level.Data
	Grid   *world.Grid
	Err    error
}

type viewer struct {
	levels      []levelInfo
	index       int
	legendLines []string
	sidebarTab  int
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	app.EnsureRuntimeCWD("config.yaml")

	cfg := config.MustLoadConfig("config.yaml")
	logger, err := app.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}

	legend := world.DefaultLegend()
	if cfg.World.Legend != "" {
		if legend, err = world.LoadLegend(cfg.World.Legend); err != nil {
			logger.WithError(err).Fatal("failed to load legend")
		}
	}

	provider := level.NewDirProvider(cfg.World.LevelDir, level.NewGenerated(cfg.World.MapWidth, cfg.World.MapHeight), logger)
	v := &viewer{
		levels:      loadLevels(provider, legend, cfg, logger),
		legendLines: buildLegendLines(legend),
		sidebarTab:  tabInfo,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Tile Chase Level Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

// loadLevels reads levels from 1 until the provider runs out.
func loadLevels(p level.Provider, legend *world.Legend, cfg *config.Config, logger logrus.FieldLogger) []levelInfo {
	var out []levelInfo
	for n := 1; ; n++ {
		d, err := p.Level(n)
		if errors.Is(err, level.ErrNoLevel) {
			return out
		}
		info := levelInfo{Number: n, Data: d, Err: err}
		if err == nil {
			info.Grid, info.Err = d.Build(legend, cfg.World.MapWidth, cfg.World.MapHeight)
		}
		if info.Err != nil {
			logger.WithError(info.Err).WithField("level", n).Warn("level failed to load")
		}
		out = append(out, info)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}

	if len(v.levels) == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.index = (v.index + 1) % len(v.levels)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.index = (v.index - 1 + len(v.levels)) % len(v.levels)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, "no levels loaded", 16, 16)
		return
	}
	l := v.levels[v.index]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("level %d failed to load: %v", l.Number, l.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapAreaW := screenW - sidebarWidth - padding*3
	mapAreaH := screenH - padding*2
	sidebarX := padding + mapAreaW + padding

	drawMapPanel(screen, l, padding, padding, mapAreaW, mapAreaH)
	drawSidebar(screen, l, sidebarX, padding, sidebarWidth, mapAreaH, v.sidebarTab, v.legendLines)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawMapPanel(screen *ebiten.Image, l levelInfo, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	gw, gh := l.Grid.Width(), l.Grid.Height()
	tileSize := w / gw
	if alt := (h - 40) / gh; alt < tileSize {
		tileSize = alt
	}
	if tileSize < 2 {
		tileSize = 2
	}
	originX := x + (w-gw*tileSize)/2
	originY := y + 40 + (h-40-gh*tileSize)/2

	l.Grid.Walk(func(t world.Tile) {
		vector.DrawFilledRect(screen, float32(originX+t.X*tileSize), float32(originY+t.Y*tileSize),
			float32(tileSize), float32(tileSize), graphics.TileColor(t.Kind), false)
		if t.Facing != world.None {
			drawTileLetter(screen, originX, originY, tileSize, t.X, t.Y, arrowFor(t.Facing))
		}
	})

	drawOverlays(screen, l, originX, originY, tileSize)
	drawMapHeader(screen, l, x, y)
}

func drawMapHeader(screen *ebiten.Image, l levelInfo, x, y int) {
	title := fmt.Sprintf("Level %d: %s (chapter %d)", l.Number, l.Data.Name, l.Data.Chapter)
	ebitenutil.DebugPrintAt(screen, title, x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch levels, Esc to quit", x+12, y+24)
}

func drawOverlays(screen *ebiten.Image, l levelInfo, originX, originY, tileSize int) {
	center := func(p world.Point) (float32, float32) {
		return float32(originX + p.X*tileSize + tileSize/2), float32(originY + p.Y*tileSize + tileSize/2)
	}

	// Portal links
	for _, pp := range l.Data.Portals {
		ax, ay := center(world.Point{X: pp.X1, Y: pp.Y1})
		bx, by := center(world.Point{X: pp.X2, Y: pp.Y2})
		vector.StrokeLine(screen, ax, ay, bx, by, 1, color.RGBA{170, 80, 200, 160}, true)
	}

	// Patrol routes
	for _, p := range l.Data.Patrols {
		for i := 1; i < len(p.Waypoints); i++ {
			ax, ay := center(p.Waypoints[i-1])
			bx, by := center(p.Waypoints[i])
			vector.StrokeLine(screen, ax, ay, bx, by, 2, color.RGBA{90, 140, 250, 200}, true)
		}
	}

	drawTileMarkerCircle(screen, originX, originY, tileSize, l.Data.Spawn.X, l.Data.Spawn.Y, color.RGBA{255, 220, 0, 255}, true)

	for _, it := range l.Data.Items {
		drawTileMarkerRect(screen, originX, originY, tileSize, it.X, it.Y, color.RGBA{220, 40, 160, 255})
	}

	for _, e := range l.Data.Enemies {
		drawTileMarkerCircle(screen, originX, originY, tileSize, e.X, e.Y, color.RGBA{230, 80, 80, 255}, false)
		drawTileLetter(screen, originX, originY, tileSize, e.X, e.Y, enemyLetter(e.Type))
	}
}

func drawSidebar(screen *ebiten.Image, l levelInfo, x, y, w, h int, tab int, legendLines []string) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	lines := legendLines
	if tab == tabInfo {
		lines = infoLines(l)
	}
	for _, line := range lines {
		if row > y+h-16 {
			break
		}
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

// infoLines summarises a level for the sidebar.
func infoLines(l levelInfo) []string {
	counts := make(map[world.TileKind]int)
	l.Grid.Walk(func(t world.Tile) { counts[t.Kind]++ })

	lines := []string{
		fmt.Sprintf("Tiles: %dx%d", l.Grid.Width(), l.Grid.Height()),
		fmt.Sprintf("Spawn: (%d,%d)", l.Data.Spawn.X, l.Data.Spawn.Y),
		fmt.Sprintf("Enemies: %d", len(l.Data.Enemies)),
		fmt.Sprintf("Items: %d", len(l.Data.Items)),
		fmt.Sprintf("Portal pairs: %d", len(l.Data.Portals)),
		fmt.Sprintf("Patrol routes: %d", len(l.Data.Patrols)),
		"",
		"Tile counts:",
	}
	kinds := make([]world.TileKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		lines = append(lines, fmt.Sprintf("  %-10s %d", k, counts[k]))
	}
	lines = append(lines, "", "Enemies:")
	for i, e := range l.Data.Enemies {
		lines = append(lines, fmt.Sprintf("  %d %s (%d,%d)", i, e.Type, e.X, e.Y))
	}
	return lines
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func buildLegendLines(legend *world.Legend) []string {
	lines := []string{"Layout glyphs", "-------------"}
	for k := world.Floor; k <= world.BlindTrap; k++ {
		lines = append(lines, fmt.Sprintf("%c -> %s", legend.Glyph(k), k))
	}
	lines = append(lines, "", "Enemies", "-------")
	for v := monster.Chaser; v <= monster.Phantom; v++ {
		lines = append(lines, fmt.Sprintf("%s -> %s", enemyLetter(v.String()), v))
	}
	lines = append(lines, "", "Markers", "-------",
		"Yellow: spawn  Red: enemies",
		"Magenta: items",
		"Lines: portal links, patrols")
	return lines
}

func enemyLetter(tag string) string {
	v, ok := monster.ParseVariant(tag)
	if !ok {
		return "?"
	}
	if v == monster.Phantom {
		return "G"
	}
	return strings.ToUpper(v.String()[:1])
}

func arrowFor(d world.Direction) string {
	switch d {
	case world.Up:
		return "^"
	case world.Down:
		return "v"
	case world.Left:
		return "<"
	case world.Right:
		return ">"
	default:
		return ""
	}
}

func drawTileMarkerCircle(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA, stroke bool) {
	if tileSize < 2 {
		return
	}
	centerX := float32(originX + tx*tileSize + tileSize/2)
	centerY := float32(originY + ty*tileSize + tileSize/2)
	radius := float32(tileSize) * 0.35
	vector.DrawFilledCircle(screen, centerX, centerY, radius, clr, true)
	if stroke {
		vector.StrokeCircle(screen, centerX, centerY, radius, 1, color.RGBA{255, 255, 255, 255}, true)
	}
}

func drawTileMarkerRect(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, clr color.RGBA) {
	size := tileSize / 2
	if size < 3 {
		size = 3
	}
	drawX := originX + tx*tileSize + (tileSize-size)/2
	drawY := originY + ty*tileSize + (tileSize-size)/2
	vector.DrawFilledRect(screen, float32(drawX), float32(drawY), float32(size), float32(size), clr, false)
}

func drawTileLetter(screen *ebiten.Image, originX, originY, tileSize, tx, ty int, letter string) {
	if tileSize < 6 || letter == "" {
		return
	}
	ebitenutil.DebugPrintAt(screen, letter, originX+tx*tileSize+2, originY+ty*tileSize+1)
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}
