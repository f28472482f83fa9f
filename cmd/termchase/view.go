package main

import (
	"tilechase/internal/game"
	"tilechase/internal/items"
	"tilechase/internal/mathutil"
	"tilechase/internal/monster"
	"tilechase/internal/world"

	"github.com/gdamore/tcell/v2"
)

// cell is one terminal character of the map.
type cell struct {
	r     rune
	style tcell.Style
}

var (
	styleFloor  = tcell.StyleDefault
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorSlateBlue).Background(tcell.ColorNavy)
	styleDot    = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleFrozen = tcell.StyleDefault.Foreground(tcell.ColorLightBlue)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

var tileGlyphs = map[world.TileKind]rune{
	world.Floor:     ' ',
	world.Wall:      '#',
	world.Portal:    'O',
	world.Ice:       '=',
	world.JumpPad:   'J',
	world.SpeedUp:   '+',
	world.SlowDown:  '-',
	world.BlindTrap: '%',
}

var arrowGlyphs = map[world.Direction]rune{
	world.Up:    '^',
	world.Down:  'v',
	world.Left:  '<',
	world.Right: '>',
}

var monsterGlyphs = map[monster.Variant]rune{
	monster.Chaser:    'C',
	monster.Wanderer:  'W',
	monster.Hunter:    'H',
	monster.Patroller: 'P',
	monster.Phantom:   'G',
}

var monsterColors = map[monster.Variant]tcell.Color{
	monster.Chaser:    tcell.ColorRed,
	monster.Wanderer:  tcell.ColorGreen,
	monster.Hunter:    tcell.ColorOrange,
	monster.Patroller: tcell.ColorDodgerBlue,
	monster.Phantom:   tcell.ColorSilver,
}

var itemGlyphs = map[items.ItemType]rune{
	items.ItemMagnet:   'm',
	items.ItemShield:   's',
	items.ItemWallPass: 'w',
}

// compose lays the snapshot out as rows of cells, tiles first and
// entities on top. Hidden tiles under blindness stay blank.
func compose(snap *game.Snapshot) [][]cell {
	rows := make([][]cell, snap.Height)
	for y := range rows {
		rows[y] = make([]cell, snap.Width)
		for x := range rows[y] {
			rows[y][x] = tileCell(snap.TileAt(x, y))
		}
	}
	put := func(x, y int, c cell) {
		if y >= 0 && y < len(rows) && x >= 0 && x < len(rows[y]) {
			rows[y][x] = c
		}
	}

	for _, d := range snap.Dots {
		if !d.Collected {
			put(d.X, d.Y, cell{'.', styleDot})
		}
	}
	for _, it := range snap.Items {
		if !it.Collected {
			put(it.X, it.Y, cell{itemGlyphs[it.Type], styleItem})
		}
	}
	for _, m := range snap.Monsters {
		if m.Opacity < 0.5 {
			continue
		}
		style := tcell.StyleDefault.Foreground(monsterColors[m.Variant])
		if m.Frozen {
			style = styleFrozen
		} else if m.Rushing {
			style = style.Bold(true)
		}
		put(mathutil.Round(m.X), mathutil.Round(m.Y), cell{monsterGlyphs[m.Variant], style})
	}
	put(snap.Player.Tile.X, snap.Player.Tile.Y, cell{'@', stylePlayer})

	for y := range rows {
		for x := range rows[y] {
			if !snap.Visible(x, y) {
				rows[y][x] = cell{' ', styleFloor}
			}
		}
	}
	return rows
}

func tileCell(t game.TileView) cell {
	if t.Kind == world.Wall {
		return cell{'#', styleWall}
	}
	if a, ok := arrowGlyphs[t.Facing]; ok && (t.Kind == world.OneWay || t.Kind == world.JumpPad) {
		return cell{a, tcell.StyleDefault.Foreground(tcell.ColorGray)}
	}
	return cell{tileGlyphs[t.Kind], styleFloor}
}

// draw paints the composed map plus HUD and banner lines under it.
func draw(screen tcell.Screen, snap *game.Snapshot) {
	screen.Clear()
	for y, row := range compose(snap) {
		for x, c := range row {
			screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	lines := snap.HUDLines()
	if banner := snap.Banner(); banner != "" {
		lines = append(lines, banner)
	}
	for i, line := range lines {
		drawText(screen, 0, snap.Height+i, line, styleHUD)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
