// Package graphics draws a game.Snapshot with ebiten primitives.
package graphics

import (
	"image/color"
	"math"

	"tilechase/internal/game"
	"tilechase/internal/items"
	"tilechase/internal/mathutil"
	"tilechase/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// HUDRows is the number of tile rows reserved under the map for the status bar.
const HUDRows = 2

var (
	colorBackground = color.RGBA{15, 15, 22, 255}
	colorDot        = color.RGBA{255, 235, 180, 255}
	colorShield     = color.RGBA{60, 200, 230, 255}
	colorMagnet     = color.RGBA{220, 40, 160, 160}
	colorFog        = color.RGBA{0, 0, 0, 255}
	colorHUD        = color.RGBA{230, 230, 230, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 160}
	colorMarker     = color.RGBA{255, 255, 255, 200}
)

// Renderer draws one frame. It holds no simulation state.
type Renderer struct {
	tileSize int
	sprites  *SpriteManager
	face     font.Face
}

func NewRenderer(tileSize int, sprites *SpriteManager) *Renderer {
	return &Renderer{
		tileSize: tileSize,
		sprites:  sprites,
		face:     basicfont.Face7x13,
	}
}

// ScreenSize is the logical screen needed for a map of the snapshot's size.
func (r *Renderer) ScreenSize(snap *game.Snapshot) (int, int) {
	return snap.Width * r.tileSize, (snap.Height + HUDRows) * r.tileSize
}

func (r *Renderer) Draw(screen *ebiten.Image, snap *game.Snapshot) {
	screen.Fill(colorBackground)
	r.drawTiles(screen, snap)
	r.drawDots(screen, snap)
	r.drawItems(screen, snap)
	r.drawMonsters(screen, snap)
	r.drawPlayer(screen, snap)
	r.drawFog(screen, snap)
	r.drawHUD(screen, snap)
	r.drawOverlay(screen, snap)
}

func (r *Renderer) drawTiles(screen *ebiten.Image, snap *game.Snapshot) {
	ts := float32(r.tileSize)
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			tile := snap.TileAt(x, y)
			fx, fy := float32(x)*ts, float32(y)*ts
			vector.DrawFilledRect(screen, fx, fy, ts, ts, TileColor(tile.Kind), false)
			if tile.Facing != world.None {
				r.drawFacingMarker(screen, fx, fy, tile.Facing)
			}
		}
	}
}

// drawFacingMarker puts a bar on the tile edge the tile faces.
func (r *Renderer) drawFacingMarker(screen *ebiten.Image, fx, fy float32, d world.Direction) {
	ts := float32(r.tileSize)
	bar := ts / 6
	switch d {
	case world.Up:
		vector.DrawFilledRect(screen, fx, fy, ts, bar, colorMarker, false)
	case world.Down:
		vector.DrawFilledRect(screen, fx, fy+ts-bar, ts, bar, colorMarker, false)
	case world.Left:
		vector.DrawFilledRect(screen, fx, fy, bar, ts, colorMarker, false)
	case world.Right:
		vector.DrawFilledRect(screen, fx+ts-bar, fy, bar, ts, colorMarker, false)
	}
}

func (r *Renderer) drawDots(screen *ebiten.Image, snap *game.Snapshot) {
	for _, d := range snap.Dots {
		if d.Collected || !snap.Visible(d.X, d.Y) {
			continue
		}
		cx, cy := r.center(float64(d.X), float64(d.Y))
		vector.DrawFilledCircle(screen, cx, cy, float32(r.tileSize)/10, colorDot, true)
	}
}

func (r *Renderer) drawItems(screen *ebiten.Image, snap *game.Snapshot) {
	for _, it := range snap.Items {
		if it.Collected || !snap.Visible(it.X, it.Y) {
			continue
		}
		r.drawSprite(screen, it.Type.String(), float64(it.X), float64(it.Y), 0.6, 1, nil)
	}
}

func (r *Renderer) drawMonsters(screen *ebiten.Image, snap *game.Snapshot) {
	for _, m := range snap.Monsters {
		tx, ty := mathutil.Round(m.X), mathutil.Round(m.Y)
		if !snap.Visible(tx, ty) || m.Opacity <= 0 {
			continue
		}
		var tint *[3]float32
		switch {
		case m.Frozen:
			tint = &[3]float32{0.5, 0.7, 1}
		case m.Rushing:
			tint = &[3]float32{1, 0.5, 0.5}
		}
		r.drawSprite(screen, m.Variant.String(), m.X, m.Y, 0.9, m.Opacity, tint)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, snap *game.Snapshot) {
	p := snap.Player
	scale := 0.9
	if p.Jumping {
		scale *= JumpScale(p.JumpProgress)
	}
	alpha := 1.0
	if p.Invincible {
		alpha = 0.6
	}
	if _, ok := p.Effects[items.ItemMagnet]; ok {
		cx, cy := r.center(p.X, p.Y)
		vector.StrokeCircle(screen, cx, cy, float32(r.tileSize)*0.6, 2, colorMagnet, true)
	}
	r.drawSprite(screen, "player", p.X, p.Y, scale, alpha, nil)
	if p.Shield {
		cx, cy := r.center(p.X, p.Y)
		vector.StrokeCircle(screen, cx, cy, float32(r.tileSize)*0.5, 2, colorShield, true)
	}
}

// drawFog covers every tile outside the blind range.
func (r *Renderer) drawFog(screen *ebiten.Image, snap *game.Snapshot) {
	if !snap.Player.Blinded {
		return
	}
	ts := float32(r.tileSize)
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			if !snap.Visible(x, y) {
				vector.DrawFilledRect(screen, float32(x)*ts, float32(y)*ts, ts, ts, colorFog, false)
			}
		}
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	top := snap.Height * r.tileSize
	for i, line := range snap.HUDLines() {
		text.Draw(screen, line, r.face, 8, top+r.face.Metrics().Ascent.Ceil()+6+i*16, colorHUD)
	}
}

func (r *Renderer) drawOverlay(screen *ebiten.Image, snap *game.Snapshot) {
	msg := snap.Banner()
	if msg == "" {
		return
	}
	w := float32(snap.Width * r.tileSize)
	h := float32(snap.Height * r.tileSize)
	vector.DrawFilledRect(screen, 0, h/2-24, w, 48, colorOverlay, false)
	width := font.MeasureString(r.face, msg).Round()
	text.Draw(screen, msg, r.face, (int(w)-width)/2, int(h/2)+4, colorHUD)
}

// drawSprite draws a named sprite centred on a grid position.
func (r *Renderer) drawSprite(screen *ebiten.Image, name string, x, y, scale, alpha float64, tint *[3]float32) {
	img := r.sprites.GetSprite(name)
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	size := float64(r.tileSize) * scale
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size/float64(b.Dx()), size/float64(b.Dy()))
	cx, cy := r.center(x, y)
	op.GeoM.Translate(float64(cx)-size/2, float64(cy)-size/2)
	if tint != nil {
		op.ColorScale.Scale(tint[0], tint[1], tint[2], 1)
	}
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(img, op)
}

// center converts grid units, where (x, y) is the middle of tile (x, y), to pixels.
func (r *Renderer) center(x, y float64) (float32, float32) {
	ts := float64(r.tileSize)
	return float32(x*ts + ts/2), float32(y*ts + ts/2)
}

// TileColor is the flat fill of a tile kind.
func TileColor(kind world.TileKind) color.RGBA {
	switch kind {
	case world.Wall:
		return color.RGBA{50, 50, 90, 255}
	case world.Portal:
		return color.RGBA{170, 80, 200, 255}
	case world.OneWay:
		return color.RGBA{60, 60, 40, 255}
	case world.Ice:
		return color.RGBA{150, 210, 240, 255}
	case world.JumpPad:
		return color.RGBA{90, 160, 70, 255}
	case world.SpeedUp:
		return color.RGBA{200, 170, 40, 255}
	case world.SlowDown:
		return color.RGBA{100, 70, 40, 255}
	case world.BlindTrap:
		return color.RGBA{40, 20, 40, 255}
	default:
		return color.RGBA{25, 25, 35, 255}
	}
}

// JumpScale grows the player sprite towards the middle of a jump.
func JumpScale(progress float64) float64 {
	return 1 + 0.4*math.Sin(math.Pi*mathutil.Clamp(progress, 0, 1))
}
