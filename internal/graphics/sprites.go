package graphics

import (
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

// placeholderColors gives every known sprite name a fallback disc colour.
var placeholderColors = map[string]color.RGBA{
	"player":    {255, 220, 0, 255},
	"chaser":    {230, 60, 60, 255},
	"wanderer":  {80, 200, 120, 255},
	"hunter":    {240, 140, 40, 255},
	"patroller": {90, 140, 250, 255},
	"phantom":   {200, 200, 230, 255},
	"magnet":    {220, 40, 160, 255},
	"shield":    {60, 200, 230, 255},
	"wallpass":  {170, 120, 60, 255},
}

// SpriteManager loads sprites from a directory on first use and hands out
// coloured placeholders for names without a file.
type SpriteManager struct {
	dir     string
	size    int
	log     logrus.FieldLogger
	sprites map[string]*ebiten.Image
	missing map[string]bool // names already looked up without a file
}

func NewSpriteManager(dir string, size int, log logrus.FieldLogger) *SpriteManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SpriteManager{
		dir:     dir,
		size:    size,
		log:     log,
		sprites: make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

func (sm *SpriteManager) GetSprite(name string) *ebiten.Image {
	if sprite, exists := sm.sprites[name]; exists {
		return sprite
	}
	if !sm.missing[name] {
		if img, err := sm.load(name); err == nil {
			sm.sprites[name] = img
			return img
		} else if !os.IsNotExist(err) {
			sm.log.WithError(err).WithField("sprite", name).Warn("sprite failed to decode, using placeholder")
		}
		sm.missing[name] = true
	}

	img := sm.createPlaceholder(name)
	sm.sprites[name] = img
	return img
}

func (sm *SpriteManager) load(name string) (*ebiten.Image, error) {
	file, err := os.Open(spritePath(sm.dir, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

func (sm *SpriteManager) createPlaceholder(name string) *ebiten.Image {
	img := ebiten.NewImage(sm.size, sm.size)
	half := float32(sm.size) / 2
	vector.DrawFilledCircle(img, half, half, half*0.8, placeholderColor(name), true)
	return img
}

func spritePath(dir, name string) string {
	return filepath.Join(dir, name+".png")
}

func placeholderColor(name string) color.RGBA {
	if c, ok := placeholderColors[name]; ok {
		return c
	}
	return color.RGBA{128, 128, 128, 255}
}
