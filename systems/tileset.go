package systems

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"promage2/config"
	"promage2/geom"
)

// Tileset handles loading and drawing the tile sprite sheet
type Tileset struct {
	Image    *ebiten.Image
	TileSize int // Size of a drawn tile in pixels
	Width    int // Number of sprites horizontally in the sheet
	Height   int // Number of sprites vertically in the sheet
}

// NewTileset loads a sprite sheet laid out in config.SpriteSheetTexelPx cells
func NewTileset(filename string, tileSize int) (*Tileset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open tileset: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tileset %s: %w", filename, err)
	}

	ebitenImage := ebiten.NewImageFromImage(img)
	bounds := ebitenImage.Bounds()
	return &Tileset{
		Image:    ebitenImage,
		TileSize: tileSize,
		Width:    bounds.Dx() / config.SpriteSheetTexelPx,
		Height:   bounds.Dy() / config.SpriteSheetTexelPx,
	}, nil
}

// Contains reports whether coords address a sprite in the sheet
func (t *Tileset) Contains(coords geom.IntVec2) bool {
	return coords.X >= 0 && coords.X < t.Width && coords.Y >= 0 && coords.Y < t.Height
}

// DrawSprite draws the sprite at coords with its top left corner at pixel
// (px, py), tinted by clr
func (t *Tileset) DrawSprite(target *ebiten.Image, coords geom.IntVec2, px, py float64, clr color.Color) {
	if !t.Contains(coords) {
		// Magenta question mark for sprites outside the sheet
		coords = geom.IntVec2{X: int('?') % config.SpriteSheetCols, Y: int('?') / config.SpriteSheetCols}
		clr = color.RGBA{255, 0, 255, 255}
	}

	src := config.SpriteSheetTexelPx
	sx := coords.X * src
	sy := coords.Y * src

	op := &ebiten.DrawImageOptions{}
	scale := float64(t.TileSize) / float64(src)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(px, py)
	if clr != nil {
		op.ColorScale.ScaleWithColor(clr)
	}

	rect := image.Rect(sx, sy, sx+src, sy+src)
	target.DrawImage(t.Image.SubImage(rect).(*ebiten.Image), op)
}

// DrawGlyph draws a character using its code page 437 position
func (t *Tileset) DrawGlyph(target *ebiten.Image, char rune, px, py float64, clr color.Color) {
	index := int(char)
	t.DrawSprite(target, geom.IntVec2{X: index % config.SpriteSheetCols, Y: index / config.SpriteSheetCols}, px, py, clr)
}

// DrawString draws a string of characters starting at pixel (px, py)
func (t *Tileset) DrawString(target *ebiten.Image, text string, px, py float64, clr color.Color) {
	for _, char := range text {
		t.DrawGlyph(target, char, px, py, clr)
		px += float64(t.TileSize)
	}
}
