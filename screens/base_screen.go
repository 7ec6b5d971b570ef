package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font line height in pixels
const lineHeight = 16

// BaseScreen provides common functionality for all screens
type BaseScreen struct {
	// Screen dimensions
	width  int
	height int
}

// NewBaseScreen creates a new base screen
func NewBaseScreen() *BaseScreen {
	return &BaseScreen{}
}

// Update implements the Screen interface
func (s *BaseScreen) Update() error {
	return nil
}

// Draw implements the Screen interface
func (s *BaseScreen) Draw(screen *ebiten.Image) {}

// Layout implements the Screen interface
func (s *BaseScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	s.width = outsideWidth
	s.height = outsideHeight
	return outsideWidth, outsideHeight
}

// GetWidth returns the screen width
func (s *BaseScreen) GetWidth() int {
	return s.width
}

// GetHeight returns the screen height
func (s *BaseScreen) GetHeight() int {
	return s.height
}

// openPanel fills a framed w x h panel centered on screen and returns it
// with its screen position. The caller draws into the panel and then calls
// present.
func openPanel(screen *ebiten.Image, w, h int, background color.Color) (*ebiten.Image, float64, float64) {
	bounds := screen.Bounds()
	x := (bounds.Dx() - w) / 2
	y := (bounds.Dy() - h) / 2

	panel := ebiten.NewImage(w, h)
	panel.Fill(background)
	vector.StrokeRect(panel, 1, 1, float32(w-2), float32(h-2), 2, color.White, false)
	return panel, float64(x), float64(y)
}

func present(screen, panel *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	screen.DrawImage(panel, op)
	panel.Deallocate()
}

// printColored draws debug text in clr. The debug font is white so the line
// goes through a scratch image tinted on the way out.
func printColored(target *ebiten.Image, text string, x, y int, clr color.Color) {
	w := len(text)*6 + 2
	if w <= 2 {
		return
	}
	line := ebiten.NewImage(w, lineHeight)
	ebitenutil.DebugPrintAt(line, text, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleWithColor(clr)
	op.GeoM.Translate(float64(x), float64(y))
	target.DrawImage(line, op)
	line.Deallocate()
}
