package screens

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ModalScreen represents a popup window that appears on top of other screens
type ModalScreen struct {
	*BaseScreen
	title      string
	content    string
	width      int
	height     int
	background color.Color
	textColor  color.Color
}

// NewModalScreen creates a new modal screen
func NewModalScreen(title, content string, width, height int) *ModalScreen {
	return &ModalScreen{
		BaseScreen: NewBaseScreen(),
		title:      title,
		content:    content,
		width:      width,
		height:     height,
		background: color.RGBA{0, 0, 0, 220}, // Semi-transparent black
		textColor:  color.White,
	}
}

// NewHelpScreen lists the editor key bindings
func NewHelpScreen() *ModalScreen {
	return NewModalScreen("KEYS", strings.Join([]string{
		",  .        previous / next step",
		"Home End    initial fill / final map",
		"Arrows      pan",
		"Space       toggle changed tile highlight",
		"R           regenerate with the same seed",
		"N           regenerate with a new seed",
		"M           cycle the map motif",
		"Tab         next map definition",
		"S           save the map definition",
		"F1          console",
		"Esc         close",
	}, "\n"), 380, 230)
}

// Draw implements the Screen interface
func (s *ModalScreen) Draw(screen *ebiten.Image) {
	panel, x, y := openPanel(screen, s.width, s.height, s.background)

	printColored(panel, s.title, (s.width-len(s.title)*6)/2, 10, s.textColor)
	for i, line := range strings.Split(s.content, "\n") {
		printColored(panel, line, 12, 32+i*lineHeight, s.textColor)
	}

	present(screen, panel, x, y)
}

// Update implements the Screen interface
func (s *ModalScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return ErrCloseScreen
	}
	return nil
}

// Layout implements the Screen interface
func (s *ModalScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
