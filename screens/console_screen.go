package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"promage2/console"
)

// ConsoleScreen shows the developer console in a modal window
type ConsoleScreen struct {
	*BaseScreen
	console      *console.Console
	scrollOffset int
	width        int
	height       int
	background   color.Color
}

// NewConsoleScreen creates a console window over c
func NewConsoleScreen(c *console.Console) *ConsoleScreen {
	return &ConsoleScreen{
		BaseScreen: NewBaseScreen(),
		console:    c,
		width:      720,
		height:     420,
		background: color.RGBA{0, 0, 0, 235},
	}
}

// Update handles input for the console screen
func (s *ConsoleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		s.scrollUp()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		s.scrollDown()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.console.Clear()
		s.scrollOffset = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		return ErrCloseScreen
	}
	return nil
}

// scrollUp moves the view up by one line
func (s *ConsoleScreen) scrollUp() {
	if s.scrollOffset > 0 {
		s.scrollOffset--
	}
}

// scrollDown moves the view down by one line
func (s *ConsoleScreen) scrollDown() {
	if s.scrollOffset < len(s.console.Messages)-1 {
		s.scrollOffset++
	}
}

// Draw renders the console window
func (s *ConsoleScreen) Draw(screen *ebiten.Image) {
	panel, x, y := openPanel(screen, s.width, s.height, s.background)

	title := "CONSOLE"
	printColored(panel, title, (s.width-len(title)*6)/2, 8, color.White)

	messages := s.console.Messages
	startY := 30
	maxLines := (s.height - startY - 24) / lineHeight

	startIdx := s.scrollOffset
	if startIdx > len(messages)-maxLines {
		startIdx = max(len(messages)-maxLines, 0)
	}
	for i := 0; i < maxLines && startIdx+i < len(messages); i++ {
		msg := messages[startIdx+i]
		printColored(panel, msg.Type.String()+": "+msg.Text, 10, startY+i*lineHeight, msg.GetColor())
	}

	if len(messages) > maxLines {
		area := float32(s.height - startY - 24)
		barHeight := float32(maxLines) / float32(len(messages)) * area
		barY := float32(startY) + float32(startIdx)/float32(len(messages))*area
		vector.DrawFilledRect(panel, float32(s.width-10), barY, 5, barHeight, color.White, false)
	}

	printColored(panel, "Up/Down: Scroll  C: Clear  Esc: Close", 10, s.height-20, color.White)
	present(screen, panel, x, y)
}

// Layout implements the Screen interface
func (s *ConsoleScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
