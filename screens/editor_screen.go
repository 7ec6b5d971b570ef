package screens

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"promage2/config"
	"promage2/generation"
	"promage2/geom"
	"promage2/systems"
	"promage2/xmlutil"
)

var (
	panelColor    = color.RGBA{20, 20, 28, 255}
	headingColor  = color.RGBA{255, 230, 150, 255}
	textColor     = color.RGBA{200, 200, 200, 255}
	selectedColor = color.RGBA{255, 255, 255, 255}
)

// EditorScreen shows one map definition's pipeline and lets the user scrub
// through its snapshots
type EditorScreen struct {
	*BaseScreen
	stack    *ScreenStack
	gen      *generation.Generator
	pipeline *generation.Pipeline
	renderer *systems.MapRenderer

	// SavePath receives the map definition on S. Empty disables saving.
	SavePath string

	hover    geom.IntVec2
	hovering bool
}

// NewEditorScreen creates an editor showing p. The editor owns p and
// closes it when switching maps.
func NewEditorScreen(stack *ScreenStack, g *generation.Generator, p *generation.Pipeline, renderer *systems.MapRenderer) *EditorScreen {
	return &EditorScreen{
		BaseScreen: NewBaseScreen(),
		stack:      stack,
		gen:        g,
		pipeline:   p,
		renderer:   renderer,
	}
}

// Pipeline returns the pipeline being shown
func (s *EditorScreen) Pipeline() *generation.Pipeline {
	return s.pipeline
}

// Update handles editor input
func (s *EditorScreen) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.pipeline.Close()
		return ErrCloseScreen
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		s.stack.Push(NewConsoleScreen(s.gen.Console))
		return nil
	case inpututil.IsKeyJustPressed(ebiten.KeySlash), inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.stack.Push(NewHelpScreen())
		return nil
	}

	if repeating(ebiten.KeyPeriod) {
		s.pipeline.SetStepIndex(s.pipeline.StepIndex() + 1)
	}
	if repeating(ebiten.KeyComma) {
		s.pipeline.SetStepIndex(s.pipeline.StepIndex() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		s.pipeline.SetStepIndex(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		s.pipeline.SetStepIndex(len(s.pipeline.Snapshots()) - 1)
	}

	if repeating(ebiten.KeyArrowLeft) {
		s.renderer.Viewport.Pan(-1, 0)
	}
	if repeating(ebiten.KeyArrowRight) {
		s.renderer.Viewport.Pan(1, 0)
	}
	if repeating(ebiten.KeyArrowUp) {
		s.renderer.Viewport.Pan(0, -1)
	}
	if repeating(ebiten.KeyArrowDown) {
		s.renderer.Viewport.Pan(0, 1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.renderer.Highlight = !s.renderer.Highlight
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.gen.SetSeed(time.Now().UnixNano())
		s.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.cycleMotif()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.nextMap()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.save()
	}

	s.updateHover()
	return nil
}

// repeating reports a key press, repeating while held
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 20 && d%4 == 0)
}

func (s *EditorScreen) regenerate() {
	if err := s.pipeline.Regenerate(); err != nil {
		s.gen.Console.Errorf("regenerate %s: %v", s.pipeline.Def().Name, err)
		return
	}
	s.gen.Console.Infof("generated %s with seed %d", s.pipeline.Def().Name, s.gen.Seed())
}

// cycleMotif moves the map to the next registered motif, then to none
func (s *EditorScreen) cycleMotif() {
	names := s.gen.Motifs.Names()
	next := ""
	if i := slices.Index(names, s.pipeline.MotifName()); i+1 < len(names) {
		next = names[i+1]
	}
	s.pipeline.SetMapDefMotif(next)
	if err := s.pipeline.Rerun(); err != nil {
		s.gen.Console.Errorf("rerun %s: %v", s.pipeline.Def().Name, err)
		return
	}
	s.gen.Console.Infof("map motif set to %q", next)
}

func (s *EditorScreen) nextMap() {
	names := s.gen.MapDefs.Names()
	if len(names) < 2 {
		return
	}
	i := slices.Index(names, s.pipeline.Def().Name)
	def, err := s.gen.MapDefs.Lookup(names[(i+1)%len(names)])
	if err != nil {
		s.gen.Console.Errorf("switch map: %v", err)
		return
	}

	s.pipeline.Close()
	s.pipeline = s.gen.NewPipeline(def)
	s.renderer.Viewport.X, s.renderer.Viewport.Y = 0, 0
	s.regenerate()
}

func (s *EditorScreen) save() {
	if s.SavePath == "" {
		s.gen.Console.Warnf("no save path set, start with --save <file>")
		return
	}
	file, err := os.Create(s.SavePath)
	if err != nil {
		s.gen.Console.Errorf("save: %v", err)
		return
	}
	defer file.Close()
	if err := xmlutil.Write(file, s.pipeline.SaveToXml()); err != nil {
		s.gen.Console.Errorf("save %s: %v", s.SavePath, err)
		return
	}
	s.gen.Console.Infof("saved %s to %s", s.pipeline.Def().Name, s.SavePath)
}

func (s *EditorScreen) updateHover() {
	x, y := ebiten.CursorPosition()
	m := s.pipeline.Current()
	limit := config.MapScreenWidth * s.renderer.TileSize
	if m == nil || x < 0 || y < 0 || x >= limit {
		s.hovering = false
		return
	}
	s.hover = s.renderer.TileAtPixel(x, y, 0, 0)
	s.hovering = m.IsValidTileCoords(s.hover.X, s.hover.Y)
}

// Draw renders the map and the side panel
func (s *EditorScreen) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if m := s.pipeline.Current(); m != nil {
		s.renderer.Draw(screen, m, s.pipeline.ChangedTiles(s.pipeline.StepIndex()), 0, 0)
	}
	s.drawPanel(screen)
}

func (s *EditorScreen) drawPanel(screen *ebiten.Image) {
	left := config.MapScreenWidth * s.renderer.TileSize
	vector.DrawFilledRect(screen, float32(left), 0, float32(config.PanelWidth*s.renderer.TileSize), float32(screen.Bounds().Dy()), panelColor, false)

	x := left + 8
	y := 8
	line := func(text string, clr color.Color) {
		printColored(screen, text, x, y, clr)
		y += lineHeight
	}

	p := s.pipeline
	line(p.Def().Name, headingColor)
	line(fmt.Sprintf("%dx%d  seed %d", p.Def().Width, p.Def().Height, s.gen.Seed()), textColor)
	motifName := p.MotifName()
	if motifName == "" {
		motifName = "(none)"
	}
	line("motif "+motifName, textColor)
	y += lineHeight / 2

	line("STEPS", headingColor)
	steps := p.Steps()
	for i := 0; i <= len(steps); i++ {
		label := "initial fill"
		if i > 0 {
			label = steps[i-1].Name
			if steps[i-1].MotifName != "" {
				label += " [" + steps[i-1].MotifName + "]"
			}
		}
		clr := color.Color(textColor)
		prefix := "  "
		if i == p.StepIndex() {
			clr = selectedColor
			prefix = "> "
		}
		line(fmt.Sprintf("%s%2d %s", prefix, i, label), clr)
	}
	line(fmt.Sprintf("%d tiles changed", len(p.ChangedTiles(p.StepIndex()))), textColor)
	y += lineHeight / 2

	if s.hovering {
		s.drawHover(line)
		y += lineHeight / 2
	}

	line("H: help  F1: console", headingColor)
	for _, msg := range s.gen.Console.RecentMessages(4) {
		line(msg.Text, msg.GetColor())
	}
}

func (s *EditorScreen) drawHover(line func(string, color.Color)) {
	m := s.pipeline.Current()
	t := m.TileAt(s.hover.X, s.hover.Y)
	line(fmt.Sprintf("TILE %d,%d", s.hover.X, s.hover.Y), headingColor)
	line(t.Type(), textColor)
	if csv := t.Metadata.Tags.String(); csv != "" {
		line("tags "+csv, textColor)
	}
	for _, name := range t.Metadata.HeatMapNames() {
		v, _ := t.Metadata.GetHeatMap(name)
		line(fmt.Sprintf("%s %s", name, formatHeat(v)), textColor)
	}
	for _, marker := range m.Markers() {
		if marker.X == s.hover.X && marker.Y == s.hover.Y {
			line(fmt.Sprintf("%s %s (%s)", marker.Kind, marker.Definition, marker.StepName), textColor)
		}
	}
}

func formatHeat(v float64) string {
	if v >= generation.InvalidDistance {
		return "unreachable"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
