package terminal

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"promage2/generation"
	"promage2/geom"
	"promage2/tiles"
	"promage2/xmlutil"
)

const testTiles = `<TileDefinitions>
	<TileDefinition name="Floor" spriteCoords="14,2" tint="160,160,160" allowsWalking="true"/>
	<TileDefinition name="Wall" spriteCoords="3,2" tint="200,200,200"/>
	<TileDefinition name="Forest" spriteCoords="5,0" tint="30,120,40"/>
	<TileDefinition name="Blank"/>
</TileDefinitions>`

func newGenerator(t *testing.T) *generation.Generator {
	t.Helper()
	g := generation.NewGenerator()
	g.SetSeed(1)
	g.Console.Echo = false
	root, err := xmlutil.ParseDocument(testTiles)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range root.ChildrenNamed("TileDefinition") {
		def, err := tiles.NewDefFromXML(e)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.RegisterTileDef(def); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func newMap(t *testing.T, g *generation.Generator) *generation.Map {
	t.Helper()
	floor, _ := g.TileDef("Floor")
	wall, _ := g.TileDef("Wall")
	m, err := generation.NewMap("test", 3, 2, floor)
	if err != nil {
		t.Fatal(err)
	}
	m.TileAt(1, 0).SetTileType(wall)
	m.SpawnActor(2, 1, "Goblin", "Sprinkle")
	return m
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestGlyph(t *testing.T) {
	g := newGenerator(t)
	tests := []struct {
		name string
		want rune
	}{
		{"Floor", '.'},
		{"Wall", '#'},
		{"Forest", '♣'},
		{"Blank", 'B'},
	}
	for _, tt := range tests {
		def, err := g.TileDef(tt.name)
		if err != nil {
			t.Fatal(err)
		}
		if got := Glyph(def); got != tt.want {
			t.Errorf("Glyph(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	g := newGenerator(t)
	got := RenderText(newMap(t, g), nil)
	if want := ".#.\n..G\n"; got != want {
		t.Errorf("RenderText = %q, want %q", got, want)
	}
}

func TestRendererDraw(t *testing.T) {
	g := newGenerator(t)
	m := newMap(t, g)
	screen := newScreen(t, 10, 5)

	r := NewRenderer(nil, 10, 4)
	r.Draw(screen, m, []geom.IntVec2{{X: 0, Y: 1}})
	screen.Show()

	if c, _, _, _ := screen.GetContent(1, 0); c != '#' {
		t.Errorf("Expected a wall glyph, got %q", c)
	}
	if c, _, _, _ := screen.GetContent(2, 1); c != 'G' {
		t.Errorf("Expected the marker over its tile, got %q", c)
	}
	plain := TileStyle(m.TileAt(0, 1))
	if _, _, style, _ := screen.GetContent(0, 1); style != plain.Reverse(true) {
		t.Error("Expected the changed tile to be highlighted")
	}
	if _, _, style, _ := screen.GetContent(0, 0); style != TileStyle(m.TileAt(0, 0)) {
		t.Error("Expected unchanged tiles to be drawn plainly")
	}

	r.Highlight = false
	r.Draw(screen, m, []geom.IntVec2{{X: 0, Y: 1}})
	if _, _, style, _ := screen.GetContent(0, 1); style != plain {
		t.Error("Expected highlighting to be switchable")
	}
}

func TestViewerKeys(t *testing.T) {
	g := newGenerator(t)
	root, err := xmlutil.ParseDocument(`<MapDefinition name="Plain" width="6" height="4" fillType="Floor">
		<MapGenSteps>
			<Sprinkle count="2"><Results setType="Wall"/></Sprinkle>
			<Sprinkle count="1"><Results setType="Forest"/></Sprinkle>
		</MapGenSteps>
	</MapDefinition>`)
	if err != nil {
		t.Fatal(err)
	}
	def, err := generation.NewMapDefFromXML(root)
	if err != nil {
		t.Fatal(err)
	}
	p := g.NewPipeline(def)
	defer p.Close()
	if err := p.Regenerate(); err != nil {
		t.Fatal(err)
	}

	v := NewViewer(newScreen(t, 20, 8), p, g.Console, nil)
	if !strings.Contains(v.Status(), "initial fill") {
		t.Errorf("Expected the fill to be inspected first, got %q", v.Status())
	}

	v.handleKey(tcell.KeyRune, '.')
	v.handleKey(tcell.KeyRune, '.')
	v.handleKey(tcell.KeyRune, '.')
	if p.StepIndex() != 2 {
		t.Errorf("Expected stepping to stop at the last snapshot, got %d", p.StepIndex())
	}
	if !strings.Contains(v.Status(), "step 2/2: Sprinkle") {
		t.Errorf("Unexpected status %q", v.Status())
	}
	v.handleKey(tcell.KeyRune, ',')
	if p.StepIndex() != 1 {
		t.Errorf("Expected to step back, got %d", p.StepIndex())
	}

	v.handleKey(tcell.KeyRune, ' ')
	if v.renderer.Highlight {
		t.Error("Expected space to toggle highlighting")
	}
	if _, err := v.handleKey(tcell.KeyRune, 'r'); err != nil {
		t.Errorf("Expected regeneration to succeed: %v", err)
	}
	if quit, _ := v.handleKey(tcell.KeyRune, 'q'); !quit {
		t.Error("Expected q to quit")
	}

	v.Draw()
}
