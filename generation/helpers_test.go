package generation

import (
	"testing"

	"promage2/console"
	"promage2/motif"
	"promage2/tiles"
	"promage2/xmlutil"
)

const testTileDefs = `<TileDefinitions>
	<TileDefinition name="Floor" allowsWalking="true" allowsFlying="true" allowsSight="true" texelColor="255,255,255"/>
	<TileDefinition name="Wall" drawOrder="2" tags="solid" texelColor="0,0,0"/>
	<TileDefinition name="Water" context="edged" drawOrder="1" allowsSwimming="true" allowsFlying="true" allowsSight="true" texelColor="0,0,255"/>
	<TileDefinition name="Grass" context="edged" drawOrder="3" allowsWalking="true" allowsSight="true" tags="plant"/>
</TileDefinitions>`

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g := NewGenerator()
	g.SetSeed(42)
	g.Console.Echo = false

	root := mustParse(t, testTileDefs)
	for _, e := range root.ChildrenNamed("TileDefinition") {
		def, err := tiles.NewDefFromXML(e)
		if err != nil {
			t.Fatalf("tile def: %v", err)
		}
		if err := g.RegisterTileDef(def); err != nil {
			t.Fatalf("register tile: %v", err)
		}
	}
	return g
}

func mustParse(t *testing.T, doc string) *xmlutil.Element {
	t.Helper()
	e, err := xmlutil.ParseDocument(doc)
	if err != nil {
		t.Fatalf("parse %q: %v", doc, err)
	}
	return e
}

func mustStep(t *testing.T, g *Generator, doc string, h motif.Hierarchy) *Step {
	t.Helper()
	step, err := g.NewStep(mustParse(t, doc), h)
	if err != nil {
		t.Fatalf("NewStep: %v", err)
	}
	return step
}

func mustMap(t *testing.T, g *Generator, w, h int, fill string) *Map {
	t.Helper()
	def, err := g.TileDef(fill)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMap("test", w, h, def)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func mustTile(t *testing.T, g *Generator, name string) *tiles.Def {
	t.Helper()
	def, err := g.TileDef(name)
	if err != nil {
		t.Fatal(err)
	}
	return def
}

func mustMotif(t *testing.T, g *Generator, name string, vars map[string]string) *motif.Def {
	t.Helper()
	def := motif.NewDef(name)
	for k, v := range vars {
		def.SetValue(k, v)
	}
	if err := g.RegisterMotif(def); err != nil {
		t.Fatal(err)
	}
	return def
}

func heat(t *testing.T, m *Map, x, y int, name string) float64 {
	t.Helper()
	v, ok := m.TileAt(x, y).Metadata.GetHeatMap(name)
	if !ok {
		t.Fatalf("tile %d,%d has no %s heat map", x, y, name)
	}
	return v
}

func countTiles(m *Map, typeName string) int {
	n := 0
	for _, tile := range m.Tiles() {
		if tile.IsType(typeName) {
			n++
		}
	}
	return n
}

func warnings(c *console.Console) int {
	return c.Count(console.MessageTypeWarning) + c.Count(console.MessageTypeError)
}
