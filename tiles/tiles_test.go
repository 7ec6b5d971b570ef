package tiles

import (
	"testing"

	"promage2/geom"
	"promage2/xmlutil"
)

type testGrid struct {
	width, height int
	tiles         []*Tile
}

func newTestGrid(width, height int, fill *Def) *testGrid {
	g := &testGrid{width: width, height: height}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.tiles = append(g.tiles, NewTile(geom.IntVec2{X: x, Y: y}, fill))
		}
	}
	return g
}

func (g *testGrid) TileAt(x, y int) *Tile {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return g.tiles[y*g.width+x]
}

func mustDef(t *testing.T, doc string) *Def {
	t.Helper()
	e, err := xmlutil.ParseDocument(doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	def, err := NewDefFromXML(e)
	if err != nil {
		t.Fatalf("NewDefFromXML: %v", err)
	}
	return def
}

func TestNewDefFromXML(t *testing.T) {
	def := mustDef(t, `<TileDefinition name="Water" drawOrder="3" context="edged" spriteCoords="4,5"
		tint="0,0,255" texelColor="0,0,255,255" allowsSight="true" allowsSwimming="true" tags="wet"/>`)

	if def.Name != "Water" || def.DrawOrder != 3 || !def.IsEdged() {
		t.Errorf("Unexpected def: %+v", def)
	}
	if def.SpriteCoords != (geom.IntVec2{X: 4, Y: 5}) {
		t.Errorf("Expected sprite 4,5, got %v", def.SpriteCoords)
	}
	if !def.AllowsSight || def.AllowsWalking || def.AllowsFlying || !def.AllowsSwimming {
		t.Errorf("Unexpected movement flags: %+v", def)
	}
	if !def.Tags.HasTags("wet") {
		t.Error("Expected default tag wet")
	}
}

func TestNewDefFromXMLErrors(t *testing.T) {
	tests := []string{
		`<TileDefinition drawOrder="1"/>`,
		`<TileDefinition name="A" context="fancy"/>`,
		`<TileDefinition name="A" drawOrder="high"/>`,
	}
	for _, doc := range tests {
		e, _ := xmlutil.ParseDocument(doc)
		if _, err := NewDefFromXML(e); err == nil {
			t.Errorf("Expected error for %s", doc)
		}
	}
}

func TestDeriveEdgeDefsCreatesTwelveVariants(t *testing.T) {
	def := mustDef(t, `<TileDefinition name="Grass" context="edged" spriteCoords="5,5"/>`)
	derived := def.DeriveEdgeDefs()
	if len(derived) != 12 {
		t.Fatalf("Expected 12 derived defs, got %d", len(derived))
	}

	names := make(map[string]*Def)
	for _, d := range derived {
		names[d.Name] = d
	}
	for _, c := range EdgeCases {
		name := EdgeDefName("Grass", c.Col, c.Row)
		d, ok := names[name]
		if !ok {
			t.Errorf("Missing derived def %s", name)
			continue
		}
		want := geom.IntVec2{X: 5 + c.Col - 1, Y: 5 + c.Row - 1}
		if d.SpriteCoords != want {
			t.Errorf("%s sprite = %v, want %v", name, d.SpriteCoords, want)
		}
		if d.BaseName != "Grass" || d.DrawOrder != def.DrawOrder {
			t.Errorf("%s should copy the base def", name)
		}
	}
}

func TestDeriveEdgeDefsSkipsSingleContext(t *testing.T) {
	def := mustDef(t, `<TileDefinition name="Floor"/>`)
	if derived := def.DeriveEdgeDefs(); len(derived) != 0 {
		t.Errorf("Expected no derived defs, got %d", len(derived))
	}
}

func TestMatchEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		mask NeighborBit
		want []string
	}{
		{"top row", NeighborTL | NeighborTC | NeighborTR, []string{"EdgeTop"}},
		{"single diagonal", NeighborBR, []string{"ConvexBR"}},
		{"opposite sides", NeighborTC | NeighborBC, []string{"EdgeTop", "EdgeBottom"}},
		{"inner corner", NeighborTL | NeighborTC | NeighborML, []string{"ConcaveTL"}},
		{"two diagonals", NeighborTL | NeighborBR, []string{"ConvexTL", "ConvexBR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEdgeCases(tt.mask)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %d cases", tt.want, len(got))
			}
			for i, idx := range got {
				if EdgeCases[idx].Name != tt.want[i] {
					t.Errorf("case %d = %s, want %s", i, EdgeCases[idx].Name, tt.want[i])
				}
			}
		})
	}
}

func TestAddTypesFromNeighbors(t *testing.T) {
	floor := mustDef(t, `<TileDefinition name="Floor" drawOrder="0"/>`)
	grass := mustDef(t, `<TileDefinition name="Grass" drawOrder="2" context="edged" spriteCoords="1,1"/>`)
	rock := mustDef(t, `<TileDefinition name="Rock" drawOrder="1"/>`)
	grass.DeriveEdgeDefs()

	grid := newTestGrid(3, 3, floor)
	grid.TileAt(1, 0).SetTileType(grass)
	grid.TileAt(1, 2).SetTileType(grass)
	grid.TileAt(0, 1).SetTileType(rock)

	center := grid.TileAt(1, 1)
	center.AddTypesFromNeighbors(grid)

	overlays := center.Metadata.Overlays()
	if len(overlays) != 2 {
		t.Fatalf("Expected 2 overlays, got %d", len(overlays))
	}
	if overlays[0].Name != "Grass_1_0" || overlays[1].Name != "Grass_1_2" {
		t.Errorf("Expected top then bottom edge, got %s, %s", overlays[0].Name, overlays[1].Name)
	}

	// A grass tile gets nothing from its own type
	top := grid.TileAt(1, 0)
	top.AddTypesFromNeighbors(grid)
	if len(top.Metadata.Overlays()) != 0 {
		t.Errorf("Expected no overlays on grass tile, got %d", len(top.Metadata.Overlays()))
	}
}

func TestOverlaysSortedByDrawOrder(t *testing.T) {
	m := NewMetadata()
	high := &Def{Name: "High", DrawOrder: 5}
	low := &Def{Name: "Low", DrawOrder: 1}
	lowToo := &Def{Name: "LowToo", DrawOrder: 1}

	m.PushOverlay(high)
	m.PushOverlay(low)
	m.PushOverlay(lowToo)

	got := m.Overlays()
	if got[0] != low || got[1] != lowToo || got[2] != high {
		t.Errorf("Unexpected overlay order: %s, %s, %s", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestHeatMapsAreCaseInsensitive(t *testing.T) {
	m := NewMetadata()
	if _, ok := m.GetHeatMap("Distance"); ok {
		t.Error("Expected heat map to be unset")
	}
	m.SetHeatMap("Distance", 3)
	if v, ok := m.GetHeatMap("distance"); !ok || v != 3 {
		t.Errorf("Expected 3, got %f (%v)", v, ok)
	}
	if v := m.AddHeatMap("DISTANCE", 2); v != 5 {
		t.Errorf("Expected 5 after add, got %f", v)
	}
	if names := m.HeatMapNames(); len(names) != 1 || names[0] != "Distance" {
		t.Errorf("Expected [Distance], got %v", names)
	}

	clone := m.Clone()
	clone.SetHeatMap("Distance", 9)
	if v, _ := m.GetHeatMap("Distance"); v != 5 {
		t.Error("Expected clone to be independent")
	}
}

func TestSetTileTypeStampsTags(t *testing.T) {
	floor := mustDef(t, `<TileDefinition name="Floor" allowsWalking="true"/>`)
	water := mustDef(t, `<TileDefinition name="Water" tags="wet" allowsSwimming="true"/>`)

	tile := NewTile(geom.IntVec2{}, floor)
	if !tile.AllowsWalking() || tile.AllowsSwimming() {
		t.Error("Expected floor movement flags")
	}
	tile.SetTileType(water)
	if tile.Type() != "Water" || !tile.Metadata.Tags.HasTags("wet") {
		t.Errorf("Expected water with wet tag, got %s {%s}", tile.Type(), tile.Metadata.Tags)
	}
	tile.SetTileType(nil)
	if tile.Def() != water {
		t.Error("Expected nil def to be ignored")
	}
}

func TestSetTileTypeClearsPreviousTypeTags(t *testing.T) {
	water := mustDef(t, `<TileDefinition name="Water" tags="wet,fluid"/>`)
	floor := mustDef(t, `<TileDefinition name="Floor" allowsWalking="true"/>`)
	swamp := mustDef(t, `<TileDefinition name="Swamp" tags="fluid,plant"/>`)

	tile := NewTile(geom.IntVec2{}, water)
	tile.Metadata.Tags.SetTags("lake")

	tile.SetTileType(floor)
	if tile.Metadata.Tags.HasTags("wet") || tile.Metadata.Tags.HasTags("fluid") {
		t.Errorf("Expected water tags to be cleared, got {%s}", tile.Metadata.Tags)
	}
	if !tile.Metadata.Tags.HasTags("lake") {
		t.Errorf("Expected step tags to survive, got {%s}", tile.Metadata.Tags)
	}

	tile.SetTileType(water)
	tile.SetTileType(swamp)
	if tile.Metadata.Tags.HasTags("wet") || !tile.Metadata.Tags.HasTags("fluid,plant") {
		t.Errorf("Expected only swamp type tags, got {%s}", tile.Metadata.Tags)
	}
}
