package generation

import (
	"testing"

	"promage2/ecs"
)

const meadowMap = `<MapDefinition name="Meadow" width="8" height="6" fillType="Floor" motif="Meadow">
	<MapGenSteps>
		<Sprinkle count="%count%"><Results setType="Grass"/></Sprinkle>
		<DistanceField heatMapName="Reach"><Conditions ifIsType="Grass"/></DistanceField>
	</MapGenSteps>
</MapDefinition>`

func newMeadowPipeline(t *testing.T) (*Generator, *Pipeline) {
	t.Helper()
	g := newTestGenerator(t)
	mustMotif(t, g, "Meadow", map[string]string{"count": "3"})
	g.FinishLoading()

	def, err := NewMapDefFromXML(mustParse(t, meadowMap))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.RegisterMapDef(def); err != nil {
		t.Fatal(err)
	}
	p := g.NewPipeline(def)
	t.Cleanup(p.Close)
	if err := p.Regenerate(); err != nil {
		t.Fatal(err)
	}
	return g, p
}

func mapTypes(m *Map) []string {
	types := make([]string, 0, len(m.Tiles()))
	for _, tile := range m.Tiles() {
		types = append(types, tile.Type())
	}
	return types
}

func TestNewMapDefFromXML(t *testing.T) {
	def, err := NewMapDefFromXML(mustParse(t, meadowMap))
	if err != nil {
		t.Fatal(err)
	}
	if def.Name != "Meadow" || def.Width != 8 || def.Height != 6 || def.FillType != "Floor" || def.Motif != "Meadow" {
		t.Errorf("Unexpected definition %+v", def)
	}
	if len(def.Steps) != 2 || def.Steps[0].Name != "Sprinkle" || def.Steps[1].Name != "DistanceField" {
		t.Errorf("Expected 2 steps in order, got %d", len(def.Steps))
	}

	bad := []struct {
		name string
		doc  string
	}{
		{"missing name", `<MapDefinition width="4" height="4" fillType="Floor"/>`},
		{"missing fill", `<MapDefinition name="A" width="4" height="4"/>`},
		{"zero width", `<MapDefinition name="A" width="0" height="4" fillType="Floor"/>`},
		{"malformed height", `<MapDefinition name="A" width="4" height="tall" fillType="Floor"/>`},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapDefFromXML(mustParse(t, tt.doc)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestPipelineSnapshots(t *testing.T) {
	_, p := newMeadowPipeline(t)

	snapshots := p.Snapshots()
	if len(snapshots) != 3 {
		t.Fatalf("Expected the fill plus one snapshot per step, got %d", len(snapshots))
	}
	if got := countTiles(snapshots[0], "Floor"); got != 48 {
		t.Errorf("Expected the initial fill to be all Floor, got %d", got)
	}
	if got := countTiles(snapshots[1], "Grass"); got != 3 {
		t.Errorf("Expected 3 grass after the sprinkle, got %d", got)
	}
	if _, ok := snapshots[1].TileAt(0, 0).Metadata.GetHeatMap("Reach"); ok {
		t.Error("Expected the distance field to be absent before its step")
	}
	if _, ok := snapshots[2].TileAt(0, 0).Metadata.GetHeatMap("Reach"); !ok {
		t.Error("Expected the distance field after its step")
	}
	if p.Final() != snapshots[2] {
		t.Error("Expected Final to be the last snapshot")
	}

	if got := len(p.ChangedTiles(1)); got != 3 {
		t.Errorf("Expected 3 changed tiles for the sprinkle, got %d", got)
	}
	if got := len(p.ChangedTiles(2)); got != 48 {
		t.Errorf("Expected the flood to touch every tile once, got %d", got)
	}
	if p.ChangedTiles(0) != nil || p.ChangedTiles(3) != nil {
		t.Error("Expected no changes outside the step range")
	}
}

func TestPipelineSnapshotsCarryEdges(t *testing.T) {
	_, p := newMeadowPipeline(t)
	after := p.Snapshots()[1]

	for _, tile := range p.Snapshots()[0].Tiles() {
		if len(tile.Metadata.Overlays()) != 0 {
			t.Fatalf("Expected no overlays on a uniform fill, %v has %d", tile.Coords, len(tile.Metadata.Overlays()))
		}
	}

	found := false
	for _, tile := range after.Tiles() {
		if !tile.IsType("Grass") {
			continue
		}
		for _, n := range after.CardinalNeighbors(tile.Coords.X, tile.Coords.Y) {
			if n.IsType("Floor") {
				found = true
				if len(n.Metadata.Overlays()) == 0 {
					t.Errorf("Expected floor at %v to carry a grass edge", n.Coords)
				}
			}
		}
	}
	if !found {
		t.Fatal("Expected a floor tile next to grass")
	}
}

func TestPipelineIsDeterministic(t *testing.T) {
	_, a := newMeadowPipeline(t)
	_, b := newMeadowPipeline(t)

	ta, tb := mapTypes(a.Final()), mapTypes(b.Final())
	for i := range ta {
		if ta[i] != tb[i] {
			t.Fatalf("Expected identical maps for identical seeds, differs at %d", i)
		}
	}

	if err := a.Regenerate(); err != nil {
		t.Fatal(err)
	}
	again := mapTypes(a.Final())
	for i := range ta {
		if ta[i] != again[i] {
			t.Fatalf("Expected regeneration to reproduce the map, differs at %d", i)
		}
	}
}

func TestMotifVarChangeReruns(t *testing.T) {
	g, p := newMeadowPipeline(t)

	g.Events.Fire(EventMotifVarChanged, ecs.EventArgs{"motif": "Meadow", "var": "count", "value": "5"})
	if got := countTiles(p.Final(), "Grass"); got != 5 {
		t.Errorf("Expected the edited count to apply, got %d grass", got)
	}

	g.Events.Fire(EventMotifVarChanged, ecs.EventArgs{"motif": "Meadow", "var": "count", "value": ""})
	if got := countTiles(p.Final(), "Grass"); got != 1 {
		t.Errorf("Expected a cleared variable to fall back to the default count, got %d", got)
	}
}

func TestSetMapDefMotif(t *testing.T) {
	g, p := newMeadowPipeline(t)
	mustMotif(t, g, "Sparse", map[string]string{"count": "1"})

	p.SetMapDefMotif("Sparse")
	if p.MotifName() != "Sparse" {
		t.Errorf("Expected Sparse, got %s", p.MotifName())
	}
	if err := p.Rerun(); err != nil {
		t.Fatal(err)
	}
	if got := countTiles(p.Final(), "Grass"); got != 1 {
		t.Errorf("Expected the new motif to drive the count, got %d", got)
	}
}

func TestSetStepIndex(t *testing.T) {
	g, p := newMeadowPipeline(t)

	var fired []int
	g.Events.Subscribe(EventStepIndexChanged, func(e ecs.Event) {
		fired = append(fired, e.(ecs.NamedEvent).Args.GetInt("index", -1))
	})

	p.SetStepIndex(1)
	p.SetStepIndex(1)
	p.SetStepIndex(99)
	p.SetStepIndex(-3)

	want := []int{1, 2, 0}
	if len(fired) != len(want) {
		t.Fatalf("Expected %v, got %v", want, fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("event %d index = %d, want %d", i, fired[i], want[i])
		}
	}
	if p.Current() != p.Snapshots()[0] {
		t.Error("Expected Current to follow the index")
	}
}

func TestPipelineClose(t *testing.T) {
	g, p := newMeadowPipeline(t)
	if got := g.Events.HandlerCount(EventMotifVarChanged); got != 1 {
		t.Fatalf("Expected one subscription, got %d", got)
	}
	p.Close()
	if got := g.Events.HandlerCount(EventMotifVarChanged); got != 0 {
		t.Errorf("Expected the pipeline to unsubscribe, got %d", got)
	}
}

func TestRegenerateReportsBadSteps(t *testing.T) {
	g := newTestGenerator(t)
	def, err := NewMapDefFromXML(mustParse(t, `<MapDefinition name="Bad" width="2" height="2" fillType="Floor">
		<MapGenSteps><Volcano/></MapGenSteps>
	</MapDefinition>`))
	if err != nil {
		t.Fatal(err)
	}
	p := g.NewPipeline(def)
	defer p.Close()
	if err := p.Regenerate(); err == nil {
		t.Error("Expected an unknown step to fail the regeneration")
	}
}

func TestPipelineSaveToXml(t *testing.T) {
	_, p := newMeadowPipeline(t)
	if err := p.Steps()[1].SetAttribute("heatMapName", "Walk"); err != nil {
		t.Fatal(err)
	}

	saved, err := NewMapDefFromXML(p.SaveToXml())
	if err != nil {
		t.Fatal(err)
	}
	if saved.Name != "Meadow" || saved.Width != 8 || saved.Height != 6 || saved.Motif != "Meadow" {
		t.Errorf("Unexpected saved definition %+v", saved)
	}
	if len(saved.Steps) != 2 {
		t.Fatalf("Expected 2 steps, got %d", len(saved.Steps))
	}
	if v, _ := saved.Steps[0].Attr("count"); v != "%count%" {
		t.Errorf("Expected the reference to survive, got %q", v)
	}
	if v, _ := saved.Steps[1].Attr("heatMapName"); v != "Walk" {
		t.Errorf("Expected the edit to be saved, got %q", v)
	}
}
