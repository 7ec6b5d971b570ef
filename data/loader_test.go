package data

import (
	"os"
	"path/filepath"
	"testing"

	"promage2/console"
	"promage2/generation"
)

func newQuietGenerator() *generation.Generator {
	g := generation.NewGenerator()
	g.SetSeed(7)
	g.Console.Echo = false
	return g
}

func problems(c *console.Console) int {
	return c.Count(console.MessageTypeWarning) + c.Count(console.MessageTypeError)
}

func TestLoadShippedContent(t *testing.T) {
	g := newQuietGenerator()
	if err := LoadDirectory(g, "xml"); err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	for _, name := range []string{"Water", "Sand", "Grass", "Floor", "Wall"} {
		if !g.Tiles.Has(name) {
			t.Errorf("Expected tile %s", name)
		}
	}
	for _, name := range []string{"Beach", "Lake", "LakeDistrict"} {
		if !g.CustomDefs.Has(name) {
			t.Errorf("Expected custom step %s", name)
		}
	}
	if g.MapDefs.Len() != 3 {
		t.Errorf("Expected 3 maps, got %d", g.MapDefs.Len())
	}
	if problems(g.Console) != 0 {
		t.Errorf("Expected clean content, got %d problems: %v", problems(g.Console), g.Console.RecentMessages(5))
	}
}

func TestShippedMapsGenerate(t *testing.T) {
	g := newQuietGenerator()
	if err := LoadDirectory(g, "xml"); err != nil {
		t.Fatal(err)
	}

	for _, name := range g.MapDefs.Names() {
		t.Run(name, func(t *testing.T) {
			def, err := g.MapDefs.Lookup(name)
			if err != nil {
				t.Fatal(err)
			}
			p := g.NewPipeline(def)
			defer p.Close()
			if err := p.Regenerate(); err != nil {
				t.Fatalf("Regenerate: %v", err)
			}
			if got, want := len(p.Snapshots()), len(def.Steps)+1; got != want {
				t.Errorf("Expected %d snapshots, got %d", want, got)
			}
			final := p.Final()
			if final.Width != def.Width || final.Height != def.Height {
				t.Errorf("Expected %dx%d, got %dx%d", def.Width, def.Height, final.Width, final.Height)
			}
			if problems(g.Console) != 0 {
				t.Errorf("Expected no problems, got %v", g.Console.RecentMessages(5))
			}
		})
	}
}

func TestRuinsStampsTheImage(t *testing.T) {
	g := newQuietGenerator()
	if err := LoadDirectory(g, "xml"); err != nil {
		t.Fatal(err)
	}
	def, err := g.MapDefs.Lookup("Ruins")
	if err != nil {
		t.Fatal(err)
	}
	p := g.NewPipeline(def)
	defer p.Close()
	if err := p.Regenerate(); err != nil {
		t.Fatal(err)
	}

	// The 12x10 stamp is centered on the 24x20 map
	stamped := p.Snapshots()[1]
	if !stamped.TileAt(6, 5).IsType("Wall") {
		t.Errorf("Expected the stamp's corner wall at 6,5, got %s", stamped.TileAt(6, 5).Type())
	}
	if !stamped.TileAt(7, 6).IsType("Floor") {
		t.Errorf("Expected floor inside the ruin, got %s", stamped.TileAt(7, 6).Type())
	}
	if !stamped.TileAt(14, 8).IsType("Grass") {
		t.Errorf("Expected a transparent pixel to keep the grass, got %s", stamped.TileAt(14, 8).Type())
	}
}

func TestLoadDirectoryRequiresTiles(t *testing.T) {
	g := newQuietGenerator()
	if err := LoadDirectory(g, t.TempDir()); err == nil {
		t.Error("Expected a missing Tiles.xml to fail")
	}
}

func TestLoadDirectoryOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	tilesXML := `<TileDefinitions><TileDefinition name="Floor" allowsWalking="true"/></TileDefinitions>`
	if err := os.WriteFile(filepath.Join(dir, TilesFile), []byte(tilesXML), 0o644); err != nil {
		t.Fatal(err)
	}

	g := newQuietGenerator()
	if err := LoadDirectory(g, dir); err != nil {
		t.Fatalf("Expected only tiles to be required: %v", err)
	}
	if g.ImageDir != dir {
		t.Errorf("Expected images to resolve against %s, got %s", dir, g.ImageDir)
	}
}

func TestLoadDirectoryReportsBadContent(t *testing.T) {
	tests := []struct {
		name string
		file string
		doc  string
	}{
		{"tile without name", TilesFile, `<TileDefinitions><TileDefinition drawOrder="1"/></TileDefinitions>`},
		{"custom step with unknown child", CustomStepsFile, `<CustomMapGenSteps><CustomMapGenStep name="A"><Volcano/></CustomMapGenStep></CustomMapGenSteps>`},
		{"map without fill", MapsFile, `<MapDefinitions><MapDefinition name="A" width="2" height="2"/></MapDefinitions>`},
		{"malformed xml", MotifsFile, `<Motifs><Motif name="A">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			files := map[string]string{TilesFile: `<TileDefinitions><TileDefinition name="Floor"/></TileDefinitions>`}
			files[tt.file] = tt.doc
			for name, doc := range files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			if err := LoadDirectory(newQuietGenerator(), dir); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
