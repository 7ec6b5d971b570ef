package generation

import (
	"fmt"
	"image"
	"math/rand"
	"time"

	"promage2/console"
	"promage2/definition"
	"promage2/ecs"
	"promage2/motif"
	"promage2/tiles"
)

// Events exchanged with the editor
const (
	// EventMotifVarChanged asks steps to re-resolve. Args: motif, var, value
	// (optional, applied to the named motif first), attrName.
	EventMotifVarChanged ecs.EventType = "motif_var_changed"
	// EventStepIndexChanged is fired when the inspected step changes. Args: index.
	EventStepIndexChanged ecs.EventType = "step_index_changed"
)

// Generator owns the loaded content catalogs and the per-run state shared by
// every step of a pipeline: the random source, the counter used to name
// cloned motifs, the console and the event bus.
type Generator struct {
	Tiles      *definition.Registry[*tiles.Def]
	Motifs     *motif.Registry
	CustomDefs *definition.Registry[*CustomDef]
	MapDefs    *definition.Registry[*MapDef]
	Console    *console.Console
	Events     *ecs.EventManager

	// ImageDir resolves relative FromImage paths
	ImageDir string

	rng  *rand.Rand
	seed int64

	numCustomSteps int
	loadedCustoms  int
	runClones      []string

	images map[string]image.Image
}

// NewGenerator creates a generator with empty catalogs and a time-based seed
func NewGenerator() *Generator {
	g := &Generator{
		Tiles:      definition.NewRegistry[*tiles.Def]("tile"),
		Motifs:     motif.NewRegistry(),
		CustomDefs: definition.NewRegistry[*CustomDef]("custom step"),
		MapDefs:    definition.NewRegistry[*MapDef]("map"),
		Console:    console.New(),
		Events:     ecs.NewEventManager(),
		images:     make(map[string]image.Image),
	}
	g.SetSeed(time.Now().UnixNano())
	return g
}

// SetSeed allows setting a specific seed for reproducible maps
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// Seed returns the seed of the current run
func (g *Generator) Seed() int64 {
	return g.seed
}

// Rand returns the shared random source
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// RegisterTileDef adds a tile type and, for edged types, its 12 derived
// edge variants
func (g *Generator) RegisterTileDef(def *tiles.Def) error {
	if err := g.Tiles.Register(def.Name, def); err != nil {
		return err
	}
	for _, derived := range def.DeriveEdgeDefs() {
		if err := g.Tiles.Register(derived.Name, derived); err != nil {
			return fmt.Errorf("tile %q edge variant: %w", def.Name, err)
		}
	}
	return nil
}

// TileDef looks up a tile type by name
func (g *Generator) TileDef(name string) (*tiles.Def, error) {
	return g.Tiles.Lookup(name)
}

// TileDefForTexel returns the first base tile type whose texel color is
// exactly (r, gr, b, a). Types without a texel color never match.
func (g *Generator) TileDefForTexel(r, gr, b, a uint8) *tiles.Def {
	for _, name := range g.Tiles.Names() {
		def, _ := g.Tiles.Lookup(name)
		if def.IsDerived() || def.TexelColor.A == 0 {
			continue
		}
		tc := def.TexelColor
		if tc.R == r && tc.G == gr && tc.B == b && tc.A == a {
			return def
		}
	}
	return nil
}

// RegisterMotif adds a motif definition
func (g *Generator) RegisterMotif(def *motif.Def) error {
	return g.Motifs.Register(def.Name, def)
}

// RegisterCustomDef adds a custom step definition
func (g *Generator) RegisterCustomDef(def *CustomDef) error {
	return g.CustomDefs.Register(def.Name, def)
}

// RegisterMapDef adds a map definition
func (g *Generator) RegisterMapDef(def *MapDef) error {
	return g.MapDefs.Register(def.Name, def)
}

// FinishLoading marks the end of content loading. Motifs cloned so far
// belong to the catalogs and survive every regeneration.
func (g *Generator) FinishLoading() {
	g.loadedCustoms = g.numCustomSteps
	g.runClones = nil
}

// BeginRun tears down the motifs cloned by the previous run, rewinds the
// clone counter and reseeds the random source, so that a regeneration with
// the same seed reproduces the same map.
func (g *Generator) BeginRun() {
	for _, name := range g.runClones {
		g.Motifs.Remove(name)
	}
	g.runClones = nil
	g.numCustomSteps = g.loadedCustoms
	g.SetSeed(g.seed)
}

// cloneMotif clones source for a new custom step instance
func (g *Generator) cloneMotif(source, fallbackName string) (*motif.Def, error) {
	g.numCustomSteps++
	suffix := fmt.Sprintf("%d", g.numCustomSteps)

	var clone *motif.Def
	var err error
	if source == "" {
		clone = motif.NewDef(fmt.Sprintf("%s_%s", fallbackName, suffix))
		err = g.Motifs.Register(clone.Name, clone)
	} else {
		clone, err = motif.Clone(g.Motifs, source, suffix, g.Console)
	}
	if err != nil {
		return nil, err
	}

	g.runClones = append(g.runClones, clone.Name)
	return clone, nil
}
