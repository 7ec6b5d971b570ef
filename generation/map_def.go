package generation

import (
	"fmt"
	"strconv"

	"promage2/ecs"
	"promage2/geom"
	"promage2/motif"
	"promage2/xmlutil"
)

// MapDef is an authored map: dimensions, fill type, its motif and the
// ordered step elements. Steps are kept as XML and rebuilt on every
// regeneration.
type MapDef struct {
	Name     string
	Width    int
	Height   int
	FillType string
	Motif    string
	Steps    []*xmlutil.Element
}

// NewMapDefFromXML reads
//
//	<MapDefinition name="Island" width="48" height="40" fillType="Water" motif="Island">
//	    <MapGenSteps> ... </MapGenSteps>
//	</MapDefinition>
func NewMapDefFromXML(e *xmlutil.Element) (*MapDef, error) {
	name, err := e.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	fill, err := e.RequireAttr("fillType")
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	width, err := xmlutil.ParseInt(e, "width", 0)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	height, err := xmlutil.ParseInt(e, "height", 0)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", name, err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map %s: width and height must be positive", name)
	}

	def := &MapDef{
		Name:     name,
		Width:    width,
		Height:   height,
		FillType: fill,
		Motif:    xmlutil.ParseString(e, "motif", ""),
	}
	if steps := e.Child("MapGenSteps"); steps != nil {
		for _, step := range steps.Children {
			def.Steps = append(def.Steps, step.Clone())
		}
	}
	return def, nil
}

// Pipeline runs a map definition step by step and keeps a snapshot after
// each step for before/after inspection
type Pipeline struct {
	gen *Generator
	def *MapDef

	motifName string
	steps     []*Step
	snapshots []*Map
	stepIndex int

	motifSub ecs.SubscriptionID
}

// NewPipeline builds a pipeline for def and subscribes it to motif edits
func (g *Generator) NewPipeline(def *MapDef) *Pipeline {
	p := &Pipeline{
		gen:       g,
		def:       def,
		motifName: def.Motif,
	}
	p.motifSub = g.Events.Subscribe(EventMotifVarChanged, p.onMotifVarChanged)
	return p
}

// Close unsubscribes the pipeline from the event bus
func (p *Pipeline) Close() {
	p.gen.Events.Unsubscribe(EventMotifVarChanged, p.motifSub)
}

// Def returns the map definition being generated
func (p *Pipeline) Def() *MapDef {
	return p.def
}

// Regenerate discards every step, rebuilds them from the definition and
// runs the whole pipeline
func (p *Pipeline) Regenerate() error {
	p.gen.BeginRun()

	p.steps = p.steps[:0]
	scope := motif.Hierarchy{Scope: p.scope()}
	for i, e := range p.def.Steps {
		step, err := p.gen.NewStep(e, scope)
		if err != nil {
			return fmt.Errorf("map %s step %d: %w", p.def.Name, i, err)
		}
		p.steps = append(p.steps, step)
	}
	return p.Rerun()
}

// Rerun runs the existing steps again from a fresh fill with the same seed.
// Edits applied through RecalculateMotifVars or SetAttribute are kept.
func (p *Pipeline) Rerun() error {
	fill, err := p.gen.TileDef(p.def.FillType)
	if err != nil {
		return fmt.Errorf("map %s: %w", p.def.Name, err)
	}
	m, err := NewMap(p.def.Name, p.def.Width, p.def.Height, fill)
	if err != nil {
		return err
	}
	p.gen.SetSeed(p.gen.Seed())

	initial := m.Clone()
	initial.ResolveEdges()
	p.snapshots = append(p.snapshots[:0], initial)

	for _, step := range p.steps {
		step.Run(m)
		snapshot := m.Clone()
		snapshot.ResolveEdges()
		p.snapshots = append(p.snapshots, snapshot)
	}
	if p.stepIndex >= len(p.snapshots) {
		p.stepIndex = len(p.snapshots) - 1
	}
	return nil
}

func (p *Pipeline) scope() []string {
	if p.motifName == "" {
		return nil
	}
	return []string{p.motifName}
}

// Steps returns the built steps in run order
func (p *Pipeline) Steps() []*Step {
	return p.steps
}

// Snapshots returns the map after each step. Index 0 is the initial fill,
// index i is the map after step i.
func (p *Pipeline) Snapshots() []*Map {
	return p.snapshots
}

// Final returns the finished map, or nil before the first run
func (p *Pipeline) Final() *Map {
	if len(p.snapshots) == 0 {
		return nil
	}
	return p.snapshots[len(p.snapshots)-1]
}

// ChangedTiles returns the coordinates step i (1-based, matching
// Snapshots) touched, in first-touch order
func (p *Pipeline) ChangedTiles(i int) []geom.IntVec2 {
	if i < 1 || i > len(p.steps) {
		return nil
	}
	seen := make(map[geom.IntVec2]bool)
	var changed []geom.IntVec2
	for _, ev := range p.steps[i-1].GetCustomResults() {
		if ev.Name != EventChangeTile || seen[ev.Tile] {
			continue
		}
		seen[ev.Tile] = true
		changed = append(changed, ev.Tile)
	}
	return changed
}

// SaveToXml writes the definition back with the current step attributes,
// including edits made since it was loaded
func (p *Pipeline) SaveToXml() *xmlutil.Element {
	e := &xmlutil.Element{Name: "MapDefinition"}
	e.SetAttr("name", p.def.Name)
	e.SetAttr("width", strconv.Itoa(p.def.Width))
	e.SetAttr("height", strconv.Itoa(p.def.Height))
	e.SetAttr("fillType", p.def.FillType)
	if p.motifName != "" {
		e.SetAttr("motif", p.motifName)
	}

	steps := &xmlutil.Element{Name: "MapGenSteps"}
	for _, step := range p.steps {
		steps.AddChild(step.SaveToXml())
	}
	e.AddChild(steps)
	return e
}

// MotifName returns the motif currently bound as the map's outer scope
func (p *Pipeline) MotifName() string {
	return p.motifName
}

// SetMapDefMotif swaps the map's motif and cascades it through every step
func (p *Pipeline) SetMapDefMotif(name string) {
	p.motifName = name
	for _, step := range p.steps {
		step.UpdateParentMotifs(p.scope()...)
	}
}

// StepIndex returns the snapshot index being inspected
func (p *Pipeline) StepIndex() int {
	return p.stepIndex
}

// SetStepIndex selects the snapshot to inspect and announces the change
func (p *Pipeline) SetStepIndex(i int) {
	if len(p.snapshots) == 0 {
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.snapshots) {
		i = len(p.snapshots) - 1
	}
	if i == p.stepIndex {
		return
	}
	p.stepIndex = i
	p.gen.Events.Fire(EventStepIndexChanged, ecs.EventArgs{"index": strconv.Itoa(i)})
}

// Current returns the snapshot at the inspected index
func (p *Pipeline) Current() *Map {
	if len(p.snapshots) == 0 {
		return nil
	}
	return p.snapshots[p.stepIndex]
}

// onMotifVarChanged applies an optional motif value edit, re-resolves every
// step and reruns
func (p *Pipeline) onMotifVarChanged(event ecs.Event) {
	ne, ok := event.(ecs.NamedEvent)
	if !ok {
		return
	}
	args := ne.Args

	motifName := args.GetString("motif", "")
	varName := args.GetString("var", "")
	if value, set := args["value"]; set && motifName != "" && varName != "" {
		md, err := p.gen.Motifs.Lookup(motifName)
		if err != nil {
			p.gen.Console.Errorf("motif edit: %v", err)
			return
		}
		if value == "" {
			md.ClearValue(varName)
		} else {
			md.SetValue(varName, value)
		}
	}

	recalc := ecs.EventArgs{"attrName": args.GetString("attrName", AllAttributes)}
	for _, step := range p.steps {
		step.RecalculateMotifVars(recalc)
	}
	if err := p.Rerun(); err != nil {
		p.gen.Console.Errorf("%v", err)
	}
}
