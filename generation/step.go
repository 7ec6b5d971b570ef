package generation

import (
	"fmt"
	"strconv"

	"promage2/ecs"
	"promage2/geom"
	"promage2/motif"
	"promage2/tiles"
	"promage2/xmlutil"
)

// StepKind identifies the behavior of a map generation step
type StepKind int

const (
	KindCellularAutomata StepKind = iota
	KindDistanceField
	KindFromImage
	KindPerlinNoise
	KindRoomsAndPaths
	KindSprinkle
	KindCustom
)

var stepKindNames = map[StepKind]string{
	KindCellularAutomata: "CellularAutomata",
	KindDistanceField:    "DistanceField",
	KindFromImage:        "FromImage",
	KindPerlinNoise:      "PerlinNoise",
	KindRoomsAndPaths:    "RoomsAndPaths",
	KindSprinkle:         "Sprinkle",
	KindCustom:           "Custom",
}

func (k StepKind) String() string {
	if name, ok := stepKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseStepKind maps an element name to a built-in kind. Custom steps are
// named after their definition and never match.
func ParseStepKind(name string) (StepKind, bool) {
	for kind, kindName := range stepKindNames {
		if kind != KindCustom && kindName == name {
			return kind, true
		}
	}
	return 0, false
}

// Recorded event names
const (
	EventChangeTile = "ChangeTile"
	EventSpawnActor = "SpawnActor"
	EventSpawnItem  = "SpawnItem"
)

// AllAttributes asks RecalculateMotifVars to re-resolve every field
const AllAttributes = "All"

// Child elements holding grouped attributes
const (
	elemConditions = "Conditions"
	elemResults    = "Results"
)

// CustomEvent is one recorded tile mutation
type CustomEvent struct {
	Name     string
	Tile     geom.IntVec2
	Args     ecs.EventArgs
	StepName string
}

// payload is the kind-specific half of a step
type payload interface {
	fields() []field
	run(s *Step, m *Map)
}

// Step is one pipeline stage bound to a motif hierarchy
type Step struct {
	Kind      StepKind
	Name      string // element name: the kind name or a custom definition name
	MotifName string

	ChanceToRun   *Field[float64]
	NumIterations *Field[geom.IntRange]
	ChancePerTile *Field[float64]

	IfIsType       *Field[*tiles.Def]
	IfHasTags      *Field[string]
	IfHeatMap      *Field[string]
	IfHeatMapRange *Field[geom.FloatRange]

	SetType         *Field[*tiles.Def]
	SetTags         *Field[string]
	SetHeatMap      *Field[string]
	SetHeatMapValue *Field[geom.FloatRange]
	AddHeatMapValue *Field[geom.FloatRange]
	SpawnActor      *Field[string]
	SpawnItem       *Field[string]

	gen       *Generator
	hierarchy motif.Hierarchy
	payload   payload
	events    []CustomEvent

	// detached steps are custom definition prototypes, or copies of them
	// not yet bound into an instance. Their variables are expected to be
	// unresolvable, so resolution stays quiet.
	detached bool
}

func (g *Generator) newBaseStep(name string, kind StepKind, h motif.Hierarchy, detached bool) *Step {
	return &Step{
		Kind:      kind,
		Name:      name,
		gen:       g,
		hierarchy: h,
		detached:  detached,

		ChanceToRun:   floatField("", "chanceToRun", 1),
		NumIterations: intRangeField("", "numIterations", geom.NewIntRange(1)),
		ChancePerTile: floatField("", "chancePerTile", 1),

		IfIsType:       tileField(g, elemConditions, "ifIsType"),
		IfHasTags:      stringField(elemConditions, "ifHasTags", ""),
		IfHeatMap:      stringField(elemConditions, "ifHeatMap", ""),
		IfHeatMapRange: floatRangeField(elemConditions, "ifHeatMapRange", anyHeatMapValue),

		SetType:         tileField(g, elemResults, "setType"),
		SetTags:         stringField(elemResults, "setTags", ""),
		SetHeatMap:      stringField(elemResults, "setHeatMap", ""),
		SetHeatMapValue: floatRangeField(elemResults, "setHeatMapValue", geom.NewFloatRange(0)),
		AddHeatMapValue: floatRangeField(elemResults, "addHeatMapValue", geom.NewFloatRange(0)),
		SpawnActor:      stringField(elemResults, "spawnActor", ""),
		SpawnItem:       stringField(elemResults, "spawnItem", ""),
	}
}

// NewStep builds a step from its XML element. Built-in kinds are matched by
// element name, anything else must name a registered custom definition.
func (g *Generator) NewStep(e *xmlutil.Element, h motif.Hierarchy) (*Step, error) {
	return g.buildStep(e, h, false)
}

func (g *Generator) buildStep(e *xmlutil.Element, h motif.Hierarchy, detached bool) (*Step, error) {
	if kind, ok := ParseStepKind(e.Name); ok {
		return g.newKindStep(kind, e, h, detached)
	}
	if def, err := g.CustomDefs.Lookup(e.Name); err == nil {
		return g.newCustomStep(def, e, h, detached)
	}
	return nil, fmt.Errorf("unknown map generation step %q", e.Name)
}

// NewEmptyStep creates a step of the named kind or custom definition with
// every attribute at its default
func (g *Generator) NewEmptyStep(name string, h motif.Hierarchy) (*Step, error) {
	return g.NewStep(xmlutil.NewElement(name), h)
}

func (g *Generator) newKindStep(kind StepKind, e *xmlutil.Element, h motif.Hierarchy, detached bool) (*Step, error) {
	s := g.newBaseStep(e.Name, kind, h, detached)
	s.MotifName = xmlutil.ParseString(e, "motif", "")
	s.hierarchy.Step = s.MotifName

	switch kind {
	case KindCellularAutomata:
		s.payload = newCellularAutomata(g)
	case KindDistanceField:
		s.payload = newDistanceField()
	case KindFromImage:
		s.payload = newFromImage()
	case KindPerlinNoise:
		s.payload = newPerlinNoise()
	case KindRoomsAndPaths:
		s.payload = newRoomsAndPaths(g)
	case KindSprinkle:
		s.payload = newSprinkle()
	default:
		return nil, fmt.Errorf("step %q: kind %s cannot be built from attributes", e.Name, kind)
	}

	if err := s.bindFields(e); err != nil {
		return nil, fmt.Errorf("step %s: %w", e.Name, err)
	}
	if !detached {
		s.warnUnknownAttributes(e, true)
	}
	s.RecalculateMotifVars(nil)
	return s, nil
}

func (s *Step) commonFields() []field {
	return []field{
		s.ChanceToRun, s.NumIterations, s.ChancePerTile,
		s.IfIsType, s.IfHasTags, s.IfHeatMap, s.IfHeatMapRange,
		s.SetType, s.SetTags, s.SetHeatMap, s.SetHeatMapValue, s.AddHeatMapValue,
		s.SpawnActor, s.SpawnItem,
	}
}

func (s *Step) fields() []field {
	return append(s.commonFields(), s.payload.fields()...)
}

func (s *Step) bindFields(e *xmlutil.Element) error {
	for _, f := range s.fields() {
		src := e
		if f.element() != "" {
			src = e.Child(f.element())
		}
		if err := f.bind(src); err != nil {
			return err
		}
	}
	return nil
}

// warnUnknownAttributes reports authored attributes no field reads
func (s *Step) warnUnknownAttributes(e *xmlutil.Element, checkStepAttrs bool) {
	known := map[string]map[string]bool{"": {"motif": true}}
	for _, f := range s.fields() {
		if known[f.element()] == nil {
			known[f.element()] = make(map[string]bool)
		}
		known[f.element()][f.attr()] = true
	}

	if checkStepAttrs {
		for _, a := range e.Attrs {
			if !known[""][a.Name] {
				s.gen.Console.Warnf("%s: unknown attribute %q", s.Name, a.Name)
			}
		}
	}
	for _, child := range e.Children {
		attrs, ok := known[child.Name]
		if !ok {
			s.gen.Console.Warnf("%s: unknown element <%s>", s.Name, child.Name)
			continue
		}
		for _, a := range child.Attrs {
			if !attrs[a.Name] {
				s.gen.Console.Warnf("%s: unknown attribute %s.%s", s.Name, child.Name, a.Name)
			}
		}
	}
}

// Hierarchy returns the motif chain the step resolves against
func (s *Step) Hierarchy() motif.Hierarchy {
	return s.hierarchy
}

// Children returns the sub-steps of a custom step
func (s *Step) Children() []*Step {
	if c, ok := s.payload.(*customPayload); ok {
		return c.children
	}
	return nil
}

// Run executes the step against m. It returns false when the chance to run
// roll fails.
func (s *Step) Run(m *Map) bool {
	s.clearEvents()
	return s.execute(m)
}

func (s *Step) execute(m *Map) bool {
	if !s.roll(s.ChanceToRun.Value) {
		return false
	}
	iterations := s.NumIterations.Value.Roll(s.gen.rng)
	for i := 0; i < iterations; i++ {
		s.payload.run(s, m)
	}
	return true
}

func (s *Step) clearEvents() {
	s.events = nil
	for _, child := range s.Children() {
		child.clearEvents()
	}
}

// roll draws against a probability. Certain outcomes consume no randomness.
func (s *Step) roll(chance float64) bool {
	if chance >= 1 {
		return true
	}
	if chance <= 0 {
		return false
	}
	return s.gen.rng.Float64() < chance
}

// tilePassesConditions evaluates the per-tile filters. A type filter whose
// motif variable failed to resolve never passes.
func (s *Step) tilePassesConditions(t *tiles.Tile) bool {
	if s.IfIsType.IsSet() {
		if s.IfIsType.Value == nil || t.Def() != s.IfIsType.Value {
			return false
		}
	}
	if csv := s.IfHasTags.Value; csv != "" && !t.Metadata.Tags.HasTags(csv) {
		return false
	}
	if name := s.IfHeatMap.Value; name != "" {
		value, ok := t.Metadata.GetHeatMap(name)
		if !ok || !s.IfHeatMapRange.Value.Contains(value) {
			return false
		}
	}
	return true
}

// tileSelected combines the conditions with the chance per tile
func (s *Step) tileSelected(t *tiles.Tile) bool {
	return s.tilePassesConditions(t) && s.roll(s.ChancePerTile.Value)
}

// applyResults applies the Results element to one tile
func (s *Step) applyResults(m *Map, t *tiles.Tile) {
	if s.SetType.Value != nil {
		s.ChangeTileType(t, s.SetType.Value)
	}
	if csv := s.SetTags.Value; csv != "" {
		s.ChangeTileTags(t, csv)
	}
	if name := s.SetHeatMap.Value; name != "" {
		if s.SetHeatMapValue.IsSet() || !s.AddHeatMapValue.IsSet() {
			s.ChangeTileHeatMap(t, name, s.SetHeatMapValue.Value.Roll(s.gen.rng))
		}
		if s.AddHeatMapValue.IsSet() {
			current, _ := t.Metadata.GetHeatMap(name)
			s.ChangeTileHeatMap(t, name, current+s.AddHeatMapValue.Value.Roll(s.gen.rng))
		}
	}
	if actor := s.SpawnActor.Value; actor != "" {
		m.SpawnActor(t.Coords.X, t.Coords.Y, actor, s.Name)
		s.record(EventSpawnActor, t, ecs.EventArgs{"definition": actor})
	}
	if item := s.SpawnItem.Value; item != "" {
		m.SpawnItem(t.Coords.X, t.Coords.Y, item, s.Name)
		s.record(EventSpawnItem, t, ecs.EventArgs{"definition": item})
	}
}

func (s *Step) record(name string, t *tiles.Tile, args ecs.EventArgs) {
	s.events = append(s.events, CustomEvent{
		Name:     name,
		Tile:     t.Coords,
		Args:     args,
		StepName: s.Name,
	})
}

// ChangeTileType sets the tile's type and records the change
func (s *Step) ChangeTileType(t *tiles.Tile, def *tiles.Def) {
	if def == nil || t.Def() == def {
		return
	}
	old := t.Type()
	t.SetTileType(def)
	s.record(EventChangeTile, t, ecs.EventArgs{"attr": "type", "old": old, "new": def.Name})
}

// ChangeTileTags applies a tag csv and records the change
func (s *Step) ChangeTileTags(t *tiles.Tile, csv string) {
	old := t.Metadata.Tags.String()
	t.Metadata.Tags.SetTags(csv)
	if updated := t.Metadata.Tags.String(); updated != old {
		s.record(EventChangeTile, t, ecs.EventArgs{"attr": "tags", "old": old, "new": updated})
	}
}

// ChangeTileHeatMap sets a heat map value and records the change
func (s *Step) ChangeTileHeatMap(t *tiles.Tile, name string, value float64) {
	old := ""
	if prev, ok := t.Metadata.GetHeatMap(name); ok {
		old = formatValue(prev)
	}
	t.Metadata.SetHeatMap(name, value)
	s.record(EventChangeTile, t, ecs.EventArgs{"attr": "heatMap", "name": name, "old": old, "new": formatValue(value)})
}

// ChangeTileDistance writes a flood fill distance
func (s *Step) ChangeTileDistance(t *tiles.Tile, name string, distance int) {
	s.ChangeTileHeatMap(t, name, float64(distance))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Events returns the events recorded by the last Run of this step alone
func (s *Step) Events() []CustomEvent {
	return s.events
}

// GetCustomResults returns every recorded event, flattened through custom
// sub-steps in execution order
func (s *Step) GetCustomResults() []CustomEvent {
	results := append([]CustomEvent(nil), s.events...)
	for _, child := range s.Children() {
		results = append(results, child.GetCustomResults()...)
	}
	return results
}

// RecalculateMotifVars re-resolves fields against the current hierarchy.
// args["attrName"] selects one attribute ("attr" or "Element.attr"), or
// every field referencing the variable of that name; absent or "All"
// selects everything.
func (s *Step) RecalculateMotifVars(args ecs.EventArgs) {
	attrName := args.GetString("attrName", AllAttributes)
	for _, f := range s.fields() {
		if attrName == AllAttributes || f.key() == attrName || f.attr() == attrName || f.references(attrName) {
			f.resolve(s)
		}
	}
	for _, child := range s.Children() {
		child.RecalculateMotifVars(nil)
	}
}

// SetAttribute changes one authored attribute and re-resolves it. On a
// custom step, any attribute other than the common ones is a variable
// override for the sub-steps.
func (s *Step) SetAttribute(key, raw string) error {
	if c, ok := s.payload.(*customPayload); ok && !reservedCustomAttrs[key] {
		c.setOverride(key, raw)
		for _, child := range c.children {
			child.RecalculateMotifVars(nil)
		}
		return nil
	}

	if key == "motif" {
		s.setMotifName(raw)
		s.RecalculateMotifVars(nil)
		return nil
	}
	for _, f := range s.fields() {
		if f.key() != key {
			continue
		}
		if err := f.setRaw(raw); err != nil {
			return err
		}
		f.resolve(s)
		return nil
	}
	return fmt.Errorf("%s has no attribute %q", s.Name, key)
}

func (s *Step) setMotifName(name string) {
	s.MotifName = name
	h := s.hierarchy
	if s.Kind == KindCustom {
		h.CustomMotif = name
	} else {
		h.Step = name
	}
	s.rebind(h)
}

// SaveToXml writes the step back out. Only authored attributes are written
// and bound attributes keep their %var% reference.
func (s *Step) SaveToXml() *xmlutil.Element {
	e := xmlutil.NewElement(s.Name)
	if s.MotifName != "" {
		e.SetAttr("motif", s.MotifName)
	}

	children := make(map[string]*xmlutil.Element)
	for _, f := range s.fields() {
		if f.raw() == "" {
			continue
		}
		target := e
		if name := f.element(); name != "" {
			if children[name] == nil {
				children[name] = xmlutil.NewElement(name)
				e.AddChild(children[name])
			}
			target = children[name]
		}
		target.SetAttr(f.attr(), f.raw())
	}

	if c, ok := s.payload.(*customPayload); ok {
		c.saveOverrides(e)
	}
	return e
}

// Clone rebuilds an independent step from the saved XML with the same
// hierarchy
func (s *Step) Clone() (*Step, error) {
	return s.gen.buildStep(s.SaveToXml(), s.hierarchy, s.detached)
}

// rebind replaces the hierarchy and re-derives every sub-step's chain
func (s *Step) rebind(h motif.Hierarchy) {
	s.hierarchy = h
	for _, child := range s.Children() {
		child.detached = s.detached
		if child.Kind == KindCustom {
			child.rebind(child.hierarchy.Nest(s.hierarchy))
		} else {
			child.rebind(child.hierarchy.Interweave(s.hierarchy))
		}
	}
}

// UpdateParentMotifs swaps the outermost scope, typically the map
// definition's motif, and re-resolves the step and all of its sub-steps
func (s *Step) UpdateParentMotifs(scope ...string) {
	s.rebind(s.hierarchy.WithScope(scope...))
	s.RecalculateMotifVars(nil)
}
