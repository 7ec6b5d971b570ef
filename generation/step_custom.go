package generation

import (
	"fmt"

	"promage2/motif"
	"promage2/xmlutil"
)

// reservedCustomAttrs are read by the custom step itself. Every other
// attribute on a custom invocation overrides a variable of its sub-steps.
var reservedCustomAttrs = map[string]bool{
	"chanceToRun":   true,
	"numIterations": true,
	"chancePerTile": true,
	"motif":         true,
}

// CustomDef is a reusable sub-pipeline: prototype steps plus the motif they
// were declared against
type CustomDef struct {
	Name  string
	Motif string
	Steps []*Step
}

// NewCustomDefFromXML reads
//
//	<CustomMapGenStep name="Lake" motif="Water">
//	    <Motif name="Lake"><fluid value="Water"/></Motif>
//	    <Sprinkle .../>
//	</CustomMapGenStep>
//
// An inline <Motif> is registered; it names the definition's motif unless a
// motif attribute is given. Nested custom steps must already be registered.
func (g *Generator) NewCustomDefFromXML(e *xmlutil.Element) (*CustomDef, error) {
	name, err := e.RequireAttr("name")
	if err != nil {
		return nil, err
	}
	def := &CustomDef{
		Name:  name,
		Motif: xmlutil.ParseString(e, "motif", ""),
	}

	for _, child := range e.ChildrenNamed("Motif") {
		if !child.HasAttr("name") {
			child = child.Clone()
			child.SetAttr("name", name)
		}
		md, err := motif.NewDefFromXML(child, g.Console)
		if err != nil {
			return nil, fmt.Errorf("custom step %s: %w", name, err)
		}
		if err := g.RegisterMotif(md); err != nil {
			return nil, fmt.Errorf("custom step %s: %w", name, err)
		}
		if def.Motif == "" {
			def.Motif = md.Name
		}
	}

	for _, child := range e.Children {
		if child.Name == "Motif" {
			continue
		}
		proto, err := g.buildStep(child, motif.Hierarchy{CustomDef: def.Motif}, true)
		if err != nil {
			return nil, fmt.Errorf("custom step %s: %w", name, err)
		}
		def.Steps = append(def.Steps, proto)
	}
	return def, nil
}

// DefineObject copies the prototype steps into target and binds each copy
// to target's hierarchy
func (d *CustomDef) DefineObject(target *Step) error {
	c, ok := target.payload.(*customPayload)
	if !ok {
		return fmt.Errorf("custom step %s: target %s is not a custom step", d.Name, target.Name)
	}

	c.children = c.children[:0]
	for _, proto := range d.Steps {
		child, err := proto.Clone()
		if err != nil {
			return fmt.Errorf("custom step %s: %w", d.Name, err)
		}
		c.children = append(c.children, child)
	}
	target.rebind(target.hierarchy)
	for _, child := range c.children {
		child.RecalculateMotifVars(nil)
	}
	return nil
}

// customPayload runs its sub-steps in order. overrides holds the
// invocation's attribute values and sits in the CustomVar slot.
type customPayload struct {
	def       *CustomDef
	overrides *motif.Def
	children  []*Step
}

func (c *customPayload) fields() []field {
	return nil
}

func (c *customPayload) run(s *Step, m *Map) {
	for _, child := range c.children {
		child.execute(m)
	}
}

func (c *customPayload) setOverride(name, raw string) {
	if raw == "" {
		c.overrides.ClearValue(name)
		return
	}
	c.overrides.SetValue(name, raw)
}

func (c *customPayload) saveOverrides(e *xmlutil.Element) {
	for _, name := range c.overrides.Variables() {
		if value, ok := c.overrides.Value(name); ok {
			e.SetAttr(name, value)
		}
	}
}

// Overrides returns the motif holding a custom step's attribute overrides
func (s *Step) Overrides() *motif.Def {
	if c, ok := s.payload.(*customPayload); ok {
		return c.overrides
	}
	return nil
}

func (g *Generator) newCustomStep(def *CustomDef, e *xmlutil.Element, h motif.Hierarchy, detached bool) (*Step, error) {
	s := g.newBaseStep(def.Name, KindCustom, h, detached)
	s.MotifName = xmlutil.ParseString(e, "motif", "")
	s.hierarchy.Step = ""
	s.hierarchy.CustomMotif = s.MotifName

	overrides, err := g.cloneMotif(def.Motif, def.Name)
	if err != nil {
		return nil, fmt.Errorf("custom step %s: %w", def.Name, err)
	}
	overrides.ClearValues()
	for _, a := range e.Attrs {
		if !reservedCustomAttrs[a.Name] {
			overrides.SetValue(a.Name, a.Value)
		}
	}
	s.hierarchy.CustomVar = overrides.Name
	s.payload = &customPayload{def: def, overrides: overrides}

	if err := s.bindFields(e); err != nil {
		return nil, fmt.Errorf("custom step %s: %w", def.Name, err)
	}
	if !detached {
		s.warnUnknownAttributes(e, false)
	}
	if err := def.DefineObject(s); err != nil {
		return nil, err
	}
	s.RecalculateMotifVars(nil)
	return s, nil
}
