package motif

import "strings"

// Hierarchy names the motifs a step resolves variables against, from the
// nearest scope to the furthest. A step read straight from a map definition
// fills Step and Scope; a step declared inside a custom definition fills
// Step and CustomDef until it is interwoven into a custom step instance.
type Hierarchy struct {
	Step        string   // motif named by the step's own XML
	CustomVar   string   // clone holding a custom invocation's attribute overrides
	CustomMotif string   // motif named by the custom invocation
	Scope       []string // enclosing chain; the map definition motif at top level
	CustomDef   string   // motif of the custom definition that declared the step

	interwoven bool
}

// Names returns the non-blank motif names, nearest first
func (h Hierarchy) Names() []string {
	names := make([]string, 0, 4+len(h.Scope))
	add := func(name string) {
		if name != "" {
			names = append(names, name)
		}
	}
	add(h.Step)
	add(h.CustomVar)
	add(h.CustomMotif)
	for _, s := range h.Scope {
		add(s)
	}
	add(h.CustomDef)
	return names
}

// Interwoven reports whether the hierarchy has been merged with a custom
// step instance
func (h Hierarchy) Interwoven() bool {
	return h.interwoven
}

// Interweave merges a child step's own slots with the slots of the custom
// instance that contains it: child step, custom var, custom motif, scope,
// custom definition motif. A container that was itself declared inside a
// custom definition contributes that definition's motif to the scope.
func (h Hierarchy) Interweave(container Hierarchy) Hierarchy {
	scope := append([]string(nil), container.Scope...)
	if container.CustomDef != "" {
		scope = append(scope, container.CustomDef)
	}
	return Hierarchy{
		Step:        h.Step,
		CustomVar:   container.CustomVar,
		CustomMotif: container.CustomMotif,
		Scope:       scope,
		CustomDef:   h.CustomDef,
		interwoven:  true,
	}
}

// Nest places a custom step instance inside another one. The inner instance
// keeps its own override slots and resolves everything else through the
// container's full chain.
func (h Hierarchy) Nest(container Hierarchy) Hierarchy {
	return Hierarchy{
		Step:        h.Step,
		CustomVar:   h.CustomVar,
		CustomMotif: h.CustomMotif,
		Scope:       container.Names(),
		CustomDef:   h.CustomDef,
		interwoven:  true,
	}
}

// WithScope returns a copy with the outermost slot replaced
func (h Hierarchy) WithScope(scope ...string) Hierarchy {
	out := h
	out.Scope = append([]string(nil), scope...)
	return out
}

// GetVariableValue walks the hierarchy and returns the first set value of
// name, or def when no motif in the chain sets it. Unregistered motif names
// are skipped.
func GetVariableValue(reg *Registry, h Hierarchy, name, def string) string {
	for _, motifName := range h.Names() {
		m, err := reg.Lookup(motifName)
		if err != nil {
			continue
		}
		if value, ok := m.Value(name); ok {
			return value
		}
	}
	return def
}

// GetVariableType walks the hierarchy for the first declared type of name
func GetVariableType(reg *Registry, h Hierarchy, name string) (string, bool) {
	for _, motifName := range h.Names() {
		m, err := reg.Lookup(motifName)
		if err != nil {
			continue
		}
		if varType, ok := m.Type(name); ok {
			return varType, true
		}
	}
	return "", false
}

// Resolve turns a raw attribute value into its literal. A "%name%" value is
// looked up nearest first; when the value found is itself a reference, the
// walk continues past the motif that supplied it, so an override such as
// fluid="%fluid%" reads the next scope out instead of itself. found is
// false when a reference cannot be satisfied.
func Resolve(reg *Registry, h Hierarchy, raw string) (value string, found bool) {
	names := h.Names()
	start := 0
	for {
		varName, isRef := VariableRef(raw)
		if !isRef {
			return raw, true
		}

		next := -1
		for i := start; i < len(names); i++ {
			m, err := reg.Lookup(names[i])
			if err != nil {
				continue
			}
			if v, ok := m.Value(varName); ok {
				raw = v
				next = i + 1
				break
			}
		}
		if next < 0 {
			return "", false
		}
		start = next
	}
}

// VariableRef extracts the variable name from a "%name%" reference
func VariableRef(raw string) (string, bool) {
	if len(raw) < 3 || !strings.HasPrefix(raw, "%") || !strings.HasSuffix(raw, "%") {
		return "", false
	}
	name := raw[1 : len(raw)-1]
	if strings.Contains(name, "%") {
		return "", false
	}
	return name, true
}

// FormatRef builds a "%name%" reference
func FormatRef(name string) string {
	return "%" + name + "%"
}
