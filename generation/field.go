package generation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"promage2/geom"
	"promage2/motif"
	"promage2/tiles"
	"promage2/xmlutil"
)

// field is the type-erased view of a Field used when iterating a step's
// attributes
type field interface {
	key() string
	element() string
	attr() string
	raw() string
	bind(e *xmlutil.Element) error
	setRaw(raw string) error
	resolve(s *Step)
	references(varName string) bool
}

// Field is one motif-bindable attribute. Raw keeps the authored text so a
// "%var%" reference survives save-back; Value is the resolved literal.
type Field[T any] struct {
	Element  string // child element holding the attribute, "" for the step element
	Name     string
	Raw      string
	Default  T
	Value    T
	Type     string // motif variable type this field expects
	Required bool

	parse func(string) (T, error)
}

func newField[T any](elem, name, varType string, def T, parse func(string) (T, error)) *Field[T] {
	return &Field[T]{
		Element: elem,
		Name:    name,
		Default: def,
		Value:   def,
		Type:    varType,
		parse:   parse,
	}
}

// IsSet reports whether the attribute was authored
func (f *Field[T]) IsSet() bool {
	return f.Raw != ""
}

// IsBound reports whether the attribute is a motif variable reference
func (f *Field[T]) IsBound() bool {
	_, ok := motif.VariableRef(f.Raw)
	return ok
}

func (f *Field[T]) key() string {
	if f.Element == "" {
		return f.Name
	}
	return f.Element + "." + f.Name
}

func (f *Field[T]) element() string { return f.Element }
func (f *Field[T]) attr() string    { return f.Name }
func (f *Field[T]) raw() string     { return f.Raw }

func (f *Field[T]) references(varName string) bool {
	name, ok := motif.VariableRef(f.Raw)
	return ok && name == varName
}

// bind reads the raw attribute from e. Literal values are parsed straight
// away so malformed content fails at construction.
func (f *Field[T]) bind(e *xmlutil.Element) error {
	if e == nil || !e.HasAttr(f.Name) {
		if f.Required {
			return fmt.Errorf("%s: %w", f.key(), xmlutil.ErrMissingAttribute)
		}
		return nil
	}
	raw, _ := e.Attr(f.Name)
	return f.setRaw(raw)
}

func (f *Field[T]) setRaw(raw string) error {
	raw = strings.TrimSpace(raw)
	if _, isRef := motif.VariableRef(raw); !isRef && raw != "" {
		value, err := f.parse(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key(), err)
		}
		f.Value = value
	}
	f.Raw = raw
	if raw == "" {
		f.Value = f.Default
	}
	return nil
}

// resolve re-derives Value against the step's hierarchy. Problems reached
// through motif substitution are reported and fall back to Default.
func (f *Field[T]) resolve(s *Step) {
	if f.Raw == "" {
		f.Value = f.Default
		return
	}

	varName, isRef := motif.VariableRef(f.Raw)
	if !isRef {
		if value, err := f.parse(f.Raw); err == nil {
			f.Value = value
		}
		return
	}

	report := !s.detached
	literal, found := motif.Resolve(s.gen.Motifs, s.hierarchy, f.Raw)
	if !found {
		if report {
			s.gen.Console.Warnf("%s %s: motif variable %q has no value in %v", s.Name, f.key(), varName, s.hierarchy.Names())
		}
		f.Value = f.Default
		return
	}
	if declared, ok := motif.GetVariableType(s.gen.Motifs, s.hierarchy, varName); ok && report && !typeCompatible(declared, f.Type) {
		s.gen.Console.Warnf("%s %s: motif variable %q is declared %s, expected %s", s.Name, f.key(), varName, declared, f.Type)
	}

	value, err := f.parse(literal)
	if err != nil {
		if report {
			s.gen.Console.Errorf("%s %s: %v", s.Name, f.key(), err)
		}
		f.Value = f.Default
		return
	}
	f.Value = value
}

// typeCompatible reports whether a variable declared as declared can feed
// a field expecting want
func typeCompatible(declared, want string) bool {
	if declared == want || want == motif.TypeString {
		return true
	}
	switch want {
	case motif.TypeFloat:
		return declared == motif.TypeInt
	case motif.TypeIntRange:
		return declared == motif.TypeInt
	case motif.TypeFloatRange:
		return declared == motif.TypeInt || declared == motif.TypeFloat || declared == motif.TypeIntRange
	}
	return false
}

func parseString(s string) (string, error) { return s, nil }

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseBool(s string) (bool, error) {
	return strconv.ParseBool(s)
}

func stringField(elem, name, def string) *Field[string] {
	return newField(elem, name, motif.TypeString, def, parseString)
}

func floatField(elem, name string, def float64) *Field[float64] {
	return newField(elem, name, motif.TypeFloat, def, parseFloat)
}

func intField(elem, name string, def int) *Field[int] {
	return newField(elem, name, motif.TypeInt, def, parseInt)
}

func boolField(elem, name string, def bool) *Field[bool] {
	return newField(elem, name, motif.TypeBool, def, parseBool)
}

func intRangeField(elem, name string, def geom.IntRange) *Field[geom.IntRange] {
	return newField(elem, name, motif.TypeIntRange, def, geom.ParseIntRange)
}

func floatRangeField(elem, name string, def geom.FloatRange) *Field[geom.FloatRange] {
	return newField(elem, name, motif.TypeFloatRange, def, geom.ParseFloatRange)
}

// tileField resolves a tile type name through the generator's catalog.
// An unknown literal name is a content error.
func tileField(g *Generator, elem, name string) *Field[*tiles.Def] {
	return newField(elem, name, motif.TypeString, (*tiles.Def)(nil), func(s string) (*tiles.Def, error) {
		return g.TileDef(s)
	})
}

// anyHeatMapValue accepts every heat map value
var anyHeatMapValue = geom.FloatRange{Min: math.Inf(-1), Max: math.Inf(1)}
