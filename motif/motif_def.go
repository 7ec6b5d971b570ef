// Package motif implements named bags of variable defaults and their
// nearest-first resolution across nested override scopes.
package motif

import (
	"fmt"

	"promage2/definition"
	"promage2/xmlutil"
)

// Variable types recognised in <Motif> declarations
const (
	TypeString     = "string"
	TypeInt        = "int"
	TypeFloat      = "float"
	TypeBool       = "bool"
	TypeIntRange   = "intRange"
	TypeFloatRange = "floatRange"
)

var knownTypes = map[string]bool{
	TypeString: true, TypeInt: true, TypeFloat: true,
	TypeBool: true, TypeIntRange: true, TypeFloatRange: true,
}

// Registry is the catalog of motif definitions
type Registry = definition.Registry[*Def]

// NewRegistry creates an empty motif catalog
func NewRegistry() *Registry {
	return definition.NewRegistry[*Def]("motif")
}

// Warner receives recoverable content problems
type Warner interface {
	Warnf(format string, args ...any)
}

// Def is a named set of variable values and declared types. Values hold the
// current override, not necessarily the authored default.
type Def struct {
	Name string

	values map[string]string
	types  map[string]string
	order  []string
}

// NewDef creates an empty motif
func NewDef(name string) *Def {
	return &Def{
		Name:   name,
		values: make(map[string]string),
		types:  make(map[string]string),
	}
}

// NewDefFromXML reads <Motif name="..."><var value="..." type="..."/></Motif>.
// Each child element declares one variable named after its tag.
func NewDefFromXML(e *xmlutil.Element, warn Warner) (*Def, error) {
	name, err := e.RequireAttr("name")
	if err != nil {
		return nil, err
	}

	def := NewDef(name)
	for _, child := range e.Children {
		varName := child.Name
		if varType, ok := child.Attr("type"); ok {
			if !knownTypes[varType] {
				warn.Warnf("motif %s: variable %s has unknown type %q", name, varName, varType)
			}
			def.SetType(varName, varType)
		}
		value, ok := child.Attr("value")
		if !ok {
			warn.Warnf("motif %s: variable %s declared without a value", name, varName)
			def.track(varName)
			continue
		}
		def.SetValue(varName, value)
	}
	return def, nil
}

// Clone copies the motif registered as source into a new motif named
// <source>_<suffix> and registers it. An unregistered source yields an empty
// motif under the synthesized name.
func Clone(reg *Registry, source, suffix string, warn Warner) (*Def, error) {
	clone := NewDef(fmt.Sprintf("%s_%s", source, suffix))

	if original, err := reg.Lookup(source); err == nil {
		for _, name := range original.order {
			clone.track(name)
			if v, ok := original.values[name]; ok {
				clone.values[name] = v
			}
			if t, ok := original.types[name]; ok {
				clone.types[name] = t
			}
		}
	} else if warn != nil {
		// TODO: decide with content authors whether this should fail the load
		warn.Warnf("motif clone: source %q is not registered, %s starts empty", source, clone.Name)
	}

	if err := reg.Register(clone.Name, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// SetValue overrides a variable's current value
func (d *Def) SetValue(name, value string) {
	d.track(name)
	d.values[name] = value
}

// ClearValue unsets a variable, keeping its declared type
func (d *Def) ClearValue(name string) {
	delete(d.values, name)
}

// ClearValues unsets every variable, keeping declared types
func (d *Def) ClearValues() {
	d.values = make(map[string]string)
}

// SetType declares a variable's type
func (d *Def) SetType(name, varType string) {
	d.track(name)
	d.types[name] = varType
}

// Value returns a variable's current value and whether it is set
func (d *Def) Value(name string) (string, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Type returns a variable's declared type
func (d *Def) Type(name string) (string, bool) {
	t, ok := d.types[name]
	return t, ok
}

// Variables returns every known variable name in declaration order
func (d *Def) Variables() []string {
	return append([]string(nil), d.order...)
}

func (d *Def) track(name string) {
	if _, ok := d.values[name]; ok {
		return
	}
	if _, ok := d.types[name]; ok {
		return
	}
	for _, n := range d.order {
		if n == name {
			return
		}
	}
	d.order = append(d.order, name)
}
