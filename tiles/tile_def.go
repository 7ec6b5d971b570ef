package tiles

import (
	"fmt"
	"image/color"

	"promage2/config"
	"promage2/geom"
	"promage2/tags"
	"promage2/xmlutil"
)

// Rendering contexts
const (
	ContextSingle = "single"
	ContextEdged  = "edged"
)

// Def is an immutable tile type
type Def struct {
	Name         string
	DrawOrder    int
	Context      string
	SpriteCoords geom.IntVec2
	Tint         color.RGBA
	TexelColor   color.RGBA // Pixel color that selects this type in FromImage steps
	Tags         *tags.Tags // Stamped onto tiles that take this type

	AllowsSight    bool
	AllowsWalking  bool
	AllowsFlying   bool
	AllowsSwimming bool

	// Set on derived edge defs only
	BaseName string
	EdgeCase int

	edges []*Def
}

// NewDefFromXML builds a tile type from a <TileDefinition> element
func NewDefFromXML(e *xmlutil.Element) (*Def, error) {
	name, err := e.RequireAttr("name")
	if err != nil {
		return nil, err
	}

	def := &Def{
		Name:    name,
		Context: xmlutil.ParseString(e, "context", ContextSingle),
		Tags:    tags.New(xmlutil.ParseString(e, "tags", "")),
	}
	if def.Context != ContextSingle && def.Context != ContextEdged {
		return nil, fmt.Errorf("tile %q: unknown context %q", name, def.Context)
	}

	var parseErr error
	check := func(err error) {
		if parseErr == nil && err != nil {
			parseErr = err
		}
	}

	var err2 error
	def.DrawOrder, err2 = xmlutil.ParseInt(e, "drawOrder", 0)
	check(err2)
	def.SpriteCoords, err2 = xmlutil.ParseIntVec2(e, "spriteCoords", geom.IntVec2{})
	check(err2)
	def.Tint, err2 = xmlutil.ParseColor(e, "tint", color.RGBA{255, 255, 255, 255})
	check(err2)
	def.TexelColor, err2 = xmlutil.ParseColor(e, "texelColor", color.RGBA{})
	check(err2)
	def.AllowsSight, err2 = xmlutil.ParseBool(e, "allowsSight", false)
	check(err2)
	def.AllowsWalking, err2 = xmlutil.ParseBool(e, "allowsWalking", false)
	check(err2)
	def.AllowsFlying, err2 = xmlutil.ParseBool(e, "allowsFlying", false)
	check(err2)
	def.AllowsSwimming, err2 = xmlutil.ParseBool(e, "allowsSwimming", false)
	check(err2)
	if parseErr != nil {
		return nil, fmt.Errorf("tile %q: %w", name, parseErr)
	}

	return def, nil
}

// IsEdged reports whether the type derives neighbor-aware edge variants
func (d *Def) IsEdged() bool {
	return d.Context == ContextEdged
}

// IsDerived reports whether the def is an edge variant of another type
func (d *Def) IsDerived() bool {
	return d.BaseName != ""
}

// EdgeDef returns the derived def for the given case index, or nil
func (d *Def) EdgeDef(edgeCase int) *Def {
	if edgeCase < 0 || edgeCase >= len(d.edges) {
		return nil
	}
	return d.edges[edgeCase]
}

// GetUVs returns the sprite rectangle in normalized sheet coordinates
func (d *Def) GetUVs() geom.AABB2 {
	cols := float64(config.SpriteSheetCols)
	rows := float64(config.SpriteSheetRows)
	return geom.AABB2{
		MinX: float64(d.SpriteCoords.X) / cols,
		MinY: float64(d.SpriteCoords.Y) / rows,
		MaxX: float64(d.SpriteCoords.X+1) / cols,
		MaxY: float64(d.SpriteCoords.Y+1) / rows,
	}
}

// DeriveEdgeDefs creates the 12 edge variants of an edged type. Each is a
// copy of the base named Base_<col>_<row> with the sprite shifted to that
// cell of the edge block. Single-context defs derive nothing.
func (d *Def) DeriveEdgeDefs() []*Def {
	if !d.IsEdged() || d.IsDerived() {
		return nil
	}
	if d.edges != nil {
		return append([]*Def(nil), d.edges...)
	}

	d.edges = make([]*Def, len(EdgeCases))
	for i, c := range EdgeCases {
		derived := *d
		derived.Name = EdgeDefName(d.Name, c.Col, c.Row)
		derived.SpriteCoords = d.SpriteCoords.Add(geom.IntVec2{X: c.Col - 1, Y: c.Row - 1})
		derived.Tags = d.Tags.Clone()
		derived.BaseName = d.Name
		derived.EdgeCase = i
		derived.edges = nil
		d.edges[i] = &derived
	}
	return append([]*Def(nil), d.edges...)
}

// EdgeDefName builds the registry name of a derived edge def
func EdgeDefName(base string, col, row int) string {
	return fmt.Sprintf("%s_%d_%d", base, col, row)
}
