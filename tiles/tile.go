package tiles

import (
	"image/color"

	"promage2/geom"
)

// Grid gives tiles access to their neighbors
type Grid interface {
	// TileAt returns nil for coordinates outside the grid
	TileAt(x, y int) *Tile
}

// Tile is one grid cell
type Tile struct {
	Coords   geom.IntVec2
	Metadata *Metadata

	def *Def
}

// NewTile creates a tile of the given type. def must not be nil.
func NewTile(coords geom.IntVec2, def *Def) *Tile {
	t := &Tile{
		Coords:   coords,
		Metadata: NewMetadata(),
	}
	t.SetTileType(def)
	return t
}

// Def returns the tile's current type
func (t *Tile) Def() *Def {
	return t.def
}

// Type returns the name of the tile's current type
func (t *Tile) Type() string {
	return t.def.Name
}

// IsType reports whether the tile currently has the named type
func (t *Tile) IsType(name string) bool {
	return t.def.Name == name
}

// SetTileType swaps the tile's type, clears the previous type's default
// tags and stamps the new type's. Tags set by steps survive unless the old
// type also carried them. A nil def is ignored so a tile never loses its type.
func (t *Tile) SetTileType(def *Def) {
	if def == nil {
		return
	}
	if old := t.def; old != nil && old.Tags != nil && old.Tags.Len() > 0 {
		t.Metadata.Tags.ClearTagList(old.Tags.List())
	}
	t.def = def
	if def.Tags != nil && def.Tags.Len() > 0 {
		t.Metadata.Tags.SetTagList(def.Tags.List())
	}
}

func (t *Tile) AllowsSight() bool    { return t.def.AllowsSight }
func (t *Tile) AllowsWalking() bool  { return t.def.AllowsWalking }
func (t *Tile) AllowsFlying() bool   { return t.def.AllowsFlying }
func (t *Tile) AllowsSwimming() bool { return t.def.AllowsSwimming }

// GetUVs returns the base sprite rectangle
func (t *Tile) GetUVs() geom.AABB2 {
	return t.def.GetUVs()
}

// GetTint returns the base sprite tint
func (t *Tile) GetTint() color.RGBA {
	return t.def.Tint
}

// AddTypesFromNeighbors pushes edge overlays for every edged neighbor type
// that differs from this tile's type. Neighbor positions are gathered into
// one mask per type, then each mask is decomposed through EdgeCases.
func (t *Tile) AddTypesFromNeighbors(grid Grid) {
	masks := make(map[string]NeighborBit)
	defs := make(map[string]*Def)
	var order []string

	for _, off := range neighborOffsets {
		neighbor := grid.TileAt(t.Coords.X+off.dx, t.Coords.Y+off.dy)
		if neighbor == nil {
			continue
		}
		nd := neighbor.Def()
		if !nd.IsEdged() || nd.Name == t.def.Name {
			continue
		}
		if _, seen := masks[nd.Name]; !seen {
			order = append(order, nd.Name)
			defs[nd.Name] = nd
		}
		masks[nd.Name] |= off.bit
	}

	for _, name := range order {
		def := defs[name]
		for _, edgeCase := range MatchEdgeCases(masks[name]) {
			if overlay := def.EdgeDef(edgeCase); overlay != nil {
				t.Metadata.PushOverlay(overlay)
			}
		}
	}
}

// Clone returns an independent copy sharing the immutable def
func (t *Tile) Clone() *Tile {
	return &Tile{
		Coords:   t.Coords,
		Metadata: t.Metadata.Clone(),
		def:      t.def,
	}
}
