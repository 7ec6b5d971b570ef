package generation

import (
	"fmt"

	"promage2/components"
	"promage2/ecs"
	"promage2/geom"
	"promage2/tiles"
)

// Map is the mutable canvas generation steps work on. Tiles are stored
// row-major. Actor and item markers live in an ecs world so snapshots can
// carry them alongside the grid.
type Map struct {
	Name   string
	Width  int
	Height int

	tiles   []*tiles.Tile
	markers *ecs.World
}

// Marker is a placed actor or item marker
type Marker struct {
	X, Y       int
	Kind       components.MarkerKind
	Definition string
	StepName   string
}

// NewMap creates a map filled with one tile type
func NewMap(name string, width, height int, fill *tiles.Def) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map %q: invalid dimensions %dx%d", name, width, height)
	}
	if fill == nil {
		return nil, fmt.Errorf("map %q: missing fill type", name)
	}

	m := &Map{
		Name:    name,
		Width:   width,
		Height:  height,
		tiles:   make([]*tiles.Tile, width*height),
		markers: ecs.NewWorld(),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.tiles[y*width+x] = tiles.NewTile(geom.IntVec2{X: x, Y: y}, fill)
		}
	}
	return m, nil
}

// IsValidTileCoords reports whether (x, y) lies inside the map
func (m *Map) IsValidTileCoords(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// TileIndex converts coordinates to an index into Tiles
func (m *Map) TileIndex(x, y int) int {
	return y*m.Width + x
}

// TileAt returns the tile at (x, y) or nil when out of bounds
func (m *Map) TileAt(x, y int) *tiles.Tile {
	if !m.IsValidTileCoords(x, y) {
		return nil
	}
	return m.tiles[m.TileIndex(x, y)]
}

// Tiles returns every tile in row-major order
func (m *Map) Tiles() []*tiles.Tile {
	return m.tiles
}

// cardinalOffsets in N, E, S, W order
var cardinalOffsets = []geom.IntVec2{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// CardinalNeighbors returns the in-bounds neighbors of (x, y) in N, E, S, W order
func (m *Map) CardinalNeighbors(x, y int) []*tiles.Tile {
	neighbors := make([]*tiles.Tile, 0, 4)
	for _, off := range cardinalOffsets {
		if t := m.TileAt(x+off.X, y+off.Y); t != nil {
			neighbors = append(neighbors, t)
		}
	}
	return neighbors
}

// Neighbors returns the in-bounds tiles within a square radius of (x, y),
// excluding the tile itself
func (m *Map) Neighbors(x, y, radius int) []*tiles.Tile {
	var neighbors []*tiles.Tile
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if t := m.TileAt(x+dx, y+dy); t != nil {
				neighbors = append(neighbors, t)
			}
		}
	}
	return neighbors
}

// SpawnActor places an actor marker
func (m *Map) SpawnActor(x, y int, definition, stepName string) ecs.EntityID {
	return m.spawnMarker(x, y, components.MarkerActor, definition, stepName)
}

// SpawnItem places an item marker
func (m *Map) SpawnItem(x, y int, definition, stepName string) ecs.EntityID {
	return m.spawnMarker(x, y, components.MarkerItem, definition, stepName)
}

func (m *Map) spawnMarker(x, y int, kind components.MarkerKind, definition, stepName string) ecs.EntityID {
	entity := m.markers.CreateEntity()
	m.markers.AddComponent(entity.ID, components.Position, &components.PositionComponent{X: x, Y: y})
	m.markers.AddComponent(entity.ID, components.Marker, &components.MarkerComponent{
		Kind:       kind,
		Definition: definition,
		StepName:   stepName,
	})
	m.markers.TagEntity(entity.ID, string(kind))
	return entity.ID
}

// Markers returns every placed marker in placement order
func (m *Map) Markers() []Marker {
	var out []Marker
	for _, entity := range m.markers.GetAllEntities() {
		posComp, ok := m.markers.GetComponent(entity.ID, components.Position)
		if !ok {
			continue
		}
		markerComp, ok := m.markers.GetComponent(entity.ID, components.Marker)
		if !ok {
			continue
		}
		pos := posComp.(*components.PositionComponent)
		marker := markerComp.(*components.MarkerComponent)
		out = append(out, Marker{
			X:          pos.X,
			Y:          pos.Y,
			Kind:       marker.Kind,
			Definition: marker.Definition,
			StepName:   marker.StepName,
		})
	}
	return out
}

// MarkersTagged returns the ids of markers of one kind
func (m *Map) MarkersTagged(kind components.MarkerKind) []ecs.EntityID {
	entities := m.markers.GetEntitiesWithTag(string(kind))
	ids := make([]ecs.EntityID, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}
	return ids
}

// Clone returns a deep snapshot of the map
func (m *Map) Clone() *Map {
	out := &Map{
		Name:    m.Name,
		Width:   m.Width,
		Height:  m.Height,
		tiles:   make([]*tiles.Tile, len(m.tiles)),
		markers: m.markers.Clone(),
	}
	for i, t := range m.tiles {
		out.tiles[i] = t.Clone()
	}
	return out
}

// ResolveEdges rebuilds every tile's edge overlays from its neighbors
func (m *Map) ResolveEdges() {
	for _, t := range m.tiles {
		t.Metadata.ClearOverlays()
	}
	for _, t := range m.tiles {
		t.AddTypesFromNeighbors(m)
	}
}
