package generation

import (
	"promage2/geom"
	"promage2/tiles"
)

// cellularAutomata applies Results to tiles whose neighborhood matches.
// Every iteration reads the map as it was when the iteration began.
type cellularAutomata struct {
	Radius            *Field[int]
	IfNeighborType    *Field[*tiles.Def]
	IfNeighborHasTags *Field[string]
	IfNumNeighbors    *Field[geom.IntRange]
}

func newCellularAutomata(g *Generator) *cellularAutomata {
	return &cellularAutomata{
		Radius:            intField("", "radius", 1),
		IfNeighborType:    tileField(g, elemConditions, "ifNeighborType"),
		IfNeighborHasTags: stringField(elemConditions, "ifNeighborHasTags", ""),
		IfNumNeighbors:    intRangeField(elemConditions, "ifNumNeighbors", geom.IntRange{Min: 1, Max: 8}),
	}
}

func (ca *cellularAutomata) fields() []field {
	return []field{ca.Radius, ca.IfNeighborType, ca.IfNeighborHasTags, ca.IfNumNeighbors}
}

func (ca *cellularAutomata) run(s *Step, m *Map) {
	snapshot := m.Clone()
	radius := ca.Radius.Value
	if radius < 1 {
		radius = 1
	}

	for i, before := range snapshot.Tiles() {
		if !s.tilePassesConditions(before) {
			continue
		}
		count := 0
		for _, neighbor := range snapshot.Neighbors(before.Coords.X, before.Coords.Y, radius) {
			if ca.neighborMatches(neighbor) {
				count++
			}
		}
		if !ca.IfNumNeighbors.Value.Contains(count) {
			continue
		}
		if !s.roll(s.ChancePerTile.Value) {
			continue
		}
		s.applyResults(m, m.Tiles()[i])
	}
}

func (ca *cellularAutomata) neighborMatches(t *tiles.Tile) bool {
	if ca.IfNeighborType.IsSet() {
		if ca.IfNeighborType.Value == nil || t.Def() != ca.IfNeighborType.Value {
			return false
		}
	}
	if csv := ca.IfNeighborHasTags.Value; csv != "" && !t.Metadata.Tags.HasTags(csv) {
		return false
	}
	return true
}
