package generation

import (
	"promage2/geom"
	"promage2/tiles"
)

// sprinkle applies Results to a number of distinct random tiles that pass
// the Conditions
type sprinkle struct {
	Count *Field[geom.IntRange]
}

func newSprinkle() *sprinkle {
	return &sprinkle{
		Count: intRangeField("", "count", geom.NewIntRange(1)),
	}
}

func (sp *sprinkle) fields() []field {
	return []field{sp.Count}
}

func (sp *sprinkle) run(s *Step, m *Map) {
	var candidates []*tiles.Tile
	for _, t := range m.Tiles() {
		if s.tilePassesConditions(t) {
			candidates = append(candidates, t)
		}
	}

	count := sp.Count.Value.Roll(s.gen.rng)
	for placed := 0; placed < count && len(candidates) > 0; {
		i := s.gen.rng.Intn(len(candidates))
		t := candidates[i]
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		if !s.roll(s.ChancePerTile.Value) {
			continue
		}
		s.applyResults(m, t)
		placed++
	}
}
