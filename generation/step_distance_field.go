package generation

import (
	"github.com/zyedidia/generic/mapset"

	"promage2/tiles"
)

// InvalidDistance marks tiles no source can reach
const InvalidDistance = 999999

// Movement types accepted by DistanceField
const (
	MovementWalk  = "Walk"
	MovementFly   = "Fly"
	MovementSight = "Sight"
	MovementSwim  = "Swim"
)

// distanceField floods cardinal step counts out from every tile passing the
// Conditions into a heat map
type distanceField struct {
	MovementType *Field[string]
	MaxDistance  *Field[int]
	HeatMapName  *Field[string]
}

func newDistanceField() *distanceField {
	return &distanceField{
		MovementType: stringField("", "movementType", MovementWalk),
		MaxDistance:  intField("", "maxDistance", InvalidDistance),
		HeatMapName:  stringField("", "heatMapName", "Distance"),
	}
}

func (df *distanceField) fields() []field {
	return []field{df.MovementType, df.MaxDistance, df.HeatMapName}
}

func (df *distanceField) run(s *Step, m *Map) {
	name := df.HeatMapName.Value
	valid := df.traversal(s)

	// Setup: sources start at 0, everything else at the sentinel
	var open []int
	enqueued := mapset.New[int]()
	for i, t := range m.Tiles() {
		if s.tilePassesConditions(t) {
			s.ChangeTileDistance(t, name, 0)
			open = append(open, i)
			enqueued.Put(i)
		} else {
			t.Metadata.SetHeatMap(name, InvalidDistance)
		}
	}

	for len(open) > 0 {
		index := open[0]
		open = open[1:]
		enqueued.Remove(index)

		current := m.Tiles()[index]
		value, _ := current.Metadata.GetHeatMap(name)
		distance := int(value)
		if distance >= df.MaxDistance.Value {
			continue
		}

		for _, neighbor := range m.CardinalNeighbors(current.Coords.X, current.Coords.Y) {
			if !valid(neighbor) {
				continue
			}
			next := distance + 1
			if prev, ok := neighbor.Metadata.GetHeatMap(name); ok && int(prev) <= next {
				continue
			}
			s.ChangeTileDistance(neighbor, name, next)

			ni := m.TileIndex(neighbor.Coords.X, neighbor.Coords.Y)
			if !enqueued.Has(ni) {
				enqueued.Put(ni)
				open = append(open, ni)
			}
		}
	}
}

// traversal returns the predicate for the configured movement type. An
// unknown type is reported once and blocks every tile.
func (df *distanceField) traversal(s *Step) func(*tiles.Tile) bool {
	switch df.MovementType.Value {
	case MovementWalk:
		return (*tiles.Tile).AllowsWalking
	case MovementFly:
		return (*tiles.Tile).AllowsFlying
	case MovementSight:
		return (*tiles.Tile).AllowsSight
	case MovementSwim:
		return (*tiles.Tile).AllowsSwimming
	}
	s.gen.Console.Errorf("%s: unknown movement type %q", s.Name, df.MovementType.Value)
	return func(*tiles.Tile) bool { return false }
}
