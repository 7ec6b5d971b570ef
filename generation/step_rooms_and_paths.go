package generation

import (
	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/mapset"

	"promage2/geom"
	"promage2/tiles"
)

const (
	elemRooms = "Rooms"
	elemPaths = "Paths"

	roomPlacementAttempts = 30
	wallCrossingCost      = 8
)

// roomsAndPaths carves non-overlapping rectangular rooms into tiles that pass
// the Conditions and joins them with A* paths
type roomsAndPaths struct {
	RoomCount  *Field[geom.IntRange]
	RoomWidth  *Field[geom.IntRange]
	RoomHeight *Field[geom.IntRange]
	RoomFloor  *Field[*tiles.Def]
	RoomWall   *Field[*tiles.Def]
	RoomTags   *Field[string]

	PathFloor *Field[*tiles.Def]
	PathTags  *Field[string]
	Loops     *Field[int]
}

func newRoomsAndPaths(g *Generator) *roomsAndPaths {
	p := &roomsAndPaths{
		RoomCount:  intRangeField(elemRooms, "count", geom.IntRange{Min: 3, Max: 6}),
		RoomWidth:  intRangeField(elemRooms, "width", geom.IntRange{Min: 5, Max: 9}),
		RoomHeight: intRangeField(elemRooms, "height", geom.IntRange{Min: 5, Max: 9}),
		RoomFloor:  tileField(g, elemRooms, "floorType"),
		RoomWall:   tileField(g, elemRooms, "wallType"),
		RoomTags:   stringField(elemRooms, "tags", "room"),

		PathFloor: tileField(g, elemPaths, "floorType"),
		PathTags:  stringField(elemPaths, "tags", "path"),
		Loops:     intField(elemPaths, "loops", 0),
	}
	p.RoomFloor.Required = true
	return p
}

func (rp *roomsAndPaths) fields() []field {
	return []field{
		rp.RoomCount, rp.RoomWidth, rp.RoomHeight, rp.RoomFloor, rp.RoomWall, rp.RoomTags,
		rp.PathFloor, rp.PathTags, rp.Loops,
	}
}

// room is a rectangle including its wall ring
type room struct {
	X, Y, W, H int
}

func (r room) center() gruid.Point {
	return gruid.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

type roomCell uint8

const (
	cellOutside roomCell = iota
	cellInterior
	cellWall
	cellCorner
)

func (r room) cellAt(x, y int) roomCell {
	if x < r.X || x >= r.X+r.W || y < r.Y || y >= r.Y+r.H {
		return cellOutside
	}
	edgeX := x == r.X || x == r.X+r.W-1
	edgeY := y == r.Y || y == r.Y+r.H-1
	switch {
	case edgeX && edgeY:
		return cellCorner
	case edgeX || edgeY:
		return cellWall
	}
	return cellInterior
}

func (rp *roomsAndPaths) run(s *Step, m *Map) {
	if rp.RoomFloor.Value == nil {
		s.gen.Console.Errorf("%s: no room floor type", s.Name)
		return
	}

	occupied := mapset.New[int]()
	cells := make([]roomCell, m.Width*m.Height)
	rp.markExistingRooms(m, occupied, cells)
	var rooms []room

	count := rp.RoomCount.Value.Roll(s.gen.rng)
	for attempts := count * roomPlacementAttempts; len(rooms) < count && attempts > 0; attempts-- {
		r, ok := rp.placeRoom(s, m, occupied)
		if !ok {
			continue
		}
		rp.carveRoom(s, m, r, cells)
		for y := r.Y - 1; y <= r.Y+r.H; y++ {
			for x := r.X - 1; x <= r.X+r.W; x++ {
				if m.IsValidTileCoords(x, y) {
					occupied.Put(m.TileIndex(x, y))
				}
			}
		}
		rooms = append(rooms, r)
	}
	if len(rooms) < count {
		s.gen.Console.Infof("%s: placed %d of %d rooms", s.Name, len(rooms), count)
	}
	if len(rooms) < 2 {
		return
	}

	pr := paths.NewPathRange(gruid.NewRange(0, 0, m.Width, m.Height))
	tp := &tunnelPath{m: m, cells: cells}
	for i := 1; i < len(rooms); i++ {
		rp.connect(s, m, pr, tp, rooms[i-1], rooms[i])
	}
	for i := 0; i < rp.Loops.Value; i++ {
		a := s.gen.rng.Intn(len(rooms))
		b := s.gen.rng.Intn(len(rooms))
		if a != b {
			rp.connect(s, m, pr, tp, rooms[a], rooms[b])
		}
	}
}

// markExistingRooms reserves tiles carrying the room tags, so later
// iterations and later steps keep their gap from earlier rooms and paths
// treat earlier walls as walls
func (rp *roomsAndPaths) markExistingRooms(m *Map, occupied mapset.Set[int], cells []roomCell) {
	csv := rp.RoomTags.Value
	if csv == "" {
		return
	}
	for i, t := range m.Tiles() {
		if !t.Metadata.Tags.HasTags(csv) {
			continue
		}
		cells[i] = cellInterior
		if wall := rp.RoomWall.Value; wall != nil && t.Def() == wall {
			cells[i] = cellWall
		}
		for _, n := range m.Neighbors(t.Coords.X, t.Coords.Y, 1) {
			occupied.Put(m.TileIndex(n.Coords.X, n.Coords.Y))
		}
		occupied.Put(i)
	}
}

// placeRoom rolls a room that fits tiles passing the Conditions and keeps a
// one tile gap from other rooms
func (rp *roomsAndPaths) placeRoom(s *Step, m *Map, occupied mapset.Set[int]) (room, bool) {
	w := rp.RoomWidth.Value.Roll(s.gen.rng)
	h := rp.RoomHeight.Value.Roll(s.gen.rng)
	if w < 3 || h < 3 || w > m.Width || h > m.Height {
		return room{}, false
	}
	r := room{
		X: s.gen.rng.Intn(m.Width - w + 1),
		Y: s.gen.rng.Intn(m.Height - h + 1),
		W: w,
		H: h,
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if occupied.Has(m.TileIndex(x, y)) || !s.tilePassesConditions(m.TileAt(x, y)) {
				return room{}, false
			}
		}
	}
	return r, true
}

func (rp *roomsAndPaths) carveRoom(s *Step, m *Map, r room, cells []roomCell) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			t := m.TileAt(x, y)
			cell := r.cellAt(x, y)
			cells[m.TileIndex(x, y)] = cell

			def := rp.RoomFloor.Value
			if cell != cellInterior && rp.RoomWall.Value != nil {
				def = rp.RoomWall.Value
			}
			s.ChangeTileType(t, def)
			if csv := rp.RoomTags.Value; csv != "" {
				s.ChangeTileTags(t, csv)
			}
		}
	}
}

// connect carves the A* path between two room centers. Room interiors are
// left untouched; crossed walls become doorways.
func (rp *roomsAndPaths) connect(s *Step, m *Map, pr *paths.PathRange, tp *tunnelPath, a, b room) {
	path := pr.AstarPath(tp, a.center(), b.center())
	if len(path) == 0 {
		s.gen.Console.Warnf("%s: no path between rooms at %v and %v", s.Name, a.center(), b.center())
		return
	}

	floor := rp.PathFloor.Value
	if floor == nil {
		floor = rp.RoomFloor.Value
	}
	for _, p := range path {
		t := m.TileAt(p.X, p.Y)
		switch tp.cells[m.TileIndex(p.X, p.Y)] {
		case cellInterior:
			continue
		case cellWall:
			s.ChangeTileType(t, floor)
		default:
			s.ChangeTileType(t, floor)
			if csv := rp.PathTags.Value; csv != "" {
				s.ChangeTileTags(t, csv)
			}
		}
	}
}

// tunnelPath implements paths.Astar. Room corners are never crossed and
// walls cost more than open ground, so paths enter rooms through a single
// doorway where possible.
type tunnelPath struct {
	m     *Map
	cells []roomCell
	nbs   paths.Neighbors
}

func (tp *tunnelPath) Neighbors(p gruid.Point) []gruid.Point {
	return tp.nbs.Cardinal(p, func(q gruid.Point) bool {
		return tp.m.IsValidTileCoords(q.X, q.Y) && tp.cells[tp.m.TileIndex(q.X, q.Y)] != cellCorner
	})
}

func (tp *tunnelPath) Cost(p, q gruid.Point) int {
	if tp.cells[tp.m.TileIndex(q.X, q.Y)] == cellWall {
		return wallCrossingCost
	}
	return 1
}

func (tp *tunnelPath) Estimation(p, q gruid.Point) int {
	return paths.DistanceManhattan(p, q)
}
