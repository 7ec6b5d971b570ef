package tiles

// NeighborBit marks one of the 8 positions around a tile. Rows run top to
// bottom with y growing downwards.
type NeighborBit uint8

const (
	NeighborTL NeighborBit = 1 << iota
	NeighborTC
	NeighborTR
	NeighborML
	NeighborMR
	NeighborBL
	NeighborBC
	NeighborBR
)

// neighborOffsets pairs each bit with its grid offset, in scan order
var neighborOffsets = [8]struct {
	dx, dy int
	bit    NeighborBit
}{
	{-1, -1, NeighborTL}, {0, -1, NeighborTC}, {1, -1, NeighborTR},
	{-1, 0, NeighborML}, {1, 0, NeighborMR},
	{-1, 1, NeighborBL}, {0, 1, NeighborBC}, {1, 1, NeighborBR},
}

// EdgeCase is one entry of the edge art table. A neighbor mask matches when
// it contains every Match bit; the Consume bits are then cleared.
type EdgeCase struct {
	Name     string
	Col, Row int
	Match    NeighborBit
	Consume  NeighborBit
}

// EdgeCases is tested in order, first match wins
var EdgeCases = [12]EdgeCase{
	{"ConcaveTL", 3, 0, NeighborTL | NeighborTC | NeighborML, NeighborTL | NeighborTC | NeighborML},
	{"ConcaveTR", 4, 0, NeighborTR | NeighborTC | NeighborMR, NeighborTR | NeighborTC | NeighborMR},
	{"ConcaveBL", 3, 1, NeighborBL | NeighborBC | NeighborML, NeighborBL | NeighborBC | NeighborML},
	{"ConcaveBR", 4, 1, NeighborBR | NeighborBC | NeighborMR, NeighborBR | NeighborBC | NeighborMR},
	{"EdgeTop", 1, 0, NeighborTC, NeighborTL | NeighborTC | NeighborTR},
	{"EdgeLeft", 0, 1, NeighborML, NeighborTL | NeighborML | NeighborBL},
	{"EdgeRight", 2, 1, NeighborMR, NeighborTR | NeighborMR | NeighborBR},
	{"EdgeBottom", 1, 2, NeighborBC, NeighborBL | NeighborBC | NeighborBR},
	{"ConvexTL", 0, 0, NeighborTL, NeighborTL},
	{"ConvexTR", 2, 0, NeighborTR, NeighborTR},
	{"ConvexBL", 0, 2, NeighborBL, NeighborBL},
	{"ConvexBR", 2, 2, NeighborBR, NeighborBR},
}

// MatchEdgeCases decomposes a neighbor mask into edge case indices
func MatchEdgeCases(mask NeighborBit) []int {
	var matched []int
	for mask != 0 {
		progressed := false
		for i, c := range EdgeCases {
			if mask&c.Match == c.Match {
				matched = append(matched, i)
				mask &^= c.Consume
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return matched
}
