package components

import (
	"promage2/ecs"
)

// Define component IDs for map markers
const (
	Position ecs.ComponentID = iota
	Marker
)
