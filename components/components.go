package components

// PositionComponent stores entity position
type PositionComponent struct {
	X, Y int
}

// MarkerKind distinguishes placed actors from placed items
type MarkerKind string

const (
	MarkerActor MarkerKind = "actor"
	MarkerItem  MarkerKind = "item"
)

// MarkerComponent records what a generation step asked to be spawned.
// The game resolves the definition name into a real actor or item later.
type MarkerComponent struct {
	Kind       MarkerKind
	Definition string
	StepName   string // step type that placed the marker
}
