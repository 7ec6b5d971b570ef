package ecs

// EntityID is a unique identifier for an entity within its world
type EntityID uint64

// Entity represents a placed object (actor or item marker) on a map
type Entity struct {
	ID EntityID
	// Tags can be used for quick identification (e.g., "actor", "item")
	Tags map[string]bool
}

// newEntity creates a new entity
func newEntity(id EntityID) *Entity {
	return &Entity{
		ID:   id,
		Tags: make(map[string]bool),
	}
}

// AddTag adds a tag to the entity
func (e *Entity) AddTag(tag string) {
	e.Tags[tag] = true
}
