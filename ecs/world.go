package ecs

import "sort"

// World manages all entities and components
type World struct {
	entities map[EntityID]*Entity
	// Store components as map[EntityID]map[ComponentID]Component
	components map[EntityID]ComponentMap
	// Tag-based entity lookup for quick access
	entityTags map[string]map[EntityID]bool
	nextID     EntityID
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		entities:   make(map[EntityID]*Entity),
		components: make(map[EntityID]ComponentMap),
		entityTags: make(map[string]map[EntityID]bool),
	}
}

// CreateEntity creates a new entity and adds it to the world
func (w *World) CreateEntity() *Entity {
	w.nextID++
	entity := newEntity(w.nextID)
	w.entities[entity.ID] = entity
	w.components[entity.ID] = make(ComponentMap)
	return entity
}

// AddComponent adds a component to an entity
func (w *World) AddComponent(entityID EntityID, componentID ComponentID, component Component) {
	if _, exists := w.entities[entityID]; !exists {
		return
	}

	if _, exists := w.components[entityID]; !exists {
		w.components[entityID] = make(ComponentMap)
	}

	w.components[entityID][componentID] = component
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entityID EntityID, componentID ComponentID) (Component, bool) {
	if componentMap, exists := w.components[entityID]; exists {
		component, exists := componentMap[componentID]
		return component, exists
	}
	return nil, false
}

// TagEntity adds a tag to an entity and updates the tag lookup
func (w *World) TagEntity(entityID EntityID, tag string) {
	entity, exists := w.entities[entityID]
	if !exists {
		return
	}

	entity.AddTag(tag)

	// Update tag lookup
	if _, exists := w.entityTags[tag]; !exists {
		w.entityTags[tag] = make(map[EntityID]bool)
	}

	w.entityTags[tag][entityID] = true
}

// GetEntitiesWithTag returns all entities with a specific tag, ordered by ID
func (w *World) GetEntitiesWithTag(tag string) []*Entity {
	entities := make([]*Entity, 0)

	if taggedEntities, exists := w.entityTags[tag]; exists {
		for entityID := range taggedEntities {
			if entity, ok := w.entities[entityID]; ok {
				entities = append(entities, entity)
			}
		}
	}

	sortByID(entities)
	return entities
}

// GetAllEntities returns a slice of all entities in the world, ordered by ID
func (w *World) GetAllEntities() []*Entity {
	entities := make([]*Entity, 0, len(w.entities))
	for _, entity := range w.entities {
		entities = append(entities, entity)
	}
	sortByID(entities)
	return entities
}

// Len returns the number of entities
func (w *World) Len() int {
	return len(w.entities)
}

// Clone copies every entity with its tags and components. Components are
// copied by reference, so they must be treated as immutable values.
func (w *World) Clone() *World {
	c := NewWorld()
	c.nextID = w.nextID
	for id, entity := range w.entities {
		copied := newEntity(id)
		for tag := range entity.Tags {
			copied.Tags[tag] = true
			if _, exists := c.entityTags[tag]; !exists {
				c.entityTags[tag] = make(map[EntityID]bool)
			}
			c.entityTags[tag][id] = true
		}
		c.entities[id] = copied

		comps := make(ComponentMap, len(w.components[id]))
		for cid, comp := range w.components[id] {
			comps[cid] = comp
		}
		c.components[id] = comps
	}
	return c
}

func sortByID(entities []*Entity) {
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
}
