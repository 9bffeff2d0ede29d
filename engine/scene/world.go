package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aether-engine/aether/engine/core"
)

// EntityID uniquely identifies an entity within a world. IDs are stable
// across project save/load cycles.
type EntityID string

func newEntityID() EntityID {
	return EntityID(uuid.New().String())
}

// Component is a single piece of entity state. Exactly one of the optional
// fields is expected to be set; the flat shape keeps components trivially
// serializable into project files.
type Component struct {
	Tag      *string   `toml:"tag,omitempty"`
	Position *Position `toml:"position,omitempty"`
	Mesh     *string   `toml:"mesh,omitempty"`
}

type Position struct {
	X float32 `toml:"x"`
	Y float32 `toml:"y"`
}

type Entity struct {
	ID         EntityID    `toml:"id"`
	Components []Component `toml:"components,omitempty"`
	Children   []EntityID  `toml:"children,omitempty"`
}

func (e *Entity) AddComponent(component Component) {
	e.Components = append(e.Components, component)
}

// Tag returns the entity's tag component, if any.
func (e *Entity) Tag() (string, bool) {
	for _, component := range e.Components {
		if component.Tag != nil {
			return *component.Tag, true
		}
	}
	return "", false
}

// MeshName returns the mesh asset the entity references, if any.
func (e *Entity) MeshName() (string, bool) {
	for _, component := range e.Components {
		if component.Mesh != nil {
			return *component.Mesh, true
		}
	}
	return "", false
}

// System is run against every entity on each world tick.
type System interface {
	Run(world *World, entity *Entity)
}

// World owns every entity of a scene. Systems are runtime-only and are not
// persisted with the world.
type World struct {
	Entities []Entity `toml:"entities,omitempty"`

	systems []System
}

func NewWorld() *World {
	return &World{}
}

// NewEntity creates an entity and, when a parent is given, links it into
// the parent's child list.
func (w *World) NewEntity(parent *EntityID) EntityID {
	entity := Entity{ID: newEntityID()}

	if parent != nil {
		if err := w.Execute(*parent, func(e *Entity) {
			e.Children = append(e.Children, entity.ID)
		}); err != nil {
			core.LogWarn("scene: parent %s not found, creating %s as a root entity", *parent, entity.ID)
		}
	}

	w.Entities = append(w.Entities, entity)
	return entity.ID
}

// Execute runs fn against the entity with the given id.
func (w *World) Execute(id EntityID, fn func(*Entity)) error {
	for i := range w.Entities {
		if w.Entities[i].ID == id {
			fn(&w.Entities[i])
			return nil
		}
	}
	return fmt.Errorf("scene: no entity with id %s: %w", id, core.ErrUnknown)
}

func (w *World) RegisterSystem(system System) {
	w.systems = append(w.systems, system)
}

// Tick runs every registered system over every entity.
func (w *World) Tick() {
	for _, system := range w.systems {
		for i := range w.Entities {
			system.Run(w, &w.Entities[i])
		}
	}
}
