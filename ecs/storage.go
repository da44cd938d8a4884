package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every archetype, singleton and event buffer of one world.
// It is not safe for concurrent use.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	singletons map[reflect.Type]*singletonEntry
	events     map[reflect.Type]eventBuffer

	// generation changes whenever an archetype is created, so cached
	// archetype lists know when to rebuild.
	generation uint64
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](32),
		singletons: make(map[reflect.Type]*singletonEntry),
		events:     make(map[reflect.Type]eventBuffer),
	}
}

func (s *Storage) Registry() *ComponentRegistry { return s.registry }

// Archetype returns the archetype with the given id, or nil.
func (s *Storage) Archetype(id uint32) *Archetype {
	a, _ := s.archetypes.Get(id)
	return a
}

// Archetypes calls fn for every archetype until fn returns false.
func (s *Storage) Archetypes(fn func(*Archetype) bool) {
	s.archetypes.ForEach(func(_ uint32, a *Archetype) bool {
		return fn(a)
	})
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeId(types)
	if a, ok := s.archetypes.Get(id); ok {
		return a
	}
	a := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, a)
	s.generation++
	return a
}

// Spawn creates an entity from component values. Pointers to components
// are dereferenced. Spawning nothing or a duplicate type panics.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: spawn without components")
	}

	byType := make(map[reflect.Type]any, len(components))
	types := make([]reflect.Type, 0, len(components))
	for _, c := range components {
		t := componentType(c)
		if _, dup := byType[t]; dup {
			panic("ecs: duplicate component " + t.String())
		}
		byType[t] = c
		types = append(types, t)
	}

	a := s.archetypeFor(canonicalTypes(types))
	values := make([]any, len(a.types))
	for i, t := range a.types {
		values[i] = byType[t]
	}
	return newEntityId(a.id, a.spawn(values))
}

// Delete removes the entity; unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if a := s.Archetype(id.Archetype()); a != nil {
		a.delete(id.Slot())
	}
}

// Alive reports whether id still names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	a := s.Archetype(id.Archetype())
	return a != nil && len(a.columns) > 0 && a.columns[0].Has(int(id.Slot()))
}

// AddComponent moves the entity to the archetype that also holds the
// component's type and returns its new id. An existing component of the
// same type is overwritten in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old := s.mustArchetype(id)
	t := componentType(component)

	if i := old.column(t); i >= 0 {
		ptr := reflect.ValueOf(old.columns[i].Get(int(id.Slot())))
		ptr.Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	types := append(append(make([]reflect.Type, 0, len(old.types)+1), old.types...), t)
	return s.move(id, old, canonicalTypes(types), component)
}

// RemoveComponent moves the entity to the archetype without t and
// returns its new id. Removing the last component deletes the entity and
// returns 0.
func (s *Storage) RemoveComponent(id EntityId, t reflect.Type) EntityId {
	old := s.mustArchetype(id)
	if !old.Has(t) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != t {
			types = append(types, typ)
		}
	}
	if len(types) == 0 {
		old.delete(id.Slot())
		return 0
	}
	return s.move(id, old, types, nil)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, extra any) EntityId {
	next := s.archetypeFor(types)

	values := make([]any, len(next.types))
	for i, t := range next.types {
		if v := old.Get(id.Slot(), t); v != nil {
			values[i] = v
		} else {
			values[i] = extra
		}
	}

	slot := next.spawn(values)
	old.delete(id.Slot())
	return newEntityId(next.id, slot)
}

func (s *Storage) mustArchetype(id EntityId) *Archetype {
	a := s.Archetype(id.Archetype())
	if a == nil {
		panic("ecs: unknown entity")
	}
	return a
}

// GetComponent returns a pointer to the entity's component of type t, or
// nil when the entity or the component is missing.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a := s.Archetype(id.Archetype())
	if a == nil {
		return nil
	}
	return a.Get(id.Slot(), t)
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// ComponentReader is satisfied by Storage; helpers accept it so tests can
// substitute their own lookup.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is the typed form of GetComponent.
func ReadComponent[T any](r ComponentReader, id EntityId) *T {
	c, _ := r.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}

// AddSingleton stores value as the world-wide instance of its type. If
// one already exists it is overwritten in place, so outstanding pointers
// see the new value.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.Indirect(reflect.ValueOf(value))

	if e, ok := s.singletons[t]; ok {
		e.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{typ: t, value: ptr, dataPtr: ptr.UnsafePointer()}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton returns the singleton of type T, or nil.
func ReadSingleton[T any](s *Storage) *T {
	e := s.getSingletonEntry(reflect.TypeFor[T]())
	if e == nil {
		return nil
	}
	return (*T)(e.dataPtr)
}

// componentType returns the value type of a component, looking through
// one level of pointer.
func componentType(c any) reflect.Type {
	t := reflect.TypeOf(c)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: component " + t.String() + " must be a value type")
	}
	return t
}
