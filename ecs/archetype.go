package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"unsafe"
)

// Archetype stores every entity that has exactly the same set of
// component types. All columns share slot numbering.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

func (a *Archetype) ID() uint32 { return a.id }

// Types returns the component types in canonical order. Callers must not
// modify the slice.
func (a *Archetype) Types() []reflect.Type { return a.types }

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

func (a *Archetype) column(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

func (a *Archetype) Has(t reflect.Type) bool { return a.column(t) >= 0 }

// spawn appends one value per column; values must already be in the
// archetype's type order.
func (a *Archetype) spawn(values []any) uint32 {
	slot := -1
	for i, v := range values {
		s := a.columns[i].Append(v)
		if slot >= 0 && s != slot {
			panic("ecs: archetype columns out of step")
		}
		slot = s
	}
	return uint32(slot)
}

// Get returns a pointer to the component of type t at slot, or nil.
func (a *Archetype) Get(slot uint32, t reflect.Type) any {
	i := a.column(t)
	if i < 0 {
		return nil
	}
	return a.columns[i].Get(int(slot))
}

func (a *Archetype) delete(slot uint32) {
	for _, c := range a.columns {
		c.Delete(int(slot))
	}
}

// Entities yields the ids of all live entities in slot order.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Slots() {
			if !yield(newEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

// canonicalTypes sorts types by name so any permutation of the same set
// maps to one archetype.
func canonicalTypes(types []reflect.Type) []reflect.Type {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return cmp.Compare(a.String(), b.String())
	})
	return types
}

// typeAddr identifies a reflect.Type by its runtime type descriptor.
func typeAddr(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}

// archetypeId hashes canonically ordered types with 32-bit FNV-1a.
func archetypeId(types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)
	h := offset
	for _, t := range types {
		addr := uint64(typeAddr(t))
		h ^= uint32(addr) ^ uint32(addr>>32)
		h *= prime
	}
	return h
}

// iface mirrors the runtime layout of a non-empty interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
