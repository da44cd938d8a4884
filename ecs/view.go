package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View reads entities through a struct of component pointers:
//
//	type falling struct {
//		*Position
//		Ghost *Ghost `ecs:"optional"`
//	}
//
// Embedded fields are required. Named fields may be tagged
// `ecs:"optional"` and are left nil when the entity lacks them.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: view type must be a struct, got " + st.String())
	}

	fields := make([]viewField, 0, st.NumField())
	for i := range st.NumField() {
		f := st.Field(i)
		if f.Type.Kind() != reflect.Pointer {
			panic("ecs: view field " + f.Name + " must be a pointer")
		}

		optional := false
		switch tag := f.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			optional = !f.Anonymous
		default:
			panic(`ecs: unknown tag "` + tag + `" on view field ` + f.Name)
		}

		fields = append(fields, viewField{typ: f.Type.Elem(), offset: f.Offset, optional: optional})
	}

	return &View[T]{storage: storage, fields: fields}
}

func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !a.Has(f.typ) {
			return false
		}
	}
	return true
}

// bind resolves each field to a column index of a, -1 when absent.
func (v *View[T]) bind(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = a.column(f.typ)
	}
	return cols
}

// load points the fields of *dst at the components in slot. It fails when
// a required component is missing.
func (v *View[T]) load(dst *T, a *Archetype, cols []int, slot int) bool {
	base := unsafe.Pointer(dst)
	for i, f := range v.fields {
		field := (*unsafe.Pointer)(unsafe.Add(base, f.offset))

		var comp any
		if cols[i] >= 0 {
			comp = a.columns[cols[i]].Get(slot)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*field = nil
			continue
		}
		*field = (*iface)(unsafe.Pointer(&comp)).data
	}
	return true
}

// Fill loads the entity into *dst and reports whether it has every
// required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	a := v.storage.Archetype(id.Archetype())
	if a == nil {
		return false
	}
	return v.load(dst, a, v.bind(a), int(id.Slot()))
}

// Get is Fill returning a fresh struct, or nil.
func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

func (v *View[T]) iterArchetype(a *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(a.columns) == 0 {
			return
		}
		cols := v.bind(a)
		var item T
		for slot := range a.columns[0].Slots() {
			if !v.load(&item, a, cols, slot) {
				continue
			}
			if !yield(newEntityId(a.id, uint32(slot)), item) {
				return
			}
		}
	}
}

// Iter walks every matching entity without caching.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		v.storage.Archetypes(func(a *Archetype) bool {
			if !v.matches(a) {
				return true
			}
			for id, item := range v.iterArchetype(a) {
				if !yield(id, item) {
					return false
				}
			}
			return true
		})
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil fields of data. A nil required
// field panics.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	comps := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("ecs: required view field " + f.typ.String() + " is nil")
			}
			continue
		}
		comps = append(comps, reflect.NewAt(f.typ, ptr).Interface())
	}
	return v.storage.Spawn(comps...)
}
