package ecs

import (
	"iter"
	"reflect"
)

// column is a type-erased store for one component type of one archetype.
type column interface {
	Append(value any) int
	Delete(slot int)
	Get(slot int) any
	Has(slot int) bool
	Len() int
	Slots() iter.Seq[int]
}

// ComponentRegistry maps component types to their column factories. Every
// Storage owns one; separate registries keep separate worlds apart.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{factories: make(map[reflect.Type]func() column)}
}

// RegisterComponent makes T usable as a component. Spawning an
// unregistered type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column { return &blockColumn[T]{} }
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockColumn keeps values in fixed-size blocks so pointers handed out by
// Get stay valid while the column grows. Freed slots are reused LIFO.
type blockColumn[T any] struct {
	values []*[blockSize]T
	used   []*[blockSize]bool
	free   []int
	next   int
	count  int
}

func (c *blockColumn[T]) Append(value any) int {
	var v T
	switch x := value.(type) {
	case T:
		v = x
	case *T:
		v = *x
	default:
		panic("ecs: column of " + reflect.TypeFor[T]().String() + " got " + reflect.TypeOf(value).String())
	}

	var slot int
	if n := len(c.free); n > 0 {
		slot = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		slot = c.next
		c.next++
		if slot/blockSize >= len(c.values) {
			c.values = append(c.values, new([blockSize]T))
			c.used = append(c.used, new([blockSize]bool))
		}
	}

	c.values[slot/blockSize][slot%blockSize] = v
	c.used[slot/blockSize][slot%blockSize] = true
	c.count++
	return slot
}

func (c *blockColumn[T]) Has(slot int) bool {
	if slot < 0 || slot >= c.next {
		return false
	}
	return c.used[slot/blockSize][slot%blockSize]
}

// Get returns a *T for a live slot, nil otherwise.
func (c *blockColumn[T]) Get(slot int) any {
	if !c.Has(slot) {
		return nil
	}
	return &c.values[slot/blockSize][slot%blockSize]
}

func (c *blockColumn[T]) Delete(slot int) {
	if !c.Has(slot) {
		return
	}
	var zero T
	c.values[slot/blockSize][slot%blockSize] = zero
	c.used[slot/blockSize][slot%blockSize] = false
	c.free = append(c.free, slot)
	c.count--
}

func (c *blockColumn[T]) Len() int { return c.count }

// Slots yields live slots in ascending order.
func (c *blockColumn[T]) Slots() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot := 0; slot < c.next; slot++ {
			if c.used[slot/blockSize][slot%blockSize] && !yield(slot) {
				return
			}
		}
	}
}
