package ecs

import "iter"

// Query is a View that caches its matching archetypes and the entities
// they held at the last Execute. Queries declared as system fields are
// bound at Register and executed before every run of their system.
type Query[T any] struct {
	view       *View[T]
	archetypes []*Archetype
	generation uint64
	bound      bool

	ids   []EntityId
	items []T
	ready bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cache.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.archetypes = nil
	q.bound = false
	q.ready = false
}

// Execute snapshots the matching entities. Entities spawned afterwards
// are not seen until the next Execute.
func (q *Query[T]) Execute() {
	s := q.view.storage
	if !q.bound || q.generation != s.generation {
		q.archetypes = q.archetypes[:0]
		s.Archetypes(func(a *Archetype) bool {
			if q.view.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
			return true
		})
		q.generation = s.generation
		q.bound = true
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.archetypes {
		for id, item := range q.view.iterArchetype(a) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

func (q *Query[T]) mustBeReady(op string) {
	if !q.ready {
		panic("ecs: Query." + op + " before Execute")
	}
}

// Len is the number of entities captured by the last Execute.
func (q *Query[T]) Len() int {
	q.mustBeReady("Len")
	return len(q.ids)
}

func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeReady("Iter")
	return func(yield func(EntityId, T) bool) {
		for i, id := range q.ids {
			if !yield(id, q.items[i]) {
				return
			}
		}
	}
}

func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeReady("Values")
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}
