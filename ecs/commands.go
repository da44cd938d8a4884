package ecs

import "reflect"

// Commands records structural changes made while systems iterate; the
// scheduler applies them after the last system of the frame. Flush
// applies deletes first, then component removals and additions, then
// spawns, then deferred functions. Component changes aimed at an entity
// deleted in the same flush are dropped.
type Commands struct {
	deletes []EntityId
	removes []componentChange
	adds    []componentChange
	spawns  [][]any
	defers  []func()
}

type componentChange struct {
	entity    EntityId
	component any
	typ       reflect.Type
}

func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

func (c *Commands) Delete(id EntityId) {
	c.deletes = append(c.deletes, id)
}

func (c *Commands) AddComponent(id EntityId, component any) {
	c.adds = append(c.adds, componentChange{entity: id, component: component})
}

func (c *Commands) RemoveComponent(id EntityId, t reflect.Type) {
	c.removes = append(c.removes, componentChange{entity: id, typ: t})
}

// Defer runs fn during Flush, after every structural change.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len is the number of queued operations.
func (c *Commands) Len() int {
	return len(c.deletes) + len(c.removes) + len(c.adds) + len(c.spawns) + len(c.defers)
}

// Flush applies the queue to storage and empties it.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{}, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = struct{}{}
	}

	for _, rm := range c.removes {
		if _, gone := deleted[rm.entity]; !gone {
			storage.RemoveComponent(rm.entity, rm.typ)
		}
	}
	for _, add := range c.adds {
		if _, gone := deleted[add.entity]; !gone {
			storage.AddComponent(add.entity, add.component)
		}
	}
	for _, comps := range c.spawns {
		storage.Spawn(comps...)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.deletes = c.deletes[:0]
	c.removes = c.removes[:0]
	c.adds = c.adds[:0]
	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]
}
