package ecs

// EntityId packs the archetype id into the upper 32 bits and the slot
// inside that archetype into the lower 32 bits. Ids are only stable until
// the entity gains or loses a component.
type EntityId uint64

func newEntityId(archetype, slot uint32) EntityId {
	return EntityId(uint64(archetype)<<32 | uint64(slot))
}

// Archetype returns the id of the archetype holding the entity.
func (e EntityId) Archetype() uint32 { return uint32(e >> 32) }

// Slot returns the entity's position inside its archetype.
func (e EntityId) Slot() uint32 { return uint32(e) }
