package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)
	storage := NewStorage(registry)

	empty := storage.CollectStats()
	assert.Zero(t, empty.ArchetypeCount)
	assert.Zero(t, empty.TotalEntityCount)
	assert.Zero(t, empty.SingletonCount)

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")
	NewSingleton(storage, 3.14)
	NewSingleton(storage, "singleton")
	EventsFor[int](storage)

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, 1, stats.EventTypeCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount, "largest first")
	assert.Equal(t, []string{"int", "string"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, []string{"float64", "string"}, stats.ArchetypeBreakdown[1].ComponentTypes)
}

func TestCollectStatsAfterDelete(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	storage := NewStorage(registry)

	a := storage.Spawn(1)
	storage.Spawn(2)
	storage.Delete(a)

	stats := storage.CollectStats()
	assert.Equal(t, 1, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.ArchetypeCount, "empty archetypes are kept")
}
