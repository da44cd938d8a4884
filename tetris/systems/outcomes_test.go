package systems

import (
	"slices"
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestOutcomesPublish(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	var out Outcomes
	out.Init(storage)

	changed := ecs.NewEventReader[BoardChanged](storage)
	locked := ecs.NewEventReader[PieceLocked](storage)
	cleared := ecs.NewEventReader[LinesCleared](storage)
	over := ecs.NewEventReader[GameOver](storage)
	restarted := ecs.NewEventReader[Restarted](storage)

	out.publish(tetris.Result{}, 1)
	assert.Zero(t, changed.Len())

	out.publish(tetris.Result{Changed: true, Locked: true, LinesCleared: 3}, 7)
	out.publish(tetris.Result{Changed: true, Locked: true, GameOver: true, Restarted: true}, 9)

	assert.Equal(t, 2, changed.Len())
	assert.Equal(t, []PieceLocked{{Tick: 7}, {Tick: 9}}, slices.Collect(locked.Read()))
	assert.Equal(t, []LinesCleared{{Count: 3}}, slices.Collect(cleared.Read()))
	assert.Equal(t, []GameOver{{Restarted: true}}, slices.Collect(over.Read()))
	assert.Equal(t, 1, restarted.Len())
}

func TestInputQueueDrain(t *testing.T) {
	var q InputQueue
	q.Push(tetris.MoveLeft, tetris.HardDrop)

	assert.Equal(t, []tetris.Command{tetris.MoveLeft, tetris.HardDrop}, q.drain())
	assert.Zero(t, q.Len())
	assert.Empty(t, q.drain())
}
