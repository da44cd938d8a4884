// Package systems runs a tetris.Game inside an ecs world: commands and
// time go in through singletons, results come out as events and as one
// BoardCell entity per grid cell.
package systems

import (
	"github.com/google/uuid"
	"github.com/plus3/blockfall/tetris"
)

// TickRate is the number of simulation ticks per second.
const TickRate = 60

// Session is the singleton owning the running game.
type Session struct {
	ID   uuid.UUID
	Game *tetris.Game
}

// InputQueue buffers player commands until the next frame.
type InputQueue struct {
	pending []tetris.Command
}

func (q *InputQueue) Push(cmds ...tetris.Command) {
	q.pending = append(q.pending, cmds...)
}

func (q *InputQueue) Len() int { return len(q.pending) }

// drain returns the buffered commands in arrival order and empties the
// queue.
func (q *InputQueue) drain() []tetris.Command {
	cmds := q.pending
	q.pending = nil
	return cmds
}

// FixedStep turns variable frame times into whole ticks.
type FixedStep struct {
	// Step is the duration of one tick in seconds.
	Step float64
	// MaxSteps bounds the ticks run for one frame; the rest of a long
	// stall is dropped.
	MaxSteps int

	accumulated float64
}

func NewFixedStep(rate float64) FixedStep {
	return FixedStep{Step: 1 / rate, MaxSteps: 8}
}

// Advance adds dt seconds and returns how many ticks are due.
func (f *FixedStep) Advance(dt float64) int {
	if f.Step <= 0 || dt <= 0 {
		return 0
	}
	f.accumulated += dt

	n := 0
	for f.accumulated >= f.Step {
		f.accumulated -= f.Step
		n++
		if f.MaxSteps > 0 && n == f.MaxSteps {
			f.accumulated = 0
			break
		}
	}
	return n
}

// Counters are running totals built from the frame's events.
type Counters struct {
	Frames       int64
	Ticks        int64
	Commands     int64
	PiecesLocked int64
	LinesCleared int64
	GameOvers    int64
	Restarts     int64
	// CellsUpdated counts BoardCell writes by BoardSyncSystem.
	CellsUpdated int64
}
