package systems

import (
	"github.com/google/uuid"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/tetris"
)

// Install puts game into the scheduler's storage under a fresh session
// id, spawns a BoardCell per grid cell and registers the game systems in
// order: input, gravity, board sync, stats. m may be nil.
func Install(scheduler *ecs.Scheduler, game *tetris.Game, m *metrics.Metrics) uuid.UUID {
	storage := scheduler.Storage()
	ecs.RegisterComponent[BoardCell](storage.Registry())

	id := uuid.New()
	storage.AddSingleton(Session{ID: id, Game: game})
	storage.AddSingleton(InputQueue{})
	storage.AddSingleton(NewFixedStep(TickRate))
	storage.AddSingleton(Counters{})

	grid := game.Snapshot()
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			storage.Spawn(BoardCell{Row: row, Col: col, Code: tetris.Empty})
		}
	}

	scheduler.Register(&InputSystem{Metrics: m})
	scheduler.Register(&GravitySystem{Metrics: m})
	scheduler.Register(&BoardSyncSystem{})
	scheduler.Register(&StatsSystem{Metrics: m})
	return id
}

// Send queues commands for the next frame.
func Send(storage *ecs.Storage, cmds ...tetris.Command) {
	ecs.ReadSingleton[InputQueue](storage).Push(cmds...)
}

// CurrentSession returns the installed session, or nil.
func CurrentSession(storage *ecs.Storage) *Session {
	return ecs.ReadSingleton[Session](storage)
}

// CurrentCounters returns the running totals, or nil before Install.
func CurrentCounters(storage *ecs.Storage) *Counters {
	return ecs.ReadSingleton[Counters](storage)
}
