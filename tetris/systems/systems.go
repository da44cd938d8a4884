package systems

import (
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/tetris"
)

// Outcomes turns a tetris.Result into events. Systems embed it as a
// field; the scheduler binds it through Init.
type Outcomes struct {
	Changed   ecs.EventWriter[BoardChanged]
	Locked    ecs.EventWriter[PieceLocked]
	Cleared   ecs.EventWriter[LinesCleared]
	Over      ecs.EventWriter[GameOver]
	Restarted ecs.EventWriter[Restarted]
}

func (o *Outcomes) Init(s *ecs.Storage) {
	o.Changed.Init(s)
	o.Locked.Init(s)
	o.Cleared.Init(s)
	o.Over.Init(s)
	o.Restarted.Init(s)
}

func (o *Outcomes) publish(res tetris.Result, tick int64) {
	if res.Changed {
		o.Changed.Send(BoardChanged{})
	}
	if res.Locked {
		o.Locked.Send(PieceLocked{Tick: tick})
	}
	if res.LinesCleared > 0 {
		o.Cleared.Send(LinesCleared{Count: res.LinesCleared})
	}
	if res.GameOver {
		o.Over.Send(GameOver{Restarted: res.Restarted})
	}
	if res.Restarted {
		o.Restarted.Send(Restarted{})
	}
}

// InputSystem hands every queued command to the game, in arrival order.
type InputSystem struct {
	Session  ecs.Singleton[Session]
	Input    ecs.Singleton[InputQueue]
	Counters ecs.Singleton[Counters]
	Out      Outcomes

	Metrics *metrics.Metrics
}

func (s *InputSystem) Execute(*ecs.UpdateFrame) {
	game := s.Session.Get().Game
	counters := s.Counters.Get()

	for _, cmd := range s.Input.Get().drain() {
		res := game.Handle(cmd)
		counters.Commands++
		s.Metrics.Command(cmd.String())
		s.Out.publish(res, game.Stats().Ticks)
	}
}

// GravitySystem runs the ticks owed for the frame's elapsed time. Ticks
// owed while the game is halted are dropped uncounted.
type GravitySystem struct {
	Session  ecs.Singleton[Session]
	Step     ecs.Singleton[FixedStep]
	Counters ecs.Singleton[Counters]
	Out      Outcomes

	Metrics *metrics.Metrics
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Session.Get().Game
	counters := s.Counters.Get()

	for range s.Step.Get().Advance(frame.DeltaTime) {
		if game.Halted() {
			continue
		}
		res := game.Tick()
		counters.Ticks++
		s.Metrics.Tick()
		s.Out.publish(res, game.Stats().Ticks)
	}
}

// BoardSyncSystem copies the game snapshot into the BoardCell entities
// on the first frame and whenever the board changed.
type BoardSyncSystem struct {
	Session  ecs.Singleton[Session]
	Cells    ecs.Query[struct{ *BoardCell }]
	Changed  ecs.EventReader[BoardChanged]
	Counters ecs.Singleton[Counters]

	synced bool
}

func (s *BoardSyncSystem) Execute(*ecs.UpdateFrame) {
	if s.synced && s.Changed.Len() == 0 {
		return
	}
	s.Changed.Clear()
	s.synced = true

	grid := s.Session.Get().Game.Snapshot()
	counters := s.Counters.Get()
	for item := range s.Cells.Values() {
		if code := grid.At(item.Row, item.Col); code != item.Code {
			item.Code = code
			counters.CellsUpdated++
		}
	}
}

// StatsSystem folds the frame's events into Counters and Prometheus.
type StatsSystem struct {
	Session   ecs.Singleton[Session]
	Counters  ecs.Singleton[Counters]
	Locked    ecs.EventReader[PieceLocked]
	Cleared   ecs.EventReader[LinesCleared]
	Over      ecs.EventReader[GameOver]
	Restarted ecs.EventReader[Restarted]

	Metrics *metrics.Metrics
}

func (s *StatsSystem) Execute(*ecs.UpdateFrame) {
	c := s.Counters.Get()
	c.Frames++

	for range s.Locked.Read() {
		c.PiecesLocked++
		s.Metrics.PieceLocked()
	}
	for ev := range s.Cleared.Read() {
		c.LinesCleared += int64(ev.Count)
		s.Metrics.LinesCleared(ev.Count)
	}
	for range s.Over.Read() {
		c.GameOvers++
		s.Metrics.GameOver()
	}
	for range s.Restarted.Read() {
		c.Restarts++
		s.Metrics.Restart()
	}

	session := s.Session.Get()
	s.Metrics.QueueLength(session.ID.String(), session.Game.QueueLen())
}
