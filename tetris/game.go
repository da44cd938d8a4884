package tetris

import "math/rand/v2"

// Command is a discrete player intent, delivered between ticks.
type Command uint8

const (
	MoveLeft Command = iota
	MoveRight
	MoveDown
	RotateClockwise
	RotateCounterClockwise
	HardDrop
	Restart
)

func (c Command) String() string {
	switch c {
	case MoveLeft:
		return "MoveLeft"
	case MoveRight:
		return "MoveRight"
	case MoveDown:
		return "MoveDown"
	case RotateClockwise:
		return "RotateClockwise"
	case RotateCounterClockwise:
		return "RotateCounterClockwise"
	case HardDrop:
		return "HardDrop"
	case Restart:
		return "Restart"
	}
	return "Unknown"
}

// Result describes what a Tick or Handle call did.
type Result struct {
	// Changed is set whenever visible state may differ from the last
	// snapshot; collaborators redraw on it.
	Changed      bool
	Locked       bool
	LinesCleared int
	GameOver     bool
	Restarted    bool
}

// Stats are running totals since the game was created.
type Stats struct {
	Ticks        int64
	PiecesLocked int64
	LinesCleared int64
	GameOvers    int64
	Restarts     int64
}

// Game owns the board, queue and gravity timer and sequences them into
// the per-tick and per-input protocol. It is not safe for concurrent use.
type Game struct {
	cfg    Config
	rng    *rand.Rand
	board  *Board
	queue  *Queue
	timer  *GravityTimer
	halted bool
	stats  Stats
}

// Option customizes a Game at construction.
type Option func(*Game)

// WithRand replaces the shuffling source; it takes precedence over Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		g.rng = rng
	}
}

// New validates cfg and starts a game with its first piece spawned.
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Game{cfg: cfg}
	if cfg.Seed != 0 {
		g.rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	for _, opt := range opts {
		opt(g)
	}

	g.board = NewBoard(cfg)
	g.queue = NewQueue(cfg.MinQueue, g.rng)
	g.timer = NewGravityTimer(cfg.DropFrames)
	g.reset()

	return g, nil
}

// reset is the initializing transition: fresh queue, board and timer and
// the first piece in play.
func (g *Game) reset() {
	g.queue.Reset()
	g.queue.EnsureMinimum()

	g.board.Reset()
	g.board.Spawn(ShapeFor(g.queue.Dequeue()))

	g.timer.SetTarget(g.cfg.DropFrames)
	g.timer.Reset()
	g.halted = false
}

// Tick advances the gravity timer. When it fires the active piece drops
// one row, or if it cannot, locks; the next piece is spawned, full lines
// are cleared and the queue is topped up.
func (g *Game) Tick() Result {
	var res Result
	if g.halted {
		return res
	}

	g.stats.Ticks++
	g.timer.Tick()
	if !g.timer.IsFinished() {
		return res
	}
	res.Changed = true

	if g.board.CanMove(Down) {
		g.board.ApplyMove(Down)
	} else {
		g.board.Lock()
		res.Locked = true
		g.stats.PiecesLocked++

		g.board.Spawn(ShapeFor(g.queue.Dequeue()))
		res.GameOver = g.board.IsGameOver()

		res.LinesCleared = g.board.ClearLines()
		g.stats.LinesCleared += int64(res.LinesCleared)

		g.queue.EnsureMinimum()
	}

	g.timer.Reset()

	if res.GameOver {
		g.stats.GameOvers++
		g.gameOver(&res)
	}
	return res
}

func (g *Game) gameOver(res *Result) {
	switch g.cfg.GameOver {
	case GameOverRestart:
		g.restart(res)
	case GameOverHalt:
		g.halted = true
	}
}

func (g *Game) restart(res *Result) {
	g.reset()
	g.stats.Restarts++
	res.Changed = true
	res.Restarted = true
}

// Handle applies one player command. A halted game only accepts Restart.
func (g *Game) Handle(cmd Command) Result {
	var res Result
	if g.halted && cmd != Restart {
		return res
	}

	switch cmd {
	case MoveLeft:
		res.Changed = g.step(Left)
	case MoveRight:
		res.Changed = g.step(Right)
	case MoveDown:
		res.Changed = g.step(Down)
	case RotateClockwise:
		res.Changed = g.board.TryRotate(true)
	case RotateCounterClockwise:
		res.Changed = g.board.TryRotate(false)
	case HardDrop:
		for g.board.CanMove(Down) {
			g.board.ApplyMove(Down)
		}
		// Locking, spawning and clearing happen on the next Tick.
		g.timer.ForceFinish()
		res.Changed = true
	case Restart:
		g.restart(&res)
	default:
		panic("tetris: unknown command " + cmd.String())
	}
	return res
}

func (g *Game) step(d Direction) bool {
	if !g.board.CanMove(d) {
		return false
	}
	g.board.ApplyMove(d)
	return true
}

// Snapshot is the composited grid for presentation.
func (g *Game) Snapshot() Grid { return g.board.Snapshot() }

// Preview returns the next n queued piece types.
func (g *Game) Preview(n int) []Type { return g.queue.Peek(n) }

// SetDropFrames changes how many ticks pass between automatic drops until
// the next restart.
func (g *Game) SetDropFrames(n int64) { g.timer.SetTarget(n) }

func (g *Game) Halted() bool { return g.halted }
func (g *Game) Stats() Stats { return g.stats }
func (g *Game) Config() Config { return g.cfg }
func (g *Game) QueueLen() int { return g.queue.Len() }

// Timer returns a copy of the gravity timer state.
func (g *Game) Timer() GravityTimer { return *g.timer }

// Active returns the falling shape and its cursor.
func (g *Game) Active() (Shape, Cursor, bool) {
	s, ok := g.board.Active()
	return s, g.board.Cursor(), ok
}
