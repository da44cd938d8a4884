package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/metrics"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/systems"
)

// frameTime is the simulated time per frame; the loop itself runs
// unthrottled.
const frameTime = 1.0 / systems.TickRate

var playerCommands = []tetris.Command{
	tetris.MoveLeft,
	tetris.MoveRight,
	tetris.MoveDown,
	tetris.RotateClockwise,
	tetris.RotateCounterClockwise,
	tetris.HardDrop,
}

// Runner is one headless session with a random player.
type Runner struct {
	ID uuid.UUID

	game      *tetris.Game
	scheduler *ecs.Scheduler
	rng       *rand.Rand
	inputRate float64

	Updates    int64
	UpdateTime Stats
}

func NewRunner(cfg tetris.Config, inputRate float64, m *metrics.Metrics) (*Runner, error) {
	g, err := tetris.New(cfg)
	if err != nil {
		return nil, err
	}

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)

	return &Runner{
		ID:        systems.Install(scheduler, g, m),
		game:      g,
		scheduler: scheduler,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed)),
		inputRate: inputRate,
	}, nil
}

// Step feeds at most one random command and runs one frame.
func (r *Runner) Step() time.Duration {
	storage := r.scheduler.Storage()

	if r.game.Halted() {
		systems.Send(storage, tetris.Restart)
	} else if r.rng.Float64() < r.inputRate {
		systems.Send(storage, playerCommands[r.rng.IntN(len(playerCommands))])
	}

	start := time.Now()
	r.scheduler.Once(frameTime)
	d := time.Since(start)

	r.UpdateTime.Samples = append(r.UpdateTime.Samples, d)
	r.Updates++
	return d
}

// Run steps until ctx is done. A panic inside the simulation is returned
// as an error tagged with the session id.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("session %s after %d updates: %v", r.ID, r.Updates, p)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			r.Step()
		}
	}
}

func (r *Runner) Counters() systems.Counters {
	return *systems.CurrentCounters(r.scheduler.Storage())
}
