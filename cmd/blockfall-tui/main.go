// Command blockfall-tui plays the game in a terminal.
//
// Arrow keys or h/j/l move, k or x rotates clockwise, z rotates
// counter-clockwise, Space hard drops, r restarts, q or Escape quits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/systems"
)

func main() {
	var game cli.GameFlags
	game.Register(flag.CommandLine)
	mute := flag.Bool("mute", false, "Disable the line clear chime.")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address.")
	logFile := flag.String("log", "", "Append logs to this file; the terminal belongs to the game.")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := game.Config()
	if err != nil {
		log.Fatal(err)
	}

	srv, err := cli.StartMetrics(*metricsAddr)
	if err != nil {
		log.Fatal(err)
	}
	defer srv.Close(context.Background())

	g, err := tetris.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	id := systems.Install(scheduler, g, srv.Metrics)
	log.Printf("session %s started", id)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	var sound *Chime
	if !*mute {
		if sound, err = NewChime(); err != nil {
			// non-fatal, play silently
			log.Printf("audio: %v", err)
		}
	}

	run(screen, scheduler, sound)

	screen.Fini()
	sound.Close()

	c := systems.CurrentCounters(storage)
	log.Printf("session %s: %d pieces, %d lines, %d game overs", id, c.PiecesLocked, c.LinesCleared, c.GameOvers)
}

func run(screen tcell.Screen, scheduler *ecs.Scheduler, sound *Chime) {
	storage := scheduler.Storage()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			events <- ev
			if ev == nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / systems.TickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					return
				}
				if cmd, ok := commandFor(ev); ok {
					systems.Send(storage, cmd)
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}

		case now := <-ticker.C:
			before := systems.CurrentCounters(storage).LinesCleared
			scheduler.Once(now.Sub(last).Seconds())
			last = now

			if n := systems.CurrentCounters(storage).LinesCleared - before; n > 0 {
				sound.Play(int(n))
			}
			draw(screen, storage)
		}
	}
}
