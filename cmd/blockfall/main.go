// Command blockfall plays the game in an Ebitengine window.
//
//	blockfall [-config blockfall.yaml] [-seed 7] [-debug] [-metrics-addr :9100]
//
// Arrow keys move, Up and X rotate clockwise, Z rotates counter-clockwise,
// Space hard drops, R restarts, Q or Escape quits.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/systems"
)

func main() {
	var game cli.GameFlags
	game.Register(flag.CommandLine)
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address.")
	flag.Parse()

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

	registry := ecs.NewComponentRegistry()
	debugui.Register(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	id := systems.Install(scheduler, g, srv.Metrics)
	log.Printf("session %s: %dx%d field, seed %d, game over %s", id, cfg.Width, cfg.Height, cfg.Seed, cfg.GameOver)

	screen := newScreen(g.Snapshot())
	window := &Window{
		scheduler: scheduler,
		storage:   storage,
		cells:     ecs.NewView[struct{ *systems.BoardCell }](storage),
		screen:    screen,
	}

	if *debug {
		backend := debugui_ebiten.NewImguiBackend("blockfall (debug)", 1280, 720)
		window.backend = ecs.NewSingleton(storage, backend)
		window.input = ecs.NewSingleton[debugui.ImguiInputState](storage)
		debugui.Install(scheduler)
		spawnSessionWindow(storage)
		debugui.SpawnPerformanceWindow(scheduler, 240)
	} else {
		ebiten.SetWindowSize(screen.width*2, screen.height*2)
		ebiten.SetWindowTitle("blockfall")
	}

	if err := ebiten.RunGame(window); err != nil {
		log.Fatal(err)
	}

	c := systems.CurrentCounters(storage)
	log.Printf("session %s: %d pieces, %d lines, %d game overs", id, c.PiecesLocked, c.LinesCleared, c.GameOvers)
}
