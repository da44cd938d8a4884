// Command blockfall-stress runs headless sessions driven by random input
// as fast as the scheduler allows, then prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/blockfall/internal/cli"
	"golang.org/x/sync/errgroup"
)

func main() {
	var game cli.GameFlags
	game.Register(flag.CommandLine)
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	sessions := flag.Int("sessions", runtime.GOMAXPROCS(0), "Games simulated in parallel.")
	inputRate := flag.Float64("input-rate", 0.2, "Chance of a random command on each frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	metricsAddr := flag.String("metrics-addr", "", "Serve Prometheus metrics on this address while running.")
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

	log.Println("Starting blockfall stress test...")

	runners := make([]*Runner, *sessions)
	for i := range runners {
		sessionCfg := cfg
		sessionCfg.Seed = cfg.Seed + uint64(i) + 1
		if runners[i], err = NewRunner(sessionCfg, *inputRate, srv.Metrics); err != nil {
			log.Fatal(err)
		}
		log.Printf("session %s seeded with %d", runners[i].ID, sessionCfg.Seed)
	}

	report := &Report{
		Duration:       *duration,
		Sessions:       *sessions,
		InputRate:      *inputRate,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d sessions for %s...\n", *sessions, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	group, ctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		group.Go(func() error { return r.Run(ctx) })
	}
	if err := group.Wait(); err != nil {
		log.Fatalf("session failed: %v", err)
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Host = collectHost()
	for _, r := range runners {
		report.Add(r)
	}
	report.UpdateTime.Finalize()

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
