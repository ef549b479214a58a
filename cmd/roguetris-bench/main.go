package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/roguetris/config"
	"github.com/plus3/roguetris/piece"
	"github.com/plus3/roguetris/session"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the bench should run for.")
	seed := flag.Uint64("seed", 0, "Seed for piece and shop randomness. 0 picks a random seed.")
	configPath := flag.String("config", "", "Path to a YAML balance file. Defaults are used when empty.")
	tick := flag.Float64("tick", 1.0/60, "Simulated seconds advanced on every playing turn.")
	verbose := flag.Bool("v", false, "Log session events.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	balance := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		balance = *loaded
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}

	var opts []session.Option
	if *verbose {
		opts = append(opts, session.WithLogger(log.Default()))
	}
	s, err := session.New(balance, piece.NewSource(*seed), opts...)
	if err != nil {
		log.Fatalf("Invalid balance: %v", err)
	}

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Width:          balance.BoardWidth,
		Height:         balance.BoardHeight,
		Tick:           *tick,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runner := NewRunner(s, *tick, report)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running bot for %s with seed %d...\n", *duration, *seed)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			runner.Step()
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TurnTime.Finalize()
	report.Scheduler = s.SchedulerStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n\n--- Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
