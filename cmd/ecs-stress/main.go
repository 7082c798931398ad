package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/ecstore/ecs"
	"github.com/rs/zerolog"
)

const (
	componentCount = 84
	systemCount    = 3
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	operations := flag.Int("ops", 100, "Structural changes queued per frame.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random component picks.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory: cpu or mem.")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info, warn, error.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal().Str("profile", *profileMode).Msg("unknown profile mode")
	}

	logger.Info().Uint64("seed", *seed).Msg("starting ECS stress test")

	// 1. Layout demo on a fresh storage
	registry := ecs.NewComponentRegistry()
	RegisterAllGeneratedComponents(registry)
	if err := runDemo(ecs.NewStorage(registry, ecs.WithLogger(logger)), os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("demo failed")
	}

	// 2. Setup Storage and Scheduler for the churn phase
	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	storage := ecs.NewStorage(registry, ecs.WithLogger(logger), ecs.WithEntityCapacity(*entityCount))
	scheduler := ecs.NewScheduler(storage)
	RegisterAllGeneratedSystems(scheduler, rng, *operations)

	// 3. Populate Storage with initial entities
	logger.Info().Int("entities", *entityCount).Msg("populating storage")
	for i := 0; i < *entityCount; i++ {
		if _, err := SpawnRandomEntity(storage, rng, rng.IntN(maxBundleSize)+1); err != nil {
			logger.Fatal().Err(err).Msg("spawn failed")
		}
	}
	logger.Info().
		Int("archetypes", storage.ArchetypeCount()).
		Int("tables", storage.TableCount()).
		Msg("population complete")

	// 4. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        systemCount,
		Operations:     *operations,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("running simulation")
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Storage = storage.CollectStats()
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info().Int64("updates", totalUpdates).Msg("simulation finished")

	// 5. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
