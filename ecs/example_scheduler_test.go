package ecs_test

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/plus3/ecstore/ecs"
)

type Hitpoints struct {
	Current, Max int
}

// OnFire is rare and short-lived, so it lives in a sparse set and toggling it never
// moves the entity's table row.
type OnFire struct {
	ecs.SparseStorage
	Turns int
}

type FireSystem struct {
	Burning ecs.Query[struct {
		*Hitpoints
		*OnFire
	}]
}

func (s *FireSystem) Execute(frame *ecs.UpdateFrame) {
	for e, item := range s.Burning.Iter() {
		item.Hitpoints.Current -= 10
		item.OnFire.Turns--
		if item.OnFire.Turns == 0 {
			frame.Commands.Remove(e, reflect.TypeFor[OnFire]())
		}
	}
}

// ExampleScheduler runs a system that burns entities through a sparse component and
// removes it with Commands. The removal is applied after the system returns.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	torch, _ := storage.Spawn(Hitpoints{Current: 100, Max: 100}, OnFire{Turns: 2})
	rock, _ := storage.Spawn(Hitpoints{Current: 100, Max: 100})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FireSystem{})

	for frame := 1; frame <= 3; frame++ {
		scheduler.Once(1.0)
		hp, _ := ecs.Get[Hitpoints](storage, torch)
		onFire := storage.HasComponent(torch, reflect.TypeFor[OnFire]())
		fmt.Printf("frame %d: torch %d hp, on fire: %v\n", frame, hp.Current, onFire)
	}

	torchArch, _ := storage.ArchetypeOf(torch)
	rockArch, _ := storage.ArchetypeOf(rock)
	fmt.Println("same archetype again:", torchArch == rockArch)

	// Output:
	// frame 1: torch 90 hp, on fire: true
	// frame 2: torch 80 hp, on fire: false
	// frame 3: torch 80 hp, on fire: false
	// same archetype again: true
}

// ExampleScheduler_Run runs the systems at a fixed interval until the context is done.
func ExampleScheduler_Run() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)
	storage.Spawn(Hitpoints{Current: 100, Max: 100}, OnFire{Turns: 1000})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FireSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

type GameTime struct {
	TotalFrames int
	TotalTime   float64
}

type ArchetypeCensus struct {
	Max int
}

type TimeTracker struct {
	GameTime ecs.Singleton[GameTime]
}

func (s *TimeTracker) Execute(frame *ecs.UpdateFrame) {
	gameTime := s.GameTime.Get()
	gameTime.TotalFrames++
	gameTime.TotalTime += frame.DeltaTime
}

// IgniteSystem sets one more entity on fire each frame.
type IgniteSystem struct {
	Cold   ecs.Query[struct{ *Hitpoints }]
	Census ecs.Singleton[ArchetypeCensus]
}

func (s *IgniteSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range s.Cold.Iter() {
		if !frame.Storage.HasComponent(e, reflect.TypeFor[OnFire]()) {
			frame.Commands.Insert(e, OnFire{Turns: 10})
			break
		}
	}
	census := s.Census.Get()
	census.Max = max(census.Max, frame.Storage.ArchetypeCount())
}

// ExampleScheduler_withSingletons shows Singleton fields, which the Scheduler binds
// like Query fields.
func ExampleScheduler_withSingletons() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[GameTime](storage)
	ecs.NewSingleton[ArchetypeCensus](storage)

	for range 3 {
		storage.Spawn(Hitpoints{Current: 100, Max: 100})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&TimeTracker{})
	scheduler.Register(&IgniteSystem{})

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	var gameTime *GameTime
	storage.ReadSingleton(&gameTime)
	fmt.Printf("Frames: %d, Time: %.3f\n", gameTime.TotalFrames, gameTime.TotalTime)

	var census *ArchetypeCensus
	storage.ReadSingleton(&census)
	fmt.Printf("Archetypes: %d\n", census.Max)

	burning := ecs.NewQuery[struct{ *OnFire }](storage)
	fmt.Printf("Burning: %d\n", burning.Count())

	// Output:
	// Frames: 3, Time: 0.048
	// Archetypes: 3
	// Burning: 3
}
