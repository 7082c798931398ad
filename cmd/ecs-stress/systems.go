package main

import (
	"math/rand/v2"
	"reflect"

	"github.com/plus3/ecstore/ecs"
)

const maxBundleSize = 5

// randomBundle picks up to n distinct marker components. One in four picks is sparse.
func randomBundle(rng *rand.Rand, n int) []any {
	picked := make(map[reflect.Type]bool, n)
	bundle := make([]any, 0, n)
	for len(bundle) < n {
		var c any
		if rng.IntN(4) == 0 {
			c = sparseComponents[rng.IntN(len(sparseComponents))]
		} else {
			c = tableComponents[rng.IntN(len(tableComponents))]
		}
		t := reflect.TypeOf(c)
		if picked[t] {
			continue
		}
		picked[t] = true
		bundle = append(bundle, c)
	}
	return bundle
}

func SpawnRandomEntity(storage *ecs.Storage, rng *rand.Rand, numComponents int) (ecs.Entity, error) {
	return storage.Spawn(randomBundle(rng, numComponents)...)
}

// randomEntity returns a live entity from a random non-empty archetype.
func randomEntity(storage *ecs.Storage, rng *rand.Rand) (ecs.Entity, bool) {
	var candidates []*ecs.Archetype
	for archetype := range storage.Archetypes() {
		if archetype.Len() > 0 {
			candidates = append(candidates, archetype)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	archetype := candidates[rng.IntN(len(candidates))]
	return archetype.Entities()[rng.IntN(archetype.Len())], true
}

// ChurnSystem queues random structural changes every frame: spawns, bundle inserts,
// bundle removals and despawns, keeping the population roughly stable.
type ChurnSystem struct {
	Rng        *rand.Rand
	Operations int
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	for range s.Operations {
		switch s.Rng.IntN(4) {
		case 0:
			frame.Commands.Spawn(randomBundle(s.Rng, s.Rng.IntN(maxBundleSize)+1)...)
		case 1:
			if e, ok := randomEntity(frame.Storage, s.Rng); ok {
				frame.Commands.Insert(e, randomBundle(s.Rng, s.Rng.IntN(3)+1)...)
			}
		case 2:
			if e, ok := randomEntity(frame.Storage, s.Rng); ok {
				bundle := randomBundle(s.Rng, s.Rng.IntN(3)+1)
				types := make([]reflect.Type, len(bundle))
				for i, c := range bundle {
					types[i] = reflect.TypeOf(c)
				}
				frame.Commands.Remove(e, types...)
			}
		case 3:
			if e, ok := randomEntity(frame.Storage, s.Rng); ok {
				frame.Commands.Despawn(e)
			}
		}
	}
}

// TableScanSystem walks a query over two table components.
type TableScanSystem struct {
	Query ecs.Query[struct {
		*C0
		*C1
	}]
	Visited int
}

func (s *TableScanSystem) Execute(frame *ecs.UpdateFrame) {
	for range s.Query.Values() {
		s.Visited++
	}
}

// SparseScanSystem walks a query mixing a table component with a sparse one.
type SparseScanSystem struct {
	Query ecs.Query[struct {
		*C2
		*S0
	}]
	Visited int
}

func (s *SparseScanSystem) Execute(frame *ecs.UpdateFrame) {
	for range s.Query.Values() {
		s.Visited++
	}
}

func RegisterAllGeneratedSystems(scheduler *ecs.Scheduler, rng *rand.Rand, operations int) {
	scheduler.Register(&ChurnSystem{Rng: rng, Operations: operations})
	scheduler.Register(&TableScanSystem{})
	scheduler.Register(&SparseScanSystem{})
}
