package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/ecstore/ecs"
)

// ExampleStorage demonstrates the basic API for managing entities and components.
// Entities with the same set of component types share an archetype, and their
// table-kind components share column storage.
func ExampleStorage() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	player, err := storage.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)
	if err != nil {
		panic(err)
	}

	pos := ecs.ReadComponent[Position](storage, player)
	fmt.Printf("Player spawned at (%.0f, %.0f)\n", pos.X, pos.Y)

	pos.X = 15
	pos.Y = 25
	fmt.Printf("Player moved to (%.0f, %.0f)\n", pos.X, pos.Y)

	if err := storage.Despawn(player); err != nil {
		panic(err)
	}
	fmt.Println("Player despawned:", !storage.Contains(player))

	// Output:
	// Player spawned at (10, 20)
	// Player moved to (15, 25)
	// Player despawned: true
}

// ExampleStorage_Insert shows how an entity changes archetype when components are
// inserted or removed. The entity identifier never changes.
func ExampleStorage_Insert() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	entity, _ := storage.Spawn(Position{X: 0, Y: 0})
	fmt.Printf("Has velocity: %v\n", storage.HasComponent(entity, reflect.TypeFor[Velocity]()))

	_ = storage.Insert(entity, Velocity{DX: 5, DY: 3})
	vel := ecs.ReadComponent[Velocity](storage, entity)
	fmt.Printf("Has velocity: %v (%.0f, %.0f)\n", vel != nil, vel.DX, vel.DY)

	_ = storage.Insert(entity, Health{Current: 50, Max: 50})
	health := ecs.ReadComponent[Health](storage, entity)
	fmt.Printf("Has health: %v (%d/%d)\n", health != nil, health.Current, health.Max)

	_ = storage.Remove(entity, reflect.TypeFor[Velocity]())
	fmt.Printf("Has velocity: %v\n", storage.HasComponent(entity, reflect.TypeFor[Velocity]()))

	// Output:
	// Has velocity: false
	// Has velocity: true (5, 3)
	// Has health: true (50/50)
	// Has velocity: false
}

type Frozen struct {
	ecs.SparseStorage
	Turns int
}

// ExampleSparseStorage shows a component stored in a sparse set. Adding or removing it
// changes the archetype but leaves the entity's table row where it is.
func ExampleSparseStorage() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	entity, _ := storage.Spawn(Position{X: 1, Y: 1}, Velocity{DX: 1})
	before, _ := storage.Location(entity)

	_ = storage.Insert(entity, Frozen{Turns: 3})
	after, _ := storage.Location(entity)

	tableBefore, _ := storage.TableOf(before.Archetype)
	tableAfter, _ := storage.TableOf(after.Archetype)
	fmt.Println("archetype changed:", before.Archetype != after.Archetype)
	fmt.Println("same table:", tableBefore == tableAfter)
	fmt.Println("sparse components:", storage.ComponentCountSparse(after.Archetype))

	// Output:
	// archetype changed: true
	// same table: true
	// sparse components: 1
}
