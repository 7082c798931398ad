package ecs_test

import (
	"fmt"
	"slices"

	"github.com/plus3/ecstore/ecs"
)

// ExampleQuery demonstrates iterating every entity that has a set of components.
// Queries cache their matching archetypes and only examine archetypes created since
// the previous iteration.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	type result struct {
		x, y, newX, newY float32
	}
	results := make([]result, 0)
	for item := range query.Values() {
		newX := item.Position.X + item.Velocity.DX
		newY := item.Position.Y + item.Velocity.DY
		results = append(results, result{item.Position.X, item.Position.Y, newX, newY})
	}
	slices.SortFunc(results, func(a, b result) int {
		return int(a.x - b.x)
	})

	fmt.Println("Moving entities:")
	for _, r := range results {
		fmt.Printf("Position (%.0f, %.0f) -> (%.0f, %.0f)\n", r.x, r.y, r.newX, r.newY)
	}

	// Output:
	// Moving entities:
	// Position (0, 0) -> (1, 0)
	// Position (10, 10) -> (10, 11)
	// Position (20, 20) -> (19, 19)
}

// ExampleQuery_optional uses an optional field, which is nil for entities that lack
// the component.
func ExampleQuery_optional() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	storage.Spawn(Name{Value: "rock"})
	storage.Spawn(Name{Value: "goblin"}, Health{Current: 3, Max: 5})

	query := ecs.NewQuery[struct {
		*Name
		Health *Health `ecs:"optional"`
	}](storage)

	lines := make([]string, 0)
	for item := range query.Values() {
		if item.Health != nil {
			lines = append(lines, fmt.Sprintf("%s: %d/%d", item.Name.Value, item.Health.Current, item.Health.Max))
		} else {
			lines = append(lines, fmt.Sprintf("%s: indestructible", item.Name.Value))
		}
	}
	slices.Sort(lines)
	for _, line := range lines {
		fmt.Println(line)
	}

	// Output:
	// goblin: 3/5
	// rock: indestructible
}
