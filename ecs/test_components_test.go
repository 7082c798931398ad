package ecs_test

import "github.com/plus3/ecstore/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

type Link struct {
	Next *Position
}

// Sparse components
type Stunned struct {
	ecs.SparseStorage
	Remaining float32
}

type Burning struct {
	ecs.SparseStorage
	Damage int
}

// Registered as sparse through WithStorage rather than the marker.
type Selected struct {
	By int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Temperature](registry)
	ecs.RegisterComponent[Inventory](registry)
	ecs.RegisterComponent[Link](registry)
	ecs.RegisterComponent[Stunned](registry)
	ecs.RegisterComponent[Burning](registry)
	ecs.RegisterComponent[Selected](registry, ecs.WithStorage(ecs.StorageSparseSet))
	return registry
}
