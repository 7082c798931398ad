package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// ArchetypeId identifies an archetype. Ids are dense indices into the storage's arena.
type ArchetypeId uint32

// EmptyArchetype holds entities without components. It exists in every Storage.
const EmptyArchetype ArchetypeId = 0

type edgeKind uint64

const (
	edgeAdd edgeKind = iota
	edgeRemove
)

func edgeKey(kind edgeKind, bundle BundleId) uint64 {
	return uint64(bundle)<<1 | uint64(kind)
}

// Archetype represents a unique set of component types. Every entity with exactly that
// set belongs to it. Archetypes are never removed, even when they become empty.
type Archetype struct {
	id               ArchetypeId
	components       []ComponentId
	tableComponents  []ComponentId
	sparseComponents []ComponentId
	sparseBytes      int
	table            TableId
	hasTable         bool
	entities         []Entity
	edges            *intmap.Map[uint64, ArchetypeId]
}

// Id returns the archetype's identifier.
func (a *Archetype) Id() ArchetypeId {
	return a.id
}

// Components returns the sorted component ids of this archetype. Do not modify.
func (a *Archetype) Components() []ComponentId {
	return a.components
}

// TableComponents returns the sorted table-kind component ids. Do not modify.
func (a *Archetype) TableComponents() []ComponentId {
	return a.tableComponents
}

// SparseComponents returns the sorted sparse-kind component ids. Do not modify.
func (a *Archetype) SparseComponents() []ComponentId {
	return a.sparseComponents
}

// Table returns the table holding this archetype's rows, if it has table-kind components.
func (a *Archetype) Table() (TableId, bool) {
	return a.table, a.hasTable
}

// SparseCount returns the number of sparse-kind components.
func (a *Archetype) SparseCount() int {
	return len(a.sparseComponents)
}

// SparseBytes returns the per-entity size of the sparse-kind components.
func (a *Archetype) SparseBytes() int {
	return a.sparseBytes
}

// HasComponent checks if this archetype has the given component.
func (a *Archetype) HasComponent(id ComponentId) bool {
	_, found := slices.BinarySearch(a.components, id)
	return found
}

// Len returns the number of entities in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the entities of this archetype. Do not modify.
func (a *Archetype) Entities() []Entity {
	return a.entities
}

// Iter returns an iterator over the entities of this archetype.
func (a *Archetype) Iter() func(yield func(Entity) bool) {
	return func(yield func(Entity) bool) {
		for _, e := range a.entities {
			if !yield(e) {
				return
			}
		}
	}
}

func (a *Archetype) push(e Entity) int {
	a.entities = append(a.entities, e)
	return len(a.entities) - 1
}

// swapRemove removes row and returns the entity moved into it, if any.
func (a *Archetype) swapRemove(row int) (Entity, bool) {
	last := len(a.entities) - 1
	if row == last {
		a.entities = a.entities[:last]
		return 0, false
	}
	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]
	return moved, true
}

func (a *Archetype) sameTable(other *Archetype) bool {
	if a.hasTable != other.hasTable {
		return false
	}
	return !a.hasTable || a.table == other.table
}
