package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// Query iterates entities with a specific combination of components.
// T must be a struct whose fields are pointers to component types. Embedded fields are
// required; named fields can be marked optional with the `ecs:"optional"` struct tag and
// are nil when the entity lacks the component.
//
// Matching archetypes are cached. Because archetypes are never removed, only archetypes
// created since the last iteration are examined.
type Query[T any] struct {
	storage     *Storage
	components  []ComponentId
	optional    []bool
	fieldOffset []uintptr

	archetypes []*Archetype
	scanned    int
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to a storage and resets its cache.
// The Scheduler calls it during system registration.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.components = make([]ComponentId, 0, structType.NumField())
	q.optional = make([]bool, 0, structType.NumField())
	q.fieldOffset = make([]uintptr, 0, structType.NumField())
	q.archetypes = nil
	q.scanned = 0

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("Query struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		q.components = append(q.components, storage.registry.Register(field.Type.Elem()))
		q.optional = append(q.optional, isOptional)
		q.fieldOffset = append(q.fieldOffset, field.Offset)
	}
}

func (q *Query[T]) matchesArchetype(archetype *Archetype) bool {
	for i, id := range q.components {
		if !q.optional[i] && !archetype.HasComponent(id) {
			return false
		}
	}
	return true
}

func (q *Query[T]) refresh() {
	archetypes := q.storage.graph.archetypes
	for _, archetype := range archetypes[q.scanned:] {
		if q.matchesArchetype(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}
	q.scanned = len(archetypes)
}

// fieldSource is where a query field reads from within one archetype.
type fieldSource struct {
	col    *column
	sparse *SparseSet
}

func (q *Query[T]) sources(archetype *Archetype) []fieldSource {
	table := q.storage.graph.table(archetype)
	sources := make([]fieldSource, len(q.components))
	for i, id := range q.components {
		if !archetype.HasComponent(id) {
			continue
		}
		if q.storage.registry.StorageKind(id) == StorageSparseSet {
			sources[i].sparse = q.storage.graph.sparseSets[id]
		} else {
			sources[i].col = table.column(id)
		}
	}
	return sources
}

func (q *Query[T]) populate(resultPtr unsafe.Pointer, e Entity, tableRow int, sources []fieldSource) {
	for i, src := range sources {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + q.fieldOffset[i])
		switch {
		case src.col != nil:
			*(*unsafe.Pointer)(fieldPtr) = src.col.pointer(tableRow)
		case src.sparse != nil:
			*(*unsafe.Pointer)(fieldPtr) = src.sparse.pointer(e)
		default:
			*(*unsafe.Pointer)(fieldPtr) = nil
		}
	}
}

// Iter returns an iterator over matching entities and their component pointers.
// The storage must not be mutated during iteration; queue changes with Commands.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		q.refresh()
		for _, archetype := range q.archetypes {
			if len(archetype.entities) == 0 {
				continue
			}
			sources := q.sources(archetype)

			var result T
			resultPtr := unsafe.Pointer(&result)
			for _, e := range archetype.entities {
				q.populate(resultPtr, e, q.storage.entities.location(e).TableRow, sources)
				if !yield(e, result) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Get returns the populated struct for one entity, or nil when the entity is not live
// or lacks a required component.
func (q *Query[T]) Get(e Entity) *T {
	loc, ok := q.storage.entities.Location(e)
	if !ok {
		return nil
	}
	archetype := q.storage.graph.archetypes[loc.Archetype]
	if !q.matchesArchetype(archetype) {
		return nil
	}

	var result T
	q.populate(unsafe.Pointer(&result), e, loc.TableRow, q.sources(archetype))
	return &result
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.refresh()
	n := 0
	for _, archetype := range q.archetypes {
		n += len(archetype.entities)
	}
	return n
}

// Archetypes returns the matching archetypes.
func (q *Query[T]) Archetypes() []*Archetype {
	q.refresh()
	return q.archetypes
}
