package ecs

import (
	"iter"
	"reflect"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Storage is the archetype-based component storage engine. It has a single logical
// owner: mutations must not overlap with each other or with readers. Pointers obtained
// from GetComponent, Get or a Query must be re-fetched after any Spawn, Insert, Remove
// or Despawn.
type Storage struct {
	registry   *ComponentRegistry
	graph      *archetypeGraph
	bundles    *bundleRegistry
	entities   *Entities
	singletons map[reflect.Type]*singletonEntry
	logger     zerolog.Logger
}

// StorageOption configures a Storage.
type StorageOption func(*storageConfig)

type storageConfig struct {
	logger         zerolog.Logger
	entityCapacity int
	tableCapacity  int
}

// WithLogger sets the logger used for storage diagnostics.
func WithLogger(logger zerolog.Logger) StorageOption {
	return func(c *storageConfig) {
		c.logger = logger
	}
}

// WithEntityCapacity preallocates bookkeeping for n entities.
func WithEntityCapacity(n int) StorageOption {
	return func(c *storageConfig) {
		c.entityCapacity = n
	}
}

// WithTableCapacity sets the initial row capacity of newly created tables.
func WithTableCapacity(n int) StorageOption {
	return func(c *storageConfig) {
		c.tableCapacity = n
	}
}

// NewStorage creates a new ECS storage system with the given component registry.
func NewStorage(registry *ComponentRegistry, opts ...StorageOption) *Storage {
	cfg := storageConfig{
		logger:         zerolog.Nop(),
		entityCapacity: 256,
		tableCapacity:  0,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Storage{
		registry:   registry,
		graph:      newArchetypeGraph(registry, cfg.logger, cfg.tableCapacity),
		bundles:    newBundleRegistry(registry),
		entities:   newEntities(cfg.entityCapacity),
		singletons: make(map[reflect.Type]*singletonEntry),
		logger:     cfg.logger,
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Bundle returns the interned bundle for the given component types, in order.
// Unregistered types are registered on first reference.
func (s *Storage) Bundle(types ...reflect.Type) (*Bundle, error) {
	ids := make([]ComponentId, len(types))
	for i, t := range types {
		if err := validateComponentType(t); err != nil {
			return nil, err
		}
		ids[i] = s.registry.Register(t)
	}
	return s.bundles.intern(ids)
}

// prepare resolves component values into a bundle and the values in bundle order.
// Nothing is mutated when it fails.
func (s *Storage) prepare(components []any) (*Bundle, []reflect.Value, error) {
	ids := make([]ComponentId, len(components))
	values := make([]reflect.Value, len(components))
	for i, comp := range components {
		v, err := componentValue(comp)
		if err != nil {
			return nil, nil, err
		}
		ids[i] = s.registry.Register(v.Type())
		values[i] = v
	}

	bundle, err := s.bundles.intern(ids)
	if err != nil {
		return nil, nil, err
	}
	return bundle, values, nil
}

// Spawn creates a new entity with the provided components. Components may be passed by
// value or by pointer; the stored value is a copy. Spawning without components places
// the entity in EmptyArchetype.
func (s *Storage) Spawn(components ...any) (Entity, error) {
	bundle, values, err := s.prepare(components)
	if err != nil {
		return 0, err
	}

	e := s.entities.alloc()
	target := s.graph.addBundle(EmptyArchetype, bundle)
	archetype := s.graph.archetypes[target]

	loc := EntityLocation{
		Archetype:    target,
		ArchetypeRow: archetype.push(e),
		TableRow:     NoRow,
	}
	if table := s.graph.table(archetype); table != nil {
		loc.TableRow = table.allocateRow(e)
	}
	s.entities.set(e, loc)
	s.writeBundle(e, loc, bundle, values)
	return e, nil
}

// Insert adds the components to a live entity. Components the entity already has are
// overwritten in place; the rest move the entity to a new archetype.
func (s *Storage) Insert(e Entity, components ...any) error {
	loc, ok := s.entities.Location(e)
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "insert into %v", e)
	}
	bundle, values, err := s.prepare(components)
	if err != nil {
		return err
	}

	target := s.graph.addBundle(loc.Archetype, bundle)
	loc = s.relocate(e, loc, target)
	s.writeBundle(e, loc, bundle, values)
	return nil
}

// Remove removes the component types from a live entity. Types the entity lacks are
// ignored. Removing every component leaves the entity live in EmptyArchetype.
func (s *Storage) Remove(e Entity, types ...reflect.Type) error {
	if !s.entities.Contains(e) {
		return eris.Wrapf(ErrEntityNotFound, "remove from %v", e)
	}
	bundle, err := s.Bundle(types...)
	if err != nil {
		return err
	}
	return s.RemoveBundle(e, bundle)
}

// RemoveBundle removes every component of b from a live entity.
func (s *Storage) RemoveBundle(e Entity, b *Bundle) error {
	loc, ok := s.entities.Location(e)
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "remove from %v", e)
	}

	target := s.graph.removeBundle(loc.Archetype, b)
	s.relocate(e, loc, target)
	return nil
}

// Despawn removes the entity and all of its components. The identifier is never valid
// again; its slot is reused with a new generation.
func (s *Storage) Despawn(e Entity) error {
	loc, ok := s.entities.Location(e)
	if !ok {
		return eris.Wrapf(ErrEntityNotFound, "despawn %v", e)
	}

	archetype := s.graph.archetypes[loc.Archetype]
	if moved, ok := archetype.swapRemove(loc.ArchetypeRow); ok {
		s.entities.setArchetypeRow(moved, loc.ArchetypeRow)
	}
	if table := s.graph.table(archetype); table != nil {
		if moved, ok := table.swapRemoveRow(loc.TableRow); ok {
			s.entities.setTableRow(moved, loc.TableRow)
		}
	}
	for _, id := range archetype.sparseComponents {
		s.graph.sparseSets[id].remove(e)
	}

	logEntity(&s.logger, zerolog.TraceLevel, "entity despawned", e, loc)
	s.entities.release(e)
	return nil
}

// relocate moves e from its current archetype to target, carrying shared table columns
// and dropping sparse values target does not have. Values new to target are left for
// the caller to write.
func (s *Storage) relocate(e Entity, loc EntityLocation, target ArchetypeId) EntityLocation {
	if target == loc.Archetype {
		return loc
	}

	src := s.graph.archetypes[loc.Archetype]
	dst := s.graph.archetypes[target]
	next := EntityLocation{Archetype: target, TableRow: loc.TableRow}

	if moved, ok := src.swapRemove(loc.ArchetypeRow); ok {
		s.entities.setArchetypeRow(moved, loc.ArchetypeRow)
	}
	next.ArchetypeRow = dst.push(e)

	if !src.sameTable(dst) {
		srcTable, dstTable := s.graph.table(src), s.graph.table(dst)
		next.TableRow = NoRow
		switch {
		case srcTable != nil && dstTable != nil:
			next.TableRow = srcTable.moveRow(loc.TableRow, dstTable)
		case dstTable != nil:
			next.TableRow = dstTable.allocateRow(e)
		}
		if srcTable != nil {
			if moved, ok := srcTable.swapRemoveRow(loc.TableRow); ok {
				s.entities.setTableRow(moved, loc.TableRow)
			}
		}
	}

	for _, id := range src.sparseComponents {
		if !dst.HasComponent(id) {
			s.graph.sparseSets[id].remove(e)
		}
	}

	s.entities.set(e, next)
	logEntity(&s.logger, zerolog.TraceLevel, "entity moved", e, next)
	return next
}

// writeBundle stores values for every component of b at e's location.
func (s *Storage) writeBundle(e Entity, loc EntityLocation, b *Bundle, values []reflect.Value) {
	if len(b.tableSlots) > 0 {
		table := s.graph.tables[s.graph.archetypes[loc.Archetype].table]
		for _, slot := range b.tableSlots {
			table.column(b.components[slot]).set(loc.TableRow, values[slot])
		}
	}
	for _, slot := range b.sparseSlots {
		s.graph.sparseSets[b.components[slot]].insert(e, values[slot])
	}
}

// Contains reports whether e is live.
func (s *Storage) Contains(e Entity) bool {
	return s.entities.Contains(e)
}

// Location returns where e's data currently lives.
func (s *Storage) Location(e Entity) (EntityLocation, bool) {
	return s.entities.Location(e)
}

// GetComponent returns a pointer to the component of the given type, or nil when the
// entity is not live or lacks the component.
func (s *Storage) GetComponent(e Entity, compType reflect.Type) any {
	loc, ok := s.entities.Location(e)
	if !ok {
		return nil
	}
	id, ok := s.registry.Lookup(compType)
	if !ok {
		return nil
	}
	return s.componentAt(e, loc, id)
}

func (s *Storage) componentAt(e Entity, loc EntityLocation, id ComponentId) any {
	archetype := s.graph.archetypes[loc.Archetype]
	if !archetype.HasComponent(id) {
		return nil
	}
	if s.registry.StorageKind(id) == StorageSparseSet {
		return s.graph.sparseSets[id].Get(e)
	}
	return s.graph.table(archetype).Get(loc.TableRow, id)
}

// HasComponent checks if an entity has a specific component type.
func (s *Storage) HasComponent(e Entity, compType reflect.Type) bool {
	loc, ok := s.entities.Location(e)
	if !ok {
		return false
	}
	id, ok := s.registry.Lookup(compType)
	if !ok {
		return false
	}
	return s.graph.archetypes[loc.Archetype].HasComponent(id)
}

// ArchetypeOf returns the archetype of a live entity.
func (s *Storage) ArchetypeOf(e Entity) (ArchetypeId, error) {
	loc, ok := s.entities.Location(e)
	if !ok {
		return 0, eris.Wrapf(ErrEntityNotFound, "archetype of %v", e)
	}
	return loc.Archetype, nil
}

// Archetype returns the archetype with the given id, or nil.
func (s *Storage) Archetype(id ArchetypeId) *Archetype {
	if int(id) >= len(s.graph.archetypes) {
		return nil
	}
	return s.graph.archetypes[id]
}

// Archetypes returns an iterator over all archetypes in creation order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.graph.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

// GetArchetype returns the archetype whose component set is exactly the given types,
// if one exists. Types that were never registered match nothing.
func (s *Storage) GetArchetype(types ...reflect.Type) *Archetype {
	ids := make([]ComponentId, 0, len(types))
	for _, t := range types {
		id, ok := s.registry.Lookup(t)
		if !ok {
			return nil
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	bucket, _ := s.graph.index.Get(hashComponentIds(ids))
	for _, id := range bucket {
		if slices.Equal(s.graph.archetypes[id].components, ids) {
			return s.graph.archetypes[id]
		}
	}
	return nil
}

// TableOf returns the table of an archetype, if it has one.
func (s *Storage) TableOf(archetype ArchetypeId) (TableId, bool) {
	a := s.Archetype(archetype)
	if a == nil {
		return 0, false
	}
	return a.Table()
}

// Table returns the table with the given id, or nil.
func (s *Storage) Table(id TableId) *Table {
	if int(id) >= len(s.graph.tables) {
		return nil
	}
	return s.graph.tables[id]
}

// SparseSet returns the sparse set of a component, or nil if none was created.
func (s *Storage) SparseSet(id ComponentId) *SparseSet {
	if int(id) >= len(s.graph.sparseSets) {
		return nil
	}
	return s.graph.sparseSets[id]
}

// ComponentCountSparse returns the number of sparse-kind components of an archetype.
func (s *Storage) ComponentCountSparse(archetype ArchetypeId) int {
	a := s.Archetype(archetype)
	if a == nil {
		return 0
	}
	return a.SparseCount()
}

// SparseBytes returns the per-entity size of an archetype's sparse-kind components.
func (s *Storage) SparseBytes(archetype ArchetypeId) int {
	a := s.Archetype(archetype)
	if a == nil {
		return 0
	}
	return a.SparseBytes()
}

// ComponentCount returns the number of registered component types.
func (s *Storage) ComponentCount() int {
	return s.registry.Len()
}

// ArchetypeCount returns the number of archetypes, including EmptyArchetype.
func (s *Storage) ArchetypeCount() int {
	return len(s.graph.archetypes)
}

// TableCount returns the number of tables.
func (s *Storage) TableCount() int {
	return len(s.graph.tables)
}

// BundleCount returns the number of interned bundles.
func (s *Storage) BundleCount() int {
	return s.bundles.len()
}

// EntityCount returns the number of live entities.
func (s *Storage) EntityCount() int {
	return s.entities.Len()
}

// ComponentReader reads a component pointer for an entity.
type ComponentReader interface {
	GetComponent(Entity, reflect.Type) any
}

// ReadComponent returns the T component of an entity, or nil.
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	c, _ := reader.GetComponent(e, reflect.TypeFor[T]()).(*T)
	return c
}

// Get returns the T component of an entity and whether it was present.
func Get[T any](s *Storage, e Entity) (*T, bool) {
	c := ReadComponent[T](s, e)
	return c, c != nil
}

// RemoveComponent removes the T component from an entity.
func RemoveComponent[T any](s *Storage, e Entity) error {
	return s.Remove(e, reflect.TypeFor[T]())
}
