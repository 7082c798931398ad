package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rs/zerolog"
)

// archetypeGraph owns every archetype, table and sparse set of a Storage and resolves
// bundle transitions between archetypes. Resolved transitions are cached on the source
// archetype so repeating one is a single map lookup.
type archetypeGraph struct {
	registry      *ComponentRegistry
	logger        zerolog.Logger
	tableCapacity int

	archetypes []*Archetype
	index      *intmap.Map[uint64, []ArchetypeId]

	tables     []*Table
	tableIndex *intmap.Map[uint64, []TableId]

	sparseSets []*SparseSet // indexed by ComponentId, nil until first use
}

func newArchetypeGraph(registry *ComponentRegistry, logger zerolog.Logger, tableCapacity int) *archetypeGraph {
	g := &archetypeGraph{
		registry:      registry,
		logger:        logger,
		tableCapacity: tableCapacity,
		index:         intmap.New[uint64, []ArchetypeId](64),
		tableIndex:    intmap.New[uint64, []TableId](64),
	}
	g.resolve(nil)
	return g
}

// addBundle returns the archetype reached by adding b to from.
// Components of b already present in from do not change the archetype.
func (g *archetypeGraph) addBundle(from ArchetypeId, b *Bundle) ArchetypeId {
	src := g.archetypes[from]
	key := edgeKey(edgeAdd, b.id)
	if to, ok := src.edges.Get(key); ok {
		return to
	}

	ids := slices.Clone(src.components)
	disjoint := true
	for _, id := range b.components {
		if src.HasComponent(id) {
			disjoint = false
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	to := g.resolve(ids)
	src.edges.Put(key, to)
	if disjoint {
		g.archetypes[to].edges.Put(edgeKey(edgeRemove, b.id), from)
	}
	logEdge(&g.logger, "add", from, to, b)
	return to
}

// removeBundle returns the archetype reached by removing b from from.
// Components of b absent from from are ignored.
func (g *archetypeGraph) removeBundle(from ArchetypeId, b *Bundle) ArchetypeId {
	src := g.archetypes[from]
	key := edgeKey(edgeRemove, b.id)
	if to, ok := src.edges.Get(key); ok {
		return to
	}

	ids := make([]ComponentId, 0, len(src.components))
	for _, id := range src.components {
		if !slices.Contains(b.components, id) {
			ids = append(ids, id)
		}
	}

	to := g.resolve(ids)
	src.edges.Put(key, to)
	if len(src.components)-len(ids) == len(b.components) {
		g.archetypes[to].edges.Put(edgeKey(edgeAdd, b.id), from)
	}
	logEdge(&g.logger, "remove", from, to, b)
	return to
}

// resolve returns the archetype for a sorted component set, creating it if unseen.
func (g *archetypeGraph) resolve(ids []ComponentId) ArchetypeId {
	hash := hashComponentIds(ids)
	bucket, _ := g.index.Get(hash)
	for _, id := range bucket {
		if slices.Equal(g.archetypes[id].components, ids) {
			return id
		}
	}

	a := &Archetype{
		id:         ArchetypeId(len(g.archetypes)),
		components: slices.Clone(ids),
		edges:      intmap.New[uint64, ArchetypeId](8),
	}
	for _, id := range a.components {
		info := g.registry.Info(id)
		if info.Kind == StorageSparseSet {
			a.sparseComponents = append(a.sparseComponents, id)
			a.sparseBytes += int(info.Size)
			g.sparseSet(id)
		} else {
			a.tableComponents = append(a.tableComponents, id)
		}
	}
	if len(a.tableComponents) > 0 {
		a.table = g.tableFor(a.tableComponents)
		a.hasTable = true
	}

	g.archetypes = append(g.archetypes, a)
	g.index.Put(hash, append(bucket, a.id))
	logArchetype(&g.logger, a)
	return a.id
}

// tableFor returns the table for a sorted table-kind component set, creating it if unseen.
func (g *archetypeGraph) tableFor(ids []ComponentId) TableId {
	hash := hashComponentIds(ids)
	bucket, _ := g.tableIndex.Get(hash)
	for _, id := range bucket {
		if slices.Equal(g.tables[id].components, ids) {
			return id
		}
	}

	infos := make([]*ComponentInfo, len(ids))
	for i, id := range ids {
		infos[i] = g.registry.Info(id)
	}
	t := newTable(TableId(len(g.tables)), infos, g.tableCapacity)
	g.tables = append(g.tables, t)
	g.tableIndex.Put(hash, append(bucket, t.id))
	logTable(&g.logger, t)
	return t.id
}

// sparseSet returns the set for a sparse-kind component, creating it on first use.
func (g *archetypeGraph) sparseSet(id ComponentId) *SparseSet {
	if int(id) >= len(g.sparseSets) {
		g.sparseSets = append(g.sparseSets, make([]*SparseSet, int(id)+1-len(g.sparseSets))...)
	}
	if g.sparseSets[id] == nil {
		g.sparseSets[id] = newSparseSet(g.registry.Info(id), 0)
		g.logger.Debug().
			Uint32("component", uint32(id)).
			Stringer("type", g.registry.Info(id).Type).
			Msg("sparse set created")
	}
	return g.sparseSets[id]
}

func (g *archetypeGraph) table(a *Archetype) *Table {
	if !a.hasTable {
		return nil
	}
	return g.tables[a.table]
}
