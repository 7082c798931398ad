package ecs

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tablePos struct{ X, Y float64 }
type tableVel struct{ DX, DY float64 }
type tableTag struct{}

func tableInfos(r *ComponentRegistry, types ...reflect.Type) []*ComponentInfo {
	infos := make([]*ComponentInfo, len(types))
	for i, t := range types {
		infos[i] = r.Info(r.Register(t))
	}
	return infos
}

func TestTableRows(t *testing.T) {
	r := NewComponentRegistry()
	infos := tableInfos(r, reflect.TypeFor[tablePos](), reflect.TypeFor[tableVel]())
	table := newTable(0, infos, 0)

	e1, e2, e3 := NewEntity(0, 1), NewEntity(1, 1), NewEntity(2, 1)
	for i, e := range []Entity{e1, e2, e3} {
		row := table.allocateRow(e)
		require.Equal(t, i, row)
		table.column(infos[0].Id).set(row, reflect.ValueOf(tablePos{X: float64(i)}))
	}
	assert.Equal(t, 3, table.Len())
	assert.GreaterOrEqual(t, table.Capacity(), 3)

	moved, ok := table.swapRemoveRow(0)
	require.True(t, ok)
	assert.Equal(t, e3, moved)
	assert.Equal(t, []Entity{e3, e2}, table.Entities())
	assert.Equal(t, float64(2), table.Get(0, infos[0].Id).(*tablePos).X)

	_, ok = table.swapRemoveRow(1)
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())

	assert.Nil(t, table.Get(5, infos[0].Id))
	assert.Nil(t, table.Get(0, ComponentId(99)))
	assert.Equal(t, int(reflect.TypeFor[tablePos]().Size()+reflect.TypeFor[tableVel]().Size()), table.Bytes())
}

func TestTableMoveRow(t *testing.T) {
	r := NewComponentRegistry()
	src := newTable(0, tableInfos(r, reflect.TypeFor[tablePos](), reflect.TypeFor[tableVel]()), 0)
	dst := newTable(1, tableInfos(r, reflect.TypeFor[tablePos](), reflect.TypeFor[tableTag]()), 0)
	posId := r.Register(reflect.TypeFor[tablePos]())

	e := NewEntity(4, 2)
	row := src.allocateRow(e)
	src.column(posId).set(row, reflect.ValueOf(tablePos{X: 7, Y: 8}))

	dstRow := src.moveRow(row, dst)
	assert.Equal(t, 0, dstRow)
	assert.Equal(t, tablePos{X: 7, Y: 8}, *dst.Get(dstRow, posId).(*tablePos))
	assert.Equal(t, []Entity{e}, dst.Entities())

	// Source row stays until swap-removed.
	assert.Equal(t, 1, src.Len())
	src.swapRemoveRow(row)
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Bytes())
}

func TestColumnGrowth(t *testing.T) {
	r := NewComponentRegistry()
	col := newColumn(r.Info(r.Register(reflect.TypeFor[int64]())), 0)

	for i := range 100 {
		row := col.pushZero()
		col.set(row, reflect.ValueOf(int64(i)))
	}
	assert.Equal(t, 100, col.len())
	assert.GreaterOrEqual(t, col.capacity(), 100)

	col.swapRemove(10)
	assert.Equal(t, 99, col.len())
	assert.Equal(t, int64(99), *col.get(10).(*int64))
	assert.Equal(t, 99*8, col.bytes())
}

func TestSparseSet(t *testing.T) {
	r := NewComponentRegistry()
	info := r.Info(r.Register(reflect.TypeFor[tableVel](), WithStorage(StorageSparseSet)))
	set := newSparseSet(info, 0)

	e1, e2, e3 := NewEntity(3, 1), NewEntity(40, 1), NewEntity(7, 1)
	set.insert(e1, reflect.ValueOf(tableVel{DX: 1}))
	set.insert(e2, reflect.ValueOf(tableVel{DX: 2}))
	set.insert(e3, reflect.ValueOf(tableVel{DX: 3}))
	assert.Equal(t, 3, set.Len())

	set.insert(e2, reflect.ValueOf(tableVel{DX: 20}))
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, float64(20), set.Get(e2).(*tableVel).DX)

	// A stale entity sharing the slot index is not a member.
	assert.False(t, set.Contains(NewEntity(3, 2)))
	assert.Nil(t, set.Get(NewEntity(3, 2)))
	assert.False(t, set.Contains(NewEntity(1000, 1)))

	removed, ok := set.remove(e1)
	require.True(t, ok)
	assert.Equal(t, tableVel{DX: 1}, removed)
	assert.False(t, set.Contains(e1))
	assert.Equal(t, 2, set.Len())
	assert.ElementsMatch(t, []Entity{e2, e3}, set.Entities())
	assert.Equal(t, float64(3), set.Get(e3).(*tableVel).DX)

	_, ok = set.remove(e1)
	assert.False(t, ok)
	assert.Equal(t, 2*int(info.Size), set.Bytes())
}

func TestArchetypeGraphEdges(t *testing.T) {
	r := NewComponentRegistry()
	storage := NewStorage(r)
	posId := RegisterComponent[tablePos](r)
	velId := RegisterComponent[tableVel](r)

	bundle, err := storage.bundles.intern([]ComponentId{velId})
	require.NoError(t, err)
	posBundle, err := storage.bundles.intern([]ComponentId{posId})
	require.NoError(t, err)

	g := storage.graph
	withPos := g.addBundle(EmptyArchetype, posBundle)
	withBoth := g.addBundle(withPos, bundle)
	assert.Equal(t, 3, len(g.archetypes))

	cached, ok := g.archetypes[withPos].edges.Get(edgeKey(edgeAdd, bundle.id))
	require.True(t, ok)
	assert.Equal(t, withBoth, cached)

	// The reverse edge is recorded when the added bundle was disjoint.
	back, ok := g.archetypes[withBoth].edges.Get(edgeKey(edgeRemove, bundle.id))
	require.True(t, ok)
	assert.Equal(t, withPos, back)
	assert.Equal(t, withPos, g.removeBundle(withBoth, bundle))

	// Adding a bundle already contained is a self edge.
	assert.Equal(t, withBoth, g.addBundle(withBoth, bundle))

	// Removing an absent bundle is a self edge.
	assert.Equal(t, withPos, g.removeBundle(withPos, bundle))
	assert.Equal(t, 3, len(g.archetypes))
}

func TestArchetypeGraphResolveIsContentAddressed(t *testing.T) {
	r := NewComponentRegistry()
	g := newArchetypeGraph(r, zerolog.Nop(), 0)
	a := RegisterComponent[tablePos](r)
	b := RegisterComponent[tableVel](r)
	c := RegisterComponent[tableTag](r, WithStorage(StorageSparseSet))

	ab := g.resolve([]ComponentId{a, b})
	abc := g.resolve([]ComponentId{a, b, c})
	assert.Equal(t, ab, g.resolve([]ComponentId{a, b}))
	assert.NotEqual(t, ab, abc)

	assert.Equal(t, g.archetypes[ab].table, g.archetypes[abc].table)
	assert.Len(t, g.tables, 1)
	assert.Equal(t, []ComponentId{c}, g.archetypes[abc].sparseComponents)
	assert.NotNil(t, g.sparseSets[c])
}

func TestHashComponentIds(t *testing.T) {
	assert.Equal(t, hashComponentIds([]ComponentId{1, 2, 3}), hashComponentIds([]ComponentId{1, 2, 3}))
	assert.NotEqual(t, hashComponentIds([]ComponentId{1, 2, 3}), hashComponentIds([]ComponentId{3, 2, 1}))
	assert.NotEqual(t, hashComponentIds(nil), hashComponentIds([]ComponentId{0}))
}
