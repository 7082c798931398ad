package ecs_test

import (
	"testing"

	"github.com/plus3/ecstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("matches every archetype containing the set", func(t *testing.T) {
		assert.Equal(t, 3, query.Count())
		assert.Len(t, query.Archetypes(), 2)
	})

	t.Run("multiple iterations are consistent", func(t *testing.T) {
		results1 := make(map[ecs.Entity]bool)
		for e := range query.Iter() {
			results1[e] = true
		}
		results2 := make(map[ecs.Entity]bool)
		for e := range query.Iter() {
			results2[e] = true
		}
		assert.Equal(t, results1, results2)
	})

	t.Run("new archetypes are picked up", func(t *testing.T) {
		before := query.Count()
		storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0}, Tag("new"))
		assert.Equal(t, before+1, query.Count())
	})

	t.Run("values are live pointers", func(t *testing.T) {
		for item := range query.Values() {
			require.NotNil(t, item.Position)
			require.NotNil(t, item.Velocity)
			item.Position.X += item.Velocity.DX
		}

		for e, item := range query.Iter() {
			pos, _ := ecs.Get[Position](storage, e)
			assert.Same(t, pos, item.Position)
		}
	})

	t.Run("early break", func(t *testing.T) {
		count := 0
		for range query.Iter() {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})
}

func TestQueryGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	both, _ := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	onlyPos, _ := storage.Spawn(Position{X: 3})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	item := query.Get(both)
	require.NotNil(t, item)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Velocity.DX)

	assert.Nil(t, query.Get(onlyPos))

	require.NoError(t, storage.Despawn(both))
	assert.Nil(t, query.Get(both))
}

func TestQuerySparseComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stunned, _ := storage.Spawn(Position{X: 1}, Stunned{Remaining: 3})
	storage.Spawn(Position{X: 2})
	sparseOnly, _ := storage.Spawn(Stunned{Remaining: 9})

	query := ecs.NewQuery[struct {
		*Stunned
	}](storage)
	assert.Equal(t, 2, query.Count())

	withPos := ecs.NewQuery[struct {
		*Position
		*Stunned
	}](storage)
	seen := 0
	for e, item := range withPos.Iter() {
		seen++
		assert.Equal(t, stunned, e)
		assert.Equal(t, float32(3), item.Stunned.Remaining)
		item.Stunned.Remaining = 0
	}
	assert.Equal(t, 1, seen)

	s, _ := ecs.Get[Stunned](storage, stunned)
	assert.Equal(t, float32(0), s.Remaining)

	item := query.Get(sparseOnly)
	require.NotNil(t, item)
	assert.Equal(t, float32(9), item.Stunned.Remaining)
}

func TestQueryOptional(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	withHealth, _ := storage.Spawn(Position{X: 1}, Health{Current: 5, Max: 10})
	without, _ := storage.Spawn(Position{X: 2})
	storage.Spawn(Health{Current: 1, Max: 1})

	query := ecs.NewQuery[struct {
		*Position
		Health  *Health  `ecs:"optional"`
		Stunned *Stunned `ecs:"optional"`
	}](storage)

	assert.Equal(t, 2, query.Count())
	for e, item := range query.Iter() {
		require.NotNil(t, item.Position)
		assert.Nil(t, item.Stunned)
		switch e {
		case withHealth:
			require.NotNil(t, item.Health)
			assert.Equal(t, 5, item.Health.Current)
		case without:
			assert.Nil(t, item.Health)
		default:
			t.Fatalf("unexpected entity %v", e)
		}
	}
}

func TestQueryInvalidStruct(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewQuery[Position](storage)
	})
	assert.Panics(t, func() {
		ecs.NewQuery[struct{ Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewQuery[struct {
			Pos *Position `ecs:"sometimes"`
		}](storage)
	})
}
