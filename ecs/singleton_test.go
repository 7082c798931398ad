package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/ecstore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameClock struct {
	Frame int
}

type clockSystem struct {
	Clock ecs.Singleton[frameClock]
}

func (s *clockSystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Frame++
}

func TestSingleton(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	accessor := ecs.NewSingleton[frameClock](storage, frameClock{Frame: 3})
	require.True(t, accessor.Exists())
	assert.Equal(t, 3, accessor.Get().Frame)

	// Replacing keeps existing accessors valid.
	require.NoError(t, storage.AddSingleton(frameClock{Frame: 10}))
	assert.Equal(t, 10, accessor.Get().Frame)

	var read *frameClock
	require.True(t, storage.ReadSingleton(&read))
	assert.Same(t, accessor.Get(), read)

	// Singletons are not entities.
	assert.Equal(t, 0, storage.EntityCount())
	assert.Equal(t, 1, storage.CollectStats().SingletonCount)

	assert.True(t, storage.RemoveSingleton(reflect.TypeFor[frameClock]()))
	assert.False(t, storage.RemoveSingleton(reflect.TypeFor[frameClock]()))
	assert.False(t, storage.ReadSingleton(&read))
	assert.True(t, ecs.NewSingleton[frameClock](storage).Exists())
}

func TestSingletonInScheduler(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	require.NoError(t, storage.AddSingleton(&frameClock{}))

	scheduler := ecs.NewScheduler(storage)
	system := &clockSystem{}
	scheduler.Register(system)

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	var clock *frameClock
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 2, clock.Frame)
}

func TestSingletonMissing(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	var accessor ecs.Singleton[frameClock]
	accessor.Init(storage)
	assert.False(t, accessor.Exists())
	assert.Nil(t, accessor.Get())

	require.NoError(t, storage.AddSingleton(frameClock{Frame: 1}))
	assert.True(t, accessor.Exists())
	assert.Equal(t, 1, accessor.Get().Frame)

	assert.Panics(t, func() {
		var notPointer frameClock
		storage.ReadSingleton(&notPointer)
	})
}
