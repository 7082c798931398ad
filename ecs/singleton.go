package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	value   reflect.Value // *T
	dataPtr unsafe.Pointer
}

// AddSingleton stores a value that is not attached to any entity. An existing singleton
// of the same type is overwritten in place, so accessors keep pointing at it.
func (s *Storage) AddSingleton(value any) error {
	v, err := componentValue(value)
	if err != nil {
		return err
	}

	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Elem().Set(v)
		return nil
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
	return nil
}

// RemoveSingleton deletes the singleton of the given type.
func (s *Storage) RemoveSingleton(t reflect.Type) bool {
	if _, ok := s.singletons[t]; !ok {
		return false
	}
	delete(s.singletons, t)
	return true
}

// ReadSingleton sets *out to the singleton of the pointed-to type. out must be a **T.
// It reports whether the singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Pointer {
		panic("ReadSingleton requires a pointer to a pointer")
	}
	entry := s.getSingletonEntry(v.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// Singleton provides access to a single global value of type T, such as configuration
// or loaded asset handles, that is not associated with any entity.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewSingleton creates a Singleton accessor for the storage. If the singleton does not
// exist yet it is created from initializer, or the zero value.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		if err := storage.AddSingleton(value); err != nil {
			panic(err)
		}
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the Singleton to a storage. The Scheduler calls it during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.updateCache()
}

// Get returns a pointer to the singleton value, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
