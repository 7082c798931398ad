package ecs

import (
	"reflect"
	"unsafe"
)

const tombstone = -1

// SparseSet maps entities to values of one sparse-kind component. Values and their
// owners are packed in dense arrays; sparse is indexed by entity index and points into
// them. One SparseSet exists per component id and is shared by every archetype.
type SparseSet struct {
	info     *ComponentInfo
	dense    *column
	entities []Entity
	sparse   []int32
}

func newSparseSet(info *ComponentInfo, capacity int) *SparseSet {
	return &SparseSet{
		info:     info,
		dense:    newColumn(info, capacity),
		entities: make([]Entity, 0, capacity),
	}
}

// ComponentId returns the component stored by the set.
func (s *SparseSet) ComponentId() ComponentId {
	return s.info.Id
}

// Len returns the number of entities in the set.
func (s *SparseSet) Len() int {
	return len(s.entities)
}

// Bytes returns the memory held by the dense values.
func (s *SparseSet) Bytes() int {
	return s.dense.bytes()
}

// Entities returns the dense entity list. Do not modify.
func (s *SparseSet) Entities() []Entity {
	return s.entities
}

func (s *SparseSet) denseIndex(e Entity) (int, bool) {
	idx := int(e.Index())
	if idx >= len(s.sparse) {
		return 0, false
	}
	d := s.sparse[idx]
	if d == tombstone || s.entities[d] != e {
		return 0, false
	}
	return int(d), true
}

// Contains reports whether e has a value in the set.
func (s *SparseSet) Contains(e Entity) bool {
	_, ok := s.denseIndex(e)
	return ok
}

// Get returns a pointer to e's value, or nil.
func (s *SparseSet) Get(e Entity) any {
	d, ok := s.denseIndex(e)
	if !ok {
		return nil
	}
	return s.dense.get(d)
}

func (s *SparseSet) pointer(e Entity) unsafe.Pointer {
	d, ok := s.denseIndex(e)
	if !ok {
		return nil
	}
	return s.dense.pointer(d)
}

// insert stores v for e, overwriting an existing value.
func (s *SparseSet) insert(e Entity, v reflect.Value) {
	if d, ok := s.denseIndex(e); ok {
		s.dense.set(d, v)
		return
	}

	idx := int(e.Index())
	if idx >= len(s.sparse) {
		oldLen := len(s.sparse)
		grown := make([]int32, max(oldLen*2, idx+1))
		copy(grown, s.sparse)
		for i := oldLen; i < len(grown); i++ {
			grown[i] = tombstone
		}
		s.sparse = grown
	}

	d := s.dense.pushZero()
	s.dense.set(d, v)
	s.entities = append(s.entities, e)
	s.sparse[idx] = int32(d)
}

// remove deletes e's value and returns a copy of it.
func (s *SparseSet) remove(e Entity) (any, bool) {
	d, ok := s.denseIndex(e)
	if !ok {
		return nil, false
	}

	removed := reflect.New(s.info.Type).Elem()
	removed.Set(s.dense.value(d))

	last := len(s.entities) - 1
	if d != last {
		moved := s.entities[last]
		s.entities[d] = moved
		s.sparse[moved.Index()] = int32(d)
	}
	s.dense.swapRemove(d)
	s.entities = s.entities[:last]
	s.sparse[e.Index()] = tombstone
	return removed.Interface(), true
}
