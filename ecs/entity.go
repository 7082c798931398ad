package ecs

import "fmt"

// Entity identifies a logical record. The low 32 bits hold the slot index and the
// high 32 bits the generation of that slot. Generations start at 1, so the zero Entity
// never refers to a live record.
type Entity uint64

// NewEntity creates an Entity from a slot index and generation.
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index.
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.Index(), e.Generation())
}

// NoRow marks an EntityLocation whose archetype has no table.
const NoRow = -1

// EntityLocation is where a live entity's data currently lives.
type EntityLocation struct {
	Archetype    ArchetypeId
	ArchetypeRow int
	TableRow     int
}

type entitySlot struct {
	generation uint32
	live       bool
	location   EntityLocation
}

// Entities hands out entity identifiers and keeps the location of every live entity.
// A despawned slot is reused only with an advanced generation.
type Entities struct {
	slots    []entitySlot
	freeList []uint32
	live     int
}

func newEntities(capacity int) *Entities {
	return &Entities{
		slots:    make([]entitySlot, 0, capacity),
		freeList: make([]uint32, 0, capacity),
	}
}

func (es *Entities) alloc() Entity {
	var index uint32
	if n := len(es.freeList); n > 0 {
		index = es.freeList[n-1]
		es.freeList = es.freeList[:n-1]
	} else {
		index = uint32(len(es.slots))
		es.slots = append(es.slots, entitySlot{generation: 1})
	}
	slot := &es.slots[index]
	slot.live = true
	slot.location = EntityLocation{TableRow: NoRow}
	es.live++
	return NewEntity(index, slot.generation)
}

func (es *Entities) release(e Entity) {
	slot := &es.slots[e.Index()]
	slot.live = false
	slot.location = EntityLocation{TableRow: NoRow}
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	es.freeList = append(es.freeList, e.Index())
	es.live--
}

// Contains reports whether e is live.
func (es *Entities) Contains(e Entity) bool {
	idx := int(e.Index())
	if idx >= len(es.slots) {
		return false
	}
	slot := es.slots[idx]
	return slot.live && slot.generation == e.Generation()
}

// Location returns where e is stored.
func (es *Entities) Location(e Entity) (EntityLocation, bool) {
	if !es.Contains(e) {
		return EntityLocation{}, false
	}
	return es.slots[e.Index()].location, true
}

// Len returns the number of live entities.
func (es *Entities) Len() int {
	return es.live
}

func (es *Entities) set(e Entity, loc EntityLocation) {
	es.slots[e.Index()].location = loc
}

func (es *Entities) setArchetypeRow(e Entity, row int) {
	es.slots[e.Index()].location.ArchetypeRow = row
}

func (es *Entities) setTableRow(e Entity, row int) {
	es.slots[e.Index()].location.TableRow = row
}

func (es *Entities) location(e Entity) EntityLocation {
	return es.slots[e.Index()].location
}
