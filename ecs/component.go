package ecs

import (
	"fmt"
	"reflect"
)

// ComponentId is the dense identifier assigned to a component type when it is first
// registered. Ids are never reused while the registry is alive.
type ComponentId uint32

// StorageKind selects where the values of a component type live.
type StorageKind uint8

const (
	// StorageTable keeps values in column tables shared by archetypes with the same
	// table-kind component set. Best for components most entities of an archetype carry.
	StorageTable StorageKind = iota
	// StorageSparseSet keeps values in one sparse set per component type, shared by every
	// archetype. Best for rare components or ones that are added and removed often.
	StorageSparseSet
)

func (k StorageKind) String() string {
	switch k {
	case StorageTable:
		return "Table"
	case StorageSparseSet:
		return "SparseSet"
	default:
		return fmt.Sprintf("StorageKind(%d)", uint8(k))
	}
}

// SparseStorage is a zero-size marker. Embed it as the first field of a component struct
// to store that component in a sparse set:
//
//	type Stunned struct {
//		ecs.SparseStorage
//		Remaining float32
//	}
type SparseStorage struct{}

// ComponentStorage reports the storage kind declared by the marker.
func (SparseStorage) ComponentStorage() StorageKind { return StorageSparseSet }

type storageKinder interface {
	ComponentStorage() StorageKind
}

var storageKinderType = reflect.TypeFor[storageKinder]()

// declaredStorageKind returns the storage kind a type announces at its definition site.
func declaredStorageKind(t reflect.Type) StorageKind {
	switch {
	case t.Implements(storageKinderType):
		return reflect.Zero(t).Interface().(storageKinder).ComponentStorage()
	case reflect.PointerTo(t).Implements(storageKinderType):
		return reflect.New(t).Interface().(storageKinder).ComponentStorage()
	default:
		return StorageTable
	}
}

// ComponentInfo describes a registered component type. It is immutable once registered.
type ComponentInfo struct {
	Id    ComponentId
	Type  reflect.Type
	Size  uintptr
	Align uintptr
	Kind  StorageKind
}

// ComponentRegistry is an append-only mapping from component types to ids and storage
// kinds. A registry may be shared by several Storage instances.
type ComponentRegistry struct {
	infos  []*ComponentInfo
	byType map[reflect.Type]ComponentId
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]ComponentId),
	}
}

// ComponentOption adjusts how a component type is registered.
type ComponentOption func(*componentConfig)

type componentConfig struct {
	kind StorageKind
}

// WithStorage overrides the storage kind declared by the component type.
// It only has an effect on the first registration of the type.
func WithStorage(kind StorageKind) ComponentOption {
	return func(c *componentConfig) {
		c.kind = kind
	}
}

// RegisterComponent registers T with the registry and returns its id.
// Registering the same type again returns the existing id and ignores the options.
func RegisterComponent[T any](r *ComponentRegistry, opts ...ComponentOption) ComponentId {
	return r.Register(reflect.TypeFor[T](), opts...)
}

// ComponentIdFor returns the id of T, registering it on first reference.
func ComponentIdFor[T any](r *ComponentRegistry) ComponentId {
	return r.Register(reflect.TypeFor[T]())
}

// Register registers the given type and returns its id. It panics if t cannot be a
// component.
func (r *ComponentRegistry) Register(t reflect.Type, opts ...ComponentOption) ComponentId {
	if id, ok := r.byType[t]; ok {
		return id
	}
	if err := validateComponentType(t); err != nil {
		panic(err)
	}

	cfg := componentConfig{kind: declaredStorageKind(t)}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := ComponentId(len(r.infos))
	r.infos = append(r.infos, &ComponentInfo{
		Id:    id,
		Type:  t,
		Size:  t.Size(),
		Align: uintptr(t.Align()),
		Kind:  cfg.kind,
	})
	r.byType[t] = id
	return id
}

// Lookup returns the id of a registered type without registering it.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentId, bool) {
	id, ok := r.byType[t]
	return id, ok
}

// Info returns the registration record for id. It panics on unknown ids.
func (r *ComponentRegistry) Info(id ComponentId) *ComponentInfo {
	if int(id) >= len(r.infos) {
		panic(fmt.Sprintf("component id %d not registered", id))
	}
	return r.infos[id]
}

// StorageKind returns the storage kind fixed for id at registration.
func (r *ComponentRegistry) StorageKind(id ComponentId) StorageKind {
	return r.Info(id).Kind
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.infos)
}
