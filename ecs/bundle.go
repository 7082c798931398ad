package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/rotisserie/eris"
)

// BundleId identifies an interned bundle within a Storage.
type BundleId uint32

// Bundle is an ordered, duplicate-free list of components that are spawned, inserted
// or removed as one unit. Bundles are interned: the same ordered list always yields the
// same *Bundle.
type Bundle struct {
	id         BundleId
	components []ComponentId

	// Positions in components, split by storage kind at construction.
	tableSlots  []int
	sparseSlots []int
}

// Id returns the bundle's identifier.
func (b *Bundle) Id() BundleId {
	return b.id
}

// Components returns the component ids in declaration order. Do not modify.
func (b *Bundle) Components() []ComponentId {
	return b.components
}

// Len returns the number of components in the bundle.
func (b *Bundle) Len() int {
	return len(b.components)
}

type bundleRegistry struct {
	registry *ComponentRegistry
	bundles  []*Bundle
	index    *intmap.Map[uint64, []BundleId]
}

func newBundleRegistry(registry *ComponentRegistry) *bundleRegistry {
	return &bundleRegistry{
		registry: registry,
		index:    intmap.New[uint64, []BundleId](64),
	}
}

// intern returns the bundle for the ordered ids, creating it on first use.
func (r *bundleRegistry) intern(ids []ComponentId) (*Bundle, error) {
	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			return nil, eris.Wrapf(ErrDuplicateComponentInBundle, "%s listed twice", r.registry.Info(id).Type)
		}
	}

	hash := hashComponentIds(ids)
	bucket, _ := r.index.Get(hash)
	for _, bundleId := range bucket {
		if slices.Equal(r.bundles[bundleId].components, ids) {
			return r.bundles[bundleId], nil
		}
	}

	b := &Bundle{
		id:         BundleId(len(r.bundles)),
		components: slices.Clone(ids),
	}
	for slot, id := range b.components {
		if r.registry.StorageKind(id) == StorageSparseSet {
			b.sparseSlots = append(b.sparseSlots, slot)
		} else {
			b.tableSlots = append(b.tableSlots, slot)
		}
	}
	r.bundles = append(r.bundles, b)
	r.index.Put(hash, append(bucket, b.id))
	return b, nil
}

func (r *bundleRegistry) len() int {
	return len(r.bundles)
}

// hashComponentIds generates an FNV-1a hash for a slice of component ids.
func hashComponentIds(ids []ComponentId) uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a 64-bit offset basis
	const prime uint64 = 1099511628211  // FNV-1a 64-bit prime

	for _, id := range ids {
		for shift := 0; shift < 32; shift += 8 {
			h ^= uint64(byte(id >> shift))
			h *= prime
		}
	}
	return h
}
