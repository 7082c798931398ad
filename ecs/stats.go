package ecs

import (
	"sort"
)

// StorageStats is a snapshot of the storage layout.
type StorageStats struct {
	ArchetypeCount     int
	TableCount         int
	SparseSetCount     int
	ComponentCount     int
	BundleCount        int
	TotalEntityCount   int
	SingletonCount     int
	TableBytes         int
	SparseSetBytes     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID             ArchetypeId
	ComponentTypes []string
	EntityCount    int
	TableID        TableId
	HasTable       bool
	SparseCount    int
	SparseBytes    int
}

// CollectStats gathers a snapshot of archetypes, tables, sparse sets and singletons.
// Archetypes without entities are omitted from the breakdown but counted.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:   len(s.graph.archetypes),
		TableCount:       len(s.graph.tables),
		ComponentCount:   s.registry.Len(),
		BundleCount:      s.bundles.len(),
		TotalEntityCount: s.entities.Len(),
		SingletonCount:   len(s.singletons),
	}

	for _, table := range s.graph.tables {
		stats.TableBytes += table.Bytes()
	}
	for _, set := range s.graph.sparseSets {
		if set != nil {
			stats.SparseSetCount++
			stats.SparseSetBytes += set.Bytes()
		}
	}

	for _, archetype := range s.graph.archetypes {
		if archetype.Len() == 0 {
			continue
		}
		names := make([]string, len(archetype.components))
		for i, id := range archetype.components {
			names[i] = s.registry.Info(id).Type.String()
		}
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    archetype.Len(),
			TableID:        archetype.table,
			HasTable:       archetype.hasTable,
			SparseCount:    archetype.SparseCount(),
			SparseBytes:    archetype.sparseBytes,
		})
	}

	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
