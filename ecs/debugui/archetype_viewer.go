package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ecstore/ecs"
)

type ArchetypeInfo struct {
	ID             ecs.ArchetypeId
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
	Table          string
	SparseCount    int
	SparseBytes    int
}

const (
	archColumnId = iota
	archColumnComponents
	archColumnCount
	archColumnTable
	archColumnSparse
	archColumnSparseBytes
	archColumnEntities
	archColumnTotal
)

type ArchetypeViewerCache struct {
	archetypes         []ArchetypeInfo
	lastArchetypeCount int
	sortColumn         int
	sortAscending      bool
}

func NewArchetypeViewerComponent() ArchetypeViewerComponent {
	return ArchetypeViewerComponent{
		cache: &ArchetypeViewerCache{
			sortColumn:    archColumnEntities,
			sortAscending: false,
		},
		hideEmpty: true,
	}
}

// Render draws the archetype table and returns the archetype clicked this frame, if any.
func (av *ArchetypeViewerComponent) Render(storage *ecs.Storage) *ecs.ArchetypeId {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	av.rebuildCacheIfNeeded(storage)

	imgui.Checkbox("Hide empty", &av.hideEmpty)
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("Archetypes: %d  Tables: %d  Bundles: %d",
		storage.ArchetypeCount(), storage.TableCount(), storage.BundleCount()))

	maxEntityCount := 0
	for _, arch := range av.cache.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	var clicked *ecs.ArchetypeId

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", archColumnTotal, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Table")
		imgui.TableSetupColumn("Sparse")
		imgui.TableSetupColumn("Sparse Bytes")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.cache.sortColumn = int(spec.ColumnIndex())
			av.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			av.sortArchetypes()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.cache.archetypes {
			if av.hideEmpty && arch.EntityCount == 0 {
				continue
			}
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selectedArchId != nil && *av.selectedArchId == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				clicked = &id
				av.selectedArchId = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.ComponentCount))

			imgui.TableNextColumn()
			imgui.Text(arch.Table)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.SparseCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.SparseBytes))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (av *ArchetypeViewerComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	if av.cache.lastArchetypeCount != storage.ArchetypeCount() || av.cache.archetypes == nil {
		av.cache.lastArchetypeCount = storage.ArchetypeCount()
		av.rebuildCache(storage)
		return
	}

	// Archetypes are append-only, so cached rows only need fresh entity counts.
	for i := range av.cache.archetypes {
		av.cache.archetypes[i].EntityCount = storage.Archetype(av.cache.archetypes[i].ID).Len()
	}
	if av.cache.sortColumn == archColumnEntities {
		av.sortArchetypes()
	}
}

func (av *ArchetypeViewerComponent) rebuildCache(storage *ecs.Storage) {
	av.cache.archetypes = make([]ArchetypeInfo, 0, storage.ArchetypeCount())

	for archetype := range storage.Archetypes() {
		table := "-"
		if id, ok := archetype.Table(); ok {
			table = fmt.Sprintf("%d", id)
		}

		av.cache.archetypes = append(av.cache.archetypes, ArchetypeInfo{
			ID:             archetype.Id(),
			ComponentTypes: componentNames(storage, archetype.Components()),
			EntityCount:    archetype.Len(),
			ComponentCount: len(archetype.Components()),
			Table:          table,
			SparseCount:    archetype.SparseCount(),
			SparseBytes:    archetype.SparseBytes(),
		})
	}

	av.sortArchetypes()
}

func (av *ArchetypeViewerComponent) sortArchetypes() {
	sort.SliceStable(av.cache.archetypes, func(i, j int) bool {
		a, b := av.cache.archetypes[i], av.cache.archetypes[j]
		var less bool

		switch av.cache.sortColumn {
		case archColumnId:
			less = a.ID < b.ID
		case archColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case archColumnCount:
			less = a.ComponentCount < b.ComponentCount
		case archColumnTable:
			less = a.Table < b.Table
		case archColumnSparse:
			less = a.SparseCount < b.SparseCount
		case archColumnSparseBytes:
			less = a.SparseBytes < b.SparseBytes
		default:
			less = a.EntityCount < b.EntityCount
		}

		if !av.cache.sortAscending {
			return !less
		}
		return less
	})
}
