package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ecstore/ecs"
)

type QueryDebuggerCache struct {
	components         []ecs.ComponentId
	lastComponentCount int
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selected: make(map[ecs.ComponentId]bool),
		cache: &QueryDebuggerCache{
			lastComponentCount: -1,
		},
	}
}

// Render lets the user pick a component set and lists the archetypes a query for that
// set would visit.
func (qd *QueryDebuggerComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	registry := storage.Registry()
	if qd.cache.lastComponentCount != registry.Len() {
		qd.rebuildCache(registry)
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = make(map[ecs.ComponentId]bool)
	}

	for _, id := range qd.cache.components {
		info := registry.Info(id)
		label := info.Type.String()
		if info.Kind == ecs.StorageSparseSet {
			label += " (sparse)"
		}
		selected := qd.selected[id]
		if imgui.Checkbox(label, &selected) {
			if selected {
				qd.selected[id] = true
			} else {
				delete(qd.selected, id)
			}
		}
	}

	imgui.Separator()

	if len(qd.selected) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := qd.matchingArchetypes(storage)
	totalEntities := 0
	for _, arch := range matching {
		totalEntities += arch.Len()
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", totalEntities))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", arch.Id()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(componentNames(storage, arch.Components()), ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.Len()))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebuggerComponent) rebuildCache(registry *ecs.ComponentRegistry) {
	qd.cache.lastComponentCount = registry.Len()
	qd.cache.components = make([]ecs.ComponentId, registry.Len())
	for i := range qd.cache.components {
		qd.cache.components[i] = ecs.ComponentId(i)
	}
	sort.Slice(qd.cache.components, func(i, j int) bool {
		return registry.Info(qd.cache.components[i]).Type.String() < registry.Info(qd.cache.components[j]).Type.String()
	})
}

func (qd *QueryDebuggerComponent) matchingArchetypes(storage *ecs.Storage) []*ecs.Archetype {
	matching := make([]*ecs.Archetype, 0)

archetypes:
	for archetype := range storage.Archetypes() {
		for id := range qd.selected {
			if !archetype.HasComponent(id) {
				continue archetypes
			}
		}
		matching = append(matching, archetype)
	}

	return matching
}
