package debugui

import "github.com/plus3/ecstore/ecs"

// SpawnDebugUI spawns one entity per debug window and adds the frame timer singleton.
// Register a DebugUISystem with the scheduler to render them.
func SpawnDebugUI(storage *ecs.Storage) error {
	windows := []any{
		NewEntityBrowserComponent(100),
		NewComponentInspectorComponent(),
		NewArchetypeViewerComponent(),
		NewPerformanceStatsComponent(120),
		NewQueryDebuggerComponent(),
	}
	for _, window := range windows {
		if _, err := storage.Spawn(window); err != nil {
			return err
		}
	}
	return storage.AddSingleton(NewFrameTimer())
}

// RegisterDebugUIComponents registers the window components. Optional, since storages
// register component types on first use.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[ArchetypeViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
	ecs.RegisterComponent[ImguiItem](registry)
}

func componentNames(storage *ecs.Storage, ids []ecs.ComponentId) []string {
	registry := storage.Registry()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = registry.Info(id).Type.String()
	}
	return names
}
