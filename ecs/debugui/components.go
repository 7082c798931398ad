package debugui

import (
	"github.com/plus3/ecstore/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterArchetypeId  *ecs.ArchetypeId
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type ArchetypeViewerComponent struct {
	cache          *ArchetypeViewerCache
	selectedArchId *ecs.ArchetypeId
	hideEmpty      bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selected map[ecs.ComponentId]bool
	cache    *QueryDebuggerCache
}

// DebugUISystem renders every debug window spawned by SpawnDebugUI. Selecting an
// entity in the browser shows it in the inspector, and selecting an archetype in the
// viewer filters the browser.
type DebugUISystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Archetypes ecs.Query[struct{ *ArchetypeViewerComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries    ecs.Query[struct{ *QueryDebuggerComponent }]
	Timer      ecs.Singleton[FrameTimer]
}

func (s *DebugUISystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage

	deltaTime := float32(frame.DeltaTime)
	if timer := s.Timer.Get(); timer != nil {
		deltaTime = timer.GetDeltaTime()
	}

	var clicked *ecs.ArchetypeId
	for item := range s.Archetypes.Values() {
		if id := item.ArchetypeViewerComponent.Render(storage); id != nil {
			clicked = id
		}
	}

	var selected ecs.Entity
	for item := range s.Browsers.Values() {
		browser := item.EntityBrowserComponent
		if clicked != nil {
			browser.filterArchetypeId = clicked
			browser.currentPage = 0
		}
		browser.Render(storage)
		if e := browser.GetSelectedEntity(); e != 0 {
			selected = e
		}
	}

	for item := range s.Inspectors.Values() {
		item.ComponentInspectorComponent.Render(storage, selected)
	}
	for item := range s.Stats.Values() {
		item.PerformanceStatsComponent.Render(storage, deltaTime)
	}
	for item := range s.Queries.Values() {
		item.QueryDebuggerComponent.Render(storage)
	}
}
