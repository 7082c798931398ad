// Package ebiten hosts the debugui windows in an Ebiten game through the cimgui-go
// Ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ecstore/ecs"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend so it can be stored as a singleton.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Install creates the backend window and adds it to storage as a singleton. The ImGui
// ini file is disabled so window layout is not persisted between runs.
func Install(storage *ecs.Storage, title string, width, height int) (*ecs.Singleton[ImguiBackend], error) {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	if err := storage.AddSingleton(ImguiBackend{EbitenBackend: backend}); err != nil {
		return nil, err
	}
	return ecs.NewSingleton[ImguiBackend](storage), nil
}
