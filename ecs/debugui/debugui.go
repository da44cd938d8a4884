// Package debugui renders Dear ImGui windows from inside an ECS world.
// Windows are entities carrying an ImguiItem; ImguiSystem queues their
// render functions as deferred commands so they draw after every other
// system of the frame has run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// ImguiItem is a component holding one window's render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this
// frame. Game input systems skip their work while it is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// Register adds the package's components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Install creates the input state singleton and schedules ImguiSystem.
// Register it after the game systems so their windows see fresh state.
func Install(scheduler *ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](scheduler.Storage())
	scheduler.Register(&ImguiSystem{})
}

// Spawn adds a window entity.
func Spawn(storage *ecs.Storage, render func()) ecs.EntityId {
	return storage.Spawn(ImguiItem{Render: render})
}
