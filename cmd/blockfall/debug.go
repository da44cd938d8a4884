package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	"github.com/plus3/blockfall/tetris/systems"
)

// spawnSessionWindow shows the running game: session id, counters,
// queue preview and a gravity speed slider.
func spawnSessionWindow(storage *ecs.Storage) {
	dropFrames := int32(-1)

	debugui.Spawn(storage, func() {
		session := systems.CurrentSession(storage)
		if session == nil {
			return
		}
		g := session.Game

		imgui.SetNextWindowPosV(imgui.NewVec2(420, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(320, 360), imgui.CondOnce)
		if !imgui.Begin("Session") {
			imgui.End()
			return
		}
		defer imgui.End()

		imgui.Text(fmt.Sprintf("ID: %s", session.ID))
		imgui.Text(fmt.Sprintf("Halted: %v", g.Halted()))
		imgui.Text(fmt.Sprintf("Queue: %d %v", g.QueueLen(), g.Preview(7)))

		if shape, cursor, ok := g.Active(); ok {
			imgui.Text(fmt.Sprintf("Active: %s at %d,%d rot %d", shape.Type(), cursor.Row, cursor.Col, shape.Rotation))
		}

		timer := g.Timer()
		if dropFrames < 0 {
			dropFrames = int32(timer.Target())
		}
		imgui.Text(fmt.Sprintf("Gravity: %d/%d", timer.Elapsed(), timer.Target()))
		if imgui.SliderInt("Drop frames", &dropFrames, 1, 120) {
			g.SetDropFrames(int64(dropFrames))
		}

		imgui.Separator()
		debugui.Inspect("Counters", *systems.CurrentCounters(storage))
		debugui.Inspect("Stats", g.Stats())
		debugui.Inspect("Config", g.Config())
	})
}
