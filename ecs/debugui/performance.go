package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
	last    time.Time
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Record stores one frame duration.
func (h *FrameHistory) Record(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Mark records the time elapsed since the previous Mark.
func (h *FrameHistory) Mark(now time.Time) {
	if !h.last.IsZero() {
		h.Record(now.Sub(h.last))
	}
	h.last = now
}

// Average is the mean of the recorded samples, 0 when empty.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

// SpawnPerformanceWindow adds a window with storage totals, a frame time
// plot and per-system timings from scheduler.
func SpawnPerformanceWindow(scheduler *ecs.Scheduler, historyFrames int) ecs.EntityId {
	storage := scheduler.Storage()
	history := NewFrameHistory(historyFrames)

	return Spawn(storage, func() {
		history.Mark(time.Now())

		if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}
		defer imgui.End()

		stats := storage.CollectStats()
		imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
		imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
		imgui.Text(fmt.Sprintf("Singletons: %d  Event types: %d", stats.SingletonCount, stats.EventTypeCount))

		avg := history.Average()
		if avg > 0 {
			imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
		}
		imgui.PlotLinesFloatPtr("##frametime", &history.samples[0], int32(len(history.samples)))

		imgui.Separator()
		renderSystemTable(scheduler.GetStats())

		if imgui.TreeNodeStr("Archetypes") {
			renderArchetypeTable(stats.ArchetypeBreakdown)
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("Singletons") {
			for _, name := range stats.SingletonTypes {
				imgui.BulletText(name)
			}
			imgui.TreePop()
		}
	})
}

func renderSystemTable(stats *ecs.SchedulerStats) {
	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemTable", 4, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(sys.LastDuration.String())
		imgui.TableNextColumn()
		imgui.Text(sys.AvgDuration.String())
	}
	imgui.EndTable()
}

func renderArchetypeTable(archetypes []ecs.ArchetypeStats) {
	const flags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("ArchetypeTable", 3, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Entities")
	imgui.TableHeadersRow()

	for _, arch := range archetypes {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("0x%X", arch.ID))
		imgui.TableNextColumn()
		imgui.Text(ComponentList(arch.ComponentTypes))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
	}
	imgui.EndTable()
}
