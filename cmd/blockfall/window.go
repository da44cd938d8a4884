package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/ecs/debugui"
	debugui_ebiten "github.com/plus3/blockfall/ecs/debugui/ebiten"
	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/systems"
)

const (
	unit     = 20
	hudWidth = 160
)

var keymap = []struct {
	key ebiten.Key
	cmd tetris.Command
}{
	{ebiten.KeyArrowLeft, tetris.MoveLeft},
	{ebiten.KeyArrowRight, tetris.MoveRight},
	{ebiten.KeyArrowDown, tetris.MoveDown},
	{ebiten.KeyArrowUp, tetris.RotateClockwise},
	{ebiten.KeyX, tetris.RotateClockwise},
	{ebiten.KeyZ, tetris.RotateCounterClockwise},
	{ebiten.KeySpace, tetris.HardDrop},
	{ebiten.KeyR, tetris.Restart},
}

// screen maps grid coordinates to pixels. Row 0 is drawn at the bottom.
type screen struct {
	rows, cols    int
	width, height int
}

func newScreen(g tetris.Grid) screen {
	return screen{
		rows:   g.Rows(),
		cols:   g.Cols(),
		width:  g.Cols()*unit + hudWidth,
		height: g.Rows() * unit,
	}
}

func (s screen) cell(row, col int) (x, y float32) {
	return float32(col * unit), float32((s.rows - 1 - row) * unit)
}

// Window is the ebiten.Game driving the scheduler at the ebiten tick rate.
type Window struct {
	scheduler *ecs.Scheduler
	storage   *ecs.Storage
	cells     *ecs.View[struct{ *systems.BoardCell }]
	screen    screen

	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input   *ecs.Singleton[debugui.ImguiInputState]
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if w.input == nil || !w.input.Get().WantCaptureKeyboard {
		for _, k := range keymap {
			if inpututil.IsKeyJustPressed(k.key) {
				systems.Send(w.storage, k.cmd)
			}
		}
	}

	dt := 1 / float64(ebiten.TPS())
	if w.backend == nil {
		w.scheduler.Once(dt)
		return nil
	}
	w.backend.Get().Frame(func() {
		w.scheduler.Once(dt)
	})
	return nil
}

func (w *Window) Draw(dst *ebiten.Image) {
	for cell := range w.cells.Values() {
		x, y := w.screen.cell(cell.Row, cell.Col)
		vector.DrawFilledRect(dst, x+1, y+1, unit-2, unit-2, cli.CellColor(cell.Code), false)
	}
	w.drawHUD(dst)

	if w.backend != nil {
		w.backend.Get().Draw(dst)
	}
}

func (w *Window) drawHUD(dst *ebiten.Image) {
	session := systems.CurrentSession(w.storage)
	c := systems.CurrentCounters(w.storage)
	x := w.screen.cols*unit + 10

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LINES  %d\nPIECES %d\nOVERS  %d", c.LinesCleared, c.PiecesLocked, c.GameOvers), x, 10)

	next := "NEXT"
	for _, t := range session.Game.Preview(3) {
		next += " " + t.String()
	}
	ebitenutil.DebugPrintAt(dst, next, x, 70)

	if session.Game.Halted() {
		ebitenutil.DebugPrintAt(dst, "GAME OVER\nR to restart", x, 110)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.backend != nil {
		w.backend.Get().Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return w.screen.width, w.screen.height
}
