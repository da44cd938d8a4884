package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/systems"
)

// cellWidth is the number of terminal columns per grid column; two keeps
// cells roughly square.
const cellWidth = 2

var runeCommands = map[rune]tetris.Command{
	'h': tetris.MoveLeft,
	'l': tetris.MoveRight,
	'j': tetris.MoveDown,
	'k': tetris.RotateClockwise,
	'x': tetris.RotateClockwise,
	'z': tetris.RotateCounterClockwise,
	' ': tetris.HardDrop,
	'r': tetris.Restart,
}

var keyCommands = map[tcell.Key]tetris.Command{
	tcell.KeyLeft:  tetris.MoveLeft,
	tcell.KeyRight: tetris.MoveRight,
	tcell.KeyDown:  tetris.MoveDown,
	tcell.KeyUp:    tetris.RotateClockwise,
}

func commandFor(ev *tcell.EventKey) (tetris.Command, bool) {
	if ev.Key() == tcell.KeyRune {
		cmd, ok := runeCommands[ev.Rune()]
		return cmd, ok
	}
	cmd, ok := keyCommands[ev.Key()]
	return cmd, ok
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func cellStyle(code tetris.Cell) tcell.Style {
	c := cli.CellColor(code)
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// draw paints every BoardCell, bottom row last, followed by the HUD.
func draw(screen tcell.Screen, storage *ecs.Storage) {
	session := systems.CurrentSession(storage)
	rows := session.Game.Snapshot().Rows()

	screen.Clear()
	cells := ecs.NewView[struct{ *systems.BoardCell }](storage)
	for cell := range cells.Values() {
		y := rows - 1 - cell.Row
		style := cellStyle(cell.Code)
		for i := range cellWidth {
			screen.SetContent(cell.Col*cellWidth+i, y, ' ', nil, style)
		}
	}

	x := (session.Game.Snapshot().Cols() + 1) * cellWidth
	c := systems.CurrentCounters(storage)
	lines := []string{
		fmt.Sprintf("lines  %d", c.LinesCleared),
		fmt.Sprintf("pieces %d", c.PiecesLocked),
		fmt.Sprintf("overs  %d", c.GameOvers),
		"",
		fmt.Sprintf("next   %v", session.Game.Preview(3)),
	}
	if session.Game.Halted() {
		lines = append(lines, "", "GAME OVER", "r to restart")
	}
	for i, line := range lines {
		drawText(screen, x, i+1, line)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
