package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/ecs"
	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/tetris"
	"github.com/plus3/blockfall/tetris/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandFor(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want tetris.Command
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), tetris.MoveLeft, true},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), tetris.RotateClockwise, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), tetris.HardDrop, true},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), tetris.RotateCounterClockwise, true},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), tetris.Restart, true},
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		cmd, ok := commandFor(tt.ev)
		assert.Equal(t, tt.ok, ok, tt.ev.Name())
		if tt.ok {
			assert.Equal(t, tt.want, cmd, tt.ev.Name())
		}
	}

	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone)))
}

func TestDrawPaintsBoard(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(80, 30)

	g, err := tetris.New(tetris.DefaultConfig())
	require.NoError(t, err)
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	systems.Install(scheduler, g, nil)
	scheduler.Once(0)

	draw(screen, storage)

	// bottom wall row, then the lowest playable cell
	_, _, style, _ := screen.GetContent(0, 25)
	assert.Equal(t, cellStyle(tetris.Wall), style)
	_, _, style, _ = screen.GetContent(2*cellWidth, 23)
	assert.Equal(t, cellStyle(tetris.Empty), style)

	// the spawned piece sits in the spawn rows
	shape, cursor, ok := g.Active()
	require.True(t, ok)
	b := shape.Blocks()[0]
	_, _, style, _ = screen.GetContent((cursor.Col+b[1])*cellWidth, 25-(cursor.Row+b[0]))
	assert.Equal(t, cellStyle(shape.Type().Cell()), style)

	r, _, _, _ := screen.GetContent(15*cellWidth, 1)
	assert.Equal(t, 'l', r)
}

func TestChimeLength(t *testing.T) {
	for lines, notes := range map[int]int{0: 1, 1: 1, 3: 3, 9: 4} {
		s, err := chime(lines)
		require.NoError(t, err)

		n := 0
		buf := make([][2]float64, 512)
		for {
			got, ok := s.Stream(buf)
			n += got
			if !ok {
				break
			}
		}
		assert.Equal(t, notes*sampleRate.N(noteLength), n, "lines %d", lines)
	}
}

func TestNilChimeIsSilent(t *testing.T) {
	var c *Chime
	assert.NotPanics(t, func() {
		c.Play(2)
		c.Close()
	})
}

func TestCellStyleUsesPalette(t *testing.T) {
	c := cli.CellColor(tetris.I.Cell())
	_, bg, _ := cellStyle(tetris.I.Cell()).Decompose()
	assert.Equal(t, tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), bg)
}
