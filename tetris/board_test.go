package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	return NewBoard(cfg)
}

// fillRow occupies every playable column of row with code.
func fillRow(b *Board, row int, code Cell) {
	for col := b.cfg.left(); col < b.cfg.left()+b.cfg.Width; col++ {
		b.grid[row][col] = code
	}
}

func countPieceCells(g Grid) int {
	n := 0
	for _, row := range g {
		for _, c := range row {
			if c != Empty && c != Wall {
				n++
			}
		}
	}
	return n
}

func TestNewBoardLayout(t *testing.T) {
	b := newTestBoard(t)
	g := b.Snapshot()

	require.Equal(t, 26, g.Rows())
	require.Equal(t, 14, g.Cols())

	for row := range g.Rows() {
		for col := range g.Cols() {
			wall := row < 2 || col < 2 || col > 11
			if wall {
				assert.Equal(t, Wall, g[row][col], "row %d col %d", row, col)
			} else {
				assert.Equal(t, Empty, g[row][col], "row %d col %d", row, col)
			}
		}
	}

	_, ok := b.Active()
	assert.False(t, ok)
	assert.True(t, b.IsGameOver(), "no active piece counts as game over")
}

func TestSpawn(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))

	assert.Equal(t, Cursor{Row: 20, Col: 5}, b.Cursor())
	assert.False(t, b.IsGameOver())

	// spawning never checks for room
	fillRow(b, 21, 3)
	b.Spawn(ShapeFor(T))
	assert.True(t, b.IsGameOver())
}

func TestCanMoveWalls(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))

	moves := 0
	for b.CanMove(Left) {
		b.ApplyMove(Left)
		moves++
	}
	assert.Equal(t, 3, moves)
	assert.Equal(t, 2, b.Cursor().Col)

	for b.CanMove(Right) {
		b.ApplyMove(Right)
	}
	// T spans matrix columns 0..2, so its right edge sits on column 11
	assert.Equal(t, 9, b.Cursor().Col)
}

func TestCanMoveWithoutActivePiece(t *testing.T) {
	b := newTestBoard(t)
	assert.False(t, b.CanMove(Down))
	assert.Panics(t, func() { b.ApplyMove(Down) })
	assert.Panics(t, func() { b.TryRotate(true) })
	assert.Panics(t, func() { b.Lock() })
}

// Whenever CanMove refuses a step, forcing that step anyway must leave
// the piece overlapping something.
func TestCanMoveNeverAllowsOverlap(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 2, 1)
	b.grid[2][6] = Empty
	b.grid[5][4] = 2
	b.grid[9][9] = 3

	for _, typ := range Types() {
		for _, clockwise := range []bool{true, false} {
			shape := ShapeFor(typ).Rotated(clockwise)
			for row := -1; row < 24; row++ {
				for col := -1; col < 13; col++ {
					for _, d := range []Direction{Down, Left, Right} {
						b.active = &shape
						b.cursor = Cursor{Row: row, Col: col}
						if b.CanMove(d) {
							continue
						}
						b.ApplyMove(d)
						assert.True(t, b.overlaps(b.active, b.cursor),
							"%v %s from %d,%d", typ, d, row, col)
					}
				}
			}
		}
	}
}

func TestDropAndLock(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))
	require.False(t, b.IsGameOver())

	for b.CanMove(Down) {
		b.ApplyMove(Down)
	}
	assert.Equal(t, Cursor{Row: 1, Col: 5}, b.Cursor())

	b.Lock()
	_, ok := b.Active()
	assert.False(t, ok)

	g := b.Snapshot()
	assert.Equal(t, 4, countPieceCells(g))
	assert.Equal(t, T.Cell(), g[2][5])
	assert.Equal(t, T.Cell(), g[2][6])
	assert.Equal(t, T.Cell(), g[2][7])
	assert.Equal(t, T.Cell(), g[3][6])
}

func TestSnapshotOverlaysActivePiece(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(I))

	g := b.Snapshot()
	for col := 5; col < 9; col++ {
		assert.Equal(t, I.Cell(), g[21][col])
		assert.Equal(t, Empty, b.Cell(21, col), "snapshot must not write the grid")
	}
}

func TestClearSingleLine(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 2, 2)
	b.grid[3][4] = 5
	b.grid[4][7] = 6

	assert.Equal(t, 1, b.ClearLines())

	assert.Equal(t, Cell(5), b.Cell(2, 4))
	assert.Equal(t, Cell(6), b.Cell(3, 7))
	assert.Equal(t, Empty, b.Cell(3, 4))
	assert.Equal(t, Empty, b.Cell(4, 7))
	assert.Equal(t, 2, countPieceCells(b.Snapshot()))

	for col := 2; col < 12; col++ {
		assert.Equal(t, Empty, b.Cell(23, col), "top playable row must be vacated")
	}
	assert.Equal(t, Wall, b.Cell(1, 4))
	assert.Equal(t, Wall, b.Cell(23, 1))
}

func TestClearAdjacentLinesCascade(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 2, 1)
	fillRow(b, 3, 2)
	b.grid[4][3] = 7

	assert.Equal(t, 2, b.ClearLines())
	assert.Equal(t, Cell(7), b.Cell(2, 3))
	assert.Equal(t, 1, countPieceCells(b.Snapshot()))
}

func TestClearSeparatedLines(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 2, 1)
	b.grid[3][2] = 4
	fillRow(b, 4, 3)
	fillRow(b, 10, 5)

	assert.Equal(t, 3, b.ClearLines())
	assert.Equal(t, Cell(4), b.Cell(2, 2))
	assert.Equal(t, 1, countPieceCells(b.Snapshot()))
}

func TestClearLinesIgnoresPartialRows(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 2, 1)
	b.grid[2][11] = Empty

	assert.Equal(t, 0, b.ClearLines())
	assert.Equal(t, 9, countPieceCells(b.Snapshot()))
}

func TestClearLinesPullsSpawnMargin(t *testing.T) {
	b := newTestBoard(t)
	fillRow(b, 2, 1)
	b.grid[24][5] = 6

	assert.Equal(t, 1, b.ClearLines())
	assert.Equal(t, Cell(6), b.Cell(23, 5))
	assert.Equal(t, Empty, b.Cell(25, 5))
}

func TestTryRotateInPlace(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))
	b.cursor = Cursor{Row: 10, Col: 5}

	require.True(t, b.TryRotate(true))
	s, _ := b.Active()
	assert.Equal(t, 90, s.Rotation)
	assert.Equal(t, Cursor{Row: 10, Col: 5}, b.Cursor())
}

func TestTryRotateKicksColumn(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))
	b.cursor = Cursor{Row: 10, Col: 5}
	b.grid[10][6] = 2 // blocks the in-place rotation

	require.True(t, b.TryRotate(true))
	assert.Equal(t, Cursor{Row: 10, Col: 4}, b.Cursor())
	assert.False(t, b.IsGameOver())
}

func TestTryRotateFallsBackToRowShift(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))
	b.cursor = Cursor{Row: 10, Col: 5}
	b.grid[10][6] = 2 // candidate 0
	b.grid[10][5] = 2 // candidate 1
	b.grid[13][5] = 2 // candidates 2 and 4

	require.True(t, b.TryRotate(true))
	// candidate 3: row shifted from the starting cursor, column shift dropped
	assert.Equal(t, Cursor{Row: 11, Col: 5}, b.Cursor())
}

func TestTryRotateFailureLeavesPieceUntouched(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(T))
	b.cursor = Cursor{Row: 10, Col: 5}
	b.grid[10][6] = 2
	b.grid[10][5] = 2
	b.grid[13][5] = 2
	b.grid[13][6] = 2

	assert.False(t, b.TryRotate(true))

	s, _ := b.Active()
	assert.Equal(t, ShapeFor(T), s)
	assert.Equal(t, Cursor{Row: 10, Col: 5}, b.Cursor())
}

func TestTryRotateLongPieceNeverKicks(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(I))
	// the vertical I would cover column 6, rows 20..23
	b.grid[23][6] = 3

	assert.False(t, b.TryRotate(true))

	s, _ := b.Active()
	assert.Equal(t, ShapeFor(I), s)
	assert.Equal(t, Cursor{Row: 20, Col: 5}, b.Cursor())
}

// The O piece never rotates; TryRotate still reports success because its
// unchanged shape fits where it already is.
func TestTryRotateImmunePiece(t *testing.T) {
	b := newTestBoard(t)
	b.Spawn(ShapeFor(O))

	assert.True(t, b.TryRotate(true))
	assert.True(t, b.TryRotate(false))

	s, _ := b.Active()
	assert.Equal(t, ShapeFor(O), s)
	assert.Equal(t, Cursor{Row: 20, Col: 5}, b.Cursor())
}

func TestGridAtOutOfRange(t *testing.T) {
	g := newTestBoard(t).Snapshot()
	assert.Equal(t, Wall, g.At(-1, 3))
	assert.Equal(t, Wall, g.At(3, 14))
	assert.Equal(t, Wall, g.At(26, 3))
	assert.Equal(t, Empty, g.At(25, 3))
}
