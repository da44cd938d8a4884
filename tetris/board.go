package tetris

import "strings"

// Direction is a single-step translation of the active piece.
type Direction uint8

const (
	Down Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

func (d Direction) apply(c Cursor) Cursor {
	switch d {
	case Down:
		return c.add(-1, 0)
	case Left:
		return c.add(0, -1)
	case Right:
		return c.add(0, 1)
	}
	panic("tetris: unknown direction " + d.String())
}

// Grid is a row-major cell matrix; row 0 is the bottom wall.
type Grid [][]Cell

func newGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Cell, cols)
	}
	return g
}

func (g Grid) Rows() int { return len(g) }

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// At returns the cell at (row, col); anything outside the grid reads as Wall.
func (g Grid) At(row, col int) Cell {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return Wall
	}
	return g[row][col]
}

func (g Grid) clone() Grid {
	c := make(Grid, len(g))
	for r := range g {
		c[r] = append([]Cell(nil), g[r]...)
	}
	return c
}

// String draws the grid top row first: '#' wall, '.' empty, digits for pieces.
func (g Grid) String() string {
	var sb strings.Builder
	for r := len(g) - 1; r >= 0; r-- {
		for _, c := range g[r] {
			switch c {
			case Empty:
				sb.WriteByte('.')
			case Wall:
				sb.WriteByte('#')
			default:
				sb.WriteByte('0' + byte(c))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Board is the playfield: the walled grid plus the active piece, which
// only becomes part of the grid on Lock.
type Board struct {
	cfg    Config
	grid   Grid
	cursor Cursor
	active *Shape
}

// NewBoard builds an empty walled grid for cfg. cfg must be valid.
func NewBoard(cfg Config) *Board {
	b := &Board{cfg: cfg}
	b.Reset()
	return b
}

// Reset walls the border, empties the playable area and drops the active piece.
func (b *Board) Reset() {
	rows, cols := b.cfg.rows(), b.cfg.cols()
	b.grid = newGrid(rows, cols)

	bottom, left := b.cfg.bottom(), b.cfg.left()
	for r := range rows {
		for c := range cols {
			if r < bottom || c < left || c >= left+b.cfg.Width {
				b.grid[r][c] = Wall
			}
		}
	}

	b.cursor = Cursor{}
	b.active = nil
}

// Spawn places s at the spawn coordinate without a collision check;
// IsGameOver reports a blocked spawn.
func (b *Board) Spawn(s Shape) {
	b.cursor = b.cfg.Spawn
	b.active = &s
}

// Active returns the falling shape, if any.
func (b *Board) Active() (Shape, bool) {
	if b.active == nil {
		return Shape{}, false
	}
	return *b.active, true
}

func (b *Board) Cursor() Cursor { return b.cursor }

// Cell reads the locked grid, without the active piece.
func (b *Board) Cell(row, col int) Cell { return b.grid.At(row, col) }

// overlaps reports whether s placed at c touches any non-empty cell.
func (b *Board) overlaps(s *Shape, c Cursor) bool {
	for y := range ShapeSize {
		for x := range ShapeSize {
			if s.Cells[y][x] == Empty {
				continue
			}
			if b.grid.At(c.Row+y, c.Col+x) != Empty {
				return true
			}
		}
	}
	return false
}

// CanMove reports whether the active piece may take one step in d.
// Without an active piece nothing can move.
func (b *Board) CanMove(d Direction) bool {
	if b.active == nil {
		return false
	}
	return !b.overlaps(b.active, d.apply(b.cursor))
}

// ApplyMove steps the cursor unconditionally; callers check CanMove first.
func (b *Board) ApplyMove(d Direction) {
	b.mustBeActive("ApplyMove")
	b.cursor = d.apply(b.cursor)
}

// TryRotate rotates the active piece, testing the KickCandidates in order
// and committing the first one that fits. The long piece only tries its
// own cursor. On failure shape and cursor are unchanged.
func (b *Board) TryRotate(clockwise bool) bool {
	b.mustBeActive("TryRotate")

	rotated := b.active.Rotated(clockwise)
	candidates := KickCandidates(b.cursor, rotated.Rotation, clockwise)

	tries := candidates[:]
	if rotated.MatrixSize == 4 {
		tries = candidates[:1]
	}

	for _, c := range tries {
		if !b.overlaps(&rotated, c) {
			b.active = &rotated
			b.cursor = c
			return true
		}
	}
	return false
}

// Lock writes the active piece into the grid and clears it.
func (b *Board) Lock() {
	b.mustBeActive("Lock")

	for _, blk := range b.active.Blocks() {
		b.grid[b.cursor.Row+blk[0]][b.cursor.Col+blk[1]] = b.active.Cells[blk[0]][blk[1]]
	}
	b.active = nil
}

// IsGameOver is true without an active piece or when the active piece
// already overlaps the grid, which right after Spawn means no room.
func (b *Board) IsGameOver() bool {
	if b.active == nil {
		return true
	}
	return b.overlaps(b.active, b.cursor)
}

// ClearLines removes every full playable row bottom to top and returns
// how many were removed. After a clear the rows above fall by one and the
// same row is examined again, so stacked full rows cascade.
func (b *Board) ClearLines() int {
	bottom := b.cfg.bottom()
	top := bottom + b.cfg.Height

	cleared := 0
	for row := bottom; row < top; {
		if !b.rowFull(row) {
			row++
			continue
		}
		b.collapse(row)
		cleared++
	}
	return cleared
}

func (b *Board) rowFull(row int) bool {
	left := b.cfg.left()
	for col := left; col < left+b.cfg.Width; col++ {
		if c := b.grid[row][col]; c == Empty || c == Wall {
			return false
		}
	}
	return true
}

// collapse drops everything above row by one, spawn margin included, and
// empties the topmost row.
func (b *Board) collapse(row int) {
	left, right := b.cfg.left(), b.cfg.left()+b.cfg.Width
	last := len(b.grid) - 1

	for r := row; r < last; r++ {
		copy(b.grid[r][left:right], b.grid[r+1][left:right])
	}
	clear(b.grid[last][left:right])
}

// Snapshot returns a copy of the grid with the active piece overlaid.
func (b *Board) Snapshot() Grid {
	g := b.grid.clone()
	if b.active == nil {
		return g
	}

	for _, blk := range b.active.Blocks() {
		r, c := b.cursor.Row+blk[0], b.cursor.Col+blk[1]
		if r >= 0 && r < g.Rows() && c >= 0 && c < g.Cols() {
			g[r][c] = b.active.Cells[blk[0]][blk[1]]
		}
	}
	return g
}

func (b *Board) mustBeActive(op string) {
	if b.active == nil {
		panic("tetris: " + op + " without an active piece")
	}
}
