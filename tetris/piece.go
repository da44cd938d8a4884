package tetris

import "fmt"

// Cell is a single grid value: Empty, a piece identity (1..7) or Wall.
type Cell uint8

const (
	Empty Cell = 0
	Wall  Cell = 9
)

// Type identifies one of the seven pieces. Its numeric value doubles as
// the Cell code the piece leaves in the grid.
type Type uint8

const (
	T Type = iota + 1
	L
	J
	O
	S
	Z
	I
)

// ShapeSize is the side of every shape matrix.
const ShapeSize = 4

// Types returns the seven piece types in catalog order.
func Types() []Type {
	return []Type{T, L, J, O, S, Z, I}
}

func (t Type) Valid() bool {
	return t >= T && t <= I
}

// Cell returns the grid code locked pieces of this type leave behind.
func (t Type) Cell() Cell {
	return Cell(t)
}

func (t Type) String() string {
	switch t {
	case T:
		return "T"
	case L:
		return "L"
	case J:
		return "J"
	case O:
		return "O"
	case S:
		return "S"
	case Z:
		return "Z"
	case I:
		return "I"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Shape is a piece's 4x4 occupancy matrix plus rotation metadata.
// Cells[y][x] lands on grid row cursor.Row+y, column cursor.Col+x, so
// row 0 of the matrix is the bottom of the piece.
//
// MatrixSize is the side of the leading square that rotates: 0 never
// rotates, 3 for the common pieces, 4 for I. Rotation accumulates +90 per
// clockwise turn and -90 per counter-clockwise turn.
type Shape struct {
	Cells      [ShapeSize][ShapeSize]Cell
	MatrixSize int
	Rotation   int
}

// ShapeFor returns the spawn orientation of t.
func ShapeFor(t Type) Shape {
	c := t.Cell()
	var s Shape

	switch t {
	case T:
		s.Cells[1] = [ShapeSize]Cell{c, c, c, 0}
		s.Cells[2] = [ShapeSize]Cell{0, c, 0, 0}
		s.MatrixSize = 3
	case L:
		s.Cells[1] = [ShapeSize]Cell{c, c, c, 0}
		s.Cells[2] = [ShapeSize]Cell{0, 0, c, 0}
		s.MatrixSize = 3
	case J:
		s.Cells[1] = [ShapeSize]Cell{c, c, c, 0}
		s.Cells[2] = [ShapeSize]Cell{c, 0, 0, 0}
		s.MatrixSize = 3
	case O:
		s.Cells[0] = [ShapeSize]Cell{c, c, 0, 0}
		s.Cells[1] = [ShapeSize]Cell{c, c, 0, 0}
	case S:
		s.Cells[1] = [ShapeSize]Cell{c, c, 0, 0}
		s.Cells[2] = [ShapeSize]Cell{0, c, c, 0}
		s.MatrixSize = 3
	case Z:
		s.Cells[1] = [ShapeSize]Cell{0, c, c, 0}
		s.Cells[2] = [ShapeSize]Cell{c, c, 0, 0}
		s.MatrixSize = 3
	case I:
		s.Cells[1] = [ShapeSize]Cell{c, c, c, c}
		s.MatrixSize = 4
	default:
		panic("tetris: unknown piece type " + t.String())
	}

	return s
}

// Rotate turns the leading MatrixSize square a quarter turn in place by
// cycling the four symmetric cells of each concentric ring. Shapes with
// MatrixSize < 1 are left untouched, accumulator included.
func (s *Shape) Rotate(clockwise bool) {
	if s.MatrixSize < 1 {
		return
	}

	n := s.MatrixSize - 1
	f := &s.Cells
	for j := 0; j < s.MatrixSize/2; j++ {
		for i := j; i < n-j; i++ {
			tmp := f[i][j]
			if clockwise {
				f[i][j] = f[j][n-i]
				f[j][n-i] = f[n-i][n-j]
				f[n-i][n-j] = f[n-j][i]
				f[n-j][i] = tmp
			} else {
				f[i][j] = f[n-j][i]
				f[n-j][i] = f[n-i][n-j]
				f[n-i][n-j] = f[j][n-i]
				f[j][n-i] = tmp
			}
		}
	}

	if clockwise {
		s.Rotation += 90
	} else {
		s.Rotation -= 90
	}
}

// Rotated returns a rotated copy, leaving s unchanged.
func (s Shape) Rotated(clockwise bool) Shape {
	s.Rotate(clockwise)
	return s
}

// Blocks returns the [y, x] matrix offsets of every occupied cell.
func (s Shape) Blocks() [][2]int {
	blocks := make([][2]int, 0, ShapeSize)
	for y := range ShapeSize {
		for x := range ShapeSize {
			if s.Cells[y][x] != Empty {
				blocks = append(blocks, [2]int{y, x})
			}
		}
	}
	return blocks
}

// Type recovers the piece identity from the first occupied cell.
func (s Shape) Type() Type {
	for _, b := range s.Blocks() {
		return Type(s.Cells[b[0]][b[1]])
	}
	return 0
}
