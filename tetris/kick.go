package tetris

// Cursor is the grid coordinate of a shape matrix's origin. Row grows
// upward.
type Cursor struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

func (c Cursor) add(dRow, dCol int) Cursor {
	return Cursor{Row: c.Row + dRow, Col: c.Col + dCol}
}

// KickCount is the number of positions TryRotate may test.
const KickCount = 5

// KickCandidates returns, in trial order, the cursors a rotation may
// settle on. rotation is the accumulator of the already rotated shape.
//
// The correction is derived from rotation%180 and the turn direction:
// index 1 shifts the column, 2 additionally shifts the row, 3 shifts the
// row from the starting cursor (dropping the column shift of index 1) and
// 4 re-applies the column shift on top of 3.
func KickCandidates(origin Cursor, rotation int, clockwise bool) [KickCount]Cursor {
	angle := rotation % 180

	colShift := 1
	switch {
	case angle > 0:
		colShift = -1
	case angle < 0:
		colShift = 1
	case clockwise:
		colShift = -1
	}

	rowShift := -1
	if angle != 0 {
		rowShift = 1
	}

	var c [KickCount]Cursor
	c[0] = origin
	c[1] = origin.add(0, colShift)
	c[2] = c[1].add(rowShift, 0)
	c[3] = origin.add(rowShift, 0)
	c[4] = c[3].add(0, colShift)
	return c
}
