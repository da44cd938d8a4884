package systems

import "github.com/plus3/blockfall/tetris"

// BoardCell is one grid cell as last published. Row 0 is the bottom wall.
type BoardCell struct {
	Row, Col int
	Code     tetris.Cell
}

// BoardChanged is sent when a Result reports Changed.
type BoardChanged struct{}

// PieceLocked is sent when a piece merges into the grid.
type PieceLocked struct {
	Tick int64
}

// LinesCleared is sent when a lock removed at least one row.
type LinesCleared struct {
	Count int
}

// GameOver is sent when a spawn found no room.
type GameOver struct {
	Restarted bool
}

// Restarted is sent whenever the game re-initialized, on request or by
// the restart game over policy.
type Restarted struct{}
