package cli_test

import (
	"testing"

	"github.com/plus3/blockfall/internal/cli"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
)

func TestCellColor(t *testing.T) {
	seen := map[[3]uint8]tetris.Type{}
	for _, typ := range tetris.Types() {
		c := cli.CellColor(typ.Cell())
		key := [3]uint8{c.R, c.G, c.B}
		prev, dup := seen[key]
		assert.False(t, dup, "%s shares a color with %s", typ, prev)
		seen[key] = typ
	}

	assert.Equal(t, cli.CellColor(tetris.Wall), cli.CellColor(42))
	assert.NotEqual(t, cli.CellColor(tetris.Wall), cli.CellColor(tetris.Empty))
}
